package handler

import "github.com/gin-gonic/gin"

// postField returns the submitted value for a form field. ok is false when
// the field is absent or submitted more than once; the flows treat either as
// a malformed form rather than a validation failure, mirroring the string
// type guard the forms need before any length check runs.
func postField(c *gin.Context, name string) (string, bool) {
	if err := c.Request.ParseForm(); err != nil {
		return "", false
	}
	vals, present := c.Request.PostForm[name]
	if !present || len(vals) != 1 {
		return "", false
	}
	return vals[0], true
}
