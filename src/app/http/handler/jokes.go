// Package handler contains HTTP handlers for the API.
// Handlers are responsible for:
// - Parsing and validating HTTP requests
// - Calling use case methods
// - Converting results to HTTP responses
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jokesapp/src/app/http/dto"
	"jokesapp/src/app/http/response"
	"jokesapp/src/app/middleware"
	"jokesapp/src/core/domain"
	"jokesapp/src/core/usecase"
)

// JokesHandler handles joke endpoints.
type JokesHandler struct {
	jokeService *usecase.JokeService
}

func NewJokesHandler(jokeService *usecase.JokeService) *JokesHandler {
	return &JokesHandler{jokeService: jokeService}
}

// Random returns one joke picked uniformly at random.
// GET /jokes/random
func (h *JokesHandler) Random(c *gin.Context) {
	joke, err := h.jokeService.Random(c.Request.Context())
	if err != nil {
		if domain.IsNotFound(err) {
			response.NotFound(c, "No random joke found", middleware.GetRequestID(c))
			return
		}
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	response.OK(c, gin.H{"joke": dto.JokeFromDomain(joke)})
}

// List returns all jokes in listing form, newest first.
// GET /jokes
func (h *JokesHandler) List(c *gin.Context) {
	refs, err := h.jokeService.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	items := make([]dto.JokeListItem, 0, len(refs))
	for _, ref := range refs {
		items = append(items, dto.JokeListItem{ID: ref.ID, Name: ref.Name})
	}
	response.OK(c, gin.H{"jokes": items})
}

// Get returns a single joke by ID.
// GET /jokes/:joke_id
func (h *JokesHandler) Get(c *gin.Context) {
	joke, err := h.jokeService.Get(c.Request.Context(), c.Param("joke_id"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	response.OK(c, gin.H{"joke": dto.JokeFromDomain(joke)})
}

// NewForm is the read path of the submission flow. The RequireUser middleware
// has already rejected anonymous requests by the time this runs; the page
// renders the empty form from a 200.
// GET /jokes/new
func (h *JokesHandler) NewForm(c *gin.Context) {
	response.OK(c, gin.H{})
}

// Submit is the write path of the submission flow. Outcomes are mutually
// exclusive and checked in order: unauthorized (middleware), malformed form,
// field validation, success.
// POST /jokes
func (h *JokesHandler) Submit(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "You must be logged in to create a joke.", middleware.GetRequestID(c))
		return
	}

	name, nameOK := postField(c, "name")
	content, contentOK := postField(c, "content")
	if !nameOK || !contentOK {
		response.FormInvalid(c, nil, nil, "Form not submitted correctly")
		return
	}

	fieldErrors := make(map[string]string)
	if msg := domain.ValidateJokeName(name); msg != "" {
		fieldErrors["name"] = msg
	}
	if msg := domain.ValidateJokeContent(content); msg != "" {
		fieldErrors["content"] = msg
	}
	if len(fieldErrors) > 0 {
		response.FormInvalid(c, fieldErrors, map[string]string{
			"name":    name,
			"content": content,
		}, "")
		return
	}

	joke, err := h.jokeService.Submit(c.Request.Context(), userID, name, content)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	c.Redirect(http.StatusFound, "/jokes/"+joke.ID)
}
