package domain

import "unicode/utf8"

// Form field validation for the joke submission and login/register flows.
// Each validator returns the message to render next to the offending field,
// or "" when the value passes. Lengths are counted in characters, not bytes,
// and are enforced here in the application, not by the store.

const (
	// MinJokeNameLen is the minimum length of a joke's name.
	MinJokeNameLen = 3

	// MinJokeContentLen is the minimum length of a joke's content.
	MinJokeContentLen = 10

	// MinUsernameLen is the minimum length of a username.
	MinUsernameLen = 3

	// MinPasswordLen is the minimum length of a plaintext password, checked
	// before hashing.
	MinPasswordLen = 6
)

// ValidateJokeName checks the name field of a joke submission.
func ValidateJokeName(name string) string {
	if utf8.RuneCountInString(name) < MinJokeNameLen {
		return "Name too short"
	}
	return ""
}

// ValidateJokeContent checks the content field of a joke submission.
func ValidateJokeContent(content string) string {
	if utf8.RuneCountInString(content) < MinJokeContentLen {
		return "Content too short"
	}
	return ""
}

// ValidateUsername checks the username field of the login/register form.
func ValidateUsername(username string) string {
	if utf8.RuneCountInString(username) < MinUsernameLen {
		return "Username must be at least 3 characters"
	}
	return ""
}

// ValidatePassword checks the password field of the login/register form.
func ValidatePassword(password string) string {
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return "Password must be at least 6 characters"
	}
	return ""
}

// DefaultRedirect is where post-login redirects land when the requested
// target is absent or not allow-listed.
const DefaultRedirect = "/jokes"

// allowedRedirects is the fixed allow-list of post-login destinations.
var allowedRedirects = []string{"/jokes", "/", "https://remix.run"}

// SafeRedirect guards against open redirects. Targets outside the allow-list
// are silently replaced with DefaultRedirect rather than rejected.
func SafeRedirect(target string) string {
	for _, u := range allowedRedirects {
		if target == u {
			return target
		}
	}
	return DefaultRedirect
}
