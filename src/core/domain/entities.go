package domain

import "time"

// Joke is a single submitted joke. Jokes are immutable once created; the app
// only ever inserts and reads them.
type Joke struct {
	ID         string
	Name       string
	Content    string
	JokesterID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// JokeRef is the lightweight listing form of a joke (sidebar links).
type JokeRef struct {
	ID   string
	Name string
}

// User is a registered account. PasswordHash is a bcrypt hash; the plaintext
// password never leaves the login/register flow.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
