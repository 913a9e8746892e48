package models

import (
	"encoding/json"
	"time"
)

// RoleList decodes the roles field of a request body. Anything that is not
// an array of strings is treated as if the field were absent, so a client
// sending e.g. a bare string still gets the default roles instead of a bind
// error.
type RoleList []string

func (r *RoleList) UnmarshalJSON(data []byte) error {
	var roles []string
	if err := json.Unmarshal(data, &roles); err != nil {
		*r = nil
		return nil
	}
	*r = roles
	return nil
}

// CreateNoteRequest is the body for POST /notes.
type CreateNoteRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	User  uint   `json:"user"`
}

// UpdateNoteRequest is the body for PATCH /notes.
// Completed is a pointer so a missing field can be told apart from false.
type UpdateNoteRequest struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	User      uint   `json:"user"`
	Completed *bool  `json:"completed"`
}

// DeleteNoteRequest is the body for DELETE /notes.
type DeleteNoteRequest struct {
	ID uint `json:"id"`
}

// CreateUserRequest is the body for POST /users.
type CreateUserRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Roles    RoleList `json:"roles"`
}

// UpdateUserRequest is the body for PATCH /users.
// Password is optional: the stored hash is only replaced when a new password
// is supplied.
type UpdateUserRequest struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Roles    RoleList `json:"roles"`
	Active   *bool    `json:"active"`
	Password string   `json:"password"`
}

// DeleteUserRequest is the body for DELETE /users.
type DeleteUserRequest struct {
	ID uint `json:"id"`
}

// LoginRequest is the body for POST /auth.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NoteResponse is a note as returned to clients, with the owning user's
// username attached.
type NoteResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	User      uint      `json:"user"`
	Username  string    `json:"username"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserResponse is a user as returned to clients. It never carries the
// password hash.
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
