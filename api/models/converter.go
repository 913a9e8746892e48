package models

import "github.com/jon4hz/notedeck/database"

// NoteResponseFrom converts a database note into its API representation.
// The owning user must be preloaded for the username to be populated.
func NoteResponseFrom(note database.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Text:      note.Text,
		User:      note.UserID,
		Username:  note.User.Username,
		Completed: note.Completed,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// UserResponseFrom converts a database user into its API representation,
// dropping the password hash.
func UserResponseFrom(user database.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Roles:     user.Roles,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
