package database

import (
	"context"
)

// DB defines the interface for database operations.
type DB interface {
	// User operations
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	SaveUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, user *User) error
	DeleteAllUsers(ctx context.Context) error
	CountUsers(ctx context.Context) (int64, error)

	// Note operations
	CreateNote(ctx context.Context, note *Note) error
	GetNoteByID(ctx context.Context, id uint) (*Note, error)
	GetNoteByTitle(ctx context.Context, title string) (*Note, error)
	GetFirstNoteByUserID(ctx context.Context, userID uint) (*Note, error)
	GetAllNotes(ctx context.Context) ([]Note, error)
	SaveNote(ctx context.Context, note *Note) error
	DeleteNote(ctx context.Context, note *Note) error
	DeleteAllNotes(ctx context.Context) error
	CountNotes(ctx context.Context) (int64, error)
	CountCompletedNotes(ctx context.Context) (int64, error)

	// Utility
	Close() error
}
