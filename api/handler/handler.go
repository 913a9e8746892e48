package handler

import (
	"github.com/jon4hz/notedeck/database"
)

// bcryptCost is the fixed cost factor for password hashing.
const bcryptCost = 10

// Handler bundles the request handlers for the users and notes routes.
type Handler struct {
	db database.DB
}

func New(db database.DB) *Handler {
	return &Handler{
		db: db,
	}
}
