package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/notedeck/api/models"
	"github.com/jon4hz/notedeck/database"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
)

// ListUsers handles GET /users. Password hashes never leave the database
// layer. Like the notes list, an empty table is reported as an error.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.db.GetAllUsers(c.Request.Context())
	if err != nil {
		log.Error("failed to list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if len(users) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No users found"})
		return
	}

	c.JSON(http.StatusOK, lo.Map(users, func(user database.User, _ int) models.UserResponse {
		return models.UserResponseFrom(user)
	}))
}

// CreateUser handles POST /users.
// Validation and duplicate failures respond with 200 and a message body
// rather than an error status. The frontend this API was built for keys off
// the message, so the status codes stay as they are.
func (h *Handler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "All fields are required"})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusOK, gin.H{"message": "All fields are required"})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.db.GetUserByUsername(ctx, req.Username); err == nil {
		c.JSON(http.StatusOK, gin.H{"message": "User already exists"})
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	roles := database.Roles(req.Roles)
	if len(roles) == 0 {
		roles = database.DefaultRoles()
	}

	user := &database.User{
		Username: req.Username,
		Password: string(hash),
		Roles:    roles,
		Active:   true,
	}
	if err := h.db.CreateUser(ctx, user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user data received"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("New user %s created", user.Username)})
}

// UpdateUser handles PATCH /users. All fields except password are required;
// the stored hash is only replaced when a new password is supplied.
func (h *Handler) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields except password are required"})
		return
	}
	if req.ID == 0 || req.Username == "" || len(req.Roles) == 0 || req.Active == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields except password are required"})
		return
	}

	ctx := c.Request.Context()

	user, err := h.db.GetUserByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	// A user may keep their own username, in any letter case.
	duplicate, err := h.db.GetUserByUsername(ctx, req.Username)
	if err == nil && duplicate.ID != user.ID {
		c.JSON(http.StatusConflict, gin.H{"message": "Duplicate username"})
		return
	} else if err != nil && !errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	user.Username = req.Username
	user.Roles = database.Roles(req.Roles)
	user.Active = *req.Active

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			log.Error("failed to hash password", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}
		user.Password = string(hash)
	}

	if err := h.db.SaveUser(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s updated", user.Username)})
}

// DeleteUser handles DELETE /users. The referential guard runs before the
// existence check: a dangling note reference surfaces as "has assigned
// notes" even when the user id itself no longer resolves.
func (h *Handler) DeleteUser(c *gin.Context) {
	var req models.DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID required"})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.db.GetFirstNoteByUserID(ctx, req.ID); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User has assigned notes"})
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	user, err := h.db.GetUserByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if err := h.db.DeleteUser(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Username %s with ID %d deleted", user.Username, user.ID)})
}
