package database

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// User represents a user in the database.
// The username is unique case-insensitively: "Alice" and "alice" refer to the
// same account. The password field always holds a bcrypt hash and is never
// serialized to clients.
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null" json:"-"`
	Roles    Roles  `gorm:"type:text"`
	Active   bool   `gorm:"default:true"`
}

// Roles is a set of role tags stored as a JSON text column.
type Roles []string

// DefaultRoles returns the roles assigned to accounts created without any.
func DefaultRoles() Roles {
	return Roles{"Employee"}
}

// Value implements driver.Valuer.
func (r Roles) Value() (driver.Value, error) {
	if len(r) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal roles: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (r *Roles) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*r = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), r)
	case []byte:
		return json.Unmarshal(v, r)
	default:
		return fmt.Errorf("unsupported type %T for roles", value)
	}
}

func (c *Client) CreateUser(ctx context.Context, user *User) error {
	if err := c.db.WithContext(ctx).Create(user).Error; err != nil {
		log.Error("failed to create user", "error", err)
		return err
	}
	return nil
}

func (c *Client) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get user by ID", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername looks up a user by username, ignoring letter case.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("username = ? COLLATE NOCASE", username).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get user by username", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetAllUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.db.WithContext(ctx).Find(&users).Error; err != nil {
		log.Error("failed to get all users", "error", err)
		return nil, err
	}
	return users, nil
}

func (c *Client) SaveUser(ctx context.Context, user *User) error {
	if err := c.db.WithContext(ctx).Save(user).Error; err != nil {
		log.Error("failed to save user", "error", err)
		return err
	}
	return nil
}

// DeleteUser removes the row for good. A soft delete would keep the
// username in the unique index and block re-creating the account.
func (c *Client) DeleteUser(ctx context.Context, user *User) error {
	if err := c.db.WithContext(ctx).Unscoped().Delete(user).Error; err != nil {
		log.Error("failed to delete user", "error", err)
		return err
	}
	return nil
}

// DeleteAllUsers removes every user record.
func (c *Client) DeleteAllUsers(ctx context.Context) error {
	return c.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&User{}).Error
}

func (c *Client) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
