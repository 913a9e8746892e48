package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Note represents a note in the database.
// Titles are unique case-insensitively across all notes. Every note belongs
// to exactly one user; the reference is enforced by the handlers, not by a
// foreign key constraint, so the delete guard in the users handler is the
// only thing keeping notes from dangling.
type Note struct {
	gorm.Model
	Title     string `gorm:"not null"`
	Text      string `gorm:"not null"`
	UserID    uint   `gorm:"index;not null"`
	User      User
	Completed bool `gorm:"default:false"`
}

func (c *Client) CreateNote(ctx context.Context, note *Note) error {
	if err := c.db.WithContext(ctx).Create(note).Error; err != nil {
		log.Error("failed to create note", "error", err)
		return err
	}
	return nil
}

func (c *Client) GetNoteByID(ctx context.Context, id uint) (*Note, error) {
	var note Note
	if err := c.db.WithContext(ctx).First(&note, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get note by ID", "error", err)
		}
		return nil, err
	}
	return &note, nil
}

// GetNoteByTitle looks up a note by title, ignoring letter case.
func (c *Client) GetNoteByTitle(ctx context.Context, title string) (*Note, error) {
	var note Note
	if err := c.db.WithContext(ctx).Where("title = ? COLLATE NOCASE", title).First(&note).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get note by title", "error", err)
		}
		return nil, err
	}
	return &note, nil
}

// GetFirstNoteByUserID returns any note owned by the given user.
// It backs the referential guard on user deletion.
func (c *Client) GetFirstNoteByUserID(ctx context.Context, userID uint) (*Note, error) {
	var note Note
	if err := c.db.WithContext(ctx).Where("user_id = ?", userID).First(&note).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get note by user ID", "error", err)
		}
		return nil, err
	}
	return &note, nil
}

// GetAllNotes returns all notes with their owning user preloaded.
func (c *Client) GetAllNotes(ctx context.Context) ([]Note, error) {
	var notes []Note
	if err := c.db.WithContext(ctx).Preload("User").Find(&notes).Error; err != nil {
		log.Error("failed to get all notes", "error", err)
		return nil, err
	}
	return notes, nil
}

func (c *Client) SaveNote(ctx context.Context, note *Note) error {
	if err := c.db.WithContext(ctx).Save(note).Error; err != nil {
		log.Error("failed to save note", "error", err)
		return err
	}
	return nil
}

// DeleteNote removes the row for good, matching the user delete.
func (c *Client) DeleteNote(ctx context.Context, note *Note) error {
	if err := c.db.WithContext(ctx).Unscoped().Delete(note).Error; err != nil {
		log.Error("failed to delete note", "error", err)
		return err
	}
	return nil
}

// DeleteAllNotes removes every note record.
func (c *Client) DeleteAllNotes(ctx context.Context) error {
	return c.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&Note{}).Error
}

func (c *Client) CountNotes(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&Note{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (c *Client) CountCompletedNotes(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&Note{}).Where("completed = ?", true).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
