package mock

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jon4hz/notedeck/database"
	"gorm.io/gorm"
)

var _ database.DB = (*MockDB)(nil)

// MockDB is an in-memory implementation of database.DB for testing.
// Username and title lookups match case-insensitively, like the real client.
type MockDB struct {
	mu sync.RWMutex

	users      map[uint]*database.User
	nextUserID uint

	notes      map[uint]*database.Note
	nextNoteID uint

	// Error simulation
	CreateUserError  error
	GetUserError     error
	GetAllUsersError error
	SaveUserError    error
	DeleteUserError  error

	CreateNoteError  error
	GetNoteError     error
	GetAllNotesError error
	SaveNoteError    error
	DeleteNoteError  error
}

// NewMockDB creates a new MockDB instance.
func NewMockDB() *MockDB {
	return &MockDB{
		users:      make(map[uint]*database.User),
		nextUserID: 1,
		notes:      make(map[uint]*database.Note),
		nextNoteID: 1,
	}
}

func (m *MockDB) CreateUser(_ context.Context, user *database.User) error {
	if m.CreateUserError != nil {
		return m.CreateUserError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	user.ID = m.nextUserID
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	m.nextUserID++

	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *MockDB) GetUserByID(_ context.Context, id uint) (*database.User, error) {
	if m.GetUserError != nil {
		return nil, m.GetUserError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u := *user
	return &u, nil
}

func (m *MockDB) GetUserByUsername(_ context.Context, username string) (*database.User, error) {
	if m.GetUserError != nil {
		return nil, m.GetUserError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if strings.EqualFold(user.Username, username) {
			u := *user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockDB) GetAllUsers(_ context.Context) ([]database.User, error) {
	if m.GetAllUsersError != nil {
		return nil, m.GetAllUsersError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]database.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, *user)
	}
	return users, nil
}

func (m *MockDB) SaveUser(_ context.Context, user *database.User) error {
	if m.SaveUserError != nil {
		return m.SaveUserError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	user.UpdatedAt = time.Now()
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *MockDB) DeleteUser(_ context.Context, user *database.User) error {
	if m.DeleteUserError != nil {
		return m.DeleteUserError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.users, user.ID)
	return nil
}

func (m *MockDB) DeleteAllUsers(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = make(map[uint]*database.User)
	return nil
}

func (m *MockDB) CountUsers(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.users)), nil
}

func (m *MockDB) CreateNote(_ context.Context, note *database.Note) error {
	if m.CreateNoteError != nil {
		return m.CreateNoteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	note.ID = m.nextNoteID
	note.CreatedAt = time.Now()
	note.UpdatedAt = time.Now()
	m.nextNoteID++

	stored := *note
	m.notes[note.ID] = &stored
	return nil
}

func (m *MockDB) GetNoteByID(_ context.Context, id uint) (*database.Note, error) {
	if m.GetNoteError != nil {
		return nil, m.GetNoteError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	note, ok := m.notes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	n := *note
	return &n, nil
}

func (m *MockDB) GetNoteByTitle(_ context.Context, title string) (*database.Note, error) {
	if m.GetNoteError != nil {
		return nil, m.GetNoteError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, note := range m.notes {
		if strings.EqualFold(note.Title, title) {
			n := *note
			return &n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockDB) GetFirstNoteByUserID(_ context.Context, userID uint) (*database.Note, error) {
	if m.GetNoteError != nil {
		return nil, m.GetNoteError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, note := range m.notes {
		if note.UserID == userID {
			n := *note
			return &n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockDB) GetAllNotes(_ context.Context) ([]database.Note, error) {
	if m.GetAllNotesError != nil {
		return nil, m.GetAllNotesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	notes := make([]database.Note, 0, len(m.notes))
	for _, note := range m.notes {
		n := *note
		if user, ok := m.users[n.UserID]; ok {
			n.User = *user
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func (m *MockDB) SaveNote(_ context.Context, note *database.Note) error {
	if m.SaveNoteError != nil {
		return m.SaveNoteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.notes[note.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	note.UpdatedAt = time.Now()
	stored := *note
	m.notes[note.ID] = &stored
	return nil
}

func (m *MockDB) DeleteNote(_ context.Context, note *database.Note) error {
	if m.DeleteNoteError != nil {
		return m.DeleteNoteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.notes, note.ID)
	return nil
}

func (m *MockDB) DeleteAllNotes(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notes = make(map[uint]*database.Note)
	return nil
}

func (m *MockDB) CountNotes(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.notes)), nil
}

func (m *MockDB) CountCompletedNotes(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, note := range m.notes {
		if note.Completed {
			count++
		}
	}
	return count, nil
}

func (m *MockDB) Close() error {
	return nil
}
