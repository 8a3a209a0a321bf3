package domain

import "time"

// User is a single user record. It carries no behavior beyond a few
// convenience accessors; all rules live in Policy and in the repository.
type User struct {
	// ID is assigned by the store on creation. Zero means not yet persisted.
	ID      int64      `json:"id"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Created time.Time  `json:"created"`
	Deleted *time.Time `json:"deleted,omitempty"` // nil while the record is active
	Notes   *string    `json:"notes,omitempty"`
}

// NewUser creates an unpersisted User with the creation timestamp set to now.
//
// The timestamp is truncated to microseconds, the finest precision both
// supported stores keep, so a record read back compares equal to the one written.
func NewUser(name, email string) *User {
	return &User{
		Name:    name,
		Email:   email,
		Created: time.Now().UTC().Truncate(time.Microsecond),
	}
}

// IsDeleted reports whether the record has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.Deleted != nil
}

// IsPersisted reports whether the record has been assigned an ID by the store.
func (u *User) IsPersisted() bool {
	return u.ID != 0
}

// SetNotes replaces the notes with the given text.
func (u *User) SetNotes(notes string) {
	u.Notes = &notes
}

// NotesText returns the notes, or "" when none are set.
func (u *User) NotesText() string {
	if u.Notes == nil {
		return ""
	}
	return *u.Notes
}
