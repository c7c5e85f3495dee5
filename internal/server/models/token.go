// Package models defines the records persisted by the server.
package models

import (
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// Token is an allow-list entry backing one issued credential. The row id
// is embedded into the signed token, so a credential stays valid only while
// its row exists.
//
// UserID is fixed at construction. ID is unset until the repository
// persists the token and is assigned exactly once.
type Token struct {
	id        int64
	hasID     bool
	userID    int64
	CreatedAt time.Time
}

// NewToken returns an unsaved token for userID.
func NewToken(userID int64) *Token {
	return &Token{userID: userID}
}

// RestoreToken rebuilds a token read back from the store.
func RestoreToken(id, userID int64, createdAt time.Time) *Token {
	return &Token{id: id, hasID: true, userID: userID, CreatedAt: createdAt}
}

// ID returns the row id and whether it has been assigned.
func (t *Token) ID() (int64, bool) { return t.id, t.hasID }

func (t *Token) UserID() int64 { return t.userID }

// AssignID records the id given by the store. A second call fails with
// common.ErrIDAlreadyAssigned.
func (t *Token) AssignID(id int64) error {
	if t.hasID {
		return common.ErrIDAlreadyAssigned
	}
	t.id = id
	t.hasID = true
	return nil
}
