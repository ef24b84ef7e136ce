package storage

import (
	"errors"
	"fmt"
	"testing"

	"skillswap/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// TestResolveFirstContact_WinnerRowIsReturned verifies the loser of two
// concurrent first calls for one pair re-fetches the winner's committed row
// instead of surfacing the unique-index violation.
func TestResolveFirstContact_WinnerRowIsReturned(t *testing.T) {
	// Arrange
	winner := &models.Conversation{ID: "conv-1", User1ID: "alice", User2ID: "bob"}
	create := func() (*models.Conversation, error) {
		return nil, fmt.Errorf("insert conversation: %w", gorm.ErrDuplicatedKey)
	}
	lookup := func() (*models.Conversation, error) { return winner, nil }

	// Act
	conv, err := resolveFirstContact(create, lookup)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "conv-1", conv.ID)
}

// TestResolveFirstContact_CreateWinsWithoutLookup verifies the happy path
// never re-fetches.
func TestResolveFirstContact_CreateWinsWithoutLookup(t *testing.T) {
	// Arrange
	created := &models.Conversation{ID: "conv-1"}
	create := func() (*models.Conversation, error) { return created, nil }
	lookup := func() (*models.Conversation, error) {
		t.Fatal("lookup must not run when the create succeeds")
		return nil, nil
	}

	// Act
	conv, err := resolveFirstContact(create, lookup)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, created, conv)
}

// TestResolveFirstContact_OtherErrorsPropagate verifies only the duplicate
// pair triggers the fallback.
func TestResolveFirstContact_OtherErrorsPropagate(t *testing.T) {
	// Arrange
	boom := errors.New("connection reset")
	create := func() (*models.Conversation, error) { return nil, boom }
	lookup := func() (*models.Conversation, error) {
		t.Fatal("lookup must not run for non-duplicate errors")
		return nil, nil
	}

	// Act
	_, err := resolveFirstContact(create, lookup)

	// Assert
	assert.ErrorIs(t, err, boom)
}
