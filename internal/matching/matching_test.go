package matching_test

import (
	"testing"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/matching"
	"skillswap/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListSkills(userID, kind string) ([]models.Skill, error) {
	args := m.Called(userID, kind)
	return args.Get(0).([]models.Skill), args.Error(1)
}

func (m *MockStore) ListSkillsByNames(names []string, kind string) ([]models.Skill, error) {
	args := m.Called(names, kind)
	return args.Get(0).([]models.Skill), args.Error(1)
}

func (m *MockStore) GetUsersByIDs(ids []string) ([]models.User, error) {
	args := m.Called(ids)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStore) GetReviewStats(targetID string) (float64, int64, error) {
	args := m.Called(targetID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *MockStore) CreateMatchRequest(match *models.MatchRequest) error {
	args := m.Called(match)
	return args.Error(0)
}

func (m *MockStore) GetMatchRequest(id uint) (*models.MatchRequest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MatchRequest), args.Error(1)
}

func (m *MockStore) FindActiveMatch(senderID, receiverID, skill string) (*models.MatchRequest, error) {
	args := m.Called(senderID, receiverID, skill)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MatchRequest), args.Error(1)
}

func (m *MockStore) UpdateMatchStatus(id uint, from, to string) error {
	args := m.Called(id, from, to)
	return args.Error(0)
}

func (m *MockStore) ListMatchesBySender(senderID string, statuses []string) ([]models.MatchRequest, error) {
	args := m.Called(senderID, statuses)
	return args.Get(0).([]models.MatchRequest), args.Error(1)
}

func (m *MockStore) ListMatchesByReceiver(receiverID string, statuses []string) ([]models.MatchRequest, error) {
	args := m.Called(receiverID, statuses)
	return args.Get(0).([]models.MatchRequest), args.Error(1)
}

func (m *MockStore) ListMatchesForUser(userID string, statuses []string) ([]models.MatchRequest, error) {
	args := m.Called(userID, statuses)
	return args.Get(0).([]models.MatchRequest), args.Error(1)
}

func skill(userID, name, kind string) models.Skill {
	return models.Skill{UserID: userID, Name: name, Kind: kind}
}

// TestGetPotentialMatches_OrdersByOverlap verifies candidates are ranked by
// shared skill count, ties broken alphabetically.
func TestGetPotentialMatches_OrdersByOverlap(t *testing.T) {
	// Arrange - caller offers Go, wants Guitar and Piano. Bob teaches both
	// wanted skills; Alice and Carl teach one each.
	store := new(MockStore)
	svc := matching.NewService(store, nil)

	store.On("ListSkills", "me", "").Return([]models.Skill{
		skill("me", "Go", models.SkillOffered),
		skill("me", "Guitar", models.SkillWanted),
		skill("me", "Piano", models.SkillWanted),
	}, nil)
	store.On("ListMatchesForUser", "me", mock.Anything).Return([]models.MatchRequest{}, nil)
	store.On("ListSkillsByNames", []string{"Guitar", "Piano"}, models.SkillOffered).
		Return([]models.Skill{
			skill("bob", "Guitar", models.SkillOffered),
			skill("bob", "Piano", models.SkillOffered),
			skill("alice", "Guitar", models.SkillOffered),
			skill("carl", "Piano", models.SkillOffered),
		}, nil)
	store.On("ListSkillsByNames", []string{"Go"}, models.SkillWanted).
		Return([]models.Skill{}, nil)
	store.On("GetUsersByIDs", mock.Anything).Return([]models.User{
		{ID: "alice", Name: "Alice"},
		{ID: "bob", Name: "Bob"},
		{ID: "carl", Name: "Carl"},
	}, nil)
	store.On("GetReviewStats", mock.Anything).Return(0.0, int64(0), nil)

	// Act
	matches, err := svc.GetPotentialMatches("me")

	// Assert - Bob first on overlap, then Alice before Carl on name.
	assert.NoError(t, err)
	if assert.Len(t, matches, 3) {
		assert.Equal(t, "bob", matches[0].User.ID)
		assert.Equal(t, 2, matches[0].OverlapCount)
		assert.Equal(t, []string{"Guitar", "Piano"}, matches[0].TheyCanTeach)
		assert.Equal(t, "alice", matches[1].User.ID)
		assert.Equal(t, "carl", matches[2].User.ID)
	}
}

// TestGetPotentialMatches_ExcludesActivePartners verifies users already
// matched with the caller never show up as candidates.
func TestGetPotentialMatches_ExcludesActivePartners(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := matching.NewService(store, nil)

	store.On("ListSkills", "me", "").Return([]models.Skill{
		skill("me", "Guitar", models.SkillWanted),
	}, nil)
	store.On("ListMatchesForUser", "me", mock.Anything).Return([]models.MatchRequest{
		{SenderID: "me", ReceiverID: "bob", Status: models.MatchAccepted},
	}, nil)
	store.On("ListSkillsByNames", []string{"Guitar"}, models.SkillOffered).
		Return([]models.Skill{skill("bob", "Guitar", models.SkillOffered)}, nil)
	store.On("ListSkillsByNames", []string(nil), models.SkillWanted).
		Return([]models.Skill{}, nil)

	// Act
	matches, err := svc.GetPotentialMatches("me")

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, matches)
	store.AssertNotCalled(t, "GetUsersByIDs", mock.Anything)
}

// TestSendMatchRequest_ReceiverMustOffer verifies the directional check on
// the receiver's side.
func TestSendMatchRequest_ReceiverMustOffer(t *testing.T) {
	// Arrange - sender wants Guitar but receiver doesn't teach it.
	store := new(MockStore)
	svc := matching.NewService(store, nil)
	store.On("ListSkills", "me", models.SkillWanted).
		Return([]models.Skill{skill("me", "Guitar", models.SkillWanted)}, nil)
	store.On("ListSkills", "bob", models.SkillOffered).
		Return([]models.Skill{skill("bob", "Piano", models.SkillOffered)}, nil)

	// Act
	_, err := svc.SendMatchRequest("me", "bob", "Guitar")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	store.AssertNotCalled(t, "CreateMatchRequest", mock.Anything)
}

// TestSendMatchRequest_SenderMustWant verifies the sender-side check.
func TestSendMatchRequest_SenderMustWant(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := matching.NewService(store, nil)
	store.On("ListSkills", "me", models.SkillWanted).Return([]models.Skill{}, nil)

	// Act
	_, err := svc.SendMatchRequest("me", "bob", "Guitar")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

// TestSendMatchRequest_DuplicateActiveConflicts verifies an existing
// pending/accepted match for the same pair and skill blocks a new one.
func TestSendMatchRequest_DuplicateActiveConflicts(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := matching.NewService(store, nil)
	store.On("ListSkills", "me", models.SkillWanted).
		Return([]models.Skill{skill("me", "Guitar", models.SkillWanted)}, nil)
	store.On("ListSkills", "bob", models.SkillOffered).
		Return([]models.Skill{skill("bob", "Guitar", models.SkillOffered)}, nil)
	store.On("FindActiveMatch", "me", "bob", "Guitar").
		Return(&models.MatchRequest{Model: gorm.Model{ID: 3}, Status: models.MatchPending}, nil)

	// Act
	_, err := svc.SendMatchRequest("me", "bob", "Guitar")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	store.AssertNotCalled(t, "CreateMatchRequest", mock.Anything)
}

// TestSendMatchRequest_CreatesPending covers the happy path, including the
// case-insensitive skill comparison.
func TestSendMatchRequest_CreatesPending(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := matching.NewService(store, nil)
	store.On("ListSkills", "me", models.SkillWanted).
		Return([]models.Skill{skill("me", "guitar", models.SkillWanted)}, nil)
	store.On("ListSkills", "bob", models.SkillOffered).
		Return([]models.Skill{skill("bob", "GUITAR", models.SkillOffered)}, nil)
	store.On("FindActiveMatch", "me", "bob", "Guitar").Return(nil, nil)
	store.On("CreateMatchRequest", mock.AnythingOfType("*models.MatchRequest")).Return(nil)

	// Act
	match, err := svc.SendMatchRequest("me", "bob", "Guitar")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.MatchPending, match.Status)
	assert.Equal(t, "bob", match.ReceiverID)
	store.AssertExpectations(t)
}

// TestAcceptRequest_ReceiverOnly verifies the sender cannot accept their own
// request.
func TestAcceptRequest_ReceiverOnly(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := matching.NewService(store, nil)
	store.On("GetMatchRequest", uint(3)).Return(&models.MatchRequest{
		Model:      gorm.Model{ID: 3},
		SenderID:   "me",
		ReceiverID: "bob",
		Status:     models.MatchPending,
	}, nil)

	// Act
	_, err := svc.AcceptRequest(3, "me")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrAuthorization)
	store.AssertNotCalled(t, "UpdateMatchStatus", mock.Anything, mock.Anything, mock.Anything)
}

// TestRejectRequest_Transitions verifies the pending -> rejected transition
// goes through the guarded status update.
func TestRejectRequest_Transitions(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := matching.NewService(store, nil)
	store.On("GetMatchRequest", uint(3)).Return(&models.MatchRequest{
		Model:      gorm.Model{ID: 3},
		SenderID:   "me",
		ReceiverID: "bob",
		Status:     models.MatchPending,
	}, nil)
	store.On("UpdateMatchStatus", uint(3), models.MatchPending, models.MatchRejected).Return(nil)

	// Act
	match, err := svc.RejectRequest(3, "bob")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.MatchRejected, match.Status)
	store.AssertExpectations(t)
}

// TestCancelRequest_InactiveIsStateError verifies a decided match cannot be
// cancelled again.
func TestCancelRequest_InactiveIsStateError(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := matching.NewService(store, nil)
	store.On("GetMatchRequest", uint(3)).Return(&models.MatchRequest{
		Model:      gorm.Model{ID: 3},
		SenderID:   "me",
		ReceiverID: "bob",
		Status:     models.MatchRejected,
	}, nil)

	// Act
	_, err := svc.CancelRequest(3, "me")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrState)
}
