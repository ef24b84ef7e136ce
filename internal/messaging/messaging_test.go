package messaging_test

import (
	"fmt"
	"testing"
	"time"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/messaging"
	"skillswap/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) GetOrCreateConversation(userA, userB string) (*models.Conversation, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockStore) GetConversationByID(id string) (*models.Conversation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockStore) ListConversationsForUser(userID string) ([]models.Conversation, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Conversation), args.Error(1)
}

func (m *MockStore) DeleteConversation(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStore) CreateMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStore) ListMessages(conversationID string, limit int) ([]models.Message, error) {
	args := m.Called(conversationID, limit)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStore) GetLastMessage(conversationID string) (*models.Message, error) {
	args := m.Called(conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStore) GetParticipant(conversationID, userID string) (*models.Participant, error) {
	args := m.Called(conversationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Participant), args.Error(1)
}

func (m *MockStore) TouchLastRead(conversationID, userID string, at time.Time) error {
	args := m.Called(conversationID, userID, at)
	return args.Error(0)
}

func (m *MockStore) CountUnread(conversationID, userID string, since time.Time) (int64, error) {
	args := m.Called(conversationID, userID, since)
	return args.Get(0).(int64), args.Error(1)
}

func pairConversation(id, a, b string) *models.Conversation {
	u1, u2 := models.NormalizePair(a, b)
	return &models.Conversation{ID: id, User1ID: u1, User2ID: u2}
}

// TestGetOrCreateConversation_SelfIsInvalid verifies a user cannot open a
// thread with themselves.
func TestGetOrCreateConversation_SelfIsInvalid(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := messaging.NewService(store, nil)

	// Act
	_, err := svc.GetOrCreateConversation("alice", "alice")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	store.AssertNotCalled(t, "GetOrCreateConversation", mock.Anything, mock.Anything)
}

// TestGetOrCreateConversation_Idempotent verifies two calls for the same pair
// yield the same conversation regardless of argument order.
func TestGetOrCreateConversation_Idempotent(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := messaging.NewService(store, nil)
	conv := pairConversation("conv-1", "alice", "bob")
	store.On("GetUserByID", mock.Anything).Return(&models.User{}, nil)
	store.On("GetOrCreateConversation", "alice", "bob").Return(conv, nil)
	store.On("GetOrCreateConversation", "bob", "alice").Return(conv, nil)

	// Act
	first, err1 := svc.GetOrCreateConversation("alice", "bob")
	second, err2 := svc.GetOrCreateConversation("bob", "alice")

	// Assert
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first.ID, second.ID)
}

// TestGetOrCreateConversation_UnknownOther verifies the other user must exist.
func TestGetOrCreateConversation_UnknownOther(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := messaging.NewService(store, nil)
	store.On("GetUserByID", "ghost").
		Return(nil, fmt.Errorf("user ghost: %w", apperrors.ErrNotFound))

	// Act
	_, err := svc.GetOrCreateConversation("alice", "ghost")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// TestSendMessage_RejectsEmptyContent verifies whitespace-only bodies never
// reach storage.
func TestSendMessage_RejectsEmptyContent(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := messaging.NewService(store, nil)

	// Act
	_, err := svc.SendMessage("alice", "bob", "   ")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	store.AssertNotCalled(t, "CreateMessage", mock.Anything)
}

// TestSendMessage_AppendsToPairThread verifies the message lands in the
// pair's conversation.
func TestSendMessage_AppendsToPairThread(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := messaging.NewService(store, nil)
	store.On("GetUserByID", "bob").Return(&models.User{ID: "bob"}, nil)
	store.On("GetOrCreateConversation", "alice", "bob").
		Return(pairConversation("conv-1", "alice", "bob"), nil)
	store.On("CreateMessage", mock.AnythingOfType("*models.Message")).Return(nil)

	// Act
	msg, err := svc.SendMessage("alice", "bob", "hi there")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "conv-1", msg.ConversationID)
	assert.Equal(t, "alice", msg.SenderID)
	store.AssertExpectations(t)
}

// TestGetMessages_ParticipantsOnly verifies outsiders cannot read a thread.
func TestGetMessages_ParticipantsOnly(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := messaging.NewService(store, nil)
	store.On("GetConversationByID", "conv-1").
		Return(pairConversation("conv-1", "alice", "bob"), nil)

	// Act
	_, err := svc.GetMessages("conv-1", "eve", 10)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrAuthorization)
	store.AssertNotCalled(t, "ListMessages", mock.Anything, mock.Anything)
}

// TestGetMessages_ClampsPageSize verifies the limit defaults and caps.
func TestGetMessages_ClampsPageSize(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := messaging.NewService(store, nil)
	store.On("GetConversationByID", "conv-1").
		Return(pairConversation("conv-1", "alice", "bob"), nil)
	store.On("ListMessages", "conv-1", 50).Return([]models.Message{}, nil).Once()
	store.On("ListMessages", "conv-1", 200).Return([]models.Message{}, nil).Once()

	// Act
	_, errDefault := svc.GetMessages("conv-1", "alice", 0)
	_, errCapped := svc.GetMessages("conv-1", "alice", 9999)

	// Assert
	assert.NoError(t, errDefault)
	assert.NoError(t, errCapped)
	store.AssertExpectations(t)
}

// TestMarkAsRead_TouchesOnlyCallerCursor verifies the read cursor update is
// scoped to the calling participant.
func TestMarkAsRead_TouchesOnlyCallerCursor(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := messaging.NewService(store, nil)
	store.On("GetConversationByID", "conv-1").
		Return(pairConversation("conv-1", "alice", "bob"), nil)
	store.On("TouchLastRead", "conv-1", "alice", mock.AnythingOfType("time.Time")).Return(nil)

	// Act
	err := svc.MarkAsRead("alice", "conv-1")

	// Assert
	assert.NoError(t, err)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "TouchLastRead", "conv-1", "bob", mock.Anything)
}

// TestUnreadCount_UsesReadCursor verifies the count is taken from the
// caller's last-read position.
func TestUnreadCount_UsesReadCursor(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := messaging.NewService(store, nil)
	cursor := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.On("GetConversationByID", "conv-1").
		Return(pairConversation("conv-1", "alice", "bob"), nil)
	store.On("GetParticipant", "conv-1", "bob").
		Return(&models.Participant{Model: gorm.Model{ID: 2}, UserID: "bob", LastReadAt: cursor}, nil)
	store.On("CountUnread", "conv-1", "bob", cursor).Return(int64(3), nil)

	// Act
	unread, err := svc.UnreadCount("bob", "conv-1")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(3), unread)
	store.AssertExpectations(t)
}

// TestGetConversations_BuildsSummaries verifies the inbox view carries
// partner, last message and unread count.
func TestGetConversations_BuildsSummaries(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := messaging.NewService(store, nil)
	cursor := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.On("ListConversationsForUser", "alice").
		Return([]models.Conversation{*pairConversation("conv-1", "alice", "bob")}, nil)
	store.On("GetParticipant", "conv-1", "alice").
		Return(&models.Participant{UserID: "alice", LastReadAt: cursor}, nil)
	store.On("CountUnread", "conv-1", "alice", cursor).Return(int64(2), nil)
	store.On("GetLastMessage", "conv-1").
		Return(&models.Message{ConversationID: "conv-1", SenderID: "bob", Content: "see you"}, nil)

	// Act
	summaries, err := svc.GetConversations("alice")

	// Assert
	assert.NoError(t, err)
	if assert.Len(t, summaries, 1) {
		assert.Equal(t, "bob", summaries[0].PartnerID)
		assert.Equal(t, int64(2), summaries[0].UnreadCount)
		assert.Equal(t, "see you", summaries[0].LastMessage.Content)
	}
}

// TestDeleteConversation_ParticipantsOnly verifies outsiders cannot delete a
// thread.
func TestDeleteConversation_ParticipantsOnly(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := messaging.NewService(store, nil)
	store.On("GetConversationByID", "conv-1").
		Return(pairConversation("conv-1", "alice", "bob"), nil)

	// Act
	err := svc.DeleteConversation("conv-1", "eve")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrAuthorization)
	store.AssertNotCalled(t, "DeleteConversation", mock.Anything)
}
