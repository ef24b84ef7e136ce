// Package handler wires the HTTP surface: Gin routes, the auth middleware
// and the translation of service errors to status codes.
package handler

import (
	"skillswap/backend/internal/auth"
	"skillswap/backend/internal/availability"
	"skillswap/backend/internal/booking"
	"skillswap/backend/internal/localization"
	"skillswap/backend/internal/matching"
	"skillswap/backend/internal/messaging"
	"skillswap/backend/internal/review"
	"skillswap/backend/internal/users"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler holds references to every service the routes delegate to.
type Handler struct {
	Users        *users.Service
	Tokens       *auth.TokenService
	Availability *availability.Service
	Booking      *booking.Service
	Matching     *matching.Service
	Messaging    *messaging.Service
	Reviews      *review.Service
	Localizer    *localization.Localizer
	Logger       *zap.Logger
}

func NewHandler(
	usersSvc *users.Service,
	tokens *auth.TokenService,
	availabilitySvc *availability.Service,
	bookingSvc *booking.Service,
	matchingSvc *matching.Service,
	messagingSvc *messaging.Service,
	reviewSvc *review.Service,
	localizer *localization.Localizer,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Users:        usersSvc,
		Tokens:       tokens,
		Availability: availabilitySvc,
		Booking:      bookingSvc,
		Matching:     matchingSvc,
		Messaging:    messagingSvc,
		Reviews:      reviewSvc,
		Localizer:    localizer,
		Logger:       logger,
	}
}

// RegisterRoutes attaches every endpoint to the engine. Everything except
// registration and login sits behind the auth middleware.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)

	authed := r.Group("/", h.RequireAuth())
	{
		authed.POST("/auth/logout", h.Logout)
		authed.GET("/auth/me", h.Me)

		authed.GET("/users/profile", h.GetProfile)
		authed.PATCH("/users/profile", h.UpdateProfile)
		authed.GET("/users/mentors", h.ListMentors)
		authed.GET("/users/:id", h.GetUser)

		authed.GET("/skills/offered", h.ListOfferedSkills)
		authed.POST("/skills/offered", h.AddOfferedSkill)
		authed.DELETE("/skills/offered/:id", h.DeleteSkill)
		authed.GET("/skills/wanted", h.ListWantedSkills)
		authed.POST("/skills/wanted", h.AddWantedSkill)
		authed.DELETE("/skills/wanted/:id", h.DeleteSkill)

		authed.GET("/languages", h.ListLanguages)
		authed.POST("/languages", h.AddLanguage)
		authed.DELETE("/languages/:id", h.DeleteLanguage)

		authed.POST("/availability", h.CreateAvailability)
		authed.GET("/availability", h.GetOwnAvailability)
		authed.DELETE("/availability/:id", h.DeleteAvailability)
		authed.GET("/availability/mentor/:mentorId", h.GetMentorAvailability)

		authed.POST("/sessions/request", h.CreateSessionRequest)
		authed.POST("/sessions/:id/accept", h.AcceptSession)
		authed.POST("/sessions/:id/reject", h.RejectSession)
		authed.POST("/sessions/:id/cancel", h.CancelSession)
		authed.POST("/sessions/:id/complete", h.CompleteSession)
		authed.GET("/sessions/pending", h.PendingSessions)
		authed.GET("/sessions/sent", h.SentSessions)
		authed.GET("/sessions/received", h.ReceivedSessions)
		authed.GET("/sessions/accepted", h.AcceptedSessions)

		authed.GET("/matches", h.PotentialMatches)
		authed.POST("/matches/send", h.SendMatchRequest)
		authed.POST("/matches/:id/accept", h.AcceptMatch)
		authed.POST("/matches/:id/reject", h.RejectMatch)
		authed.DELETE("/matches/:id/cancel", h.CancelMatch)
		authed.GET("/matches/sent", h.SentMatches)
		authed.GET("/matches/received", h.ReceivedMatches)
		authed.GET("/matches/accepted", h.AcceptedMatches)

		authed.GET("/conversations", h.ListConversations)
		authed.POST("/conversations", h.CreateConversation)
		authed.GET("/conversations/:id", h.GetConversation)
		authed.DELETE("/conversations/:id", h.DeleteConversation)
		authed.POST("/conversations/:id/read", h.MarkConversationRead)
		authed.GET("/conversations/:id/messages", h.GetConversationMessages)

		authed.POST("/messages/send", h.SendMessage)
		authed.GET("/messages/conversations", h.ListConversations)
		authed.GET("/messages/:userId", h.GetMessagesWithUser)

		authed.POST("/reviews/create", h.CreateReview)
		authed.DELETE("/reviews/:id", h.DeleteReview)
		authed.GET("/reviews/user/:id", h.GetUserReviews)
	}
}
