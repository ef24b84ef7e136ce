// Package matching computes candidate skill-exchange partners and manages
// directional match requests. A candidate is anyone whose offered skills
// intersect the caller's wanted skills or vice versa, excluding the caller
// and anyone with an active match already.
package matching

import (
	"fmt"
	"sort"
	"strings"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/models"

	"go.uber.org/zap"
)

type Store interface {
	ListSkills(userID, kind string) ([]models.Skill, error)
	ListSkillsByNames(names []string, kind string) ([]models.Skill, error)
	GetUsersByIDs(ids []string) ([]models.User, error)
	GetReviewStats(targetID string) (float64, int64, error)

	CreateMatchRequest(match *models.MatchRequest) error
	GetMatchRequest(id uint) (*models.MatchRequest, error)
	FindActiveMatch(senderID, receiverID, skill string) (*models.MatchRequest, error)
	UpdateMatchStatus(id uint, from, to string) error
	ListMatchesBySender(senderID string, statuses []string) ([]models.MatchRequest, error)
	ListMatchesByReceiver(receiverID string, statuses []string) ([]models.MatchRequest, error)
	ListMatchesForUser(userID string, statuses []string) ([]models.MatchRequest, error)
}

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

var activeStatuses = []string{models.MatchPending, models.MatchAccepted}

// GetPotentialMatches returns candidate partners ordered by overlap count
// descending, then alphabetically by name.
func (s *Service) GetPotentialMatches(userID string) ([]models.PotentialMatch, error) {
	mySkills, err := s.store.ListSkills(userID, "")
	if err != nil {
		return nil, err
	}

	myOffered := make(map[string]bool)
	myWanted := make(map[string]bool)
	var offeredNames, wantedNames []string
	for _, sk := range mySkills {
		switch sk.Kind {
		case models.SkillOffered:
			myOffered[sk.Name] = true
			offeredNames = append(offeredNames, sk.Name)
		case models.SkillWanted:
			myWanted[sk.Name] = true
			wantedNames = append(wantedNames, sk.Name)
		}
	}

	// Users with an active match with the caller are off the table.
	activeMatches, err := s.store.ListMatchesForUser(userID, activeStatuses)
	if err != nil {
		return nil, err
	}
	excluded := map[string]bool{userID: true}
	for _, m := range activeMatches {
		excluded[m.SenderID] = true
		excluded[m.ReceiverID] = true
	}

	// Counterpart rows: their offered skills hitting my wanted set, and
	// their wanted skills hitting my offered set.
	theyTeach, err := s.store.ListSkillsByNames(wantedNames, models.SkillOffered)
	if err != nil {
		return nil, err
	}
	theyWant, err := s.store.ListSkillsByNames(offeredNames, models.SkillWanted)
	if err != nil {
		return nil, err
	}

	type overlap struct {
		theyCanTeach map[string]bool
		youCanTeach  map[string]bool
	}
	byUser := make(map[string]*overlap)
	add := func(userID string) *overlap {
		o, ok := byUser[userID]
		if !ok {
			o = &overlap{theyCanTeach: make(map[string]bool), youCanTeach: make(map[string]bool)}
			byUser[userID] = o
		}
		return o
	}
	for _, sk := range theyTeach {
		if excluded[sk.UserID] {
			continue
		}
		add(sk.UserID).theyCanTeach[sk.Name] = true
	}
	for _, sk := range theyWant {
		if excluded[sk.UserID] {
			continue
		}
		add(sk.UserID).youCanTeach[sk.Name] = true
	}

	if len(byUser) == 0 {
		return []models.PotentialMatch{}, nil
	}

	ids := make([]string, 0, len(byUser))
	for id := range byUser {
		ids = append(ids, id)
	}
	users, err := s.store.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}

	matches := make([]models.PotentialMatch, 0, len(users))
	for _, u := range users {
		o := byUser[u.ID]
		shared := make(map[string]bool)
		for name := range o.theyCanTeach {
			shared[name] = true
		}
		for name := range o.youCanTeach {
			shared[name] = true
		}

		avg, count, err := s.store.GetReviewStats(u.ID)
		if err != nil {
			return nil, err
		}
		matches = append(matches, models.PotentialMatch{
			User: models.PublicProfile{
				ID:            u.ID,
				Name:          u.Name,
				Bio:           u.Bio,
				IsMentor:      u.IsMentor,
				Interests:     u.Interests,
				AverageRating: avg,
				ReviewCount:   int(count),
			},
			SharedSkills: sortedKeys(shared),
			OverlapCount: len(shared),
			TheyCanTeach: sortedKeys(o.theyCanTeach),
			YouCanTeach:  sortedKeys(o.youCanTeach),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].OverlapCount != matches[j].OverlapCount {
			return matches[i].OverlapCount > matches[j].OverlapCount
		}
		return matches[i].User.Name < matches[j].User.Name
	})
	return matches, nil
}

// SendMatchRequest creates a directional request for one skill. The sender
// must want the skill and the receiver must offer it.
func (s *Service) SendMatchRequest(senderID, receiverID, skill string) (*models.MatchRequest, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, fmt.Errorf("skill is required: %w", apperrors.ErrValidation)
	}
	if senderID == receiverID {
		return nil, fmt.Errorf("cannot match with yourself: %w", apperrors.ErrValidation)
	}

	wants, err := s.hasSkill(senderID, skill, models.SkillWanted)
	if err != nil {
		return nil, err
	}
	if !wants {
		return nil, fmt.Errorf("sender does not want skill %q: %w", skill, apperrors.ErrValidation)
	}
	offers, err := s.hasSkill(receiverID, skill, models.SkillOffered)
	if err != nil {
		return nil, err
	}
	if !offers {
		return nil, fmt.Errorf("receiver does not offer skill %q: %w", skill, apperrors.ErrValidation)
	}

	existing, err := s.store.FindActiveMatch(senderID, receiverID, skill)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("active match already exists for skill %q: %w",
			skill, apperrors.ErrConflict)
	}

	match := &models.MatchRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Skill:      skill,
		Status:     models.MatchPending,
	}
	if err := s.store.CreateMatchRequest(match); err != nil {
		return nil, err
	}
	s.logger.Info("match request sent",
		zap.Uint("match_id", match.ID),
		zap.String("sender_id", senderID),
		zap.String("skill", skill))
	return match, nil
}

// AcceptRequest transitions pending -> accepted. Receiver only.
func (s *Service) AcceptRequest(matchID uint, userID string) (*models.MatchRequest, error) {
	return s.decide(matchID, userID, models.MatchAccepted)
}

// RejectRequest transitions pending -> rejected. Receiver only.
func (s *Service) RejectRequest(matchID uint, userID string) (*models.MatchRequest, error) {
	return s.decide(matchID, userID, models.MatchRejected)
}

func (s *Service) decide(matchID uint, userID, to string) (*models.MatchRequest, error) {
	match, err := s.store.GetMatchRequest(matchID)
	if err != nil {
		return nil, err
	}
	if match.ReceiverID != userID {
		return nil, fmt.Errorf("match %d is not addressed to caller: %w",
			matchID, apperrors.ErrAuthorization)
	}
	if err := s.store.UpdateMatchStatus(matchID, models.MatchPending, to); err != nil {
		return nil, err
	}
	match.Status = to
	return match, nil
}

// CancelRequest cancels an active match. Either party may cancel; there is no
// external resource to release, unlike sessions.
func (s *Service) CancelRequest(matchID uint, userID string) (*models.MatchRequest, error) {
	match, err := s.store.GetMatchRequest(matchID)
	if err != nil {
		return nil, err
	}
	if match.SenderID != userID && match.ReceiverID != userID {
		return nil, fmt.Errorf("caller is not a party of match %d: %w",
			matchID, apperrors.ErrAuthorization)
	}
	if !match.IsActive() {
		return nil, fmt.Errorf("match %d is already %s: %w", matchID, match.Status, apperrors.ErrState)
	}
	if err := s.store.UpdateMatchStatus(matchID, match.Status, models.MatchCancelled); err != nil {
		return nil, err
	}
	match.Status = models.MatchCancelled
	return match, nil
}

func (s *Service) GetSentRequests(userID string) ([]models.MatchRequest, error) {
	return s.store.ListMatchesBySender(userID, nil)
}

func (s *Service) GetReceivedRequests(userID string) ([]models.MatchRequest, error) {
	return s.store.ListMatchesByReceiver(userID, nil)
}

func (s *Service) GetAcceptedMatches(userID string) ([]models.MatchRequest, error) {
	return s.store.ListMatchesForUser(userID, []string{models.MatchAccepted})
}

func (s *Service) hasSkill(userID, name, kind string) (bool, error) {
	skills, err := s.store.ListSkills(userID, kind)
	if err != nil {
		return false, err
	}
	for _, sk := range skills {
		if strings.EqualFold(sk.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
