package services

import (
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"sort"
	"time"
	"walk2gether-api/models"
	"walk2gether-api/repositories"
)

var ErrNoPairableParticipants = errors.New("not enough active participants to form pairs")

var pairColors = []string{"#4A90D9", "#7BC47F", "#E8A04C", "#C77DB5", "#5BC4BE", "#D96C6C"}

var pairEmojis = []string{"🦆", "🐢", "🦊", "🐝", "🦉", "🐙"}

// RoundService rotates conversation pairs during meetup walks
type RoundService struct {
	db              *gorm.DB
	participantRepo *repositories.ParticipantRepository
}

func NewRoundService(db *gorm.DB, participantRepo *repositories.ParticipantRepository) *RoundService {
	return &RoundService{db: db, participantRepo: participantRepo}
}

// BuildPairs derives the conversation pairs for a round from the active
// participant list. Round-robin rotation: the first participant stays fixed
// and the rest rotate by round number, so over successive rounds everyone
// meets everyone. With an odd count the last pair becomes a trio.
func BuildPairs(participants []models.Participant, roundNumber int) []models.Pair {
	active := make([]string, 0, len(participants))
	for i := range participants {
		p := &participants[i]
		if p.IsAccepted() && !p.IsCancelled() {
			active = append(active, p.UserID)
		}
	}
	sort.Strings(active)

	if len(active) < 2 {
		return nil
	}

	// Rotate everyone but the first
	rest := active[1:]
	if len(rest) > 1 {
		shift := roundNumber % len(rest)
		rest = append(append([]string{}, rest[shift:]...), rest[:shift]...)
	}
	ordered := append([]string{active[0]}, rest...)

	var pairs []models.Pair
	for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
		pairs = append(pairs, models.Pair{
			UserIDs:     []string{ordered[i], ordered[j]},
			Color:       pairColors[len(pairs)%len(pairColors)],
			EmojiMarker: pairEmojis[len(pairs)%len(pairEmojis)],
		})
	}

	// Odd participant joins the last pair as a trio
	if len(ordered)%2 == 1 && len(pairs) > 0 {
		mid := len(ordered) / 2
		last := &pairs[len(pairs)-1]
		last.UserIDs = append(last.UserIDs, ordered[mid])
	}

	return pairs
}

// StartRound begins a new timed round for a walk. The round insert and the
// walk's current-round pointer move together in one transaction.
func (s *RoundService) StartRound(walkID, actorID string, durationMinutes int, prompt string) (*models.Round, error) {
	var walk models.Walk
	if err := s.db.First(&walk, "id = ?", walkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalkNotFound
		}
		return nil, err
	}
	if !walk.IsOrganizer(actorID) {
		return nil, ErrNotOrganizer
	}

	participants, err := s.participantRepo.ListByWalk(walkID)
	if err != nil {
		return nil, err
	}

	var round *models.Round
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var roundCount int64
		if err := tx.Model(&models.Round{}).Where("walk_id = ?", walkID).Count(&roundCount).Error; err != nil {
			return err
		}

		number := int(roundCount) + 1
		pairs := BuildPairs(participants, number)
		if pairs == nil {
			return ErrNoPairableParticipants
		}

		round = &models.Round{
			ID:              uuid.New().String(),
			WalkID:          walkID,
			Number:          number,
			QuestionPrompt:  prompt,
			DurationMinutes: durationMinutes,
			StartedAt:       time.Now(),
			Pairs:           pairs,
		}

		if err := tx.Create(round).Error; err != nil {
			return err
		}

		return tx.Model(&walk).Update("current_round_id", round.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return round, nil
}

// CurrentRound returns the walk's active round, nil when none is running
func (s *RoundService) CurrentRound(walkID string) (*models.Round, error) {
	var walk models.Walk
	if err := s.db.First(&walk, "id = ?", walkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalkNotFound
		}
		return nil, err
	}
	if walk.CurrentRoundID == nil {
		return nil, nil
	}

	var round models.Round
	if err := s.db.First(&round, "id = ?", *walk.CurrentRoundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if time.Now().After(round.EndTime()) {
		return nil, nil
	}
	return &round, nil
}

// ListRounds returns all rounds of a walk in order
func (s *RoundService) ListRounds(walkID string) ([]models.Round, error) {
	var rounds []models.Round
	err := s.db.Where("walk_id = ?", walkID).Order("number ASC").Find(&rounds).Error
	return rounds, err
}
