package services

import (
	"errors"
	"gorm.io/gorm"
	"time"
	"walk2gether-api/models"
	"walk2gether-api/repositories"
)

// Participant lifecycle errors surfaced to the API layer. All of them are
// recoverable by user action; nothing here is fatal.
var (
	ErrWalkNotFound          = errors.New("walk not found")
	ErrNotParticipant        = errors.New("not a participant of this walk")
	ErrNotAccepted           = errors.New("participant has not been accepted to the walk")
	ErrNotCancelled          = errors.New("participant is not cancelled")
	ErrOrganizerCannotCancel = errors.New("the organizer cannot withdraw from their own walk")
	ErrNotOrganizer          = errors.New("only the walk organizer can do this")
	ErrAlreadyDecided        = errors.New("participant has already been approved or rejected")
	ErrAlreadyJoined         = errors.New("already joined this walk")
)

// ParticipantService owns the participant status and approval lifecycle
type ParticipantService struct {
	db   *gorm.DB
	repo *repositories.ParticipantRepository
}

func NewParticipantService(db *gorm.DB, repo *repositories.ParticipantRepository) *ParticipantService {
	return &ParticipantService{db: db, repo: repo}
}

func (s *ParticipantService) getWalk(walkID string) (*models.Walk, error) {
	var walk models.Walk
	if err := s.db.First(&walk, "id = ?", walkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalkNotFound
		}
		return nil, err
	}
	return &walk, nil
}

// TransitionStatus moves an accepted participant between pending, on-the-way
// and arrived. Any direction is allowed; only the approval phase gates entry.
func (s *ParticipantService) TransitionStatus(walkID, userID string, target models.ParticipantStatus, method models.NavigationMethod) (*models.Participant, error) {
	participant, err := s.repo.Get(walkID, userID)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrNotParticipant
	}
	if !participant.IsAccepted() {
		return nil, ErrNotAccepted
	}

	updates := participant.StatusPatch(target, method, time.Now())
	if err := s.repo.ApplyPatch(participant, updates); err != nil {
		return nil, err
	}
	return participant, nil
}

// CancelParticipation withdraws a non-organizer participant from a walk
func (s *ParticipantService) CancelParticipation(walkID, userID string) (*models.Participant, error) {
	walk, err := s.getWalk(walkID)
	if err != nil {
		return nil, err
	}
	if walk.IsOrganizer(userID) {
		return nil, ErrOrganizerCannotCancel
	}

	participant, err := s.repo.Get(walkID, userID)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrNotParticipant
	}

	updates := participant.CancelPatch(time.Now())
	if err := s.repo.ApplyPatch(participant, updates); err != nil {
		return nil, err
	}

	s.refreshParticipantsCount(walk)
	return participant, nil
}

// ReactivateParticipation undoes a cancellation, back to accepted pending
func (s *ParticipantService) ReactivateParticipation(walkID, userID string) (*models.Participant, error) {
	walk, err := s.getWalk(walkID)
	if err != nil {
		return nil, err
	}

	participant, err := s.repo.Get(walkID, userID)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrNotParticipant
	}
	if !participant.IsCancelled() {
		return nil, ErrNotCancelled
	}

	updates := participant.ReactivatePatch(time.Now())
	if err := s.repo.ApplyPatch(participant, updates); err != nil {
		return nil, err
	}

	s.refreshParticipantsCount(walk)
	return participant, nil
}

// Approve accepts an undecided participant. Organizer only.
func (s *ParticipantService) Approve(walkID, participantUserID, actorID string) (*models.Participant, error) {
	return s.decide(walkID, participantUserID, actorID, true)
}

// Reject declines an undecided participant. Organizer only, and terminal:
// there is no path that clears a rejection.
func (s *ParticipantService) Reject(walkID, participantUserID, actorID string) (*models.Participant, error) {
	return s.decide(walkID, participantUserID, actorID, false)
}

func (s *ParticipantService) decide(walkID, participantUserID, actorID string, approve bool) (*models.Participant, error) {
	walk, err := s.getWalk(walkID)
	if err != nil {
		return nil, err
	}
	if !walk.IsOrganizer(actorID) {
		return nil, ErrNotOrganizer
	}

	participant, err := s.repo.Get(walkID, participantUserID)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrNotParticipant
	}
	if !participant.IsUndecided() {
		return nil, ErrAlreadyDecided
	}

	now := time.Now()
	var updates map[string]interface{}
	if approve {
		updates = participant.ApprovePatch(now)
	} else {
		updates = participant.RejectPatch(now)
	}

	if err := s.repo.ApplyPatch(participant, updates); err != nil {
		return nil, err
	}

	if approve {
		s.refreshParticipantsCount(walk)
	}
	return participant, nil
}

// ListSorted returns a walk's participants in display order: accepted first,
// the organizer ahead of other accepted participants, then arrived before
// on-the-way before pending, then by name.
func (s *ParticipantService) ListSorted(walkID string) ([]models.Participant, *models.Walk, error) {
	walk, err := s.getWalk(walkID)
	if err != nil {
		return nil, nil, err
	}

	participants, err := s.repo.ListByWalk(walkID)
	if err != nil {
		return nil, nil, err
	}

	models.SortParticipants(participants, walk.CreatedByUID)
	return participants, walk, nil
}

// refreshParticipantsCount recomputes the denormalized accepted count on the
// walk row. Failures are logged upstream; the count is display-only.
func (s *ParticipantService) refreshParticipantsCount(walk *models.Walk) {
	count, err := s.repo.CountAccepted(walk.ID)
	if err != nil {
		return
	}
	s.db.Model(walk).Update("participants_count", count)
}
