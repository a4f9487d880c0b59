package repositories

import (
	"errors"
	"gorm.io/gorm"
	"walk2gether-api/models"
)

type ParticipantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// Get retrieves one participant row. A missing row is not an error: it means
// the user has no relationship to the walk yet, so (nil, nil) is returned.
func (r *ParticipantRepository) Get(walkID, userID string) (*models.Participant, error) {
	var participant models.Participant
	err := r.db.Where("walk_id = ? AND user_id = ?", walkID, userID).First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &participant, nil
}

// ListByWalk returns every participant row for a walk
func (r *ParticipantRepository) ListByWalk(walkID string) ([]models.Participant, error) {
	var participants []models.Participant
	if err := r.db.Where("walk_id = ?", walkID).Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// Create inserts a new participant row
func (r *ParticipantRepository) Create(participant *models.Participant) error {
	return r.db.Create(participant).Error
}

// ApplyPatch writes a partial column update to an existing participant row
func (r *ParticipantRepository) ApplyPatch(participant *models.Participant, updates map[string]interface{}) error {
	return r.db.Model(participant).Updates(updates).Error
}

// CountAccepted returns how many participants of a walk are currently accepted
func (r *ParticipantRepository) CountAccepted(walkID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Participant{}).
		Where("walk_id = ? AND accepted_at IS NOT NULL", walkID).
		Count(&count).Error
	return count, err
}
