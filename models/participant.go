package models

import (
	"sort"
	"strings"
	"time"
)

type ParticipantStatus string

const (
	ParticipantStatusPending  ParticipantStatus = "pending"
	ParticipantStatusOnTheWay ParticipantStatus = "on-the-way"
	ParticipantStatusArrived  ParticipantStatus = "arrived"
)

type NavigationMethod string

const (
	NavigationMethodWalking NavigationMethod = "walking"
	NavigationMethodDriving NavigationMethod = "driving"
)

type ParticipantSource string

const (
	ParticipantSourceInvited     ParticipantSource = "invited"
	ParticipantSourceRequested   ParticipantSource = "requested"
	ParticipantSourceWalkCreator ParticipantSource = "walk-creator"
)

// Participant represents one user's relationship to one walk.
// The approval lifecycle is encoded in three mutually exclusive timestamps:
// accepted_at, rejected_at and cancelled_at. At most one is ever non-null.
type Participant struct {
	ID               uint              `json:"id" gorm:"primaryKey"`
	WalkID           string            `json:"walk_id" gorm:"not null;size:191;uniqueIndex:uk_participants_walk_user"`
	UserID           string            `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_participants_walk_user"`
	DisplayName      string            `json:"display_name" gorm:"not null;size:255"`
	PhotoURL         *string           `json:"photo_url" gorm:"size:500"`
	Status           ParticipantStatus `json:"status" gorm:"not null;default:'pending';size:20"`
	NavigationMethod NavigationMethod  `json:"navigation_method" gorm:"not null;default:'walking';size:20"`
	SourceType       ParticipantSource `json:"source_type" gorm:"not null;size:20"`
	AcceptedAt       *time.Time        `json:"accepted_at"`
	RejectedAt       *time.Time        `json:"rejected_at"`
	CancelledAt      *time.Time        `json:"cancelled_at"`
	StatusUpdatedAt  *time.Time        `json:"status_updated_at"`

	// Last known location and computed route to the meetup point
	LastLatitude         *float64   `json:"last_latitude"`
	LastLongitude        *float64   `json:"last_longitude"`
	LocationUpdatedAt    *time.Time `json:"location_updated_at"`
	RouteDistanceText    string     `json:"route_distance_text" gorm:"size:50"`
	RouteDurationText    string     `json:"route_duration_text" gorm:"size:50"`
	RouteDurationSeconds int        `json:"route_duration_seconds"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Walk Walk `json:"-" gorm:"foreignKey:WalkID"`
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// Approval-phase helpers. A participant is undecided while none of the
// lifecycle timestamps is set (invited or requested, awaiting a decision).

func (p *Participant) IsAccepted() bool {
	return p.AcceptedAt != nil
}

func (p *Participant) IsRejected() bool {
	return p.RejectedAt != nil
}

func (p *Participant) IsCancelled() bool {
	return p.CancelledAt != nil
}

func (p *Participant) IsUndecided() bool {
	return p.AcceptedAt == nil && p.RejectedAt == nil && p.CancelledAt == nil
}

type StatusCategory string

const (
	StatusCategoryNeutral StatusCategory = "neutral"
	StatusCategoryPrimary StatusCategory = "primary"
	StatusCategorySuccess StatusCategory = "success"
	StatusCategoryMuted   StatusCategory = "muted"
	StatusCategoryDanger  StatusCategory = "danger"
)

// StatusInfo is the display state derived for a participant
type StatusInfo struct {
	Text     string         `json:"text"`
	Category StatusCategory `json:"category"`
}

// StatusInfo derives the display state for a participant. Precedence:
// cancellation masks everything, a finished walk masks individual status,
// otherwise the status field decides. Pure: no side effects.
func (p *Participant) StatusInfo(walkStatus WalkTimeStatus) StatusInfo {
	if p.IsCancelled() {
		return StatusInfo{Text: "Can't make it", Category: StatusCategoryDanger}
	}

	if walkStatus == WalkTimeStatusPast {
		return StatusInfo{Text: "Walk completed", Category: StatusCategoryMuted}
	}

	switch p.Status {
	case ParticipantStatusArrived:
		return StatusInfo{Text: "Arrived", Category: StatusCategorySuccess}
	case ParticipantStatusOnTheWay:
		text := "On the way"
		if p.RouteDurationText != "" {
			text = "On the way - " + p.RouteDurationText
		}
		return StatusInfo{Text: text, Category: StatusCategoryPrimary}
	default:
		return StatusInfo{Text: "Not on the way yet", Category: StatusCategoryNeutral}
	}
}

// Patch methods mutate the participant and return the matching column
// updates, applied as a merge patch via gorm's Updates.

// StatusPatch moves the participant to the target status. Transitions
// between pending, on-the-way and arrived are intentionally unguarded.
func (p *Participant) StatusPatch(target ParticipantStatus, method NavigationMethod, now time.Time) map[string]interface{} {
	p.Status = target
	p.StatusUpdatedAt = &now

	updates := map[string]interface{}{
		"status":            target,
		"status_updated_at": now,
	}

	if method != "" {
		p.NavigationMethod = method
		updates["navigation_method"] = method
	}

	return updates
}

// CancelPatch withdraws the participant from the walk. The status field is
// left stale on purpose; StatusInfo masks it while cancelled_at is set.
func (p *Participant) CancelPatch(now time.Time) map[string]interface{} {
	p.CancelledAt = &now
	p.AcceptedAt = nil

	return map[string]interface{}{
		"cancelled_at": now,
		"accepted_at":  nil,
	}
}

// ReactivatePatch undoes a cancellation, returning the participant to a
// freshly accepted pending state.
func (p *Participant) ReactivatePatch(now time.Time) map[string]interface{} {
	p.CancelledAt = nil
	p.AcceptedAt = &now
	p.Status = ParticipantStatusPending

	return map[string]interface{}{
		"cancelled_at": nil,
		"accepted_at":  now,
		"status":       ParticipantStatusPending,
	}
}

// ApprovePatch accepts an undecided participant into the walk
func (p *Participant) ApprovePatch(now time.Time) map[string]interface{} {
	p.AcceptedAt = &now

	return map[string]interface{}{
		"accepted_at": now,
	}
}

// RejectPatch declines an undecided participant. Rejection is terminal:
// no operation clears rejected_at.
func (p *Participant) RejectPatch(now time.Time) map[string]interface{} {
	p.RejectedAt = &now

	return map[string]interface{}{
		"rejected_at": now,
	}
}

// statusRank orders arrived before on-the-way before pending
func statusRank(status ParticipantStatus) int {
	switch status {
	case ParticipantStatusArrived:
		return 0
	case ParticipantStatusOnTheWay:
		return 1
	default:
		return 2
	}
}

// SortParticipants orders a participant list for display: accepted before
// undecided, the walk organizer first among the accepted, then by status
// (arrived, on the way, pending), then by display name case-insensitively.
// User id is the last tiebreak so the order is strict and reproducible.
func SortParticipants(participants []Participant, organizerID string) {
	sort.SliceStable(participants, func(i, j int) bool {
		a, b := &participants[i], &participants[j]

		if a.IsAccepted() != b.IsAccepted() {
			return a.IsAccepted()
		}

		if a.IsAccepted() {
			aOwner := a.UserID == organizerID
			bOwner := b.UserID == organizerID
			if aOwner != bOwner {
				return aOwner
			}
		}

		if ra, rb := statusRank(a.Status), statusRank(b.Status); ra != rb {
			return ra < rb
		}

		an := strings.ToLower(a.DisplayName)
		bn := strings.ToLower(b.DisplayName)
		if an != bn {
			return an < bn
		}

		return a.UserID < b.UserID
	})
}
