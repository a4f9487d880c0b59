package models

import (
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func acceptedParticipant(userID, name string, status ParticipantStatus) Participant {
	return Participant{
		WalkID:      "walk-1",
		UserID:      userID,
		DisplayName: name,
		Status:      status,
		SourceType:  ParticipantSourceInvited,
		AcceptedAt:  timePtr(time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)),
	}
}

func TestStatusInfoPrecedence(t *testing.T) {
	tests := []struct {
		name         string
		participant  Participant
		walkStatus   WalkTimeStatus
		wantText     string
		wantCategory StatusCategory
	}{
		{
			name:         "cancelled masks on-the-way status",
			participant:  Participant{Status: ParticipantStatusOnTheWay, CancelledAt: timePtr(time.Now())},
			walkStatus:   WalkTimeStatusActive,
			wantText:     "Can't make it",
			wantCategory: StatusCategoryDanger,
		},
		{
			name:         "cancelled masks even a past walk",
			participant:  Participant{Status: ParticipantStatusArrived, CancelledAt: timePtr(time.Now())},
			walkStatus:   WalkTimeStatusPast,
			wantText:     "Can't make it",
			wantCategory: StatusCategoryDanger,
		},
		{
			name:         "past walk masks arrived",
			participant:  Participant{Status: ParticipantStatusArrived},
			walkStatus:   WalkTimeStatusPast,
			wantText:     "Walk completed",
			wantCategory: StatusCategoryMuted,
		},
		{
			name:         "past walk masks pending",
			participant:  Participant{Status: ParticipantStatusPending},
			walkStatus:   WalkTimeStatusPast,
			wantText:     "Walk completed",
			wantCategory: StatusCategoryMuted,
		},
		{
			name:         "arrived on active walk",
			participant:  Participant{Status: ParticipantStatusArrived},
			walkStatus:   WalkTimeStatusActive,
			wantText:     "Arrived",
			wantCategory: StatusCategorySuccess,
		},
		{
			name:         "on the way without route",
			participant:  Participant{Status: ParticipantStatusOnTheWay},
			walkStatus:   WalkTimeStatusActive,
			wantText:     "On the way",
			wantCategory: StatusCategoryPrimary,
		},
		{
			name:         "on the way with eta",
			participant:  Participant{Status: ParticipantStatusOnTheWay, RouteDurationText: "12 mins"},
			walkStatus:   WalkTimeStatusActive,
			wantText:     "On the way - 12 mins",
			wantCategory: StatusCategoryPrimary,
		},
		{
			name:         "pending on future walk",
			participant:  Participant{Status: ParticipantStatusPending},
			walkStatus:   WalkTimeStatusFuture,
			wantText:     "Not on the way yet",
			wantCategory: StatusCategoryNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.participant.StatusInfo(tt.walkStatus)
			if got.Text != tt.wantText {
				t.Errorf("StatusInfo text = %q, want %q", got.Text, tt.wantText)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("StatusInfo category = %q, want %q", got.Category, tt.wantCategory)
			}
		})
	}
}

func TestStatusInfoIsDeterministic(t *testing.T) {
	p := Participant{Status: ParticipantStatusOnTheWay, RouteDurationText: "5 mins"}

	first := p.StatusInfo(WalkTimeStatusActive)
	for i := 0; i < 10; i++ {
		if got := p.StatusInfo(WalkTimeStatusActive); got != first {
			t.Fatalf("StatusInfo not deterministic: got %+v, want %+v", got, first)
		}
	}
}

func TestStatusPatch(t *testing.T) {
	now := time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)
	p := acceptedParticipant("user-1", "Bob", ParticipantStatusPending)

	updates := p.StatusPatch(ParticipantStatusOnTheWay, NavigationMethodDriving, now)

	if p.Status != ParticipantStatusOnTheWay {
		t.Errorf("status = %q, want on-the-way", p.Status)
	}
	if p.NavigationMethod != NavigationMethodDriving {
		t.Errorf("navigation method = %q, want driving", p.NavigationMethod)
	}
	if updates["status"] != ParticipantStatusOnTheWay {
		t.Errorf("patch status = %v, want on-the-way", updates["status"])
	}
	if updates["navigation_method"] != NavigationMethodDriving {
		t.Errorf("patch navigation_method = %v, want driving", updates["navigation_method"])
	}
	if updates["status_updated_at"] != now {
		t.Errorf("patch status_updated_at = %v, want %v", updates["status_updated_at"], now)
	}

	// Second leg of the churn: on-the-way -> arrived, method unchanged
	updates = p.StatusPatch(ParticipantStatusArrived, "", now.Add(time.Minute))
	if p.Status != ParticipantStatusArrived {
		t.Errorf("status = %q, want arrived", p.Status)
	}
	if p.NavigationMethod != NavigationMethodDriving {
		t.Errorf("navigation method changed to %q, want driving", p.NavigationMethod)
	}
	if _, ok := updates["navigation_method"]; ok {
		t.Error("patch should not touch navigation_method when no method given")
	}
}

func TestStatusPatchAllowsAnyDirection(t *testing.T) {
	// Transitions are intentionally permissive, including pending -> arrived
	// directly and arrived back to pending.
	now := time.Now()
	statuses := []ParticipantStatus{ParticipantStatusPending, ParticipantStatusOnTheWay, ParticipantStatusArrived}

	for _, from := range statuses {
		for _, to := range statuses {
			p := acceptedParticipant("user-1", "Bob", from)
			p.StatusPatch(to, "", now)
			if p.Status != to {
				t.Errorf("transition %s -> %s: status = %q", from, to, p.Status)
			}
		}
	}
}

func TestLifecycleTimestampsMutuallyExclusive(t *testing.T) {
	countSet := func(p *Participant) int {
		n := 0
		if p.AcceptedAt != nil {
			n++
		}
		if p.RejectedAt != nil {
			n++
		}
		if p.CancelledAt != nil {
			n++
		}
		return n
	}

	now := time.Now()

	// Invited, undecided participant
	p := Participant{WalkID: "walk-1", UserID: "user-1", Status: ParticipantStatusPending, SourceType: ParticipantSourceRequested}
	if !p.IsUndecided() {
		t.Fatal("fresh participant should be undecided")
	}

	p.ApprovePatch(now)
	if got := countSet(&p); got != 1 {
		t.Errorf("after approve: %d lifecycle timestamps set, want 1", got)
	}

	p.StatusPatch(ParticipantStatusOnTheWay, NavigationMethodWalking, now)
	if got := countSet(&p); got != 1 {
		t.Errorf("after status change: %d lifecycle timestamps set, want 1", got)
	}

	p.CancelPatch(now)
	if got := countSet(&p); got != 1 {
		t.Errorf("after cancel: %d lifecycle timestamps set, want 1", got)
	}
	if p.AcceptedAt != nil {
		t.Error("cancel must clear accepted_at")
	}

	p.ReactivatePatch(now)
	if got := countSet(&p); got != 1 {
		t.Errorf("after reactivate: %d lifecycle timestamps set, want 1", got)
	}

	rejected := Participant{WalkID: "walk-1", UserID: "user-2", Status: ParticipantStatusPending}
	rejected.RejectPatch(now)
	if got := countSet(&rejected); got != 1 {
		t.Errorf("after reject: %d lifecycle timestamps set, want 1", got)
	}
}

func TestReactivateResetsToPending(t *testing.T) {
	now := time.Now()
	statuses := []ParticipantStatus{ParticipantStatusPending, ParticipantStatusOnTheWay, ParticipantStatusArrived}

	for _, status := range statuses {
		p := acceptedParticipant("user-1", "Bob", status)
		p.CancelPatch(now)
		updates := p.ReactivatePatch(now)

		if p.CancelledAt != nil {
			t.Errorf("from %s: cancelled_at still set after reactivate", status)
		}
		if p.Status != ParticipantStatusPending {
			t.Errorf("from %s: status = %q after reactivate, want pending", status, p.Status)
		}
		if updates["cancelled_at"] != nil {
			t.Errorf("from %s: patch should null cancelled_at", status)
		}
	}
}

func TestCancelReactivateRoundTrip(t *testing.T) {
	now := time.Now()

	fresh := acceptedParticipant("user-1", "Bob", ParticipantStatusPending)

	churned := acceptedParticipant("user-1", "Bob", ParticipantStatusPending)
	churned.StatusPatch(ParticipantStatusOnTheWay, NavigationMethodDriving, now)
	churned.CancelPatch(now)
	churned.ReactivatePatch(now)

	// Indistinguishable from a freshly accepted pending participant modulo
	// timestamps and navigation method retained from the churn.
	if churned.Status != fresh.Status {
		t.Errorf("status = %q, want %q", churned.Status, fresh.Status)
	}
	if churned.CancelledAt != nil || churned.RejectedAt != nil {
		t.Error("round trip left a cancellation or rejection behind")
	}
	if churned.AcceptedAt == nil {
		t.Error("round trip lost accepted state")
	}
}

func TestCancelLeavesStatusStaleButMasked(t *testing.T) {
	// Cancellation during an active walk: status still reads on-the-way but
	// the derived display state says otherwise.
	p := acceptedParticipant("user-1", "Bob", ParticipantStatusOnTheWay)
	p.CancelPatch(time.Now())

	if p.Status != ParticipantStatusOnTheWay {
		t.Errorf("cancel changed status to %q, want stale on-the-way", p.Status)
	}
	info := p.StatusInfo(WalkTimeStatusActive)
	if info.Text != "Can't make it" {
		t.Errorf("derived text = %q, want \"Can't make it\"", info.Text)
	}
}

func TestApprovalFlow(t *testing.T) {
	now := time.Now()

	requested := Participant{WalkID: "walk-1", UserID: "user-9", DisplayName: "Pat", Status: ParticipantStatusPending, SourceType: ParticipantSourceRequested}
	requested.ApprovePatch(now)

	if requested.AcceptedAt == nil {
		t.Fatal("approve did not set accepted_at")
	}
	if requested.RejectedAt != nil {
		t.Fatal("approve set rejected_at")
	}

	undecided := Participant{WalkID: "walk-1", UserID: "user-8", DisplayName: "Quinn", Status: ParticipantStatusPending, SourceType: ParticipantSourceRequested}

	list := []Participant{undecided, requested}
	SortParticipants(list, "organizer-1")

	if list[0].UserID != "user-9" {
		t.Errorf("approved participant should sort ahead of undecided, got %q first", list[0].UserID)
	}
}

func TestSortParticipants(t *testing.T) {
	organizerID := "organizer-1"

	organizer := acceptedParticipant(organizerID, "Zoe", ParticipantStatusPending)
	organizer.SourceType = ParticipantSourceWalkCreator
	arrived := acceptedParticipant("user-2", "Dana", ParticipantStatusArrived)
	onTheWay := acceptedParticipant("user-3", "Carl", ParticipantStatusOnTheWay)
	pendingBob := acceptedParticipant("user-4", "Bob", ParticipantStatusPending)
	pendingAlice := acceptedParticipant("user-5", "Alice", ParticipantStatusPending)
	undecided := Participant{WalkID: "walk-1", UserID: "user-6", DisplayName: "Aaron", Status: ParticipantStatusPending}

	list := []Participant{undecided, pendingBob, onTheWay, pendingAlice, arrived, organizer}
	SortParticipants(list, organizerID)

	wantOrder := []string{organizerID, "user-2", "user-3", "user-5", "user-4", "user-6"}
	for i, want := range wantOrder {
		if list[i].UserID != want {
			t.Fatalf("position %d: got %q, want %q (full order: %v)", i, list[i].UserID, want, userIDs(list))
		}
	}
}

func TestSortParticipantsOrganizerNotViewer(t *testing.T) {
	// The organizer slot belongs to the walk's creator, not whoever is
	// looking at the list. A viewer id passed by mistake must not float a
	// non-organizer to the top.
	organizerID := "organizer-1"
	viewer := acceptedParticipant("viewer-1", "Zed", ParticipantStatusPending)
	organizer := acceptedParticipant(organizerID, "Amy", ParticipantStatusPending)

	list := []Participant{viewer, organizer}
	SortParticipants(list, organizerID)

	if list[0].UserID != organizerID {
		t.Errorf("organizer should sort first, got %q", list[0].UserID)
	}
}

func TestSortParticipantsTiebreakByName(t *testing.T) {
	bob := acceptedParticipant("user-1", "Bob", ParticipantStatusPending)
	alice := acceptedParticipant("user-2", "Alice", ParticipantStatusPending)

	list := []Participant{bob, alice}
	SortParticipants(list, "organizer-1")

	if list[0].DisplayName != "Alice" || list[1].DisplayName != "Bob" {
		t.Errorf("tiebreak order = %v, want [Alice Bob]", []string{list[0].DisplayName, list[1].DisplayName})
	}
}

func TestSortParticipantsIsStableTotalOrder(t *testing.T) {
	organizerID := "organizer-1"

	build := func() []Participant {
		return []Participant{
			acceptedParticipant("user-4", "Bob", ParticipantStatusPending),
			{WalkID: "walk-1", UserID: "user-6", DisplayName: "Aaron", Status: ParticipantStatusPending},
			acceptedParticipant("user-2", "Dana", ParticipantStatusArrived),
			acceptedParticipant(organizerID, "Zoe", ParticipantStatusPending),
			acceptedParticipant("user-5", "alice", ParticipantStatusPending),
			acceptedParticipant("user-3", "Carl", ParticipantStatusOnTheWay),
		}
	}

	first := build()
	SortParticipants(first, organizerID)

	// Repeated sorting of any permutation converges on the same order
	for i := 0; i < 5; i++ {
		base := build()
		// rotate to vary input order
		shift := i % len(base)
		list := append(append([]Participant{}, base[shift:]...), base[:shift]...)
		SortParticipants(list, organizerID)

		for j := range first {
			if list[j].UserID != first[j].UserID {
				t.Fatalf("iteration %d: order diverged at %d: %v vs %v", i, j, userIDs(list), userIDs(first))
			}
		}
	}

	// Sorting an already sorted list changes nothing
	SortParticipants(first, organizerID)
	SortParticipants(first, organizerID)
}

func userIDs(list []Participant) []string {
	ids := make([]string, len(list))
	for i := range list {
		ids[i] = list[i].UserID
	}
	return ids
}
