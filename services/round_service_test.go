package services

import (
	"testing"
	"time"
	"walk2gether-api/models"
)

func activeParticipant(userID string) models.Participant {
	now := time.Now()
	return models.Participant{
		WalkID:     "walk-1",
		UserID:     userID,
		Status:     models.ParticipantStatusArrived,
		AcceptedAt: &now,
	}
}

func TestBuildPairsTooFewParticipants(t *testing.T) {
	if pairs := BuildPairs(nil, 1); pairs != nil {
		t.Errorf("expected no pairs for empty list, got %v", pairs)
	}

	solo := []models.Participant{activeParticipant("user-1")}
	if pairs := BuildPairs(solo, 1); pairs != nil {
		t.Errorf("expected no pairs for a single participant, got %v", pairs)
	}
}

func TestBuildPairsExcludesInactive(t *testing.T) {
	now := time.Now()
	cancelled := activeParticipant("user-3")
	cancelled.CancelPatch(now)
	undecided := models.Participant{WalkID: "walk-1", UserID: "user-4"}

	participants := []models.Participant{
		activeParticipant("user-1"),
		activeParticipant("user-2"),
		cancelled,
		undecided,
	}

	pairs := BuildPairs(participants, 1)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	for _, id := range pairs[0].UserIDs {
		if id == "user-3" || id == "user-4" {
			t.Errorf("inactive participant %q was paired", id)
		}
	}
}

func TestBuildPairsEveryoneIsPairedExactlyOnce(t *testing.T) {
	participants := []models.Participant{
		activeParticipant("user-1"),
		activeParticipant("user-2"),
		activeParticipant("user-3"),
		activeParticipant("user-4"),
		activeParticipant("user-5"),
		activeParticipant("user-6"),
	}

	for round := 1; round <= 5; round++ {
		pairs := BuildPairs(participants, round)
		seen := map[string]int{}
		for _, pair := range pairs {
			if len(pair.UserIDs) < 2 || len(pair.UserIDs) > 3 {
				t.Fatalf("round %d: pair size %d", round, len(pair.UserIDs))
			}
			for _, id := range pair.UserIDs {
				seen[id]++
			}
		}
		for _, p := range participants {
			if seen[p.UserID] != 1 {
				t.Errorf("round %d: %q appears %d times", round, p.UserID, seen[p.UserID])
			}
		}
	}
}

func TestBuildPairsOddCountFormsTrio(t *testing.T) {
	participants := []models.Participant{
		activeParticipant("user-1"),
		activeParticipant("user-2"),
		activeParticipant("user-3"),
		activeParticipant("user-4"),
		activeParticipant("user-5"),
	}

	pairs := BuildPairs(participants, 1)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 groups for 5 participants, got %d", len(pairs))
	}

	sizes := []int{len(pairs[0].UserIDs), len(pairs[1].UserIDs)}
	if sizes[0]+sizes[1] != 5 {
		t.Errorf("group sizes %v do not cover all 5 participants", sizes)
	}
	if sizes[1] != 3 {
		t.Errorf("last group should be the trio, got sizes %v", sizes)
	}
}

func TestBuildPairsRotatesAcrossRounds(t *testing.T) {
	participants := []models.Participant{
		activeParticipant("user-1"),
		activeParticipant("user-2"),
		activeParticipant("user-3"),
		activeParticipant("user-4"),
	}

	key := func(pairs []models.Pair) string {
		out := ""
		for _, p := range pairs {
			for _, id := range p.UserIDs {
				out += id + "|"
			}
			out += ";"
		}
		return out
	}

	first := key(BuildPairs(participants, 1))
	second := key(BuildPairs(participants, 2))
	if first == second {
		t.Error("consecutive rounds produced identical pairings")
	}

	// Same round number is deterministic
	if again := key(BuildPairs(participants, 1)); again != first {
		t.Error("same round produced different pairings")
	}
}
