package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/tatianab/ghostbook/internal/models"
)

func TestSuggestNext_EMFAndOrb(t *testing.T) {
	e := defaultEngine(t)
	state := confirm(models.EMF, models.GhostOrb)
	result := e.Classify(state)

	if diff := cmp.Diff([]string{"raiju", "obake"}, ids(result.Remaining())); diff != "" {
		t.Fatalf("Remaining mismatch (-want +got):\n%s", diff)
	}

	want := []Hint{
		{Evidence: models.Fingerprints, Equipment: "UV Light", EliminationPower: 8, DistinguishingPower: 1, Priority: Medium},
		{Evidence: models.DOTS, Equipment: "D.O.T.S Projector", EliminationPower: 8, DistinguishingPower: 1, Priority: Medium},
		{Evidence: models.SpiritBox, Equipment: "Spirit Box", EliminationPower: 7, DistinguishingPower: 0, Priority: Low},
		{Evidence: models.GhostWriting, Equipment: "Ghost Writing Book", EliminationPower: 7, DistinguishingPower: 0, Priority: Low},
		{Evidence: models.FreezingTemps, Equipment: "Thermometer", EliminationPower: 7, DistinguishingPower: 0, Priority: Low},
	}
	got := e.SuggestNext(state, result)
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Hint{}, "Reason")); diff != "" {
		t.Errorf("SuggestNext mismatch (-want +got):\n%s", diff)
	}
	if got[0].Reason != "Use the UV Light: 1 of 2 remaining ghosts could show Ultraviolet; either result separates 14 of 24 ghosts" {
		t.Errorf("Unexpected reason %q", got[0].Reason)
	}
}

func TestSuggestNext_NoEvidence(t *testing.T) {
	e := defaultEngine(t)
	state := models.EvidenceState{}
	got := e.SuggestNext(state, e.Classify(state))

	if len(got) != 7 {
		t.Fatalf("Expected a hint per evidence kind, got %d", len(got))
	}
	// Spirit Box and Freezing Temperatures each appear on 11 of 24 ghosts.
	if got[0].Evidence != models.SpiritBox || got[1].Evidence != models.FreezingTemps {
		t.Errorf("Expected Spirit Box then Freezing first, got %v, %v", got[0].Evidence, got[1].Evidence)
	}
	if got[0].EliminationPower != 18 || got[0].DistinguishingPower != 11 || got[0].Priority != Medium {
		t.Errorf("Unexpected top hint %+v", got[0])
	}
}

func TestSuggestNext_NeverSuggestsConfirmed(t *testing.T) {
	e := defaultEngine(t)
	for _, confirmed := range allSubsets() {
		state := stateFor(confirmed)
		// Suspected kinds are still fair game.
		for _, k := range models.AllEvidence() {
			if !confirmed.Has(k) {
				state[k] = models.Suspected
				break
			}
		}
		hints := e.SuggestNext(state, e.Classify(state))
		if len(hints) != 7-confirmed.Len() {
			t.Fatalf("With %s expected %d hints, got %d", confirmed, 7-confirmed.Len(), len(hints))
		}
		for _, h := range hints {
			if confirmed.Has(h.Evidence) {
				t.Fatalf("With %s suggested confirmed %s", confirmed, h.Evidence)
			}
		}
	}
}

func TestSuggestNext_Ordering(t *testing.T) {
	e := defaultEngine(t)
	for _, confirmed := range allSubsets() {
		state := stateFor(confirmed)
		hints := e.SuggestNext(state, e.Classify(state))
		for i := 1; i < len(hints); i++ {
			prev, cur := hints[i-1], hints[i]
			if prev.Priority > cur.Priority ||
				(prev.Priority == cur.Priority && prev.EliminationPower < cur.EliminationPower) {
				t.Fatalf("With %s hints out of order: %+v before %+v", confirmed, prev, cur)
			}
		}
	}
}

func TestSuggestNext_HighPriority(t *testing.T) {
	catalog := &models.Catalog{Ghosts: []models.Ghost{
		ghost("a", models.EMF, models.DOTS),
		ghost("b", models.EMF, models.DOTS, models.GhostOrb),
		ghost("c", models.EMF, models.GhostOrb),
	}}
	e := New(catalog)
	state := confirm(models.EMF)
	hints := e.SuggestNext(state, e.Classify(state))

	// DOTS and Orb are each missing for two of three live ghosts.
	if hints[0].Priority != High || hints[1].Priority != High {
		t.Errorf("Expected two high priority hints, got %+v", hints[:2])
	}
	if hints[0].Evidence != models.GhostOrb && hints[0].Evidence != models.DOTS {
		t.Errorf("Unexpected top hint %v", hints[0].Evidence)
	}
}

func TestSuggestNext_Contradictory(t *testing.T) {
	e := defaultEngine(t)
	state := confirm(models.EMF, models.GhostOrb, models.GhostWriting)
	hints := e.SuggestNext(state, e.Classify(state))

	for _, h := range hints {
		if h.DistinguishingPower != 0 || h.Priority != Low {
			t.Errorf("Expected low priority with nothing to distinguish, got %+v", h)
		}
	}
}

func TestPriorityThresholdsAreStrict(t *testing.T) {
	tests := []struct {
		distinguishing, remaining int
		want                      Priority
	}{
		{3, 4, High},
		{2, 4, Medium}, // exactly half is not high
		{1, 4, Low},    // exactly a quarter is not medium
		{0, 0, Low},
		{1, 1, High},
	}
	for _, tt := range tests {
		if got := priorityFor(tt.distinguishing, tt.remaining); got != tt.want {
			t.Errorf("priorityFor(%d, %d) = %v, want %v", tt.distinguishing, tt.remaining, got, tt.want)
		}
	}
}
