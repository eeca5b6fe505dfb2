package engine

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tatianab/ghostbook/internal/models"
)

func TestValidate(t *testing.T) {
	e := defaultEngine(t)

	tests := []struct {
		name       string
		state      models.EvidenceState
		wantValid  bool
		wantIssues int
	}{
		{"nothing confirmed", models.EvidenceState{}, true, 0},
		{"consistent", confirm(models.EMF, models.GhostOrb), true, 0},
		{"full match", confirm(models.EMF, models.GhostOrb, models.DOTS), true, 0},
		{"no ghost fits", confirm(models.EMF, models.GhostOrb, models.GhostWriting), false, 1},
		{"too much evidence", confirm(models.EMF, models.GhostOrb, models.DOTS, models.SpiritBox), false, 2},
		{"suspected ignored", models.EvidenceState{
			models.EMF: models.Suspected, models.GhostOrb: models.Suspected,
			models.DOTS: models.Suspected, models.SpiritBox: models.Suspected,
		}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := e.Validate(tt.state)
			if v.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", v.Valid, tt.wantValid)
			}
			if len(v.Issues) != tt.wantIssues {
				t.Errorf("Expected %d issues, got %q", tt.wantIssues, v.Issues)
			}
		})
	}
}

func TestValidate_MaxSignatureFromCatalog(t *testing.T) {
	catalog := &models.Catalog{Ghosts: []models.Ghost{
		ghost("wide", models.EMF, models.SpiritBox, models.Fingerprints, models.GhostOrb),
		ghost("narrow", models.DOTS),
	}}
	e := New(catalog)
	if e.MaxSignatureSize() != 4 {
		t.Fatalf("Expected max signature 4, got %d", e.MaxSignatureSize())
	}

	v := e.Validate(confirm(models.EMF, models.SpiritBox, models.Fingerprints, models.GhostOrb))
	if !v.Valid || len(v.Issues) != 0 {
		t.Errorf("Four kinds fit the wide ghost, got %+v", v)
	}
}

func TestValidate_WarningText(t *testing.T) {
	e := defaultEngine(t)
	v := e.Validate(confirm(models.EMF, models.GhostOrb, models.DOTS, models.SpiritBox))
	want := []string{
		"No ghost shows all of the confirmed evidence (EMF Level 5, Spirit Box, Ghost Orb, D.O.T.S Projector); re-check your observations.",
		"4 evidence confirmed but no ghost shows more than 3; one of them is probably wrong.",
	}
	if diff := cmp.Diff(want, v.Issues); diff != "" {
		t.Errorf("Issues mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_EmptyCatalog(t *testing.T) {
	v := New(&models.Catalog{}).Validate(models.EvidenceState{})
	if v.Valid {
		t.Error("Expected an empty catalog to be invalid")
	}
	if len(v.Issues) != 1 || !strings.Contains(v.Issues[0], "no ghosts") {
		t.Errorf("Unexpected issues %q", v.Issues)
	}
}

func TestSummarize(t *testing.T) {
	e := defaultEngine(t)

	tests := []struct {
		name  string
		state models.EvidenceState
		want  Summary
	}{
		{
			name:  "start",
			state: models.EvidenceState{models.EMF: models.Suspected},
			want: Summary{
				Kind:    SummaryStart,
				Message: "Start by confirming any evidence you have found.",
				Total:   7,
			},
		},
		{
			name:  "identified",
			state: confirm(models.EMF, models.SpiritBox, models.GhostWriting),
			want: Summary{
				Kind:      SummaryIdentified,
				Message:   "It's the Spirit! All of its evidence is confirmed.",
				Ghosts:    []string{"Spirit"},
				Confirmed: 3,
				Total:     7,
			},
		},
		{
			name:  "narrowing",
			state: confirm(models.EMF, models.GhostOrb),
			want: Summary{
				Kind:      SummaryNarrowing,
				Message:   "2 possible ghosts remain.",
				Confirmed: 2,
				Total:     7,
			},
		},
		{
			name:  "contradictory",
			state: confirm(models.EMF, models.GhostOrb, models.GhostWriting),
			want: Summary{
				Kind:      SummaryContradictory,
				Message:   "No ghost fits this evidence. Something was misread; re-check your observations.",
				Confirmed: 3,
				Total:     7,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Summarize(tt.state, e.Classify(tt.state))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Summarize mismatch (-want +got):\n%s", diff)
			}
			if got.String() != tt.want.Message {
				t.Errorf("String() = %q", got.String())
			}
		})
	}
}

func TestSummarize_SingleCandidateWording(t *testing.T) {
	catalog := &models.Catalog{Ghosts: []models.Ghost{
		ghost("a", models.EMF, models.DOTS),
		ghost("b", models.GhostOrb),
	}}
	e := New(catalog)
	state := confirm(models.EMF)
	if got := e.Summarize(state, e.Classify(state)).Message; got != "1 possible ghost remains." {
		t.Errorf("Unexpected message %q", got)
	}
}

func TestSummarize_VeryLikely(t *testing.T) {
	wide := ghost("wide", models.EMF, models.SpiritBox, models.Fingerprints, models.GhostOrb, models.GhostWriting)
	e := New(&models.Catalog{Ghosts: []models.Ghost{wide}}, WithUniverse(wide.Evidence...))
	state := confirm(models.EMF, models.SpiritBox, models.Fingerprints, models.GhostOrb)
	result := e.Classify(state)

	// round((80 + 4/5*30) / 1.3) = 80
	if c := result.Ranked[0]; c.Confidence != 80 || c.Band != VeryLikely {
		t.Fatalf("Expected 80 very-likely, got %d %v", c.Confidence, c.Band)
	}
	if got := e.Summarize(state, result).Message; got != "1 very likely ghost remains." {
		t.Errorf("Unexpected message %q", got)
	}
}
