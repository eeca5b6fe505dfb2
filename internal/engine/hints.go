package engine

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/tatianab/ghostbook/internal/models"
)

// Priority ranks how useful a hint is for the ghosts still in play.
type Priority int

const (
	High Priority = iota
	Medium
	Low
)

func (p Priority) String() string {
	switch p {
	case High:
		return "high"
	case Medium:
		return "medium"
	case Low:
		return "low"
	}
	return fmt.Sprintf("priority(%d)", int(p))
}

// Hint suggests an evidence kind to investigate next.
type Hint struct {
	Evidence  models.EvidenceKind
	Equipment string
	Reason    string
	// EliminationPower blends the best catalog-wide split with how many
	// remaining ghosts still need this evidence.
	EliminationPower int
	// DistinguishingPower counts remaining ghosts whose missing evidence
	// includes this kind.
	DistinguishingPower int
	Priority            Priority
}

// SuggestNext ranks every evidence kind not yet confirmed by how much
// checking it would narrow the field. result should come from Classify with
// the same state.
//
// This is a greedy one-step heuristic, not an expected-entropy search: it is
// cheap and good enough to guide a person holding a thermometer.
func (e *Engine) SuggestNext(state models.EvidenceState, result Result) []Hint {
	remaining := result.Remaining()
	total := len(e.entries)

	var hints []Hint
	for _, k := range e.universe {
		if state.Status(k) == models.Confirmed {
			continue
		}

		withK := 0
		for _, en := range e.entries {
			if en.signature.Has(k) {
				withK++
			}
		}
		maxElimination := max(withK, total-withK)

		distinguishing := 0
		for _, c := range remaining {
			if slices.Contains(c.Missing, k) {
				distinguishing++
			}
		}

		hints = append(hints, Hint{
			Evidence:            k,
			Equipment:           k.Equipment(),
			EliminationPower:    int(math.Round(float64(maxElimination+distinguishing*2) / 2)),
			DistinguishingPower: distinguishing,
			Priority:            priorityFor(distinguishing, len(remaining)),
			Reason:              hintReason(k, distinguishing, len(remaining), maxElimination, total),
		})
	}

	sort.SliceStable(hints, func(i, j int) bool {
		if hints[i].Priority != hints[j].Priority {
			return hints[i].Priority < hints[j].Priority
		}
		return hints[i].EliminationPower > hints[j].EliminationPower
	})
	return hints
}

func priorityFor(distinguishing, remaining int) Priority {
	switch d, r := float64(distinguishing), float64(remaining); {
	case d > 0.5*r:
		return High
	case d > 0.25*r:
		return Medium
	}
	return Low
}

func hintReason(k models.EvidenceKind, distinguishing, remaining, maxElimination, total int) string {
	if remaining == 0 {
		return fmt.Sprintf("Use the %s; no ghost fits the confirmed evidence, so re-check it first", k.Equipment())
	}
	return fmt.Sprintf("Use the %s: %d of %d remaining ghosts could show %s; either result separates %d of %d ghosts",
		k.Equipment(), distinguishing, remaining, k, maxElimination, total)
}
