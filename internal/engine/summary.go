package engine

import (
	"fmt"
	"strings"

	"github.com/tatianab/ghostbook/internal/models"
)

// SummaryKind tells callers which situation a summary describes.
type SummaryKind int

const (
	SummaryStart SummaryKind = iota
	SummaryIdentified
	// SummaryAmbiguous means several ghosts match every confirmed evidence.
	// Their signatures overlap completely and evidence alone cannot split them.
	SummaryAmbiguous
	SummaryNarrowing
	SummaryContradictory
	SummaryEmptyCatalog
)

func (k SummaryKind) String() string {
	switch k {
	case SummaryStart:
		return "start"
	case SummaryIdentified:
		return "identified"
	case SummaryAmbiguous:
		return "ambiguous"
	case SummaryNarrowing:
		return "narrowing"
	case SummaryContradictory:
		return "contradictory"
	case SummaryEmptyCatalog:
		return "empty-catalog"
	}
	return fmt.Sprintf("summary(%d)", int(k))
}

// Summary is a one-line status for the investigation.
type Summary struct {
	Kind    SummaryKind
	Message string
	// Ghosts names the definite matches for identified and ambiguous summaries.
	Ghosts    []string
	Confirmed int
	Total     int
}

func (s Summary) String() string { return s.Message }

// Summarize describes where the investigation stands.
func (e *Engine) Summarize(state models.EvidenceState, result Result) Summary {
	s := Summary{
		Confirmed: state.Confirmed().Len(),
		Total:     len(e.universe),
	}
	counts := result.Counts()

	switch {
	case len(result.Ranked) == 0:
		s.Kind = SummaryEmptyCatalog
		s.Message = "The catalog has no ghosts."
	case s.Confirmed == 0:
		s.Kind = SummaryStart
		s.Message = "Start by confirming any evidence you have found."
	case counts[Definite] == 1:
		g := result.Band(Definite)[0].Ghost
		s.Kind = SummaryIdentified
		s.Ghosts = []string{g.Name}
		s.Message = fmt.Sprintf("It's the %s! All of its evidence is confirmed.", g.Name)
	case counts[Definite] > 1:
		for _, c := range result.Band(Definite) {
			s.Ghosts = append(s.Ghosts, c.Ghost.Name)
		}
		s.Kind = SummaryAmbiguous
		s.Message = fmt.Sprintf("%d ghosts match all confirmed evidence (%s); evidence alone cannot tell them apart.",
			len(s.Ghosts), strings.Join(s.Ghosts, ", "))
	case counts[Impossible] == len(result.Ranked):
		s.Kind = SummaryContradictory
		s.Message = "No ghost fits this evidence. Something was misread; re-check your observations."
	case counts[VeryLikely] > 0:
		s.Kind = SummaryNarrowing
		s.Message = countMessage(counts[VeryLikely], "very likely")
	case counts[Possible] > 0:
		s.Kind = SummaryNarrowing
		s.Message = countMessage(counts[Possible], "possible")
	default:
		s.Kind = SummaryNarrowing
		s.Message = countMessage(counts[Unlikely], "unlikely")
	}
	return s
}

func countMessage(n int, label string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ghost remains.", label)
	}
	return fmt.Sprintf("%d %s ghosts remain.", n, label)
}
