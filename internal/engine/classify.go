package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tatianab/ghostbook/internal/models"
)

// Band groups confidence scores.
type Band int

const (
	Impossible Band = iota // 0
	Unlikely               // 1-19
	Possible               // 20-79
	VeryLikely             // 80-99
	Definite               // 100
)

// Bands lists every band from strongest to weakest.
var Bands = []Band{Definite, VeryLikely, Possible, Unlikely, Impossible}

func (b Band) String() string {
	switch b {
	case Definite:
		return "definite"
	case VeryLikely:
		return "very-likely"
	case Possible:
		return "possible"
	case Unlikely:
		return "unlikely"
	case Impossible:
		return "impossible"
	}
	return fmt.Sprintf("band(%d)", int(b))
}

// BandFor maps a confidence score to its band.
func BandFor(confidence int) Band {
	switch {
	case confidence >= DefinitePercent:
		return Definite
	case confidence >= 80:
		return VeryLikely
	case confidence >= 20:
		return Possible
	case confidence >= 1:
		return Unlikely
	}
	return Impossible
}

// Classification is the verdict for one ghost.
type Classification struct {
	Ghost      models.Ghost
	Confidence int
	Band       Band
	Matched    []models.EvidenceKind // confirmed and in the signature
	Missing    []models.EvidenceKind // in the signature, not yet confirmed
	// Contradictions are confirmed kinds this ghost can never produce.
	Contradictions []models.EvidenceKind
	Reason         string
}

// Result is a ranked classification of the whole catalog.
type Result struct {
	Confirmed models.EvidenceSet
	// Ranked holds every ghost, highest confidence first. Equal scores keep
	// catalog order.
	Ranked []Classification
}

// Band returns the ranked classifications that fall in b.
func (r Result) Band(b Band) []Classification {
	var out []Classification
	for _, c := range r.Ranked {
		if c.Band == b {
			out = append(out, c)
		}
	}
	return out
}

// Counts returns how many ghosts fall in each band.
func (r Result) Counts() map[Band]int {
	counts := make(map[Band]int, len(Bands))
	for _, b := range Bands {
		counts[b] = 0
	}
	for _, c := range r.Ranked {
		counts[c.Band]++
	}
	return counts
}

// Remaining returns every ghost not ruled out, in rank order.
func (r Result) Remaining() []Classification {
	var out []Classification
	for _, c := range r.Ranked {
		if c.Band != Impossible {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the classification for a ghost id.
func (r Result) Find(id string) (Classification, bool) {
	for _, c := range r.Ranked {
		if c.Ghost.ID == id {
			return c, true
		}
	}
	return Classification{}, false
}

// Classify scores every ghost against the confirmed evidence in state.
// Suspected evidence does not affect the scores.
func (e *Engine) Classify(state models.EvidenceState) Result {
	confirmed := state.Confirmed()

	ranked := make([]Classification, 0, len(e.entries))
	for _, en := range e.entries {
		ranked = append(ranked, e.classifyOne(en, confirmed))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})

	return Result{Confirmed: confirmed, Ranked: ranked}
}

func (e *Engine) classifyOne(en entry, confirmed models.EvidenceSet) Classification {
	sig := en.signature
	matched := confirmed.Intersect(sig)
	c := Classification{
		Ghost:          en.ghost,
		Matched:        matched.Kinds(),
		Missing:        sig.Minus(confirmed).Kinds(),
		Contradictions: confirmed.Minus(sig).Kinds(),
	}

	switch {
	case len(c.Contradictions) > 0:
		c.Confidence = 0
		c.Reason = "Ruled out: cannot produce " + joinKinds(c.Contradictions)
	case confirmed.Empty():
		c.Confidence = NeutralConfidence
		c.Reason = "No evidence confirmed yet"
	case sig.SubsetOf(confirmed):
		c.Confidence = DefinitePercent
		c.Reason = fmt.Sprintf("All %d evidence confirmed", sig.Len())
	default:
		c.Confidence = e.partialConfidence(matched.Len(), sig.Len(), confirmed.Len())
		c.Reason = fmt.Sprintf("%d of %d evidence confirmed", matched.Len(), sig.Len())
	}
	c.Band = BandFor(c.Confidence)
	return c
}

// partialConfidence rewards the match ratio plus a bounded bonus for overall
// investigation progress. It stays below DefinitePercent so only a full match
// is definite.
func (e *Engine) partialConfidence(matched, signature, confirmed int) int {
	base := float64(matched) / float64(signature) * 100
	progress := 0.0
	if total := len(e.universe); total > 0 {
		progress = float64(confirmed) / float64(total)
	}
	adjusted := int(math.Round((base + progress*e.multiplier) / e.divisor))
	return min(max(adjusted, 0), DefinitePercent-1)
}

func joinKinds(kinds []models.EvidenceKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}
