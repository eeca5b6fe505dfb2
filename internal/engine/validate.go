package engine

import (
	"fmt"

	"github.com/tatianab/ghostbook/internal/models"
)

// Validation reports whether the confirmed evidence is still consistent with
// at least one ghost.
type Validation struct {
	Valid  bool
	Issues []string
}

// Validate checks the confirmed evidence in state against the catalog.
func (e *Engine) Validate(state models.EvidenceState) Validation {
	confirmed := state.Confirmed()

	possible := 0
	for _, en := range e.entries {
		if confirmed.SubsetOf(en.signature) {
			possible++
		}
	}

	v := Validation{Valid: possible > 0}
	switch {
	case len(e.entries) == 0:
		v.Issues = append(v.Issues, "The catalog has no ghosts to match against.")
	case possible == 0:
		v.Issues = append(v.Issues, fmt.Sprintf(
			"No ghost shows all of the confirmed evidence (%s); re-check your observations.", confirmed))
	}

	// No ghost can show more evidence than the largest signature, so more
	// confirmations than that means a misread somewhere.
	if n := confirmed.Len(); n > e.maxSignature {
		v.Issues = append(v.Issues, fmt.Sprintf(
			"%d evidence confirmed but no ghost shows more than %d; one of them is probably wrong.", n, e.maxSignature))
	}
	return v
}
