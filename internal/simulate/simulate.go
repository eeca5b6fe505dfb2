// Package simulate replays investigations against a known ghost to measure
// how quickly the hint generator leads to an identification.
package simulate

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/tatianab/ghostbook/internal/engine"
	"github.com/tatianab/ghostbook/internal/logging"
	"github.com/tatianab/ghostbook/internal/models"
)

// Step is one check the simulated investigator made.
type Step struct {
	Evidence  models.EvidenceKind
	Found     bool
	Remaining int // ghosts still possible after the check
	Summary   string
}

// Outcome is the result of hunting one ghost.
type Outcome struct {
	Ghost      models.Ghost
	Steps      []Step
	Identified bool
	// Tied lists other ghosts that matched every confirmed evidence when the
	// hunt ended. Evidence alone cannot separate them.
	Tied    []string
	Summary engine.Summary
}

// Checks is the number of evidence kinds investigated.
func (o Outcome) Checks() int { return len(o.Steps) }

// Hunt plays one investigation: always take the best hint not yet checked and
// confirm it if the ghost exhibits it, until the summary is no longer narrowing.
func Hunt(ctx context.Context, e *engine.Engine, target models.Ghost) (Outcome, error) {
	sig := target.Signature()
	state := models.EvidenceState{}
	checked := models.EvidenceSet(0)
	out := Outcome{Ghost: target}

	for {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		result := e.Classify(state)
		out.Summary = e.Summarize(state, result)
		if out.Summary.Kind == engine.SummaryIdentified || out.Summary.Kind == engine.SummaryAmbiguous {
			break
		}

		next, ok := bestUnchecked(e.SuggestNext(state, result), checked)
		if !ok {
			break
		}
		checked = checked.Add(next)
		found := sig.Has(next)
		if found {
			state[next] = models.Confirmed
		}

		after := e.Classify(state)
		out.Steps = append(out.Steps, Step{
			Evidence:  next,
			Found:     found,
			Remaining: len(after.Remaining()),
			Summary:   e.Summarize(state, after).Message,
		})
	}

	for _, name := range out.Summary.Ghosts {
		if name != target.Name {
			out.Tied = append(out.Tied, name)
		}
	}
	out.Identified = slices.Contains(out.Summary.Ghosts, target.Name)
	return out, nil
}

func bestUnchecked(hints []engine.Hint, checked models.EvidenceSet) (models.EvidenceKind, bool) {
	for _, h := range hints {
		if !checked.Has(h.Evidence) {
			return h.Evidence, true
		}
	}
	return 0, false
}

// Run hunts every ghost in the catalog with at most parallel hunts at once.
// Outcomes are returned in catalog order; a nil or empty catalog yields none.
func Run(ctx context.Context, catalog *models.Catalog, parallel int, opts ...engine.Option) ([]Outcome, error) {
	if parallel < 1 {
		return nil, fmt.Errorf("parallel must be at least 1, got %d", parallel)
	}
	if catalog.Len() == 0 {
		return nil, nil
	}
	log := logging.For("simulate")
	e := engine.New(catalog, opts...)

	outcomes := make([]Outcome, catalog.Len())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, ghost := range catalog.Ghosts {
		g.Go(func() error {
			o, err := Hunt(gctx, e, ghost)
			if err != nil {
				return fmt.Errorf("hunt %s: %w", ghost.ID, err)
			}
			log.Debug("hunt finished", "ghost", ghost.ID, "checks", o.Checks(), "identified", o.Identified)
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Stats aggregates a set of outcomes.
type Stats struct {
	Hunts        int
	Identified   int
	Tied         int
	TotalChecks  int
	MostChecks   int
	HardestGhost string
}

// AverageChecks is the mean number of checks per hunt.
func (s Stats) AverageChecks() float64 {
	if s.Hunts == 0 {
		return 0
	}
	return float64(s.TotalChecks) / float64(s.Hunts)
}

// Summarize folds outcomes into Stats.
func Summarize(outcomes []Outcome) Stats {
	var s Stats
	for _, o := range outcomes {
		s.Hunts++
		s.TotalChecks += o.Checks()
		if o.Identified && len(o.Tied) == 0 {
			s.Identified++
		}
		if len(o.Tied) > 0 {
			s.Tied++
		}
		if o.Checks() > s.MostChecks {
			s.MostChecks = o.Checks()
			s.HardestGhost = o.Ghost.Name
		}
	}
	return s
}
