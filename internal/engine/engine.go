// Package engine narrows a ghost catalog down from observed evidence.
//
// Every operation is a pure function of the engine's catalog and the
// evidence state passed in:
//   - It never mutates its inputs
//   - It never performs I/O
//   - It produces deterministic, repeatable output
//
// An Engine is immutable after New and safe for concurrent use.
package engine

import (
	"github.com/tatianab/ghostbook/internal/models"
)

const (
	// NeutralConfidence is given to every ghost before any evidence is confirmed.
	NeutralConfidence = 50

	// DefinitePercent is the confidence of a ghost whose evidence is all confirmed.
	DefinitePercent = 100

	// DefaultBonusMultiplier and DefaultBonusDivisor shape the progress bonus
	// for partial matches: round((base + progress*multiplier) / divisor).
	// They are empirical; WithBonus tunes them.
	DefaultBonusMultiplier = 30.0
	DefaultBonusDivisor    = 1.3
)

type entry struct {
	ghost     models.Ghost
	signature models.EvidenceSet
}

// Engine classifies ghosts against evidence for one catalog.
type Engine struct {
	entries      []entry
	universe     []models.EvidenceKind
	multiplier   float64
	divisor      float64
	maxSignature int
}

// Option configures an Engine.
type Option func(*Engine)

// WithUniverse sets the ordered list of evidence kinds an investigation can
// record. It defaults to models.AllEvidence.
func WithUniverse(kinds ...models.EvidenceKind) Option {
	return func(e *Engine) {
		e.universe = append([]models.EvidenceKind(nil), kinds...)
	}
}

// WithBonus overrides the partial-match bonus constants. A non-positive
// divisor is ignored.
func WithBonus(multiplier, divisor float64) Option {
	return func(e *Engine) {
		if divisor <= 0 {
			return
		}
		e.multiplier = multiplier
		e.divisor = divisor
	}
}

// New builds an engine over the catalog's ghosts, kept in catalog order.
// A nil or empty catalog is valid and classifies to an empty result.
func New(catalog *models.Catalog, opts ...Option) *Engine {
	e := &Engine{
		universe:   models.AllEvidence(),
		multiplier: DefaultBonusMultiplier,
		divisor:    DefaultBonusDivisor,
	}
	for _, opt := range opts {
		opt(e)
	}

	if catalog != nil {
		e.entries = make([]entry, 0, len(catalog.Ghosts))
		for _, g := range catalog.Ghosts {
			e.entries = append(e.entries, entry{ghost: g, signature: g.Signature()})
		}
	}
	e.maxSignature = catalog.MaxSignatureSize()
	return e
}

// Universe returns the evidence kinds this engine considers, in order.
func (e *Engine) Universe() []models.EvidenceKind {
	return append([]models.EvidenceKind(nil), e.universe...)
}

// Size returns the number of ghosts in the engine's catalog.
func (e *Engine) Size() int {
	return len(e.entries)
}

// MaxSignatureSize is the largest signature in the catalog.
func (e *Engine) MaxSignatureSize() int {
	return e.maxSignature
}
