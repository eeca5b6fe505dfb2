package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateID     = errors.New("duplicate ghost id")
	ErrEmptySignature  = errors.New("ghost has no evidence")
	ErrUnknownEvidence = errors.New("unknown evidence kind")
	ErrEmptyCatalog    = errors.New("catalog has no ghosts")
)

// Ghost is a candidate entity the investigator is trying to identify.
type Ghost struct {
	ID            string         `yaml:"id"`
	Name          string         `yaml:"name"`
	Evidence      []EvidenceKind `yaml:"evidence"`                 // the fixed signature
	Difficulty    string         `yaml:"difficulty,omitempty"`     // e.g., "beginner", "expert"
	HuntThreshold int            `yaml:"hunt_threshold,omitempty"` // average sanity % at which hunts start
	Description   string         `yaml:"description,omitempty"`
	Strength      string         `yaml:"strength,omitempty"`
	Weakness      string         `yaml:"weakness,omitempty"`
}

// Signature returns the ghost's evidence as a set.
func (g Ghost) Signature() EvidenceSet {
	return NewEvidenceSet(g.Evidence...)
}

// Catalog is the read-only list of ghosts, loaded once.
type Catalog struct {
	Title  string  `yaml:"title"`
	Ghosts []Ghost `yaml:"ghosts"`
}

// Len returns the number of ghosts.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Ghosts)
}

// Lookup finds a ghost by id or by case-insensitive name.
func (c *Catalog) Lookup(key string) (Ghost, bool) {
	if c == nil {
		return Ghost{}, false
	}
	for _, g := range c.Ghosts {
		if g.ID == key || strings.EqualFold(g.Name, key) {
			return g, true
		}
	}
	return Ghost{}, false
}

// MaxSignatureSize is the largest number of evidence kinds any ghost exhibits.
func (c *Catalog) MaxSignatureSize() int {
	largest := 0
	if c == nil {
		return largest
	}
	for _, g := range c.Ghosts {
		largest = max(largest, g.Signature().Len())
	}
	return largest
}

// WithEvidence returns the ghosts whose signature contains every kind in want,
// in catalog order.
func (c *Catalog) WithEvidence(want EvidenceSet) []Ghost {
	if c == nil {
		return nil
	}
	var out []Ghost
	for _, g := range c.Ghosts {
		if want.SubsetOf(g.Signature()) {
			out = append(out, g)
		}
	}
	return out
}

// Search returns the ghosts whose name or id contains query, case-insensitively.
func (c *Catalog) Search(query string) []Ghost {
	if c == nil {
		return nil
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]Ghost(nil), c.Ghosts...)
	}
	var out []Ghost
	for _, g := range c.Ghosts {
		if strings.Contains(strings.ToLower(g.Name), q) || strings.Contains(g.ID, q) {
			out = append(out, g)
		}
	}
	return out
}

// Check enforces the provider contract: a non-empty list, unique ids and
// non-empty signatures. The engine itself does not require it.
func (c *Catalog) Check() error {
	if c.Len() == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]bool, len(c.Ghosts))
	for i, g := range c.Ghosts {
		if g.ID == "" {
			return fmt.Errorf("ghost #%d (%s) has no id", i, g.Name)
		}
		if seen[g.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, g.ID)
		}
		seen[g.ID] = true
		if g.Signature().Empty() {
			return fmt.Errorf("%w: %s", ErrEmptySignature, g.ID)
		}
	}
	return nil
}
