package models

import (
	"fmt"
	"math/bits"
	"strings"

	"gopkg.in/yaml.v3"
)

// EvidenceKind is one category of observation a ghost can leave behind.
type EvidenceKind int

const (
	EMF EvidenceKind = iota
	SpiritBox
	Fingerprints
	GhostOrb
	GhostWriting
	FreezingTemps
	DOTS

	numEvidenceKinds
)

// AllEvidence returns every evidence kind in display order.
func AllEvidence() []EvidenceKind {
	kinds := make([]EvidenceKind, 0, numEvidenceKinds)
	for k := EMF; k < numEvidenceKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Slug is the machine name used in YAML files and CLI flags.
func (k EvidenceKind) Slug() string {
	switch k {
	case EMF:
		return "emf"
	case SpiritBox:
		return "spirit-box"
	case Fingerprints:
		return "fingerprints"
	case GhostOrb:
		return "orb"
	case GhostWriting:
		return "writing"
	case FreezingTemps:
		return "freezing"
	case DOTS:
		return "dots"
	}
	return fmt.Sprintf("evidence(%d)", int(k))
}

// String returns the display name.
func (k EvidenceKind) String() string {
	switch k {
	case EMF:
		return "EMF Level 5"
	case SpiritBox:
		return "Spirit Box"
	case Fingerprints:
		return "Ultraviolet"
	case GhostOrb:
		return "Ghost Orb"
	case GhostWriting:
		return "Ghost Writing"
	case FreezingTemps:
		return "Freezing Temperatures"
	case DOTS:
		return "D.O.T.S Projector"
	}
	return k.Slug()
}

// Equipment names the tool used to look for this evidence.
func (k EvidenceKind) Equipment() string {
	switch k {
	case EMF:
		return "EMF Reader"
	case SpiritBox:
		return "Spirit Box"
	case Fingerprints:
		return "UV Light"
	case GhostOrb:
		return "Video Camera"
	case GhostWriting:
		return "Ghost Writing Book"
	case FreezingTemps:
		return "Thermometer"
	case DOTS:
		return "D.O.T.S Projector"
	}
	return "unknown equipment"
}

// Valid reports whether k is one of the known kinds.
func (k EvidenceKind) Valid() bool {
	return k >= EMF && k < numEvidenceKinds
}

var evidenceAliases = map[string]EvidenceKind{
	"emf":           EMF,
	"emf5":          EMF,
	"emf-5":         EMF,
	"spirit-box":    SpiritBox,
	"spiritbox":     SpiritBox,
	"box":           SpiritBox,
	"fingerprints":  Fingerprints,
	"uv":            Fingerprints,
	"ultraviolet":   Fingerprints,
	"orb":           GhostOrb,
	"orbs":          GhostOrb,
	"ghost-orb":     GhostOrb,
	"writing":       GhostWriting,
	"ghost-writing": GhostWriting,
	"book":          GhostWriting,
	"freezing":      FreezingTemps,
	"temps":         FreezingTemps,
	"dots":          DOTS,
	"d.o.t.s":       DOTS,
}

// ParseEvidenceKind accepts a slug or one of its common aliases, case-insensitively.
func ParseEvidenceKind(s string) (EvidenceKind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", "-")
	key = strings.ReplaceAll(key, " ", "-")
	if k, ok := evidenceAliases[key]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEvidence, s)
}

// ParseEvidenceList parses a comma-separated list of evidence kinds.
func ParseEvidenceList(s string) ([]EvidenceKind, error) {
	var kinds []EvidenceKind
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := ParseEvidenceKind(part)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func (k EvidenceKind) MarshalYAML() (interface{}, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEvidence, int(k))
	}
	return k.Slug(), nil
}

func (k *EvidenceKind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseEvidenceKind(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*k = parsed
	return nil
}

// EvidenceSet is a set of evidence kinds stored as a bitmask.
type EvidenceSet uint16

// NewEvidenceSet builds a set from the given kinds. Invalid kinds are ignored.
func NewEvidenceSet(kinds ...EvidenceKind) EvidenceSet {
	var s EvidenceSet
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

func (s EvidenceSet) Add(k EvidenceKind) EvidenceSet {
	if !k.Valid() {
		return s
	}
	return s | 1<<uint(k)
}

func (s EvidenceSet) Has(k EvidenceKind) bool {
	return k.Valid() && s&(1<<uint(k)) != 0
}

func (s EvidenceSet) Len() int { return bits.OnesCount16(uint16(s)) }

func (s EvidenceSet) Empty() bool { return s == 0 }

// Union returns s ∪ o.
func (s EvidenceSet) Union(o EvidenceSet) EvidenceSet { return s | o }

// Intersect returns s ∩ o.
func (s EvidenceSet) Intersect(o EvidenceSet) EvidenceSet { return s & o }

// Minus returns s \ o.
func (s EvidenceSet) Minus(o EvidenceSet) EvidenceSet { return s &^ o }

// SubsetOf reports whether every kind in s is also in o.
func (s EvidenceSet) SubsetOf(o EvidenceSet) bool { return s&^o == 0 }

// Kinds lists the members in display order.
func (s EvidenceSet) Kinds() []EvidenceKind {
	var kinds []EvidenceKind
	for k := EMF; k < numEvidenceKinds; k++ {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (s EvidenceSet) String() string {
	kinds := s.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

// EvidenceStatus is what the investigator has recorded for one evidence kind.
type EvidenceStatus int

const (
	Absent EvidenceStatus = iota
	Suspected
	Confirmed
)

func (s EvidenceStatus) String() string {
	switch s {
	case Absent:
		return "absent"
	case Suspected:
		return "suspected"
	case Confirmed:
		return "confirmed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Next cycles absent → suspected → confirmed → absent.
func (s EvidenceStatus) Next() EvidenceStatus {
	switch s {
	case Absent:
		return Suspected
	case Suspected:
		return Confirmed
	}
	return Absent
}

// EvidenceState records the status of each evidence kind. Missing keys are absent.
// The engine only reads it.
type EvidenceState map[EvidenceKind]EvidenceStatus

// Status returns the recorded status of k, absent when unset.
func (st EvidenceState) Status(k EvidenceKind) EvidenceStatus {
	return st[k]
}

// Confirmed returns the set of kinds marked confirmed.
func (st EvidenceState) Confirmed() EvidenceSet {
	return st.withStatus(Confirmed)
}

// Suspected returns the set of kinds marked suspected.
func (st EvidenceState) Suspected() EvidenceSet {
	return st.withStatus(Suspected)
}

func (st EvidenceState) withStatus(want EvidenceStatus) EvidenceSet {
	var s EvidenceSet
	for k, status := range st {
		if status == want {
			s = s.Add(k)
		}
	}
	return s
}

// Clone returns an independent copy.
func (st EvidenceState) Clone() EvidenceState {
	out := make(EvidenceState, len(st))
	for k, v := range st {
		out[k] = v
	}
	return out
}
