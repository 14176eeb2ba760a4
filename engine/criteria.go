package engine

import "strings"

// AllSentinel marks a selector field as unconstrained.
const AllSentinel = "all"

// SizeThreshold splits listings into the two size buckets, in area units.
const SizeThreshold = 1500.0

// SizeBucket selects which side of SizeThreshold a listing must fall on.
type SizeBucket string

const (
	SizeAll   SizeBucket = "all"
	SizeUnder SizeBucket = "under1500"
	SizeAbove SizeBucket = "above1500"
)

// Criteria is one immutable snapshot of the user's filter selections.
// Zero-valued / sentinel fields impose no constraint.
type Criteria struct {
	Query        string
	Type         string
	City         string
	MinBedrooms  int
	MinBathrooms int
	Size         SizeBucket
}

// DefaultCriteria returns a Criteria with every clause at its sentinel,
// which filters nothing out.
func DefaultCriteria() Criteria {
	return Criteria{
		Type: AllSentinel,
		City: AllSentinel,
		Size: SizeAll,
	}
}

// IsDefault reports whether every clause is at its sentinel.
func (c Criteria) IsDefault() bool {
	return strings.TrimSpace(c.Query) == "" &&
		!c.hasType() && !c.hasCity() &&
		c.MinBedrooms <= 0 && c.MinBathrooms <= 0 &&
		!c.hasSize()
}

func (c Criteria) hasType() bool {
	return c.Type != "" && c.Type != AllSentinel
}

func (c Criteria) hasCity() bool {
	return c.City != "" && c.City != AllSentinel
}

func (c Criteria) hasSize() bool {
	return c.Size == SizeUnder || c.Size == SizeAbove
}
