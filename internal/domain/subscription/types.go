package subscription

// Money is a monetary amount in the smallest currency unit.
type Money = int64

// Type represents the contract type of a subscription.
type Type string

const (
	TypeB2C     Type = "B2C"
	TypeB2B     Type = "B2B"
	TypeMiniB2B Type = "MINIB2B"
)

var ValidTypes = map[Type]bool{
	TypeB2C:     true,
	TypeB2B:     true,
	TypeMiniB2B: true,
}

func (t Type) String() string {
	return string(t)
}

func (t Type) Valid() bool {
	return ValidTypes[t]
}

// TermType represents whether a contract runs for a fixed term or open ended.
type TermType string

const (
	TermTypeFixed     TermType = "FIXED"
	TermTypeOpenEnded TermType = "OPEN_ENDED"
)

var ValidTermTypes = map[TermType]bool{
	TermTypeFixed:     true,
	TermTypeOpenEnded: true,
}

func (t TermType) String() string {
	return string(t)
}

func (t TermType) Valid() bool {
	return ValidTermTypes[t]
}

// SortOrder controls the time ordering of event listings.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

func (o SortOrder) Valid() bool {
	return o == SortAscending || o == SortDescending
}
