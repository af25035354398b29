package models

// PositionType identifies a named multi-leg option structure. TypeCustom is
// the fallback for anything the pattern rules cannot positively identify; it
// is always a valid result, never an error.
type PositionType string

const (
	// TypeSingle is a one-leg position
	TypeSingle PositionType = "single"
	// TypeVertical is a two-leg, same-right, same-expiration spread
	TypeVertical PositionType = "vertical"
	// TypeButterfly is a three-leg 1/-2/1 spread with equal wing widths
	TypeButterfly PositionType = "butterfly"
	// TypeBrokenWingButterfly is a butterfly with unequal wing widths
	TypeBrokenWingButterfly PositionType = "bwb"
	// TypeCondor is a four-leg, same-right 1/-1/-1/1 spread
	TypeCondor PositionType = "condor"
	// TypeStraddle is a same-strike call/put pair
	TypeStraddle PositionType = "straddle"
	// TypeStrangle is a different-strike call/put pair
	TypeStrangle PositionType = "strangle"
	// TypeIronFly is the butterfly payoff built from a put spread and a call spread
	TypeIronFly PositionType = "iron_fly"
	// TypeIronCondor is the condor payoff built from a put spread and a call spread
	TypeIronCondor PositionType = "iron_condor"
	// TypeCalendar is a same-strike, same-right pair across two expirations
	TypeCalendar PositionType = "calendar"
	// TypeDiagonal is a different-strike, same-right pair across two expirations
	TypeDiagonal PositionType = "diagonal"
	// TypeCustom is the fallback for unrecognized structures
	TypeCustom PositionType = "custom"
)

// positionTypeLabels is the fixed type -> display label table.
var positionTypeLabels = map[PositionType]string{
	TypeSingle:              "Single",
	TypeVertical:            "Vertical",
	TypeButterfly:           "Butterfly",
	TypeBrokenWingButterfly: "Broken Wing Butterfly",
	TypeCondor:              "Condor",
	TypeStraddle:            "Straddle",
	TypeStrangle:            "Strangle",
	TypeIronFly:             "Iron Fly",
	TypeIronCondor:          "Iron Condor",
	TypeCalendar:            "Calendar",
	TypeDiagonal:            "Diagonal",
	TypeCustom:              "Custom",
}

// Valid returns true if the PositionType is one of the defined constants
func (t PositionType) Valid() bool {
	_, ok := positionTypeLabels[t]
	return ok
}

// Label returns the human-readable display name, falling back to "Custom"
// for unrecognized values.
func (t PositionType) Label() string {
	if label, ok := positionTypeLabels[t]; ok {
		return label
	}
	return positionTypeLabels[TypeCustom]
}

// DefaultDirection returns the natural opening direction for the type.
// Credit-collection structures default to short; everything else to long.
func (t PositionType) DefaultDirection() Direction {
	switch t {
	case TypeIronFly, TypeIronCondor, TypeStraddle, TypeStrangle:
		return DirectionShort
	default:
		return DirectionLong
	}
}

// IsTimeSpread reports whether the type spans two expirations. Callers use
// this to warn that a short calendar or diagonal carries elevated
// volatility sensitivity.
func (t PositionType) IsTimeSpread() bool {
	return t == TypeCalendar || t == TypeDiagonal
}

// Classification is the derived identity of a leg set. It is recomputed on
// every call and never persisted as authoritative state; the legs themselves
// are the source of truth.
type Classification struct {
	Type        PositionType `json:"type"`
	Direction   Direction    `json:"direction"`
	IsSymmetric bool         `json:"is_symmetric"`
}
