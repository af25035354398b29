// Package engine recognizes multi-leg option structures and constructs
// canonical leg sets for them. All operations are pure, synchronous, and
// total: malformed input degrades to a custom classification, never to a
// panic. The engine is safe to invoke on every edit of a leg set and holds
// no state across calls.
package engine

import (
	"math"
	"sort"

	"github.com/optforge/legbook/internal/models"
)

// strikeEpsilon is the tolerance for strike equality. Strikes are quoted in
// fixed tick increments, so anything below a hundredth of a cent is noise.
const strikeEpsilon = 1e-4

// Classify derives the structural identity of a leg set. It never panics and
// returns {custom, long, symmetric} for the empty set or for anything the
// pattern rules cannot positively match. Zero-quantity legs carry no
// structure and are ignored.
func Classify(legs []models.Leg) models.Classification {
	fallback := models.Classification{
		Type:        models.TypeCustom,
		Direction:   models.DirectionLong,
		IsSymmetric: true,
	}

	active := make([]models.Leg, 0, len(legs))
	for _, l := range legs {
		if l.Quantity != 0 {
			active = append(active, l)
		}
	}
	if len(active) == 0 || len(active) > 4 {
		return fallback
	}

	sortLegs(active)
	reduceRatios(active)

	switch len(active) {
	case 1:
		return models.Classification{
			Type:        models.TypeSingle,
			Direction:   directionOf(active[0].Quantity),
			IsSymmetric: true,
		}
	case 2:
		return classifyPair(active, fallback)
	case 3:
		return classifyTriple(active, fallback)
	case 4:
		return classifyQuad(active, fallback)
	}
	return fallback
}

// classifyPair handles the two-leg families: vertical, calendar, diagonal,
// straddle, strangle.
func classifyPair(legs []models.Leg, fallback models.Classification) models.Classification {
	a, b := legs[0], legs[1]
	if !a.Right.Valid() || !b.Right.Valid() {
		return fallback
	}

	sameStrike := strikesEqual(a.Strike, b.Strike)
	sameExp := a.SameExpiration(b)
	unitRatios := abs(a.Quantity) == 1 && abs(b.Quantity) == 1

	if a.Right == b.Right {
		switch {
		case sameExp && !sameStrike:
			// Vertical: one long, one short. Long form holds the lower
			// strike long regardless of right.
			if unitRatios && a.Quantity*b.Quantity < 0 {
				return models.Classification{
					Type:        models.TypeVertical,
					Direction:   directionOf(a.Quantity),
					IsSymmetric: true,
				}
			}
		case !sameExp:
			// Calendar or diagonal: near leg short, far leg long in the
			// long form. Direction follows the far-dated leg.
			if unitRatios && a.Quantity*b.Quantity < 0 {
				far := a
				if b.Expiration.After(a.Expiration) {
					far = b
				}
				typ := models.TypeCalendar
				if !sameStrike {
					typ = models.TypeDiagonal
				}
				return models.Classification{
					Type:        typ,
					Direction:   directionOf(far.Quantity),
					IsSymmetric: true,
				}
			}
		}
		return fallback
	}

	// Opposite rights: straddle or strangle. Both legs must carry the same
	// sign and reduce to unit ratios; a same-strike pair with mismatched
	// magnitudes is deliberately left as custom.
	if unitRatios && a.Quantity*b.Quantity > 0 {
		typ := models.TypeStrangle
		if sameStrike {
			typ = models.TypeStraddle
		}
		return models.Classification{
			Type:        typ,
			Direction:   directionOf(a.Quantity),
			IsSymmetric: true,
		}
	}
	return fallback
}

// classifyTriple handles butterflies and broken-wing butterflies: same
// right, same expiration, ratio s/-2s/s in ascending strike order.
func classifyTriple(legs []models.Leg, fallback models.Classification) models.Classification {
	if !sameRight(legs) || !sameExpiration(legs) || !strictlyAscending(legs) {
		return fallback
	}
	s := legs[0].Quantity
	if abs(s) != 1 || legs[1].Quantity != -2*s || legs[2].Quantity != s {
		return fallback
	}

	leftGap := legs[1].Strike - legs[0].Strike
	rightGap := legs[2].Strike - legs[1].Strike
	symmetric := math.Abs(leftGap-rightGap) <= strikeEpsilon

	typ := models.TypeButterfly
	if !symmetric {
		typ = models.TypeBrokenWingButterfly
	}
	return models.Classification{
		Type:        typ,
		Direction:   directionOf(s),
		IsSymmetric: symmetric,
	}
}

// classifyQuad handles the four-leg families: same-right condors and the
// mixed-right iron fly / iron condor.
func classifyQuad(legs []models.Leg, fallback models.Classification) models.Classification {
	if !sameExpiration(legs) {
		return fallback
	}
	if sameRight(legs) {
		return classifyCondor(legs, fallback)
	}
	return classifyIron(legs, fallback)
}

// classifyCondor matches the s/-s/-s/s pattern over four ascending strikes.
// Unequal wing widths stay a condor; the asymmetry is surfaced only through
// IsSymmetric, unlike the three-leg butterfly/bwb split.
func classifyCondor(legs []models.Leg, fallback models.Classification) models.Classification {
	if !legs[0].Right.Valid() || !strictlyAscending(legs) {
		return fallback
	}
	s := legs[0].Quantity
	if abs(s) != 1 || legs[1].Quantity != -s || legs[2].Quantity != -s || legs[3].Quantity != s {
		return fallback
	}

	center := (legs[1].Strike + legs[2].Strike) / 2
	symmetric := math.Abs((center-legs[0].Strike)-(legs[3].Strike-center)) <= strikeEpsilon

	return models.Classification{
		Type:        models.TypeCondor,
		Direction:   directionOf(s),
		IsSymmetric: symmetric,
	}
}

// classifyIron matches a put pair plus a call pair sharing the iron shape:
// unit ratios, inner pair one sign, outer wings the other. Inner strikes
// equal means iron fly; separated means iron condor.
func classifyIron(legs []models.Leg, fallback models.Classification) models.Classification {
	var puts, calls []models.Leg
	for _, l := range legs {
		switch l.Right {
		case models.RightPut:
			puts = append(puts, l)
		case models.RightCall:
			calls = append(calls, l)
		default:
			return fallback
		}
	}
	if len(puts) != 2 || len(calls) != 2 {
		return fallback
	}

	// sortLegs already ordered by strike, so each pair is low/high.
	outerPut, innerPut := puts[0], puts[1]
	innerCall, outerCall := calls[0], calls[1]

	if strikesEqual(outerPut.Strike, innerPut.Strike) || strikesEqual(innerCall.Strike, outerCall.Strike) {
		return fallback
	}
	// The put side must sit at or below the call side.
	if innerPut.Strike > innerCall.Strike+strikeEpsilon {
		return fallback
	}

	s := outerPut.Quantity
	if abs(s) != 1 || outerCall.Quantity != s || innerPut.Quantity != -s || innerCall.Quantity != -s {
		return fallback
	}

	typ := models.TypeIronCondor
	if strikesEqual(innerPut.Strike, innerCall.Strike) {
		typ = models.TypeIronFly
	}

	center := (innerPut.Strike + innerCall.Strike) / 2
	symmetric := math.Abs((center-outerPut.Strike)-(outerCall.Strike-center)) <= strikeEpsilon

	return models.Classification{
		Type:        typ,
		Direction:   directionOf(s),
		IsSymmetric: symmetric,
	}
}

// sortLegs orders legs by strike ascending, ties broken by expiration
// ascending. This is the canonical order every pattern rule assumes.
func sortLegs(legs []models.Leg) {
	sort.SliceStable(legs, func(i, j int) bool {
		if math.Abs(legs[i].Strike-legs[j].Strike) > strikeEpsilon {
			return legs[i].Strike < legs[j].Strike
		}
		return legs[i].Expiration.Before(legs[j].Expiration)
	})
}

// reduceRatios divides all quantities by the GCD of their absolute values so
// that 2/-4/2 and 1/-2/1 match the same patterns.
func reduceRatios(legs []models.Leg) {
	g := 0
	for _, l := range legs {
		g = gcd(g, abs(l.Quantity))
	}
	if g <= 1 {
		return
	}
	for i := range legs {
		legs[i].Quantity /= g
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func directionOf(quantity int) models.Direction {
	if quantity < 0 {
		return models.DirectionShort
	}
	return models.DirectionLong
}

func strikesEqual(a, b float64) bool {
	return math.Abs(a-b) <= strikeEpsilon
}

func sameRight(legs []models.Leg) bool {
	first := legs[0].Right
	if !first.Valid() {
		return false
	}
	for _, l := range legs[1:] {
		if l.Right != first {
			return false
		}
	}
	return true
}

func sameExpiration(legs []models.Leg) bool {
	for _, l := range legs[1:] {
		if !l.SameExpiration(legs[0]) {
			return false
		}
	}
	return true
}

func strictlyAscending(legs []models.Leg) bool {
	for i := 1; i < len(legs); i++ {
		if legs[i].Strike-legs[i-1].Strike <= strikeEpsilon {
			return false
		}
	}
	return true
}
