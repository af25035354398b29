package engine

import (
	"time"

	"github.com/optforge/legbook/internal/models"
)

// BuildParams are the anchor parameters for constructing the canonical legs
// of a named structure. Zero values fall back sensibly: an empty Direction
// uses the type's default, a zero LeftWidth/RightWidth uses Width, and a
// zero FarExpiration (calendar/diagonal only) uses one calendar month past
// Expiration.
type BuildParams struct {
	Type          models.PositionType
	Strike        float64
	Width         float64
	LeftWidth     float64
	RightWidth    float64
	Expiration    time.Time
	FarExpiration time.Time
	Right         models.OptionRight
	Direction     models.Direction
}

// Build constructs the canonical leg set for the given type. Quantities are
// written in the long form and negated uniformly when the effective
// direction is short, so the constructor and the classifier's direction
// inference cannot diverge. Unknown or custom types return nil: there is no
// canonical form to build.
func Build(p BuildParams) []models.Leg {
	legs := longForm(p)
	if legs == nil {
		return nil
	}

	direction := p.Direction
	if !direction.Valid() {
		direction = p.Type.DefaultDirection()
	}
	if direction == models.DirectionShort {
		for i := range legs {
			legs[i].Quantity = -legs[i].Quantity
		}
	}
	return legs
}

// longForm lays out each type's legs in ascending strike order with
// long-canonical ratios.
func longForm(p BuildParams) []models.Leg {
	leg := func(strike float64, right models.OptionRight, qty int) models.Leg {
		return models.Leg{Strike: strike, Expiration: p.Expiration, Right: right, Quantity: qty}
	}

	switch p.Type {
	case models.TypeSingle:
		return []models.Leg{leg(p.Strike, p.Right, 1)}

	case models.TypeVertical:
		// Lower strike long, higher strike short, for calls and puts alike.
		return []models.Leg{
			leg(p.Strike, p.Right, 1),
			leg(p.Strike+p.Width, p.Right, -1),
		}

	case models.TypeButterfly:
		return []models.Leg{
			leg(p.Strike-p.Width, p.Right, 1),
			leg(p.Strike, p.Right, -2),
			leg(p.Strike+p.Width, p.Right, 1),
		}

	case models.TypeBrokenWingButterfly:
		left, right := p.LeftWidth, p.RightWidth
		if left == 0 {
			left = p.Width
		}
		if right == 0 {
			right = p.Width
		}
		return []models.Leg{
			leg(p.Strike-left, p.Right, 1),
			leg(p.Strike, p.Right, -2),
			leg(p.Strike+right, p.Right, 1),
		}

	case models.TypeCondor:
		return []models.Leg{
			leg(p.Strike-1.5*p.Width, p.Right, 1),
			leg(p.Strike-0.5*p.Width, p.Right, -1),
			leg(p.Strike+0.5*p.Width, p.Right, -1),
			leg(p.Strike+1.5*p.Width, p.Right, 1),
		}

	case models.TypeStraddle:
		return []models.Leg{
			leg(p.Strike, models.RightPut, 1),
			leg(p.Strike, models.RightCall, 1),
		}

	case models.TypeStrangle:
		return []models.Leg{
			leg(p.Strike-p.Width, models.RightPut, 1),
			leg(p.Strike+p.Width, models.RightCall, 1),
		}

	case models.TypeIronFly:
		return []models.Leg{
			leg(p.Strike-p.Width, models.RightPut, 1),
			leg(p.Strike, models.RightPut, -1),
			leg(p.Strike, models.RightCall, -1),
			leg(p.Strike+p.Width, models.RightCall, 1),
		}

	case models.TypeIronCondor:
		return []models.Leg{
			leg(p.Strike-1.5*p.Width, models.RightPut, 1),
			leg(p.Strike-0.5*p.Width, models.RightPut, -1),
			leg(p.Strike+0.5*p.Width, models.RightCall, -1),
			leg(p.Strike+1.5*p.Width, models.RightCall, 1),
		}

	case models.TypeCalendar:
		far := models.Leg{Strike: p.Strike, Expiration: p.farExpiration(), Right: p.Right, Quantity: 1}
		return []models.Leg{leg(p.Strike, p.Right, -1), far}

	case models.TypeDiagonal:
		far := models.Leg{Strike: p.Strike + p.Width, Expiration: p.farExpiration(), Right: p.Right, Quantity: 1}
		return []models.Leg{leg(p.Strike, p.Right, -1), far}
	}
	return nil
}

func (p BuildParams) farExpiration() time.Time {
	if !p.FarExpiration.IsZero() {
		return p.FarExpiration
	}
	return p.Expiration.AddDate(0, 1, 0)
}
