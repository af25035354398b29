package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/optforge/legbook/internal/models"
)

// FormatLegs renders one token per leg, ordered by strike ascending with
// expiration as the tie-break: "<signed-quantity> <right-letter> <strike>".
func FormatLegs(legs []models.Leg) string {
	if len(legs) == 0 {
		return ""
	}
	sorted := make([]models.Leg, len(legs))
	copy(sorted, legs)
	sortLegs(sorted)

	tokens := make([]string, 0, len(sorted))
	for _, l := range sorted {
		tokens = append(tokens, fmt.Sprintf("%+d %s %s", l.Quantity, l.Right.Letter(), formatStrike(l.Strike)))
	}
	return strings.Join(tokens, ", ")
}

// FormatPositionLabel renders "<Long|Short> <TypeLabel>" for recognized
// structures and a bare "Custom" for anything else. The legs are accepted so
// callers can hand over a classification result wholesale; unrecognized
// structures carry no meaningful direction to display.
func FormatPositionLabel(typ models.PositionType, direction models.Direction, legs []models.Leg) string {
	if !typ.Valid() || typ == models.TypeCustom {
		return models.TypeCustom.Label()
	}
	if !direction.Valid() {
		direction = typ.DefaultDirection()
	}
	return direction.Label() + " " + typ.Label()
}

// formatStrike prints a strike without trailing zeros (6000, 102.5).
func formatStrike(strike float64) string {
	return strconv.FormatFloat(strike, 'f', -1, 64)
}
