package engine

import (
	"testing"

	"github.com/optforge/legbook/internal/models"
)

func TestBuild_RoundTripsThroughClassify(t *testing.T) {
	// Every named type must classify back to itself when built in long form.
	// The broken wing butterfly needs unequal widths; a single-width call
	// degenerates to a plain butterfly by design.
	types := []models.PositionType{
		models.TypeSingle,
		models.TypeVertical,
		models.TypeButterfly,
		models.TypeCondor,
		models.TypeStraddle,
		models.TypeStrangle,
		models.TypeIronFly,
		models.TypeIronCondor,
		models.TypeCalendar,
		models.TypeDiagonal,
	}

	for _, typ := range types {
		t.Run(string(typ), func(t *testing.T) {
			legs := Build(BuildParams{
				Type:       typ,
				Strike:     100,
				Width:      10,
				Expiration: testExp,
				Right:      models.RightCall,
				Direction:  models.DirectionLong,
			})
			if len(legs) == 0 {
				t.Fatalf("Build(%s) returned no legs", typ)
			}
			got := Classify(legs)
			if got.Type != typ {
				t.Fatalf("Classify(Build(%s)) = %s, legs %v", typ, got.Type, legs)
			}
			if got.Direction != models.DirectionLong {
				t.Fatalf("Classify(Build(%s)).Direction = %s, want long", typ, got.Direction)
			}
		})
	}

	bwb := Build(BuildParams{
		Type:       models.TypeBrokenWingButterfly,
		Strike:     100,
		LeftWidth:  10,
		RightWidth: 15,
		Expiration: testExp,
		Right:      models.RightPut,
		Direction:  models.DirectionLong,
	})
	got := Classify(bwb)
	if got.Type != models.TypeBrokenWingButterfly || got.IsSymmetric {
		t.Fatalf("Classify(Build(bwb)) = %+v, legs %v", got, bwb)
	}
}

func TestBuild_SingleWidthBWBDegeneratesToButterfly(t *testing.T) {
	legs := Build(BuildParams{
		Type:       models.TypeBrokenWingButterfly,
		Strike:     100,
		Width:      10,
		Expiration: testExp,
		Right:      models.RightCall,
		Direction:  models.DirectionLong,
	})
	if got := Classify(legs); got.Type != models.TypeButterfly {
		t.Fatalf("equal-width bwb classified as %s, want butterfly", got.Type)
	}
}

func TestBuild_DefaultDirections(t *testing.T) {
	tests := []struct {
		typ  models.PositionType
		want models.Direction
	}{
		{models.TypeSingle, models.DirectionLong},
		{models.TypeVertical, models.DirectionLong},
		{models.TypeButterfly, models.DirectionLong},
		{models.TypeCondor, models.DirectionLong},
		{models.TypeCalendar, models.DirectionLong},
		{models.TypeDiagonal, models.DirectionLong},
		{models.TypeStraddle, models.DirectionShort},
		{models.TypeStrangle, models.DirectionShort},
		{models.TypeIronFly, models.DirectionShort},
		{models.TypeIronCondor, models.DirectionShort},
	}

	for _, tt := range tests {
		legs := Build(BuildParams{
			Type:       tt.typ,
			Strike:     100,
			Width:      5,
			Expiration: testExp,
			Right:      models.RightCall,
		})
		got := Classify(legs)
		if got.Direction != tt.want {
			t.Fatalf("Build(%s) default direction = %s, want %s", tt.typ, got.Direction, tt.want)
		}
	}
}

func TestBuild_ShortNegatesEveryLeg(t *testing.T) {
	long := Build(BuildParams{
		Type:       models.TypeIronCondor,
		Strike:     6000,
		Width:      50,
		Expiration: testExp,
		Direction:  models.DirectionLong,
	})
	short := Build(BuildParams{
		Type:       models.TypeIronCondor,
		Strike:     6000,
		Width:      50,
		Expiration: testExp,
		Direction:  models.DirectionShort,
	})
	if len(long) != 4 || len(short) != 4 {
		t.Fatalf("expected 4 legs, got %d and %d", len(long), len(short))
	}
	for i := range long {
		if short[i].Quantity != -long[i].Quantity {
			t.Fatalf("leg %d quantity %d not negated (long %d)", i, short[i].Quantity, long[i].Quantity)
		}
		if short[i].Strike != long[i].Strike || short[i].Right != long[i].Right {
			t.Fatalf("leg %d strike/right changed between directions", i)
		}
	}
}

func TestBuild_CondorStrikeLayout(t *testing.T) {
	legs := Build(BuildParams{
		Type:       models.TypeCondor,
		Strike:     100,
		Width:      10,
		Expiration: testExp,
		Right:      models.RightPut,
		Direction:  models.DirectionLong,
	})
	wantStrikes := []float64{85, 95, 105, 115}
	wantQty := []int{1, -1, -1, 1}
	for i, l := range legs {
		if l.Strike != wantStrikes[i] || l.Quantity != wantQty[i] {
			t.Fatalf("condor leg %d = %+v, want strike %.0f qty %d", i, l, wantStrikes[i], wantQty[i])
		}
		if l.Right != models.RightPut {
			t.Fatalf("condor leg %d right = %s, want put", i, l.Right)
		}
	}
}

func TestBuild_TimeSpreads(t *testing.T) {
	cal := Build(BuildParams{
		Type:       models.TypeCalendar,
		Strike:     6000,
		Expiration: testExp,
		Right:      models.RightCall,
		Direction:  models.DirectionLong,
	})
	if len(cal) != 2 {
		t.Fatalf("calendar legs = %d, want 2", len(cal))
	}
	if cal[0].Quantity != -1 || cal[1].Quantity != 1 {
		t.Fatalf("calendar ratios = %d/%d, want -1/+1", cal[0].Quantity, cal[1].Quantity)
	}
	if !cal[1].Expiration.After(cal[0].Expiration) {
		t.Fatalf("calendar far expiration %v not after near %v", cal[1].Expiration, cal[0].Expiration)
	}
	if cal[0].Strike != cal[1].Strike {
		t.Fatalf("calendar strikes differ: %v", cal)
	}

	diag := Build(BuildParams{
		Type:          models.TypeDiagonal,
		Strike:        6000,
		Width:         50,
		Expiration:    testExp,
		FarExpiration: testExpFar,
		Right:         models.RightPut,
		Direction:     models.DirectionLong,
	})
	if diag[1].Strike != 6050 || !diag[1].Expiration.Equal(testExpFar) {
		t.Fatalf("diagonal far leg = %+v, want strike 6050 at %v", diag[1], testExpFar)
	}
}

func TestBuild_CustomHasNoCanonicalForm(t *testing.T) {
	if legs := Build(BuildParams{Type: models.TypeCustom, Strike: 100, Expiration: testExp}); legs != nil {
		t.Fatalf("Build(custom) = %v, want nil", legs)
	}
	if legs := Build(BuildParams{Type: "garbage", Strike: 100, Expiration: testExp}); legs != nil {
		t.Fatalf("Build(unknown type) = %v, want nil", legs)
	}
}
