package models

import (
	"testing"
	"time"
)

func TestOptionRight_ValidAndLetter(t *testing.T) {
	if !RightCall.Valid() || !RightPut.Valid() {
		t.Fatal("call and put must be valid rights")
	}
	if OptionRight("").Valid() || OptionRight("warrant").Valid() {
		t.Fatal("placeholder rights must be invalid")
	}
	if RightCall.Letter() != "C" || RightPut.Letter() != "P" {
		t.Fatalf("Letter() = %s/%s, want C/P", RightCall.Letter(), RightPut.Letter())
	}
	if OptionRight("").Letter() != "?" {
		t.Fatalf("placeholder Letter() = %s, want ?", OptionRight("").Letter())
	}
	if RightCall.Opposite() != RightPut || RightPut.Opposite() != RightCall {
		t.Fatal("Opposite() must swap call and put")
	}
}

func TestLeg_Validate(t *testing.T) {
	exp := time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)
	valid := Leg{Strike: 100, Expiration: exp, Right: RightCall, Quantity: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid leg rejected: %v", err)
	}

	tests := []struct {
		name string
		leg  Leg
	}{
		{"zero strike", Leg{Expiration: exp, Right: RightCall, Quantity: 1}},
		{"negative strike", Leg{Strike: -5, Expiration: exp, Right: RightCall, Quantity: 1}},
		{"missing expiration", Leg{Strike: 100, Right: RightCall, Quantity: 1}},
		{"placeholder right", Leg{Strike: 100, Expiration: exp, Quantity: 1}},
		{"zero quantity", Leg{Strike: 100, Expiration: exp, Right: RightPut}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.leg.Validate(); err == nil {
				t.Fatalf("expected validation error for %+v", tt.leg)
			}
		})
	}
}

func TestLeg_SameExpiration_IgnoresTimeOfDay(t *testing.T) {
	a := Leg{Expiration: time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)}
	b := Leg{Expiration: time.Date(2025, 1, 17, 15, 30, 0, 0, time.UTC)}
	c := Leg{Expiration: time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC)}
	if !a.SameExpiration(b) {
		t.Fatal("same calendar day must match regardless of clock time")
	}
	if a.SameExpiration(c) {
		t.Fatal("different calendar days must not match")
	}
}
