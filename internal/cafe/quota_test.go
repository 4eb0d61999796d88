package cafe

import (
	"math"
	"testing"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{name: "Integer number", in: float64(7), want: 7},
		{name: "Fraction truncated", in: 3.9, want: 3},
		{name: "Negative number", in: float64(-2), want: 0},
		{name: "NaN", in: math.NaN(), want: 0},
		{name: "Int", in: 5, want: 5},
		{name: "Negative int", in: -5, want: 0},
		{name: "Numeric string", in: " 12 ", want: 12},
		{name: "Garbage string", in: "doze", want: 0},
		{name: "Empty string", in: "", want: 0},
		{name: "Nil", in: nil, want: 0},
		{name: "Bool", in: true, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCount(tt.in); got != tt.want {
				t.Errorf("ParseCount(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuotaClampedAndTotal(t *testing.T) {
	q := Quota{AndarCima: -3, AndarBaixo: 4}.Clamped()
	if q.AndarCima != 0 || q.AndarBaixo != 4 {
		t.Errorf("Clamped() = %+v, want {0 4}", q)
	}
	if q.Total() != 4 {
		t.Errorf("Total() = %d, want 4", q.Total())
	}
}
