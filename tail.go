package nbs

import (
	"fmt"
	"math"
	"strings"
)

// Tail selects the direction of the hypothesis test.
type Tail string

const (
	// TailBoth is the two-sided test: |t| is compared to the threshold.
	TailBoth Tail = "both"
	// TailLeft tests X < Y: -t is compared to the threshold.
	TailLeft Tail = "left"
	// TailRight tests X > Y: t is compared unmodified.
	TailRight Tail = "right"
)

// ParseTail converts a case-insensitive name into a Tail.
func ParseTail(s string) (Tail, error) {
	t := Tail(strings.ToLower(strings.TrimSpace(s)))
	if err := t.validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Tail) validate() error {
	switch t {
	case TailBoth, TailLeft, TailRight:
		return nil
	}
	return fmt.Errorf("nbs: tail must be %q, %q or %q, got %q: %w",
		TailBoth, TailLeft, TailRight, string(t), ErrInvalidArgument)
}

// transform maps a raw statistic onto the scale compared against the
// threshold. t must already be validated.
func (t Tail) transform(stat float64) float64 {
	switch t {
	case TailLeft:
		return -stat
	case TailRight:
		return stat
	default:
		return math.Abs(stat)
	}
}
