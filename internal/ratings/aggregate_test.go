package ratings

import "testing"

func TestAggregateRatingEmptyLedger(t *testing.T) {
	if got := AggregateRating(nil); got != 0 {
		t.Fatalf("expected 0 for empty ledger, got %v", got)
	}
}

func TestAggregateRatingSingleValue(t *testing.T) {
	if got := AggregateRating([]int{4}); got != 4.0 {
		t.Fatalf("expected 4.0, got %v", got)
	}
}

func TestAggregateRatingTruncatesToOneDecimal(t *testing.T) {
	cases := []struct {
		name   string
		values []int
		want   float64
	}{
		{"two thirds", []int{1, 1, 2}, 1.3},       // 1.333...
		{"repeating high", []int{5, 5, 4}, 4.6},   // 4.666... truncated, not rounded
		{"exact half", []int{4, 5}, 4.5},          // 4.5
		{"all max", []int{5, 5, 5, 5}, 5.0},       // stays within bounds
		{"mixed", []int{1, 2, 3, 4, 5}, 3.0},      // exact mean
		{"truncate down", []int{2, 2, 2, 3}, 2.2}, // 2.25 -> 2.2
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AggregateRating(tc.values); got != tc.want {
				t.Fatalf("AggregateRating(%v) = %v, want %v", tc.values, got, tc.want)
			}
		})
	}
}
