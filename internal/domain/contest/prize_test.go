package contest

import (
	"errors"
	"testing"
)

func TestDistributePrizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		policy       PrizePolicy
		total        int64
		participants int
		want         []int64
	}{
		{
			name:         "winner takes all",
			policy:       WinnerTakesAll(),
			total:        1000,
			participants: 3,
			want:         []int64{1000, 0, 0},
		},
		{
			name:         "top3 split floors each share",
			policy:       Top3Split(),
			total:        1001,
			participants: 5,
			want:         []int64{500, 300, 200, 0, 0},
		},
		{
			name:         "top3 split with fewer participants",
			policy:       Top3Split(),
			total:        1000,
			participants: 2,
			want:         []int64{500, 300},
		},
		{
			name:         "fixed amounts capped by total",
			policy:       PrizePolicy{Kind: PrizeFixedAmountSplit, Amounts: []int64{700, 500, 100}},
			total:        1000,
			participants: 4,
			want:         []int64{700, 300, 0, 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := DistributePrizes(tc.policy, tc.total, tc.participants)
			if err != nil {
				t.Fatalf("DistributePrizes error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("unexpected length: got=%v want=%v", got, tc.want)
			}
			var sum int64
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("rank %d: got=%d want=%d", i+1, got[i], tc.want[i])
				}
				sum += got[i]
			}
			if sum > tc.total {
				t.Fatalf("distributed %d exceeds total %d", sum, tc.total)
			}
		})
	}
}

func TestDistributePrizes_ConservationAcrossSizes(t *testing.T) {
	t.Parallel()

	policies := []PrizePolicy{
		WinnerTakesAll(),
		Top3Split(),
		{Kind: PrizePercentageSplit, Shares: []string{"0.3333", "0.3333", "0.3334"}},
		{Kind: PrizeFixedAmountSplit, Amounts: []int64{60, 30, 9}},
	}
	for _, policy := range policies {
		for total := int64(0); total <= 101; total += 7 {
			for n := 1; n <= 6; n++ {
				got, err := DistributePrizes(policy, total, n)
				if err != nil {
					t.Fatalf("policy=%s total=%d n=%d: %v", policy.Kind, total, n, err)
				}
				var sum int64
				for _, amount := range got {
					if amount < 0 {
						t.Fatalf("negative prize %d", amount)
					}
					sum += amount
				}
				if sum > total {
					t.Fatalf("policy=%s total=%d n=%d distributed %d", policy.Kind, total, n, sum)
				}
			}
		}
	}
}

func TestPrizePolicyValidate(t *testing.T) {
	t.Parallel()

	if err := Top3Split().Validate(100); err != nil {
		t.Fatalf("top3 should be valid: %v", err)
	}

	invalid := []PrizePolicy{
		{Kind: PrizePercentageSplit, Shares: []string{"0.6", "0.6"}},
		{Kind: PrizePercentageSplit, Shares: []string{"abc"}},
		{Kind: PrizePercentageSplit},
		{Kind: PrizeFixedAmountSplit, Amounts: []int64{80, 30}},
		{Kind: "lottery"},
	}
	for _, policy := range invalid {
		if err := policy.Validate(100); !errors.Is(err, ErrInvalidPrizePolicy) {
			t.Fatalf("expected ErrInvalidPrizePolicy for %+v, got %v", policy, err)
		}
	}
}
