package contest

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

type PrizeKind string

const (
	PrizeWinnerTakesAll   PrizeKind = "winner_takes_all"
	PrizePercentageSplit  PrizeKind = "percentage_split"
	PrizeFixedAmountSplit PrizeKind = "fixed_amount_split"
)

var ErrInvalidPrizePolicy = errors.New("invalid prize policy")

// PrizePolicy decides how TotalPrize is divided among the top ranks.
// Shares are decimal fractions ("0.5") so splits never go through binary floats.
type PrizePolicy struct {
	Kind    PrizeKind `json:"kind"`
	Shares  []string  `json:"shares,omitempty"`
	Amounts []int64   `json:"amounts,omitempty"`
}

// Top3Split is the classic 50/30/20 podium split.
func Top3Split() PrizePolicy {
	return PrizePolicy{Kind: PrizePercentageSplit, Shares: []string{"0.5", "0.3", "0.2"}}
}

func WinnerTakesAll() PrizePolicy {
	return PrizePolicy{Kind: PrizeWinnerTakesAll}
}

var decimalCtx = apd.BaseContext.WithPrecision(34)

func (p PrizePolicy) Validate(totalPrize int64) error {
	switch p.Kind {
	case PrizeWinnerTakesAll:
		return nil
	case PrizePercentageSplit:
		if len(p.Shares) == 0 {
			return fmt.Errorf("%w: percentage split needs at least one share", ErrInvalidPrizePolicy)
		}
		shares, err := p.parseShares()
		if err != nil {
			return err
		}
		sum := apd.New(0, 0)
		for _, share := range shares {
			if _, err := decimalCtx.Add(sum, sum, share); err != nil {
				return fmt.Errorf("%w: sum shares: %v", ErrInvalidPrizePolicy, err)
			}
		}
		if sum.Cmp(apd.New(1, 0)) > 0 {
			return fmt.Errorf("%w: shares add up to %s", ErrInvalidPrizePolicy, sum.String())
		}
		return nil
	case PrizeFixedAmountSplit:
		if len(p.Amounts) == 0 {
			return fmt.Errorf("%w: fixed split needs at least one amount", ErrInvalidPrizePolicy)
		}
		var sum int64
		for _, amount := range p.Amounts {
			if amount < 0 {
				return fmt.Errorf("%w: negative amount %d", ErrInvalidPrizePolicy, amount)
			}
			sum += amount
		}
		if sum > totalPrize {
			return fmt.Errorf("%w: amounts add up to %d, total prize is %d", ErrInvalidPrizePolicy, sum, totalPrize)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidPrizePolicy, p.Kind)
	}
}

func (p PrizePolicy) parseShares() ([]*apd.Decimal, error) {
	out := make([]*apd.Decimal, 0, len(p.Shares))
	for _, raw := range p.Shares {
		share, _, err := apd.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: share %q: %v", ErrInvalidPrizePolicy, raw, err)
		}
		if share.Sign() < 0 || share.Cmp(apd.New(1, 0)) > 0 {
			return nil, fmt.Errorf("%w: share %q out of range", ErrInvalidPrizePolicy, raw)
		}
		out = append(out, share)
	}
	return out, nil
}

// DistributePrizes returns the prize for each rank position 1..participants.
// Amounts are floored; whatever is left of TotalPrize stays undistributed.
func DistributePrizes(policy PrizePolicy, totalPrize int64, participants int) ([]int64, error) {
	if participants <= 0 {
		return nil, nil
	}
	if totalPrize < 0 {
		return nil, fmt.Errorf("%w: negative total prize", ErrInvalidPrizePolicy)
	}

	out := make([]int64, participants)
	switch policy.Kind {
	case PrizeWinnerTakesAll:
		out[0] = totalPrize
	case PrizePercentageSplit:
		shares, err := policy.parseShares()
		if err != nil {
			return nil, err
		}
		total := apd.New(totalPrize, 0)
		var paid int64
		for i := 0; i < len(shares) && i < participants; i++ {
			amount := new(apd.Decimal)
			if _, err := decimalCtx.Mul(amount, total, shares[i]); err != nil {
				return nil, fmt.Errorf("compute share %d: %w", i+1, err)
			}
			if _, err := decimalCtx.Floor(amount, amount); err != nil {
				return nil, fmt.Errorf("floor share %d: %w", i+1, err)
			}
			value, err := amount.Int64()
			if err != nil {
				return nil, fmt.Errorf("share %d to int64: %w", i+1, err)
			}
			value = min(value, totalPrize-paid)
			out[i] = value
			paid += value
		}
	case PrizeFixedAmountSplit:
		remaining := totalPrize
		for i := 0; i < len(policy.Amounts) && i < participants; i++ {
			amount := min(max(policy.Amounts[i], 0), remaining)
			out[i] = amount
			remaining -= amount
		}
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidPrizePolicy, policy.Kind)
	}

	return out, nil
}
