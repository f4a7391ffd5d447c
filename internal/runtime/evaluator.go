package runtime

import (
	"github.com/aretw0/dicejourney/pkg/domain"
	"github.com/aretw0/dicejourney/pkg/ports"
)

// Upper bounds applied when rolling. Larger dice are clamped.
const (
	MaxDiceCount = 1000
	MaxDieValue  = 1_000_000
)

// EvaluateDie rolls a die and classifies the total.
//
// It is a pure function of the die and the draws taken from src:
//   - Count faces are drawn uniformly from [1, Value] (Value < 1 is treated as 1).
//     Count is clamped to [0, MaxDiceCount] and Value to MaxDieValue.
//   - Threshold mode succeeds when total >= Success and takes the
//     onSuccess/onFailure message and targets.
//   - Range mode takes the first declared range containing the total.
//     No match yields no message and no targets. IsSuccess stays nil.
func EvaluateDie(die domain.Die, src ports.Source) domain.DieResult {
	sides := min(max(die.Value, 1), MaxDieValue)
	count := min(max(die.Count, 0), MaxDiceCount)

	results := make([]int, count)
	total := 0
	for i := range results {
		results[i] = src.Intn(sides) + 1
		total += results[i]
	}

	res := domain.DieResult{
		ID:      die.ID,
		Name:    die.Name,
		Value:   die.Value,
		Count:   die.Count,
		Mode:    die.EffectiveMode(),
		Success: die.Success,
		Results: results,
		Total:   total,
	}

	if res.Mode == domain.ModeRange {
		if r, ok := MatchRange(die.Ranges, total); ok {
			res.RangeID = r.ID
			res.RangeLabel = r.Label
			res.Message = r.Message
			res.Targets = cloneIDs(r.RollIDs)
		}
		return res
	}

	threshold := 0
	if die.Success != nil {
		threshold = *die.Success
	}
	ok := total >= threshold
	res.IsSuccess = &ok

	cb := die.OnFailure
	if ok {
		cb = die.OnSuccess
	}
	if cb != nil {
		res.Message = cb.Message
		res.Targets = cloneIDs(cb.RollIDs)
	}
	return res
}

// MatchRange returns the first range, in declaration order, that contains total.
// Overlapping ranges are therefore resolved in favour of the earlier one.
func MatchRange(ranges []domain.Range, total int) (domain.Range, bool) {
	for _, r := range ranges {
		if r.Contains(total) {
			return r, true
		}
	}
	return domain.Range{}, false
}

func cloneIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	return append([]string(nil), ids...)
}
