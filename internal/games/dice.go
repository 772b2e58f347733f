package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tashanwin/club-settle-go/internal/engine"
)

// diceHouseFactor is 0.95 expressed in hundredths. Multipliers divide it by
// the win probability in exact decimal arithmetic; a float quotient can land
// a hair under the true value and floor away a winning cent.
const diceHouseFactorHundredths = 95

// DiceSumGame rolls one to three d6 and pays on an exact target sum. The
// multiplier is derived algebraically from the sum's probability with a
// fixed house factor, so a rarer sum pays proportionally more.
type DiceSumGame struct{}

const (
	diceSumMinDice = 1
	diceSumMaxDice = 3
)

func (g *DiceSumGame) Spec() Spec {
	return Spec{ID: DiceSum, Name: "Dice Sum", OutcomeLabel: "sum"}
}

func (g *DiceSumGame) ValidateSelection(sel Selection) error {
	n := sel.DiceCount
	if n < diceSumMinDice || n > diceSumMaxDice {
		return fmt.Errorf("%w: dice count must be %d..%d, got %d", ErrUnknownSelection, diceSumMinDice, diceSumMaxDice, n)
	}
	if sel.Target < n || sel.Target > 6*n {
		return fmt.Errorf("%w: target %d unreachable with %d dice", ErrUnknownSelection, sel.Target, n)
	}
	return nil
}

func (g *DiceSumGame) Generate(src engine.Source, sel Selection) (Outcome, error) {
	n := sel.DiceCount
	if n < diceSumMinDice || n > diceSumMaxDice {
		return Outcome{}, fmt.Errorf("%w: dice count %d", ErrInvalidParameters, n)
	}
	dice := make([]int, n)
	for i := range dice {
		dice[i] = src.Intn(6) + 1
	}
	return Outcome{Kind: DiceSum, Dice: dice}, nil
}

func (g *DiceSumGame) Resolve(out Outcome, sel Selection) (Resolution, error) {
	if err := g.ValidateSelection(sel); err != nil {
		return Resolution{}, err
	}
	if len(out.Dice) != sel.DiceCount {
		return Resolution{}, fmt.Errorf("%w: outcome has %d dice, selection expects %d", ErrUnknownSelection, len(out.Dice), sel.DiceCount)
	}

	sum := 0
	for _, d := range out.Dice {
		sum += d
	}
	if sum != sel.Target {
		return Resolution{Won: false, Multiplier: 0}, nil
	}

	mult := diceSumMultiplier(sel.DiceCount, sel.Target)
	return Resolution{Won: wonFor(mult), Multiplier: mult}, nil
}

// diceSumMultiplier computes houseFactor / P(sum == target with n dice),
// floored to 2 decimals: (95/100) * (6^n / ways) as one exact quotient.
func diceSumMultiplier(n, target int) float64 {
	ways := int64(sumWays(n, target))
	total := int64(1)
	for i := 0; i < n; i++ {
		total *= 6
	}
	m := decimal.NewFromInt(diceHouseFactorHundredths * total).
		Div(decimal.NewFromInt(100 * ways))
	return m.Truncate(2).InexactFloat64()
}

// sumWays counts the orderings of n d6 faces that total target.
func sumWays(n, target int) int {
	counts := map[int]int{0: 1}
	for die := 0; die < n; die++ {
		next := make(map[int]int)
		for sum, ways := range counts {
			for face := 1; face <= 6; face++ {
				next[sum+face] += ways
			}
		}
		counts = next
	}
	return counts[target]
}

// DiceOverUnderGame rolls a single uniform value in 1..100. The player picks
// a side and a threshold t in 2..98: Over wins when roll > t, Under when
// roll < t. The multiplier is computed algebraically from the threshold,
// never from a lookup table.
type DiceOverUnderGame struct{}

const (
	overUnderMinThreshold = 2
	overUnderMaxThreshold = 98
)

func (g *DiceOverUnderGame) Spec() Spec {
	return Spec{ID: DiceOverUnder, Name: "Dice Over/Under", OutcomeLabel: "roll"}
}

func (g *DiceOverUnderGame) ValidateSelection(sel Selection) error {
	if sel.Side != "over" && sel.Side != "under" {
		return fmt.Errorf("%w: over-under side must be over or under, got %q", ErrUnknownSelection, sel.Side)
	}
	// Thresholds at the domain boundary would give one side a zero win
	// chance; rejected outright rather than risking a division by zero.
	if sel.Target < overUnderMinThreshold || sel.Target > overUnderMaxThreshold {
		return fmt.Errorf("%w: threshold must be %d..%d, got %d", ErrUnknownSelection, overUnderMinThreshold, overUnderMaxThreshold, sel.Target)
	}
	return nil
}

func (g *DiceOverUnderGame) Generate(src engine.Source, sel Selection) (Outcome, error) {
	return Outcome{Kind: DiceOverUnder, Roll: src.Intn(100) + 1}, nil
}

func (g *DiceOverUnderGame) Resolve(out Outcome, sel Selection) (Resolution, error) {
	if err := g.ValidateSelection(sel); err != nil {
		return Resolution{}, err
	}
	if out.Roll < 1 || out.Roll > 100 {
		return Resolution{}, fmt.Errorf("%w: roll %d outside 1..100", ErrUnknownSelection, out.Roll)
	}

	var hit bool
	var wins int
	switch sel.Side {
	case "over":
		hit = out.Roll > sel.Target
		wins = 100 - sel.Target
	case "under":
		hit = out.Roll < sel.Target
		wins = sel.Target - 1
	}

	if !hit {
		return Resolution{Won: false, Multiplier: 0}, nil
	}
	mult := overUnderMultiplier(wins)
	return Resolution{Won: wonFor(mult), Multiplier: mult}, nil
}

// overUnderMultiplier is houseFactor divided by the win chance wins/100,
// which reduces to 95/wins, floored to 2 decimals exactly.
func overUnderMultiplier(wins int) float64 {
	m := decimal.NewFromInt(diceHouseFactorHundredths).
		Div(decimal.NewFromInt(int64(wins)))
	return m.Truncate(2).InexactFloat64()
}

// overUnderWinChance is the win probability for a side/threshold pair.
func overUnderWinChance(side string, threshold int) float64 {
	switch side {
	case "over":
		return float64(100-threshold) / 100
	case "under":
		return float64(threshold-1) / 100
	default:
		return 0
	}
}
