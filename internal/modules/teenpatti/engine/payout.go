package engine

import "math"

// Bet types (the "chips" of the wire protocol)
const (
	BetPlayerA   = 1 // Player A wins the round
	BetPlayerB   = 2 // Player B wins the round
	BetPairPlusA = 3 // Player A's hand beats high card
	BetPairPlusB = 4 // Player B's hand beats high card
	BetBonus     = 5 // bonus 6-card hand reaches a qualifying type
)

// MaxStakesPerWager caps the distinct bet-type entries in one wager
const MaxStakesPerWager = 4

// winMultiplier pays on bet types 1 and 2
const winMultiplier = 1.92

// pairPlusMultipliers pays on the side bets (types 3 and 4)
var pairPlusMultipliers = map[HandType]float64{
	Pair:           2,
	Flush:          4,
	Straight:       7,
	StraightFlush:  31,
	ThreeOfAKind:   41,
	ThreeOfKindAce: 51,
}

// bonusMultipliers pays on the 6-card bonus bet (type 5)
var bonusMultipliers = map[HandType]float64{
	ThreeOfAKind:  8,
	Straight:      11,
	Flush:         16,
	FullHouse:     21,
	FourOfAKind:   101,
	StraightFlush: 201,
	RoyalFlush:    1001,
}

// Stake is a single (bet type, amount) entry of a wager
type Stake struct {
	BetType int     `json:"chip"`
	Amount  float64 `json:"betAmount"`
}

// StakeResult is the settled outcome of one stake
type StakeResult struct {
	BetType    int     `json:"chip"`
	Stake      float64 `json:"betAmount"`
	WinAmount  float64 `json:"winAmount"`
	Multiplier float64 `json:"mult"`
	Status     string  `json:"status"` // win | loss
	Profit     float64 `json:"profit"`
}

// PayoutResult is the settled outcome of a whole wager
type PayoutResult struct {
	Stakes     []StakeResult
	TotalWin   float64
	TotalStake float64
}

// stakeMultiplier resolves the multiplier for one stake against the outcome;
// zero means the stake lost.
func stakeMultiplier(betType int, out *Outcome) float64 {
	switch betType {
	case BetPlayerA:
		if out.Winner == PlayerA {
			return winMultiplier
		}
	case BetPlayerB:
		if out.Winner == PlayerB {
			return winMultiplier
		}
	case BetPairPlusA:
		return pairPlusMultipliers[out.EvalA.Type]
	case BetPairPlusB:
		return pairPlusMultipliers[out.EvalB.Type]
	case BetBonus:
		return bonusMultipliers[out.Bonus.Type]
	}
	return 0
}

// Payout settles every stake of a wager independently against the outcome.
// Winning stakes pay stake × multiplier capped at maxCashout; the aggregate
// win is capped again at maxCashout. Pure and idempotent: the same inputs
// always produce the identical result.
func Payout(stakes []Stake, out *Outcome, maxCashout float64) PayoutResult {
	result := PayoutResult{Stakes: make([]StakeResult, 0, len(stakes))}

	for _, stake := range stakes {
		result.TotalStake = round2(result.TotalStake + stake.Amount)

		mult := stakeMultiplier(stake.BetType, out)
		if mult > 0 {
			winAmount := round2(math.Min(stake.Amount*mult, maxCashout))
			result.Stakes = append(result.Stakes, StakeResult{
				BetType:    stake.BetType,
				Stake:      stake.Amount,
				WinAmount:  winAmount,
				Multiplier: mult,
				Status:     "win",
				Profit:     round2(winAmount - stake.Amount),
			})
			result.TotalWin = round2(result.TotalWin + winAmount)
		} else {
			result.Stakes = append(result.Stakes, StakeResult{
				BetType: stake.BetType,
				Stake:   stake.Amount,
				Status:  "loss",
				Profit:  -stake.Amount,
			})
		}
	}

	if result.TotalWin > maxCashout {
		result.TotalWin = maxCashout
	}
	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
