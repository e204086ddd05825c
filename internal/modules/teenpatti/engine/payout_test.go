package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeOutcome(handA, handB Hand) *Outcome {
	union := make([]Card, 0, 6)
	union = append(union, handA[:]...)
	union = append(union, handB[:]...)
	return &Outcome{
		HandA:  handA,
		HandB:  handB,
		EvalA:  Evaluate3(handA),
		EvalB:  Evaluate3(handB),
		Bonus:  Evaluate6(union),
		Winner: CompareHands(handA, handB),
	}
}

// A pair beats B high card; the union makes no bonus hand
func outcomeAWins() *Outcome {
	return makeOutcome(
		Hand{card(King, Spades), card(King, Hearts), card(4, Clubs)},
		Hand{card(Queen, Hearts), card(9, Diamonds), card(2, Spades)},
	)
}

func TestPayoutWinnerBet(t *testing.T) {
	out := outcomeAWins()
	require.Equal(t, PlayerA, out.Winner)

	result := Payout([]Stake{{BetType: BetPlayerA, Amount: 100}}, out, 500000)

	require.Len(t, result.Stakes, 1)
	assert.Equal(t, "win", result.Stakes[0].Status)
	assert.Equal(t, 192.00, result.Stakes[0].WinAmount)
	assert.Equal(t, 1.92, result.Stakes[0].Multiplier)
	assert.Equal(t, 92.00, result.Stakes[0].Profit)
	assert.Equal(t, 192.00, result.TotalWin)
	assert.Equal(t, 100.00, result.TotalStake)
}

func TestPayoutLosingWager(t *testing.T) {
	out := outcomeAWins()

	result := Payout([]Stake{
		{BetType: BetPlayerB, Amount: 50},
		{BetType: BetPairPlusB, Amount: 30},
	}, out, 500000)

	require.Len(t, result.Stakes, 2)
	for _, stake := range result.Stakes {
		assert.Equal(t, "loss", stake.Status)
		assert.Equal(t, 0.0, stake.WinAmount)
		assert.Equal(t, 0.0, stake.Multiplier)
	}
	assert.Equal(t, -50.0, result.Stakes[0].Profit)
	assert.Equal(t, -30.0, result.Stakes[1].Profit)
	assert.Equal(t, 0.0, result.TotalWin)
	assert.Equal(t, 80.0, result.TotalStake)
}

func TestPayoutPairPlusMultipliers(t *testing.T) {
	// A holds a straight flush, pair plus on A pays 31x
	out := makeOutcome(
		Hand{card(4, Hearts), card(5, Hearts), card(6, Hearts)},
		Hand{card(Queen, Spades), card(9, Diamonds), card(2, Clubs)},
	)
	require.Equal(t, StraightFlush, out.EvalA.Type)

	result := Payout([]Stake{{BetType: BetPairPlusA, Amount: 50}}, out, 500000)

	require.Len(t, result.Stakes, 1)
	assert.Equal(t, "win", result.Stakes[0].Status)
	assert.Equal(t, 31.0, result.Stakes[0].Multiplier)
	assert.Equal(t, 1550.0, result.Stakes[0].WinAmount)
}

func TestPayoutBonusRoyalFlush(t *testing.T) {
	out := makeOutcome(
		Hand{card(10, Spades), card(Jack, Spades), card(Queen, Spades)},
		Hand{card(King, Spades), card(Ace, Spades), card(2, Hearts)},
	)
	require.Equal(t, RoyalFlush, out.Bonus.Type)

	result := Payout([]Stake{{BetType: BetBonus, Amount: 10}}, out, 500000)

	require.Len(t, result.Stakes, 1)
	assert.Equal(t, 1001.0, result.Stakes[0].Multiplier)
	assert.Equal(t, 10010.0, result.Stakes[0].WinAmount)
}

func TestPayoutPerStakeCap(t *testing.T) {
	out := makeOutcome(
		Hand{card(10, Spades), card(Jack, Spades), card(Queen, Spades)},
		Hand{card(King, Spades), card(Ace, Spades), card(2, Hearts)},
	)
	require.Equal(t, RoyalFlush, out.Bonus.Type)

	result := Payout([]Stake{{BetType: BetBonus, Amount: 1000}}, out, 5000)

	// uncapped this pays 1001000
	require.Len(t, result.Stakes, 1)
	assert.Equal(t, 5000.0, result.Stakes[0].WinAmount)
	assert.Equal(t, 4000.0, result.Stakes[0].Profit)
	assert.Equal(t, 5000.0, result.TotalWin)
}

func TestPayoutAggregateCap(t *testing.T) {
	out := outcomeAWins()
	require.Equal(t, Pair, out.EvalA.Type)

	// two winning stakes each below the cap, together above it
	result := Payout([]Stake{
		{BetType: BetPlayerA, Amount: 100},   // pays 192
		{BetType: BetPairPlusA, Amount: 100}, // pair pays 2x = 200
	}, out, 300)

	assert.Equal(t, 192.0, result.Stakes[0].WinAmount)
	assert.Equal(t, 200.0, result.Stakes[1].WinAmount)
	assert.Equal(t, 300.0, result.TotalWin)
}

func TestPayoutIdempotent(t *testing.T) {
	out := outcomeAWins()
	stakes := []Stake{
		{BetType: BetPlayerA, Amount: 100},
		{BetType: BetBonus, Amount: 25},
	}

	first := Payout(stakes, out, 500000)
	second := Payout(stakes, out, 500000)
	assert.Equal(t, first, second)
}
