package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

func TestEvaluate3Classification(t *testing.T) {
	tests := []struct {
		name string
		hand Hand
		want HandType
	}{
		{"trip aces", Hand{card(Ace, Spades), card(Ace, Hearts), card(Ace, Clubs)}, ThreeOfKindAce},
		{"trip sevens", Hand{card(7, Spades), card(7, Hearts), card(7, Clubs)}, ThreeOfAKind},
		{"straight flush", Hand{card(9, Hearts), card(10, Hearts), card(Jack, Hearts)}, StraightFlush},
		{"ace high straight", Hand{card(Queen, Spades), card(King, Hearts), card(Ace, Clubs)}, Straight},
		{"ace low wheel", Hand{card(Ace, Spades), card(2, Hearts), card(3, Clubs)}, Straight},
		{"ace low wheel flush", Hand{card(Ace, Diamonds), card(2, Diamonds), card(3, Diamonds)}, StraightFlush},
		{"flush", Hand{card(2, Clubs), card(8, Clubs), card(King, Clubs)}, Flush},
		{"pair high", Hand{card(King, Spades), card(King, Hearts), card(4, Clubs)}, Pair},
		{"pair low", Hand{card(King, Spades), card(4, Hearts), card(4, Clubs)}, Pair},
		{"high card", Hand{card(2, Spades), card(9, Hearts), card(King, Clubs)}, HighCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate3(tt.hand).Type)
		})
	}
}

func TestEvaluate3OrderInvariant(t *testing.T) {
	base := Hand{card(King, Spades), card(4, Hearts), card(4, Clubs)}
	perms := []Hand{
		{base[0], base[1], base[2]},
		{base[0], base[2], base[1]},
		{base[1], base[0], base[2]},
		{base[1], base[2], base[0]},
		{base[2], base[0], base[1]},
		{base[2], base[1], base[0]},
	}

	want := Evaluate3(perms[0])
	for _, p := range perms[1:] {
		got := Evaluate3(p)
		assert.Equal(t, want.Type, got.Type)
		// suit order among equal ranks follows input order, so compare as sets
		assert.ElementsMatch(t, want.WinningCards, got.WinningCards)
		assert.ElementsMatch(t, want.RemainingCards, got.RemainingCards)
	}
}

func TestEvaluate3PairSplitsCards(t *testing.T) {
	eval := Evaluate3(Hand{card(4, Hearts), card(King, Spades), card(4, Clubs)})

	require.Equal(t, Pair, eval.Type)
	require.Len(t, eval.WinningCards, 2)
	require.Len(t, eval.RemainingCards, 1)
	assert.Equal(t, Rank(4), eval.WinningCards[0].Rank)
	assert.Equal(t, Rank(4), eval.WinningCards[1].Rank)
	assert.Equal(t, King, eval.RemainingCards[0].Rank)
}

func TestEvaluate3HighCardSplitsCards(t *testing.T) {
	eval := Evaluate3(Hand{card(2, Spades), card(King, Clubs), card(9, Hearts)})

	require.Equal(t, HighCard, eval.Type)
	require.Len(t, eval.WinningCards, 1)
	assert.Equal(t, King, eval.WinningCards[0].Rank)
	require.Len(t, eval.RemainingCards, 2)
	assert.Equal(t, Rank(9), eval.RemainingCards[0].Rank)
	assert.Equal(t, Rank(2), eval.RemainingCards[1].Rank)
}

// every 3-card combination of the deck must classify into exactly one of the
// seven 3-card types, with all cards accounted for
func TestEvaluate3Totality(t *testing.T) {
	deck := NewDeck()
	valid := map[HandType]bool{
		HighCard: true, Pair: true, Flush: true, Straight: true,
		StraightFlush: true, ThreeOfAKind: true, ThreeOfKindAce: true,
	}

	count := 0
	for i := 0; i < len(deck); i++ {
		for j := i + 1; j < len(deck); j++ {
			for k := j + 1; k < len(deck); k++ {
				eval := Evaluate3(Hand{deck[i], deck[j], deck[k]})
				require.True(t, valid[eval.Type], "unexpected type %v", eval.Type)
				require.Equal(t, 3, len(eval.WinningCards)+len(eval.RemainingCards))
				count++
			}
		}
	}
	assert.Equal(t, 22100, count)
}
