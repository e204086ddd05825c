package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareHandTypeOrdering(t *testing.T) {
	// full house does not exist for 3 cards; the 3-card ladder is
	// high_card < pair < flush < straight < straight_flush < trips < trip aces
	pair := Hand{card(2, Spades), card(2, Hearts), card(7, Clubs)}
	flush := Hand{card(3, Diamonds), card(8, Diamonds), card(Jack, Diamonds)}
	straight := Hand{card(4, Spades), card(5, Hearts), card(6, Clubs)}
	straightFlush := Hand{card(4, Hearts), card(5, Hearts), card(6, Hearts)}
	trips := Hand{card(9, Spades), card(9, Hearts), card(9, Clubs)}
	tripAces := Hand{card(Ace, Spades), card(Ace, Hearts), card(Ace, Clubs)}

	assert.Equal(t, PlayerB, CompareHands(pair, flush))
	assert.Equal(t, PlayerB, CompareHands(flush, straight))
	assert.Equal(t, PlayerB, CompareHands(straight, straightFlush))
	assert.Equal(t, PlayerB, CompareHands(straightFlush, trips))
	assert.Equal(t, PlayerB, CompareHands(trips, tripAces))
	assert.Equal(t, PlayerA, CompareHands(tripAces, trips))
}

func TestCompareByRanks(t *testing.T) {
	// same type, decided at the first differing descending-rank position
	a := Hand{card(Ace, Spades), card(9, Hearts), card(5, Clubs)}
	b := Hand{card(Ace, Hearts), card(9, Clubs), card(4, Spades)}
	assert.Equal(t, PlayerA, CompareHands(a, b))

	higher := Hand{card(King, Spades), card(8, Hearts), card(2, Clubs)}
	lower := Hand{card(Queen, Hearts), card(Jack, Clubs), card(9, Spades)}
	assert.Equal(t, PlayerA, CompareHands(higher, lower))
}

// identical ranks fall through to suits, scanned from the lowest-ranked
// position of the descending-sorted hand upward
func TestCompareSuitTieBreakLowCardFirst(t *testing.T) {
	// lowest card suits differ: B's club loses to A's diamond regardless of
	// the higher positions, where B holds the stronger spade
	a := Hand{card(King, Hearts), card(9, Hearts), card(5, Diamonds)}
	b := Hand{card(King, Spades), card(9, Diamonds), card(5, Clubs)}
	assert.Equal(t, PlayerA, CompareHands(a, b))

	// lowest suits equal: the middle position decides next
	c := Hand{card(King, Clubs), card(9, Spades), card(5, Hearts)}
	d := Hand{card(King, Spades), card(9, Diamonds), card(5, Hearts)}
	assert.Equal(t, PlayerA, CompareHands(c, d))
}

func TestCompareNoWinner(t *testing.T) {
	a := Hand{card(King, Spades), card(9, Hearts), card(5, Diamonds)}
	b := Hand{card(King, Spades), card(9, Hearts), card(5, Diamonds)}
	assert.Equal(t, NoWinner, CompareHands(a, b))
}
