package engine

import "math/rand"

// Hand is a player's 3 cards
type Hand [3]Card

// Strings renders the hand in wire form
func (h Hand) Strings() []string {
	out := make([]string, len(h))
	for i, c := range h {
		out[i] = c.String()
	}
	return out
}

// NewDeck returns the 52 distinct cards
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, suit := range Suits {
		for rank := Rank(2); rank <= Ace; rank++ {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// DealHands shuffles a fresh deck and deals two 3-card hands without
// replacement: A takes the first three cards, B the next three.
func DealHands(rnd *rand.Rand) (Hand, Hand) {
	deck := NewDeck()
	rnd.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	var a, b Hand
	copy(a[:], deck[0:3])
	copy(b[:], deck[3:6])
	return a, b
}
