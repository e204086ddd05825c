// Package engine implements the pure game rules: dealing, 3-card and 6-card
// hand evaluation, winner comparison and payout calculation.
package engine

import "fmt"

// Suit represents a card suit
type Suit string

const (
	Spades   Suit = "S"
	Hearts   Suit = "H"
	Diamonds Suit = "D"
	Clubs    Suit = "C"
)

// Suits in deck order
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Priority returns the tie-break weight of a suit: S(4) > H(3) > D(2) > C(1)
func (s Suit) Priority() int {
	switch s {
	case Spades:
		return 4
	case Hearts:
		return 3
	case Diamonds:
		return 2
	case Clubs:
		return 1
	}
	return 0
}

// Rank is a card rank, 2..14 where 14 is the ace.
type Rank int

const (
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// String renders the rank in wire form (2..10, J, Q, K, A)
func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// Card is an immutable playing card
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// String renders the card in wire form, e.g. "A-S" or "10-H"
func (c Card) String() string {
	return c.Rank.String() + "-" + string(c.Suit)
}
