package engine

// Winner identifies the winning hand of a round
type Winner int

const (
	NoWinner Winner = 0
	PlayerA  Winner = 1
	PlayerB  Winner = 2
)

func (w Winner) String() string {
	switch w {
	case PlayerA:
		return "player_A"
	case PlayerB:
		return "player_B"
	}
	return "no_winner"
}

// CompareHands determines the round winner. Hand types are compared by rank
// order first. Ties are broken by the hands' ranks sorted descending,
// position by position, higher rank winning at the first difference. If the
// ranks are fully equal the suits decide, with priority S > H > D > C,
// scanning positions from the lowest-ranked card to the highest within the
// descending-sorted hand; the first differing suit wins. The low-to-high
// scan direction is intentional and must not be reversed.
func CompareHands(a, b Hand) Winner {
	evalA := Evaluate3(a)
	evalB := Evaluate3(b)

	if evalA.Type != evalB.Type {
		if evalA.Type > evalB.Type {
			return PlayerA
		}
		return PlayerB
	}

	sortedA := sortedDesc(a[:])
	sortedB := sortedDesc(b[:])

	for i := 0; i < 3; i++ {
		if sortedA[i].Rank != sortedB[i].Rank {
			if sortedA[i].Rank > sortedB[i].Rank {
				return PlayerA
			}
			return PlayerB
		}
	}

	for i := 2; i >= 0; i-- {
		pa, pb := sortedA[i].Suit.Priority(), sortedB[i].Suit.Priority()
		if pa != pb {
			if pa > pb {
				return PlayerA
			}
			return PlayerB
		}
	}

	return NoWinner
}
