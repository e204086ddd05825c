package engine

import "sort"

// Evaluate6 classifies the 6-card bonus hand (the union of both 3-card
// hands). Precedence is strict: royal flush, straight flush, four of a kind,
// full house, flush, straight, three of a kind, then no_hand_match.
// WinningCards is the minimal subset substantiating the type.
func Evaluate6(cards []Card) HandEvaluation {
	all := sortedDesc(cards)

	bySuit := make(map[Suit][]Card)
	byRank := make(map[Rank][]Card)
	for _, c := range all {
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}

	// Royal flush: one suit holding 10, J, Q, K, A.
	for _, suited := range bySuit {
		royal := make([]Card, 0, 5)
		for _, c := range suited {
			if c.Rank >= 10 {
				royal = append(royal, c)
			}
		}
		if len(royal) == 5 {
			return HandEvaluation{Type: RoyalFlush, WinningCards: royal, RemainingCards: remaining(all, royal)}
		}
	}

	// Straight flush: best 5-card run within one suit, ace-low included.
	var bestSF []Card
	for _, suited := range bySuit {
		if run := bestFiveRun(suited); run != nil {
			if bestSF == nil || run[0].Rank > bestSF[0].Rank {
				bestSF = run
			}
		}
	}
	if bestSF != nil {
		return HandEvaluation{Type: StraightFlush, WinningCards: bestSF, RemainingCards: remaining(all, bestSF)}
	}

	// Four of a kind
	for _, group := range byRank {
		if len(group) == 4 {
			return HandEvaluation{Type: FourOfAKind, WinningCards: group, RemainingCards: remaining(all, group)}
		}
	}

	// Full house: a three of a kind plus a separate pair.
	tripsRank, pairRank := Rank(0), Rank(0)
	for rank, group := range byRank {
		if len(group) >= 3 && rank > tripsRank {
			tripsRank = rank
		}
	}
	if tripsRank != 0 {
		for rank, group := range byRank {
			if rank != tripsRank && len(group) >= 2 && rank > pairRank {
				pairRank = rank
			}
		}
	}
	if tripsRank != 0 && pairRank != 0 {
		winning := append(append([]Card{}, byRank[tripsRank][:3]...), byRank[pairRank][:2]...)
		return HandEvaluation{Type: FullHouse, WinningCards: winning, RemainingCards: remaining(all, winning)}
	}

	// Flush: five cards of one suit (highest five).
	var bestFlush []Card
	for _, suited := range bySuit {
		if len(suited) >= 5 {
			candidate := suited[:5]
			if bestFlush == nil || candidate[0].Rank > bestFlush[0].Rank {
				bestFlush = candidate
			}
		}
	}
	if bestFlush != nil {
		return HandEvaluation{Type: Flush, WinningCards: bestFlush, RemainingCards: remaining(all, bestFlush)}
	}

	// Straight: best 5-card run across suits, one card per rank.
	distinct := make([]Card, 0, len(all))
	seen := make(map[Rank]bool)
	for _, c := range all {
		if !seen[c.Rank] {
			seen[c.Rank] = true
			distinct = append(distinct, c)
		}
	}
	if run := bestFiveRun(distinct); run != nil {
		return HandEvaluation{Type: Straight, WinningCards: run, RemainingCards: remaining(all, run)}
	}

	// Three of a kind
	tripsRank = 0
	for rank, group := range byRank {
		if len(group) == 3 && rank > tripsRank {
			tripsRank = rank
		}
	}
	if tripsRank != 0 {
		winning := byRank[tripsRank]
		return HandEvaluation{Type: ThreeOfAKind, WinningCards: winning, RemainingCards: remaining(all, winning)}
	}

	return HandEvaluation{Type: NoHandMatch, RemainingCards: all}
}

// bestFiveRun finds the highest run of 5 consecutive ranks among the given
// cards, counting the ace both high and low ({A,5,4,3,2}). Cards must be
// sorted descending by rank. Returns nil when no run exists.
func bestFiveRun(cards []Card) []Card {
	type rankedCard struct {
		val  int
		card Card
	}

	seq := make([]rankedCard, 0, len(cards)+1)
	seen := make(map[Rank]bool)
	for _, c := range cards {
		if !seen[c.Rank] {
			seen[c.Rank] = true
			seq = append(seq, rankedCard{val: int(c.Rank), card: c})
		}
	}
	// Ace also plays low, below the two.
	if len(seq) > 0 && seq[0].card.Rank == Ace {
		seq = append(seq, rankedCard{val: 1, card: seq[0].card})
	}
	sort.SliceStable(seq, func(i, j int) bool { return seq[i].val > seq[j].val })

	for start := 0; start+5 <= len(seq); start++ {
		ok := true
		for k := 1; k < 5; k++ {
			if seq[start+k].val != seq[start].val-k {
				ok = false
				break
			}
		}
		if ok {
			run := make([]Card, 5)
			for k := 0; k < 5; k++ {
				run[k] = seq[start+k].card
			}
			return run
		}
	}
	return nil
}

// remaining returns all cards not present in winning.
func remaining(all, winning []Card) []Card {
	out := make([]Card, 0, len(all))
	for _, c := range all {
		used := false
		for _, w := range winning {
			if c == w {
				used = true
				break
			}
		}
		if !used {
			out = append(out, c)
		}
	}
	return out
}
