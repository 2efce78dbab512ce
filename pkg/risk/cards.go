package risk

import (
	"fmt"
	"sort"
)

// CreateDeck builds and shuffles a deck for the given territory list. When the
// config is territory-linked, card i is tagged with territoryIDs[i]; kinds
// cycle round-robin by position either way. WildCount wild cards (kind "W",
// no territory) are appended before the shuffle. Ids are sequential and
// unique: card_0.. for regular cards, card_w0.. for wilds.
func CreateDeck(cfg DeckConfig, territoryIDs []TerritoryID, rng *RNG) (DeckState, map[CardID]Card) {
	cardsByID := make(map[CardID]Card, len(territoryIDs)+cfg.WildCount)
	ids := make([]CardID, 0, len(territoryIDs)+cfg.WildCount)

	for i, tid := range territoryIDs {
		card := Card{
			ID:   CardID(fmt.Sprintf("card_%d", i)),
			Kind: cfg.Kinds[i%len(cfg.Kinds)],
		}
		if cfg.TerritoryLinked {
			card.Territory = tid
		}
		cardsByID[card.ID] = card
		ids = append(ids, card.ID)
	}
	for i := 0; i < cfg.WildCount; i++ {
		card := Card{ID: CardID(fmt.Sprintf("card_w%d", i)), Kind: WildKind}
		cardsByID[card.ID] = card
		ids = append(ids, card.ID)
	}

	return DeckState{Draw: Shuffle(rng, ids)}, cardsByID
}

// DrawCard pops the head of the draw pile, reshuffling the discard pile into
// the draw pile first if the draw pile is empty. Returns ok=false when both
// piles are empty, which is a legitimate exhausted-deck outcome, not an
// error. The input deck is not mutated.
func DrawCard(deck DeckState, rng *RNG) (CardID, DeckState, bool) {
	draw := deck.Draw
	discard := deck.Discard

	if len(draw) == 0 {
		if len(discard) == 0 {
			return "", deck, false
		}
		draw = Shuffle(rng, discard)
		discard = nil
	}

	card := draw[0]
	rest := make([]CardID, len(draw)-1)
	copy(rest, draw[1:])

	out := DeckState{Draw: rest}
	if discard != nil {
		out.Discard = make([]CardID, len(discard))
		copy(out.Discard, discard)
	}
	return card, out, true
}

// IsValidTradeSet reports whether exactly three cards form a redeemable set
// under the config: three of a kind, or one of each kind, with wilds filling
// any role when WildActsAsAny.
func IsValidTradeSet(cards []Card, cfg CardsConfig) bool {
	if len(cards) != 3 {
		return false
	}

	var kinds []string
	wilds := 0
	for _, c := range cards {
		if c.Kind == WildKind {
			wilds++
		} else {
			kinds = append(kinds, c.Kind)
		}
	}
	if wilds > 0 && !cfg.WildActsAsAny {
		return false
	}

	if cfg.AllowThreeOfAKind {
		same := true
		for i := 1; i < len(kinds); i++ {
			if kinds[i] != kinds[0] {
				same = false
			}
		}
		if same {
			return true
		}
	}

	if cfg.AllowOneOfEach {
		distinct := make(map[string]bool, len(kinds))
		for _, k := range kinds {
			distinct[k] = true
		}
		// Wilds fill out the remaining distinct slots, so the non-wild kinds
		// just need to be pairwise distinct.
		if len(distinct) == len(kinds) {
			return true
		}
	}

	return false
}

// ValidTradeSets enumerates every valid 3-card combination in a hand, as
// sorted id triples with no duplicates. Hands stay small (forced trade caps
// them), so the cubic scan is fine.
func ValidTradeSets(hand []CardID, cardsByID map[CardID]Card, cfg CardsConfig) [][]CardID {
	var sets [][]CardID
	for i := 0; i < len(hand); i++ {
		for j := i + 1; j < len(hand); j++ {
			for k := j + 1; k < len(hand); k++ {
				cards := []Card{cardsByID[hand[i]], cardsByID[hand[j]], cardsByID[hand[k]]}
				if IsValidTradeSet(cards, cfg) {
					set := []CardID{hand[i], hand[j], hand[k]}
					sort.Slice(set, func(a, b int) bool { return set[a] < set[b] })
					sets = append(sets, set)
				}
			}
		}
	}
	return sets
}

// TradeValue returns the army value of the nth trade (0-indexed) under the
// ladder and overflow policy.
func TradeValue(n int, cfg CardsConfig) int {
	last := len(cfg.TradeValues) - 1
	if n <= last {
		return cfg.TradeValues[n]
	}
	if cfg.OverflowPolicy == OverflowContinueByFive {
		return cfg.TradeValues[last] + 5*(n-last)
	}
	return cfg.TradeValues[last]
}
