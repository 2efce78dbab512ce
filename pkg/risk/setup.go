package risk

import "sort"

// Seat is one participant at game creation: a player id and an optional team.
type Seat struct {
	Player PlayerID `json:"player"`
	Team   TeamID   `json:"team,omitempty"`
}

// NewGame constructs the initial GameState: neutral territories are carved
// off first, the rest are dealt round-robin in seat order, starting armies
// are distributed, the deck is built and shuffled, and the first player's
// reinforcements are granted. Seat order becomes the turn order; hosts
// shuffle seats beforehand if they want a random order. All randomness comes
// from the seed, so the same inputs always build the same game.
func NewGame(seats []Seat, m *GameMap, rs *Ruleset, seed string) (*GameState, []Event, error) {
	if len(seats) < 2 {
		return nil, nil, ruleErrf(ErrStructural, "a game needs at least 2 players, got %d", len(seats))
	}
	if errs := ValidateForPublish(m); len(errs) > 0 {
		return nil, nil, ruleErrf(ErrStructural, "map is not valid: %v", errs[0])
	}
	initialArmies, ok := rs.Setup.InitialArmies[len(seats)]
	if !ok {
		return nil, nil, ruleErrf(ErrStructural, "no initial army count configured for %d players", len(seats))
	}

	players := make(map[PlayerID]PlayerState, len(seats))
	turnOrder := make([]PlayerID, 0, len(seats))
	for _, s := range seats {
		if s.Player == Neutral {
			return nil, nil, ruleErrf(ErrStructural, "%q is a reserved player id", Neutral)
		}
		if _, dup := players[s.Player]; dup {
			return nil, nil, ruleErrf(ErrStructural, "duplicate player id %q", s.Player)
		}
		players[s.Player] = PlayerState{Status: StatusAlive, TeamID: s.Team}
		turnOrder = append(turnOrder, s.Player)
	}

	allTerritories := make([]TerritoryID, 0, len(m.Territories))
	for id := range m.Territories {
		allTerritories = append(allTerritories, id)
	}
	sort.Slice(allTerritories, func(i, j int) bool { return allTerritories[i] < allTerritories[j] })

	if rs.Setup.NeutralTerritories >= len(allTerritories) {
		return nil, nil, ruleErrf(ErrStructural, "%d neutral territories leaves nothing to assign", rs.Setup.NeutralTerritories)
	}

	rng := NewRNG(seed, 0)
	shuffled := Shuffle(rng, allTerritories)

	territories := make(map[TerritoryID]TerritoryState, len(shuffled))
	owned := make(map[PlayerID][]TerritoryID, len(seats))

	for i, tid := range shuffled {
		if i < rs.Setup.NeutralTerritories {
			territories[tid] = TerritoryState{Owner: Neutral, Armies: rs.Setup.NeutralArmies}
			continue
		}
		p := turnOrder[(i-rs.Setup.NeutralTerritories)%len(turnOrder)]
		territories[tid] = TerritoryState{Owner: p, Armies: 1}
		owned[p] = append(owned[p], tid)
	}

	// Each player spreads their remaining starting armies over their own
	// territories, in turn order.
	for _, p := range turnOrder {
		remaining := initialArmies - len(owned[p])
		for i := 0; remaining > 0; i++ {
			var tid TerritoryID
			if rs.Setup.Distribution == DistributeRandom {
				tid = owned[p][rng.NextInt(0, len(owned[p])-1)]
			} else {
				tid = owned[p][i%len(owned[p])]
			}
			t := territories[tid]
			t.Armies++
			territories[tid] = t
			remaining--
		}
	}

	deck, cardsByID := CreateDeck(rs.Cards.Deck, allTerritories, rng)

	hands := make(map[PlayerID][]CardID, len(seats))
	for _, p := range turnOrder {
		hands[p] = nil
	}

	gs := &GameState{
		Players:     players,
		TurnOrder:   turnOrder,
		Territories: territories,
		Turn: TurnState{
			CurrentPlayer: turnOrder[0],
			Phase:         PhaseReinforcement,
			Round:         1,
		},
		Deck:           deck,
		CardsByID:      cardsByID,
		Hands:          hands,
		RNG:            rng.State(),
		RulesetVersion: 1,
	}

	granted := CalculateReinforcements(gs, turnOrder[0], m, rs.Teams)
	gs.Reinforcements = &granted

	events := []Event{
		{Type: EventSetupCompleted, Data: SetupCompleted{Players: turnOrder, FirstTurn: turnOrder[0]}},
		{Type: EventReinforcementsGranted, Data: ReinforcementsGranted{
			Player:  turnOrder[0],
			Total:   granted.Remaining,
			Sources: granted.Sources,
		}},
	}
	return gs, events, nil
}
