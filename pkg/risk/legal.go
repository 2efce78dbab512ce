package risk

import "sort"

// LegalActions enumerates every action the current player could legally
// submit in the current state. It never mutates state and is built on the
// same permission predicates and connectivity search as ApplyAction, so the
// two cannot disagree about legality. Hosts use it for UI affordance and to
// pre-validate submissions; placement and fortify actions are representative
// (they carry the maximum transferable count rather than every count).
func LegalActions(gs *GameState, m *GameMap, rs *Ruleset) []Action {
	if gs.Turn.Phase == PhaseSetup || gs.IsTerminal() {
		return nil
	}

	player := gs.Turn.CurrentPlayer
	switch gs.Turn.Phase {
	case PhaseReinforcement:
		return legalReinforcement(gs, player, rs)
	case PhaseAttack:
		return legalAttack(gs, player, m, rs)
	case PhaseOccupy:
		return legalOccupy(gs)
	case PhaseFortify:
		return legalFortify(gs, player, m, rs)
	}
	return nil
}

func legalReinforcement(gs *GameState, player PlayerID, rs *Ruleset) []Action {
	var actions []Action

	hand := gs.Hands[player]
	if len(hand) >= 3 {
		for _, set := range ValidTradeSets(hand, gs.CardsByID, rs.Cards) {
			actions = append(actions, Action{Type: ActionTradeCards, CardIDs: set})
		}
	}

	// A hand at the forced-trade threshold must shrink before any placement.
	if rs.Cards.ForcedTradeHandSize > 0 && len(hand) >= rs.Cards.ForcedTradeHandSize {
		return actions
	}

	remaining := 0
	if gs.Reinforcements != nil {
		remaining = gs.Reinforcements.Remaining
	}
	if remaining > 0 {
		for _, tid := range sortedTerritories(gs) {
			if CanPlace(player, gs.Territories[tid].Owner, gs.Players, rs.Teams) {
				actions = append(actions, Action{Type: ActionPlaceReinforcements, Territory: tid, Count: remaining})
			}
		}
	}
	return actions
}

func legalAttack(gs *GameState, player PlayerID, m *GameMap, rs *Ruleset) []Action {
	// No new attacks until a pending capture is occupied.
	if gs.Pending != nil {
		return nil
	}

	actions := []Action{{Type: ActionEndAttackPhase}}
	for _, from := range sortedTerritories(gs) {
		fromState := gs.Territories[from]
		if fromState.Owner != player || fromState.Armies < 2 {
			continue
		}
		maxDice := rs.Combat.MaxAttackDice
		if fromState.Armies-1 < maxDice {
			maxDice = fromState.Armies - 1
		}
		for _, to := range m.Adjacency[from] {
			toState, ok := gs.Territories[to]
			if !ok || !CanAttack(player, toState.Owner, gs.Players, rs.Teams) {
				continue
			}
			if rs.Combat.AttackerChoosesDice {
				for dice := 1; dice <= maxDice; dice++ {
					actions = append(actions, Action{Type: ActionAttack, From: from, To: to, AttackerDice: dice})
				}
			} else {
				actions = append(actions, Action{Type: ActionAttack, From: from, To: to})
			}
		}
	}
	return actions
}

func legalOccupy(gs *GameState) []Action {
	if gs.Pending == nil {
		return nil
	}
	var actions []Action
	for n := gs.Pending.MinMove; n <= gs.Pending.MaxMove; n++ {
		actions = append(actions, Action{Type: ActionOccupy, MoveArmies: n})
	}
	return actions
}

func legalFortify(gs *GameState, player PlayerID, m *GameMap, rs *Ruleset) []Action {
	actions := []Action{{Type: ActionEndTurn}}

	if rs.Fortify.MaxFortifiesPerTurn > 0 && gs.FortifiesUsedThisTurn >= rs.Fortify.MaxFortifiesPerTurn {
		return actions
	}

	for _, from := range sortedTerritories(gs) {
		fromState := gs.Territories[from]
		if fromState.Armies < 2 || !CanFortifyFrom(player, fromState.Owner, gs.Players, rs.Teams) {
			continue
		}

		var targets []TerritoryID
		if rs.Fortify.Mode == FortifyConnected {
			targets = reachableFrom(gs, m, player, from, rs.Teams)
		} else {
			targets = m.Adjacency[from]
		}

		for _, to := range targets {
			if to == from {
				continue
			}
			toState, ok := gs.Territories[to]
			if !ok || !CanFortifyTo(player, toState.Owner, gs.Players, rs.Teams) {
				continue
			}
			actions = append(actions, Action{Type: ActionFortify, From: from, To: to, Count: fromState.Armies - 1})
		}
	}
	return actions
}

// reachableFrom collects every territory reachable from start via breadth-
// first search over territories the player may traverse (their own, or a
// teammate's when the config allows). The start territory itself is excluded.
func reachableFrom(gs *GameState, m *GameMap, player PlayerID, start TerritoryID, teams *TeamsConfig) []TerritoryID {
	visited := map[TerritoryID]bool{start: true}
	queue := []TerritoryID{start}
	var out []TerritoryID

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, n := range m.Adjacency[current] {
			if visited[n] {
				continue
			}
			visited[n] = true
			t, ok := gs.Territories[n]
			if !ok || !CanTraverse(player, t.Owner, gs.Players, teams) {
				continue
			}
			out = append(out, n)
			queue = append(queue, n)
		}
	}
	return out
}

// connected reports whether to is reachable from from through territories the
// player controls. ApplyAction's connected-mode fortify check and the legal
// action generator both ride on reachableFrom.
func connected(gs *GameState, m *GameMap, player PlayerID, from, to TerritoryID, teams *TeamsConfig) bool {
	for _, t := range reachableFrom(gs, m, player, from, teams) {
		if t == to {
			return true
		}
	}
	return false
}

// sortedTerritories returns territory ids in lexicographic order so action
// enumeration is deterministic across runs.
func sortedTerritories(gs *GameState) []TerritoryID {
	ids := make([]TerritoryID, 0, len(gs.Territories))
	for id := range gs.Territories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
