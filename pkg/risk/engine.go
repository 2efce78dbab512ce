package risk

// ApplyAction validates one action against the current state and, if legal,
// returns the successor state plus the ordered events describing what
// happened. The input state is never mutated: on success the returned state
// is a structurally new value with StateVersion+1, on failure the returned
// error is a *RuleError and the caller's state is untouched. This is the only
// way a GameState advances after setup.
func ApplyAction(gs *GameState, player PlayerID, a Action, m *GameMap, rs *Ruleset) (*GameState, []Event, error) {
	if gs.IsTerminal() {
		return nil, nil, ruleErrf(ErrPhase, "game is over")
	}

	switch a.Type {
	case ActionPlaceReinforcements:
		return applyPlace(gs, player, a, rs)
	case ActionTradeCards:
		return applyTrade(gs, player, a, rs)
	case ActionAttack:
		return applyAttack(gs, player, a, m, rs)
	case ActionOccupy:
		return applyOccupy(gs, player, a, rs)
	case ActionEndAttackPhase:
		return applyEndAttackPhase(gs, player)
	case ActionFortify:
		return applyFortify(gs, player, a, m, rs)
	case ActionEndTurn:
		return applyEndTurn(gs, player, m, rs)
	default:
		return nil, nil, ruleErrf(ErrPhase, "unknown action type %q", a.Type)
	}
}

func requireTurn(gs *GameState, player PlayerID) error {
	if gs.Turn.CurrentPlayer != player {
		return ruleErrf(ErrTurn, "it is %s's turn, not %s's", gs.Turn.CurrentPlayer, player)
	}
	return nil
}

func requirePhase(gs *GameState, want Phase, action ActionType) error {
	if gs.Turn.Phase != want {
		return ruleErrf(ErrPhase, "%s is not valid during the %s phase", action, gs.Turn.Phase)
	}
	return nil
}

func applyPlace(gs *GameState, player PlayerID, a Action, rs *Ruleset) (*GameState, []Event, error) {
	if err := requirePhase(gs, PhaseReinforcement, a.Type); err != nil {
		return nil, nil, err
	}
	if err := requireTurn(gs, player); err != nil {
		return nil, nil, err
	}
	t, ok := gs.Territories[a.Territory]
	if !ok {
		return nil, nil, ruleErrf(ErrStructural, "territory %q does not exist", a.Territory)
	}
	if !CanPlace(player, t.Owner, gs.Players, rs.Teams) {
		return nil, nil, ruleErrf(ErrOwnership, "%s cannot place on %s (owned by %s)", player, a.Territory, t.Owner)
	}
	if a.Count < 1 {
		return nil, nil, ruleErrf(ErrQuantity, "placement count must be at least 1, got %d", a.Count)
	}
	if gs.Reinforcements == nil || a.Count > gs.Reinforcements.Remaining {
		remaining := 0
		if gs.Reinforcements != nil {
			remaining = gs.Reinforcements.Remaining
		}
		return nil, nil, ruleErrf(ErrQuantity, "placement of %d exceeds %d remaining reinforcements", a.Count, remaining)
	}
	if len(gs.Hands[player]) >= rs.Cards.ForcedTradeHandSize && rs.Cards.ForcedTradeHandSize > 0 {
		return nil, nil, ruleErrf(ErrComposition, "hand has %d cards, must trade before placing", len(gs.Hands[player]))
	}

	next := gs.Clone()
	tt := next.Territories[a.Territory]
	tt.Armies += a.Count
	next.Territories[a.Territory] = tt
	next.Reinforcements.Remaining -= a.Count

	remaining := next.Reinforcements.Remaining
	if remaining == 0 {
		next.Reinforcements = nil
		next.Turn.Phase = PhaseAttack
	}
	next.StateVersion++

	return next, []Event{{Type: EventReinforcementsPlaced, Data: ReinforcementsPlaced{
		Player:    player,
		Territory: a.Territory,
		Count:     a.Count,
		Remaining: remaining,
	}}}, nil
}

func applyTrade(gs *GameState, player PlayerID, a Action, rs *Ruleset) (*GameState, []Event, error) {
	if err := requirePhase(gs, PhaseReinforcement, a.Type); err != nil {
		return nil, nil, err
	}
	if err := requireTurn(gs, player); err != nil {
		return nil, nil, err
	}
	if len(a.CardIDs) != 3 {
		return nil, nil, ruleErrf(ErrComposition, "a trade set has exactly 3 cards, got %d", len(a.CardIDs))
	}

	hand := gs.Hands[player]
	seen := make(map[CardID]bool, 3)
	cards := make([]Card, 0, 3)
	for _, id := range a.CardIDs {
		if seen[id] {
			return nil, nil, ruleErrf(ErrComposition, "duplicate card id %q in trade set", id)
		}
		seen[id] = true
		if !containsCard(hand, id) {
			return nil, nil, ruleErrf(ErrComposition, "card %q is not in %s's hand", id, player)
		}
		cards = append(cards, gs.CardsByID[id])
	}
	if !IsValidTradeSet(cards, rs.Cards) {
		return nil, nil, ruleErrf(ErrComposition, "cards do not form a valid trade set")
	}

	next := gs.Clone()

	newHand := make([]CardID, 0, len(hand)-3)
	for _, id := range next.Hands[player] {
		if !seen[id] {
			newHand = append(newHand, id)
		}
	}
	next.Hands[player] = newHand
	next.Deck.Discard = append(next.Deck.Discard, a.CardIDs...)

	value := TradeValue(next.TradesCompleted, rs.Cards)
	next.TradesCompleted++

	if next.Reinforcements == nil {
		next.Reinforcements = &Reinforcements{Sources: map[string]int{}}
	}
	next.Reinforcements.Remaining += value
	next.Reinforcements.Sources["trade"] += value

	ev := CardsTraded{Player: player, CardIDs: a.CardIDs, Value: value}
	if rs.Cards.TerritoryTradeBonus.Enabled {
		for _, c := range cards {
			if c.Territory == "" {
				continue
			}
			if next.Territories[c.Territory].Owner == player {
				tt := next.Territories[c.Territory]
				tt.Armies += rs.Cards.TerritoryTradeBonus.Armies
				next.Territories[c.Territory] = tt
				ev.BonusTerritory = c.Territory
				ev.BonusArmies = rs.Cards.TerritoryTradeBonus.Armies
				break
			}
		}
	}

	next.StateVersion++
	return next, []Event{{Type: EventCardsTraded, Data: ev}}, nil
}

func containsCard(hand []CardID, id CardID) bool {
	for _, h := range hand {
		if h == id {
			return true
		}
	}
	return false
}

func applyAttack(gs *GameState, player PlayerID, a Action, m *GameMap, rs *Ruleset) (*GameState, []Event, error) {
	if err := requirePhase(gs, PhaseAttack, a.Type); err != nil {
		return nil, nil, err
	}
	if err := requireTurn(gs, player); err != nil {
		return nil, nil, err
	}
	if gs.Pending != nil {
		return nil, nil, ruleErrf(ErrPhase, "a captured territory is awaiting occupation")
	}
	from, ok := gs.Territories[a.From]
	if !ok {
		return nil, nil, ruleErrf(ErrStructural, "territory %q does not exist", a.From)
	}
	to, ok := gs.Territories[a.To]
	if !ok {
		return nil, nil, ruleErrf(ErrStructural, "territory %q does not exist", a.To)
	}
	if from.Owner != player {
		return nil, nil, ruleErrf(ErrOwnership, "%s does not own %s", player, a.From)
	}
	if from.Armies < 2 {
		return nil, nil, ruleErrf(ErrQuantity, "attacking from %s requires at least 2 armies", a.From)
	}
	if !m.Adjacent(a.From, a.To) {
		return nil, nil, ruleErrf(ErrTopology, "%s is not adjacent to %s", a.To, a.From)
	}
	if !CanAttack(player, to.Owner, gs.Players, rs.Teams) {
		return nil, nil, ruleErrf(ErrOwnership, "%s cannot attack %s (owned by %s)", player, a.To, to.Owner)
	}

	maxDice := rs.Combat.MaxAttackDice
	if from.Armies-1 < maxDice {
		maxDice = from.Armies - 1
	}
	attackerDice := maxDice
	if rs.Combat.AttackerChoosesDice && a.AttackerDice > 0 {
		if a.AttackerDice > maxDice {
			return nil, nil, ruleErrf(ErrQuantity, "%d attacker dice exceeds the %d allowed", a.AttackerDice, maxDice)
		}
		attackerDice = a.AttackerDice
	}

	defenderDice := rs.Combat.MaxDefendDice
	if to.Armies < defenderDice {
		defenderDice = to.Armies
	}

	next := gs.Clone()
	rng := ResumeRNG(next.RNG)
	attackerRolls := rng.RollDice(attackerDice)
	defenderRolls := rng.RollDice(defenderDice)
	next.RNG = rng.State()

	pairs := attackerDice
	if defenderDice < pairs {
		pairs = defenderDice
	}
	attackerLosses, defenderLosses := 0, 0
	for i := 0; i < pairs; i++ {
		if attackerRolls[i] > defenderRolls[i] {
			defenderLosses++
		} else {
			attackerLosses++ // ties favor the defender
		}
	}

	fromState := next.Territories[a.From]
	toState := next.Territories[a.To]
	fromState.Armies -= attackerLosses
	toState.Armies -= defenderLosses

	events := []Event{{Type: EventAttackResolved, Data: AttackResolved{
		Attacker:       player,
		Defender:       to.Owner,
		From:           a.From,
		To:             a.To,
		AttackerDice:   attackerRolls,
		DefenderDice:   defenderRolls,
		AttackerLosses: attackerLosses,
		DefenderLosses: defenderLosses,
	}}}

	if toState.Armies == 0 {
		previousOwner := toState.Owner
		toState.Owner = player
		next.Territories[a.From] = fromState
		next.Territories[a.To] = toState

		maxMove := fromState.Armies - 1
		minMove := attackerDice
		if minMove > maxMove {
			minMove = maxMove
		}
		if minMove < 1 {
			minMove = 1
		}
		next.Pending = &PendingOccupy{From: a.From, To: a.To, MinMove: minMove, MaxMove: maxMove}
		next.Turn.Phase = PhaseOccupy

		events = append(events, Event{Type: EventTerritoryCaptured, Data: TerritoryCaptured{
			Player:        player,
			Territory:     a.To,
			PreviousOwner: previousOwner,
		}})

		if previousOwner != Neutral && next.OwnedTerritoryCount(previousOwner) == 0 {
			events = append(events, eliminatePlayer(next, previousOwner, player))
		}

		if ended, ev := checkGameEnd(next, rs.Teams); ended {
			next.Turn.Phase = PhaseGameOver
			next.Pending = nil
			events = append(events, ev)
		}
	} else {
		next.Territories[a.From] = fromState
		next.Territories[a.To] = toState
	}

	next.StateVersion++
	return next, events, nil
}

// eliminatePlayer marks a player defeated and moves their hand to the discard
// pile. It mutates the (already cloned) state and returns the event.
func eliminatePlayer(next *GameState, player, by PlayerID) Event {
	ps := next.Players[player]
	ps.Status = StatusDefeated
	next.Players[player] = ps

	discarded := next.Hands[player]
	next.Deck.Discard = append(next.Deck.Discard, discarded...)
	next.Hands[player] = nil

	return Event{Type: EventPlayerEliminated, Data: PlayerEliminated{
		Player:         player,
		By:             by,
		DiscardedCards: discarded,
	}}
}

// checkGameEnd reports whether only one player (or one team, under a team win
// condition) remains alive.
func checkGameEnd(gs *GameState, teams *TeamsConfig) (bool, Event) {
	alive := gs.AlivePlayers()
	if len(alive) == 0 {
		return false, Event{}
	}

	if teams != nil && teams.Enabled && teams.WinCondition == WinLastTeamStanding {
		team := gs.Players[alive[0]].TeamID
		for _, p := range alive[1:] {
			if gs.Players[p].TeamID == "" || gs.Players[p].TeamID != team {
				return false, Event{}
			}
		}
		if team != "" {
			ev := GameEnded{WinningTeam: team}
			if len(alive) == 1 {
				ev.Winner = alive[0]
			}
			return true, Event{Type: EventGameEnded, Data: ev}
		}
	}

	if len(alive) == 1 {
		return true, Event{Type: EventGameEnded, Data: GameEnded{Winner: alive[0]}}
	}
	return false, Event{}
}

func applyOccupy(gs *GameState, player PlayerID, a Action, rs *Ruleset) (*GameState, []Event, error) {
	if gs.Pending == nil {
		return nil, nil, ruleErrf(ErrPhase, "no capture is awaiting occupation")
	}
	if err := requireTurn(gs, player); err != nil {
		return nil, nil, err
	}
	if a.MoveArmies < gs.Pending.MinMove || a.MoveArmies > gs.Pending.MaxMove {
		return nil, nil, ruleErrf(ErrQuantity, "must move between %d and %d armies, got %d",
			gs.Pending.MinMove, gs.Pending.MaxMove, a.MoveArmies)
	}

	next := gs.Clone()
	from := next.Territories[next.Pending.From]
	to := next.Territories[next.Pending.To]
	from.Armies -= a.MoveArmies
	to.Armies += a.MoveArmies
	next.Territories[next.Pending.From] = from
	next.Territories[next.Pending.To] = to

	occupied := *next.Pending
	next.Pending = nil
	next.CapturedThisTurn = true
	next.Turn.Phase = PhaseAttack

	var events []Event
	if rs.Cards.AwardCardOnCapture {
		rng := ResumeRNG(next.RNG)
		if card, deck, ok := DrawCard(next.Deck, rng); ok {
			next.Deck = deck
			next.Hands[player] = append(next.Hands[player], card)
			events = append(events, Event{Type: EventCardDrawn, Data: CardDrawn{Player: player, CardID: card}})
		}
		next.RNG = rng.State()
	}

	events = append(events, Event{Type: EventOccupyResolved, Data: OccupyResolved{
		Player:     player,
		From:       occupied.From,
		To:         occupied.To,
		MoveArmies: a.MoveArmies,
	}})

	next.StateVersion++
	return next, events, nil
}

func applyEndAttackPhase(gs *GameState, player PlayerID) (*GameState, []Event, error) {
	if err := requirePhase(gs, PhaseAttack, ActionEndAttackPhase); err != nil {
		return nil, nil, err
	}
	if err := requireTurn(gs, player); err != nil {
		return nil, nil, err
	}
	if gs.Pending != nil {
		return nil, nil, ruleErrf(ErrPhase, "a captured territory is awaiting occupation")
	}

	next := gs.Clone()
	next.Turn.Phase = PhaseFortify
	next.StateVersion++
	return next, nil, nil
}

func applyFortify(gs *GameState, player PlayerID, a Action, m *GameMap, rs *Ruleset) (*GameState, []Event, error) {
	if err := requirePhase(gs, PhaseFortify, a.Type); err != nil {
		return nil, nil, err
	}
	if err := requireTurn(gs, player); err != nil {
		return nil, nil, err
	}
	from, ok := gs.Territories[a.From]
	if !ok {
		return nil, nil, ruleErrf(ErrStructural, "territory %q does not exist", a.From)
	}
	to, ok := gs.Territories[a.To]
	if !ok {
		return nil, nil, ruleErrf(ErrStructural, "territory %q does not exist", a.To)
	}
	if a.From == a.To {
		return nil, nil, ruleErrf(ErrTopology, "cannot fortify %s into itself", a.From)
	}
	if !CanFortifyFrom(player, from.Owner, gs.Players, rs.Teams) {
		return nil, nil, ruleErrf(ErrOwnership, "%s cannot fortify from %s (owned by %s)", player, a.From, from.Owner)
	}
	if !CanFortifyTo(player, to.Owner, gs.Players, rs.Teams) {
		return nil, nil, ruleErrf(ErrOwnership, "%s cannot fortify into %s (owned by %s)", player, a.To, to.Owner)
	}
	if a.Count < 1 {
		return nil, nil, ruleErrf(ErrQuantity, "fortify count must be at least 1, got %d", a.Count)
	}
	if from.Armies <= a.Count {
		return nil, nil, ruleErrf(ErrQuantity, "moving %d armies would leave %s empty", a.Count, a.From)
	}
	if rs.Fortify.MaxFortifiesPerTurn > 0 && gs.FortifiesUsedThisTurn >= rs.Fortify.MaxFortifiesPerTurn {
		return nil, nil, ruleErrf(ErrQuantity, "fortify limit of %d per turn reached", rs.Fortify.MaxFortifiesPerTurn)
	}

	switch rs.Fortify.Mode {
	case FortifyConnected:
		if !connected(gs, m, player, a.From, a.To, rs.Teams) {
			return nil, nil, ruleErrf(ErrTopology, "%s is not connected to %s through controlled territories", a.To, a.From)
		}
	default:
		if !m.Adjacent(a.From, a.To) {
			return nil, nil, ruleErrf(ErrTopology, "%s is not adjacent to %s", a.To, a.From)
		}
	}

	next := gs.Clone()
	fromState := next.Territories[a.From]
	toState := next.Territories[a.To]
	fromState.Armies -= a.Count
	toState.Armies += a.Count
	next.Territories[a.From] = fromState
	next.Territories[a.To] = toState
	next.FortifiesUsedThisTurn++
	next.StateVersion++

	return next, []Event{{Type: EventFortifyResolved, Data: FortifyResolved{
		Player: player,
		From:   a.From,
		To:     a.To,
		Count:  a.Count,
	}}}, nil
}

func applyEndTurn(gs *GameState, player PlayerID, m *GameMap, rs *Ruleset) (*GameState, []Event, error) {
	if err := requirePhase(gs, PhaseFortify, ActionEndTurn); err != nil {
		return nil, nil, err
	}
	if err := requireTurn(gs, player); err != nil {
		return nil, nil, err
	}

	next := gs.Clone()
	events := advanceTurn(next, m, rs)
	next.StateVersion++
	return next, events, nil
}

// advanceTurn hands the turn to the next alive player, incrementing the round
// on wrap, resetting per-turn counters, and granting the new player's
// reinforcements. It mutates the (already cloned) state and returns the
// TurnEnded/TurnAdvanced/ReinforcementsGranted events. EndTurn and Resign
// share this path so they can never diverge.
func advanceTurn(next *GameState, m *GameMap, rs *Ruleset) []Event {
	previous := next.Turn.CurrentPlayer

	idx := 0
	for i, p := range next.TurnOrder {
		if p == previous {
			idx = i
			break
		}
	}
	nextPlayer := previous
	for step := 1; step <= len(next.TurnOrder); step++ {
		j := idx + step
		if j >= len(next.TurnOrder) {
			j -= len(next.TurnOrder)
			if next.Players[next.TurnOrder[j]].Status == StatusAlive {
				next.Turn.Round++
				nextPlayer = next.TurnOrder[j]
				break
			}
			continue
		}
		if next.Players[next.TurnOrder[j]].Status == StatusAlive {
			nextPlayer = next.TurnOrder[j]
			break
		}
	}

	next.Turn.CurrentPlayer = nextPlayer
	next.Turn.Phase = PhaseReinforcement
	next.CapturedThisTurn = false
	next.FortifiesUsedThisTurn = 0
	next.Pending = nil

	granted := CalculateReinforcements(next, nextPlayer, m, rs.Teams)
	next.Reinforcements = &granted

	return []Event{
		{Type: EventTurnEnded, Data: TurnEnded{Player: previous}},
		{Type: EventTurnAdvanced, Data: TurnAdvanced{Player: nextPlayer, Round: next.Turn.Round}},
		{Type: EventReinforcementsGranted, Data: ReinforcementsGranted{
			Player:  nextPlayer,
			Total:   granted.Remaining,
			Sources: granted.Sources,
		}},
	}
}

// Resign removes a player from the game: their status becomes defeated, their
// territories revert to neutral, and their hand is discarded. If it was their
// turn, the turn advances exactly as EndTurn would. Hosts invoke this on
// behalf of a departing player; it follows every engine invariant (immutable
// input, StateVersion+1, ordered events).
func Resign(gs *GameState, player PlayerID, m *GameMap, rs *Ruleset) (*GameState, []Event, error) {
	if gs.IsTerminal() {
		return nil, nil, ruleErrf(ErrPhase, "game is over")
	}
	ps, ok := gs.Players[player]
	if !ok {
		return nil, nil, ruleErrf(ErrStructural, "player %q is not in this game", player)
	}
	if ps.Status != StatusAlive {
		return nil, nil, ruleErrf(ErrTurn, "%s has already been defeated", player)
	}

	next := gs.Clone()
	for id, t := range next.Territories {
		if t.Owner == player {
			t.Owner = Neutral
			next.Territories[id] = t
		}
	}
	events := []Event{eliminatePlayer(next, player, "")}

	if ended, ev := checkGameEnd(next, rs.Teams); ended {
		next.Turn.Phase = PhaseGameOver
		next.Pending = nil
		next.Reinforcements = nil
		events = append(events, ev)
	} else if next.Turn.CurrentPlayer == player {
		events = append(events, advanceTurn(next, m, rs)...)
	}

	next.StateVersion++
	return next, events, nil
}
