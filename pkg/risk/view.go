package risk

// SpectatorView is the projection of a GameState safe to show anyone: the RNG
// seed, deck order, and hand contents are omitted, with hands reduced to
// counts. It is plain data, derived fresh from a state, safe to serialize and
// broadcast.
type SpectatorView struct {
	Players     map[PlayerID]PlayerState       `json:"players"`
	TurnOrder   []PlayerID                     `json:"turnOrder"`
	Territories map[TerritoryID]TerritoryState `json:"territories"`
	Turn        TurnState                      `json:"turn"`

	Pending        *PendingOccupy  `json:"pending,omitempty"`
	Reinforcements *Reinforcements `json:"reinforcements,omitempty"`

	HandCounts   map[PlayerID]int `json:"handCounts"`
	DrawCount    int              `json:"drawCount"`
	DiscardCount int              `json:"discardCount"`

	TradesCompleted  int  `json:"tradesCompleted"`
	CapturedThisTurn bool `json:"capturedThisTurn"`

	StateVersion   int `json:"stateVersion"`
	RulesetVersion int `json:"rulesetVersion"`
}

// PlayerView is the spectator projection plus the requesting player's own
// hand, with card definitions resolved.
type PlayerView struct {
	SpectatorView
	Hand []Card `json:"hand"`
}

// NewSpectatorView projects a state for spectators.
func NewSpectatorView(gs *GameState) SpectatorView {
	v := SpectatorView{
		Players:          make(map[PlayerID]PlayerState, len(gs.Players)),
		TurnOrder:        append([]PlayerID(nil), gs.TurnOrder...),
		Territories:      make(map[TerritoryID]TerritoryState, len(gs.Territories)),
		Turn:             gs.Turn,
		HandCounts:       make(map[PlayerID]int, len(gs.Hands)),
		DrawCount:        len(gs.Deck.Draw),
		DiscardCount:     len(gs.Deck.Discard),
		TradesCompleted:  gs.TradesCompleted,
		CapturedThisTurn: gs.CapturedThisTurn,
		StateVersion:     gs.StateVersion,
		RulesetVersion:   gs.RulesetVersion,
	}
	for k, p := range gs.Players {
		v.Players[k] = p
	}
	for k, t := range gs.Territories {
		v.Territories[k] = t
	}
	for p, hand := range gs.Hands {
		v.HandCounts[p] = len(hand)
	}
	if gs.Pending != nil {
		p := *gs.Pending
		v.Pending = &p
	}
	if gs.Reinforcements != nil {
		r := Reinforcements{Remaining: gs.Reinforcements.Remaining, Sources: make(map[string]int, len(gs.Reinforcements.Sources))}
		for k, n := range gs.Reinforcements.Sources {
			r.Sources[k] = n
		}
		v.Reinforcements = &r
	}
	return v
}

// NewPlayerView projects a state for one player, including their hand.
func NewPlayerView(gs *GameState, player PlayerID) PlayerView {
	v := PlayerView{SpectatorView: NewSpectatorView(gs)}
	for _, id := range gs.Hands[player] {
		v.Hand = append(v.Hand, gs.CardsByID[id])
	}
	return v
}
