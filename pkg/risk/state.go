package risk

// Phase is one stage of a player's turn, or a game-level state.
type Phase string

const (
	PhaseSetup         Phase = "setup"
	PhaseReinforcement Phase = "reinforcement"
	PhaseAttack        Phase = "attack"
	PhaseOccupy        Phase = "occupy"
	PhaseFortify       Phase = "fortify"
	PhaseGameOver      Phase = "gameOver"
)

// PlayerStatus is alive or defeated.
type PlayerStatus string

const (
	StatusAlive    PlayerStatus = "alive"
	StatusDefeated PlayerStatus = "defeated"
)

// PlayerState is a player's standing and optional team membership.
type PlayerState struct {
	Status PlayerStatus `json:"status"`
	TeamID TeamID       `json:"teamId,omitempty"`
}

// TerritoryState is who holds a territory and with how many armies.
type TerritoryState struct {
	Owner  PlayerID `json:"owner"`
	Armies int      `json:"armies"`
}

// TurnState tracks whose turn it is and where in the turn they are. Round is
// 1-based and increments when the turn order wraps.
type TurnState struct {
	CurrentPlayer PlayerID `json:"currentPlayer"`
	Phase         Phase    `json:"phase"`
	Round         int      `json:"round"`
}

// PendingOccupy is the mandatory sub-action created when an attack captures a
// territory: the attacker must move between MinMove and MaxMove armies from
// From into To before anything else happens.
type PendingOccupy struct {
	From    TerritoryID `json:"from"`
	To      TerritoryID `json:"to"`
	MinMove int         `json:"minMove"`
	MaxMove int         `json:"maxMove"`
}

// Reinforcements is the current player's unplaced army income, with an
// itemized breakdown ("territory" plus one entry per awarded continent).
type Reinforcements struct {
	Remaining int            `json:"remaining"`
	Sources   map[string]int `json:"sources"`
}

// Card is a single card definition. Kind "W" marks a wild card.
type Card struct {
	ID        CardID      `json:"id"`
	Kind      string      `json:"kind"`
	Territory TerritoryID `json:"territory,omitempty"`
}

// WildKind is the kind assigned to wild cards.
const WildKind = "W"

// DeckState holds the ordered draw and discard piles.
type DeckState struct {
	Draw    []CardID `json:"draw"`
	Discard []CardID `json:"discard"`
}

// GameState is the complete mutable aggregate for one game. The engine never
// mutates a GameState in place: every accepted action produces a structurally
// new state with StateVersion incremented by exactly one, so callers may keep
// references to prior versions (for diffing, projections, or optimistic
// concurrency).
type GameState struct {
	Players     map[PlayerID]PlayerState       `json:"players"`
	TurnOrder   []PlayerID                     `json:"turnOrder"`
	Territories map[TerritoryID]TerritoryState `json:"territories"`
	Turn        TurnState                      `json:"turn"`

	Pending        *PendingOccupy  `json:"pending,omitempty"`
	Reinforcements *Reinforcements `json:"reinforcements,omitempty"`

	Deck      DeckState             `json:"deck"`
	CardsByID map[CardID]Card       `json:"cardsById"`
	Hands     map[PlayerID][]CardID `json:"hands"`

	TradesCompleted       int  `json:"tradesCompleted"`
	CapturedThisTurn      bool `json:"capturedThisTurn"`
	FortifiesUsedThisTurn int  `json:"fortifiesUsedThisTurn"`

	RNG RNGState `json:"rng"`

	StateVersion   int `json:"stateVersion"`
	RulesetVersion int `json:"rulesetVersion"`
}

// Clone returns a deep copy of the GameState. Mutations to the clone do not
// affect the original; the engine clones before applying every action.
func (gs *GameState) Clone() *GameState {
	c := &GameState{
		Turn:                  gs.Turn,
		Deck:                  DeckState{},
		TradesCompleted:       gs.TradesCompleted,
		CapturedThisTurn:      gs.CapturedThisTurn,
		FortifiesUsedThisTurn: gs.FortifiesUsedThisTurn,
		RNG:                   gs.RNG,
		StateVersion:          gs.StateVersion,
		RulesetVersion:        gs.RulesetVersion,
	}

	if gs.Players != nil {
		c.Players = make(map[PlayerID]PlayerState, len(gs.Players))
		for k, v := range gs.Players {
			c.Players[k] = v
		}
	}
	if gs.TurnOrder != nil {
		c.TurnOrder = make([]PlayerID, len(gs.TurnOrder))
		copy(c.TurnOrder, gs.TurnOrder)
	}
	if gs.Territories != nil {
		c.Territories = make(map[TerritoryID]TerritoryState, len(gs.Territories))
		for k, v := range gs.Territories {
			c.Territories[k] = v
		}
	}
	if gs.Pending != nil {
		p := *gs.Pending
		c.Pending = &p
	}
	if gs.Reinforcements != nil {
		r := Reinforcements{Remaining: gs.Reinforcements.Remaining}
		if gs.Reinforcements.Sources != nil {
			r.Sources = make(map[string]int, len(gs.Reinforcements.Sources))
			for k, v := range gs.Reinforcements.Sources {
				r.Sources[k] = v
			}
		}
		c.Reinforcements = &r
	}
	if gs.Deck.Draw != nil {
		c.Deck.Draw = make([]CardID, len(gs.Deck.Draw))
		copy(c.Deck.Draw, gs.Deck.Draw)
	}
	if gs.Deck.Discard != nil {
		c.Deck.Discard = make([]CardID, len(gs.Deck.Discard))
		copy(c.Deck.Discard, gs.Deck.Discard)
	}
	if gs.CardsByID != nil {
		c.CardsByID = make(map[CardID]Card, len(gs.CardsByID))
		for k, v := range gs.CardsByID {
			c.CardsByID[k] = v
		}
	}
	if gs.Hands != nil {
		c.Hands = make(map[PlayerID][]CardID, len(gs.Hands))
		for k, v := range gs.Hands {
			if v == nil {
				c.Hands[k] = nil
				continue
			}
			hand := make([]CardID, len(v))
			copy(hand, v)
			c.Hands[k] = hand
		}
	}
	return c
}

// OwnedTerritories returns the ids of territories owned by the given player,
// in no particular order.
func (gs *GameState) OwnedTerritories(p PlayerID) []TerritoryID {
	var out []TerritoryID
	for id, t := range gs.Territories {
		if t.Owner == p {
			out = append(out, id)
		}
	}
	return out
}

// OwnedTerritoryCount returns how many territories the player owns.
func (gs *GameState) OwnedTerritoryCount(p PlayerID) int {
	n := 0
	for _, t := range gs.Territories {
		if t.Owner == p {
			n++
		}
	}
	return n
}

// AlivePlayers returns players whose status is alive, in turn order.
func (gs *GameState) AlivePlayers() []PlayerID {
	var out []PlayerID
	for _, p := range gs.TurnOrder {
		if gs.Players[p].Status == StatusAlive {
			out = append(out, p)
		}
	}
	return out
}

// IsTerminal returns true once the game is over.
func (gs *GameState) IsTerminal() bool {
	return gs.Turn.Phase == PhaseGameOver
}
