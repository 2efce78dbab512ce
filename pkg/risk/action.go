package risk

// ActionType tags a player-requested action.
type ActionType string

const (
	ActionPlaceReinforcements ActionType = "placeReinforcements"
	ActionTradeCards          ActionType = "tradeCards"
	ActionAttack              ActionType = "attack"
	ActionOccupy              ActionType = "occupy"
	ActionEndAttackPhase      ActionType = "endAttackPhase"
	ActionFortify             ActionType = "fortify"
	ActionEndTurn             ActionType = "endTurn"
)

// Action is a single requested move. Type selects which fields are read:
// PlaceReinforcements uses Territory+Count; TradeCards uses CardIDs; Attack
// uses From+To+AttackerDice (0 = roll the maximum allowed); Occupy uses
// MoveArmies; Fortify uses From+To+Count; EndAttackPhase and EndTurn carry
// nothing.
type Action struct {
	Type ActionType `json:"type"`

	Territory TerritoryID `json:"territory,omitempty"`
	From      TerritoryID `json:"from,omitempty"`
	To        TerritoryID `json:"to,omitempty"`
	Count     int         `json:"count,omitempty"`

	AttackerDice int `json:"attackerDice,omitempty"`
	MoveArmies   int `json:"moveArmies,omitempty"`

	CardIDs []CardID `json:"cardIds,omitempty"`
}

// EventType tags an engine event. These are wire-stable: hosts persist and
// broadcast them verbatim.
type EventType string

const (
	EventSetupCompleted        EventType = "SetupCompleted"
	EventReinforcementsGranted EventType = "ReinforcementsGranted"
	EventCardsTraded           EventType = "CardsTraded"
	EventReinforcementsPlaced  EventType = "ReinforcementsPlaced"
	EventAttackResolved        EventType = "AttackResolved"
	EventTerritoryCaptured     EventType = "TerritoryCaptured"
	EventPlayerEliminated      EventType = "PlayerEliminated"
	EventOccupyResolved        EventType = "OccupyResolved"
	EventFortifyResolved       EventType = "FortifyResolved"
	EventCardDrawn             EventType = "CardDrawn"
	EventTurnEnded             EventType = "TurnEnded"
	EventTurnAdvanced          EventType = "TurnAdvanced"
	EventGameEnded             EventType = "GameEnded"
)

// Event is the envelope for everything the engine reports. Data holds one of
// the typed payloads below, matching Type.
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
}

// SetupCompleted reports the initial state was built.
type SetupCompleted struct {
	Players   []PlayerID `json:"players"`
	FirstTurn PlayerID   `json:"firstTurn"`
}

// ReinforcementsGranted reports a player's computed army income.
type ReinforcementsGranted struct {
	Player  PlayerID       `json:"player"`
	Total   int            `json:"total"`
	Sources map[string]int `json:"sources"`
}

// CardsTraded reports a completed trade.
type CardsTraded struct {
	Player         PlayerID    `json:"player"`
	CardIDs        []CardID    `json:"cardIds"`
	Value          int         `json:"value"`
	BonusTerritory TerritoryID `json:"bonusTerritory,omitempty"`
	BonusArmies    int         `json:"bonusArmies,omitempty"`
}

// ReinforcementsPlaced reports armies placed on a territory.
type ReinforcementsPlaced struct {
	Player    PlayerID    `json:"player"`
	Territory TerritoryID `json:"territory"`
	Count     int         `json:"count"`
	Remaining int         `json:"remaining"`
}

// AttackResolved reports one attack roll and its losses.
type AttackResolved struct {
	Attacker       PlayerID    `json:"attacker"`
	Defender       PlayerID    `json:"defender"`
	From           TerritoryID `json:"from"`
	To             TerritoryID `json:"to"`
	AttackerDice   []int       `json:"attackerDice"`
	DefenderDice   []int       `json:"defenderDice"`
	AttackerLosses int         `json:"attackerLosses"`
	DefenderLosses int         `json:"defenderLosses"`
}

// TerritoryCaptured reports an ownership transfer after a defender hit zero.
type TerritoryCaptured struct {
	Player        PlayerID    `json:"player"`
	Territory     TerritoryID `json:"territory"`
	PreviousOwner PlayerID    `json:"previousOwner"`
}

// PlayerEliminated reports a player losing their last territory. Their hand
// moves to the discard pile.
type PlayerEliminated struct {
	Player         PlayerID `json:"player"`
	By             PlayerID `json:"by"`
	DiscardedCards []CardID `json:"discardedCards,omitempty"`
}

// OccupyResolved reports the mandatory post-capture move.
type OccupyResolved struct {
	Player     PlayerID    `json:"player"`
	From       TerritoryID `json:"from"`
	To         TerritoryID `json:"to"`
	MoveArmies int         `json:"moveArmies"`
}

// FortifyResolved reports an end-of-turn army move.
type FortifyResolved struct {
	Player PlayerID    `json:"player"`
	From   TerritoryID `json:"from"`
	To     TerritoryID `json:"to"`
	Count  int         `json:"count"`
}

// CardDrawn reports a card entering a player's hand. The card id is only
// revealed to its holder by the player view; spectators see the event type
// with the id blanked by the host's projection.
type CardDrawn struct {
	Player PlayerID `json:"player"`
	CardID CardID   `json:"cardId"`
}

// TurnEnded reports the end of a player's turn.
type TurnEnded struct {
	Player PlayerID `json:"player"`
}

// TurnAdvanced reports the next player and round.
type TurnAdvanced struct {
	Player PlayerID `json:"player"`
	Round  int      `json:"round"`
}

// GameEnded reports the terminal result: the last player standing, or the
// last team under a team win condition.
type GameEnded struct {
	Winner      PlayerID `json:"winner,omitempty"`
	WinningTeam TeamID   `json:"winningTeam,omitempty"`
}
