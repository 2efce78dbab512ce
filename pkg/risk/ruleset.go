package risk

// Distribution modes for initial army placement.
const (
	DistributeRoundRobin = "roundRobin"
	DistributeRandom     = "random"
)

// SetupConfig controls game creation.
type SetupConfig struct {
	// InitialArmies maps player count to starting armies per player.
	InitialArmies map[int]int `json:"initialArmies"`
	// NeutralTerritories is how many territories start neutral.
	NeutralTerritories int `json:"neutralTerritories"`
	// NeutralArmies is the garrison on each neutral territory.
	NeutralArmies int `json:"neutralArmies"`
	// Distribution is how leftover armies are spread across owned
	// territories: DistributeRoundRobin or DistributeRandom.
	Distribution string `json:"distribution"`
}

// Defender dice strategies.
const (
	DefendAlwaysMax = "alwaysMax"
)

// CombatConfig controls attack resolution.
type CombatConfig struct {
	MaxAttackDice        int    `json:"maxAttackDice"`
	MaxDefendDice        int    `json:"maxDefendDice"`
	DefenderDiceStrategy string `json:"defenderDiceStrategy"`
	// AttackerChoosesDice lets the attacker pick 1..max dice; otherwise the
	// engine always rolls the maximum allowed.
	AttackerChoosesDice bool `json:"attackerChoosesDice"`
}

// Fortify movement modes.
const (
	FortifyAdjacent  = "adjacent"
	FortifyConnected = "connected"
)

// FortifyConfig controls end-of-turn army movement.
type FortifyConfig struct {
	// Mode is FortifyAdjacent (one hop) or FortifyConnected (any territory
	// reachable through controlled territories).
	Mode string `json:"mode"`
	// MaxFortifiesPerTurn caps fortify actions per turn; 0 means unlimited.
	MaxFortifiesPerTurn int `json:"maxFortifiesPerTurn"`
}

// Trade value overflow policies, applied once tradesCompleted walks off the
// end of the ladder.
const (
	OverflowContinueByFive = "continueByFive"
	OverflowRepeatLast     = "repeatLast"
)

// TerritoryTradeBonus places extra armies directly on a territory the trader
// owns when one of the traded cards links to it.
type TerritoryTradeBonus struct {
	Enabled bool `json:"enabled"`
	Armies  int  `json:"armies"`
}

// DeckConfig controls deck construction.
type DeckConfig struct {
	// Kinds cycles round-robin across cards by position (card i gets
	// Kinds[i mod len]). Wild cards use kind "W" and are not in this list.
	Kinds []string `json:"kinds"`
	// WildCount is how many wild cards to append.
	WildCount int `json:"wildCount"`
	// TerritoryLinked tags each non-wild card with a territory id.
	TerritoryLinked bool `json:"territoryLinked"`
}

// CardsConfig controls the card economy.
type CardsConfig struct {
	TradeValues         []int               `json:"tradeValues"`
	OverflowPolicy      string              `json:"overflowPolicy"`
	ForcedTradeHandSize int                 `json:"forcedTradeHandSize"`
	AllowThreeOfAKind   bool                `json:"allowThreeOfAKind"`
	AllowOneOfEach      bool                `json:"allowOneOfEach"`
	WildActsAsAny       bool                `json:"wildActsAsAny"`
	AwardCardOnCapture  bool                `json:"awardCardOnCapture"`
	TerritoryTradeBonus TerritoryTradeBonus `json:"territoryTradeBonus"`
	Deck                DeckConfig          `json:"deck"`
}

// Continent bonus attribution modes under team play.
const (
	BonusSoleOwner            = "soleOwner"
	BonusMajorityHolderOnTeam = "majorityHolderOnTeam"
)

// Win conditions.
const (
	WinLastPlayerStanding = "lastPlayerStanding"
	WinLastTeamStanding   = "lastTeamStanding"
)

// TeamsConfig controls team play. A nil TeamsConfig behaves exactly like
// Enabled=false everywhere in the engine.
type TeamsConfig struct {
	Enabled                   bool   `json:"enabled"`
	PreventAttackingTeammates bool   `json:"preventAttackingTeammates"`
	AllowPlaceOnTeammate      bool   `json:"allowPlaceOnTeammate"`
	AllowFortifyWithTeammate  bool   `json:"allowFortifyWithTeammate"`
	WinCondition              string `json:"winCondition"`
	ContinentBonusRecipient   string `json:"continentBonusRecipient"`
}

// Ruleset is the complete tunable configuration for a game. It is plain data:
// serializable, comparable, carrying no behavior. The engine is configured by
// it, never hard-coded.
type Ruleset struct {
	Setup   SetupConfig   `json:"setup"`
	Combat  CombatConfig  `json:"combat"`
	Fortify FortifyConfig `json:"fortify"`
	Cards   CardsConfig   `json:"cards"`
	Teams   *TeamsConfig  `json:"teams,omitempty"`
}

// DefaultRuleset returns the classic configuration: 3v2 combat, adjacent-only
// fortify, the 4-6-8-10-12-15 trade ladder continuing by five, and teams off.
func DefaultRuleset() Ruleset {
	return Ruleset{
		Setup: SetupConfig{
			InitialArmies: map[int]int{2: 40, 3: 35, 4: 30, 5: 25, 6: 20},
			Distribution:  DistributeRoundRobin,
		},
		Combat: CombatConfig{
			MaxAttackDice:        3,
			MaxDefendDice:        2,
			DefenderDiceStrategy: DefendAlwaysMax,
			AttackerChoosesDice:  true,
		},
		Fortify: FortifyConfig{
			Mode:                FortifyAdjacent,
			MaxFortifiesPerTurn: 1,
		},
		Cards: CardsConfig{
			TradeValues:         []int{4, 6, 8, 10, 12, 15},
			OverflowPolicy:      OverflowContinueByFive,
			ForcedTradeHandSize: 5,
			AllowThreeOfAKind:   true,
			AllowOneOfEach:      true,
			WildActsAsAny:       true,
			AwardCardOnCapture:  true,
			TerritoryTradeBonus: TerritoryTradeBonus{Enabled: true, Armies: 2},
			Deck: DeckConfig{
				Kinds:           []string{"I", "C", "A"},
				WildCount:       2,
				TerritoryLinked: true,
			},
		},
	}
}
