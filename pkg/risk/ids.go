// Package risk implements the deterministic rules engine for a multiplayer
// territory-conquest game. Given an immutable game state, a player identity,
// and a requested action, it validates the action against phase/ownership/
// adjacency rules, resolves any randomness from a seeded generator, and
// returns a new state plus an ordered list of events. The package performs
// no I/O and holds no state between calls; the same inputs always produce
// bit-identical outputs, which is what lets a server use it as the single
// source of truth when arbitrating concurrent submissions.
package risk

// PlayerID identifies a participant in a game.
type PlayerID string

// TerritoryID identifies a node in the map graph.
type TerritoryID string

// ContinentID identifies a continent (a disjoint territory grouping).
type ContinentID string

// CardID identifies a card in the deck.
type CardID string

// TeamID identifies a team. Players with equal non-empty team ids are teammates.
type TeamID string

// Neutral is the owner of unclaimed territories. It is not a player: it never
// acts, never holds cards, and never receives reinforcements.
const Neutral PlayerID = "neutral"
