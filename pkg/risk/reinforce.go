package risk

import "sort"

// TerritorySource is the sources key for the base territory-count income.
const TerritorySource = "territory"

// CalculateReinforcements computes a player's per-turn army income: a base of
// max(3, floor(ownedTerritories/3)) plus one bonus per fully controlled
// continent. Sources itemizes the result under "territory" and each awarded
// continent's id.
//
// When teams are enabled with majority-holder attribution, a continent pays
// out only if one team owns all of it (any neutral or mixed-team territory
// voids the bonus), and the bonus goes to the single teammate holding the
// most territories there, ties broken by lexicographically smallest player
// id.
func CalculateReinforcements(gs *GameState, player PlayerID, m *GameMap, teams *TeamsConfig) Reinforcements {
	owned := gs.OwnedTerritoryCount(player)
	base := owned / 3
	if base < 3 {
		base = 3
	}

	r := Reinforcements{
		Remaining: base,
		Sources:   map[string]int{TerritorySource: base},
	}

	teamMode := teams != nil && teams.Enabled &&
		teams.ContinentBonusRecipient == BonusMajorityHolderOnTeam &&
		gs.Players[player].TeamID != ""

	for cid, cont := range m.Continents {
		var awarded bool
		if teamMode {
			awarded = continentMajorityHolder(gs, cont) == player
		} else {
			awarded = ownsWholeContinent(gs, cont, player)
		}
		if awarded {
			r.Remaining += cont.Bonus
			r.Sources[string(cid)] = cont.Bonus
		}
	}
	return r
}

func ownsWholeContinent(gs *GameState, cont Continent, player PlayerID) bool {
	if len(cont.Territories) == 0 {
		return false
	}
	for _, tid := range cont.Territories {
		if gs.Territories[tid].Owner != player {
			return false
		}
	}
	return true
}

// continentMajorityHolder returns the teammate holding the most territories
// in a continent fully owned by a single team, or "" if the continent is not
// team-held.
func continentMajorityHolder(gs *GameState, cont Continent) PlayerID {
	if len(cont.Territories) == 0 {
		return ""
	}

	var team TeamID
	counts := make(map[PlayerID]int)
	for _, tid := range cont.Territories {
		owner := gs.Territories[tid].Owner
		if owner == Neutral {
			return ""
		}
		ownerTeam := gs.Players[owner].TeamID
		if ownerTeam == "" {
			return ""
		}
		if team == "" {
			team = ownerTeam
		} else if ownerTeam != team {
			return ""
		}
		counts[owner]++
	}

	holders := make([]PlayerID, 0, len(counts))
	for p := range counts {
		holders = append(holders, p)
	}
	sort.Slice(holders, func(i, j int) bool { return holders[i] < holders[j] })

	best := holders[0]
	for _, p := range holders[1:] {
		if counts[p] > counts[best] {
			best = p
		}
	}
	return best
}
