package risk

// Permission predicates answer "can this player act on a territory owned by
// that player" under the current team rules. They are shared by the action
// engine and the legal-action generator so the two can never disagree. A nil
// TeamsConfig behaves exactly like teams disabled.

// isTeammate reports whether owner is a distinct player on actor's team.
func isTeammate(actor, owner PlayerID, players map[PlayerID]PlayerState, teams *TeamsConfig) bool {
	if teams == nil || !teams.Enabled || actor == owner || owner == Neutral {
		return false
	}
	a, aok := players[actor]
	o, ook := players[owner]
	return aok && ook && a.TeamID != "" && a.TeamID == o.TeamID
}

// CanPlace reports whether actor may place armies on a territory owned by
// owner. Never true for neutral territory.
func CanPlace(actor, owner PlayerID, players map[PlayerID]PlayerState, teams *TeamsConfig) bool {
	if owner == actor {
		return true
	}
	return teams != nil && teams.Enabled && teams.AllowPlaceOnTeammate &&
		isTeammate(actor, owner, players, teams)
}

// CanAttack reports whether actor may attack a territory owned by owner.
// Neutral territory is always attackable.
func CanAttack(actor, owner PlayerID, players map[PlayerID]PlayerState, teams *TeamsConfig) bool {
	if owner == actor {
		return false
	}
	if teams != nil && teams.Enabled && teams.PreventAttackingTeammates &&
		isTeammate(actor, owner, players, teams) {
		return false
	}
	return true
}

// CanFortifyFrom reports whether actor may move armies out of a territory
// owned by owner.
func CanFortifyFrom(actor, owner PlayerID, players map[PlayerID]PlayerState, teams *TeamsConfig) bool {
	return canFortify(actor, owner, players, teams)
}

// CanFortifyTo reports whether actor may move armies into a territory owned
// by owner.
func CanFortifyTo(actor, owner PlayerID, players map[PlayerID]PlayerState, teams *TeamsConfig) bool {
	return canFortify(actor, owner, players, teams)
}

// CanTraverse reports whether connectivity searches may pass through a
// territory owned by owner on actor's behalf. Neutral territory is never
// traversable.
func CanTraverse(actor, owner PlayerID, players map[PlayerID]PlayerState, teams *TeamsConfig) bool {
	return canFortify(actor, owner, players, teams)
}

func canFortify(actor, owner PlayerID, players map[PlayerID]PlayerState, teams *TeamsConfig) bool {
	if owner == actor {
		return true
	}
	return teams != nil && teams.Enabled && teams.AllowFortifyWithTeammate &&
		isTeammate(actor, owner, players, teams)
}
