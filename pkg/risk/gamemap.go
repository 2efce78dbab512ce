package risk

import "fmt"

// TerritoryInfo carries optional display metadata for a territory. The engine
// never reads it; it exists so hosts can ship one document per map.
type TerritoryInfo struct {
	Name string `json:"name,omitempty"`
}

// Continent is a named grouping of territories worth a reinforcement bonus to
// whoever controls all of it.
type Continent struct {
	Territories []TerritoryID `json:"territories"`
	Bonus       int           `json:"bonus"`
}

// GameMap holds the static territory/adjacency/continent topology. The engine
// never mutates it.
type GameMap struct {
	Territories map[TerritoryID]TerritoryInfo `json:"territories"`
	Adjacency   map[TerritoryID][]TerritoryID `json:"adjacency"`
	Continents  map[ContinentID]Continent     `json:"continents,omitempty"`
}

// Adjacent returns true if dst is listed as a neighbor of src.
func (m *GameMap) Adjacent(src, dst TerritoryID) bool {
	for _, n := range m.Adjacency[src] {
		if n == dst {
			return true
		}
	}
	return false
}

// HasTerritory returns true if the territory id exists on the map.
func (m *GameMap) HasTerritory(id TerritoryID) bool {
	_, ok := m.Territories[id]
	return ok
}

// MapErrorKind classifies a structural map problem.
type MapErrorKind string

const (
	MapUnknownAdjacencyKey    MapErrorKind = "unknown_adjacency_key"
	MapMissingAdjacencyEntry  MapErrorKind = "missing_adjacency_entry"
	MapUnknownAdjacencyTarget MapErrorKind = "unknown_adjacency_target"
	MapAsymmetricAdjacency    MapErrorKind = "asymmetric_adjacency"
	MapUnknownContinentMember MapErrorKind = "unknown_continent_member"
	MapUnassignedTerritory    MapErrorKind = "unassigned_territory"
	MapOverlappingContinents  MapErrorKind = "overlapping_continents"
	MapNonPositiveBonus       MapErrorKind = "non_positive_bonus"
)

// MapError is a structural problem found during validation. It is data, not
// presentation: hosts format their own messages from the kind and ids.
type MapError struct {
	Kind      MapErrorKind `json:"kind"`
	Territory TerritoryID  `json:"territory,omitempty"`
	Neighbor  TerritoryID  `json:"neighbor,omitempty"`
	Continent ContinentID  `json:"continent,omitempty"`
}

func (e MapError) Error() string {
	return fmt.Sprintf("map error %s (territory=%q neighbor=%q continent=%q)",
		e.Kind, e.Territory, e.Neighbor, e.Continent)
}

// ValidateMap checks structural soundness of the adjacency graph and
// continent membership. It collects every problem rather than stopping at the
// first, because map authoring wants a complete report. A nil result means
// the map is valid.
func ValidateMap(m *GameMap) []MapError {
	var errs []MapError

	for id, neighbors := range m.Adjacency {
		if !m.HasTerritory(id) {
			errs = append(errs, MapError{Kind: MapUnknownAdjacencyKey, Territory: id})
		}
		for _, n := range neighbors {
			if !m.HasTerritory(n) {
				errs = append(errs, MapError{Kind: MapUnknownAdjacencyTarget, Territory: id, Neighbor: n})
				continue
			}
			if !m.Adjacent(n, id) {
				errs = append(errs, MapError{Kind: MapAsymmetricAdjacency, Territory: id, Neighbor: n})
			}
		}
	}

	for id := range m.Territories {
		if _, ok := m.Adjacency[id]; !ok {
			errs = append(errs, MapError{Kind: MapMissingAdjacencyEntry, Territory: id})
		}
	}

	for cid, cont := range m.Continents {
		for _, t := range cont.Territories {
			if !m.HasTerritory(t) {
				errs = append(errs, MapError{Kind: MapUnknownContinentMember, Continent: cid, Territory: t})
			}
		}
	}

	return errs
}

// ValidateForPublish runs ValidateMap and additionally requires, when
// continents are defined, that they partition the territory set exactly (every
// territory in exactly one continent) and that every bonus is positive.
func ValidateForPublish(m *GameMap) []MapError {
	errs := ValidateMap(m)
	if len(m.Continents) == 0 {
		return errs
	}

	assigned := make(map[TerritoryID]int)
	for cid, cont := range m.Continents {
		if cont.Bonus <= 0 {
			errs = append(errs, MapError{Kind: MapNonPositiveBonus, Continent: cid})
		}
		for _, t := range cont.Territories {
			assigned[t]++
			if assigned[t] == 2 {
				errs = append(errs, MapError{Kind: MapOverlappingContinents, Territory: t})
			}
		}
	}
	for id := range m.Territories {
		if assigned[id] == 0 {
			errs = append(errs, MapError{Kind: MapUnassignedTerritory, Territory: id})
		}
	}
	return errs
}
