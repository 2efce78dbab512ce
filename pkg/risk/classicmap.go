package risk

import "sync"

var (
	classicMapOnce sync.Once
	classicMapInst *GameMap
)

// ClassicMap returns the classic 42-territory world map with its six
// continents. The map is built once and cached; subsequent calls return the
// same pointer. Callers must not mutate the returned map.
func ClassicMap() *GameMap {
	classicMapOnce.Do(func() {
		classicMapInst = buildClassicMap()
	})
	return classicMapInst
}

func buildClassicMap() *GameMap {
	m := &GameMap{
		Territories: make(map[TerritoryID]TerritoryInfo, 42),
		Adjacency:   make(map[TerritoryID][]TerritoryID, 42),
		Continents:  make(map[ContinentID]Continent, 6),
	}

	terr := func(id TerritoryID, name string) {
		m.Territories[id] = TerritoryInfo{Name: name}
	}

	// border adds a bidirectional adjacency, so symmetry holds by construction.
	border := func(from, to TerritoryID) {
		m.Adjacency[from] = append(m.Adjacency[from], to)
		m.Adjacency[to] = append(m.Adjacency[to], from)
	}

	cont := func(id ContinentID, bonus int, members ...TerritoryID) {
		m.Continents[id] = Continent{Territories: members, Bonus: bonus}
	}

	// --- North America (9) ---
	terr("alaska", "Alaska")
	terr("northwest_territory", "Northwest Territory")
	terr("greenland", "Greenland")
	terr("alberta", "Alberta")
	terr("ontario", "Ontario")
	terr("quebec", "Quebec")
	terr("western_united_states", "Western United States")
	terr("eastern_united_states", "Eastern United States")
	terr("central_america", "Central America")

	// --- South America (4) ---
	terr("venezuela", "Venezuela")
	terr("brazil", "Brazil")
	terr("peru", "Peru")
	terr("argentina", "Argentina")

	// --- Europe (7) ---
	terr("iceland", "Iceland")
	terr("great_britain", "Great Britain")
	terr("scandinavia", "Scandinavia")
	terr("ukraine", "Ukraine")
	terr("northern_europe", "Northern Europe")
	terr("western_europe", "Western Europe")
	terr("southern_europe", "Southern Europe")

	// --- Africa (6) ---
	terr("north_africa", "North Africa")
	terr("egypt", "Egypt")
	terr("east_africa", "East Africa")
	terr("congo", "Congo")
	terr("south_africa", "South Africa")
	terr("madagascar", "Madagascar")

	// --- Asia (12) ---
	terr("ural", "Ural")
	terr("siberia", "Siberia")
	terr("yakutsk", "Yakutsk")
	terr("kamchatka", "Kamchatka")
	terr("irkutsk", "Irkutsk")
	terr("mongolia", "Mongolia")
	terr("japan", "Japan")
	terr("afghanistan", "Afghanistan")
	terr("china", "China")
	terr("middle_east", "Middle East")
	terr("india", "India")
	terr("siam", "Siam")

	// --- Australia (4) ---
	terr("indonesia", "Indonesia")
	terr("new_guinea", "New Guinea")
	terr("western_australia", "Western Australia")
	terr("eastern_australia", "Eastern Australia")

	// North America
	border("alaska", "northwest_territory")
	border("alaska", "alberta")
	border("northwest_territory", "alberta")
	border("northwest_territory", "ontario")
	border("northwest_territory", "greenland")
	border("greenland", "ontario")
	border("greenland", "quebec")
	border("alberta", "ontario")
	border("alberta", "western_united_states")
	border("ontario", "quebec")
	border("ontario", "western_united_states")
	border("ontario", "eastern_united_states")
	border("quebec", "eastern_united_states")
	border("western_united_states", "eastern_united_states")
	border("western_united_states", "central_america")
	border("eastern_united_states", "central_america")

	// South America
	border("central_america", "venezuela")
	border("venezuela", "brazil")
	border("venezuela", "peru")
	border("brazil", "peru")
	border("brazil", "argentina")
	border("peru", "argentina")

	// Europe
	border("greenland", "iceland")
	border("iceland", "great_britain")
	border("iceland", "scandinavia")
	border("great_britain", "scandinavia")
	border("great_britain", "northern_europe")
	border("great_britain", "western_europe")
	border("scandinavia", "northern_europe")
	border("scandinavia", "ukraine")
	border("northern_europe", "ukraine")
	border("northern_europe", "southern_europe")
	border("northern_europe", "western_europe")
	border("western_europe", "southern_europe")
	border("southern_europe", "ukraine")

	// Africa
	border("brazil", "north_africa")
	border("western_europe", "north_africa")
	border("southern_europe", "north_africa")
	border("southern_europe", "egypt")
	border("north_africa", "egypt")
	border("north_africa", "east_africa")
	border("north_africa", "congo")
	border("egypt", "east_africa")
	border("east_africa", "congo")
	border("east_africa", "south_africa")
	border("east_africa", "madagascar")
	border("congo", "south_africa")
	border("south_africa", "madagascar")

	// Asia
	border("ukraine", "ural")
	border("ukraine", "afghanistan")
	border("ukraine", "middle_east")
	border("southern_europe", "middle_east")
	border("egypt", "middle_east")
	border("east_africa", "middle_east")
	border("ural", "siberia")
	border("ural", "china")
	border("ural", "afghanistan")
	border("siberia", "yakutsk")
	border("siberia", "irkutsk")
	border("siberia", "mongolia")
	border("siberia", "china")
	border("yakutsk", "kamchatka")
	border("yakutsk", "irkutsk")
	border("kamchatka", "irkutsk")
	border("kamchatka", "mongolia")
	border("kamchatka", "japan")
	border("kamchatka", "alaska")
	border("irkutsk", "mongolia")
	border("mongolia", "japan")
	border("mongolia", "china")
	border("afghanistan", "china")
	border("afghanistan", "india")
	border("afghanistan", "middle_east")
	border("china", "india")
	border("china", "siam")
	border("middle_east", "india")
	border("india", "siam")

	// Australia
	border("siam", "indonesia")
	border("indonesia", "new_guinea")
	border("indonesia", "western_australia")
	border("new_guinea", "western_australia")
	border("new_guinea", "eastern_australia")
	border("western_australia", "eastern_australia")

	cont("north_america", 5,
		"alaska", "northwest_territory", "greenland", "alberta", "ontario",
		"quebec", "western_united_states", "eastern_united_states", "central_america")
	cont("south_america", 2, "venezuela", "brazil", "peru", "argentina")
	cont("europe", 5,
		"iceland", "great_britain", "scandinavia", "ukraine",
		"northern_europe", "western_europe", "southern_europe")
	cont("africa", 3,
		"north_africa", "egypt", "east_africa", "congo", "south_africa", "madagascar")
	cont("asia", 7,
		"ural", "siberia", "yakutsk", "kamchatka", "irkutsk", "mongolia",
		"japan", "afghanistan", "china", "middle_east", "india", "siam")
	cont("australia", 2,
		"indonesia", "new_guinea", "western_australia", "eastern_australia")

	return m
}
