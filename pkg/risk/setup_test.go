package risk

import (
	"reflect"
	"testing"
)

func twoSeats() []Seat {
	return []Seat{{Player: "alice"}, {Player: "bob"}}
}

func TestNewGame(t *testing.T) {
	rs := DefaultRuleset()
	gs, events, err := NewGame(twoSeats(), testMap(), &rs, "setup-seed")
	if err != nil {
		t.Fatal(err)
	}

	if gs.Turn.CurrentPlayer != "alice" || gs.Turn.Phase != PhaseReinforcement || gs.Turn.Round != 1 {
		t.Errorf("turn = %+v", gs.Turn)
	}
	if !reflect.DeepEqual(gs.TurnOrder, []PlayerID{"alice", "bob"}) {
		t.Errorf("turnOrder = %v", gs.TurnOrder)
	}
	if gs.StateVersion != 0 || gs.RulesetVersion != 1 {
		t.Errorf("versions = %d/%d", gs.StateVersion, gs.RulesetVersion)
	}

	// Every territory is owned and garrisoned; each player's armies sum to
	// the configured 40 for two players.
	totals := map[PlayerID]int{}
	for id, ts := range gs.Territories {
		if ts.Owner == "" {
			t.Errorf("territory %s has no owner", id)
		}
		if ts.Armies < 1 {
			t.Errorf("territory %s has %d armies", id, ts.Armies)
		}
		totals[ts.Owner] += ts.Armies
	}
	for _, p := range gs.TurnOrder {
		if totals[p] != 40 {
			t.Errorf("%s armies = %d, want 40", p, totals[p])
		}
	}
	if gs.OwnedTerritoryCount("alice") != 3 || gs.OwnedTerritoryCount("bob") != 3 {
		t.Errorf("territory split = %d/%d, want 3/3",
			gs.OwnedTerritoryCount("alice"), gs.OwnedTerritoryCount("bob"))
	}

	// Classic deck: one card per territory plus two wilds, all in the draw
	// pile, hands empty.
	if len(gs.Deck.Draw) != 8 || len(gs.Deck.Discard) != 0 {
		t.Errorf("deck = %d/%d, want 8/0", len(gs.Deck.Draw), len(gs.Deck.Discard))
	}
	for p, hand := range gs.Hands {
		if len(hand) != 0 {
			t.Errorf("%s starts with cards: %v", p, hand)
		}
	}

	if gs.Reinforcements == nil || gs.Reinforcements.Remaining < 3 {
		t.Errorf("reinforcements = %+v", gs.Reinforcements)
	}

	if len(events) != 2 || events[0].Type != EventSetupCompleted || events[1].Type != EventReinforcementsGranted {
		t.Fatalf("events = %+v", events)
	}
	sc := events[0].Data.(SetupCompleted)
	if sc.FirstTurn != "alice" {
		t.Errorf("firstTurn = %s", sc.FirstTurn)
	}
}

func TestNewGame_Deterministic(t *testing.T) {
	rs := DefaultRuleset()
	a, _, err := NewGame(twoSeats(), testMap(), &rs, "same-seed")
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := NewGame(twoSeats(), testMap(), &rs, "same-seed")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different games")
	}
}

func TestNewGame_RandomDistribution(t *testing.T) {
	rs := DefaultRuleset()
	rs.Setup.Distribution = DistributeRandom
	gs, _, err := NewGame(twoSeats(), testMap(), &rs, "random-dist")
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for _, ts := range gs.Territories {
		total += ts.Armies
	}
	if total != 80 {
		t.Errorf("total armies = %d, want 80", total)
	}
}

func TestNewGame_NeutralTerritories(t *testing.T) {
	rs := DefaultRuleset()
	rs.Setup.NeutralTerritories = 2
	rs.Setup.NeutralArmies = 3

	gs, _, err := NewGame(twoSeats(), testMap(), &rs, "neutral")
	if err != nil {
		t.Fatal(err)
	}
	neutral := 0
	for _, ts := range gs.Territories {
		if ts.Owner == Neutral {
			neutral++
			if ts.Armies != 3 {
				t.Errorf("neutral garrison = %d, want 3", ts.Armies)
			}
		}
	}
	if neutral != 2 {
		t.Errorf("neutral territories = %d, want 2", neutral)
	}
	if gs.OwnedTerritoryCount("alice")+gs.OwnedTerritoryCount("bob") != 4 {
		t.Error("players do not hold the remaining territories")
	}
}

func TestNewGame_Rejections(t *testing.T) {
	rs := DefaultRuleset()

	tests := []struct {
		name  string
		seats []Seat
		tweak func(*Ruleset)
	}{
		{"one player", []Seat{{Player: "alice"}}, nil},
		{"reserved id", []Seat{{Player: "alice"}, {Player: Neutral}}, nil},
		{"duplicate id", []Seat{{Player: "alice"}, {Player: "alice"}}, nil},
		{"no army table entry", []Seat{
			{Player: "p1"}, {Player: "p2"}, {Player: "p3"}, {Player: "p4"},
			{Player: "p5"}, {Player: "p6"}, {Player: "p7"},
		}, nil},
		{"all territories neutral", twoSeats(), func(r *Ruleset) {
			r.Setup.NeutralTerritories = 6
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := rs
			if tc.tweak != nil {
				tc.tweak(&r)
			}
			if _, _, err := NewGame(tc.seats, testMap(), &r, "x"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewGame_InvalidMap(t *testing.T) {
	rs := DefaultRuleset()
	m := testMap()
	m.Adjacency["a"] = append(m.Adjacency["a"], "f") // asymmetric
	if _, _, err := NewGame(twoSeats(), m, &rs, "x"); err == nil {
		t.Error("expected error for an invalid map")
	}
}

func TestNewGame_TeamsOnSeats(t *testing.T) {
	rs := DefaultRuleset()
	seats := []Seat{
		{Player: "alice", Team: "red"},
		{Player: "bob", Team: "blue"},
	}
	gs, _, err := NewGame(seats, testMap(), &rs, "teams")
	if err != nil {
		t.Fatal(err)
	}
	if gs.Players["alice"].TeamID != "red" || gs.Players["bob"].TeamID != "blue" {
		t.Errorf("teams = %+v", gs.Players)
	}
}
