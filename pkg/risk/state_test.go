package risk

import (
	"reflect"
	"testing"
)

func TestClone_DeepAndEqual(t *testing.T) {
	st := testState()
	st.Pending = &PendingOccupy{From: "a", To: "d", MinMove: 1, MaxMove: 3}
	st.Hands["alice"] = []CardID{"card_0"}
	st.Deck.Discard = []CardID{"card_1"}

	c := st.Clone()
	if !reflect.DeepEqual(st, c) {
		t.Fatal("clone differs from original")
	}

	c.Territories["a"] = TerritoryState{Owner: "bob", Armies: 1}
	c.Players["alice"] = PlayerState{Status: StatusDefeated}
	c.TurnOrder[0] = "bob"
	c.Pending.MinMove = 9
	c.Reinforcements.Sources["north"] = 99
	c.Hands["alice"] = append(c.Hands["alice"], "card_2")
	c.Deck.Draw[0] = "other"

	if st.Territories["a"].Owner != "alice" ||
		st.Players["alice"].Status != StatusAlive ||
		st.TurnOrder[0] != "alice" ||
		st.Pending.MinMove != 1 ||
		st.Reinforcements.Sources["north"] != 3 ||
		len(st.Hands["alice"]) != 1 ||
		st.Deck.Draw[0] != "card_0" {
		t.Error("mutating the clone changed the original")
	}
}

func TestClone_PreservesNils(t *testing.T) {
	st := testState()
	st.Pending = nil
	st.Reinforcements = nil
	st.Deck.Discard = nil
	st.Hands["bob"] = nil

	c := st.Clone()
	if c.Pending != nil || c.Reinforcements != nil || c.Deck.Discard != nil {
		t.Error("clone materialized nil fields")
	}
	if c.Hands["bob"] != nil {
		t.Error("clone materialized a nil hand as an empty slice")
	}
	if !reflect.DeepEqual(st, c) {
		t.Error("clone with nil hand differs from original")
	}
}

func TestAlivePlayers(t *testing.T) {
	st := testState()
	st.Players["carol"] = PlayerState{Status: StatusDefeated}
	st.TurnOrder = []PlayerID{"alice", "carol", "bob"}

	got := st.AlivePlayers()
	want := []PlayerID{"alice", "bob"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("alive = %v, want %v", got, want)
	}
}

func TestOwnedTerritories(t *testing.T) {
	st := testState()
	if got := st.OwnedTerritoryCount("alice"); got != 3 {
		t.Errorf("count = %d, want 3", got)
	}
	if got := len(st.OwnedTerritories("bob")); got != 3 {
		t.Errorf("bob owns %d, want 3", got)
	}
	if got := st.OwnedTerritoryCount("mallory"); got != 0 {
		t.Errorf("unknown player owns %d", got)
	}
}

func TestIsTerminal(t *testing.T) {
	st := testState()
	if st.IsTerminal() {
		t.Error("mid-game state reported terminal")
	}
	st.Turn.Phase = PhaseGameOver
	if !st.IsTerminal() {
		t.Error("gameOver state not terminal")
	}
}
