package combatlog

import (
	"testing"

	"github.com/gravitas-games/hexboard/internal/stats"
	"github.com/gravitas-games/hexboard/pkg/models"
)

func TestPresentShowsOnlyPreviousTurn(t *testing.T) {
	log := []models.BattleReport{
		{Habitat: "Alpha", Turn: 1, Events: []models.BattleEvent{models.Detection{Observer: models.SonarArray, Enemy: models.Explorer}}},
		{Habitat: "Alpha", Turn: 2, Events: []models.BattleEvent{models.Detection{Observer: models.SonarArray, Enemy: models.HunterKiller}}},
		{Habitat: "Alpha", Turn: 3, Events: []models.BattleEvent{models.Detection{Observer: models.SonarArray, Enemy: models.ColonyPod}}},
	}
	entries := NewPresenter(stats.Default()).Present(3, log)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Turn != 2 {
		t.Fatalf("expected turn 2, got %d", entries[0].Turn)
	}
	if want := "Our Sonar Array detected an enemy Hunter-Killer."; entries[0].Lines[0].Text != want {
		t.Fatalf("expected %q, got %q", want, entries[0].Lines[0].Text)
	}
	if want := "Battle report from Alpha, turn 2"; entries[0].Title != want {
		t.Fatalf("expected title %q, got %q", want, entries[0].Title)
	}
}

func TestPresentRestoresChronologicalOrder(t *testing.T) {
	var r models.BattleReport
	r.Habitat = "Beta"
	r.Turn = 4
	r.Prepend(models.Detection{Observer: models.Explorer, Enemy: models.AttackSubmarine})
	r.Prepend(models.Destruction{Owner: models.Computer, Destroyed: models.AttackSubmarine, Destroyer: models.HunterKiller})

	entries := NewPresenter(stats.Default()).Present(5, []models.BattleReport{r})
	if len(entries) != 1 || len(entries[0].Lines) != 2 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	want := []Line{
		{Text: "Our Explorer detected an enemy Attack Submarine.", Tone: Sighting},
		{Text: "Enemy Attack Submarine was destroyed by wire-guided torpedoes from a hunter-killer.", Tone: Kill},
	}
	for i, line := range entries[0].Lines {
		if line != want[i] {
			t.Errorf("line %d: expected %+v, got %+v", i, want[i], line)
		}
	}
}

func TestLineToneIgnoresWording(t *testing.T) {
	log := []models.BattleReport{{Habitat: "Gamma", Turn: 1, Events: []models.BattleEvent{
		models.Destruction{Owner: models.Computer, Destroyed: models.Explorer},
		models.Destruction{Owner: models.Human, Destroyed: models.ColonyPod, Destroyer: models.HunterKiller},
	}}}
	entries := NewPresenter(stats.Default()).Present(2, log)
	if len(entries) != 1 || len(entries[0].Lines) != 2 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if got := entries[0].Lines[0].Tone; got != Loss {
		t.Errorf("expected our loss first, got tone %d", got)
	}
	if got := entries[0].Lines[1].Tone; got != Kill {
		t.Errorf("expected enemy kill second, got tone %d", got)
	}
}

func TestPresentEmptyLog(t *testing.T) {
	if entries := NewPresenter(stats.Default()).Present(1, nil); len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestSentence(t *testing.T) {
	p := NewPresenter(stats.Default())
	cases := []struct {
		name string
		ev   models.BattleEvent
		want string
	}{
		{"detect building", models.Detection{Observer: models.HunterKiller, Enemy: models.Reactor},
			"Our Hunter-Killer found an enemy Reactor."},
		{"destroyed by submarine", models.Destruction{Owner: models.Human, Destroyed: models.Explorer, Destroyer: models.AttackSubmarine},
			"Our Explorer was destroyed by torpedoes from an attack submarine."},
		{"destroyed by battery", models.Destruction{Owner: models.Computer, Destroyed: models.HunterKiller, Destroyer: models.TorpedoBattery},
			"Enemy Hunter-Killer was destroyed by a habitat torpedo battery."},
		{"unattributed", models.Destruction{Owner: models.Human, Destroyed: models.ColonyPod},
			"Our Colony Pod was destroyed by enemy action."},
		{"other unit", models.Destruction{Owner: models.Human, Destroyed: models.Explorer, Destroyer: models.ColonyPod},
			"Our Explorer was destroyed by submarine-based weapons."},
		{"other building", models.Destruction{Owner: models.Human, Destroyed: models.Explorer, Destroyer: models.SonarArray},
			"Our Explorer was destroyed by habitat-based weapons."},
	}
	for _, c := range cases {
		if got := p.Sentence(c.ev); got != c.want {
			t.Errorf("%s: expected %q, got %q", c.name, c.want, got)
		}
	}
}
