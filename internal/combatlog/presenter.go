// Package combatlog formats the previous turn's battle reports for display.
package combatlog

import (
	"github.com/gravitas-games/hexboard/pkg/models"
	"github.com/leonelquinteros/gotext"
)

// Names resolves buildables to display names.
type Names interface {
	Name(b models.Buildable) string
}

// Tone classifies a log line independently of its translated text.
type Tone int

const (
	// Sighting is a detection by one of our buildables.
	Sighting Tone = iota
	// Loss is one of our buildables destroyed.
	Loss
	// Kill is an enemy buildable destroyed.
	Kill
)

// Line is one sentence of an entry.
type Line struct {
	Text string
	Tone Tone
}

// Entry is one displayed report: a habitat heading and its sentences in
// the order the events happened.
type Entry struct {
	Habitat string
	Turn    int
	Title   string
	Lines   []Line
}

// Presenter turns battle reports into display entries. Sentences go through
// gotext so a loaded catalogue can translate them; without one the English
// format strings are used as is.
type Presenter struct {
	names Names
}

// NewPresenter creates a presenter over the given name source.
func NewPresenter(names Names) *Presenter {
	return &Presenter{names: names}
}

// Present returns the reports of the turn before currentTurn. Older reports
// stay in the log but are not shown.
func (p *Presenter) Present(currentTurn int, log []models.BattleReport) []Entry {
	var out []Entry
	for _, r := range log {
		if r.Turn != currentTurn-1 {
			continue
		}
		e := Entry{
			Habitat: r.Habitat,
			Turn:    r.Turn,
			Title:   gotext.Get("Battle report from %s, turn %d", r.Habitat, r.Turn),
			Lines:   make([]Line, 0, len(r.Events)),
		}
		// Events are stored newest first.
		for i := len(r.Events) - 1; i >= 0; i-- {
			if text := p.Sentence(r.Events[i]); text != "" {
				e.Lines = append(e.Lines, Line{Text: text, Tone: toneOf(r.Events[i])})
			}
		}
		out = append(out, e)
	}
	return out
}

// Sentence formats a single battle event.
func (p *Presenter) Sentence(ev models.BattleEvent) string {
	switch e := ev.(type) {
	case models.Detection:
		if models.IsUnit(e.Enemy) {
			return gotext.Get("Our %s detected an enemy %s.", p.name(e.Observer), p.name(e.Enemy))
		}
		return gotext.Get("Our %s found an enemy %s.", p.name(e.Observer), p.name(e.Enemy))
	case models.Destruction:
		if e.Owner == models.Human {
			return gotext.Get("Our %s was destroyed by %s.", p.name(e.Destroyed), attackDescription(e.Destroyer))
		}
		return gotext.Get("Enemy %s was destroyed by %s.", p.name(e.Destroyed), attackDescription(e.Destroyer))
	}
	return ""
}

func toneOf(ev models.BattleEvent) Tone {
	if d, ok := ev.(models.Destruction); ok {
		if d.Owner == models.Human {
			return Loss
		}
		return Kill
	}
	return Sighting
}

func (p *Presenter) name(b models.Buildable) string {
	if b == nil {
		return gotext.Get("unknown contact")
	}
	return p.names.Name(b)
}

// attackDescription names the weapon behind a destruction.
func attackDescription(destroyer models.Buildable) string {
	switch destroyer {
	case nil:
		return gotext.Get("enemy action")
	case models.AttackSubmarine:
		return gotext.Get("torpedoes from an attack submarine")
	case models.HunterKiller:
		return gotext.Get("wire-guided torpedoes from a hunter-killer")
	case models.TorpedoBattery:
		return gotext.Get("a habitat torpedo battery")
	}
	if models.IsUnit(destroyer) {
		return gotext.Get("submarine-based weapons")
	}
	return gotext.Get("habitat-based weapons")
}
