package models

import (
	"encoding/json"
	"fmt"
)

// BattleEvent is one entry of a battle report: Detection or Destruction.
type BattleEvent interface {
	isBattleEvent()
}

// Detection records that one of our buildables spotted an enemy one.
type Detection struct {
	Observer Buildable
	Enemy    Buildable
}

// Destruction records a destroyed buildable. Destroyer is nil when no
// attacker can be attributed.
type Destruction struct {
	Owner     Side
	Destroyed Buildable
	Destroyer Buildable
}

func (Detection) isBattleEvent()   {}
func (Destruction) isBattleEvent() {}

// BattleReport is the append-only log of one habitat for one turn. Events
// are stored newest first.
type BattleReport struct {
	Habitat string
	Turn    int
	Events  []BattleEvent
}

// Prepend adds an event in storage order.
func (r *BattleReport) Prepend(e BattleEvent) {
	r.Events = append([]BattleEvent{e}, r.Events...)
}

// EventRecord is the flat, serialisable form of a BattleEvent.
type EventRecord struct {
	Kind      string `json:"kind" yaml:"kind"`
	Observer  string `json:"observer,omitempty" yaml:"observer,omitempty"`
	Enemy     string `json:"enemy,omitempty" yaml:"enemy,omitempty"`
	Owner     string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Destroyed string `json:"destroyed,omitempty" yaml:"destroyed,omitempty"`
	Destroyer string `json:"destroyer,omitempty" yaml:"destroyer,omitempty"`
}

// ReportRecord is the flat, serialisable form of a BattleReport.
type ReportRecord struct {
	Habitat string        `json:"habitat" yaml:"habitat"`
	Turn    int           `json:"turn" yaml:"turn"`
	Events  []EventRecord `json:"events" yaml:"events"`
}

// Record converts an event to its flat form.
func Record(e BattleEvent) EventRecord {
	switch ev := e.(type) {
	case Detection:
		return EventRecord{Kind: "detection", Observer: keyOf(ev.Observer), Enemy: keyOf(ev.Enemy)}
	case Destruction:
		return EventRecord{
			Kind:      "destruction",
			Owner:     ev.Owner.String(),
			Destroyed: keyOf(ev.Destroyed),
			Destroyer: keyOf(ev.Destroyer),
		}
	}
	return EventRecord{}
}

// Event converts a flat record back to a BattleEvent.
func (r EventRecord) Event() (BattleEvent, error) {
	switch r.Kind {
	case "detection":
		observer, err := parseAnyBuildable(r.Observer)
		if err != nil {
			return nil, fmt.Errorf("failed to parse observer: %w", err)
		}
		enemy, err := parseAnyBuildable(r.Enemy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse enemy: %w", err)
		}
		return Detection{Observer: observer, Enemy: enemy}, nil
	case "destruction":
		owner, err := ParseSide(r.Owner)
		if err != nil {
			return nil, err
		}
		destroyed, err := parseAnyBuildable(r.Destroyed)
		if err != nil {
			return nil, fmt.Errorf("failed to parse destroyed: %w", err)
		}
		ev := Destruction{Owner: owner, Destroyed: destroyed}
		if r.Destroyer != "" {
			if ev.Destroyer, err = parseAnyBuildable(r.Destroyer); err != nil {
				return nil, fmt.Errorf("failed to parse destroyer: %w", err)
			}
		}
		return ev, nil
	default:
		return nil, fmt.Errorf("unknown battle event kind %q", r.Kind)
	}
}

// Record converts a report to its flat form, keeping storage order.
func (r BattleReport) Record() ReportRecord {
	out := ReportRecord{Habitat: r.Habitat, Turn: r.Turn, Events: make([]EventRecord, 0, len(r.Events))}
	for _, e := range r.Events {
		out.Events = append(out.Events, Record(e))
	}
	return out
}

// Report converts a flat record back to a BattleReport.
func (r ReportRecord) Report() (BattleReport, error) {
	out := BattleReport{Habitat: r.Habitat, Turn: r.Turn}
	for i, rec := range r.Events {
		e, err := rec.Event()
		if err != nil {
			return BattleReport{}, fmt.Errorf("event %d: %w", i, err)
		}
		out.Events = append(out.Events, e)
	}
	return out, nil
}

// MarshalJSON encodes the report through its flat record.
func (r BattleReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Record())
}

// UnmarshalJSON decodes the flat record form.
func (r *BattleReport) UnmarshalJSON(data []byte) error {
	var rec ReportRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	rep, err := rec.Report()
	if err != nil {
		return err
	}
	*r = rep
	return nil
}

func keyOf(b Buildable) string {
	if b == nil {
		return ""
	}
	return b.Key()
}
