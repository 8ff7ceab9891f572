package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBuildable is returned when a buildable key names no known unit
// class or building.
var ErrUnknownBuildable = errors.New("models: unknown buildable")

// Buildable is either a UnitClass or a Building: the two things a habitat
// can produce.
type Buildable interface {
	// Key is the stable "unit:<class>" / "building:<kind>" form used by
	// dropdowns, scenarios and the wire protocol.
	Key() string
	isBuildable()
}

// UnitClass determines a unit's stats.
type UnitClass string

const (
	Explorer        UnitClass = "explorer"
	AttackSubmarine UnitClass = "attack_submarine"
	HunterKiller    UnitClass = "hunter_killer"
	ColonyPod       UnitClass = "colony_pod"
)

// UnitClasses lists every unit class in dropdown order.
var UnitClasses = []UnitClass{Explorer, AttackSubmarine, HunterKiller, ColonyPod}

// Key implements Buildable.
func (c UnitClass) Key() string { return "unit:" + string(c) }

func (UnitClass) isBuildable() {}

// Building is a structure constructed inside a habitat.
type Building string

const (
	SonarArray     Building = "sonar_array"
	TorpedoBattery Building = "torpedo_battery"
	Reactor        Building = "reactor"
	Hydroponics    Building = "hydroponics"
)

// Buildings lists every building in dropdown order.
var Buildings = []Building{SonarArray, TorpedoBattery, Reactor, Hydroponics}

// Key implements Buildable.
func (b Building) Key() string { return "building:" + string(b) }

func (Building) isBuildable() {}

// IsUnit reports whether b is a unit class.
func IsUnit(b Buildable) bool {
	_, ok := b.(UnitClass)
	return ok
}

// BuildableKeys returns the keys of every known buildable, units first.
func BuildableKeys() []string {
	keys := make([]string, 0, len(UnitClasses)+len(Buildings))
	for _, c := range UnitClasses {
		keys = append(keys, c.Key())
	}
	for _, b := range Buildings {
		keys = append(keys, b.Key())
	}
	return keys
}

// ParseBuildable resolves a key produced by Key. Only enumerated classes and
// buildings are accepted.
func ParseBuildable(key string) (Buildable, error) {
	kind, name, ok := strings.Cut(strings.TrimSpace(key), ":")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuildable, key)
	}
	switch kind {
	case "unit":
		for _, c := range UnitClasses {
			if string(c) == name {
				return c, nil
			}
		}
	case "building":
		for _, b := range Buildings {
			if string(b) == name {
				return b, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBuildable, key)
}

// parseAnyBuildable is ParseBuildable without the enumeration check, used
// when decoding archived logs that may mention classes added later.
func parseAnyBuildable(key string) (Buildable, error) {
	kind, name, ok := strings.Cut(strings.TrimSpace(key), ":")
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuildable, key)
	}
	switch kind {
	case "unit":
		return UnitClass(name), nil
	case "building":
		return Building(name), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBuildable, key)
}
