package domain

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Journey is a named collection of Rolls forming a branching decision tree.
type Journey struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Rolls []Roll `json:"rolls" yaml:"rolls"`
}

// Roll is one decision point in a journey.
type Roll struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Dice []Die  `json:"dice" yaml:"dice"`
}

// PositionedRoll is a Roll annotated with its builder canvas position.
type PositionedRoll struct {
	Roll `yaml:",inline"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
}

// PositionedJourney is the builder's view of a Journey.
type PositionedJourney struct {
	ID    string           `json:"id" yaml:"id"`
	Name  string           `json:"name" yaml:"name"`
	Rolls []PositionedRoll `json:"rolls" yaml:"rolls"`
}

// Config is the portable exchange format: journeys keyed by id, in declaration order.
type Config = orderedmap.OrderedMap[string, Journey]

// NewConfig returns an empty Config.
func NewConfig() *Config {
	return orderedmap.New[string, Journey]()
}

// Roll returns the roll with the given id.
func (j Journey) Roll(id string) (Roll, bool) {
	for _, r := range j.Rolls {
		if r.ID == id {
			return r, true
		}
	}
	return Roll{}, false
}

// HasRoll reports whether the journey contains a roll with the given id.
func (j Journey) HasRoll(id string) bool {
	_, ok := j.Roll(id)
	return ok
}

// Strip drops builder positions.
func (j PositionedJourney) Strip() Journey {
	rolls := make([]Roll, len(j.Rolls))
	for i, r := range j.Rolls {
		rolls[i] = r.Roll
	}
	return Journey{ID: j.ID, Name: j.Name, Rolls: rolls}
}

// RollIndex returns the position of the roll with the given id, or -1.
func (j PositionedJourney) RollIndex(id string) int {
	for i, r := range j.Rolls {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// DieIndex returns the position of the die with the given id, or -1.
func (r Roll) DieIndex(id string) int {
	for i, d := range r.Dice {
		if d.ID == id {
			return i
		}
	}
	return -1
}
