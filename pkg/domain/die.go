package domain

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// DieMode selects how a die total is classified.
type DieMode string

const (
	// ModeThreshold classifies the total as pass/fail against Die.Success.
	ModeThreshold DieMode = "threshold"
	// ModeRange classifies the total into one of Die.Ranges.
	ModeRange DieMode = "range"
)

// Die is a configurable random generator: Count dice of Value sides.
type Die struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name,omitempty" yaml:"name,omitempty"`
	Value int     `json:"value" yaml:"value"`
	Count int     `json:"count" yaml:"count"`
	Mode  DieMode `json:"mode,omitempty" yaml:"mode,omitempty"`

	// Threshold mode
	Success   *int      `json:"success,omitempty" yaml:"success,omitempty"`
	OnSuccess *Callback `json:"onSuccess,omitempty" yaml:"onSuccess,omitempty"`
	OnFailure *Callback `json:"onFailure,omitempty" yaml:"onFailure,omitempty"`

	// Range mode
	Ranges []Range `json:"ranges,omitempty" yaml:"ranges,omitempty"`
}

// EffectiveMode returns the die mode, treating an unset mode as threshold.
func (d Die) EffectiveMode() DieMode {
	if d.Mode == ModeRange {
		return ModeRange
	}
	return ModeThreshold
}

// Targets returns every roll id the die can branch to, across all outcomes.
func (d Die) Targets() []string {
	var out []string
	if d.EffectiveMode() == ModeRange {
		for _, r := range d.Ranges {
			out = append(out, r.RollIDs...)
		}
		return out
	}
	if d.OnSuccess != nil {
		out = append(out, d.OnSuccess.RollIDs...)
	}
	if d.OnFailure != nil {
		out = append(out, d.OnFailure.RollIDs...)
	}
	return out
}

// Callback carries the message of an outcome and the rolls it fans out to.
// Every listed roll fires; it is not a choice.
type Callback struct {
	Message string   `json:"message" yaml:"message"`
	RollIDs []string `json:"rollIds,omitempty" yaml:"rollIds,omitempty"`
}

// UnmarshalJSON accepts the legacy single "rollId" field alongside "rollIds".
func (c *Callback) UnmarshalJSON(data []byte) error {
	type plain Callback
	var raw struct {
		plain
		RollID string `json:"rollId"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Callback(raw.plain)
	c.foldLegacy(raw.RollID)
	return nil
}

// UnmarshalYAML accepts the legacy single "rollId" field alongside "rollIds".
func (c *Callback) UnmarshalYAML(value *yaml.Node) error {
	type plain Callback
	var raw struct {
		plain  `yaml:",inline"`
		RollID string `yaml:"rollId"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*c = Callback(raw.plain)
	c.foldLegacy(raw.RollID)
	return nil
}

func (c *Callback) foldLegacy(rollID string) {
	if rollID == "" {
		return
	}
	for _, id := range c.RollIDs {
		if id == rollID {
			return
		}
	}
	c.RollIDs = append([]string{rollID}, c.RollIDs...)
}

// Range is one bucket of a range-mode die. Bounds are inclusive.
type Range struct {
	ID      string   `json:"id" yaml:"id"`
	Min     int      `json:"min" yaml:"min"`
	Max     int      `json:"max" yaml:"max"`
	Label   string   `json:"label,omitempty" yaml:"label,omitempty"`
	Message string   `json:"message,omitempty" yaml:"message,omitempty"`
	RollIDs []string `json:"rollIds,omitempty" yaml:"rollIds,omitempty"`
}

// Contains reports whether total falls inside the range.
func (r Range) Contains(total int) bool {
	return r.Min <= total && total <= r.Max
}

// Overlaps reports whether two ranges share at least one total.
func (r Range) Overlaps(o Range) bool {
	return r.Min <= o.Max && o.Min <= r.Max
}

// IntPtr is a convenience for building threshold dice.
func IntPtr(v int) *int {
	return &v
}
