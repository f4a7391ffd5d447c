package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Patch returns current with the top-level fields named in patch replaced
// (a shallow merge; nested values are swapped whole). Keys use the JSON field
// names; values are weakly typed, so "12" is accepted for an int field.
// Unknown keys are ignored.
func Patch[T any](current T, patch map[string]any) (T, error) {
	var out T

	raw, err := json.Marshal(current)
	if err != nil {
		return out, fmt.Errorf("failed to encode value: %w", err)
	}
	merged := make(map[string]any)
	if err := json.Unmarshal(raw, &merged); err != nil {
		return out, fmt.Errorf("failed to decode value: %w", err)
	}
	for k, v := range patch {
		merged[k] = v
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Squash:           true,
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(merged); err != nil {
		return out, fmt.Errorf("invalid patch: %w", err)
	}
	return out, nil
}
