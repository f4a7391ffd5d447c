package cli

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParsePatch turns key=value arguments into a patch map.
// Values are parsed as YAML flow scalars, so "count=3" yields an int,
// "rollIds=[a, b]" a list and "onSuccess={message: Hi}" a map.
func ParsePatch(args []string) (map[string]any, error) {
	patch := make(map[string]any, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q (want key=value)", arg)
		}
		if raw == "" {
			patch[key] = ""
			continue
		}
		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}
		patch[key] = value
	}
	return patch, nil
}
