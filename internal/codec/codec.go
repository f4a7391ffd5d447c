// Package codec reads and writes the portable journey Config as JSON or YAML.
// Journey order in the document is preserved in both directions.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/dicejourney/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format names an encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}

// FormatForPath picks the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Encode writes cfg in the given format.
func Encode(cfg *domain.Config, format Format) ([]byte, error) {
	if cfg == nil {
		cfg = domain.NewConfig()
	}
	switch format {
	case YAML:
		return encodeYAML(cfg)
	default:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// Decode parses a Config document.
func Decode(data []byte, format Format) (*domain.Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidConfig)
	}
	switch format {
	case YAML:
		return decodeYAML(data)
	default:
		trimmed := bytes.TrimSpace(data)
		if trimmed[0] != '{' {
			return nil, fmt.Errorf("%w: expected a JSON object keyed by journey id", domain.ErrInvalidConfig)
		}
		cfg := domain.NewConfig()
		if err := json.Unmarshal(trimmed, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
		}
		return cfg, nil
	}
}

func encodeYAML(cfg *domain.Config) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for pair := cfg.Oldest(); pair != nil; pair = pair.Next() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key}
		value := &yaml.Node{}
		if err := value.Encode(pair.Value); err != nil {
			return nil, fmt.Errorf("encode yaml journey %s: %w", pair.Key, err)
		}
		root.Content = append(root.Content, key, value)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeYAML(data []byte) (*domain.Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping keyed by journey id", domain.ErrInvalidConfig)
	}

	cfg := domain.NewConfig()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		var j domain.Journey
		if err := root.Content[i+1].Decode(&j); err != nil {
			return nil, fmt.Errorf("%w: journey %s: %v", domain.ErrInvalidConfig, key, err)
		}
		cfg.Set(key, j)
	}
	return cfg, nil
}
