// Package vendors maps vendor names to display colors for history
// charts. Rules are substring matches against the lower-cased vendor
// name, first match wins; unknown vendors get the gray fallback.
package vendors

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultFallback = "#9ca3af"

type Rule struct {
	Match string `yaml:"match"`
	Color string `yaml:"color"`
}

type Palette struct {
	rules    []Rule
	fallback string
}

type paletteFile struct {
	Fallback string `yaml:"fallback"`
	Rules    []Rule `yaml:"rules"`
}

// DefaultPalette returns the built-in rule set.
func DefaultPalette() *Palette {
	return &Palette{
		rules: []Rule{
			{Match: "elitehubs", Color: "#F5D649"},
			{Match: "ezpz", Color: "#FF6A00"},
			{Match: "vedant", Color: "#00A6FF"},
			{Match: "vishal", Color: "#5B3BEA"},
			{Match: "theitdepot", Color: "#FFA35A"},
			{Match: "the it depot", Color: "#FFA35A"},
			{Match: "scl gaming", Color: "#7CF8FF"},
			{Match: "sclgaming", Color: "#7CF8FF"},
			{Match: "mdcomputers", Color: "#FF3B2E"},
			{Match: "md computers", Color: "#FF3B2E"},
			{Match: "pcstudio", Color: "#E8D33A"},
			{Match: "pc studio", Color: "#E8D33A"},
			{Match: "shweta", Color: "#FF2A7A"},
			{Match: "amazon", Color: "#FF861F"},
			{Match: "best buy", Color: "#FFD21A"},
			{Match: "bestbuy", Color: "#FFD21A"},
			{Match: "micro", Color: "#1FE3D6"},
			{Match: "newegg", Color: "#4C8FFF"},
			{Match: "b&h", Color: "#FF7F2A"},
		},
		fallback: defaultFallback,
	}
}

// Load reads a palette definition from a YAML file. An empty path returns
// the built-in palette.
func Load(path string) (*Palette, error) {
	if path == "" {
		return DefaultPalette(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette file: %w", err)
	}

	var file paletteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse palette file %s: %w", path, err)
	}

	for i, rule := range file.Rules {
		if rule.Match == "" || rule.Color == "" {
			return nil, fmt.Errorf("palette rule at index %d must have match and color", i)
		}
	}

	p := &Palette{
		rules:    file.Rules,
		fallback: file.Fallback,
	}
	if p.fallback == "" {
		p.fallback = defaultFallback
	}
	return p, nil
}

// Color returns the display color for a vendor name.
func (p *Palette) Color(vendor string) string {
	v := strings.ToLower(vendor)
	for _, rule := range p.rules {
		if strings.Contains(v, rule.Match) {
			return rule.Color
		}
	}
	return p.fallback
}

func (p *Palette) RuleCount() int {
	return len(p.rules)
}
