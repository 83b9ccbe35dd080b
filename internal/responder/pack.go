// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responder

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed responses.yaml
var defaultPackData []byte

// MinFallbacks is the smallest fallback pool a pack may declare.
const MinFallbacks = 5

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrInvalidPack = errors.New("invalid response pack")
)

// =============================================================================
// PACK TYPES
// =============================================================================

// Rule maps a group of keywords to one fixed reply.
type Rule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Reply    string   `yaml:"reply"`
}

// Pack is the full set of canned text used by the assistant.
type Pack struct {
	Rules          []Rule   `yaml:"rules"`
	Fallbacks      []string `yaml:"fallbacks"`
	ScriptKeywords []string `yaml:"script_keywords"`
	Promo          string   `yaml:"promo"`
	Decline        string   `yaml:"decline"`
}

// DefaultPack returns a fresh copy of the embedded pack.
func DefaultPack() *Pack {
	p, err := ParsePack(defaultPackData)
	if err != nil {
		panic(fmt.Sprintf("responder: embedded pack: %v", err))
	}
	return p
}

// ParsePack decodes and validates a YAML pack. Keywords are normalised the
// same way messages are so matching is symmetric.
func ParsePack(data []byte) (*Pack, error) {
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}
	for i := range p.Rules {
		for j, kw := range p.Rules[i].Keywords {
			p.Rules[i].Keywords[j] = Normalize(kw)
		}
	}
	for i, kw := range p.ScriptKeywords {
		p.ScriptKeywords[i] = Normalize(kw)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadPack reads a YAML pack from path.
func LoadPack(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read response pack: %w", err)
	}
	return ParsePack(data)
}

// Validate checks that the pack can serve every reply the assistant needs.
func (p *Pack) Validate() error {
	if len(p.Rules) == 0 {
		return fmt.Errorf("%w: no rules", ErrInvalidPack)
	}
	for i, r := range p.Rules {
		if strings.TrimSpace(r.Reply) == "" {
			return fmt.Errorf("%w: rule %d (%s) has no reply", ErrInvalidPack, i, r.Name)
		}
		if len(r.Keywords) == 0 {
			return fmt.Errorf("%w: rule %d (%s) has no keywords", ErrInvalidPack, i, r.Name)
		}
		for _, kw := range r.Keywords {
			if kw == "" {
				return fmt.Errorf("%w: rule %d (%s) has an empty keyword", ErrInvalidPack, i, r.Name)
			}
		}
	}
	if len(p.Fallbacks) < MinFallbacks {
		return fmt.Errorf("%w: need at least %d fallbacks, got %d", ErrInvalidPack, MinFallbacks, len(p.Fallbacks))
	}
	if len(p.ScriptKeywords) == 0 {
		return fmt.Errorf("%w: no script keywords", ErrInvalidPack)
	}
	if p.Promo == "" || p.Decline == "" {
		return fmt.Errorf("%w: promo and decline text are required", ErrInvalidPack)
	}
	return nil
}
