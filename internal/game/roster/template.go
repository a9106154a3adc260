// Package roster loads fighter definitions from YAML and builds combatants
// from them.
package roster

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/brawl/internal/game/archetype"
	"github.com/cory-johannsen/brawl/internal/game/combat"
)

// Special names and describes a fighter's signature move.
type Special struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Stats holds a fighter's numeric profile.
type Stats struct {
	MaxHealth        int `yaml:"max_health"`
	ResourceMax      int `yaml:"resource_max"`
	AttackPower      int `yaml:"attack_power"`
	// DefensePower is carried for profiles only; no damage rule uses it.
	DefensePower     int `yaml:"defense_power"`
	SpecialPower     int `yaml:"special_power"`
	SpecialCost      int `yaml:"special_cost"`
	StartingResource int `yaml:"starting_resource"`
}

// Template defines a selectable fighter loaded from YAML.
type Template struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Nationality string  `yaml:"nationality"`
	Background  string  `yaml:"background"`
	Archetype   string  `yaml:"archetype"`
	Special     Special `yaml:"special"`
	Stats       Stats   `yaml:"stats"`
	// Script is the scripting key whose hooks refine the archetype; empty = none.
	Script string `yaml:"script"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Archetype is a
// registered archetype id, and no stat is negative; returns an error on the
// first violation otherwise. Zero stats are allowed and take the combat
// fallbacks.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("fighter template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("fighter template %q: name must not be empty", t.ID)
	}
	if _, err := archetype.New(t.Archetype, combat.SpecialMove{}); err != nil {
		return fmt.Errorf("fighter template %q: %w", t.ID, err)
	}
	stats := map[string]int{
		"max_health":        t.Stats.MaxHealth,
		"resource_max":      t.Stats.ResourceMax,
		"attack_power":      t.Stats.AttackPower,
		"defense_power":     t.Stats.DefensePower,
		"special_power":     t.Stats.SpecialPower,
		"special_cost":      t.Stats.SpecialCost,
		"starting_resource": t.Stats.StartingResource,
	}
	for _, name := range []string{"max_health", "resource_max", "attack_power", "defense_power", "special_power", "special_cost", "starting_resource"} {
		if stats[name] < 0 {
			return fmt.Errorf("fighter template %q: %s must be >= 0", t.ID, name)
		}
	}
	return nil
}

// Profile converts the template into the combat profile it describes.
func (t *Template) Profile() combat.Profile {
	return combat.Profile{
		Name:             t.Name,
		Nationality:      t.Nationality,
		Background:       t.Background,
		MaxHealth:        t.Stats.MaxHealth,
		ResourceMax:      t.Stats.ResourceMax,
		AttackPower:      t.Stats.AttackPower,
		DefensePower:     t.Stats.DefensePower,
		SpecialMovePower: t.Stats.SpecialPower,
		SpecialMoveCost:  t.Stats.SpecialCost,
		StartingResource: t.Stats.StartingResource,
	}
}

// NewCombatant builds a fresh combatant from the template. When the template
// names a script and hooks is non-nil, the archetype is wrapped so the
// script's hooks apply.
//
// Postcondition: Returns a combatant at full health and starting resource,
// or an error if the archetype id is unknown.
func (t *Template) NewCombatant(hooks archetype.HookCaller) (*combat.Combatant, error) {
	behavior, err := archetype.New(t.Archetype, combat.SpecialMove{
		Name:        t.Special.Name,
		Description: t.Special.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("fighter %q: %w", t.ID, err)
	}
	if t.Script != "" && hooks != nil {
		behavior = archetype.NewScripted(behavior, hooks, t.Script)
	}
	return combat.NewCombatant(t.Profile(), behavior), nil
}

// LoadTemplateFromBytes parses a single fighter template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing fighter YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading fighter dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
