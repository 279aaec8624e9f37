package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pvlab/pvassignments/pkg/poa"
)

var validate = validator.New()

// Validate checks the structure of a configuration. Physically odd panel values
// are left to PanelWarnings.
func Validate(c *ConfigData) error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Panels))
	for _, p := range c.Panels {
		if seen[p.Name] {
			return fmt.Errorf("duplicate panel name %q", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// PanelWarnings lists implausible panel orientations, keyed by panel name.
func (c *ConfigData) PanelWarnings() map[string][]poa.Warning {
	warnings := make(map[string][]poa.Warning)
	for _, p := range c.Panels {
		if w := p.Panel().Check(poa.Geometry{}); len(w) > 0 {
			warnings[p.Name] = w
		}
	}
	return warnings
}
