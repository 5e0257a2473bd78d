package model

import (
	"github.com/civic-lab/fixpoint/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// CategoryWeight defines scoring parameters for one category
type CategoryWeight struct {
	Category   types.Category `yaml:"category"`   // Category identifier
	BaseScore  int            `yaml:"baseScore"`  // Baseline urgency (0-100)
	Multiplier float64        `yaml:"multiplier"` // Severity/aggregate multiplier
	SLAHours   int            `yaml:"slaHours"`   // Baseline resolution target in hours
}

// Validate validates the category weight entry
func (w *CategoryWeight) Validate() error {
	if !w.Category.IsValid() {
		return goerr.New("unknown category", goerr.V("category", w.Category))
	}
	if w.BaseScore < 0 || w.BaseScore > 100 {
		return goerr.New("base score must be between 0 and 100",
			goerr.V("baseScore", w.BaseScore))
	}
	if w.Multiplier <= 0 {
		return goerr.New("multiplier must be positive",
			goerr.V("multiplier", w.Multiplier))
	}
	if w.SLAHours <= 0 {
		return goerr.New("SLA hours must be positive",
			goerr.V("slaHours", w.SLAHours))
	}
	return nil
}

// WeightsConfig represents a category weight table loaded from configuration
type WeightsConfig struct {
	Weights []CategoryWeight `yaml:"weights"`
}

// Validate validates the weights configuration. The table must cover the
// fallback category so scoring stays total.
func (c *WeightsConfig) Validate() error {
	if len(c.Weights) == 0 {
		return goerr.New("at least one category weight is required")
	}

	seen := make(map[types.Category]bool)
	hasOther := false
	for i, w := range c.Weights {
		if err := w.Validate(); err != nil {
			return goerr.Wrap(err, "invalid category weight at index",
				goerr.V("index", i),
				goerr.V("category", w.Category))
		}

		if seen[w.Category] {
			return goerr.New("duplicate category weight",
				goerr.V("category", w.Category))
		}
		seen[w.Category] = true

		if w.Category == types.CategoryOther {
			hasOther = true
		}
	}

	if !hasOther {
		return goerr.New("weight table must include the fallback category",
			goerr.V("category", types.CategoryOther))
	}

	return nil
}

// Table converts the configuration to a lookup map
func (c *WeightsConfig) Table() map[types.Category]CategoryWeight {
	table := make(map[types.Category]CategoryWeight, len(c.Weights))
	for _, w := range c.Weights {
		table[w.Category] = w
	}
	return table
}
