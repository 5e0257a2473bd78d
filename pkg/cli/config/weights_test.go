package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/civic-lab/fixpoint/pkg/cli/config"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
)

// writeWeightsFile writes a YAML weight table to a temp file and returns its path
func writeWeightsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weights.yml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadWeightsFromFile(t *testing.T) {
	t.Run("Valid table", func(t *testing.T) {
		path := writeWeightsFile(t, `
weights:
  - category: safety
    baseScore: 90
    multiplier: 1.6
    slaHours: 2
  - category: other
    baseScore: 35
    multiplier: 1.0
    slaHours: 48
`)
		cfg, err := config.LoadWeightsFromFile(path)
		gt.NoError(t, err)
		gt.Equal(t, 2, len(cfg.Weights))
		gt.Equal(t, types.CategorySafety, cfg.Weights[0].Category)
		gt.Equal(t, 90, cfg.Weights[0].BaseScore)
		gt.Equal(t, 1.6, cfg.Weights[0].Multiplier)
		gt.Equal(t, 2, cfg.Weights[0].SLAHours)
	})

	t.Run("File not found", func(t *testing.T) {
		_, err := config.LoadWeightsFromFile(filepath.Join(t.TempDir(), "missing.yml"))
		gt.Error(t, err)
	})

	t.Run("Empty path", func(t *testing.T) {
		_, err := config.LoadWeightsFromFile("")
		gt.Error(t, err)
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		path := writeWeightsFile(t, "weights: [not: {valid")
		_, err := config.LoadWeightsFromFile(path)
		gt.Error(t, err)
	})

	invalidTables := map[string]string{
		"Duplicate category": `
weights:
  - category: safety
    baseScore: 85
    multiplier: 1.5
    slaHours: 4
  - category: safety
    baseScore: 80
    multiplier: 1.4
    slaHours: 8
  - category: other
    baseScore: 35
    multiplier: 1.0
    slaHours: 48
`,
		"Missing fallback category": `
weights:
  - category: safety
    baseScore: 85
    multiplier: 1.5
    slaHours: 4
`,
		"Unknown category": `
weights:
  - category: teleportation
    baseScore: 50
    multiplier: 1.0
    slaHours: 24
  - category: other
    baseScore: 35
    multiplier: 1.0
    slaHours: 48
`,
		"Non-positive multiplier": `
weights:
  - category: other
    baseScore: 35
    multiplier: 0
    slaHours: 48
`,
		"Non-positive SLA hours": `
weights:
  - category: other
    baseScore: 35
    multiplier: 1.0
    slaHours: -1
`,
		"Base score out of range": `
weights:
  - category: other
    baseScore: 150
    multiplier: 1.0
    slaHours: 48
`,
		"Empty table": `
weights: []
`,
	}

	for name, content := range invalidTables {
		t.Run(name, func(t *testing.T) {
			path := writeWeightsFile(t, content)
			_, err := config.LoadWeightsFromFile(path)
			gt.Error(t, err)
		})
	}
}

func TestWeightsConfigure(t *testing.T) {
	t.Run("No path uses default table", func(t *testing.T) {
		var w config.Weights
		engine, err := w.Configure()
		gt.NoError(t, err)
		gt.Equal(t, len(types.Categories()), len(engine.Explain().CategoryWeights))
	})

	t.Run("Overrides feed the engine", func(t *testing.T) {
		w := config.Weights{Path: writeWeightsFile(t, `
weights:
  - category: landscaping
    baseScore: 95
    multiplier: 2.0
    slaHours: 1
  - category: other
    baseScore: 35
    multiplier: 1.0
    slaHours: 48
`)}
		engine, err := w.Configure()
		gt.NoError(t, err)

		var found bool
		for _, cw := range engine.Explain().CategoryWeights {
			if cw.Category == types.CategoryLandscaping {
				found = true
				gt.Equal(t, 95, cw.BaseScore)
				gt.Equal(t, 2.0, cw.Multiplier)
				gt.Equal(t, 1, cw.SLAHours)
			}
		}
		gt.True(t, found)
	})

	t.Run("Invalid table rejected", func(t *testing.T) {
		w := config.Weights{Path: writeWeightsFile(t, `
weights:
  - category: safety
    baseScore: 85
    multiplier: 1.5
    slaHours: 4
`)}
		_, err := w.Configure()
		gt.Error(t, err)
	})
}
