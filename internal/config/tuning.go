package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/atelier-ops/content-engine/internal/models"
	"github.com/atelier-ops/content-engine/internal/queue"
	"github.com/atelier-ops/content-engine/internal/scoring"
)

// tuningFile mirrors the YAML tuning document. Pointer fields distinguish
// "absent" from zero.
type tuningFile struct {
	Similarity struct {
		Threshold *float64 `yaml:"threshold"`
		GramSize  *int     `yaml:"gram_size"`
	} `yaml:"similarity"`
	Balance struct {
		Window   *int     `yaml:"window"`
		MaxShare *float64 `yaml:"max_share"`
		MinPosts *int     `yaml:"min_posts"`
	} `yaml:"balance"`
	Planner struct {
		WeeksAhead *int `yaml:"weeks_ahead"`
	} `yaml:"planner"`
	Queue struct {
		MaxDerivatives *int                                `yaml:"max_derivatives"`
		Plans          map[models.AssetType]queue.TypePlan `yaml:"plans"`
	} `yaml:"queue"`
	Vocabulary *scoring.Vocabulary `yaml:"vocabulary"`
}

func applyTuningFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read tuning file: %w", err)
	}

	var t tuningFile
	if err := yaml.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("failed to parse tuning file %s: %w", path, err)
	}

	e := &cfg.Engine
	setFloat(&e.SimilarityThreshold, t.Similarity.Threshold)
	setInt(&e.GramSize, t.Similarity.GramSize)
	setInt(&e.BalanceWindow, t.Balance.Window)
	setFloat(&e.BalanceMaxShare, t.Balance.MaxShare)
	setInt(&e.BalanceMinPosts, t.Balance.MinPosts)
	setInt(&e.WeeksAhead, t.Planner.WeeksAhead)
	setInt(&e.MaxDerivatives, t.Queue.MaxDerivatives)

	// plans merge per asset type; the vocabulary replaces the default whole
	for assetType, plan := range t.Queue.Plans {
		e.Plans[assetType] = plan
	}
	if t.Vocabulary != nil {
		e.Vocabulary = *t.Vocabulary
	}

	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
