package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/travigo/hkmtr/pkg/fares"
	"github.com/travigo/hkmtr/pkg/network"
	"github.com/travigo/hkmtr/pkg/resolver"
	"github.com/travigo/hkmtr/pkg/util"
	"gopkg.in/yaml.v3"
)

// Planner holds the resolver tuning, amounts are in Hong Kong dollars
type Planner struct {
	InterchangePenalty float64 `yaml:"interchange_penalty" validate:"gte=0"`
	FareUnit           float64 `yaml:"fare_unit" validate:"gt=0"`
	FareTolerance      float64 `yaml:"fare_tolerance" validate:"gte=0"`

	FareRules map[string]string `yaml:"fare_rules" validate:"dive,keys,oneof=student child single,endkeys,required"`

	Cache PlannerCache `yaml:"cache"`
}

type PlannerCache struct {
	Enabled    bool          `yaml:"enabled"`
	Expiration time.Duration `yaml:"expiration" validate:"gte=0"`
}

func DefaultPlanner() Planner {
	return Planner{
		FareUnit: 0.1,
		Cache: PlannerCache{
			Expiration: 24 * time.Hour,
		},
	}
}

// LoadPlanner reads the planner file named by HKMTR_PLANNER_CONFIG, or planner.yaml in the data directory.
// A missing default file is not an error and gives the defaults.
func LoadPlanner() (Planner, error) {
	defaultPath := filepath.Join(util.GetDataDirectory(), "planner.yaml")
	path := defaultPath

	env := util.GetEnvironmentVariables()
	if env["HKMTR_PLANNER_CONFIG"] != "" {
		path = env["HKMTR_PLANNER_CONFIG"]
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && path == defaultPath {
		return DefaultPlanner(), nil
	} else if err != nil {
		return Planner{}, err
	}

	return ParsePlanner(data)
}

func ParsePlanner(data []byte) (Planner, error) {
	planner := DefaultPlanner()

	if err := yaml.Unmarshal(data, &planner); err != nil {
		return Planner{}, fmt.Errorf("parsing planner config: %w", err)
	}

	v := validator.New()
	if err := v.Struct(planner); err != nil {
		return Planner{}, fmt.Errorf("validating planner config: %w", err)
	}

	if network.CostFromFloat(planner.FareUnit) <= 0 {
		return Planner{}, fmt.Errorf("fare_unit %v is below one cent: %w", planner.FareUnit, network.ErrInvalidData)
	}
	if planner.InterchangePenalty > network.MaxCost.Float64() || planner.FareTolerance > network.MaxCost.Float64() {
		return Planner{}, fmt.Errorf("planner amounts must not exceed %s: %w", network.MaxCost, network.ErrInvalidData)
	}

	return planner, nil
}

// ResolverOptions turns the config into resolver options, compiling the fare rules
func (p Planner) ResolverOptions() (resolver.Options, error) {
	definitions := map[fares.Class]string{}
	for class, code := range p.FareRules {
		definitions[fares.Class(class)] = code
	}

	rules, err := fares.CompileRules(definitions)
	if err != nil {
		return resolver.Options{}, err
	}

	return resolver.Options{
		InterchangePenalty: network.CostFromFloat(p.InterchangePenalty),
		FareUnit:           network.CostFromFloat(p.FareUnit),
		FareTolerance:      network.CostFromFloat(p.FareTolerance),
		Rules:              rules,
	}, nil
}
