// Package config loads and validates the engine's runtime configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kairosplan/kairos/internal/domain"
)

// EnvWeights is the environment variable that overrides configured domain
// weights, in "domain:weight,domain:weight" form.
const EnvWeights = "KAIROS_DOMAIN_WEIGHTS"

// Config holds the engine's runtime configuration.
type Config struct {
	DBPath           string             `yaml:"db_path"`
	Weights          map[string]float64 `yaml:"weights"`
	MaxDomainTasks   int                `yaml:"max_domain_tasks"`
	ReportWindowDays int                `yaml:"report_window_days"`
	LogLevel         string             `yaml:"log_level"`
}

// Load reads a YAML config file, applies the environment weight override
// and defaults, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}

	if spec := os.Getenv(EnvWeights); spec != "" {
		weights, err := ParseWeightSpec(spec)
		if err != nil {
			return nil, err
		}
		cfg.Weights = weights
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ParseWeightSpec parses a "domain:weight,domain:weight" string into a
// weight map. Malformed entries and unknown domains are configuration
// errors, never silently dropped.
func ParseWeightSpec(spec string) (map[string]float64, error) {
	weights := make(map[string]float64)
	for _, item := range strings.Split(spec, ",") {
		name, raw, ok := strings.Cut(strings.TrimSpace(item), ":")
		if !ok {
			return nil, configError(fmt.Sprintf("weight entry %q is not domain:weight", item))
		}
		d, err := domain.ParseDomain(name)
		if err != nil {
			return nil, err
		}
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, configError(fmt.Sprintf("weight for %s: %v", name, err))
		}
		weights[string(d)] = w
	}
	return weights, nil
}

// DomainWeights converts the configured weight map to domain keys.
// Load has already validated membership, so this cannot fail after Load.
func (c *Config) DomainWeights() map[domain.Domain]float64 {
	out := make(map[domain.Domain]float64, len(c.Weights))
	for name, w := range c.Weights {
		out[domain.Domain(name)] = w
	}
	return out
}

func (c *Config) applyDefaults() {
	if c.Weights == nil {
		c.Weights = map[string]float64{
			string(domain.DomainWork):        1.0,
			string(domain.DomainLifeAdmin):   0.8,
			string(domain.DomainGeneralLife): 0.6,
		}
	}
	if c.MaxDomainTasks == 0 {
		c.MaxDomainTasks = 100
	}
	if c.ReportWindowDays == 0 {
		c.ReportWindowDays = 7
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) validate() error {
	var problems []string

	if c.DBPath == "" {
		problems = append(problems, "db_path is required")
	}
	if c.MaxDomainTasks < 1 {
		problems = append(problems, "max_domain_tasks must be at least 1")
	}
	if c.ReportWindowDays < 1 {
		problems = append(problems, "report_window_days must be at least 1")
	}
	for name := range c.Weights {
		if !domain.Domain(name).Known() {
			problems = append(problems, fmt.Sprintf("unknown domain %q in weights", name))
		}
	}
	for _, d := range domain.Domains() {
		w, ok := c.Weights[string(d)]
		if !ok {
			problems = append(problems, fmt.Sprintf("missing weight for domain %s", d))
		} else if w <= 0 {
			problems = append(problems, fmt.Sprintf("weight for %s must be positive", d))
		}
	}

	if len(problems) > 0 {
		return configError(fmt.Sprintf("%v", problems))
	}
	return nil
}

func configError(detail string) *domain.EngineError {
	return &domain.EngineError{
		Code:    domain.ErrConfigInvalid.Code,
		Message: fmt.Sprintf("%s: %s", domain.ErrConfigInvalid.Message, detail),
	}
}
