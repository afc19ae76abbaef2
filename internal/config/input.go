// Package config parses and validates the YAML files that stand in for the
// interactive form: portfolio definitions plus batch simulation settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cadentwebb/financial-simulator/internal/domain"
	"github.com/cadentwebb/financial-simulator/internal/simulation"
)

// Settings holds the batch-level knobs from the config file.
type Settings struct {
	Iterations         int     `yaml:"iterations"`
	Seed               int64   `yaml:"seed"`
	WindowMonths       int     `yaml:"window_months"`
	MilestoneMonths    []int   `yaml:"milestone_months"`
	BaselineAnnualRate float64 `yaml:"baseline_annual_rate"`
	TopBottomK         int     `yaml:"top_bottom_k"`
	Workers            int     `yaml:"workers"`
	KeepTraces         bool    `yaml:"keep_traces"`
}

// Config converts the file settings into the engine's parameter object.
func (s Settings) Config() simulation.Config {
	return simulation.Config{
		Iterations:         s.Iterations,
		Seed:               s.Seed,
		WindowMonths:       s.WindowMonths,
		MilestoneMonths:    s.MilestoneMonths,
		BaselineAnnualRate: s.BaselineAnnualRate,
		TopBottomK:         s.TopBottomK,
		Workers:            s.Workers,
		KeepTraces:         s.KeepTraces,
	}
}

// File is the top-level config file structure.
type File struct {
	Simulation Settings           `yaml:"simulation"`
	Portfolios []domain.Portfolio `yaml:"portfolios"`
}

// InputParser handles parsing of input configuration files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a configuration from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse loads and validates a configuration from raw YAML.
func (ip *InputParser) Parse(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.Validate(&file); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &file, nil
}

// Validate rejects invalid configurations before any run starts. Nothing is
// silently corrected.
func (ip *InputParser) Validate(file *File) error {
	if len(file.Portfolios) == 0 {
		return &domain.ConfigurationError{Field: "portfolios", Reason: "at least one portfolio is required"}
	}

	seen := make(map[string]bool, len(file.Portfolios))
	for i := range file.Portfolios {
		p := &file.Portfolios[i]
		if err := p.Validate(); err != nil {
			return fmt.Errorf("portfolio %d (%s): %w", i, p.Name, err)
		}
		if seen[p.Name] {
			return &domain.ConfigurationError{
				Field:  fmt.Sprintf("portfolios[%d].name", i),
				Reason: fmt.Sprintf("duplicate portfolio name %q", p.Name),
			}
		}
		seen[p.Name] = true
	}

	s := file.Simulation
	if s.Iterations <= 0 {
		return &domain.ConfigurationError{Field: "simulation.iterations", Reason: "iterations must be positive"}
	}
	if s.WindowMonths < 0 {
		return &domain.ConfigurationError{Field: "simulation.window_months", Reason: "window months cannot be negative"}
	}
	if s.BaselineAnnualRate <= -1 {
		return &domain.ConfigurationError{Field: "simulation.baseline_annual_rate", Reason: "baseline rate must be greater than -100%"}
	}
	if s.TopBottomK < 0 {
		return &domain.ConfigurationError{Field: "simulation.top_bottom_k", Reason: "top/bottom count cannot be negative"}
	}
	for _, m := range s.MilestoneMonths {
		if m <= 0 {
			return &domain.ConfigurationError{Field: "simulation.milestone_months", Reason: "milestone months must be positive"}
		}
	}
	return nil
}
