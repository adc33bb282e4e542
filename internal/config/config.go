// Package config loads batch analysis files written in YAML or CUE.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/strenlab/tensile/internal/dataset"
	"github.com/strenlab/tensile/internal/lis"
	"github.com/strenlab/tensile/internal/material"
)

//go:embed schema.cue
var schemaSource string

const (
	DefaultOutput   = "output"
	DefaultWorkbook = "tensile_results.xlsx"
)

// Overrides are analysis settings that a specimen may set itself.
// Nil fields fall back to the config defaults, then to built-in values.
type Overrides struct {
	GaugeLength    *float64 `yaml:"gauge_length_mm,omitempty" json:"gauge_length_mm,omitempty"`
	Diameter       *float64 `yaml:"diameter_mm,omitempty" json:"diameter_mm,omitempty"`
	Area           *float64 `yaml:"area_mm2,omitempty" json:"area_mm2,omitempty"`
	ElasticPoints  *int     `yaml:"elastic_points,omitempty" json:"elastic_points,omitempty"`
	Offset         *float64 `yaml:"offset,omitempty" json:"offset,omitempty"`
	PowerLawTrim   *int     `yaml:"power_law_trim,omitempty" json:"power_law_trim,omitempty"`
	StrictPowerLaw *bool    `yaml:"strict_power_law,omitempty" json:"strict_power_law,omitempty"`
}

// Specimen is one test file to analyze.
type Specimen struct {
	Name   string `yaml:"name" json:"name"`
	Label  string `yaml:"label,omitempty" json:"label,omitempty"`
	File   string `yaml:"file" json:"file"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`

	Overrides `yaml:",inline"`
}

// Config describes a batch run.
type Config struct {
	Output    string     `yaml:"output,omitempty" json:"output,omitempty"`
	Plots     *bool      `yaml:"plots,omitempty" json:"plots,omitempty"`
	Workbook  string     `yaml:"workbook,omitempty" json:"workbook,omitempty"`
	Database  string     `yaml:"database,omitempty" json:"database,omitempty"`
	Defaults  Overrides  `yaml:"defaults,omitempty" json:"defaults,omitempty"`
	Specimens []Specimen `yaml:"specimens" json:"specimens"`
}

// Load reads a .yaml, .yml or .cue batch file. Relative paths in the file
// resolve against the directory of the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg *Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		cfg, err = ParseYAML(data)
	case ".cue":
		cfg, err = ParseCUE(data, path)
	default:
		return nil, fmt.Errorf("unsupported config extension %q (use .yaml or .cue)", ext)
	}
	if err != nil {
		return nil, err
	}

	cfg.resolvePaths(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ParseYAML decodes a YAML batch file, rejecting unknown fields.
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// ParseCUE unifies a CUE batch file with the embedded schema and decodes it.
func ParseCUE(data []byte, filename string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse CUE: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding CUE: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Workbook == "" {
		c.Workbook = DefaultWorkbook
	}
	for i := range c.Specimens {
		s := &c.Specimens[i]
		if s.Label == "" {
			s.Label = s.Name
		}
		if s.Format == "" {
			if f, err := dataset.DetectFormat(s.File); err == nil {
				s.Format = string(f)
			}
		}
	}
}

func (c *Config) resolvePaths(dir string) {
	c.Output = resolve(dir, c.Output)
	c.Workbook = resolve(c.Output, c.Workbook)
	if c.Database != "" {
		c.Database = resolve(dir, c.Database)
	}
	for i := range c.Specimens {
		c.Specimens[i].File = resolve(dir, c.Specimens[i].File)
	}
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// PlotsEnabled reports whether figures should be written. Defaults to true.
func (c *Config) PlotsEnabled() bool {
	return c.Plots == nil || *c.Plots
}

// Validate reports the first problem found in the config.
func (c *Config) Validate() error {
	if len(c.Specimens) == 0 {
		return fmt.Errorf("specimens list is required and must be non-empty")
	}
	seen := make(map[string]bool, len(c.Specimens))
	for i, s := range c.Specimens {
		if s.Name == "" {
			return fmt.Errorf("specimen %d: name is required", i+1)
		}
		if seen[s.Name] {
			return fmt.Errorf("specimen %q: duplicate name", s.Name)
		}
		seen[s.Name] = true
		if s.File == "" {
			return fmt.Errorf("specimen %q: file is required", s.Name)
		}
		switch dataset.Format(s.Format) {
		case dataset.FormatLIS, dataset.FormatCSV:
		default:
			return fmt.Errorf("specimen %q: unknown format %q", s.Name, s.Format)
		}
		if err := c.AnalysisOptions(s).Validate(); err != nil {
			return fmt.Errorf("specimen %q: %w", s.Name, err)
		}
		lo := c.LoadOptions(s)
		if lo.GaugeLength <= 0 {
			return fmt.Errorf("specimen %q: gauge length must be positive", s.Name)
		}
		if lo.Diameter < 0 || lo.Area < 0 {
			return fmt.Errorf("specimen %q: diameter and area must not be negative", s.Name)
		}
	}
	return nil
}

// AnalysisOptions resolves the analysis settings of a specimen.
func (c *Config) AnalysisOptions(s Specimen) material.Options {
	opts := material.DefaultOptions()
	opts.ElasticPoints = pick(s.ElasticPoints, c.Defaults.ElasticPoints, opts.ElasticPoints)
	opts.Offset = pick(s.Offset, c.Defaults.Offset, opts.Offset)
	opts.PowerLawTrim = pick(s.PowerLawTrim, c.Defaults.PowerLawTrim, opts.PowerLawTrim)
	opts.StrictPowerLaw = pick(s.StrictPowerLaw, c.Defaults.StrictPowerLaw, opts.StrictPowerLaw)
	return opts
}

// LoadOptions resolves how the file of a specimen is read.
func (c *Config) LoadOptions(s Specimen) dataset.LoadOptions {
	return dataset.LoadOptions{
		Name:        s.Name,
		Format:      dataset.Format(s.Format),
		GaugeLength: pick(s.GaugeLength, c.Defaults.GaugeLength, lis.DefaultGaugeLength),
		Diameter:    pick(s.Diameter, c.Defaults.Diameter, 0),
		Area:        pick(s.Area, c.Defaults.Area, 0),
	}
}

func pick[T any](own, fallback *T, builtin T) T {
	if own != nil {
		return *own
	}
	if fallback != nil {
		return *fallback
	}
	return builtin
}
