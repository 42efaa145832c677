// Copyright 2025 drawingdeck
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration for an extraction run
type Config struct {
	// ScheduleFile is the accommodation schedule table (flat references in column D)
	ScheduleFile string `json:"schedule_file" yaml:"schedule_file" toml:"schedule_file" hcl:"schedule_file,optional"`
	// CatalogFile is the architect register table (filename in column A, title in column B)
	CatalogFile string `json:"catalog_file" yaml:"catalog_file" toml:"catalog_file" hcl:"catalog_file,optional"`
	// CatalogDir is the directory holding the source drawing files
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir" toml:"catalog_dir" hcl:"catalog_dir,optional"`
	// OutputDir is the root of the materialized output tree
	OutputDir string `json:"output_dir" yaml:"output_dir" toml:"output_dir" hcl:"output_dir,optional"`
	// ReportDir is where report workbooks are written (defaults to the parent of OutputDir)
	ReportDir string `json:"report_dir,omitempty" yaml:"report_dir,omitempty" toml:"report_dir,omitempty" hcl:"report_dir,optional"`

	// DrawingType is the output filename prefix (defaults to "sections")
	DrawingType string `json:"drawing_type,omitempty" yaml:"drawing_type,omitempty" toml:"drawing_type,omitempty" hcl:"drawing_type,optional"`
	// TitlePrefix is the literal prefix used to build match patterns (defaults to "Sections - ")
	TitlePrefix string `json:"title_prefix,omitempty" yaml:"title_prefix,omitempty" toml:"title_prefix,omitempty" hcl:"title_prefix,optional"`
	// SectionMarker is the substring that flags a catalog title as a section drawing (defaults to "Sections")
	SectionMarker string `json:"section_marker,omitempty" yaml:"section_marker,omitempty" toml:"section_marker,omitempty" hcl:"section_marker,optional"`
	// Extensions are the candidate source-file extensions, tried in order (defaults to [".pdf"])
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty" toml:"extensions,omitempty" hcl:"extensions,optional"`
	// ExcludeTitles are glob patterns; catalog entries whose title matches are skipped
	ExcludeTitles []string `json:"exclude_titles,omitempty" yaml:"exclude_titles,omitempty" toml:"exclude_titles,omitempty" hcl:"exclude_titles,optional"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and applies defaults
func (cfg *Config) Validate() error {
	// Check required fields
	if cfg.ScheduleFile == "" {
		return errors.Errorf("schedule_file is required")
	}
	if cfg.CatalogFile == "" {
		return errors.Errorf("catalog_file is required")
	}
	if cfg.CatalogDir == "" {
		return errors.Errorf("catalog_dir is required")
	}
	if cfg.OutputDir == "" {
		return errors.Errorf("output_dir is required")
	}

	// Clean up paths
	cfg.ScheduleFile = filepath.Clean(cfg.ScheduleFile)
	cfg.CatalogFile = filepath.Clean(cfg.CatalogFile)
	cfg.CatalogDir = filepath.Clean(cfg.CatalogDir)
	cfg.OutputDir = filepath.Clean(cfg.OutputDir)

	// Set defaults
	if cfg.ReportDir == "" {
		cfg.ReportDir = filepath.Dir(cfg.OutputDir)
	} else {
		cfg.ReportDir = filepath.Clean(cfg.ReportDir)
	}
	if cfg.DrawingType == "" {
		cfg.DrawingType = "sections"
	}
	if cfg.TitlePrefix == "" {
		cfg.TitlePrefix = "Sections - "
	}
	if cfg.SectionMarker == "" {
		cfg.SectionMarker = "Sections"
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{".pdf"}
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			cfg.Extensions[i] = "." + ext
		}
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s + %s -> %s", cfg.ScheduleFile, cfg.CatalogFile, cfg.OutputDir)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
