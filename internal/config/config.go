// Package config loads compiler settings from a YAML file.
//
//	limits:
//	  max_lines: 2000
//	  max_depth: 16
//	strict_ids: true
//	title: Draft
//	font: ""
//	navigation_keywords: [sidebar, menu, links]
package config

import (
	"fmt"
	"os"

	"github.com/pipe01/mukuro"
	"github.com/pipe01/mukuro/internal/generator"
	"gopkg.in/yaml.v3"
)

type Limits struct {
	MaxLines      int `yaml:"max_lines"`
	MaxLineLength int `yaml:"max_line_length"`
	MaxDepth      int `yaml:"max_depth"`
}

type Config struct {
	Limits    Limits `yaml:"limits"`
	StrictIDs bool   `yaml:"strict_ids"`
	Title     string `yaml:"title"`

	// Font is the stylesheet URL of the web font. Nil keeps the default, an
	// empty string disables it.
	Font *string `yaml:"font"`

	NavigationKeywords []string `yaml:"navigation_keywords"`
	DisableLists       bool     `yaml:"disable_lists"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

// Options converts the configuration into compiler options.
func (c *Config) Options() mukuro.Options {
	opts := mukuro.Options{
		MaxLines:      c.Limits.MaxLines,
		MaxLineLength: c.Limits.MaxLineLength,
		MaxDepth:      c.Limits.MaxDepth,
		StrictIDs:     c.StrictIDs,
		DefaultTitle:  c.Title,
	}

	if c.Font != nil {
		if *c.Font == "" {
			opts.NoFont = true
		} else {
			opts.FontURL = *c.Font
		}
	}

	switch {
	case c.DisableLists:
		opts.ListDetector = generator.NoLists{}
	case len(c.NavigationKeywords) > 0:
		opts.ListDetector = &generator.NavigationDetector{Keywords: c.NavigationKeywords}
	}

	return opts
}
