/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads the dxspan command configuration from DXSPAN_*
// environment variables and an optional YAML file.
package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"dirpx.dev/dxspan/dxcore/errors"
	"dirpx.dev/dxspan/dxcore/model/interval"
	"dirpx.dev/dxspan/internal/platform/logger"
	"github.com/ilyakaznacheev/cleanenv"
)

// Output formats accepted by Config.Output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config is the command configuration. Environment variables override the
// values read from a file.
type Config struct {
	// Timezone is an IANA name used for endpoints without an offset.
	Timezone string `yaml:"timezone" env:"DXSPAN_TIMEZONE" env-default:"UTC" env-description:"IANA time zone of offset-less datepoints"`

	// Layout is the Go time layout of notation endpoints. Empty selects
	// RFC 3339, ISO dates and relative names.
	Layout string `yaml:"layout" env:"DXSPAN_LAYOUT" env-description:"Go time layout of notation endpoints"`

	Output string `yaml:"output" env:"DXSPAN_OUTPUT" env-default:"text" env-description:"text, json or yaml"`

	LogLevel  string `yaml:"log-level" env:"DXSPAN_LOG_LEVEL" env-default:"warn" env-description:"zerolog level"`
	LogFormat string `yaml:"log-format" env:"DXSPAN_LOG_FORMAT" env-default:"console" env-description:"console or json"`
}

// Load reads the configuration. When path is empty only the environment is
// consulted. The result is validated.
func Load(path string) (Config, error) {
	var cfg Config

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("cannot read configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Usage returns the description of every environment variable.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return &errors.ValidationError{Type: "Config", Field: "output", Reason: "must be text, json or yaml", Value: c.Output}
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return &errors.ValidationError{Type: "Config", Field: "log-format", Reason: "must be console or json", Value: c.LogFormat}
	}
	if strings.ContainsAny(c.Layout, ",[]()") {
		return &errors.ValidationError{Type: "Config", Field: "layout", Reason: "must not contain a comma or a bracket", Value: c.Layout}
	}
	return nil
}

// Location resolves Timezone. An empty Timezone means UTC.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, &errors.ValidationError{Type: "Config", Field: "timezone", Reason: err.Error(), Value: c.Timezone}
	}
	return loc, nil
}

// Codec returns the notation codec matching the configuration.
func (c Config) Codec() (interval.NotationCodec, error) {
	loc, err := c.Location()
	if err != nil {
		return interval.NotationCodec{}, err
	}
	return interval.NotationCodec{Layout: c.Layout, Location: loc}, nil
}

// LoggerOptions returns the logger options matching the configuration.
func (c Config) LoggerOptions() logger.Options {
	return logger.Options{Level: c.LogLevel, Format: c.LogFormat}
}
