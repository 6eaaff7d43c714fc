package behavior

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultCycleInterval matches an 83 Hz control loop.
const DefaultCycleInterval = 12 * time.Millisecond

// Config describes a run: which role to play, how fast to cycle and the
// scripted inputs to replay. It decodes from JSON or YAML.
type Config struct {
	Role          Role          `json:"role" yaml:"role"`
	CycleInterval time.Duration `json:"cycle_interval" yaml:"cycle_interval"`
	LogLevel      string        `json:"log_level" yaml:"log_level"`
	HistorySize   int           `json:"history_size" yaml:"history_size"`
	// HistoryFile, when set, is where the decision history is restored from
	// at startup and saved to at shutdown.
	HistoryFile string          `json:"history_file" yaml:"history_file"`
	Telemetry   TelemetryConfig `json:"telemetry" yaml:"telemetry"`
	Frames      []Frame         `json:"frames" yaml:"frames"`
}

type TelemetryConfig struct {
	// Addr is the listen address of the debug command stream; empty disables it.
	Addr string `json:"addr" yaml:"addr"`
}

// UnmarshalJSON accepts cycle_interval either as a duration string ("20ms"),
// the way the YAML decoder does, or as integer nanoseconds.
func (c *Config) UnmarshalJSON(b []byte) error {
	type plain Config
	aux := struct {
		*plain
		CycleInterval json.RawMessage `json:"cycle_interval"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if len(aux.CycleInterval) == 0 || string(aux.CycleInterval) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(aux.CycleInterval, &s); err == nil {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("cycle_interval: %w", err)
		}
		c.CycleInterval = d
		return nil
	}
	var ns int64
	if err := json.Unmarshal(aux.CycleInterval, &ns); err != nil {
		return fmt.Errorf("cycle_interval: want duration string or nanoseconds, got %s", aux.CycleInterval)
	}
	c.CycleInterval = time.Duration(ns)
	return nil
}

// LoadJSON loads config from JSON reader.
func LoadJSON(r io.Reader) (*Config, error) {
	var c Config
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, err
	}
	return c.finish()
}

// LoadYAML loads config from YAML reader.
func LoadYAML(r io.Reader) (*Config, error) {
	var c Config
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, err
	}
	return c.finish()
}

// LoadFile picks the decoder by file extension.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return nil, fmt.Errorf("unsupported config extension: %s", path)
	}
}

func (c *Config) finish() (*Config, error) {
	if c.CycleInterval == 0 {
		c.CycleInterval = DefaultCycleInterval
	}
	if c.HistorySize == 0 {
		c.HistorySize = DefaultHistorySize
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports every problem with the config at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Role == RoleNone {
		errs = append(errs, ErrNoRole)
	} else if int(c.Role) >= len(roleNames) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownRole, c.Role))
	}
	if c.CycleInterval <= 0 {
		errs = append(errs, fmt.Errorf("cycle_interval must be positive, got %s", c.CycleInterval))
	}
	if c.HistorySize < 0 {
		errs = append(errs, fmt.Errorf("history_size must not be negative, got %d", c.HistorySize))
	}
	if len(c.Frames) == 0 {
		errs = append(errs, ErrNoFrames)
	}
	return errors.Join(errs...)
}
