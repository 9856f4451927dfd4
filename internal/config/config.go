package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dshills/ctext/internal/input"
)

// Config is the full set of session settings.
type Config struct {
	UndoDebug    bool       `toml:"undo_debug" yaml:"undo_debug"`
	MaxUndo      int        `toml:"max_undo" yaml:"max_undo"`
	ShiftWidth   int        `toml:"shiftwidth" yaml:"shiftwidth"`
	TabStop      int        `toml:"tabstop" yaml:"tabstop"`
	IgnoreCase   bool       `toml:"ignorecase" yaml:"ignorecase"`
	Number       bool       `toml:"number" yaml:"number"`
	Shell        string     `toml:"shell" yaml:"shell"`
	ShellTimeout Duration   `toml:"shell_timeout" yaml:"shell_timeout"`
	LogLevel     string     `toml:"log_level" yaml:"log_level"`
	StateFile    string     `toml:"state_file" yaml:"state_file"`
	Mode         input.Kind `toml:"mode" yaml:"mode"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		MaxUndo:      1000,
		ShiftWidth:   2,
		TabStop:      8,
		Shell:        "/bin/sh",
		ShellTimeout: Duration(30 * time.Second),
		LogLevel:     "info",
		Mode:         input.KindVi,
	}
}

// LogLevels are the accepted log_level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks every setting and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxUndo <= 0 {
		errs = append(errs, &ValidationError{Key: "max_undo", Message: "must be positive", Value: c.MaxUndo})
	}
	if c.ShiftWidth <= 0 {
		errs = append(errs, &ValidationError{Key: "shiftwidth", Message: "must be positive", Value: c.ShiftWidth})
	}
	if c.TabStop <= 0 {
		errs = append(errs, &ValidationError{Key: "tabstop", Message: "must be positive", Value: c.TabStop})
	}
	if c.ShellTimeout < 0 {
		errs = append(errs, &ValidationError{Key: "shell_timeout", Message: "must not be negative", Value: c.ShellTimeout})
	}
	if strings.TrimSpace(c.Shell) == "" {
		errs = append(errs, &ValidationError{Key: "shell", Message: "must not be empty", Value: c.Shell})
	}
	if !validLevel(c.LogLevel) {
		errs = append(errs, &ValidationError{
			Key:     "log_level",
			Message: "must be one of " + strings.Join(LogLevels, ", "),
			Value:   c.LogLevel,
		})
	}
	return errors.Join(errs...)
}

func validLevel(s string) bool {
	for _, l := range LogLevels {
		if strings.EqualFold(s, l) {
			return true
		}
	}
	return false
}

// Duration is a time.Duration written as a string such as "30s".
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String implements fmt.Stringer.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q", text)
	}
	*d = Duration(v)
	return nil
}
