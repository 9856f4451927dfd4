package app

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{" warn ", LogLevelWarn},
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_LineFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Prefix: "ctext"})
	logger.WithFields(map[string]any{"b": 2, "a": "x"}).Info("opened %s", "f.txt")

	re := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3} \[INFO\] ctext: opened f\.txt \{a=x, b=2\}\n$`)
	if !re.MatchString(buf.String()) {
		t.Errorf("log line = %q", buf.String())
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	out := buf.String()
	for _, tag := range []string{"[DEBUG]", "[INFO]"} {
		if strings.Contains(out, tag) {
			t.Errorf("%s not filtered: %q", tag, out)
		}
	}
	for _, tag := range []string{"[WARN]", "[ERROR]"} {
		if !strings.Contains(out, tag) {
			t.Errorf("%s missing: %q", tag, out)
		}
	}
}

func TestLogger_ChildSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelError, Output: &buf})
	child := logger.WithComponent("ed")

	child.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("output at error level: %q", buf.String())
	}
	logger.SetLevel(LogLevelInfo)
	child.Info("shown")
	if !strings.Contains(buf.String(), "shown {component=ed}") {
		t.Errorf("output = %q", buf.String())
	}
	if got := child.Level(); got != LogLevelInfo {
		t.Errorf("child Level() = %v, want INFO", got)
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Output: &buf})

	logger.Info("100% literal")
	logger.Info("formatted %s %d", "test", 42)

	out := buf.String()
	if !strings.Contains(out, "100% literal") {
		t.Errorf("message without args was formatted: %q", out)
	}
	if !strings.Contains(out, "formatted test 42") {
		t.Errorf("output = %q", out)
	}
}

func TestLogger_SetOutput(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	logger := NewLogger(LoggerConfig{Output: &buf1})
	logger.SetOutput(&buf2)
	logger.Info("moved")
	if buf1.Len() != 0 || buf2.Len() == 0 {
		t.Errorf("buf1 = %q, buf2 = %q", buf1.String(), buf2.String())
	}
}

func TestLogger_DisableEnable(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Output: &buf})

	logger.Disable()
	logger.Info("should not appear")
	if buf.Len() != 0 {
		t.Error("output while disabled")
	}
	logger.Enable()
	logger.Info("should appear")
	if buf.Len() == 0 {
		t.Error("no output after Enable")
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Debug("test")
	NullLogger.WithComponent("x").Error("test %d", 1)
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()
	if cfg.Level != LogLevelInfo {
		t.Errorf("Level = %v, want INFO", cfg.Level)
	}
	if cfg.Prefix != "ctext" {
		t.Errorf("Prefix = %q, want ctext", cfg.Prefix)
	}
}
