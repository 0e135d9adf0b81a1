package config

import (
	"errors"
	"testing"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv("TEXTLENS_ENV", "")
	t.Setenv("TEXTLENS_LOG_LEVEL", "")
	t.Setenv("TEXTLENS_LOG_FORMAT", "")
	t.Setenv("TEXTLENS_PORT", "")
	t.Setenv("TEXTLENS_MAX_BODY_BYTES", "")
	t.Setenv("TEXTLENS_LEXICON_ROUTES", "")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Env != Development || s.LogLevel != "debug" || s.LogFormat != "text" {
		t.Errorf("unexpected development defaults: %+v", s)
	}
	if s.ServerPort != "8080" || s.MaxBodyBytes != 1<<20 || s.HTTPTimeoutSeconds != 30 {
		t.Errorf("unexpected server defaults: %+v", s)
	}
	if !s.LexiconRoutes {
		t.Error("lexicon routes should default to enabled")
	}
}

func TestLoadSettingsProduction(t *testing.T) {
	t.Setenv("TEXTLENS_ENV", "PRODUCTION")
	t.Setenv("TEXTLENS_LOG_LEVEL", "")
	t.Setenv("TEXTLENS_LOG_FORMAT", "")
	t.Setenv("TEXTLENS_PORT", "9000")
	t.Setenv("TEXTLENS_MAX_BODY_BYTES", "not-a-number")
	t.Setenv("TEXTLENS_LEXICON_ROUTES", "false")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Env != Production || s.LogLevel != "info" || s.LogFormat != "json" {
		t.Errorf("unexpected production settings: %+v", s)
	}
	if s.ServerPort != "9000" {
		t.Errorf("ServerPort = %q", s.ServerPort)
	}
	if s.MaxBodyBytes != 1<<20 {
		t.Errorf("invalid int should fall back to default, got %d", s.MaxBodyBytes)
	}
	if s.LexiconRoutes {
		t.Error("TEXTLENS_LEXICON_ROUTES=false should disable lexicon routes")
	}
}

func TestSettingsValidate(t *testing.T) {
	valid := Settings{ServerPort: "8080", MaxBodyBytes: 1, HTTPTimeoutSeconds: 1}

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero body limit", func(s *Settings) { s.MaxBodyBytes = 0 }},
		{"zero timeout", func(s *Settings) { s.HTTPTimeoutSeconds = 0 }},
		{"bad port", func(s *Settings) { s.ServerPort = "http" }},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid settings rejected: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			if err := s.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
