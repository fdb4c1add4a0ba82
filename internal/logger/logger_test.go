package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input  string
		want   zapcore.Level
		wantOK bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"info", zapcore.InfoLevel, true},
		{" WARN ", zapcore.WarnLevel, true},
		{"warning", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"verbose", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLevel(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, %v, want %v, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestComponentTagsEntries(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := Component(wrap(zap.New(core)), "prompts")
	l.Info("reloaded", Int("templates", 3))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "prompts" || fields["templates"] != int64(3) {
		t.Errorf("fields = %v", fields)
	}
}

func TestWithKeepsNopUsable(t *testing.T) {
	l := With(NewNop(), String("component", "test"), Bool("enabled", true))
	l.Info("discarded", Int("n", 1))
	if err := l.Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}
}

func TestSecret(t *testing.T) {
	tests := []struct {
		val  string
		want string
	}{
		{"", "****"},
		{"short", "****"},
		{"sk-proj-abcdef1234", "****1234"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Secret("key", tt.val).String; got != tt.want {
				t.Errorf("Secret(%q) = %q, want %q", tt.val, got, tt.want)
			}
		})
	}
}
