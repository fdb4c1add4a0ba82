package version

import "testing"

func TestUserAgent(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	tests := []struct {
		purpose string
		want    string
	}{
		{"", "newsletter-builder/v1.2.3"},
		{"link summarizer", "newsletter-builder/v1.2.3 (+link summarizer)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := UserAgent(tt.purpose); got != tt.want {
				t.Errorf("UserAgent(%q) = %q, want %q", tt.purpose, got, tt.want)
			}
		})
	}
}

func TestInfoString(t *testing.T) {
	i := Info{Version: "v1.2.3", Commit: "abc1234", BuildDate: "2025-03-10T18:42:00Z", GoVersion: "go1.25.5"}
	want := "v1.2.3 (commit=abc1234, built=2025-03-10T18:42:00Z, go=go1.25.5)"
	if got := i.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
