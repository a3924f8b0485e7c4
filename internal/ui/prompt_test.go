package ui

import (
	"testing"
	"time"

	"github.com/thesavant42/gitfolio/internal/models"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"octocat", false},
		{"@octocat", false},
		{"  some-user  ", false},
		{"a", false},
		{"", true},
		{"   ", true},
		{"-leading", true},
		{"double--hyphen", true},
		{"has space", true},
		{"way-too-long-username-that-exceeds-the-limit", true},
		{"null\x00byte", false}, // control characters are stripped first
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateUsername(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("a\x00b\x07c\td"); got != "abc\td" {
		t.Errorf("sanitizeInput() = %q, want %q", got, "abc\td")
	}
}

func TestDefaultUsername(t *testing.T) {
	recent := []models.RecentUser{
		{Login: "newest", LoadedAt: time.Now()},
		{Login: "older", LoadedAt: time.Now().Add(-time.Hour)},
	}

	tests := []struct {
		name   string
		recent []models.RecentUser
		last   string
		want   string
	}{
		{"last user wins", recent, "octocat", "octocat"},
		{"falls back to newest recent", recent, "  ", "newest"},
		{"empty history", nil, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultUsername(tt.recent, tt.last); got != tt.want {
				t.Errorf("defaultUsername() = %q, want %q", got, tt.want)
			}
		})
	}
}
