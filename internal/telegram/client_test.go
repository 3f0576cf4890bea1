package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/rewired-gh/synthtel/internal/catalog"
	"github.com/rewired-gh/synthtel/internal/generator"
	"github.com/rewired-gh/synthtel/internal/models"
	"github.com/rewired-gh/synthtel/internal/synth"
)

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "Hello World"},
		{"cpu_spike", "cpu\\_spike"},
		{"payment-api", "payment\\-api"},
		{"mean 12.50", "mean 12\\.50"},
		{"Scale replicas: 3 → 8!", "Scale replicas: 3 → 8\\!"},
		{"[link](url)", "\\[link\\]\\(url\\)"},
		{"Δ +5.0%", "Δ \\+5\\.0%"},
		{"a\\b", "a\\\\b"},
		{"", ""},
		{"_*[]()~`>#+-=|{}.!", "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := escapeMarkdownV2(tt.input)
			if result != tt.expected {
				t.Errorf("escapeMarkdownV2(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEscapeCode(t *testing.T) {
	if got := escapeCode("a`b\\c.d"); got != "a\\`b\\\\c.d" {
		t.Errorf("Unexpected escape %q", got)
	}
}

func TestNewClient_InvalidChatID(t *testing.T) {
	// chat ID is parsed before any network call
	_, err := NewClient("", "not-a-number", 3, time.Second, nil)
	if err == nil {
		t.Error("Expected error for invalid chat ID, got nil")
	}
}

func newSource() ScenarioSource {
	now := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)
	return generator.New(catalog.Default(), synth.NewSource(5), generator.DefaultConfig(),
		generator.WithClock(func() time.Time { return now }))
}

func TestFormatScenario(t *testing.T) {
	sc, err := newSource().Scenario(generator.DatabaseSlowdown, "db-proxy", catalog.Staging)
	if err != nil {
		t.Fatalf("Scenario failed: %v", err)
	}

	msg := formatScenario(sc)

	for _, want := range []string{
		"*Incident scenario: database\\_slowdown*",
		"db\\-proxy \\(staging\\)",
		"2024\\-03\\-14 12:00:00",
		"`" + sc.ID + "`",
		"cpu\\_usage: mean",
		"latency: mean",
		"Traces: 20",
		"Missing database index",
		"1\\. Check db\\-proxy connection pool utilization",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected %q in message:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "request\\_rate") {
		t.Error("database_slowdown should not report request rate")
	}
}

func TestReplyFor(t *testing.T) {
	source := newSource()

	tests := []struct {
		name    string
		command string
		args    string
		want    string
	}{
		{"ping", "ping", "", "Pong"},
		{"help", "help", "", "/scenario"},
		{"services", "services", "", "inventory\\-service"},
		{"scenario defaults", "scenario", "cpu_spike", "payment\\-api \\(prod\\)"},
		{"scenario with env", "scenario", "traffic_surge order-service dev", "order\\-service \\(dev\\)"},
		{"unknown scenario", "scenario", "disk_full", "⚠️ unsupported variant"},
		{"unknown env", "scenario", "cpu_spike api qa", "environment"},
		{"missing kind", "scenario", "", "usage"},
		{"unknown command", "deploy", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := replyFor(source, tt.command, tt.args)
			if tt.want == "" {
				if got != "" {
					t.Errorf("Expected no reply, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Expected %q in reply %q", tt.want, got)
			}
		})
	}
}

func TestReplyForWithoutSource(t *testing.T) {
	if got := replyFor(nil, "scenario", "cpu_spike"); !strings.Contains(got, "No generator") {
		t.Errorf("Unexpected reply %q", got)
	}
	if got := replyFor(nil, "ping", ""); got != "Pong" {
		t.Errorf("Expected Pong, got %q", got)
	}
}

func TestFormatScenarioCountsFiring(t *testing.T) {
	sc := &models.Scenario{
		Kind:        "cpu_spike",
		Service:     "api",
		Environment: "dev",
		CPU:         &models.CPUReport{},
		Latency:     &models.LatencyReport{},
		Memory:      &models.SeriesReport{},
		ErrorRate:   &models.SeriesReport{},
		Alerts: []models.Alert{
			{Status: models.AlertFiring},
			{Status: models.AlertResolved},
			{Status: models.AlertFiring},
		},
	}
	if msg := formatScenario(sc); !strings.Contains(msg, "Alerts: 3 \\(2 firing\\)") {
		t.Errorf("Unexpected alert line in:\n%s", msg)
	}
}
