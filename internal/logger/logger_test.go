package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSONWithServiceField(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", ServiceName: "agricredit-api", Output: &buf})
	log.Debug().Str("k", "v").Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("not json: %v (%s)", err, buf.String())
	}
	if line["service"] != "agricredit-api" || line["k"] != "v" || line["message"] != "hello" {
		t.Fatalf("unexpected fields: %v", line)
	}
	if _, ok := line["time"]; !ok {
		t.Fatal("missing timestamp")
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})
	log.Info().Msg("dropped")
	log.Warn().Msg("kept")
	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "kept") {
		t.Fatalf("level filter broken: %s", buf.String())
	}
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "chatty", Output: &buf})
	log.Debug().Msg("debug")
	log.Info().Msg("info")
	if strings.Contains(buf.String(), `"debug"`) && strings.Contains(buf.String(), `"message":"debug"`) {
		t.Fatalf("debug should be filtered: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"message":"info"`) {
		t.Fatalf("info missing: %s", buf.String())
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: "console", Output: &buf})
	log.Info().Msg("pretty")
	if !strings.Contains(buf.String(), "pretty") || strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("console output unexpected: %q", buf.String())
	}
}
