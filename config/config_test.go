package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/RyanBlaney/sonido-shrp/algorithms/shr"
	"github.com/RyanBlaney/sonido-shrp/logging"
)

func TestMain(m *testing.M) {
	logging.SetGlobalLogger(&logging.NoOpLogger{})
	os.Exit(m.Run())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	p := cfg.Params()
	want := shr.Params{
		MinF0:       40,
		MaxF0:       500,
		FrameLength: 25,
		FrameShift:  1,
		Threshold:   0.4,
		Ceiling:     1250,
	}
	if p != want {
		t.Fatalf("Params() = %+v, want %+v", p, want)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"frame_shift": 5,
		"nan": "--",
		"shr": {"min_f0": 60, "max_f0": 400, "threshold": 0.4, "ceiling": 1250}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FrameShift != 5 || cfg.NaNString != "--" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.WindowSize != 25 || cfg.FramePrecision != 1 {
		t.Errorf("defaults lost: %+v", cfg)
	}

	p := cfg.Params()
	if p.MinF0 != 60 || p.MaxF0 != 400 || p.FrameShift != 5 || p.FrameLength != 25 {
		t.Errorf("Params() = %+v", p)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"malformed json", `{"frame_shift": }`, false},
		{"unknown key", `{"frame_shfit": 2}`, false},
		{"zero shift", `{"frame_shift": 0}`, true},
		{"negative precision", `{"frame_precision": -1}`, true},
		{"bad log level", `{"log_level": "loud"}`, true},
		{"inverted pitch range", `{"shr": {"min_f0": 300, "max_f0": 200, "threshold": 0.4, "ceiling": 1250}}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.invalid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestValidateWrapsAnalysisErrors(t *testing.T) {
	cfg := Default()
	cfg.SHR.MinF0 = 0
	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, shr.ErrInvalidParams) {
		t.Fatalf("error = %v, want both ErrInvalidConfig and shr.ErrInvalidParams", err)
	}
}

func TestPitchUsesConfiguredGrid(t *testing.T) {
	const rate = 16000.0
	x := make([]float64, 4800)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 120 * float64(i) / rate)
	}

	cfg := Default()
	cfg.FrameShift = 5
	f0, ratio, err := cfg.Pitch(x, rate)
	if err != nil {
		t.Fatal(err)
	}
	// 300 ms every 5 ms
	if len(f0) != 60 || len(ratio) != 60 {
		t.Fatalf("lengths %d/%d, want 60", len(f0), len(ratio))
	}
	if !math.IsNaN(f0[0]) {
		t.Errorf("point 0 precedes the first frame center: %v", f0[0])
	}
	if math.IsNaN(f0[30]) {
		t.Error("mid-signal point is NaN")
	}

	cfg.SHR.MaxF0 = 10
	if _, _, err := cfg.Pitch(x, rate); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logging.Level
	}{
		{"", logging.InfoLevel},
		{"debug", logging.DebugLevel},
		{"WARN", logging.WarnLevel},
		{"warning", logging.WarnLevel},
		{"error", logging.ErrorLevel},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.LogLevel = tt.in
		got, err := cfg.Level()
		if err != nil || got != tt.want {
			t.Errorf("Level(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	cfg := Default()
	cfg.NaNString = "NA"

	got := cfg.FormatValues([]float64{120.04567, math.NaN(), 0, -1.5})
	want := []string{"120.046", "NA", "0.000", "-1.500"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d = %q, want %q", i, got[i], want[i])
		}
	}
}
