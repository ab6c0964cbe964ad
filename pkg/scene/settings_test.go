package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}
	return path
}

func TestLoadSettings(t *testing.T) {
	path := writeSettings(t, `{
		"scene": "cornell-box",
		"outputFile": "out/cornell.ppm",
		"maxDepth": 20,
		"imageWidth": 300,
		"numSamples": 64,
		"camera": {"aspectRatio": {"width": 3, "height": 2}, "aperture": 0.1},
		"numThreads": 4,
		"seed": 7
	}`)

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	if settings.Scene != "cornell-box" {
		t.Errorf("Scene = %q", settings.Scene)
	}
	if settings.OutputFile != "out/cornell.ppm" {
		t.Errorf("OutputFile = %q", settings.OutputFile)
	}
	if settings.MaxDepth != 20 || settings.NumSamples != 64 || settings.Seed != 7 {
		t.Errorf("Unexpected numeric settings: %+v", settings)
	}
	if settings.ImageHeight() != 200 {
		t.Errorf("ImageHeight() = %d, want 200", settings.ImageHeight())
	}
	if settings.NumThreads(16) != 4 {
		t.Errorf("NumThreads(16) = %d, want 4", settings.NumThreads(16))
	}
	if settings.SamplesPerThread(settings.NumThreads(16)) != 16 {
		t.Errorf("SamplesPerThread = %d, want 16", settings.SamplesPerThread(4))
	}
	if settings.Camera.Aperture != 0.1 {
		t.Errorf("Aperture = %g, want 0.1", settings.Camera.Aperture)
	}
}

func TestLoadSettingsKeepsDefaults(t *testing.T) {
	path := writeSettings(t, `{"scene": "globe", "imageWidth": 160}`)

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	defaults := DefaultSettings()
	if settings.NumSamples != defaults.NumSamples || settings.MaxDepth != defaults.MaxDepth {
		t.Errorf("Expected unset fields to keep defaults, got %+v", settings)
	}
	if settings.AspectRatio() != 16.0/9.0 {
		t.Errorf("AspectRatio() = %g, want the 16:9 default", settings.AspectRatio())
	}
	if settings.NumThreads(6) != 6 {
		t.Errorf("Expected unset numThreads to fall back, got %d", settings.NumThreads(6))
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed", `{"scene": `, "failed to parse"},
		{"unknown field", `{"scene": "globe", "widht": 10}`, "failed to parse"},
		{"zero width", `{"imageWidth": 0}`, "imageWidth"},
		{"negative samples", `{"numSamples": -1}`, "numSamples"},
		{"zero depth", `{"maxDepth": 0}`, "maxDepth"},
		{"bad aspect", `{"camera": {"aspectRatio": {"width": 1, "height": 0}}}`, "aspect ratio"},
		{"negative threads", `{"numThreads": -2}`, "numThreads"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadSettings(writeSettings(t, tc.content))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestSamplesPerThread(t *testing.T) {
	settings := DefaultSettings()
	settings.NumSamples = 10

	testCases := []struct {
		threads  int
		expected int
	}{
		{1, 10},
		{3, 3},
		{4, 2},
		{20, 0},
		{0, 10},
	}

	for _, tc := range testCases {
		if got := settings.SamplesPerThread(tc.threads); got != tc.expected {
			t.Errorf("SamplesPerThread(%d) = %d, want %d", tc.threads, got, tc.expected)
		}
	}
}

func TestDefaultSettingsValid(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Errorf("Default settings should be valid: %v", err)
	}
}

func TestSettingsOptions(t *testing.T) {
	settings := DefaultSettings()
	settings.Camera.Aperture = 0.25
	settings.Seed = 99

	opts := settings.Options("testdata")
	if opts.AspectRatio != 16.0/9.0 {
		t.Errorf("AspectRatio = %g", opts.AspectRatio)
	}
	if opts.Aperture != 0.25 || opts.Seed != 99 || opts.AssetsDir != "testdata" {
		t.Errorf("Unexpected options: %+v", opts)
	}
}
