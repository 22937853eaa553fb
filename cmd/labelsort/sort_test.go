package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveOutputDir(t *testing.T) {
	tests := []struct {
		name        string
		flagValue   string
		configValue string
		inputPath   string
		want        string
	}{
		{
			name:      "default lands next to the input",
			inputPath: "/data/batch/labels.pdf",
			want:      "/data/batch/sorted_labels",
		},
		{
			name:      "relative input",
			inputPath: "labels.pdf",
			want:      "sorted_labels",
		},
		{
			name:      "flag wins",
			flagValue: "/tmp/out",
			inputPath: "/data/labels.pdf",
			want:      "/tmp/out",
		},
		{
			name:        "config used when flag unset",
			configValue: "/srv/sorted",
			inputPath:   "/data/labels.pdf",
			want:        "/srv/sorted",
		},
		{
			name:        "flag wins over config",
			flagValue:   "/tmp/out",
			configValue: "/srv/sorted",
			inputPath:   "/data/labels.pdf",
			want:        "/tmp/out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveOutputDir(tt.flagValue, tt.configValue, tt.inputPath)
			if got != tt.want {
				t.Errorf("resolveOutputDir(%q, %q, %q) = %q, want %q",
					tt.flagValue, tt.configValue, tt.inputPath, got, tt.want)
			}
		})
	}
}

func TestResolveLabelsDir(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		got, err := resolveLabelsDir("/tmp/downloads", t.TempDir())
		if err != nil {
			t.Fatalf("resolveLabelsDir() error = %v", err)
		}
		if got != "/tmp/downloads" {
			t.Errorf("got %q, want /tmp/downloads", got)
		}
	})

	t.Run("defaults to home labels dir and creates it", func(t *testing.T) {
		homePath := filepath.Join(t.TempDir(), "labelsort-home")

		got, err := resolveLabelsDir("", homePath)
		if err != nil {
			t.Fatalf("resolveLabelsDir() error = %v", err)
		}
		want := filepath.Join(homePath, "labels")
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
		if _, err := os.Stat(got); err != nil {
			t.Errorf("labels directory should exist: %v", err)
		}
	})
}
