package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/fresneltrace/fresnel/pkg/renderer"
	"github.com/fresneltrace/fresnel/pkg/scene"
)

func TestResolveConfig(t *testing.T) {
	dir := t.TempDir()
	onDisk := filepath.Join(dir, "saved.json")
	if err := scene.SaveConfig(scene.NewEmptyScene(), onDisk); err != nil {
		t.Fatalf("Failed to save scene file: %v", err)
	}

	tests := []struct {
		name        string
		builtin     string
		arg         string
		expectError bool
	}{
		{"builtin scene", "simple", "", false},
		{"builtin wins over arg", "simple", onDisk, false},
		{"scene file", "", onDisk, false},
		{"unknown builtin", "nonexistent", "", true},
		{"missing file", "", filepath.Join(dir, "nope.json"), true},
		{"default path missing", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := resolveConfig(tt.builtin, tt.arg)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for builtin=%q arg=%q, but got none", tt.builtin, tt.arg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if cfg == nil {
				t.Fatal("Expected a config, got nil")
			}
			if cfg.Image.Width <= 0 || cfg.Image.Height <= 0 {
				t.Errorf("Expected positive image dimensions, got %dx%d", cfg.Image.Width, cfg.Image.Height)
			}
		})
	}
}

func TestResolveConfigDefaultPath(t *testing.T) {
	// With no argument the loader must look for scene.json in the
	// working directory.
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	defer os.Chdir(wd)

	if err := scene.SaveConfig(scene.NewEmptyScene(), "scene.json"); err != nil {
		t.Fatalf("Failed to save scene.json: %v", err)
	}

	cfg, err := resolveConfig("", "")
	if err != nil {
		t.Fatalf("Expected scene.json to be picked up, got error: %v", err)
	}
	if cfg.Image.Filename != "empty.png" {
		t.Errorf("Expected the empty scene's filename, got %q", cfg.Image.Filename)
	}
}

func TestOutputPath(t *testing.T) {
	cfg := scene.NewEmptyScene()

	if got := outputPath(cfg, ""); got != "empty.png" {
		t.Errorf("Expected the scene's own filename, got %q", got)
	}
	if got := outputPath(cfg, "override.png"); got != "override.png" {
		t.Errorf("Expected the override, got %q", got)
	}
}

func TestWritePNGFile(t *testing.T) {
	frame := renderer.NewFramebuffer(8, 4)
	path := filepath.Join(t.TempDir(), "out.png")

	if err := writePNGFile(frame, path); err != nil {
		t.Fatalf("Failed to write PNG: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Written file is not a valid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("Expected an 8x4 PNG, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestWritePNGFileBadPath(t *testing.T) {
	frame := renderer.NewFramebuffer(2, 2)
	err := writePNGFile(frame, filepath.Join(t.TempDir(), "missing", "out.png"))
	if err == nil {
		t.Error("Expected an error for an unwritable path")
	}
}
