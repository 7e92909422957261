package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	m := New()
	if got := m.GetInt("resolution x", CategoryVideo); got != 800 {
		t.Errorf("Expected resolution x 800, got %d", got)
	}
	if got := m.GetFloat("max viewing distance", CategoryViewingDistance); got != 5600 {
		t.Errorf("Expected max viewing distance 5600, got %f", got)
	}
	if m.GetBool("shader", CategoryWater) {
		t.Errorf("Expected water shader off by default")
	}
	if m.Pending() != 0 {
		t.Errorf("Expected no pending changes, got %d", m.Pending())
	}
}

func TestSetRecordsChangeOnce(t *testing.T) {
	m := New()
	m.SetInt("resolution x", CategoryVideo, 1024)
	m.SetInt("resolution x", CategoryVideo, 1280)
	m.SetBool("shader", CategoryWater, true)

	changes := m.Apply()
	if len(changes) != 2 {
		t.Fatalf("Expected 2 changes, got %d: %v", len(changes), changes)
	}
	if !changes[0].Is(CategoryVideo, "resolution x") {
		t.Errorf("Expected first change Video/resolution x, got %v", changes[0])
	}
	if !changes.Contains(CategoryWater, "shader") {
		t.Errorf("Expected Water/shader in %v", changes)
	}
	if got := m.GetInt("resolution x", CategoryVideo); got != 1280 {
		t.Errorf("Expected 1280, got %d", got)
	}
	if again := m.Apply(); len(again) != 0 {
		t.Errorf("Expected empty batch after apply, got %v", again)
	}
}

func TestSetSameValueIsNotAChange(t *testing.T) {
	m := New()
	m.SetInt("resolution y", CategoryVideo, 600)
	m.SetString("texture filtering", CategoryGeneral, "anisotropic")
	if changes := m.Apply(); len(changes) != 0 {
		t.Errorf("Expected no changes, got %v", changes)
	}
}

func TestSetFloatClamps(t *testing.T) {
	m := New()
	m.SetFloat("field of view", CategoryGeneral, 500)
	if got := m.GetFloat("field of view", CategoryGeneral); got != 179 {
		t.Errorf("Expected fov clamped to 179, got %f", got)
	}
}

func TestLookupUnknown(t *testing.T) {
	m := New()
	if _, err := m.Lookup("nope", CategoryVideo); !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("Expected ErrUnknownSetting, got %v", err)
	}
	if _, err := m.Lookup("gamma", CategoryVideo); err != nil {
		t.Errorf("Expected gamma to be known, got %v", err)
	}
}

func TestLoadMergesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	data := "[Video]\n\"resolution x\" = 1920\n\"resolution y\" = 1080\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	m := New()
	if err := m.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := m.GetInt("resolution x", CategoryVideo); got != 1920 {
		t.Errorf("Expected 1920, got %d", got)
	}
	if got := m.GetFloat("gamma", CategoryVideo); got < 2.19 || got > 2.21 {
		t.Errorf("Expected default gamma kept, got %f", got)
	}
	if m.Pending() != 0 {
		t.Errorf("Expected load to produce no changes")
	}
}
