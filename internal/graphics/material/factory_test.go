package material

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"glsl", LanguageGLSL},
		{"GLSL", LanguageGLSL},
		{"hlsl", LanguageHLSL},
		{"cg", LanguageCG},
		{"", LanguageCG},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLanguage(tt.in); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRevisionTracksGlobals(t *testing.T) {
	f := New("")
	rev := f.Revision()

	f.SetGlobalSetting("fog", "true")
	if f.Revision() == rev {
		t.Errorf("Expected revision bump on a new global")
	}
	rev = f.Revision()
	f.SetGlobalSetting("fog", "true")
	if f.Revision() != rev {
		t.Errorf("Expected no bump for an unchanged global")
	}
	f.SetCurrentLanguage(LanguageHLSL)
	f.SetShadersEnabled(false)
	if got := f.Revision() - rev; got != 2 {
		t.Errorf("Expected 2 bumps, got %d", got)
	}
	// shared parameters are uniforms, not preprocessor state
	f.SetSharedParameter("waterLevel", float32(4))
	if got := f.Revision() - rev; got != 2 {
		t.Errorf("Expected shared parameters to keep the revision, got %d bumps", got)
	}
}

func TestSharedParameters(t *testing.T) {
	f := New("")
	f.SetSharedParameter("waterTimer", float32(1.5))
	f.SetSharedParameter("viewportBackground", mgl32.Vec3{0.1, 0.2, 0.3})

	if v, ok := f.SharedFloat("waterTimer"); !ok || v != 1.5 {
		t.Errorf("Expected 1.5, got %f", v)
	}
	if _, ok := f.SharedFloat("viewportBackground"); ok {
		t.Errorf("Expected a vector not to read as float")
	}
	if v, ok := f.SharedVec3("viewportBackground"); !ok || v != (mgl32.Vec3{0.1, 0.2, 0.3}) {
		t.Errorf("Expected background vector, got %v", v)
	}
}

func TestLoadAllFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"water.mat":            "material water {}",
		"shaders/water.shader": "#include \"core.h\"",
		"objects.shaderset":    "shader_set objects {}",
		"readme.txt":           "not a material",
	}
	for name, data := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	f := New(dir)
	if err := f.LoadAllFiles(); err != nil {
		t.Fatalf("LoadAllFiles failed: %v", err)
	}
	got := f.Files()
	want := []string{"objects.shaderset", "shaders/water.shader", "water.mat"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, got[i])
		}
	}

	rev := f.Revision()
	if err := f.ReloadFile("water.mat"); err != nil {
		t.Fatalf("ReloadFile failed: %v", err)
	}
	if f.Revision() == rev {
		t.Errorf("Expected reload to bump the revision")
	}
	if err := f.ReloadFile("sky.mat"); !errors.Is(err, ErrUnknownFile) {
		t.Errorf("Expected ErrUnknownFile, got %v", err)
	}
}

func TestTextureDefaults(t *testing.T) {
	f := New("")
	f.SetDefaultTextureFiltering(ParseTextureFilter("trilinear"))
	f.SetDefaultAnisotropy(8)
	f.SetDefaultNumMipmaps(4)
	f.SetTextureAlias("WaterReflection", "WaterReflection")
	if f.DefaultTextureFiltering() != FilterTrilinear || f.DefaultAnisotropy() != 8 || f.DefaultNumMipmaps() != 4 {
		t.Errorf("Expected trilinear x8 with 4 mipmaps")
	}
	if f.TextureAlias("WaterReflection") != "WaterReflection" {
		t.Errorf("Expected alias bound")
	}
	if ParseTextureFilter("nearest") != FilterNone {
		t.Errorf("Expected unknown filtering to map to none")
	}
}

func TestSetCacheFolder(t *testing.T) {
	f := New("")
	dir := filepath.Join(t.TempDir(), "shadercache")
	if err := f.SetCacheFolder(dir); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("Expected cache folder created")
	}
	if f.CacheFolder() != dir {
		t.Errorf("Expected %s, got %s", dir, f.CacheFolder())
	}
}
