// Package material is the shader/material factory: global preprocessor
// settings, shared uniform parameters, shader language selection, texture
// aliases and the material source files they apply to.
package material

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"mini-mw/internal/log"
)

var ErrUnknownFile = errors.New("material: unknown file")

// Source file extensions picked up by LoadAllFiles.
var sourceExts = map[string]bool{".mat": true, ".shader": true, ".shaderset": true}

type Language int

const (
	LanguageCG Language = iota
	LanguageHLSL
	LanguageGLSL
)

// ParseLanguage maps a "shader mode" setting value to a language. Anything
// unrecognised falls back to CG.
func ParseLanguage(s string) Language {
	switch strings.ToLower(s) {
	case "glsl":
		return LanguageGLSL
	case "hlsl":
		return LanguageHLSL
	default:
		return LanguageCG
	}
}

func (l Language) String() string {
	switch l {
	case LanguageGLSL:
		return "glsl"
	case LanguageHLSL:
		return "hlsl"
	default:
		return "cg"
	}
}

type TextureFilter int

const (
	FilterNone TextureFilter = iota
	FilterBilinear
	FilterTrilinear
	FilterAnisotropic
)

// ParseTextureFilter maps a "texture filtering" setting value.
func ParseTextureFilter(s string) TextureFilter {
	switch s {
	case "anisotropic":
		return FilterAnisotropic
	case "trilinear":
		return FilterTrilinear
	case "bilinear":
		return FilterBilinear
	default:
		return FilterNone
	}
}

// Factory holds material state shared by every material instance. Changing a
// global setting or the language bumps Revision; instances built against an
// older revision must be recreated.
type Factory struct {
	dir      string
	cacheDir string

	lang           Language
	shadersEnabled bool
	globals        map[string]string
	shared         map[string]any
	aliases        map[string]string
	sources        map[string][]byte
	reloads        map[string]int

	filter     TextureFilter
	anisotropy int
	mipmaps    int

	revision uint64
}

// New creates a factory reading material sources from dir.
func New(dir string) *Factory {
	return &Factory{
		dir:            dir,
		lang:           LanguageGLSL,
		shadersEnabled: true,
		globals:        make(map[string]string),
		shared:         make(map[string]any),
		aliases:        make(map[string]string),
		sources:        make(map[string][]byte),
		reloads:        make(map[string]int),
		anisotropy:     1,
	}
}

// SetCacheFolder sets and creates the compiled shader cache directory.
func (f *Factory) SetCacheFolder(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create shader cache folder: %w", err)
	}
	f.cacheDir = dir
	return nil
}

func (f *Factory) CacheFolder() string { return f.cacheDir }

// LoadAllFiles reads every material source below the factory directory. An
// empty directory path means there is nothing to load.
func (f *Factory) LoadAllFiles() error {
	if f.dir == "" {
		return nil
	}
	return filepath.WalkDir(f.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !sourceExts[filepath.Ext(path)] {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("could not read material file: %w", err)
		}
		rel, err := filepath.Rel(f.dir, path)
		if err != nil {
			return err
		}
		f.sources[filepath.ToSlash(rel)] = data
		return nil
	})
}

// Files lists the loaded sources in name order.
func (f *Factory) Files() []string {
	names := make([]string, 0, len(f.sources))
	for n := range f.sources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ReloadFile re-reads a single loaded source.
func (f *Factory) ReloadFile(name string) error {
	if _, ok := f.sources[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFile, name)
	}
	data, err := os.ReadFile(filepath.Join(f.dir, filepath.FromSlash(name)))
	if err != nil {
		return fmt.Errorf("could not reload material file: %w", err)
	}
	f.sources[name] = data
	f.reloads[name]++
	f.revision++
	log.Debugf("material: reloaded %s", name)
	return nil
}

func (f *Factory) SetGlobalSetting(name, value string) {
	if f.globals[name] == value {
		return
	}
	f.globals[name] = value
	f.revision++
}

func (f *Factory) GlobalSetting(name string) string { return f.globals[name] }

// SetSharedParameter publishes a uniform value visible to every material.
// Values are float32, mgl32.Vec2, mgl32.Vec3 or mgl32.Vec4.
func (f *Factory) SetSharedParameter(name string, value any) {
	f.shared[name] = value
}

func (f *Factory) SharedParameter(name string) (any, bool) {
	v, ok := f.shared[name]
	return v, ok
}

func (f *Factory) SharedFloat(name string) (float32, bool) {
	v, ok := f.shared[name].(float32)
	return v, ok
}

func (f *Factory) SharedVec3(name string) (mgl32.Vec3, bool) {
	v, ok := f.shared[name].(mgl32.Vec3)
	return v, ok
}

func (f *Factory) SetCurrentLanguage(l Language) {
	if f.lang == l {
		return
	}
	f.lang = l
	f.revision++
}

func (f *Factory) CurrentLanguage() Language { return f.lang }

func (f *Factory) SetShadersEnabled(enabled bool) {
	if f.shadersEnabled == enabled {
		return
	}
	f.shadersEnabled = enabled
	f.revision++
}

func (f *Factory) ShadersEnabled() bool { return f.shadersEnabled }

// SetTextureAlias binds a material texture slot to a concrete texture name.
func (f *Factory) SetTextureAlias(alias, texture string) { f.aliases[alias] = texture }

func (f *Factory) TextureAlias(alias string) string { return f.aliases[alias] }

func (f *Factory) SetDefaultTextureFiltering(tf TextureFilter) { f.filter = tf }
func (f *Factory) DefaultTextureFiltering() TextureFilter      { return f.filter }
func (f *Factory) SetDefaultAnisotropy(n int)                  { f.anisotropy = n }
func (f *Factory) DefaultAnisotropy() int                      { return f.anisotropy }
func (f *Factory) SetDefaultNumMipmaps(n int)                  { f.mipmaps = n }
func (f *Factory) DefaultNumMipmaps() int                      { return f.mipmaps }

// Revision changes whenever compiled material instances become stale.
func (f *Factory) Revision() uint64 { return f.revision }
