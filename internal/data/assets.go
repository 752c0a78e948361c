package data

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingAsset is returned when a sheet, layout or clip lookup fails.
// Callers log it and skip the operation; the next timer firing retries.
var ErrMissingAsset = errors.New("missing asset")

// Layout is the frame grid of a sprite sheet.
type Layout struct {
	TileWidth  float64 `yaml:"tile_width"`
	TileHeight float64 `yaml:"tile_height"`
	Columns    int     `yaml:"columns"`
	Rows       int     `yaml:"rows"`
}

// Sheet is a sprite sheet image bound to its layout.
type Sheet struct {
	Name   string `yaml:"-"`
	Image  string `yaml:"image"`
	Layout string `yaml:"layout"`
}

type assetsFile struct {
	Layouts map[string]Layout `yaml:"layouts"`
	Sheets  map[string]Sheet  `yaml:"sheets"`
	// group (character, monster, resources) -> clip name -> frame indices
	Animations map[string]map[string][]int `yaml:"animations"`
}

// Library is the read-only asset catalogue handed to systems after loading.
type Library struct {
	layouts map[string]Layout
	sheets  map[string]Sheet
	clips   map[string][]int
}

func NewLibrary() *Library {
	return &Library{
		layouts: make(map[string]Layout),
		sheets:  make(map[string]Sheet),
		clips:   make(map[string][]int),
	}
}

// LoadLibrary loads sheets, layouts and named clips from a YAML file.
func LoadLibrary(path string) (*Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read assets: %w", err)
	}
	var f assetsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse assets: %w", err)
	}
	l := NewLibrary()
	for name, layout := range f.Layouts {
		l.AddLayout(name, layout)
	}
	for name, sheet := range f.Sheets {
		l.AddSheet(name, sheet.Image, sheet.Layout)
	}
	for group, clips := range f.Animations {
		for name, frames := range clips {
			if _, dup := l.clips[name]; dup {
				return nil, fmt.Errorf("parse assets: clip %q in group %q defined twice", name, group)
			}
			l.AddClip(name, frames)
		}
	}
	return l, nil
}

func (l *Library) AddLayout(name string, layout Layout) { l.layouts[name] = layout }

func (l *Library) AddSheet(name, image, layout string) {
	l.sheets[name] = Sheet{Name: name, Image: image, Layout: layout}
}

func (l *Library) AddClip(name string, frames []int) {
	l.clips[name] = append([]int(nil), frames...)
}

// Clip returns the frame indices of a named clip.
func (l *Library) Clip(name string) ([]int, error) {
	frames, ok := l.clips[name]
	if !ok || len(frames) == 0 {
		return nil, fmt.Errorf("clip %q: %w", name, ErrMissingAsset)
	}
	return frames, nil
}

// Sheet finds a sheet by exact name, falling back to the first sheet (in name
// order) whose name contains the given one, so "monk" finds "monsters/monk".
func (l *Library) Sheet(name string) (Sheet, error) {
	if s, ok := l.sheets[name]; ok {
		return s, nil
	}
	names := make([]string, 0, len(l.sheets))
	for n := range l.sheets {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if strings.Contains(n, name) {
			return l.sheets[n], nil
		}
	}
	return Sheet{}, fmt.Errorf("sheet %q: %w", name, ErrMissingAsset)
}

// Layout returns the frame grid of a sheet.
func (l *Library) Layout(sheet Sheet) (Layout, error) {
	layout, ok := l.layouts[sheet.Layout]
	if !ok {
		return Layout{}, fmt.Errorf("layout %q of sheet %q: %w", sheet.Layout, sheet.Name, ErrMissingAsset)
	}
	return layout, nil
}

// Archetype is everything needed to build an animated entity of one kind.
type Archetype struct {
	Name      string
	Sheet     Sheet
	Layout    Layout
	StartClip string
	Frames    []int
}

// Archetype resolves a sheet, its layout and the named starting clip.
// Any miss returns ErrMissingAsset.
func (l *Library) Archetype(sheetName, clip string) (Archetype, error) {
	sheet, err := l.Sheet(sheetName)
	if err != nil {
		return Archetype{}, err
	}
	layout, err := l.Layout(sheet)
	if err != nil {
		return Archetype{}, err
	}
	frames, err := l.Clip(clip)
	if err != nil {
		return Archetype{}, err
	}
	return Archetype{Name: sheetName, Sheet: sheet, Layout: layout, StartClip: clip, Frames: frames}, nil
}

// Count returns the number of named clips.
func (l *Library) Count() int {
	return len(l.clips)
}
