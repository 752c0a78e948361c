// Package hud renders the text overlays: the resource tally and the debug
// inspector.
package hud

import (
	"strings"

	"github.com/noname-game/horde/internal/component"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Tally is the resource inventory as "gold 1,204  crystals 3 ...".
func Tally(counts [component.ResourceKindCount]uint32) string {
	var b strings.Builder
	for _, kind := range component.AllResourceKinds() {
		if b.Len() > 0 {
			b.WriteString("  ")
		}
		b.WriteString(printer.Sprintf("%s %d", kind, counts[kind]))
	}
	return b.String()
}

// Stats is what the inspector shows.
type Stats struct {
	Tick      uint64
	Entities  int
	Enemies   int
	Dying     int
	Resources int
	Colliders int
	Player    string
}

// Inspector formats stats as one line per value.
func Inspector(s Stats) string {
	lines := []string{
		printer.Sprintf("tick      %d", s.Tick),
		printer.Sprintf("entities  %d", s.Entities),
		printer.Sprintf("enemies   %d (%d dying)", s.Enemies, s.Dying),
		printer.Sprintf("resources %d", s.Resources),
		printer.Sprintf("colliders %d", s.Colliders),
	}
	if s.Player != "" {
		lines = append(lines, "player    "+s.Player)
	}
	return strings.Join(lines, "\n")
}
