// Package hexcolor resuelve códigos hex (#RRGGBB / #RGB) a nombres de color CSS3.
package hexcolor

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"
)

var ErrUnknownColor = errors.New("invalid color code or no name found for this color")

// Para hex con varios nombres CSS3 nos quedamos con uno estable.
var preferred = map[string]string{
	"#00ffff": "cyan",
	"#ff00ff": "magenta",
	"#808080": "gray",
	"#a9a9a9": "darkgray",
	"#2f4f4f": "darkslategray",
	"#696969": "dimgray",
	"#d3d3d3": "lightgray",
	"#778899": "lightslategray",
	"#708090": "slategray",
}

// Table mapea hex normalizado (#rrggbb) -> nombre y nombre -> hex.
type Table struct {
	mu     sync.RWMutex
	byHex  map[string]string
	byName map[string]string
}

// NewTable arma la tabla CSS3 por defecto.
func NewTable() *Table {
	t := &Table{
		byHex:  make(map[string]string, len(colornames.Map)),
		byName: make(map[string]string, len(colornames.Map)),
	}

	names := make([]string, 0, len(colornames.Map))
	for name := range colornames.Map {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c := colornames.Map[name]
		hex := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
		t.byName[name] = hex
		t.byHex[hex] = name
	}
	for hex, name := range preferred {
		t.byHex[hex] = name
	}
	return t
}

// Merge agrega entradas extra desde TOML:
//
//	tabby = "#b5a48b"
//
// Las entradas existentes se sobreescriben.
func (t *Table) Merge(r io.Reader) error {
	var extra map[string]string
	if err := toml.NewDecoder(r).Decode(&extra); err != nil {
		return fmt.Errorf("hexcolor: decode toml: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for name, raw := range extra {
		name = strings.ToLower(strings.TrimSpace(name))
		hex, ok := normalizeHex(raw)
		if name == "" || !ok {
			return fmt.Errorf("hexcolor: invalid entry %q = %q", name, raw)
		}
		t.byName[name] = hex
		t.byHex[hex] = name
	}
	return nil
}

// Normalize devuelve el nombre canónico para un hex o para un nombre ya resuelto.
func (t *Table) Normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrUnknownColor
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if strings.HasPrefix(s, "#") {
		hex, ok := normalizeHex(s)
		if !ok {
			return "", ErrUnknownColor
		}
		name, ok := t.byHex[hex]
		if !ok {
			return "", ErrUnknownColor
		}
		return name, nil
	}

	name := strings.ToLower(s)
	if _, ok := t.byName[name]; !ok {
		return "", ErrUnknownColor
	}
	return name, nil
}

// Hex devuelve el código #rrggbb de un nombre conocido.
func (t *Table) Hex(name string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	hex, ok := t.byName[strings.ToLower(strings.TrimSpace(name))]
	return hex, ok
}

var defaultTable = NewTable()

// Default es la tabla compartida del proceso.
func Default() *Table { return defaultTable }

// Normalize usa la tabla por defecto.
func Normalize(s string) (string, error) { return defaultTable.Normalize(s) }

func normalizeHex(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "#") {
		return "", false
	}
	digits := s[1:]
	for _, r := range digits {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return "", false
		}
	}
	switch len(digits) {
	case 6:
		return s, true
	case 3:
		// #abc -> #aabbcc
		var b strings.Builder
		b.WriteByte('#')
		for i := 0; i < 3; i++ {
			b.WriteByte(digits[i])
			b.WriteByte(digits[i])
		}
		return b.String(), true
	default:
		return "", false
	}
}
