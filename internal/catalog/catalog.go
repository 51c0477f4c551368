// Package catalog defines the set of learnable topics per proficiency level.
// Provisioning walks the catalog to guarantee one card per (user, topic).
package catalog

import (
	"fmt"
	"strings"

	"github.com/mariana/linguaflash/internal/models"
	"github.com/xuri/excelize/v2"
)

// Entry is one learnable topic: a grammar rule or a vocabulary lemma.
type Entry struct {
	Language string
	Level    string
	Kind     string
	Topic    string
}

// Catalog holds topic entries grouped by language.
type Catalog struct {
	entries []Entry
}

// New builds a catalog from entries, dropping nothing; validation happens at
// load time.
func New(entries []Entry) *Catalog {
	return &Catalog{entries: entries}
}

// EntriesUpTo returns every entry of the language at or below the given
// level, in catalog order.
func (c *Catalog) EntriesUpTo(language, level string) []Entry {
	maxIdx := models.LevelIndex(level)
	if maxIdx < 0 {
		return nil
	}
	var out []Entry
	for _, e := range c.entries {
		if e.Language != language {
			continue
		}
		if idx := models.LevelIndex(e.Level); idx >= 0 && idx <= maxIdx {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the total number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// LoadXLSX reads a catalog workbook. Expected columns on the first sheet:
// A language, B level, C kind, D topic; the first row is a header.
func LoadXLSX(path string) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog sheet %q: %w", sheet, err)
	}

	var entries []Entry
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 4 {
			continue
		}
		e := Entry{
			Language: strings.TrimSpace(row[0]),
			Level:    strings.ToUpper(strings.TrimSpace(row[1])),
			Kind:     strings.ToLower(strings.TrimSpace(row[2])),
			Topic:    strings.TrimSpace(row[3]),
		}
		if e.Topic == "" || e.Language == "" {
			continue
		}
		if models.LevelIndex(e.Level) < 0 {
			return nil, fmt.Errorf("catalog row %d: unknown level %q", i+1, e.Level)
		}
		if e.Kind != models.KindGrammar && e.Kind != models.KindVocabulary {
			return nil, fmt.Errorf("catalog row %d: unknown kind %q", i+1, e.Kind)
		}
		entries = append(entries, e)
	}
	return New(entries), nil
}

// Default returns the small built-in catalog used when no workbook is
// configured. It covers enough topics to make provisioning useful in
// development.
func Default() *Catalog {
	return New([]Entry{
		{Language: "de", Level: "A1", Kind: models.KindVocabulary, Topic: "der Hund"},
		{Language: "de", Level: "A1", Kind: models.KindVocabulary, Topic: "die Katze"},
		{Language: "de", Level: "A1", Kind: models.KindVocabulary, Topic: "das Haus"},
		{Language: "de", Level: "A1", Kind: models.KindGrammar, Topic: "Präsens"},
		{Language: "de", Level: "A2", Kind: models.KindGrammar, Topic: "Akkusativ"},
		{Language: "de", Level: "A2", Kind: models.KindVocabulary, Topic: "die Arbeit"},
		{Language: "de", Level: "B1", Kind: models.KindGrammar, Topic: "Konjunktiv II"},
		{Language: "de", Level: "B1", Kind: models.KindVocabulary, Topic: "die Erfahrung"},
		{Language: "de", Level: "B2", Kind: models.KindGrammar, Topic: "Passiv"},
		{Language: "de", Level: "C1", Kind: models.KindGrammar, Topic: "Nominalisierung"},
		{Language: "de", Level: "C2", Kind: models.KindVocabulary, Topic: "die Beharrlichkeit"},
	})
}
