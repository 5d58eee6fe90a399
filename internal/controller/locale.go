package controller

import (
	"fmt"
	"sort"
	"strings"
)

// Locale holds the user-facing strings of the detail panel
type Locale struct {
	Name       string `json:"name"`
	NoRelated  string `json:"no_related"`
	SelectTerm string `json:"select_term"`
	ClickHint  string `json:"click_hint"`
	IDFormat   string `json:"id_format"`
}

var locales = map[string]Locale{
	"ru": {
		Name:       "ru",
		NoRelated:  "Нет связанных терминов",
		SelectTerm: "Выберите термин",
		ClickHint:  "Кликните на узел графа для просмотра деталей",
		IDFormat:   "ID: %s",
	},
	"en": {
		Name:       "en",
		NoRelated:  "No related terms",
		SelectTerm: "Select a term",
		ClickHint:  "Click a node in the graph to see its details",
		IDFormat:   "ID: %s",
	},
}

// DefaultLocale is used when none is configured
const DefaultLocale = "ru"

// LocaleFor looks up a locale by name, e.g. "ru" or "en-US"
func LocaleFor(name string) (Locale, error) {
	if name == "" {
		name = DefaultLocale
	}
	key := strings.ToLower(name)
	if i := strings.IndexAny(key, "-_"); i > 0 {
		key = key[:i]
	}
	l, ok := locales[key]
	if !ok {
		return Locale{}, fmt.Errorf("unsupported locale %q (available: %s)", name, strings.Join(Locales(), ", "))
	}
	return l, nil
}

// Locales lists the supported locale names
func Locales() []string {
	names := make([]string, 0, len(locales))
	for name := range locales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatID renders the id line of the detail panel
func (l Locale) FormatID(id string) string {
	return fmt.Sprintf(l.IDFormat, id)
}
