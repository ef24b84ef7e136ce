// Package localization serves the localized strings the API returns to
// users. English defaults are compiled in; a directory of <lang>.json files
// can add languages or override individual keys at deploy time.
package localization

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed locales/en.json
var defaultCatalog []byte

// Localizer holds per-language translation maps.
type Localizer struct {
	translations map[string]map[string]string
	mu           sync.RWMutex
}

// NewLocalizer builds a Localizer from the embedded English catalog plus any
// <lang>.json files found under path. An empty path keeps just the defaults.
func NewLocalizer(path string) (*Localizer, error) {
	l := &Localizer{
		translations: make(map[string]map[string]string),
	}

	var en map[string]string
	if err := json.Unmarshal(defaultCatalog, &en); err != nil {
		return nil, fmt.Errorf("failed to parse embedded catalog: %w", err)
	}
	l.translations["en"] = en

	if path == "" {
		return l, nil
	}

	files, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read locales directory: %w", err)
	}
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(file.Name(), ".json")

		data, err := os.ReadFile(filepath.Join(path, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale file %s: %w", file.Name(), err)
		}
		var overrides map[string]string
		if err := json.Unmarshal(data, &overrides); err != nil {
			return nil, fmt.Errorf("failed to parse locale file %s: %w", file.Name(), err)
		}

		catalog, ok := l.translations[lang]
		if !ok {
			catalog = make(map[string]string)
			l.translations[lang] = catalog
		}
		for key, value := range overrides {
			catalog[key] = value
		}
	}

	return l, nil
}

// GetString returns the string for key in lang, falling back to English and
// then to the key itself.
func (l *Localizer) GetString(lang, key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if catalog, ok := l.translations[lang]; ok {
		if value, ok := catalog[key]; ok {
			return value
		}
	}
	if lang != "en" {
		if value, ok := l.translations["en"][key]; ok {
			return value
		}
	}
	return key
}

// PickLanguage chooses a supported language from an Accept-Language header
// value, defaulting to English.
func (l *Localizer) PickLanguage(acceptLanguage string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, part := range strings.Split(acceptLanguage, ",") {
		lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		if _, ok := l.translations[lang]; ok {
			return lang
		}
	}
	return "en"
}
