// Package render turns argv parse errors and command trees into text for a
// terminal. Messages come from a locale-keyed Catalog; colors come from a
// Theme.
package render

import (
	"sync"

	"github.com/dzonerzy/go-argv/argv"
)

// Catalog produces the display message for an error code
type Catalog interface {
	Message(code argv.ErrorCode, placeholders []string) string
}

// MapCatalog is a Catalog backed by a code to template table. Templates use
// positional placeholders {0}, {1}, ... Codes missing from the table fall
// back to the built-in English template.
type MapCatalog map[argv.ErrorCode]string

// Message implements Catalog
func (c MapCatalog) Message(code argv.ErrorCode, placeholders []string) string {
	tmpl, ok := c[code]
	if !ok {
		tmpl = argv.DefaultTemplate(code)
	}
	return argv.Expand(tmpl, placeholders)
}

// English is the built-in catalogue
var English = englishCatalog()

func englishCatalog() MapCatalog {
	c := make(MapCatalog, len(argv.ErrorCodes))
	for _, code := range argv.ErrorCodes {
		c[code] = argv.DefaultTemplate(code)
	}
	return c
}

var (
	catalogMu      sync.RWMutex
	defaultCatalog Catalog = English
	locales                = map[string]Catalog{"en": English}
)

// SetDefaultCatalog replaces the process-wide default catalogue. A nil
// catalog restores English.
func SetDefaultCatalog(c Catalog) {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	if c == nil {
		c = English
	}
	defaultCatalog = c
}

// DefaultCatalog returns the process-wide default catalogue
func DefaultCatalog() Catalog {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	return defaultCatalog
}

// RegisterLocale makes c available under a locale key such as "de"
func RegisterLocale(locale string, c Catalog) {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	locales[locale] = c
}

// ForLocale returns the catalogue registered for locale, or the default
// catalogue when none is
func ForLocale(locale string) Catalog {
	catalogMu.RLock()
	c, ok := locales[locale]
	catalogMu.RUnlock()
	if ok {
		return c
	}
	return DefaultCatalog()
}
