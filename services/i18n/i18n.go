// Package i18n serves the site's UI strings from the bundled locale files.
// Keys are dot paths into the nested JSON, e.g. "lead.form.submit".
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"path"
	"strings"
	"sync"
)

//go:embed *.json
var localeFiles embed.FS

const defaultLang = "ru"

// SupportedLanguages lists the locales shipped with the site, default first
var SupportedLanguages = []string{"ru", "en"}

// Catalog maps a language to its flattened messages
type Catalog map[string]map[string]string

var (
	catalog = Catalog{}
	mu      sync.RWMutex
)

// IsSupported reports whether lang has a bundled locale file
func IsSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// DefaultLanguage returns the site language used when nothing else matches
func DefaultLanguage() string {
	return defaultLang
}

// Match returns lang when it is supported, the default language otherwise.
// Region subtags are ignored: "en-GB" matches "en".
func Match(lang string) string {
	base := strings.ToLower(strings.TrimSpace(strings.SplitN(lang, "-", 2)[0]))
	if IsSupported(base) {
		return base
	}
	return defaultLang
}

// Load reads every bundled locale file. It may be called more than once.
func Load() error {
	loaded := Catalog{}
	for _, lang := range SupportedLanguages {
		name := lang + ".json"
		raw, err := localeFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", name, err)
		}

		messages, err := parseLocale(raw)
		if err != nil {
			return fmt.Errorf("failed to parse locale %s: %w", path.Base(name), err)
		}
		loaded[lang] = messages
		log.Printf("Loaded locale: %s (%d keys)", lang, len(messages))
	}

	mu.Lock()
	catalog = loaded
	mu.Unlock()
	return nil
}

func parseLocale(raw []byte) (map[string]string, error) {
	var nested map[string]interface{}
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, err
	}
	flat := make(map[string]string)
	flatten("", nested, flat)
	return flat, nil
}

// flatten turns nested objects into dot-path keys
func flatten(prefix string, nested map[string]interface{}, result map[string]string) {
	for k, v := range nested {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		if child, ok := v.(map[string]interface{}); ok {
			flatten(key, child, result)
			continue
		}
		result[key] = fmt.Sprint(v)
	}
}

// T translates key into the language stored in ctx.
// Missing keys fall back to Russian, then to the key itself.
func T(ctx context.Context, key string, args ...map[string]interface{}) string {
	return Translate(GetLocale(ctx), key, args...)
}

// Translate translates key into lang
func Translate(lang, key string, args ...map[string]interface{}) string {
	mu.RLock()
	msg, ok := catalog[lang][key]
	if !ok {
		msg, ok = catalog[defaultLang][key]
	}
	mu.RUnlock()

	if !ok {
		return key
	}
	return format(msg, args...)
}

// format substitutes {name} placeholders from the first args map
func format(text string, args ...map[string]interface{}) string {
	if len(args) == 0 || len(args[0]) == 0 {
		return text
	}
	pairs := make([]string, 0, len(args[0])*2)
	for k, v := range args[0] {
		pairs = append(pairs, "{"+k+"}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

type contextKey string

const LocaleContextKey contextKey = "locale"

// WithLocale returns a copy of ctx carrying lang
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, LocaleContextKey, lang)
}

// GetLocale returns the language stored by WithLocale, "ru" when absent
func GetLocale(ctx context.Context) string {
	if lang, ok := ctx.Value(LocaleContextKey).(string); ok && lang != "" {
		return lang
	}
	return defaultLang
}
