package translator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string // List of supported languages
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

var defaultLanguages = []string{LanguageEn, LanguageFr}

var matcher = language.NewMatcher([]language.Tag{language.English, language.French})

// InitTranslator loads every *.toml file of the translation folder into the
// shared bundle and resets the language matcher. A missing folder leaves an
// empty English bundle.
func InitTranslator(cfg Config) error {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	supported := cfg.SupportedLanguages
	if len(supported) == 0 {
		supported = defaultLanguages
	}
	m, err := newMatcher(supported)
	if err != nil {
		return err
	}
	matcher = m

	lstFiles, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return fmt.Errorf("read translation folder: %w", err)
	}

	for _, f := range lstFiles {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".toml") {
			continue
		}
		if _, err := Translator.LoadMessageFile(filepath.Join(cfg.TranslationFolder, f.Name())); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
	return nil
}

// MatchLanguage picks the best supported language for an Accept-Language
// header, defaulting to English.
func MatchLanguage(acceptLanguage string) string {
	if acceptLanguage == "" {
		return LanguageEn
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}
	tag, _, _ := matcher.Match(tags...)
	base, _ := tag.Base()
	return base.String()
}

// newMatcher puts English first since the matcher falls back to its first
// tag when nothing in the header is supported.
func newMatcher(languages []string) (language.Matcher, error) {
	tags := []language.Tag{language.English}
	seen := map[language.Tag]bool{language.English: true}
	for _, lang := range languages {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("parse supported language %q: %w", lang, err)
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return language.NewMatcher(tags), nil
}
