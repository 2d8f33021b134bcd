package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/escalopa/quran-reader/internal/domain"
)

// FallbackLanguage is consulted for keys missing from the requested language
const FallbackLanguage = domain.LangIndonesian

type I18n struct {
	translations map[domain.Language]map[string]string
	surahs       map[domain.Language][]string
}

type translationFile struct {
	Messages map[string]string `yaml:"messages"`
	Surahs   []string          `yaml:"surahs"`
}

// NewI18n loads <lang>.yaml from localesDir for every supported language.
// Only the fallback language file is mandatory.
func NewI18n(localesDir string) (*I18n, error) {
	return load(os.DirFS(localesDir))
}

func load(fsys fs.FS) (*I18n, error) {
	i18n := &I18n{
		translations: make(map[domain.Language]map[string]string),
		surahs:       make(map[domain.Language][]string),
	}

	for _, lang := range domain.Languages() {
		err := i18n.loadTranslations(fsys, lang, string(lang)+".yaml")
		if errors.Is(err, fs.ErrNotExist) && lang != FallbackLanguage {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load %s translations: %w", lang, err)
		}
	}

	return i18n, nil
}

func (i *I18n) loadTranslations(fsys fs.FS, lang domain.Language, filename string) error {
	data, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	var tf translationFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("unmarshal yaml: %w", err)
	}
	if len(tf.Surahs) > 0 && len(tf.Surahs) != domain.SurahCount {
		return fmt.Errorf("%s lists %d surah names, want %d", filename, len(tf.Surahs), domain.SurahCount)
	}

	i.translations[lang] = tf.Messages
	i.surahs[lang] = tf.Surahs

	return nil
}

// Get retrieves a translated message, falling back to the fallback language and then to the key
func (i *I18n) Get(lang domain.Language, key string, args ...interface{}) string {
	msg, ok := i.translations[lang][key]
	if !ok {
		msg, ok = i.translations[FallbackLanguage][key]
	}
	if !ok {
		return key
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	return msg
}

// GetSurahName retrieves the localized name of a Surah, or the catalog name when
// the language file carries no list
func (i *I18n) GetSurahName(lang domain.Language, surahNumber int) string {
	if surahs := i.surahs[lang]; surahNumber >= 1 && surahNumber <= len(surahs) {
		return surahs[surahNumber-1]
	}

	surah, err := domain.GetSurah(surahNumber)
	if err != nil {
		return fmt.Sprintf("Surah %d", surahNumber)
	}
	return surah.Name
}

// FormatSurahButton formats a surah button text with number and name
func FormatSurahButton(lang domain.Language, i18n domain.I18nPort, surahNumber int) string {
	name := i18n.GetSurahName(lang, surahNumber)
	return fmt.Sprintf("%d. %s", surahNumber, strings.TrimSpace(name))
}
