package domain

import (
	"maps"
	"slices"
)

// PreferencesSlot is the name of the storage slot holding a user's preferences
const PreferencesSlot = "quran-preferences"

// BookmarkedAyah is a favourite ayah with a snapshot of its text
type BookmarkedAyah struct {
	SurahID    int    `json:"surahId"`
	AyahNumber int    `json:"ayahNumber"`
	SurahName  string `json:"surahName"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"` // unix milliseconds
}

// FontSize holds the font sizes, in pixels, of the three text layers
type FontSize struct {
	Arabic      int `json:"arabic"`
	Latin       int `json:"latin"`
	Translation int `json:"translation"`
}

// FontKind selects one text layer
type FontKind string

const (
	FontArabic      FontKind = "arabic"
	FontLatin       FontKind = "latin"
	FontTranslation FontKind = "translation"
)

// FontBounds is the allowed range and step of a text layer
type FontBounds struct {
	Min  int
	Max  int
	Step int
}

// Bounds returns the adjustable range of the font kind
func (k FontKind) Bounds() (FontBounds, bool) {
	switch k {
	case FontArabic:
		return FontBounds{Min: 20, Max: 48, Step: 2}, true
	case FontLatin:
		return FontBounds{Min: 10, Max: 20, Step: 1}, true
	case FontTranslation:
		return FontBounds{Min: 12, Max: 24, Step: 1}, true
	}
	return FontBounds{}, false
}

// Clamp limits v to the bounds
func (b FontBounds) Clamp(v int) int {
	return min(max(v, b.Min), b.Max)
}

// DisplaySetting is a boolean display preference
type DisplaySetting string

const (
	SettingDarkMode        DisplaySetting = "darkMode"
	SettingShowLatin       DisplaySetting = "showLatin"
	SettingShowTranslation DisplaySetting = "showTranslation"
	SettingShowTajwid      DisplaySetting = "showTajwid"
)

// ReadingPreferences is the single durable record kept per user
type ReadingPreferences struct {
	LastReadSurah   *int             `json:"lastReadSurah"`
	LastReadAyah    *int             `json:"lastReadAyah"`
	FavoriteSurahs  []int            `json:"favoriteSurahs"`
	BookmarkedAyahs []BookmarkedAyah `json:"bookmarkedAyahs"`
	SurahProgress   map[int]int      `json:"surahProgress"`
	FontSize        FontSize         `json:"fontSize"`
	DarkMode        bool             `json:"darkMode"`
	ShowLatin       bool             `json:"showLatin"`
	ShowTranslation bool             `json:"showTranslation"`
	ShowTajwid      bool             `json:"showTajwid"`
	ReadingDuration int64            `json:"readingDuration"`
	Location        *Location        `json:"location"`
	Language        Language         `json:"language"`
}

// DefaultPreferences returns the record used when nothing is stored
func DefaultPreferences() ReadingPreferences {
	return ReadingPreferences{
		FavoriteSurahs:  []int{},
		BookmarkedAyahs: []BookmarkedAyah{},
		SurahProgress:   map[int]int{},
		FontSize: FontSize{
			Arabic:      28,
			Latin:       14,
			Translation: 16,
		},
		ShowLatin:       true,
		ShowTranslation: true,
		ShowTajwid:      true,
		Language:        LangIndonesian,
	}
}

// Clone returns a deep copy sharing no memory with p
func (p ReadingPreferences) Clone() ReadingPreferences {
	out := p
	if p.LastReadSurah != nil {
		v := *p.LastReadSurah
		out.LastReadSurah = &v
	}
	if p.LastReadAyah != nil {
		v := *p.LastReadAyah
		out.LastReadAyah = &v
	}
	if p.Location != nil {
		loc := *p.Location
		out.Location = &loc
	}
	out.FavoriteSurahs = slices.Clone(p.FavoriteSurahs)
	out.BookmarkedAyahs = slices.Clone(p.BookmarkedAyahs)
	out.SurahProgress = maps.Clone(p.SurahProgress)
	return out
}

// Normalize repairs collection invariants after decoding: nil collections
// become empty, duplicate favourites and bookmarks keep their first occurrence.
func (p *ReadingPreferences) Normalize() {
	if p.FavoriteSurahs == nil {
		p.FavoriteSurahs = []int{}
	}
	if p.BookmarkedAyahs == nil {
		p.BookmarkedAyahs = []BookmarkedAyah{}
	}
	if p.SurahProgress == nil {
		p.SurahProgress = map[int]int{}
	}

	seen := make(map[int]struct{}, len(p.FavoriteSurahs))
	favorites := p.FavoriteSurahs[:0]
	for _, id := range p.FavoriteSurahs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		favorites = append(favorites, id)
	}
	p.FavoriteSurahs = favorites

	seenAyah := make(map[[2]int]struct{}, len(p.BookmarkedAyahs))
	bookmarks := p.BookmarkedAyahs[:0]
	for _, b := range p.BookmarkedAyahs {
		key := [2]int{b.SurahID, b.AyahNumber}
		if _, ok := seenAyah[key]; ok {
			continue
		}
		seenAyah[key] = struct{}{}
		bookmarks = append(bookmarks, b)
	}
	p.BookmarkedAyahs = bookmarks

	if p.ReadingDuration < 0 {
		p.ReadingDuration = 0
	}
	if !p.Language.Valid() {
		p.Language = LangIndonesian
	}
}

// Progress returns the last viewed ayah of a surah, 1 when never visited
func (p ReadingPreferences) Progress(surahNumber int) int {
	if v, ok := p.SurahProgress[surahNumber]; ok && v >= 1 {
		return v
	}
	return 1
}

// IsFavoriteSurah reports whether the surah is in the favourites list
func (p ReadingPreferences) IsFavoriteSurah(surahNumber int) bool {
	return slices.Contains(p.FavoriteSurahs, surahNumber)
}

// BookmarkIndex returns the position of the bookmark for the compound key, or -1
func (p ReadingPreferences) BookmarkIndex(surahNumber, ayahNumber int) int {
	return slices.IndexFunc(p.BookmarkedAyahs, func(b BookmarkedAyah) bool {
		return b.SurahID == surahNumber && b.AyahNumber == ayahNumber
	})
}

// Display returns the value of a boolean display setting
func (p ReadingPreferences) Display(s DisplaySetting) (bool, bool) {
	switch s {
	case SettingDarkMode:
		return p.DarkMode, true
	case SettingShowLatin:
		return p.ShowLatin, true
	case SettingShowTranslation:
		return p.ShowTranslation, true
	case SettingShowTajwid:
		return p.ShowTajwid, true
	}
	return false, false
}

// SetDisplay assigns a boolean display setting, reporting whether it exists
func (p *ReadingPreferences) SetDisplay(s DisplaySetting, v bool) bool {
	switch s {
	case SettingDarkMode:
		p.DarkMode = v
	case SettingShowLatin:
		p.ShowLatin = v
	case SettingShowTranslation:
		p.ShowTranslation = v
	case SettingShowTajwid:
		p.ShowTajwid = v
	default:
		return false
	}
	return true
}

// Font returns the size of a text layer
func (p ReadingPreferences) Font(k FontKind) int {
	switch k {
	case FontArabic:
		return p.FontSize.Arabic
	case FontLatin:
		return p.FontSize.Latin
	case FontTranslation:
		return p.FontSize.Translation
	}
	return 0
}

// SetFont assigns the size of a text layer
func (p *ReadingPreferences) SetFont(k FontKind, v int) {
	switch k {
	case FontArabic:
		p.FontSize.Arabic = v
	case FontLatin:
		p.FontSize.Latin = v
	case FontTranslation:
		p.FontSize.Translation = v
	}
}
