package domain

import (
	"fmt"
	"time"
)

// Revelation is the place a surah was revealed
type Revelation string

const (
	RevelationMakkiyah  Revelation = "Makkiyah"
	RevelationMadaniyah Revelation = "Madaniyah"
)

// Surah represents a chapter in the Quran
type Surah struct {
	Number     int
	Name       string
	NameArabic string
	Meaning    string
	Ayahs      int
	Revelation Revelation
}

// Juz returns the juz numbers this surah spans
func (s Surah) Juz() []int {
	return JuzSpan(s.Number, s.Ayahs)
}

// Ayah represents a verse in the Quran as delivered by the content source
type Ayah struct {
	SurahNumber     int
	AyahNumber      int
	Text            string
	Transliteration string
	Translation     string
}

// AyahID returns the formatted ayah ID (XXXYYY format)
func (a Ayah) AyahID() string {
	return FormatAyahID(a.SurahNumber, a.AyahNumber)
}

// FormatAyahID formats surah and ayah numbers as a six digit identifier
func FormatAyahID(surahNumber, ayahNumber int) string {
	return fmt.Sprintf("%03d%03d", surahNumber, ayahNumber)
}

// ParseAyahID parses ayah ID (XXXYYY format) to surah and ayah numbers
func ParseAyahID(ayahID string) (surahNumber int, ayahNumber int, err error) {
	if len(ayahID) != 6 {
		return 0, 0, fmt.Errorf("invalid ayah id %q", ayahID)
	}
	if _, err := fmt.Sscanf(ayahID[:3], "%d", &surahNumber); err != nil {
		return 0, 0, fmt.Errorf("parse surah: %w", err)
	}
	if _, err := fmt.Sscanf(ayahID[3:], "%d", &ayahNumber); err != nil {
		return 0, 0, fmt.Errorf("parse ayah: %w", err)
	}
	return surahNumber, ayahNumber, nil
}

// Location is a named point used for prayer time lookup
type Location struct {
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// DefaultLocation is used when the user never shared a location
var DefaultLocation = Location{
	City:      "Jakarta",
	Latitude:  -6.2088,
	Longitude: 106.8456,
}

// PrayerTime is a single entry of a daily schedule, time formatted as HH:MM
type PrayerTime struct {
	Name       string
	NameArabic string
	Time       string
}

// PrayerSchedule represents the six canonical prayer times of a day
type PrayerSchedule struct {
	Date      string
	HijriDate string
	Timezone  string
	Location  Location
	Times     []PrayerTime
	Fallback  bool
}

// FallbackPrayerTimes is served when the prayer-time source is unavailable
func FallbackPrayerTimes() []PrayerTime {
	return []PrayerTime{
		{Name: "Subuh", NameArabic: "الفجر", Time: "04:30"},
		{Name: "Terbit", NameArabic: "الشروق", Time: "05:45"},
		{Name: "Dzuhur", NameArabic: "الظهر", Time: "12:00"},
		{Name: "Ashar", NameArabic: "العصر", Time: "15:15"},
		{Name: "Maghrib", NameArabic: "المغرب", Time: "18:00"},
		{Name: "Isya", NameArabic: "العشاء", Time: "19:15"},
	}
}

// NextPrayer returns the first prayer later than now. When every prayer of the
// day has passed the first prayer of the schedule (tomorrow's Subuh) is returned.
func (p PrayerSchedule) NextPrayer(now time.Time) (PrayerTime, bool) {
	if len(p.Times) == 0 {
		return PrayerTime{}, false
	}
	current := now.Format("15:04")
	for _, t := range p.Times {
		if t.Time > current {
			return t, true
		}
	}
	return p.Times[0], true
}

// Feedback is a user submission forwarded to the feedback relay
type Feedback struct {
	ID      string `json:"id"`
	Name    string `json:"name" validate:"max=100"`
	Email   string `json:"email" validate:"omitempty,email"`
	Message string `json:"message" validate:"required,min=3,max=2000"`
}

// Language represents supported languages
type Language string

const (
	LangIndonesian Language = "id"
	LangJavanese   Language = "jv"
	LangEnglish    Language = "en"
)

// Languages lists every supported language in display order
func Languages() []Language {
	return []Language{LangIndonesian, LangJavanese, LangEnglish}
}

// Valid reports whether the language is supported
func (l Language) Valid() bool {
	switch l {
	case LangIndonesian, LangJavanese, LangEnglish:
		return true
	}
	return false
}
