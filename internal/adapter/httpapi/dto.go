package httpapi

import (
	"github.com/escalopa/quran-reader/internal/application"
	"github.com/escalopa/quran-reader/internal/domain"
	"github.com/escalopa/quran-reader/internal/visibility"
)

type SurahResponse struct {
	Number     int    `json:"number"`
	Name       string `json:"name"`
	NameArabic string `json:"nameArabic"`
	Meaning    string `json:"meaning"`
	Ayahs      int    `json:"ayahs"`
	Revelation string `json:"revelation"`
	Juz        []int  `json:"juz"`
}

func toSurahResponse(s domain.Surah) SurahResponse {
	return SurahResponse{
		Number:     s.Number,
		Name:       s.Name,
		NameArabic: s.NameArabic,
		Meaning:    s.Meaning,
		Ayahs:      s.Ayahs,
		Revelation: string(s.Revelation),
		Juz:        s.Juz(),
	}
}

func toSurahResponses(surahs []domain.Surah) []SurahResponse {
	out := make([]SurahResponse, 0, len(surahs))
	for _, s := range surahs {
		out = append(out, toSurahResponse(s))
	}
	return out
}

type TajwidRuleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NameArabic  string `json:"nameArabic"`
	Description string `json:"description"`
	Letters     string `json:"letters"`
	Example     string `json:"example"`
	Color       string `json:"color"`
}

func toTajwidRuleResponse(r domain.TajwidRule) TajwidRuleResponse {
	return TajwidRuleResponse(r)
}

type AyahResponse struct {
	Number          int    `json:"number"`
	Text            string `json:"text"`
	Transliteration string `json:"transliteration,omitempty"`
	Translation     string `json:"translation,omitempty"`
	Page            int    `json:"page"`
}

// ViewResponse describes an open surah. Clients report visibility batches
// tagged with ObservationID; batches for an older observation are dropped.
type ViewResponse struct {
	SessionID     string         `json:"sessionId"`
	ObservationID string         `json:"observationId"`
	State         string         `json:"state"`
	Surah         SurahResponse  `json:"surah"`
	ResumeAyah    int            `json:"resumeAyah"`
	CurrentAyah   int            `json:"currentAyah"`
	Page          int            `json:"page"`
	Pages         int            `json:"pages"`
	Ayahs         []AyahResponse `json:"ayahs,omitempty"`
}

func toViewResponse(v *application.View, withAyahs bool) ViewResponse {
	resp := ViewResponse{
		SessionID:     v.SessionID(),
		ObservationID: v.ObservationID,
		State:         v.State().String(),
		Surah:         toSurahResponse(v.Surah),
		ResumeAyah:    v.ResumeAyah,
		CurrentAyah:   v.Current(),
		Page:          v.Page(),
		Pages:         v.Pages(),
	}
	if withAyahs {
		resp.Ayahs = make([]AyahResponse, 0, len(v.Ayahs))
		for _, a := range v.Ayahs {
			resp.Ayahs = append(resp.Ayahs, AyahResponse{
				Number:          a.AyahNumber,
				Text:            a.Text,
				Transliteration: a.Transliteration,
				Translation:     a.Translation,
				Page:            v.PageOf(a.AyahNumber),
			})
		}
	}
	return resp
}

type ResumeResponse struct {
	Surah SurahResponse `json:"surah"`
	Ayah  int           `json:"ayah"`
}

type PrayerTimeResponse struct {
	Name       string `json:"name"`
	NameArabic string `json:"nameArabic"`
	Time       string `json:"time"`
}

type PrayerScheduleResponse struct {
	Date      string               `json:"date"`
	HijriDate string               `json:"hijriDate,omitempty"`
	Timezone  string               `json:"timezone,omitempty"`
	Location  domain.Location      `json:"location"`
	Times     []PrayerTimeResponse `json:"times"`
	Next      *PrayerTimeResponse  `json:"next,omitempty"`
	Fallback  bool                 `json:"fallback"`
}

func toPrayerTime(t domain.PrayerTime) PrayerTimeResponse {
	return PrayerTimeResponse{Name: t.Name, NameArabic: t.NameArabic, Time: t.Time}
}

type OpenSurahRequest struct {
	Surah int `json:"surah" validate:"required"`
}

type PageRequest struct {
	Page int `json:"page"`
}

type VisibilityRequest struct {
	ObservationID string             `json:"observationId" validate:"required"`
	Entries       []visibility.Entry `json:"entries" validate:"required,dive"`
}

type VisibilityResponse struct {
	Applied     bool `json:"applied"`
	CurrentAyah int  `json:"currentAyah"`
}

type FontRequest struct {
	Kind  domain.FontKind `json:"kind" validate:"required"`
	Steps int             `json:"steps" validate:"ne=0"`
}

type LanguageRequest struct {
	Language domain.Language `json:"language" validate:"required"`
}

type FeedbackRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
