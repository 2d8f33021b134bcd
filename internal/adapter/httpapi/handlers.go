package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/escalopa/quran-reader/internal/domain"
)

const maxBodyBytes = 1 << 20

// decode reads a JSON body into v and validates it
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", s.log)
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid field %s: failed %q", verrs[0].Namespace(), verrs[0].Tag()), s.log)
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body", s.log)
		return false
	}
	return true
}

func (s *Server) intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name, s.log)
		return 0, false
	}
	return n, true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.log)
}

// handleListSurahs lists the catalog, optionally limited to a juz or the featured surahs
func (s *Server) handleListSurahs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	switch {
	case q.Get("juz") != "":
		juz, err := strconv.Atoi(q.Get("juz"))
		if err != nil || juz < 1 || juz > domain.JuzCount {
			writeError(w, http.StatusBadRequest, "invalid juz", s.log)
			return
		}
		writeJSON(w, http.StatusOK, toSurahResponses(domain.SurahsInJuz(juz)), s.log)
	case q.Get("featured") == "true":
		writeJSON(w, http.StatusOK, toSurahResponses(domain.FeaturedSurahs()), s.log)
	default:
		writeJSON(w, http.StatusOK, toSurahResponses(domain.GetAllSurahs()), s.log)
	}
}

func (s *Server) handleGetSurah(w http.ResponseWriter, r *http.Request) {
	n, ok := s.intParam(w, r, "number")
	if !ok {
		return
	}
	surah, err := domain.GetSurah(n)
	if err != nil {
		handleError(w, err, s.log)
		return
	}
	writeJSON(w, http.StatusOK, toSurahResponse(surah), s.log)
}

func (s *Server) handleListTajwid(w http.ResponseWriter, _ *http.Request) {
	rules := domain.TajwidRules()
	out := make([]TajwidRuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, toTajwidRuleResponse(r))
	}
	writeJSON(w, http.StatusOK, out, s.log)
}

func (s *Server) handleGetTajwid(w http.ResponseWriter, r *http.Request) {
	rule, ok := domain.GetTajwidRule(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown tajwid rule", s.log)
		return
	}
	writeJSON(w, http.StatusOK, toTajwidRuleResponse(rule), s.log)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	surah, ayah, ok := s.service.ResumePoint(r.Context(), getUserID(r.Context()))
	if !ok {
		writeJSON(w, http.StatusOK, nil, s.log)
		return
	}
	writeJSON(w, http.StatusOK, ResumeResponse{Surah: toSurahResponse(surah), Ayah: ayah}, s.log)
}

// handleOpenSurah replaces the user's view with a fresh session on the surah.
// The response carries the whole surah and the ayah to scroll to.
func (s *Server) handleOpenSurah(w http.ResponseWriter, r *http.Request) {
	var req OpenSurahRequest
	if !s.decode(w, r, &req) {
		return
	}
	view, err := s.service.OpenSurah(r.Context(), getUserID(r.Context()), req.Surah, nil)
	if err != nil {
		handleError(w, err, s.log)
		return
	}
	writeJSON(w, http.StatusCreated, toViewResponse(view, true), s.log)
}

func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.View(getUserID(r.Context()))
	if err != nil {
		handleError(w, err, s.log)
		return
	}
	writeJSON(w, http.StatusOK, toViewResponse(view, r.URL.Query().Get("ayahs") == "true"), s.log)
}

func (s *Server) handleCloseView(w http.ResponseWriter, r *http.Request) {
	s.service.CloseView(getUserID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleScrollToPage(w http.ResponseWriter, r *http.Request) {
	var req PageRequest
	if !s.decode(w, r, &req) {
		return
	}
	view, err := s.service.ScrollToPage(r.Context(), getUserID(r.Context()), req.Page)
	if err != nil {
		handleError(w, err, s.log)
		return
	}
	writeJSON(w, http.StatusOK, toViewResponse(view, false), s.log)
}

// handleVisibility applies a batch reported by a client-side observer
func (s *Server) handleVisibility(w http.ResponseWriter, r *http.Request) {
	var req VisibilityRequest
	if !s.decode(w, r, &req) {
		return
	}
	userID := getUserID(r.Context())
	applied, err := s.service.DeliverVisibility(r.Context(), userID, req.ObservationID, req.Entries)
	if err != nil {
		handleError(w, err, s.log)
		return
	}
	resp := VisibilityResponse{Applied: applied}
	if view, err := s.service.View(userID); err == nil {
		resp.CurrentAyah = view.Current()
	}
	writeJSON(w, http.StatusOK, resp, s.log)
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Preferences(r.Context(), getUserID(r.Context())), s.log)
}

func (s *Server) handleAdjustFont(w http.ResponseWriter, r *http.Request) {
	var req FontRequest
	if !s.decode(w, r, &req) {
		return
	}
	size, err := s.service.AdjustFontSize(r.Context(), getUserID(r.Context()), req.Kind, req.Steps)
	if err != nil {
		handleError(w, err, s.log)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"kind": req.Kind, "size": size}, s.log)
}

func (s *Server) handleToggleDisplay(w http.ResponseWriter, r *http.Request) {
	setting := domain.DisplaySetting(chi.URLParam(r, "setting"))
	value, err := s.service.ToggleDisplay(r.Context(), getUserID(r.Context()), setting)
	if err != nil {
		handleError(w, err, s.log)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"setting": setting, "value": value}, s.log)
}

func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var req LanguageRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.service.SetLanguage(r.Context(), getUserID(r.Context()), req.Language); err != nil {
		handleError(w, err, s.log)
		return
	}
	writeJSON(w, http.StatusOK, req, s.log)
}

func (s *Server) handleSetLocation(w http.ResponseWriter, r *http.Request) {
	var loc domain.Location
	if !s.decode(w, r, &loc) {
		return
	}
	if err := s.service.SetLocation(r.Context(), getUserID(r.Context()), loc); err != nil {
		handleError(w, err, s.log)
		return
	}
	writeJSON(w, http.StatusOK, loc, s.log)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toSurahResponses(s.service.FavoriteSurahs(r.Context(), getUserID(r.Context()))), s.log)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	n, ok := s.intParam(w, r, "number")
	if !ok {
		return
	}
	on, err := s.service.ToggleFavoriteSurah(r.Context(), getUserID(r.Context()), n)
	if err != nil {
		handleError(w, err, s.log)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"surah": n, "favorite": on}, s.log)
}

func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Bookmarks(r.Context(), getUserID(r.Context())), s.log)
}

func (s *Server) handleToggleBookmark(w http.ResponseWriter, r *http.Request) {
	surah, ok := s.intParam(w, r, "surah")
	if !ok {
		return
	}
	ayah, ok := s.intParam(w, r, "ayah")
	if !ok {
		return
	}
	on, err := s.service.ToggleBookmark(r.Context(), getUserID(r.Context()), surah, ayah)
	if err != nil {
		handleError(w, err, s.log)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"surah": surah, "ayah": ayah, "bookmarked": on}, s.log)
}

func (s *Server) handlePrayerTimes(w http.ResponseWriter, r *http.Request) {
	schedule := s.service.PrayerTimes(r.Context(), getUserID(r.Context()))
	resp := PrayerScheduleResponse{
		Date:      schedule.Date,
		HijriDate: schedule.HijriDate,
		Timezone:  schedule.Timezone,
		Location:  schedule.Location,
		Fallback:  schedule.Fallback,
		Times:     make([]PrayerTimeResponse, 0, len(schedule.Times)),
	}
	for _, t := range schedule.Times {
		resp.Times = append(resp.Times, toPrayerTime(t))
	}
	if next, ok := s.service.NextPrayer(schedule); ok {
		p := toPrayerTime(next)
		resp.Next = &p
	}
	writeJSON(w, http.StatusOK, resp, s.log)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if !s.decode(w, r, &req) {
		return
	}
	fb := domain.Feedback{Name: req.Name, Email: req.Email, Message: req.Message}
	if err := s.service.SubmitFeedback(r.Context(), getUserID(r.Context()), fb); err != nil {
		handleError(w, err, s.log)
		return
	}
	writeJSON(w, http.StatusAccepted, nil, s.log)
}
