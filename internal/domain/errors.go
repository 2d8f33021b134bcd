package domain

import "errors"

var (
	// ErrSlotNotFound is returned by a preference backend when the slot was never written.
	ErrSlotNotFound = errors.New("slot not found")

	// ErrContentUnavailable wraps content source failures. Callers offer a retry.
	ErrContentUnavailable = errors.New("content unavailable")

	ErrInvalidSurah = errors.New("invalid surah number")
	ErrInvalidAyah  = errors.New("invalid ayah number")
	ErrInvalidPage  = errors.New("page out of range")

	// ErrInvalidSetting is returned for an unknown font kind, display setting or language.
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrRateLimited is returned when a user submits feedback too often.
	ErrRateLimited = errors.New("rate limited")

	// ErrNoActiveView is returned when an operation needs an open surah view.
	ErrNoActiveView = errors.New("no active surah view")
)
