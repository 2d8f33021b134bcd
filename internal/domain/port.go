package domain

import (
	"context"
	"time"
)

// ContentSource defines the interface for fetching surah text
type ContentSource interface {
	// FetchSurah returns the ordered ayahs of a surah
	FetchSurah(ctx context.Context, surahNumber int) ([]Ayah, error)
}

// PrayerTimeSource defines the interface for the prayer schedule lookup
type PrayerTimeSource interface {
	// PrayerTimes returns the schedule of the given day at the location
	PrayerTimes(ctx context.Context, loc Location, day time.Time) (*PrayerSchedule, error)
}

// FeedbackChannel defines the interface for the fire-and-forget feedback relay
type FeedbackChannel interface {
	// Submit forwards the feedback; the result only drives a notification
	Submit(ctx context.Context, fb Feedback) error
}

// PreferenceBackend defines the interface for durable slot storage.
// Load returns ErrSlotNotFound for a slot that was never saved.
type PreferenceBackend interface {
	Load(ctx context.Context, slot string) ([]byte, error)
	Save(ctx context.Context, slot string, data []byte) error
}

// PreferenceStore defines the read / read-modify-write contract of a user's preferences
type PreferenceStore interface {
	// Read never fails: it returns the last good value or defaults
	Read(ctx context.Context) ReadingPreferences

	// Write replaces the whole record
	Write(ctx context.Context, prefs ReadingPreferences) ReadingPreferences

	// Update applies fn to the latest in-memory value and persists the result
	Update(ctx context.Context, fn func(ReadingPreferences) ReadingPreferences) ReadingPreferences
}

// FSMPort defines the interface for finite state machine storage
type FSMPort interface {
	// SetState sets the current state for a user
	SetState(ctx context.Context, userID string, state State) error

	// GetState gets the current state for a user
	GetState(ctx context.Context, userID string) (State, error)

	// DeleteState deletes the state for a user
	DeleteState(ctx context.Context, userID string) error
}

// I18nPort defines the interface for internationalization
type I18nPort interface {
	// Get retrieves a translated message
	Get(lang Language, key string, args ...interface{}) string

	// GetSurahName retrieves the localized name of a Surah
	GetSurahName(lang Language, surahNumber int) string
}

// BotPort defines the interface for the bot adapter
type BotPort interface {
	// Start starts the bot
	Start(ctx context.Context) error

	// Stop stops the bot
	Stop() error
}

// State represents the FSM states of the chat dialog
type State string

const (
	StateBrowsing      State = "browsing"
	StateAwaitFeedback State = "await_feedback"
	StateAwaitLocation State = "await_location"
)
