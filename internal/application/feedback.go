package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/escalopa/quran-reader/internal/domain"
)

// SubmitFeedback validates and relays feedback. Nothing is stored.
func (s *ReaderService) SubmitFeedback(ctx context.Context, userID string, fb domain.Feedback) error {
	if err := s.validate.Struct(fb); err != nil {
		return invalidSetting("feedback: %v", err)
	}
	if !s.limiter.AllowAt(userID, s.clock.Now()) {
		return domain.ErrRateLimited
	}
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	if err := s.feedback.Submit(ctx, fb); err != nil {
		s.log.Warn("feedback relay failed", "user_id", userID, "request_id", fb.ID, "error", err)
		return fmt.Errorf("submit feedback: %w", err)
	}
	s.log.Info("feedback submitted", "user_id", userID, "request_id", fb.ID)
	return nil
}
