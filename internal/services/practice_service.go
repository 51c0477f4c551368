package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/mariana/linguaflash/internal/errors"
	"github.com/mariana/linguaflash/internal/logger"
	"github.com/mariana/linguaflash/internal/models"
	"github.com/mariana/linguaflash/internal/repository"
	"github.com/mariana/linguaflash/internal/session"
)

// PracticeService owns the in-flight practice sessions. Sessions live in
// memory only: ending one feeds its derived quality into the scheduler,
// discarding one leaves no trace.
type PracticeService interface {
	StartSession(ctx context.Context, cardID, userID int64, practiceType models.PracticeType) (string, error)
	AddResult(ctx context.Context, sessionID string, userID int64, result session.ExerciseResult) error
	// EndSession finalizes the session, records practice stats and schedules
	// the card with the derived quality. Returns the summary and the card's
	// new scheduling state.
	EndSession(ctx context.Context, sessionID string, userID int64) (*session.Summary, *models.LearningCard, error)
	DiscardSession(ctx context.Context, sessionID string, userID int64) error
}

type sessionEntry struct {
	userID        int64
	session       *session.Session
	statsRecorded bool
}

type practiceService struct {
	cards    repository.CardRepository
	cardSvc  CardService
	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// NewPracticeService creates a new PracticeService
func NewPracticeService(cards repository.CardRepository, cardSvc CardService) PracticeService {
	return &practiceService{
		cards:    cards,
		cardSvc:  cardSvc,
		sessions: make(map[string]*sessionEntry),
	}
}

func (s *practiceService) StartSession(ctx context.Context, cardID, userID int64, practiceType models.PracticeType) (string, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting practice session: card_id=%d, type=%s", cardID, practiceType)

	// The card must exist and belong to the user before a session starts.
	if _, err := s.cardSvc.GetCard(ctx, cardID, userID); err != nil {
		return "", err
	}

	sess, err := session.New(cardID, practiceType, time.Now())
	if err != nil {
		return "", err
	}

	id := newSessionID()
	s.mu.Lock()
	s.sessions[id] = &sessionEntry{userID: userID, session: sess}
	s.mu.Unlock()

	log.Info("practice session started: id=%s, card_id=%d, type=%s", id, cardID, sess.PracticeType())
	return id, nil
}

func (s *practiceService) AddResult(ctx context.Context, sessionID string, userID int64, result session.ExerciseResult) error {
	entry, err := s.lookup(sessionID, userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return entry.session.AddResult(result)
}

func (s *practiceService) EndSession(ctx context.Context, sessionID string, userID int64) (*session.Summary, *models.LearningCard, error) {
	log := logger.FromContext(ctx)

	entry, err := s.lookup(sessionID, userID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	s.mu.Lock()
	var summary session.Summary
	if entry.session.State() == session.Ended {
		// A previous end attempt froze the session but failed to apply the
		// review. Re-deliver the frozen summary so the caller can retry.
		summary, err = entry.session.Summary()
	} else {
		summary, err = entry.session.End(now)
	}
	statsRecorded := entry.statsRecorded
	s.mu.Unlock()
	if err != nil {
		return nil, nil, err
	}

	log.Debug("session ended: id=%s, exercises=%d, correct=%d, quality=%d",
		sessionID, summary.ExercisesCompleted, summary.CorrectAnswers, summary.FinalQuality)

	// Practice stats are best-effort and written at most once; losing them
	// must not lose the review.
	if !statsRecorded {
		pronSum := 0.0
		if summary.AvgPronunciationScore != nil {
			pronSum = *summary.AvgPronunciationScore * float64(summary.PronunciationSamples)
		}
		if err := s.cards.RecordPractice(ctx, summary.CardID, summary.PracticeType,
			summary.ExercisesCompleted, summary.CorrectAnswers, pronSum, summary.PronunciationSamples, now); err != nil {
			log.Warn("failed to record practice stats: %v", err)
		} else {
			s.mu.Lock()
			entry.statsRecorded = true
			s.mu.Unlock()
		}
	}

	card, err := s.cardSvc.ReviewCard(ctx, summary.CardID, userID, summary.FinalQuality)
	if err != nil {
		// Keep the session registered; the frozen summary makes the review
		// retryable until the write goes through.
		return nil, nil, err
	}

	s.remove(sessionID)
	log.Info("practice session completed: id=%s, final_quality=%d", sessionID, summary.FinalQuality)
	return &summary, card, nil
}

func (s *practiceService) DiscardSession(ctx context.Context, sessionID string, userID int64) error {
	log := logger.FromContext(ctx)

	entry, err := s.lookup(sessionID, userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	entry.session.Reset()
	s.mu.Unlock()
	s.remove(sessionID)

	log.Info("practice session discarded: id=%s", sessionID)
	return nil
}

func (s *practiceService) lookup(sessionID string, userID int64) (*sessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok || entry.userID != userID {
		return nil, errors.NewNotFoundError("practice session", sessionID)
	}
	return entry, nil
}

func (s *practiceService) remove(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

func newSessionID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
