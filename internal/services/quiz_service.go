package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/vytor/packdex/internal/catalog"
	"github.com/vytor/packdex/internal/errors"
	"github.com/vytor/packdex/internal/logger"
	"github.com/vytor/packdex/internal/models"
	"github.com/vytor/packdex/internal/quiz"
	"github.com/vytor/packdex/internal/repository"
)

// QuizQuestion is the player-facing view of the current question.
// Accepted answers never leave the server.
type QuizQuestion struct {
	Category     string    `json:"category"`
	Prompt       string    `json:"prompt"`
	Image        string    `json:"image,omitempty"`
	Options      []string  `json:"options,omitempty"`
	Points       int       `json:"points"`
	SessionScore int       `json:"session_score"`
	LockedUntil  time.Time `json:"locked_until,omitempty"`
}

// QuizResult reports how an answer was graded.
type QuizResult struct {
	Correct      bool          `json:"correct"`
	Points       int           `json:"points"`
	CoinsAwarded int64         `json:"coins_awarded"`
	Answers      []string      `json:"answers,omitempty"`
	SessionScore int           `json:"session_score"`
	Coins        int64         `json:"coins"`
	QuizScore    int           `json:"quiz_score"`
	LockedUntil  time.Time     `json:"locked_until,omitempty"`
	Next         *QuizQuestion `json:"next,omitempty"`
}

// QuizService handles quiz session business logic
type QuizService interface {
	Start(ctx context.Context, profileID int64, category string) (*QuizQuestion, error)
	Question(ctx context.Context, profileID int64) (*QuizQuestion, error)
	Answer(ctx context.Context, profileID int64, answer string) (*QuizResult, error)
	Stop(ctx context.Context, profileID int64) error
}

type quizSession struct {
	category     string
	pool         *quiz.Pool
	current      models.Question
	options      []string
	sessionScore int
	lockedUntil  time.Time
}

type quizService struct {
	profiles  repository.ProfileRepository
	inventory repository.InventoryRepository
	catalog   *catalog.Catalog
	publisher *Publisher

	coinsPerPoint int
	lockout       time.Duration

	mu       sync.Mutex
	rng      *rand.Rand
	sessions map[int64]*quizSession
}

// NewQuizService creates a new QuizService
func NewQuizService(profiles repository.ProfileRepository, inventory repository.InventoryRepository, cat *catalog.Catalog, publisher *Publisher, coinsPerPoint int, lockout time.Duration, rng *rand.Rand) QuizService {
	return &quizService{
		profiles:      profiles,
		inventory:     inventory,
		catalog:       cat,
		publisher:     publisher,
		coinsPerPoint: coinsPerPoint,
		lockout:       lockout,
		rng:           rng,
		sessions:      make(map[int64]*quizSession),
	}
}

func (s *quizService) Start(ctx context.Context, profileID int64, category string) (*QuizQuestion, error) {
	log := logger.FromContext(ctx)

	if !catalog.HasCategory(category) {
		return nil, errors.NewValidationError("category", "unknown category")
	}

	questions, err := s.catalog.Questions(ctx, category)
	if err != nil {
		log.Error("failed to load questions for %s: %v", category, err)
		return nil, errors.NewUpstreamError("question bank unavailable", err)
	}
	if len(questions) == 0 {
		return nil, errors.NewUpstreamError("question bank is empty", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &quizSession{category: category, pool: quiz.NewPool(questions, s.rng)}
	s.advanceLocked(sess)
	s.sessions[profileID] = sess

	log.Info("profile %d started a %s quiz with %d questions", profileID, category, len(questions))
	return s.viewLocked(sess), nil
}

func (s *quizService) Question(ctx context.Context, profileID int64) (*QuizQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[profileID]
	if !ok {
		return nil, errors.NewNotFoundError("quiz session", profileID)
	}
	return s.viewLocked(sess), nil
}

func (s *quizService) Answer(ctx context.Context, profileID int64, answer string) (*QuizResult, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	sess, ok := s.sessions[profileID]
	if !ok {
		s.mu.Unlock()
		return nil, errors.NewNotFoundError("quiz session", profileID)
	}
	if now := time.Now(); now.Before(sess.lockedUntil) {
		locked := sess.lockedUntil
		s.mu.Unlock()
		return nil, errors.NewConflictError("answers locked until " + locked.Format(time.RFC3339))
	}

	q := sess.current
	var correct bool
	if len(q.Options) > 0 {
		correct = quiz.MatchChoice(answer, q.Answers)
	} else {
		correct = quiz.MatchFreeText(answer, q.Answers)
	}

	result := &QuizResult{Correct: correct, Points: q.Points}
	if correct {
		sess.sessionScore += q.Points
	} else {
		sess.lockedUntil = time.Now().Add(s.lockout)
		result.Answers = q.Answers
		result.LockedUntil = sess.lockedUntil
	}
	result.SessionScore = sess.sessionScore
	s.advanceLocked(sess)
	result.Next = s.viewLocked(sess)
	s.mu.Unlock()

	if correct {
		profile, err := s.profiles.Get(ctx, profileID)
		if err != nil || profile == nil {
			return nil, errors.NewInternalError(err)
		}
		result.CoinsAwarded = int64(q.Points * s.coinsPerPoint)
		profile.QuizScore += q.Points
		profile.Coins += result.CoinsAwarded
		if err := s.profiles.Update(ctx, profile); err != nil {
			return nil, errors.NewInternalError(err)
		}
		result.Coins = profile.Coins
		result.QuizScore = profile.QuizScore
		log.Debug("profile %d scored %d points (+%d coins)", profileID, q.Points, result.CoinsAwarded)
		publishProfile(ctx, s.publisher, s.inventory, profile)
	}

	return result, nil
}

func (s *quizService) Stop(ctx context.Context, profileID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[profileID]; !ok {
		return errors.NewNotFoundError("quiz session", profileID)
	}
	delete(s.sessions, profileID)
	return nil
}

// advanceLocked pops the next question and reshuffles its options.
// Caller holds s.mu.
func (s *quizService) advanceLocked(sess *quizSession) {
	q, ok := sess.pool.Next()
	if !ok {
		return
	}
	sess.current = q
	sess.options = quiz.ShuffleOptions(q, s.rng)
}

func (s *quizService) viewLocked(sess *quizSession) *QuizQuestion {
	return &QuizQuestion{
		Category:     sess.category,
		Prompt:       sess.current.Prompt,
		Image:        sess.current.Image,
		Options:      sess.options,
		Points:       sess.current.Points,
		SessionScore: sess.sessionScore,
		LockedUntil:  sess.lockedUntil,
	}
}
