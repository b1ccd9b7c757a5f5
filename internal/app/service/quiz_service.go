package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"

	"quizhub/internal/common"
	"quizhub/internal/domain/model"
	"quizhub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ProgressionUpdater is the slice of ProgressionService the quiz lifecycle
// needs: XP, streak and activity-line updates after create/submit.
type ProgressionUpdater interface {
	UpdateXPAndLevel(ctx context.Context, userID string, delta int) error
	UpdateDailyStreak(ctx context.Context, userID string) error
	RecordActivity(ctx context.Context, userID, activity string) error
}

type QuizService struct {
	quizRepo    repository.QuizRepository
	resultRepo  repository.ResultRepository
	progression ProgressionUpdater
}

func NewQuizService(quizRepo repository.QuizRepository, resultRepo repository.ResultRepository, progression ProgressionUpdater) *QuizService {
	return &QuizService{
		quizRepo:    quizRepo,
		resultRepo:  resultRepo,
		progression: progression,
	}
}

const xpForQuizCreation = 2

// CreateQuizRequest is persisted verbatim; the legacy surface never validated
// question or option structure and clients depend on that looseness.
type CreateQuizRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Difficulty  string           `json:"difficulty"`
	Duration    int              `json:"duration"`
	Tags        []string         `json:"tags"`
	IsPublic    bool             `json:"isPublic"`
	Questions   []model.Question `json:"questions"`
}

func (s *QuizService) CreateQuiz(ctx context.Context, creatorID string, req CreateQuizRequest) (*model.Quiz, error) {
	quiz := &model.Quiz{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		Duration:    req.Duration,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
		Questions:   req.Questions,
		CreatedByID: creatorID,
	}

	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	if err := s.progression.UpdateXPAndLevel(ctx, creatorID, xpForQuizCreation); err != nil {
		return nil, err
	}
	if err := s.progression.UpdateDailyStreak(ctx, creatorID); err != nil {
		return nil, err
	}
	activity := fmt.Sprintf("Created a new quiz on %q", quiz.Title)
	if err := s.progression.RecordActivity(ctx, creatorID, activity); err != nil {
		return nil, err
	}

	return quiz, nil
}

type SubmitQuizRequest struct {
	QuizID    string          `json:"quizId"`
	UserID    string          `json:"userId"`
	Answers   json.RawMessage `json:"answers"`
	Score     float64         `json:"score"`
	TimeSpent int             `json:"timeSpent"`
}

func (s *QuizService) SubmitQuiz(ctx context.Context, req SubmitQuizRequest) (*model.QuizResult, error) {
	if req.QuizID == "" || req.UserID == "" {
		return nil, common.Errorf("Quiz ID and User ID are required: %w", common.ErrBadRequest)
	}

	// The quiz is needed for the activity line; a submission against an
	// unknown quiz surfaces as NotFound instead of a reference-less result.
	quiz, err := s.quizRepo.FindByID(ctx, req.QuizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz for submission: %w", err)
	}

	result := &model.QuizResult{
		ID:        uuid.NewString(),
		QuizID:    req.QuizID,
		UserID:    req.UserID,
		Answers:   req.Answers,
		Score:     req.Score,
		TimeSpent: req.TimeSpent,
	}
	if err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save quiz result: %w", err)
	}

	xpDelta := int(math.Floor(req.Score / 10))
	if err := s.progression.UpdateXPAndLevel(ctx, req.UserID, xpDelta); err != nil {
		return nil, err
	}
	activity := fmt.Sprintf("Took a quiz on %q and scored %v%%", quiz.Title, req.Score)
	if err := s.progression.RecordActivity(ctx, req.UserID, activity); err != nil {
		return nil, err
	}

	log.Printf("Quiz %s submitted by user %s, score %v (+%d xp)", req.QuizID, req.UserID, req.Score, xpDelta)
	return result, nil
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (*model.Quiz, error) {
	return s.quizRepo.FindByID(ctx, id)
}

func (s *QuizService) GetQuizzesByCreator(ctx context.Context, userID string) ([]model.Quiz, error) {
	return s.quizRepo.ListByCreator(ctx, userID)
}

func (s *QuizService) GetQuizResults(ctx context.Context, userID string) ([]model.QuizResult, error) {
	return s.resultRepo.ListByUser(ctx, userID)
}

func (s *QuizService) GetQuizResult(ctx context.Context, id string) (*model.QuizResult, error) {
	return s.resultRepo.FindByID(ctx, id)
}

func (s *QuizService) GetQuizzesTakenCount(ctx context.Context, userID string) (int, error) {
	return s.resultRepo.CountByUser(ctx, userID)
}
