package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quizhub/internal/common"
	"quizhub/internal/domain/model"
)

type QuizRepository interface {
	Create(ctx context.Context, quiz *model.Quiz) error
	FindByID(ctx context.Context, id string) (*model.Quiz, error)
	ListByCreator(ctx context.Context, userID string) ([]model.Quiz, error)
}

type pgQuizRepository struct {
	db *sql.DB
}

func NewPgQuizRepository(db *sql.DB) QuizRepository {
	return &pgQuizRepository{db: db}
}

// Questions and tags persist as JSONB documents; they are only ever read and
// written whole, never queried field-by-field.
func (r *pgQuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("pgQuizRepository.Create: marshal questions: %w", err)
	}
	tags, err := json.Marshal(quiz.Tags)
	if err != nil {
		return fmt.Errorf("pgQuizRepository.Create: marshal tags: %w", err)
	}

	query := `INSERT INTO quizzes (id, title, slug, description, category, difficulty, duration, tags, is_public, questions, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.db.ExecContext(ctx, query,
		quiz.ID, quiz.Title, quiz.Slug, quiz.Description, quiz.Category, quiz.Difficulty,
		quiz.Duration, tags, quiz.IsPublic, questions, quiz.CreatedByID,
	)
	if err != nil {
		return fmt.Errorf("pgQuizRepository.Create: %w", err)
	}
	return nil
}

const quizColumns = `id, title, slug, description, category, difficulty, duration, tags, is_public, questions, created_by, created_at`

func scanQuiz(row rowScanner) (*model.Quiz, error) {
	quiz := &model.Quiz{}
	var tags, questions []byte
	err := row.Scan(
		&quiz.ID, &quiz.Title, &quiz.Slug, &quiz.Description, &quiz.Category, &quiz.Difficulty,
		&quiz.Duration, &tags, &quiz.IsPublic, &questions, &quiz.CreatedByID, &quiz.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(tags, &quiz.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	if err := json.Unmarshal(questions, &quiz.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	return quiz, nil
}

// quizScanTargets collects the quiz columns when a quiz row rides along in a
// join, so the JSONB decoding stays in one place.
type quizScanTargets struct {
	id, title, slug, description, category, difficulty string
	duration                                           int
	tags, questions                                    []byte
	isPublic                                           bool
	createdBy                                          string
	createdAt                                          time.Time
}

func (t *quizScanTargets) toQuiz() (*model.Quiz, error) {
	quiz := &model.Quiz{
		ID:          t.id,
		Title:       t.title,
		Slug:        t.slug,
		Description: t.description,
		Category:    t.category,
		Difficulty:  t.difficulty,
		Duration:    t.duration,
		IsPublic:    t.isPublic,
		CreatedByID: t.createdBy,
		CreatedAt:   t.createdAt,
	}
	if err := json.Unmarshal(t.tags, &quiz.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	if err := json.Unmarshal(t.questions, &quiz.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	return quiz, nil
}

func (r *pgQuizRepository) FindByID(ctx context.Context, id string) (*model.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = $1`
	quiz, err := scanQuiz(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("pgQuizRepository.FindByID: %w", err)
	}
	return quiz, nil
}

func (r *pgQuizRepository) ListByCreator(ctx context.Context, userID string) ([]model.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE created_by = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgQuizRepository.ListByCreator: %w", err)
	}
	defer rows.Close()

	quizzes := []model.Quiz{}
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("pgQuizRepository.ListByCreator: %w", err)
		}
		quizzes = append(quizzes, *quiz)
	}
	return quizzes, rows.Err()
}
