package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quizhub/internal/common"
	"quizhub/internal/domain/model"
)

type ResultRepository interface {
	Create(ctx context.Context, result *model.QuizResult) error
	// FindByID and the list methods attach the referenced quiz to each result.
	FindByID(ctx context.Context, id string) (*model.QuizResult, error)
	ListByUser(ctx context.Context, userID string) ([]model.QuizResult, error)
	// ListRecentByUsers returns the newest results across the given users,
	// capped at limit, for the friends activity feed.
	ListRecentByUsers(ctx context.Context, userIDs []string, limit int) ([]model.QuizResult, error)
	ScoresByUser(ctx context.Context, userID string) ([]float64, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type pgResultRepository struct {
	db *sql.DB
}

func NewPgResultRepository(db *sql.DB) ResultRepository {
	return &pgResultRepository{db: db}
}

func (r *pgResultRepository) Create(ctx context.Context, result *model.QuizResult) error {
	query := `INSERT INTO quiz_results (id, quiz_id, user_id, answers, score, time_spent)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	answers := result.Answers
	if answers == nil {
		answers = []byte("null")
	}
	_, err := r.db.ExecContext(ctx, query,
		result.ID, result.QuizID, result.UserID, []byte(answers), result.Score, result.TimeSpent,
	)
	if err != nil {
		return fmt.Errorf("pgResultRepository.Create: %w", err)
	}
	return nil
}

const resultWithQuizQuery = `
	SELECT r.id, r.quiz_id, r.user_id, r.answers, r.score, r.time_spent, r.created_at,
	       q.id, q.title, q.slug, q.description, q.category, q.difficulty, q.duration,
	       q.tags, q.is_public, q.questions, q.created_by, q.created_at
	FROM quiz_results r
	JOIN quizzes q ON q.id = r.quiz_id`

func scanResultWithQuiz(row rowScanner) (*model.QuizResult, error) {
	result := &model.QuizResult{}
	var answers []byte
	quizScan := quizScanTargets{}
	err := row.Scan(
		&result.ID, &result.QuizID, &result.UserID, &answers, &result.Score, &result.TimeSpent, &result.CreatedAt,
		&quizScan.id, &quizScan.title, &quizScan.slug, &quizScan.description, &quizScan.category,
		&quizScan.difficulty, &quizScan.duration, &quizScan.tags, &quizScan.isPublic,
		&quizScan.questions, &quizScan.createdBy, &quizScan.createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	result.Answers = answers
	quiz, err := quizScan.toQuiz()
	if err != nil {
		return nil, err
	}
	result.Quiz = quiz
	return result, nil
}

func (r *pgResultRepository) FindByID(ctx context.Context, id string) (*model.QuizResult, error) {
	query := resultWithQuizQuery + ` WHERE r.id = $1`
	result, err := scanResultWithQuiz(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("pgResultRepository.FindByID: %w", err)
	}
	return result, nil
}

func (r *pgResultRepository) ListByUser(ctx context.Context, userID string) ([]model.QuizResult, error) {
	query := resultWithQuizQuery + ` WHERE r.user_id = $1 ORDER BY r.created_at`
	return r.queryResults(ctx, "pgResultRepository.ListByUser", query, userID)
}

func (r *pgResultRepository) ListRecentByUsers(ctx context.Context, userIDs []string, limit int) ([]model.QuizResult, error) {
	if len(userIDs) == 0 {
		return []model.QuizResult{}, nil
	}
	query := resultWithQuizQuery + ` WHERE r.user_id = ANY($1) ORDER BY r.created_at DESC LIMIT $2`
	return r.queryResults(ctx, "pgResultRepository.ListRecentByUsers", query, userIDs, limit)
}

func (r *pgResultRepository) ScoresByUser(ctx context.Context, userID string) ([]float64, error) {
	query := `SELECT score FROM quiz_results WHERE user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgResultRepository.ScoresByUser: %w", err)
	}
	defer rows.Close()

	var scores []float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("pgResultRepository.ScoresByUser: %w", err)
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

func (r *pgResultRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM quiz_results WHERE user_id = $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgResultRepository.CountByUser: %w", err)
	}
	return count, nil
}

func (r *pgResultRepository) queryResults(ctx context.Context, op, query string, args ...interface{}) ([]model.QuizResult, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	results := []model.QuizResult{}
	for rows.Next() {
		result, err := scanResultWithQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		results = append(results, *result)
	}
	return results, rows.Err()
}
