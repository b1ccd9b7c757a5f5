package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quizhub/internal/common"
	"quizhub/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// FindByIDForUpdate takes a row lock so a load-mutate-save progression
	// update cannot lose a concurrent write.
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*model.User, error)
	SaveProgress(ctx context.Context, tx *sql.Tx, user *model.User) error
	SetAverageScore(ctx context.Context, userID string, avg float64) error
	SetLastActivity(ctx context.Context, userID string, activity string) error
	ListAll(ctx context.Context) ([]model.User, error)
	ListSuggestions(ctx context.Context, userID string, limit int) ([]model.User, error)

	AddFriendEdge(ctx context.Context, tx *sql.Tx, userID, friendID string) error
	ListFriends(ctx context.Context, userID string) ([]model.User, error)
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)

	HasFriendRequest(ctx context.Context, userID, senderID string) (bool, error)
	AddFriendRequest(ctx context.Context, userID, senderID string) error
	RemoveFriendRequest(ctx context.Context, tx *sql.Tx, userID, senderID string) error
	ListFriendRequests(ctx context.Context, userID string) ([]model.User, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, username, fullname, email, hashed_password, xp, level, xp_to_next_level,
	daily_streak, average_score, last_signed_in, last_activity, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Fullname, &user.Email, &user.HashedPassword,
		&user.XP, &user.Level, &user.XPToNextLevel,
		&user.DailyStreak, &user.AverageScore, &user.LastSignedIn, &user.LastActivity,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, username, fullname, email, hashed_password, xp, level, xp_to_next_level, daily_streak, average_score, last_signed_in, last_activity)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Fullname, user.Email, user.HashedPassword,
		user.XP, user.Level, user.XPToNextLevel, user.DailyStreak, user.AverageScore,
		user.LastSignedIn, user.LastActivity,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("pgUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`
	user, err := scanUser(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("pgUserRepository.FindByIDForUpdate: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) SaveProgress(ctx context.Context, tx *sql.Tx, user *model.User) error {
	query := `UPDATE users SET
	            xp = $1, level = $2, xp_to_next_level = $3, daily_streak = $4,
	            last_signed_in = $5, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $6`
	_, err := tx.ExecContext(ctx, query,
		user.XP, user.Level, user.XPToNextLevel, user.DailyStreak, user.LastSignedIn, user.ID,
	)
	if err != nil {
		return fmt.Errorf("pgUserRepository.SaveProgress: %w", err)
	}
	return nil
}

func (r *pgUserRepository) SetAverageScore(ctx context.Context, userID string, avg float64) error {
	query := `UPDATE users SET average_score = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, avg, userID); err != nil {
		return fmt.Errorf("pgUserRepository.SetAverageScore: %w", err)
	}
	return nil
}

func (r *pgUserRepository) SetLastActivity(ctx context.Context, userID string, activity string) error {
	query := `UPDATE users SET last_activity = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, activity, userID); err != nil {
		return fmt.Errorf("pgUserRepository.SetLastActivity: %w", err)
	}
	return nil
}

func (r *pgUserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	return r.queryUsers(ctx, "pgUserRepository.ListAll", query)
}

func (r *pgUserRepository) ListSuggestions(ctx context.Context, userID string, limit int) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
	          WHERE id <> $1
	            AND id NOT IN (SELECT friend_id FROM friends WHERE user_id = $1)
	          LIMIT $2`
	return r.queryUsers(ctx, "pgUserRepository.ListSuggestions", query, userID, limit)
}

func (r *pgUserRepository) AddFriendEdge(ctx context.Context, tx *sql.Tx, userID, friendID string) error {
	// Both directions in one statement; ON CONFLICT keeps the edge
	// single even when an accept is replayed.
	query := `INSERT INTO friends (user_id, friend_id) VALUES ($1, $2), ($2, $1)
	          ON CONFLICT (user_id, friend_id) DO NOTHING`
	if _, err := tx.ExecContext(ctx, query, userID, friendID); err != nil {
		return fmt.Errorf("pgUserRepository.AddFriendEdge: %w", err)
	}
	return nil
}

func (r *pgUserRepository) ListFriends(ctx context.Context, userID string) ([]model.User, error) {
	query := `SELECT ` + prefixedUserColumns("u") + ` FROM users u
	          JOIN friends f ON f.friend_id = u.id
	          WHERE f.user_id = $1`
	return r.queryUsers(ctx, "pgUserRepository.ListFriends", query, userID)
}

func (r *pgUserRepository) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT friend_id FROM friends WHERE user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.ListFriendIDs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("pgUserRepository.ListFriendIDs: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *pgUserRepository) HasFriendRequest(ctx context.Context, userID, senderID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM friend_requests WHERE user_id = $1 AND sender_id = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, senderID).Scan(&exists); err != nil {
		return false, fmt.Errorf("pgUserRepository.HasFriendRequest: %w", err)
	}
	return exists, nil
}

func (r *pgUserRepository) AddFriendRequest(ctx context.Context, userID, senderID string) error {
	query := `INSERT INTO friend_requests (user_id, sender_id) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, userID, senderID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("friend request already sent: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.AddFriendRequest: %w", err)
	}
	return nil
}

func (r *pgUserRepository) RemoveFriendRequest(ctx context.Context, tx *sql.Tx, userID, senderID string) error {
	// Deleting an absent request is a silent no-op, matching the accept flow
	// which never verifies the request existed.
	query := `DELETE FROM friend_requests WHERE user_id = $1 AND sender_id = $2`
	if _, err := tx.ExecContext(ctx, query, userID, senderID); err != nil {
		return fmt.Errorf("pgUserRepository.RemoveFriendRequest: %w", err)
	}
	return nil
}

func (r *pgUserRepository) ListFriendRequests(ctx context.Context, userID string) ([]model.User, error) {
	query := `SELECT ` + prefixedUserColumns("u") + ` FROM users u
	          JOIN friend_requests fr ON fr.sender_id = u.id
	          WHERE fr.user_id = $1
	          ORDER BY fr.created_at`
	return r.queryUsers(ctx, "pgUserRepository.ListFriendRequests", query, userID)
}

func (r *pgUserRepository) queryUsers(ctx context.Context, op, query string, args ...interface{}) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func prefixedUserColumns(alias string) string {
	return alias + `.id, ` + alias + `.username, ` + alias + `.fullname, ` + alias + `.email, ` +
		alias + `.hashed_password, ` + alias + `.xp, ` + alias + `.level, ` + alias + `.xp_to_next_level, ` +
		alias + `.daily_streak, ` + alias + `.average_score, ` + alias + `.last_signed_in, ` +
		alias + `.last_activity, ` + alias + `.created_at, ` + alias + `.updated_at`
}
