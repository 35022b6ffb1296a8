package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/repository"
)

const userColumns = `id, username, display_name, created_at, last_sync_at`

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.CreatedAt, &u.LastSyncAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Upsert(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("upserting user for username: %s", username)

	u, err := scanUser(r.db.QueryRowContext(ctx, `
INSERT INTO users (username)
VALUES (?)
ON CONFLICT(username) DO UPDATE SET username = excluded.username
RETURNING `+userColumns, username))
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, err
	}
	log.Debug("user upserted: id=%d", u.ID)
	return u, nil
}

func (r *userRepository) UpdateDisplayName(ctx context.Context, id int64, displayName string) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("updating display name: user_id=%d", id)

	res, err := r.db.ExecContext(ctx, `UPDATE users SET display_name = ? WHERE id = ?`, displayName, id)
	if err != nil {
		log.Error("failed to update display name: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdateSync(ctx context.Context, id int64, t time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("updating user sync time: user_id=%d", id)

	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_sync_at = ? WHERE id = ?`, t, id)
	if err != nil {
		log.Error("failed to update user sync: %v", err)
	}
	return err
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("listing users")

	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		log.Error("failed to list users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan user row: %v", err)
			return nil, err
		}
		users = append(users, *u)
	}

	log.Debug("found %d users", len(users))
	return users, rows.Err()
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: username=%s", username)

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user by username: %v", err)
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("deleting user and related data: id=%d", id)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		// review_history -> flashcards -> lesson_progress -> users
		if _, err := tx.ExecContext(ctx, `
DELETE FROM review_history
WHERE flashcard_id IN (SELECT id FROM flashcards WHERE user_id = ?)
`, id); err != nil {
			log.Error("failed to delete review history for user %d: %v", id, err)
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM flashcards WHERE user_id = ?`, id); err != nil {
			log.Error("failed to delete flashcards for user %d: %v", id, err)
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM lesson_progress WHERE user_id = ?`, id); err != nil {
			log.Error("failed to delete progress for user %d: %v", id, err)
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
			log.Error("failed to delete user %d: %v", id, err)
			return err
		}

		log.Debug("user %d deleted with cascading data", id)
		return nil
	})
}
