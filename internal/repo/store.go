package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/tasknest-backend/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
)

type PgStore struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore { // Конструктор
	return &PgStore{
		pool: pool,
	}
}

func (s *PgStore) GetTask(ctx context.Context, id string) (model.Task, error) {
	var t model.Task
	err := s.pool.QueryRow(ctx, `
		SELECT id, title, description, assigned_to, status, coins, approved_at
		FROM tasks
		WHERE id = $1
	`, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.AssignedTo, &t.Status, &t.Coins, &t.ApprovedAt,
	)

	if err == pgx.ErrNoRows {
		return t, ErrorNotFound
	}
	return t, err
}

// SetTaskOutcome пишет статус и серверный timestamp безусловно,
// без проверки предыдущего статуса
func (s *PgStore) SetTaskOutcome(ctx context.Context, id, status string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE tasks SET status = $2, approved_at = now() WHERE id = $1
	`, id, status)
	return err
}

func (s *PgStore) GetUser(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, fcm_token, coins
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.FCMToken, &u.Coins)

	if err == pgx.ErrNoRows {
		return u, ErrorNotFound
	}
	return u, err
}

// FindUserByEmail возвращает первого подходящего пользователя
func (s *PgStore) FindUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, fcm_token, coins
		FROM users
		WHERE email = $1
		ORDER BY id
		LIMIT 1
	`, email).Scan(&u.ID, &u.Email, &u.FCMToken, &u.Coins)

	if err == pgx.ErrNoRows {
		return u, ErrorNotFound
	}
	return u, err
}

// AddCoins — атомарный инкремент баланса на стороне БД
func (s *PgStore) AddCoins(ctx context.Context, userID string, amount int64) error {
	cmd, err := s.pool.Exec(ctx, `
		UPDATE users SET coins = coins + $2 WHERE id = $1
	`, userID, amount)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

// ClearToken сбрасывает токен у всех пользователей, у которых он совпал
func (s *PgStore) ClearToken(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE users SET fcm_token = '' WHERE fcm_token = $1
	`, token)
	return err
}
