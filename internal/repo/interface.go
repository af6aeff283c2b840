package repo

import (
	"context"

	"github.com/BuzzLyutic/tasknest-backend/internal/model"
)

// Store определяет интерфейс для работы с пользователями и задачами
type Store interface {
	GetTask(ctx context.Context, id string) (model.Task, error)
	SetTaskOutcome(ctx context.Context, id, status string) error
	GetUser(ctx context.Context, id string) (model.User, error)
	FindUserByEmail(ctx context.Context, email string) (model.User, error)
	AddCoins(ctx context.Context, userID string, amount int64) error
	ClearToken(ctx context.Context, token string) error
}
