package tests

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/BuzzLyutic/tasknest-backend/internal/model"
)

// SetupTestDB создает тестовую БД с помощью testcontainers
func SetupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()
	ctx := context.Background()

	// Находим путь к миграциям
	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filename))
	migrationsPath := filepath.Join(projectRoot, "migrations")

	// Создаем PostgreSQL контейнер
	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		postgres.WithInitScripts(filepath.Join(migrationsPath, "001_create_schema.up.sql")),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	cleanup := func() {
		pool.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Errorf("Failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

// TruncateTables очищает все таблицы
func TruncateTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx, "TRUNCATE users, tasks CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

// SeedUser создает тестового пользователя
func SeedUser(t *testing.T, pool *pgxpool.Pool, u model.User) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `
		INSERT INTO users (id, email, fcm_token, coins)
		VALUES ($1, $2, $3, $4)
	`, u.ID, u.Email, u.FCMToken, u.Coins)
	if err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
}

// SeedTask создает тестовую задачу
func SeedTask(t *testing.T, pool *pgxpool.Pool, task model.Task) {
	t.Helper()

	if task.Status == "" {
		task.Status = model.StatusPending
	}
	_, err := pool.Exec(context.Background(), `
		INSERT INTO tasks (id, title, description, assigned_to, status, coins)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, task.ID, task.Title, task.Description, task.AssignedTo, task.Status, task.Coins)
	if err != nil {
		t.Fatalf("Failed to seed task: %v", err)
	}
}

// GetUserCoins читает текущий баланс напрямую из БД
func GetUserCoins(t *testing.T, pool *pgxpool.Pool, id string) int64 {
	t.Helper()

	var coins int64
	if err := pool.QueryRow(context.Background(), "SELECT coins FROM users WHERE id = $1", id).Scan(&coins); err != nil {
		t.Fatalf("Failed to read coins: %v", err)
	}
	return coins
}

// GetTaskStatus читает текущий статус задачи напрямую из БД
func GetTaskStatus(t *testing.T, pool *pgxpool.Pool, id string) string {
	t.Helper()

	var status string
	if err := pool.QueryRow(context.Background(), "SELECT status FROM tasks WHERE id = $1", id).Scan(&status); err != nil {
		t.Fatalf("Failed to read task status: %v", err)
	}
	return status
}

// FakeSender подменяет FCM-клиент: записывает отправки вместо доставки
type FakeSender struct {
	mu   sync.Mutex
	Sent []*messaging.Message
	Errs map[string]error
}

func (f *FakeSender) Send(ctx context.Context, msg *messaging.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, msg)
	if f.Errs != nil {
		return "", f.Errs[msg.Token]
	}
	return "", nil
}

func (f *FakeSender) SentTokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	tokens := make([]string, 0, len(f.Sent))
	for _, msg := range f.Sent {
		tokens = append(tokens, msg.Token)
	}
	return tokens
}
