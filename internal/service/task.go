package service

import (
	"context"
	"errors"

	"github.com/BuzzLyutic/tasknest-backend/internal/model"
	"github.com/BuzzLyutic/tasknest-backend/internal/repo"
)

var (
	ErrAssignFields    = errors.New("userId, taskId & title required")
	ErrApproveFields   = errors.New("taskId & approve required")
	ErrTaskNotFound    = errors.New("Task not found")
	ErrUserNotFound    = errors.New("User not found")
	ErrMissingAssignee = errors.New("Task missing assignedTo email")
)

// Notifier — то, что умеет Dispatcher. Ошибок не возвращает:
// доставка уведомлений никогда не влияет на исход запроса
type Notifier interface {
	Send(ctx context.Context, tokens []string, title, body string, data map[string]string)
}

type AssignRequest struct {
	UserID      string
	TaskID      string
	Title       string
	Description string
}

type ApproveRequest struct {
	TaskID  string
	Approve *bool // указатель: проверяем присутствие поля, не значение
}

type TaskService struct {
	store         repo.Store
	notifier      Notifier
	defaultReward int64
}

func NewTaskService(store repo.Store, notifier Notifier, defaultReward int64) *TaskService {
	return &TaskService{
		store:         store,
		notifier:      notifier,
		defaultReward: defaultReward,
	}
}

// Assign шлет пользователю уведомление о новой задаче. Отсутствие
// пользователя или токена — не ошибка, push просто не уходит
func (s *TaskService) Assign(ctx context.Context, req AssignRequest) error {
	if req.UserID == "" || req.TaskID == "" || req.Title == "" {
		return ErrAssignFields
	}

	user, err := s.store.GetUser(ctx, req.UserID)
	if errors.Is(err, repo.ErrorNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if user.FCMToken != "" {
		s.notifier.Send(ctx, []string{user.FCMToken},
			"📌 New Task Assigned!", "Task: "+req.Title,
			map[string]string{"taskId": req.TaskID})
	}
	return nil
}

// Approve проставляет задаче терминальный статус и на одобрении
// начисляет награду исполнителю. Статус пишется до проверок исполнителя
// и при их провале не откатывается — транзакции здесь нет
func (s *TaskService) Approve(ctx context.Context, req ApproveRequest) (string, error) {
	if req.TaskID == "" || req.Approve == nil {
		return "", ErrApproveFields
	}
	approve := *req.Approve

	task, err := s.store.GetTask(ctx, req.TaskID)
	if errors.Is(err, repo.ErrorNotFound) {
		return "", ErrTaskNotFound
	}
	if err != nil {
		return "", err
	}

	status := model.StatusRejected
	if approve {
		status = model.StatusCompleted
	}

	if err := s.store.SetTaskOutcome(ctx, req.TaskID, status); err != nil {
		return "", err
	}

	if task.AssignedTo == "" {
		return "", ErrMissingAssignee
	}

	user, err := s.store.FindUserByEmail(ctx, task.AssignedTo)
	if errors.Is(err, repo.ErrorNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}

	if approve {
		reward := s.defaultReward
		if task.Coins != nil {
			reward = *task.Coins
		}
		if err := s.store.AddCoins(ctx, user.ID, reward); err != nil {
			return "", err
		}
	}

	if user.FCMToken != "" {
		title := "Task Rejected ❌"
		if approve {
			title = "Task Approved ✅"
		}
		s.notifier.Send(ctx, []string{user.FCMToken},
			title, "Task: "+task.Title,
			map[string]string{"taskId": req.TaskID})
	}

	return status, nil
}
