package model

import "time"

// Статусы задачи. Prior state не проверяется: approve перезаписывает всегда
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusRejected  = "Rejected"
)

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FCMToken string `json:"fcmToken"`
	Coins    int64  `json:"coins"`
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	AssignedTo  string     `json:"assignedTo"`
	Status      string     `json:"status"`
	Coins       *int64     `json:"coins,omitempty"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
}
