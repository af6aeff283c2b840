package notify

import (
	"context"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Sender покрывает messaging.Client.Send
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// TokenStore — срез репозитория, нужный для чистки мертвых токенов
type TokenStore interface {
	ClearToken(ctx context.Context, token string) error
}

// Dispatcher рассылает push-уведомления best-effort: любая ошибка
// логируется и глотается, наружу не выходит ничего
type Dispatcher struct {
	sender  Sender
	store   TokenStore
	logger  *zap.Logger
	invalid func(error) bool // классификация "token not registered"
}

func NewDispatcher(sender Sender, store TokenStore, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		store:   store,
		logger:  logger,
		invalid: messaging.IsRegistrationTokenNotRegistered,
	}
}

// Send пытается доставить сообщение на каждый токен по очереди.
// Ошибка одного токена не прерывает доставку остальным
func (d *Dispatcher) Send(ctx context.Context, tokens []string, title, body string, data map[string]string) {
	for _, token := range tokens {
		if token == "" {
			continue
		}

		msg := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
		}

		if _, err := d.sender.Send(ctx, msg); err != nil {
			if d.invalid(err) {
				d.logger.Warn("invalid fcm token, clearing", zap.String("token", token))
				if cerr := d.store.ClearToken(ctx, token); cerr != nil {
					d.logger.Error("failed to clear fcm token", zap.String("token", token), zap.Error(cerr))
				}
			} else {
				d.logger.Error("failed to send push", zap.String("token", token), zap.Error(err))
			}
			continue
		}

		d.logger.Info("push sent", zap.String("token", token))
	}
}
