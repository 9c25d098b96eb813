package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maternalcare/sms-reminders/internal/cache"
	"github.com/maternalcare/sms-reminders/internal/model"
	"github.com/maternalcare/sms-reminders/internal/repo"
)

// SMSSender is the gateway collaborator seen by the dispatcher.
type SMSSender interface {
	Send(ctx context.Context, to, body string) (messageID, status string, err error)
}

// Dispatcher sends one reminder to every active user. Sends are issued and
// awaited one at a time; a gateway failure for one user never aborts the
// batch. There is no dedupe against prior batches, so calling this twice
// sends everyone two messages. Cadence is the scheduler's job.
type Dispatcher struct {
	users  repo.UserRepository
	logs   repo.MessageLogRepository
	sender SMSSender
	cache  cache.DeliveryCache // optional, may be nil
}

func NewDispatcher(users repo.UserRepository, logs repo.MessageLogRepository, sender SMSSender, deliveries cache.DeliveryCache) *Dispatcher {
	return &Dispatcher{
		users:  users,
		logs:   logs,
		sender: sender,
		cache:  deliveries,
	}
}

func (d *Dispatcher) DispatchReminders(ctx context.Context) (*model.DispatchReport, error) {
	users, err := d.users.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	report := &model.DispatchReport{
		TotalUsers: len(users),
		Results:    make([]model.SendOutcome, 0, len(users)),
	}
	if len(users) == 0 {
		return report, nil
	}

	for _, user := range users {
		body := composeReminder(user)

		messageID, status, err := d.sender.Send(ctx, user.Phone, body)
		if err != nil {
			slog.Warn("failed to send reminder",
				"user_id", user.ID.Hex(),
				"phone", user.Phone,
				"error", err,
			)
			report.Results = append(report.Results, model.SendOutcome{
				UserID: user.ID,
				Status: model.OutcomeFailed,
				Error:  err.Error(),
			})
			continue
		}

		entry := &model.MessageLog{
			UserID:    user.ID,
			MessageID: messageID,
			Content:   body,
			Status:    status,
		}
		if err := d.logs.Insert(ctx, entry); err != nil {
			// The SMS already went out; keep the outcome as sent.
			slog.Error("failed to record message log",
				"user_id", user.ID.Hex(),
				"message_id", messageID,
				"error", err,
			)
		}

		if d.cache != nil {
			if err := d.cache.StoreDelivery(ctx, messageID, user.ID.Hex(), time.Now().UTC()); err != nil {
				slog.Warn("failed to cache delivery id", "message_id", messageID, "error", err)
			}
		}

		report.Results = append(report.Results, model.SendOutcome{
			UserID:    user.ID,
			Status:    model.OutcomeSent,
			MessageID: messageID,
		})
	}

	return report, nil
}

func composeReminder(user model.User) string {
	return fmt.Sprintf("Hello %s! 👋\n\n"+
		"Remember your next antenatal visit! 📅\n"+
		"Due date: %s\n\n"+
		"💡 Health tips:\n"+
		"• Eat healthy meals rich in iron and folic acid\n"+
		"• Stay hydrated and get enough rest\n"+
		"• Report any unusual symptoms to your health worker\n\n"+
		"Stay safe and healthy! ❤️",
		user.Name, user.DueDate)
}
