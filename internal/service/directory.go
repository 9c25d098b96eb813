package service

import (
	"context"
	"errors"
	"strings"

	"github.com/maternalcare/sms-reminders/internal/model"
	"github.com/maternalcare/sms-reminders/internal/repo"
	"github.com/maternalcare/sms-reminders/internal/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Directory is the user-facing CRUD surface over the users collection.
type Directory struct {
	users repo.UserRepository
}

func NewDirectory(users repo.UserRepository) *Directory {
	return &Directory{users: users}
}

// Register validates and persists a new active user. The duplicate check is
// query-then-insert; the unique index in the store backstops the race between
// the check and the insert.
func (d *Directory) Register(ctx context.Context, name, phone, dueDate string) (*model.User, error) {
	name = strings.TrimSpace(name)

	if name == "" || phone == "" || dueDate == "" {
		return nil, &ValidationError{Reason: "Missing required fields: name, phone, dueDate"}
	}
	if !validate.IsValidPhone(phone) {
		return nil, &ValidationError{Reason: "Invalid phone number format. Use international format (e.g., +1234567890)"}
	}
	if !validate.IsValidDueDate(dueDate) {
		return nil, &ValidationError{Reason: "Invalid due date format"}
	}

	existing, err := d.users.FindActiveByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &ConflictError{Reason: "User with this phone number already exists"}
	}

	user, err := d.users.Insert(ctx, &model.User{
		Name:    name,
		Phone:   phone,
		DueDate: dueDate,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatePhone) {
			return nil, &ConflictError{Reason: "User with this phone number already exists"}
		}
		return nil, err
	}

	return user, nil
}

func (d *Directory) ListActive(ctx context.Context) ([]model.User, error) {
	return d.users.ListActive(ctx)
}

// Deactivate soft-deletes a user. No HTTP route calls this yet; the data
// model already filters on is_active, so the capability is kept.
func (d *Directory) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	return d.users.Deactivate(ctx, id)
}
