package repo

import (
	"context"
	"errors"

	"github.com/maternalcare/sms-reminders/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrDuplicatePhone is returned by Insert when the unique index rejects a
// second active user with the same phone number.
var ErrDuplicatePhone = errors.New("active user with this phone already exists")

type UserRepository interface {
	// Insert persists the user and returns it with the assigned id and
	// server-side creation time filled in.
	Insert(ctx context.Context, user *model.User) (*model.User, error)
	// FindActiveByPhone returns (nil, nil) when no active user matches.
	FindActiveByPhone(ctx context.Context, phone string) (*model.User, error)
	ListActive(ctx context.Context) ([]model.User, error)
	Deactivate(ctx context.Context, id primitive.ObjectID) error
}

type MessageLogRepository interface {
	Insert(ctx context.Context, entry *model.MessageLog) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.MessageLog, error)
}
