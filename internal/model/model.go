package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is one enrolled recipient. ID is assigned by Mongo on insert and
// never changes afterwards.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Phone     string             `bson:"phone" json:"phone"`
	DueDate   string             `bson:"due_date" json:"dueDate"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
}

// MessageLog is the audit record for one successful send. Entries are
// append-only; nothing in the system updates or deletes them.
type MessageLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	MessageID string             `bson:"message_id" json:"messageId"`
	Content   string             `bson:"content" json:"content"`
	Status    string             `bson:"status" json:"status"`
	SentAt    time.Time          `bson:"sent_at" json:"sentAt"`
}

type OutcomeStatus string

const (
	OutcomeSent   OutcomeStatus = "sent"
	OutcomeFailed OutcomeStatus = "failed"
)

// SendOutcome is the per-user result of one dispatch batch.
type SendOutcome struct {
	UserID    primitive.ObjectID `json:"userId"`
	Status    OutcomeStatus      `json:"status"`
	MessageID string             `json:"messageId,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// DispatchReport covers one full dispatch batch. Results holds exactly one
// outcome per active user, in enumeration order.
type DispatchReport struct {
	TotalUsers int           `json:"totalUsers"`
	Results    []SendOutcome `json:"results"`
}

type TipCategory struct {
	Category string   `json:"category"`
	Tips     []string `json:"tips"`
}
