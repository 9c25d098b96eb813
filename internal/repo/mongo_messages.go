package repo

import (
	"context"
	"time"

	"github.com/maternalcare/sms-reminders/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const messagesCollection = "messages"

type MongoMessageLogRepo struct {
	collection *mongo.Collection
}

var _ MessageLogRepository = (*MongoMessageLogRepo)(nil)

func NewMongoMessageLogRepo(db *Database) *MongoMessageLogRepo {
	return &MongoMessageLogRepo{
		collection: db.Collection(messagesCollection),
	}
}

func (r *MongoMessageLogRepo) Insert(ctx context.Context, entry *model.MessageLog) error {
	entry.SentAt = time.Now().UTC()

	res, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return err
	}
	entry.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoMessageLogRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.MessageLog, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []model.MessageLog
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
