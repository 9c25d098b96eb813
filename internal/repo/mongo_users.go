package repo

import (
	"context"
	"time"

	"github.com/maternalcare/sms-reminders/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

type MongoUserRepo struct {
	collection *mongo.Collection
}

var _ UserRepository = (*MongoUserRepo)(nil)

func NewMongoUserRepo(db *Database) *MongoUserRepo {
	return &MongoUserRepo{
		collection: db.Collection(usersCollection),
	}
}

func (r *MongoUserRepo) Insert(ctx context.Context, user *model.User) (*model.User, error) {
	user.CreatedAt = time.Now().UTC()
	user.IsActive = true

	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicatePhone
		}
		return nil, err
	}

	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (r *MongoUserRepo) FindActiveByPhone(ctx context.Context, phone string) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"phone": phone, "is_active": true}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepo) ListActive(ctx context.Context) ([]model.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *MongoUserRepo) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	return err
}
