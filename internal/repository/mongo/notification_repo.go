package mongo

import (
	"context"
	"errors"
	"time"

	"alphacloud/assessment-portal/internal/domain"
	"alphacloud/assessment-portal/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const notificationCollectionName = "email_notifications"

// mongoNotificationRepository implements repository.NotificationRepository
type mongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new notification log repository backed by MongoDB.
func NewMongoNotificationRepository(db *mongo.Database) repository.NotificationRepository {
	return &mongoNotificationRepository{
		collection: db.Collection(notificationCollectionName),
	}
}

// Create records a processed notification.
func (r *mongoNotificationRepository) Create(ctx context.Context, notification *domain.EmailNotification) (primitive.ObjectID, error) {
	if notification.Type == "" || notification.Recipient == "" {
		return primitive.NilObjectID, errors.New("notification requires a type and recipient")
	}

	notification.ID = primitive.NewObjectID()
	if notification.SentAt.IsZero() {
		notification.SentAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// EnsureNotificationIndexes creates necessary indexes for the email_notifications collection.
func EnsureNotificationIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "assessment_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "sent_at", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
