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
	"go.mongodb.org/mongo-driver/mongo/options"
)

const uploadedFileCollectionName = "uploaded_files"

// mongoUploadedFileRepository implements repository.UploadedFileRepository
type mongoUploadedFileRepository struct {
	collection *mongo.Collection
}

// NewMongoUploadedFileRepository creates a new uploaded-file index repository backed by MongoDB.
func NewMongoUploadedFileRepository(db *mongo.Database) repository.UploadedFileRepository {
	return &mongoUploadedFileRepository{
		collection: db.Collection(uploadedFileCollectionName),
	}
}

// Create inserts a new index entry for an uploaded file.
func (r *mongoUploadedFileRepository) Create(ctx context.Context, file *domain.UploadedFile) (primitive.ObjectID, error) {
	if file.StoragePath == "" || file.FileName == "" {
		return primitive.NilObjectID, errors.New("uploaded file requires filename and storage_path")
	}

	file.ID = primitive.NewObjectID()
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, file)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByAssessmentID retrieves all index entries for one assessment document,
// oldest first so report ordering matches upload order.
func (r *mongoUploadedFileRepository) GetByAssessmentID(ctx context.Context, assessmentID primitive.ObjectID) ([]domain.UploadedFile, error) {
	filter := bson.M{"assessment_id": assessmentID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var files []domain.UploadedFile
	if err := cursor.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// EnsureUploadedFileIndexes creates necessary indexes for the uploaded_files collection.
func EnsureUploadedFileIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "assessment_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "uploaded_by", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
