package mongo

import (
	"context"
	"errors"

	"alphacloud/assessment-portal/internal/domain"
	"alphacloud/assessment-portal/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const assessmentCollectionName = "assessments"

// mongoAssessmentRepository implements repository.AssessmentRepository
type mongoAssessmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAssessmentRepository creates a new assessment repository backed by MongoDB.
func NewMongoAssessmentRepository(db *mongo.Database) repository.AssessmentRepository {
	return &mongoAssessmentRepository{
		collection: db.Collection(assessmentCollectionName),
	}
}

// Create inserts a new assessment document. The caller (merge engine) owns
// the timestamps; the repository only assigns the id.
func (r *mongoAssessmentRepository) Create(ctx context.Context, doc *domain.AssessmentDocument) (primitive.ObjectID, error) {
	if doc.ClientID == "" {
		return primitive.NilObjectID, errors.New("assessment requires a client_id")
	}

	doc.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves an assessment document by its id.
func (r *mongoAssessmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.AssessmentDocument, error) {
	var doc domain.AssessmentDocument
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// GetLatestByClientID returns the most recently created document for a
// client. Multiple rows per client are expected; the newest wins.
func (r *mongoAssessmentRepository) GetLatestByClientID(ctx context.Context, clientID string) (*domain.AssessmentDocument, error) {
	var doc domain.AssessmentDocument
	filter := bson.M{"client_id": clientID}
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamps.created", Value: -1}})

	err := r.collection.FindOne(ctx, filter, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// ListByClientID returns all documents for a client, newest first.
func (r *mongoAssessmentRepository) ListByClientID(ctx context.Context, clientID string) ([]domain.AssessmentDocument, error) {
	filter := bson.M{"client_id": clientID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamps.created", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []domain.AssessmentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Update replaces the mutable portions of a document. client_id and the id
// never change; timestamps.created is preserved by the merge engine.
func (r *mongoAssessmentRepository) Update(ctx context.Context, doc *domain.AssessmentDocument) error {
	if doc.ID == primitive.NilObjectID {
		return errors.New("assessment ID is required for update")
	}

	filter := bson.M{"_id": doc.ID}
	updateDoc := bson.M{
		"$set": bson.M{
			"sections":   doc.Sections,
			"assessment": doc.Assessment,
			"timestamps": doc.Timestamps,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete hard-deletes a document by id. Only the explicit administrative
// delete action reaches this; supersession goes through archive instead.
func (r *mongoAssessmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureAssessmentIndexes creates necessary indexes for the assessments collection.
func EnsureAssessmentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Latest-by-created lookups per client
			Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "timestamps.created", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "assessment.submitted", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
