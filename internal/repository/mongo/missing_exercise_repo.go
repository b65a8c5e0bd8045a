package mongo

import (
	"context"
	"time"

	"fitai/plan-service/internal/domain"
	"fitai/plan-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const missingExerciseCollectionName = "missing_exercises"

// mongoMissingExerciseRepository implements repository.MissingExerciseRepository
type mongoMissingExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoMissingExerciseRepository creates the missing-exercise log backed by MongoDB.
func NewMongoMissingExerciseRepository(db *mongo.Database) repository.MissingExerciseRepository {
	return &mongoMissingExerciseRepository{
		collection: db.Collection(missingExerciseCollectionName),
	}
}

// Append inserts one unresolved record. Repeated names are kept; the log is a
// queue of requests, not a set of names.
func (r *mongoMissingExerciseRepository) Append(ctx context.Context, exerciseName string) error {
	record := domain.MissingExercise{
		ID:           primitive.NewObjectID(),
		ExerciseName: exerciseName,
		RequestedAt:  time.Now().UTC(),
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// List returns records newest first, optionally filtered by the resolved flag.
func (r *mongoMissingExerciseRepository) List(ctx context.Context, resolved *bool) ([]domain.MissingExercise, error) {
	filter := bson.M{}
	if resolved != nil {
		filter["resolved"] = *resolved
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "requestedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.MissingExercise{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// MarkResolved flips the resolved flag of a record.
func (r *mongoMissingExerciseRepository) MarkResolved(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			"resolved":   true,
			"resolvedAt": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMissingExerciseIndexes creates necessary indexes for the missing_exercises collection.
func EnsureMissingExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "resolved", Value: 1}, {Key: "requestedAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "exerciseName", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
