package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
)

const trainingCollection = "trainings"

type TrainingRepository struct {
	coll *mongo.Collection
}

func NewTrainingRepository(db *mongo.Database) *TrainingRepository {
	return &TrainingRepository{coll: db.Collection(trainingCollection)}
}

func (r *TrainingRepository) Insert(ctx context.Context, t *domain.Training) (*domain.Training, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("insert training: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid.Hex()
	}
	return t, nil
}

func (r *TrainingRepository) FindByID(ctx context.Context, id string) (*domain.Training, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTrainingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Training
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTrainingNotFound
		}
		return nil, fmt.Errorf("find training: %w", err)
	}
	return &t, nil
}

func (r *TrainingRepository) FindAll(ctx context.Context) ([]domain.Training, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *TrainingRepository) FindByCRP(ctx context.Context, crpID string) ([]domain.Training, error) {
	return r.findMany(ctx, bson.M{"crp_id": crpID})
}

func (r *TrainingRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Training, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find trainings: %w", err)
	}
	trainings := []domain.Training{}
	if err := cur.All(ctx, &trainings); err != nil {
		return nil, fmt.Errorf("decode trainings: %w", err)
	}
	return trainings, nil
}

func (r *TrainingRepository) Update(ctx context.Context, id string, t *domain.Training) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTrainingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"subject":    t.Subject,
			"attendees":  t.Attendees,
			"crp_id":     t.CRPID,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update training: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTrainingNotFound
	}
	return nil
}

func (r *TrainingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTrainingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete training: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTrainingNotFound
	}
	return nil
}
