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

const problemCollection = "problems"

type ProblemRepository struct {
	coll *mongo.Collection
}

func NewProblemRepository(db *mongo.Database) *ProblemRepository {
	return &ProblemRepository{coll: db.Collection(problemCollection)}
}

func (r *ProblemRepository) Insert(ctx context.Context, p *domain.Problem) (*domain.Problem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("insert problem: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return p, nil
}

func (r *ProblemRepository) FindByID(ctx context.Context, id string) (*domain.Problem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProblemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Problem
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProblemNotFound
		}
		return nil, fmt.Errorf("find problem: %w", err)
	}
	return &p, nil
}

func (r *ProblemRepository) FindByFarmer(ctx context.Context, farmerID string) ([]domain.Problem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"farmer_id": farmerID})
	if err != nil {
		return nil, fmt.Errorf("find problems: %w", err)
	}
	problems := []domain.Problem{}
	if err := cur.All(ctx, &problems); err != nil {
		return nil, fmt.Errorf("decode problems: %w", err)
	}
	return problems, nil
}

func (r *ProblemRepository) Update(ctx context.Context, id string, p *domain.Problem) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProblemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"issue":       p.Issue,
			"description": p.Description,
			"solved":      p.Solved,
			"image":       p.Image,
			"video":       p.Video,
			"updated_at":  time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update problem: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProblemNotFound
	}
	return nil
}

func (r *ProblemRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProblemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete problem: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProblemNotFound
	}
	return nil
}
