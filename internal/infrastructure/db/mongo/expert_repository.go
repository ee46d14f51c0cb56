package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

const expertCollection = "experts"

type ExpertRepository struct {
	coll *mongo.Collection
}

func NewExpertRepository(db *mongo.Database) *ExpertRepository {
	return &ExpertRepository{coll: db.Collection(expertCollection)}
}

func (r *ExpertRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, uniqueIndexes("expert_id"))
	return err
}

func (r *ExpertRepository) Insert(ctx context.Context, e *domain.Expert) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("insert expert: %w", err)
	}
	return nil
}

func (r *ExpertRepository) FindByExpertID(ctx context.Context, expertID string) (*domain.Expert, error) {
	return r.findOne(ctx, bson.M{"expert_id": expertID})
}

func (r *ExpertRepository) FindActiveByExpertID(ctx context.Context, expertID string) (*domain.Expert, error) {
	return r.findOne(ctx, bson.M{"expert_id": expertID, "is_active": true})
}

func (r *ExpertRepository) FindActiveByLinkedCRP(ctx context.Context, crpID string) (*domain.Expert, error) {
	return r.findOne(ctx, bson.M{"linked_crp_id": crpID, "is_active": true})
}

func (r *ExpertRepository) findOne(ctx context.Context, filter bson.M) (*domain.Expert, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.Expert
	if err := r.coll.FindOne(ctx, filter).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrExpertNotFound
		}
		return nil, fmt.Errorf("find expert: %w", err)
	}
	return &e, nil
}

func (r *ExpertRepository) FindAll(ctx context.Context) ([]domain.Expert, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *ExpertRepository) FindActiveBySupervisor(ctx context.Context, supervisorID string) ([]domain.Expert, error) {
	return r.findMany(ctx, bson.M{"supervisor_id": supervisorID, "is_active": true})
}

func (r *ExpertRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Expert, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find experts: %w", err)
	}
	experts := []domain.Expert{}
	if err := cur.All(ctx, &experts); err != nil {
		return nil, fmt.Errorf("decode experts: %w", err)
	}
	return experts, nil
}

func (r *ExpertRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *ExpertRepository) Update(ctx context.Context, expertID string, e *domain.Expert) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"expert_id": expertID}, e)
	if err != nil {
		return fmt.Errorf("update expert: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrExpertNotFound
	}
	return nil
}

func (r *ExpertRepository) UpdateRecommendations(ctx context.Context, expertID string, rec domain.Recommendations) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"expert_id": expertID},
		bson.M{"$set": bson.M{"review": rec, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update recommendations: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrExpertNotFound
	}
	return nil
}

// LinkCRP claims the CRP in one conditional update: the filter matches only
// while no link is held, so two concurrent links cannot both succeed.
func (r *ExpertRepository) LinkCRP(ctx context.Context, expertID, crpID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{
			"expert_id": expertID,
			"is_active": true,
			"$or": []bson.M{
				{"linked_crp_id": bson.M{"$exists": false}},
				{"linked_crp_id": ""},
			},
		},
		bson.M{"$set": bson.M{"linked_crp_id": crpID, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("link crp: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrExpertLinked
	}
	return nil
}

func (r *ExpertRepository) UnlinkCRP(ctx context.Context, expertID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{
			"expert_id":     expertID,
			"is_active":     true,
			"linked_crp_id": bson.M{"$exists": true, "$ne": ""},
		},
		bson.M{
			"$unset": bson.M{"linked_crp_id": 1},
			"$set":   bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("unlink crp: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNoLinkedCRP
	}
	return nil
}

func (r *ExpertRepository) AddFarmer(ctx context.Context, expertID, farmerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"expert_id": expertID, "is_active": true, "farmer_ids": bson.M{"$ne": farmerID}},
		bson.M{
			"$push": bson.M{"farmer_ids": farmerID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("add farmer to expert: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAlreadyAssigned
	}
	return nil
}

func (r *ExpertRepository) RemoveFarmer(ctx context.Context, expertID, farmerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"expert_id": expertID, "is_active": true, "farmer_ids": farmerID},
		bson.M{
			"$pull": bson.M{"farmer_ids": farmerID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("remove farmer from expert: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotAssigned
	}
	return nil
}

// SetSupervisor assigns the expert unless a different supervisor already
// holds it. Re-assigning the same supervisor is a no-op that still matches.
func (r *ExpertRepository) SetSupervisor(ctx context.Context, expertID, supervisorID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{
			"expert_id": expertID,
			"is_active": true,
			"$or": []bson.M{
				{"supervisor_id": bson.M{"$exists": false}},
				{"supervisor_id": ""},
				{"supervisor_id": supervisorID},
			},
		},
		bson.M{"$set": bson.M{"supervisor_id": supervisorID, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("set supervisor: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrExpertClaimed
	}
	return nil
}

func (r *ExpertRepository) UnsetSupervisor(ctx context.Context, expertID, supervisorID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"expert_id": expertID, "is_active": true, "supervisor_id": supervisorID},
		bson.M{
			"$unset": bson.M{"supervisor_id": 1},
			"$set":   bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("unset supervisor: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrExpertNotUnder
	}
	return nil
}

func (r *ExpertRepository) Deactivate(ctx context.Context, expertID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"expert_id": expertID},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("deactivate expert: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrExpertNotFound
	}
	return nil
}

// --- ports.AccountStore ---

func (r *ExpertRepository) FindByEmail(ctx context.Context, email string) (*ports.AccountView, error) {
	e, err := r.findOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	return &ports.AccountView{ID: e.ExpertID, Name: e.ExpertName, Account: e.Account}, nil
}

func (r *ExpertRepository) FindActiveByID(ctx context.Context, id string) (*ports.AccountView, error) {
	e, err := r.FindActiveByExpertID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.AccountView{ID: e.ExpertID, Name: e.ExpertName, Account: e.Account}, nil
}

func (r *ExpertRepository) UpdateLoginState(ctx context.Context, id string, attempts int, lockUntil, lastLogin *time.Time) error {
	return updateLoginState(ctx, r.coll, "expert_id", id, attempts, lockUntil, lastLogin)
}
