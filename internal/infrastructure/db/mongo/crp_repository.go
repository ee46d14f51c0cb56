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

const crpCollection = "crps"

type CRPRepository struct {
	coll *mongo.Collection
}

func NewCRPRepository(db *mongo.Database) *CRPRepository {
	return &CRPRepository{coll: db.Collection(crpCollection)}
}

func (r *CRPRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, uniqueIndexes("crp_id"))
	return err
}

func (r *CRPRepository) Insert(ctx context.Context, c *domain.CRP) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("insert crp: %w", err)
	}
	return nil
}

func (r *CRPRepository) FindByCRPID(ctx context.Context, crpID string) (*domain.CRP, error) {
	return r.findOne(ctx, bson.M{"crp_id": crpID})
}

func (r *CRPRepository) FindActiveByCRPID(ctx context.Context, crpID string) (*domain.CRP, error) {
	return r.findOne(ctx, bson.M{"crp_id": crpID, "is_active": true})
}

func (r *CRPRepository) findOne(ctx context.Context, filter bson.M) (*domain.CRP, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.CRP
	if err := r.coll.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCRPNotFound
		}
		return nil, fmt.Errorf("find crp: %w", err)
	}
	return &c, nil
}

func (r *CRPRepository) FindAll(ctx context.Context) ([]domain.CRP, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *CRPRepository) FindActiveByIDs(ctx context.Context, ids []string) ([]domain.CRP, error) {
	if len(ids) == 0 {
		return []domain.CRP{}, nil
	}
	return r.findMany(ctx, bson.M{"crp_id": bson.M{"$in": ids}, "is_active": true})
}

func (r *CRPRepository) findMany(ctx context.Context, filter bson.M) ([]domain.CRP, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find crps: %w", err)
	}
	crps := []domain.CRP{}
	if err := cur.All(ctx, &crps); err != nil {
		return nil, fmt.Errorf("decode crps: %w", err)
	}
	return crps, nil
}

func (r *CRPRepository) CountActiveByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{"crp_id": bson.M{"$in": ids}, "is_active": true})
}

func (r *CRPRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *CRPRepository) Update(ctx context.Context, crpID string, c *domain.CRP) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"crp_id": crpID}, c)
	if err != nil {
		return fmt.Errorf("update crp: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCRPNotFound
	}
	return nil
}

func (r *CRPRepository) UpdateVisitReport(ctx context.Context, crpID string, report domain.VisitReport) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"crp_id": crpID},
		bson.M{"$set": bson.M{"visit_report": report, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update visit report: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCRPNotFound
	}
	return nil
}

// AddFarmer appends the farmer id in one conditional update: the filter
// matches only while the id is absent, so two concurrent adds cannot both
// append. A zero matched count means the id was already present.
func (r *CRPRepository) AddFarmer(ctx context.Context, crpID, farmerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"crp_id": crpID, "is_active": true, "farmer_ids": bson.M{"$ne": farmerID}},
		bson.M{
			"$push": bson.M{"farmer_ids": farmerID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("add farmer to crp: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAlreadyAssigned
	}
	return nil
}

// RemoveFarmer is the converse conditional update: it matches only while the
// id is present, so removing a non-member changes nothing and reports it.
func (r *CRPRepository) RemoveFarmer(ctx context.Context, crpID, farmerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"crp_id": crpID, "is_active": true, "farmer_ids": farmerID},
		bson.M{
			"$pull": bson.M{"farmer_ids": farmerID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("remove farmer from crp: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotAssigned
	}
	return nil
}

func (r *CRPRepository) Deactivate(ctx context.Context, crpID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"crp_id": crpID},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("deactivate crp: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCRPNotFound
	}
	return nil
}

// --- ports.AccountStore ---

func (r *CRPRepository) FindByEmail(ctx context.Context, email string) (*ports.AccountView, error) {
	c, err := r.findOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	return &ports.AccountView{ID: c.CRPID, Name: c.CRPName, Account: c.Account}, nil
}

func (r *CRPRepository) FindActiveByID(ctx context.Context, id string) (*ports.AccountView, error) {
	c, err := r.FindActiveByCRPID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.AccountView{ID: c.CRPID, Name: c.CRPName, Account: c.Account}, nil
}

func (r *CRPRepository) UpdateLoginState(ctx context.Context, id string, attempts int, lockUntil, lastLogin *time.Time) error {
	return updateLoginState(ctx, r.coll, "crp_id", id, attempts, lockUntil, lastLogin)
}
