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

const farmerCollection = "farmers"

type FarmerRepository struct {
	coll *mongo.Collection
}

func NewFarmerRepository(db *mongo.Database) *FarmerRepository {
	return &FarmerRepository{coll: db.Collection(farmerCollection)}
}

func (r *FarmerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, uniqueIndexes("farmer_id"))
	return err
}

func (r *FarmerRepository) Insert(ctx context.Context, f *domain.Farmer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, f); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("insert farmer: %w", err)
	}
	return nil
}

func (r *FarmerRepository) FindByFarmerID(ctx context.Context, farmerID string) (*domain.Farmer, error) {
	return r.findOne(ctx, bson.M{"farmer_id": farmerID})
}

func (r *FarmerRepository) FindActiveByFarmerID(ctx context.Context, farmerID string) (*domain.Farmer, error) {
	return r.findOne(ctx, bson.M{"farmer_id": farmerID, "is_active": true})
}

func (r *FarmerRepository) findOne(ctx context.Context, filter bson.M) (*domain.Farmer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var f domain.Farmer
	if err := r.coll.FindOne(ctx, filter).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFarmerNotFound
		}
		return nil, fmt.Errorf("find farmer: %w", err)
	}
	return &f, nil
}

func (r *FarmerRepository) FindAll(ctx context.Context) ([]domain.Farmer, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *FarmerRepository) FindActiveByIDs(ctx context.Context, ids []string, filter ports.FarmerFilter) ([]domain.Farmer, error) {
	if len(ids) == 0 {
		return []domain.Farmer{}, nil
	}
	query := bson.M{"farmer_id": bson.M{"$in": ids}, "is_active": true}
	if filter.District != "" {
		query["district"] = filter.District
	}
	if filter.Crop != "" {
		query["crop_grown"] = filter.Crop
	}
	return r.findMany(ctx, query)
}

func (r *FarmerRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Farmer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find farmers: %w", err)
	}
	farmers := []domain.Farmer{}
	if err := cur.All(ctx, &farmers); err != nil {
		return nil, fmt.Errorf("decode farmers: %w", err)
	}
	return farmers, nil
}

func (r *FarmerRepository) CountActiveByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{"farmer_id": bson.M{"$in": ids}, "is_active": true})
}

func (r *FarmerRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *FarmerRepository) Update(ctx context.Context, farmerID string, f *domain.Farmer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"farmer_id": farmerID}, f)
	if err != nil {
		return fmt.Errorf("update farmer: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrFarmerNotFound
	}
	return nil
}

func (r *FarmerRepository) Deactivate(ctx context.Context, farmerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"farmer_id": farmerID},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("deactivate farmer: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrFarmerNotFound
	}
	return nil
}

// --- ports.AccountStore ---

func (r *FarmerRepository) FindByEmail(ctx context.Context, email string) (*ports.AccountView, error) {
	f, err := r.findOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	return &ports.AccountView{ID: f.FarmerID, Name: f.FullName, Account: f.Account}, nil
}

func (r *FarmerRepository) FindActiveByID(ctx context.Context, id string) (*ports.AccountView, error) {
	f, err := r.FindActiveByFarmerID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.AccountView{ID: f.FarmerID, Name: f.FullName, Account: f.Account}, nil
}

func (r *FarmerRepository) UpdateLoginState(ctx context.Context, id string, attempts int, lockUntil, lastLogin *time.Time) error {
	return updateLoginState(ctx, r.coll, "farmer_id", id, attempts, lockUntil, lastLogin)
}
