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

const supervisorCollection = "supervisors"

type SupervisorRepository struct {
	coll *mongo.Collection
}

func NewSupervisorRepository(db *mongo.Database) *SupervisorRepository {
	return &SupervisorRepository{coll: db.Collection(supervisorCollection)}
}

func (r *SupervisorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, uniqueIndexes("supervisor_id"))
	return err
}

func (r *SupervisorRepository) Insert(ctx context.Context, s *domain.Supervisor) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("insert supervisor: %w", err)
	}
	return nil
}

func (r *SupervisorRepository) FindBySupervisorID(ctx context.Context, supervisorID string) (*domain.Supervisor, error) {
	return r.findOne(ctx, bson.M{"supervisor_id": supervisorID})
}

func (r *SupervisorRepository) FindActiveBySupervisorID(ctx context.Context, supervisorID string) (*domain.Supervisor, error) {
	return r.findOne(ctx, bson.M{"supervisor_id": supervisorID, "is_active": true})
}

func (r *SupervisorRepository) findOne(ctx context.Context, filter bson.M) (*domain.Supervisor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Supervisor
	if err := r.coll.FindOne(ctx, filter).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSupervisorNotFound
		}
		return nil, fmt.Errorf("find supervisor: %w", err)
	}
	return &s, nil
}

func (r *SupervisorRepository) Update(ctx context.Context, supervisorID string, s *domain.Supervisor) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"supervisor_id": supervisorID}, s)
	if err != nil {
		return fmt.Errorf("update supervisor: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSupervisorNotFound
	}
	return nil
}

func (r *SupervisorRepository) AddFollowUpTask(ctx context.Context, supervisorID string, task domain.FollowUpTask) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"supervisor_id": supervisorID, "is_active": true},
		bson.M{
			"$push": bson.M{"follow_up_tasks": task},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("add follow-up task: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSupervisorNotFound
	}
	return nil
}

// UpdateFollowUpTaskStatus updates one task in place through a positional
// operator; the task id in the filter pins which array element changes.
func (r *SupervisorRepository) UpdateFollowUpTaskStatus(ctx context.Context, supervisorID, taskID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"supervisor_id": supervisorID, "follow_up_tasks.task_id": taskID},
		bson.M{"$set": bson.M{
			"follow_up_tasks.$.status": status,
			"updated_at":               time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update follow-up task: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *SupervisorRepository) AppendExportEntry(ctx context.Context, supervisorID string, entry domain.ExportEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"supervisor_id": supervisorID},
		bson.M{
			"$push": bson.M{"export_history": entry},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("append export entry: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSupervisorNotFound
	}
	return nil
}

// --- ports.AccountStore ---

func (r *SupervisorRepository) FindByEmail(ctx context.Context, email string) (*ports.AccountView, error) {
	s, err := r.findOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	return &ports.AccountView{ID: s.SupervisorID, Name: s.SupervisorName, Account: s.Account}, nil
}

func (r *SupervisorRepository) FindActiveByID(ctx context.Context, id string) (*ports.AccountView, error) {
	s, err := r.FindActiveBySupervisorID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.AccountView{ID: s.SupervisorID, Name: s.SupervisorName, Account: s.Account}, nil
}

func (r *SupervisorRepository) UpdateLoginState(ctx context.Context, id string, attempts int, lockUntil, lastLogin *time.Time) error {
	return updateLoginState(ctx, r.coll, "supervisor_id", id, attempts, lockUntil, lastLogin)
}
