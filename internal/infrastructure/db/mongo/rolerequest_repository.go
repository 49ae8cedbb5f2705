package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

const roleRequestsCollection = "role_requests"

// RoleRequestRepository persists role elevation requests.
//
// Two storage-level guarantees back the workflow's invariants:
//   - a partial unique index on user_id (status = PENDING) makes the
//     one-pending-request-per-user rule hold under concurrent submissions;
//   - Resolve filters on status = PENDING inside a single FindOneAndUpdate,
//     so the PENDING → terminal transition is a compare-and-swap and at most
//     one of two concurrent resolutions can win.
type RoleRequestRepository struct {
	col *mongo.Collection
}

func NewRoleRequestRepository(db *mongo.Database) *RoleRequestRepository {
	return &RoleRequestRepository{col: db.Collection(roleRequestsCollection)}
}

type roleRequestDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        string             `bson:"user_id"`
	RequestedRole string             `bson:"requested_role"`
	CurrentRole   string             `bson:"current_role"`
	Justification string             `bson:"justification"`
	Status        string             `bson:"status"`
	ReviewedByID  string             `bson:"reviewed_by_id,omitempty"`
	ReviewedAt    *time.Time         `bson:"reviewed_at,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (d roleRequestDoc) toDomain() *domain.RoleRequest {
	req := &domain.RoleRequest{
		ID:            d.ID.Hex(),
		UserID:        d.UserID,
		RequestedRole: domain.Role(d.RequestedRole),
		CurrentRole:   domain.Role(d.CurrentRole),
		Justification: d.Justification,
		Status:        domain.RequestStatus(d.Status),
		ReviewedByID:  d.ReviewedByID,
		CreatedAt:     d.CreatedAt.UTC(),
	}
	if d.ReviewedAt != nil {
		at := d.ReviewedAt.UTC()
		req.ReviewedAt = &at
	}
	return req
}

func (r *RoleRequestRepository) Create(ctx context.Context, req *domain.RoleRequest) (*domain.RoleRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := roleRequestDoc{
		UserID:        req.UserID,
		RequestedRole: string(req.RequestedRole),
		CurrentRole:   string(req.CurrentRole),
		Justification: req.Justification,
		Status:        string(req.Status),
		CreatedAt:     req.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPendingRequestExists
		}
		return nil, fmt.Errorf("insert role request: %w", err)
	}

	created := *req
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *RoleRequestRepository) FindByID(ctx context.Context, id string) (*domain.RoleRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc roleRequestDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find role request: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RoleRequestRepository) ListByUser(ctx context.Context, userID string) ([]*domain.RoleRequest, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *RoleRequestRepository) ListAll(ctx context.Context) ([]*domain.RoleRequest, error) {
	return r.list(ctx, bson.M{})
}

func (r *RoleRequestRepository) ListPending(ctx context.Context) ([]*domain.RoleRequest, error) {
	return r.list(ctx, bson.M{"status": string(domain.RequestStatusPending)})
}

func (r *RoleRequestRepository) list(ctx context.Context, filter bson.M) ([]*domain.RoleRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list role requests: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.RoleRequest
	for cur.Next(ctx) {
		var doc roleRequestDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode role request: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *RoleRequestRepository) HasPending(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{
		"user_id": userID,
		"status":  string(domain.RequestStatusPending),
	})
	if err != nil {
		return false, fmt.Errorf("count pending requests: %w", err)
	}
	return n > 0, nil
}

// Resolve atomically moves a PENDING request to the given terminal status.
// The status filter in the update makes this a compare-and-swap: a request
// that exists but is no longer PENDING yields ErrRequestAlreadyResolved.
func (r *RoleRequestRepository) Resolve(ctx context.Context, id string, status domain.RequestStatus, reviewerID string, reviewedAt time.Time) (*domain.RoleRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc roleRequestDoc
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid, "status": string(domain.RequestStatusPending)},
		bson.M{"$set": bson.M{
			"status":         string(status),
			"reviewed_by_id": reviewerID,
			"reviewed_at":    reviewedAt,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("resolve role request: %w", err)
	}

	// The CAS missed: either the request never existed or it lost the race.
	if _, findErr := r.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrRequestAlreadyResolved
}

// Reopen reverts a resolved request back to PENDING. Compensation path for a
// failed role mutation after an approval.
func (r *RoleRequestRepository) Reopen(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(
		ctx,
		bson.M{"_id": oid},
		bson.M{
			"$set":   bson.M{"status": string(domain.RequestStatusPending)},
			"$unset": bson.M{"reviewed_by_id": "", "reviewed_at": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("reopen role request: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func (r *RoleRequestRepository) CountPending(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"status": string(domain.RequestStatusPending)})
}

// EnsureIndexes creates the partial unique index backing the
// one-pending-request-per-user invariant, plus the list indexes.
func (r *RoleRequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": string(domain.RequestStatusPending)}),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
