package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

const collectionPasses = "passes"

type PassRepository struct {
	col *mongo.Collection
}

var _ ports.PassRepository = (*PassRepository)(nil)

func NewPassRepository(db *mongo.Database) *PassRepository {
	return &PassRepository{col: db.Collection(collectionPasses)}
}

// Create inserts the complete pass record in a single write.
func (r *PassRepository) Create(ctx context.Context, p *domain.Pass) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *PassRepository) FindByID(ctx context.Context, id string) (*domain.Pass, error) {
	return findOne[domain.Pass](ctx, r.col, bson.M{"_id": id}, domain.ErrPassNotFound)
}

func (r *PassRepository) List(ctx context.Context, f ports.PassFilter) ([]*domain.Pass, error) {
	filter := bson.M{}
	if f.VisitorID != "" {
		filter["visitor_id"] = f.VisitorID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findAll[domain.Pass](ctx, r.col, filter, opts)
}

func (r *PassRepository) UpdateStatus(ctx context.Context, id string, status domain.PassStatus, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": at.UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPassNotFound
	}
	return nil
}

// MarkExpired flips the given passes to expired. Only passes still issued
// are touched, so concurrent readers converge on the same result.
func (r *PassRepository) MarkExpired(ctx context.Context, ids []string, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}, "status": domain.PassIssued},
		bson.M{"$set": bson.M{"status": domain.PassExpired, "updated_at": at.UTC()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// ExpireIssuedBefore is the bulk sweep: every issued pass whose window
// ended before now becomes expired.
func (r *PassRepository) ExpireIssuedBefore(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"status": domain.PassIssued, "valid_until": bson.M{"$lt": now.UTC()}},
		bson.M{"$set": bson.M{"status": domain.PassExpired, "updated_at": now.UTC()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *PassRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.col)
}

func (r *PassRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "visitor_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "valid_until", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
