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

const collectionCheckLogs = "check_logs"

// CheckLogRepository is append-only.
type CheckLogRepository struct {
	col *mongo.Collection
}

var _ ports.CheckLogRepository = (*CheckLogRepository)(nil)

func NewCheckLogRepository(db *mongo.Database) *CheckLogRepository {
	return &CheckLogRepository{col: db.Collection(collectionCheckLogs)}
}

func (r *CheckLogRepository) Append(ctx context.Context, l *domain.CheckLog) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, l)
	return err
}

func (r *CheckLogRepository) List(ctx context.Context, f ports.CheckLogFilter) ([]*domain.CheckLog, error) {
	filter := bson.M{}
	if f.VisitorID != "" {
		filter["visitor_id"] = f.VisitorID
	}
	if f.PassID != "" {
		filter["pass_id"] = f.PassID
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	return findAll[domain.CheckLog](ctx, r.col, filter, opts)
}

func (r *CheckLogRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.col)
}

func (r *CheckLogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "visitor_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "pass_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
