package mongo

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

const collectionVisitors = "visitors"

type VisitorRepository struct {
	col *mongo.Collection
}

var _ ports.VisitorRepository = (*VisitorRepository)(nil)

func NewVisitorRepository(db *mongo.Database) *VisitorRepository {
	return &VisitorRepository{col: db.Collection(collectionVisitors)}
}

func (r *VisitorRepository) Create(ctx context.Context, v *domain.Visitor) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, v)
	return err
}

func (r *VisitorRepository) FindByID(ctx context.Context, id string) (*domain.Visitor, error) {
	return findOne[domain.Visitor](ctx, r.col, bson.M{"_id": id}, domain.ErrVisitorNotFound)
}

func (r *VisitorRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Visitor, error) {
	items, err := findAll[domain.Visitor](ctx, r.col, byIDs(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[string]*domain.Visitor, len(items))
	for _, v := range items {
		out[v.ID] = v
	}
	return out, nil
}

// List returns visitors newest first. Search matches name, email or phone
// case-insensitively.
func (r *VisitorRepository) List(ctx context.Context, f ports.VisitorFilter) ([]*domain.Visitor, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"full_name": re},
			bson.M{"email": re},
			bson.M{"phone": re},
		}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findAll[domain.Visitor](ctx, r.col, filter, opts)
}

func (r *VisitorRepository) Update(ctx context.Context, v *domain.Visitor) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": v.ID}, v)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrVisitorNotFound
	}
	return nil
}

func (r *VisitorRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrVisitorNotFound
	}
	return nil
}

func (r *VisitorRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.col)
}

func (r *VisitorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
