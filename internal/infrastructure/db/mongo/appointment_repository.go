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

const collectionAppointments = "appointments"

type AppointmentRepository struct {
	col *mongo.Collection
}

var _ ports.AppointmentRepository = (*AppointmentRepository)(nil)

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{col: db.Collection(collectionAppointments)}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	return findOne[domain.Appointment](ctx, r.col, bson.M{"_id": id}, domain.ErrAppointmentNotFound)
}

func (r *AppointmentRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Appointment, error) {
	items, err := findAll[domain.Appointment](ctx, r.col, byIDs(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[string]*domain.Appointment, len(items))
	for _, a := range items {
		out[a.ID] = a
	}
	return out, nil
}

// List returns appointments latest-scheduled first.
func (r *AppointmentRepository) List(ctx context.Context, f ports.AppointmentFilter) ([]*domain.Appointment, error) {
	filter := bson.M{}
	if f.VisitorID != "" {
		filter["visitor_id"] = f.VisitorID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: -1}})
	return findAll[domain.Appointment](ctx, r.col, filter, opts)
}

func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.col)
}

func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "visitor_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "scheduled_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
