package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/weinhaus/storefront/internal/core/domain"
)

const collectionOrderEvents = "order_events"

// orderEventDoc is one entry of the append-only order audit trail.
type orderEventDoc struct {
	OrderID    string    `bson:"order_id"`
	UserID     string    `bson:"user_id"`
	From       string    `bson:"from"`
	To         string    `bson:"to"`
	ActorID    string    `bson:"actor_id"`
	ActorRole  string    `bson:"actor_role"`
	At         time.Time `bson:"at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

type EventRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(collectionOrderEvents), now: time.Now}
}

// InsertEvent appends one status change to the audit trail.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.OrderEvent) error {
	doc := orderEventDoc{
		OrderID:    event.OrderID,
		UserID:     event.UserID,
		From:       string(event.From),
		To:         string(event.To),
		ActorID:    event.ActorID,
		ActorRole:  string(event.ActorRole),
		At:         event.At.UTC(),
		RecordedAt: r.now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert order event %s->%s: %w", doc.From, doc.To, err)
	}
	return nil
}

// EnsureIndexes supports reading one order's trail in time order.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "order_id", Value: 1}, {Key: "at", Value: 1}},
		Options: options.Index().SetName("order_events_order_at"),
	})
	if err != nil {
		return fmt.Errorf("create order_events index: %w", err)
	}
	return nil
}
