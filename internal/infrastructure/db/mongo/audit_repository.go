package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shelfmark/book-tracker/internal/core/domain"
)

const authEventsCollection = "auth_events"

// MongoAuthEventRepository appends authentication audit events.
type MongoAuthEventRepository struct {
	coll *mongo.Collection
}

func NewAuthEventRepository(db *mongo.Database) *MongoAuthEventRepository {
	return &MongoAuthEventRepository{coll: db.Collection(authEventsCollection)}
}

type mongoAuthEvent struct {
	UserID string    `bson:"user_id,omitempty"`
	Email  string    `bson:"email,omitempty"`
	Action string    `bson:"action"`
	At     time.Time `bson:"at"`
}

func (r *MongoAuthEventRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	doc := mongoAuthEvent{
		UserID: event.UserID,
		Email:  event.Email,
		Action: string(event.Action),
		At:     event.At,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
