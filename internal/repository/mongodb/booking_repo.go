package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"devevent/internal/domain"
)

type bookingDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	EventID   primitive.ObjectID `bson:"eventId"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type bookingRepository struct {
	coll *mongo.Collection
}

// NewBookingRepository returns a domain.BookingRepository over the bookings collection.
func NewBookingRepository(coll *mongo.Collection) domain.BookingRepository {
	return &bookingRepository{coll: coll}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	eventID, err := primitive.ObjectIDFromHex(b.EventID)
	if err != nil {
		return domain.NewStoreError(domain.StoreMalformed, "eventId", err)
	}
	res, err := r.coll.InsertOne(ctx, bookingDocument{
		EventID:   eventID,
		Email:     b.Email,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	})
	if err != nil {
		return classify(err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	b.ID = id.Hex()
	return nil
}

func (r *bookingRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return 0, domain.NewStoreError(domain.StoreMalformed, "eventId", err)
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"eventId": oid})
	if err != nil {
		return 0, classify(err)
	}
	return int(n), nil
}
