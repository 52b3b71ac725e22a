// Package repository opens the configured event store.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"

	"devevent/internal/domain"
	"devevent/internal/repository/mongodb"
	"devevent/internal/repository/postgres"
)

// Kind names a supported backend.
type Kind string

const (
	KindMongo    Kind = "mongodb"
	KindPostgres Kind = "postgres"
)

// Store bundles the repositories of one backend and its shutdown hook.
type Store struct {
	Kind     Kind
	Events   domain.EventRepository
	Bookings domain.BookingRepository
	Close    func(ctx context.Context) error
}

// KindOf returns the backend selected by the URL scheme.
func KindOf(url string) (Kind, error) {
	switch {
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		return KindMongo, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return KindPostgres, nil
	}
	return "", fmt.Errorf("unsupported database url scheme: %q", schemeOf(url))
}

// Open connects once per process, ensures indexes or tables, and returns the repositories.
func Open(ctx context.Context, url, dbName string) (*Store, error) {
	kind, err := KindOf(url)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindMongo:
		client, err := mongodb.Connect(ctx, url)
		if err != nil {
			return nil, err
		}
		db := client.Database(dbName)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return mongoStore(client, db), nil
	default:
		db, err := sql.Open("postgres", url)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return &Store{
			Kind:     KindPostgres,
			Events:   postgres.NewEventRepository(db),
			Bookings: postgres.NewBookingRepository(db),
			Close:    func(context.Context) error { return db.Close() },
		}, nil
	}
}

func mongoStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Kind:     KindMongo,
		Events:   mongodb.NewEventRepository(db.Collection(mongodb.EventsCollection)),
		Bookings: mongodb.NewBookingRepository(db.Collection(mongodb.BookingsCollection)),
		Close:    client.Disconnect,
	}
}

func schemeOf(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		return url[:i]
	}
	return url
}
