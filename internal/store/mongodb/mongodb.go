// Package mongodb is the MongoDB transaction store backend.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moneytracker/internal/core"
)

const collectionName = "transactions"

type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// document is the stored shape of a transaction. Amounts are kept in cents
// to avoid floating point drift in aggregations.
type document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Date        time.Time          `bson:"date"`
	Title       string             `bson:"title"`
	Category    string             `bson:"category"`
	AmountCents int64              `bson:"amount_cents"`
	Account     string             `bson:"account,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

// New connects to MongoDB and pings it before returning.
func New(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	db := client.Database(dbName)
	slog.InfoContext(ctx, "Connected to MongoDB", "database", dbName)
	return &Store{
		client:     client,
		collection: db.Collection(collectionName),
	}, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Append inserts the transaction and returns its object id as the row ref.
func (s *Store) Append(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	res, err := s.collection.InsertOne(ctx, document{
		Date:        t.Date,
		Title:       t.Title,
		Category:    t.Category,
		AmountCents: t.Amount.Cents,
		Account:     t.Account,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}

// List returns every transaction, newest date first.
func (s *Store) List(ctx context.Context) ([]core.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var txs []core.Transaction
	for cursor.Next(ctx) {
		var doc document
		if err := cursor.Decode(&doc); err != nil {
			slog.WarnContext(ctx, "Skipping undecodable transaction document", "error", err)
			continue
		}
		txs = append(txs, core.Transaction{
			Date:     doc.Date,
			Title:    doc.Title,
			Category: doc.Category,
			Amount:   core.Money{Cents: doc.AmountCents},
			Account:  doc.Account,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

// Reload recounts the collection. MongoDB is its own source of truth, so
// there is nothing to re-read; the count keeps the reload response honest.
func (s *Store) Reload(ctx context.Context) (int, error) {
	n, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return int(n), nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}
