// Package mongo provides a MongoDB-backed implementation of the snippet repository.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roguepikachu/synopsis/internal/domain"
	"github.com/roguepikachu/synopsis/internal/repository"
	"github.com/roguepikachu/synopsis/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// CollectionName is the collection holding snippet documents.
const CollectionName = "snippets"

// snippetDocument is the stored shape of a snippet.
type snippetDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Text      string             `bson:"text"`
	Summary   string             `bson:"summary"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// SnippetRepository implements repository.SnippetRepository using a MongoDB collection.
type SnippetRepository struct {
	db *mongo.Database
}

// NewSnippetRepository creates a new MongoDB-backed snippet repository.
func NewSnippetRepository(db *mongo.Database) *SnippetRepository {
	return &SnippetRepository{db: db}
}

func (r *SnippetRepository) collection() *mongo.Collection {
	return r.db.Collection(CollectionName)
}

// EnsureSchema creates the snippets collection with a $jsonSchema validator
// enforcing the field bounds. An existing collection is left untouched.
func (r *SnippetRepository) EnsureSchema(ctx context.Context) error {
	names, err := r.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: CollectionName}})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	if len(names) > 0 {
		return nil
	}
	validator := bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"text", "summary", "createdAt", "updatedAt"},
		"properties": bson.M{
			"text":      bson.M{"bsonType": "string", "minLength": 1, "maxLength": domain.MaxTextLength},
			"summary":   bson.M{"bsonType": "string", "minLength": 1, "maxLength": domain.MaxSummaryLength},
			"createdAt": bson.M{"bsonType": "date"},
			"updatedAt": bson.M{"bsonType": "date"},
		},
	}}
	opts := options.CreateCollection().SetValidator(validator)
	if err := r.db.CreateCollection(ctx, CollectionName, opts); err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	logger.Info(ctx, "mongo collection %s created", CollectionName)
	return nil
}

// Insert adds a new snippet document.
func (r *SnippetRepository) Insert(ctx context.Context, s domain.Snippet) error {
	oid, err := primitive.ObjectIDFromHex(s.ID)
	if err != nil {
		return fmt.Errorf("snippet id: %w", err)
	}
	doc := snippetDocument{
		ID:        oid,
		Text:      s.Text,
		Summary:   s.Summary,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if _, err := r.collection().InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert snippet: %w", err)
	}
	return nil
}

// FindByID retrieves a snippet document by its ObjectID.
func (r *SnippetRepository) FindByID(ctx context.Context, id string) (domain.Snippet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Snippet{}, repository.ErrInvalidID
	}
	var doc snippetDocument
	if err := r.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Snippet{}, repository.ErrNotFound
		}
		return domain.Snippet{}, fmt.Errorf("find snippet: %w", err)
	}
	return domain.Snippet{
		ID:        doc.ID.Hex(),
		Text:      doc.Text,
		Summary:   doc.Summary,
		CreatedAt: doc.CreatedAt.UTC(),
		UpdatedAt: doc.UpdatedAt.UTC(),
	}, nil
}

// Ping checks connectivity for readiness probes.
func (r *SnippetRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, readpref.Primary())
}

var _ repository.SnippetRepository = (*SnippetRepository)(nil)
