package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
)

const collectionDocuments = "client_documents"

// DocumentRepository stores client documents. A document exists only within
// one client's collection; every query is keyed by client id.
type DocumentRepository struct {
	col *mongo.Collection
}

func NewDocumentRepository(db *mongo.Database) *DocumentRepository {
	return &DocumentRepository{col: db.Collection(collectionDocuments)}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.ClientDocument) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.UploadDate.IsZero() {
		doc.UploadDate = time.Now().UTC()
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// ListByClient returns one client's documents in upload order.
func (r *DocumentRepository) ListByClient(ctx context.Context, clientID string) ([]domain.ClientDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"client_id": clientID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := []domain.ClientDocument{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Delete removes one document, scoped to its owning client.
func (r *DocumentRepository) Delete(ctx context.Context, clientID, docID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": docID, "client_id": clientID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *DocumentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "client_id", Value: 1}},
	})
	return err
}
