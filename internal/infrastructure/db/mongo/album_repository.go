package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
)

const collectionAlbums = "albums"

type AlbumRepository struct {
	col *mongo.Collection
}

func NewAlbumRepository(db *mongo.Database) *AlbumRepository {
	return &AlbumRepository{col: db.Collection(collectionAlbums)}
}

func (r *AlbumRepository) Create(ctx context.Context, a *domain.Album) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := r.col.InsertOne(ctx, a)
	return err
}

// List returns every album in insertion order.
func (r *AlbumRepository) List(ctx context.Context) ([]domain.Album, error) {
	return r.find(ctx, bson.M{})
}

// ListForClient returns the albums a client may browse: their private ones
// plus the shared albums carrying no client id.
func (r *AlbumRepository) ListForClient(ctx context.Context, clientID string) ([]domain.Album, error) {
	filter := bson.M{"$or": []bson.M{
		{"client_id": clientID},
		{"client_id": bson.M{"$exists": false}},
		{"client_id": ""},
	}}
	return r.find(ctx, filter)
}

func (r *AlbumRepository) find(ctx context.Context, filter bson.M) ([]domain.Album, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	albums := []domain.Album{}
	if err := cur.All(ctx, &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

func (r *AlbumRepository) FindByID(ctx context.Context, id string) (*domain.Album, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Album
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAlbumNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AlbumRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrAlbumNotFound
	}
	return nil
}

func (r *AlbumRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "client_id", Value: 1}},
	})
	return err
}
