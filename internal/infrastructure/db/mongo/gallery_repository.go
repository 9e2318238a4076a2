package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
)

const collectionGallery = "gallery_items"

type GalleryRepository struct {
	col *mongo.Collection
}

func NewGalleryRepository(db *mongo.Database) *GalleryRepository {
	return &GalleryRepository{col: db.Collection(collectionGallery)}
}

func (r *GalleryRepository) Create(ctx context.Context, item *domain.GalleryItem) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	_, err := r.col.InsertOne(ctx, item)
	return err
}

// ListAll returns the full unscoped photo listing in insertion order.
func (r *GalleryRepository) ListAll(ctx context.Context) ([]domain.GalleryItem, error) {
	return r.find(ctx, bson.M{})
}

// ListByAlbum returns the photos belonging to one album.
func (r *GalleryRepository) ListByAlbum(ctx context.Context, albumID string) ([]domain.GalleryItem, error) {
	return r.find(ctx, bson.M{"album_id": albumID})
}

func (r *GalleryRepository) find(ctx context.Context, filter bson.M) ([]domain.GalleryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []domain.GalleryItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrGalleryItemNotFound
	}
	return nil
}

// DeleteByAlbum removes all photos of a deleted album.
func (r *GalleryRepository) DeleteByAlbum(ctx context.Context, albumID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"album_id": albumID})
	return err
}

func (r *GalleryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "album_id", Value: 1}},
	})
	return err
}
