package domain

import (
	"errors"
	"time"
)

var ErrAlbumNotFound = errors.New("album not found")
var ErrGalleryItemNotFound = errors.New("gallery item not found")

// Album is a named grouping of gallery items. Albums without a ClientID are
// shared and visible to every client; albums with one are private to that
// client (enforced by the backend, not by portal code).
type Album struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	CoverURL  string    `json:"cover_url" bson:"cover_url"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	ClientID  string    `json:"client_id,omitempty" bson:"client_id,omitempty"`
}

// GalleryItem is a single photo. It belongs to exactly one album when
// AlbumID is set.
type GalleryItem struct {
	ID      string `json:"id" bson:"_id,omitempty"`
	URL     string `json:"url" bson:"url"`
	Title   string `json:"title" bson:"title"`
	AlbumID string `json:"album_id,omitempty" bson:"album_id,omitempty"`
}
