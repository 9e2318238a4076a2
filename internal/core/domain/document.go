package domain

import (
	"errors"
	"strings"
	"time"
)

// DocumentType is the closed tag set for client documents.
type DocumentType string

const (
	DocTypePDF   DocumentType = "pdf"
	DocTypeImage DocumentType = "image"
	DocTypeDoc   DocumentType = "doc"
	DocTypeOther DocumentType = "other"
)

var ErrDocumentNotFound = errors.New("document not found")

// ClientDocument is a file attached to exactly one client's record.
type ClientDocument struct {
	ID         string       `json:"id" bson:"_id,omitempty"`
	Name       string       `json:"name" bson:"name"`
	URL        string       `json:"url" bson:"url"`
	UploadDate time.Time    `json:"upload_date" bson:"upload_date"`
	Type       DocumentType `json:"type" bson:"type"`
	ClientID   string       `json:"-" bson:"client_id,omitempty"`
}

// ClassifyDocumentType maps a provider-supplied content type onto a
// DocumentType tag via substring matching. Unrecognised content types fall
// back to DocTypeOther.
func ClassifyDocumentType(contentType string) DocumentType {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "word"), strings.Contains(ct, "document"):
		return DocTypeDoc
	case strings.Contains(ct, "pdf"):
		return DocTypePDF
	case strings.Contains(ct, "image"):
		return DocTypeImage
	default:
		return DocTypeOther
	}
}
