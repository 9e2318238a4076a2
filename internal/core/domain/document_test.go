package domain

import "testing"

func TestClassifyDocumentType(t *testing.T) {
	cases := []struct {
		contentType string
		want        DocumentType
	}{
		{"application/pdf", DocTypePDF},
		{"image/jpeg", DocTypeImage},
		{"image/png", DocTypeImage},
		{"application/msword", DocTypeDoc},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", DocTypeDoc},
		{"text/plain", DocTypeOther},
		{"", DocTypeOther},
		{"APPLICATION/PDF", DocTypePDF},
	}
	for _, tc := range cases {
		if got := ClassifyDocumentType(tc.contentType); got != tc.want {
			t.Fatalf("ClassifyDocumentType(%q) = %q, want %q", tc.contentType, got, tc.want)
		}
	}
}

// A content type matching several fragments resolves in a fixed order:
// word/document wins over pdf, pdf wins over image.
func TestClassifyDocumentType_Priority(t *testing.T) {
	if got := ClassifyDocumentType("application/word-pdf-image"); got != DocTypeDoc {
		t.Fatalf("expected doc to win, got %q", got)
	}
	if got := ClassifyDocumentType("application/pdf-image"); got != DocTypePDF {
		t.Fatalf("expected pdf to win over image, got %q", got)
	}
}
