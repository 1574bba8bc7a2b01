package catalog

import (
	"strings"
	"unicode"

	"github.com/storefront/backend/internal/domain/shared"
)

// Size represents a size variant, shared across products
type Size struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
	Code       string `json:"size"`
}

// NewSize creates a size with a normalized code
func NewSize(id int, documentID, code string) (*Size, error) {
	normalized := NormalizeSizeCode(code)
	if normalized == "" {
		return nil, shared.NewDomainError("INVALID_SIZE", "Size code cannot be empty")
	}
	return &Size{ID: id, DocumentID: documentID, Code: normalized}, nil
}

// NormalizeSizeCode uppercases the code and strips everything that is not
// a letter or digit, so "xl ", "X-L" and "XL" all address the same size
func NormalizeSizeCode(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(code)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
