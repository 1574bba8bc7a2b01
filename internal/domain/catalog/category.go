package catalog

import (
	"strings"
	"unicode"

	"github.com/storefront/backend/internal/domain/shared"
)

// Category represents a product category (the CMS calls these "type products").
// Many-to-many with Product.
type Category struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
	Label      string `json:"type"`
}

// NewCategory creates a category with a normalized label
func NewCategory(id int, documentID, label string) (*Category, error) {
	normalized := NormalizeCategoryLabel(label)
	if normalized == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category label cannot be empty")
	}
	return &Category{ID: id, DocumentID: documentID, Label: normalized}, nil
}

// NormalizeCategoryLabel lowercases the label and keeps only letters, digits
// and single spaces
func NormalizeCategoryLabel(label string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range strings.ToLower(strings.TrimSpace(label)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r) && !lastSpace && b.Len() > 0:
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
