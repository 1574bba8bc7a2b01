package cms

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shared"
)

// numericID matches identifiers that are plain numeric primary keys
var numericID = regexp.MustCompile(`^\d+$`)

// withNotFoundFallback bridges the two record-addressing conventions of the
// content API. Numeric ids run the operation directly and any failure
// propagates. Document ids run the operation as-is first (current API
// versions address records by document id); if that fails with not-found,
// the numeric id is resolved through a filtered collection lookup and the
// operation retried exactly once. Synchronous, no backoff.
func (c *Client) withNotFoundFallback(ctx context.Context, resource, idOrDocumentID string, op func(id string) error) error {
	if numericID.MatchString(idOrDocumentID) {
		return op(idOrDocumentID)
	}

	err := op(idOrDocumentID)
	if err == nil || !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	resolved, rerr := c.resolveNumericID(ctx, resource, idOrDocumentID)
	if rerr != nil {
		return rerr
	}

	c.log.Debug("resolved document id through fallback lookup",
		zap.String("resource", resource),
		zap.String("document_id", idOrDocumentID),
		zap.String("id", resolved),
	)
	return op(resolved)
}

// resolveNumericID looks up the numeric primary key of a record by its
// document id. Returns shared.ErrNotFound (wrapped with resource and
// identifier) when no record matches.
func (c *Client) resolveNumericID(ctx context.Context, resource, documentID string) (string, error) {
	opts := ListOptions{
		Filters:  map[string]string{"documentId": documentID},
		PageSize: 1,
	}
	env, err := c.do(ctx, "GET", "/api/"+resource, opts.query(), nil)
	if err != nil {
		return "", fmt.Errorf("cms: fallback lookup for %s %q failed: %w", resource, documentID, err)
	}

	entries, err := env.entries()
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("cms: %s %q: %w", resource, documentID, shared.ErrNotFound)
	}

	id, _, err := decodeEntry(entries[0], nil)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", id), nil
}
