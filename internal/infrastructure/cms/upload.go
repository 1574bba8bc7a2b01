package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/storefront/backend/internal/domain/catalog"
)

// UploadFile sends a file to the CMS upload endpoint and returns the
// created media assets
func (c *Client) UploadFile(ctx context.Context, filename string, contents io.Reader) ([]catalog.Media, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("files", filename)
	if err != nil {
		return nil, fmt.Errorf("cms: failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, contents); err != nil {
		return nil, fmt.Errorf("cms: failed to read upload contents: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("cms: failed to finalize upload form: %w", err)
	}

	respBody, err := c.doRaw(ctx, "POST", "/api/upload", nil, writer.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	// The upload endpoint answers with a bare array, not the data envelope
	var uploaded []struct {
		ID  int    `json:"id"`
		URL string `json:"url"`
		Alt string `json:"alternativeText"`
	}
	if err := json.Unmarshal(respBody, &uploaded); err != nil {
		return nil, fmt.Errorf("cms: failed to decode upload response: %w", err)
	}

	media := make([]catalog.Media, 0, len(uploaded))
	for _, u := range uploaded {
		media = append(media, catalog.Media{ID: u.ID, URL: u.URL, Alt: u.Alt})
	}
	return media, nil
}

// DeleteFile removes a media asset by its numeric file id
func (c *Client) DeleteFile(ctx context.Context, fileID int) error {
	_, err := c.doRaw(ctx, "DELETE", fmt.Sprintf("/api/upload/files/%d", fileID), nil, "", nil)
	return err
}
