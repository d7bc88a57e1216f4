package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
)

// documentsResponse is the backend's document list envelope.
type documentsResponse struct {
	Documents []domain.Document `json:"documents"`
}

// ListDocuments returns all uploaded documents.
func (c *Client) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	var out documentsResponse
	if err := c.getJSON(ctx, "/documents", &out); err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return out.Documents, nil
}

// UploadDocument uploads a file as multipart form data and returns the
// stored document with its server-assigned id.
func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader) (*domain.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("reading upload content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalising upload form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/documents/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}

	var doc domain.Document
	if err := decodeResponse(resp, &doc); err != nil {
		return nil, fmt.Errorf("uploading %s: %w", filename, err)
	}
	return &doc, nil
}

// DeleteDocument removes an uploaded document.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	path := "/documents/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("deleting document %s: %w", id, err)
	}
	return nil
}

// AssignDocument tags a document with a class id.
func (c *Client) AssignDocument(ctx context.Context, documentID, classID string) error {
	path := "/documents/" + url.PathEscape(documentID) + "/classes/" + url.PathEscape(classID)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("assigning document %s to class %s: %w", documentID, classID, err)
	}
	return nil
}

// UnassignDocument removes a class tag from a document.
func (c *Client) UnassignDocument(ctx context.Context, documentID, classID string) error {
	path := "/documents/" + url.PathEscape(documentID) + "/classes/" + url.PathEscape(classID)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("unassigning document %s from class %s: %w", documentID, classID, err)
	}
	return nil
}

// transferRequest is the body for a class transfer.
type transferRequest struct {
	DocumentIDs []string `json:"document_ids"`
}

// TransferDocuments moves documents into a class's retrieval index.
func (c *Client) TransferDocuments(ctx context.Context, classID string, documentIDs []string) error {
	path := "/classes/" + url.PathEscape(classID) + "/transfer"
	body := transferRequest{DocumentIDs: documentIDs}
	if err := c.doJSON(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("transferring documents to class %s: %w", classID, err)
	}
	return nil
}

// ReindexClass rebuilds a class's retrieval collection.
func (c *Client) ReindexClass(ctx context.Context, classID string) error {
	path := "/classes/" + url.PathEscape(classID) + "/reindex"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("reindexing class %s: %w", classID, err)
	}
	return nil
}
