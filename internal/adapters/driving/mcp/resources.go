package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// URIScheme is the custom URI scheme for Scholar resources.
	uriScheme = "scholar://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing classes.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "classes",
		Name:        "classes",
		Description: "List of all classes",
		MIMEType:    "application/json",
	}, s.handleClassesResource)

	// Static resource for the document registry.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "All uploaded documents",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for a class's documents.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "classes/{classId}/documents",
		Name:        "class-documents",
		Description: "Documents assigned to a specific class",
		MIMEType:    "application/json",
	}, s.handleClassDocumentsResource)
}

// handleClassesResource returns a list of all classes.
func (s *Server) handleClassesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Class == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	classes, err := s.ports.Class.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing classes: %w", err)
	}

	// Build simplified class list.
	type classInfo struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		Subject       string `json:"subject"`
		Description   string `json:"description,omitempty"`
		DocumentCount int    `json:"document_count"`
	}

	infos := make([]classInfo, len(classes))
	for i := range classes {
		infos[i] = classInfo{
			ID:            classes[i].ID,
			Name:          classes[i].Name,
			Subject:       classes[i].Subject.String(),
			Description:   classes[i].Description,
			DocumentCount: len(classes[i].Documents),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling classes: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentsResource returns the full document registry.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Document == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	if err := s.ports.Document.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("refreshing documents: %w", err)
	}
	docs := s.ports.Document.List()

	// Build simplified document list.
	type docInfo struct {
		ID       string   `json:"id"`
		Filename string   `json:"filename"`
		Size     int64    `json:"size"`
		Classes  []string `json:"classes,omitempty"`
	}

	infos := make([]docInfo, len(docs))
	for i := range docs {
		infos[i] = docInfo{
			ID:       docs[i].ID,
			Filename: docs[i].Filename,
			Size:     docs[i].Size,
			Classes:  docs[i].AssignedClasses,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleClassDocumentsResource returns documents assigned to a specific class.
func (s *Server) handleClassDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Class == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract classId from URI: scholar://classes/{classId}/documents
	classID := extractClassID(req.Params.URI)
	if classID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	class, err := s.ports.Class.Get(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("getting class: %w", err)
	}

	// Build simplified document list. Filenames come from the document
	// registry when it is available.
	type docInfo struct {
		ID       string `json:"id"`
		Filename string `json:"filename,omitempty"`
	}

	infos := make([]docInfo, len(class.Documents))
	for i, id := range class.Documents {
		infos[i] = docInfo{ID: id}
		if s.ports.Document == nil {
			continue
		}
		if doc, err := s.ports.Document.Get(id); err == nil {
			infos[i].Filename = doc.Filename
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractClassID extracts the class ID from a URI like scholar://classes/{classId}/documents.
func extractClassID(uri string) string {
	const prefix = uriScheme + "classes/"
	const suffix = "/documents"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
