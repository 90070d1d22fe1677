// Package crm implements the upstream lead API over HTTP: JSON lead creation
// and multipart document upload. Everything above this package talks to the
// port.LeadAPI interface only.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"leadgate/internal/config"
	"leadgate/internal/domain"
	"leadgate/internal/port"
)

type client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates an HTTP-backed LeadAPI implementation.
func NewClient(cfg *config.CRMConfig) port.LeadAPI {
	return &client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

// createLeadResponse tolerates both envelope shapes the upstream has been
// observed to return: the id at the top level or nested under data.
type createLeadResponse struct {
	Success      bool   `json:"success"`
	DetailLeadID string `json:"detail_lead_id"`
	Data         struct {
		DetailLeadID string `json:"detail_lead_id"`
	} `json:"data"`
}

func (c *client) CreateLead(ctx context.Context, input port.CreateLeadInput) (string, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("marshaling lead payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/leads", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building lead request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrLeadCreationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: upstream returned %d", domain.ErrLeadCreationFailed, resp.StatusCode)
	}

	var out createLeadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", domain.ErrLeadCreationFailed, err)
	}

	leadID := out.DetailLeadID
	if leadID == "" {
		leadID = out.Data.DetailLeadID
	}
	// A nominally successful response without an id is still a failure.
	if leadID == "" {
		return "", domain.ErrLeadIDMissing
	}
	return leadID, nil
}

// slotMetadata matches the metadata blob the upstream expects: a JSON array
// of one entry describing the slot being uploaded.
type slotMetadata struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

func (c *client) UploadDocument(ctx context.Context, leadID string, doc port.DocumentUpload) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("leadDbId", leadID); err != nil {
		return fmt.Errorf("writing leadDbId field: %w", err)
	}

	meta, err := json.Marshal([]slotMetadata{{Key: doc.SlotKey, Label: doc.SlotLabel}})
	if err != nil {
		return fmt.Errorf("marshaling slot metadata: %w", err)
	}
	if err := w.WriteField("metadata", string(meta)); err != nil {
		return fmt.Errorf("writing metadata field: %w", err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="documents"; filename=%q`, doc.FileName))
	h.Set("Content-Type", doc.ContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, doc.Body); err != nil {
		return fmt.Errorf("copying file payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/leads/documents", &buf)
	if err != nil {
		return fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: upstream returned %d", domain.ErrUploadFailed, resp.StatusCode)
	}

	var out struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", domain.ErrUploadFailed, err)
	}
	if !out.Success {
		return fmt.Errorf("%w: upstream reported failure", domain.ErrUploadFailed)
	}
	return nil
}

func (c *client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
