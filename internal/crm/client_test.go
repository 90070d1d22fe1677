package crm_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadgate/internal/config"
	"leadgate/internal/crm"
	"leadgate/internal/domain"
	"leadgate/internal/port"
)

func newTestClient(baseURL string) port.LeadAPI {
	return crm.NewClient(&config.CRMConfig{
		BaseURL: baseURL,
		APIKey:  "test-api-key",
		Timeout: 5 * time.Second,
	})
}

func leadInput() port.CreateLeadInput {
	return port.CreateLeadInput{
		Department:  "loans",
		ProductType: "mortgage",
		SubCategory: "detailed_lead",
		Client: port.LeadClient{
			Name:   "Asha Rao",
			Mobile: "9876543210",
			Email:  "asha@example.com",
		},
		Meta:     port.LeadMeta{IsSelfLogin: true},
		FormData: map[string]string{"loan_amount": "2500000"},
	}
}

func TestCreateLead_TopLevelID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/leads", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

		var in port.CreateLeadInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "loans", in.Department)
		assert.Equal(t, "Asha Rao", in.Client.Name)
		assert.True(t, in.Meta.IsSelfLogin)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":        true,
			"detail_lead_id": "LEAD-123",
		})
	}))
	defer srv.Close()

	leadID, err := newTestClient(srv.URL).CreateLead(context.Background(), leadInput())

	require.NoError(t, err)
	assert.Equal(t, "LEAD-123", leadID)
}

func TestCreateLead_NestedID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]string{"detail_lead_id": "LEAD-456"},
		})
	}))
	defer srv.Close()

	leadID, err := newTestClient(srv.URL).CreateLead(context.Background(), leadInput())

	require.NoError(t, err)
	assert.Equal(t, "LEAD-456", leadID)
}

func TestCreateLead_MissingIDOn2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateLead(context.Background(), leadInput())

	assert.ErrorIs(t, err, domain.ErrLeadIDMissing)
}

func TestCreateLead_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateLead(context.Background(), leadInput())

	assert.ErrorIs(t, err, domain.ErrLeadCreationFailed)
}

func TestUploadDocument_MultipartShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leads/documents", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))

		assert.Equal(t, "LEAD-123", r.FormValue("leadDbId"))

		var meta []struct {
			Key   string `json:"key"`
			Label string `json:"label"`
		}
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("metadata")), &meta))
		require.Len(t, meta, 1)
		assert.Equal(t, "pan_card", meta[0].Key)
		assert.Equal(t, "PAN Card", meta[0].Label)

		files := r.MultipartForm.File["documents"]
		require.Len(t, files, 1)
		assert.Equal(t, "pan.pdf", files[0].Filename)
		assert.Equal(t, "application/pdf", files[0].Header.Get("Content-Type"))

		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		payload, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "pdf-bytes", string(payload))

		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).UploadDocument(context.Background(), "LEAD-123", port.DocumentUpload{
		SlotKey:     "pan_card",
		SlotLabel:   "PAN Card",
		FileName:    "pan.pdf",
		ContentType: "application/pdf",
		Body:        strings.NewReader("pdf-bytes"),
	})

	assert.NoError(t, err)
}

func TestUploadDocument_UpstreamReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]bool{"success": false})
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).UploadDocument(context.Background(), "LEAD-1", port.DocumentUpload{
		SlotKey:  "pan_card",
		FileName: "pan.pdf",
		Body:     strings.NewReader("x"),
	})

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}

func TestUploadDocument_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).UploadDocument(context.Background(), "LEAD-1", port.DocumentUpload{
		SlotKey:  "pan_card",
		FileName: "pan.pdf",
		Body:     strings.NewReader("x"),
	})

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}
