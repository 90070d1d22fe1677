package handler_test

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"leadgate/internal/domain"
	"leadgate/internal/export"
	"leadgate/internal/handler"
	"leadgate/mocks"
)

func TestExportCSV_BOMAndRows(t *testing.T) {
	subRepo := new(mocks.MockSubmissionRepo)
	h := handler.NewReportHandler(subRepo)

	subs := []domain.Submission{
		{FormKey: "mortgage_loan", Status: domain.SubmissionStatusCompleted, LeadID: "LEAD-1"},
	}
	subRepo.On("ListAll", mock.Anything, 0, 500).Return(subs, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reports/submissions.csv", http.NoBody)

	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	body := w.Body.Bytes()
	require.True(t, len(body) >= 3)
	assert.Equal(t, export.BOM, body[:3])

	records, err := csv.NewReader(strings.NewReader(string(body[3:]))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Submission ID", records[0][0])
	assert.Equal(t, "LEAD-1", records[1][3])
}

func TestExportCSV_EmptyListing(t *testing.T) {
	subRepo := new(mocks.MockSubmissionRepo)
	h := handler.NewReportHandler(subRepo)

	subRepo.On("ListAll", mock.Anything, 0, 500).Return([]domain.Submission{}, 0, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reports/submissions.csv", http.NoBody)

	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	records, err := csv.NewReader(strings.NewReader(string(w.Body.Bytes()[3:]))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestExportXLSX(t *testing.T) {
	subRepo := new(mocks.MockSubmissionRepo)
	h := handler.NewReportHandler(subRepo)

	subRepo.On("ListAll", mock.Anything, 0, 500).
		Return([]domain.Submission{{FormKey: "personal_loan"}}, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reports/submissions.xlsx", http.NoBody)

	h.ExportXLSX(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Equal(t, []byte{'P', 'K'}, w.Body.Bytes()[:2])
}
