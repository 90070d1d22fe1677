package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"leadgate/internal/domain"
	"leadgate/internal/export"
	"leadgate/internal/port"
)

// reportPageSize caps how many submissions are pulled per repository page
// while building an export.
const reportPageSize = 500

// ReportHandler streams submission exports.
type ReportHandler struct {
	subRepo port.SubmissionRepository
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(subRepo port.SubmissionRepository) *ReportHandler {
	return &ReportHandler{subRepo: subRepo}
}

// ExportCSV streams all submissions as a UTF-8 BOM prefixed CSV download.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	subs, err := h.collectAll(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("submissions-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(export.BOM); err != nil {
		c.Abort()
		return
	}
	w := export.NewCSVWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		c.Abort()
		return
	}
	if err := w.WriteSubmissions(subs); err != nil {
		c.Abort()
		return
	}
	w.Flush()
}

// ExportXLSX streams all submissions as an Excel workbook download.
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	subs, err := h.collectAll(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("submissions-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := export.WriteXLSX(c.Writer, subs); err != nil {
		c.Abort()
	}
}

func (h *ReportHandler) collectAll(c *gin.Context) ([]domain.Submission, error) {
	var all []domain.Submission
	offset := 0
	for {
		subs, total, err := h.subRepo.ListAll(c.Request.Context(), offset, reportPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, subs...)
		offset += len(subs)
		if offset >= total || len(subs) == 0 {
			break
		}
	}
	return all, nil
}
