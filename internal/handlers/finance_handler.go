package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "findash/internal/errors"
	"findash/internal/services"
)

// uploadField is the multipart field carrying the spreadsheet.
const uploadField = "file"

// FinanceHandler handles spreadsheet uploads and record queries.
type FinanceHandler struct {
	ingestService  services.IngestServicer
	financeService services.FinanceServicer
	maxUploadBytes int64
}

// NewFinanceHandler creates a new FinanceHandler. Request bodies larger than
// maxUploadBytes are rejected with FILE_TOO_LARGE.
func NewFinanceHandler(ingestService services.IngestServicer, financeService services.FinanceServicer, maxUploadBytes int64) *FinanceHandler {
	return &FinanceHandler{
		ingestService:  ingestService,
		financeService: financeService,
		maxUploadBytes: maxUploadBytes,
	}
}

// UploadFinances ingests a spreadsheet of monthly amounts
// @Summary     Upload financial records
// @Description Upload an .xlsx/.xls workbook with Month and Amount columns for a user and year. Valid rows are stored even when other rows are rejected.
// @Tags        finances
// @Accept      multipart/form-data
// @Produce     json
// @Param       user_id path     int  true "User ID"
// @Param       year    path     int  true "Year"
// @Param       file    formData file true "Spreadsheet"
// @Success     200 {object} services.IngestSummary "All rows stored"
// @Success     207 {object} services.IngestSummary "Some rows rejected"
// @Failure     400 {object} ErrorResponse "No file, bad extension, missing columns or invalid path"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     413 {object} ErrorResponse "File too large"
// @Failure     500 {object} ErrorResponse "Unreadable file or store failure"
// @Router      /finances/upload/{user_id}/{year} [post]
func (h *FinanceHandler) UploadFinances(c *gin.Context) {
	var uri userYearURI
	if err := bindURI(c, &uri); err != nil {
		respondWithError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	file, header, err := c.Request.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(c, apperrors.ErrFileTooLarge)
			return
		}
		respondWithError(c, apperrors.ErrNoFile)
		return
	}
	defer file.Close()

	summary, err := h.ingestService.Ingest(c.Request.Context(), services.UploadRequest{
		UserID:   uri.UserID,
		Year:     uri.Year,
		Filename: header.Filename,
		File:     file,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	status := http.StatusOK
	if summary.Partial() {
		status = http.StatusMultiStatus
	}
	c.JSON(status, summary)
}

// GetFinances returns the stored records of a user for one year
// @Summary     Get financial records
// @Description Get a user's monthly amounts for a year. A known user without records gets an empty list.
// @Tags        finances
// @Produce     json
// @Param       user_id path int true "User ID"
// @Param       year    path int true "Year"
// @Success     200 {object} services.YearRecords "Records for the year"
// @Failure     400 {object} ErrorResponse "Invalid path"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /finances/{user_id}/{year} [get]
func (h *FinanceHandler) GetFinances(c *gin.Context) {
	var uri userYearURI
	if err := bindURI(c, &uri); err != nil {
		respondWithError(c, err)
		return
	}

	records, err := h.financeService.GetYearRecords(c.Request.Context(), uri.UserID, uri.Year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}
