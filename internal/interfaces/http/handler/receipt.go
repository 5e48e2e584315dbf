package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	ledgerapp "github.com/bryce-dotcom/og-dealer-app-sub001/internal/application/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ReceiptField is the multipart field carrying a receipt image
const ReceiptField = "receipt"

var errReceiptTooLarge = errors.New("receipt image too large")

// readReceipt reads the receipt upload from a multipart request. It returns
// nil without error when the form carries no receipt.
func readReceipt(c *gin.Context, maxBytes int64) (*ledger.ReceiptImage, error) {
	header, err := c.FormFile(ReceiptField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return nil, errReceiptTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open receipt: %w", err)
	}
	defer f.Close()

	r := io.Reader(f)
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read receipt: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, errReceiptTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return &ledger.ReceiptImage{Data: data, ContentType: contentType, Filename: header.Filename}, nil
}

// ReceiptHandler serves receipt extraction suggestions
type ReceiptHandler struct {
	BaseHandler
	intake   *ledgerapp.ReceiptIntakeService
	maxBytes int64
}

// NewReceiptHandler creates a new ReceiptHandler. maxBytes <= 0 disables the size cap.
func NewReceiptHandler(intake *ledgerapp.ReceiptIntakeService, maxBytes int64) *ReceiptHandler {
	return &ReceiptHandler{intake: intake, maxBytes: maxBytes}
}

// Extract godoc
// @ID           extractReceipt
// @Summary      Suggest expense fields from a receipt
// @Description  Never fails on extraction errors; an unreadable receipt answers 200 with degraded set
// @Tags         receipts
// @Accept       mpfd
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        receipt formData file true "Receipt image"
// @Success      200 {object} APIResponse[ledger.ReceiptSuggestionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Router       /receipts/extract [post]
func (h *ReceiptHandler) Extract(c *gin.Context) {
	image, ok := h.receipt(c)
	if !ok {
		return
	}
	if image == nil {
		h.BadRequest(c, "A receipt image is required")
		return
	}
	h.Success(c, h.intake.Extract(c.Request.Context(), *image))
}

// receipt reads the upload and answers the request itself on failure
func (h *ReceiptHandler) receipt(c *gin.Context) (*ledger.ReceiptImage, bool) {
	image, err := readReceipt(c, h.maxBytes)
	switch {
	case errors.Is(err, errReceiptTooLarge):
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Receipt image exceeds maximum allowed size")
		return nil, false
	case err != nil:
		h.BadRequest(c, "Invalid receipt upload")
		return nil, false
	}
	return image, true
}
