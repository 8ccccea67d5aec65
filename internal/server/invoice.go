package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/billfold/internal/invoice/domain"
	"github.com/smallbiznis/billfold/internal/providers/pdf"
	"github.com/smallbiznis/billfold/pkg/db/pagination"
)

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListInvoices(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		Pagination: page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetInvoiceReceipt(c *gin.Context) {
	detail, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	items := make([]pdf.ReceiptItem, 0, len(detail.Items))
	for _, item := range detail.Items {
		items = append(items, pdf.ReceiptItem{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Rate:     item.Rate,
			Total:    item.Total,
		})
	}

	reader, err := s.pdfProvider.GenerateReceipt(c.Request.Context(), pdf.ReceiptData{
		InvoiceNumber:   detail.InvoiceNumber,
		Date:            detail.Date,
		CustomerName:    detail.CustomerDetails.Name,
		CustomerMobile:  detail.CustomerDetails.Mobile,
		CustomerAddress: detail.CustomerDetails.Address,
		Items:           items,
		Total:           detail.Total,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	buf, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", receiptFilename(detail.InvoiceNumber)))
	c.Data(http.StatusOK, "application/pdf", buf)
}

// receiptFilename flattens the invoice number's slashes so the suggested
// download name is not a path.
func receiptFilename(invoiceNumber string) string {
	return "invoice-" + strings.ReplaceAll(invoiceNumber, "/", "-") + ".pdf"
}
