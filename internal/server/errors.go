package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/billfold/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/billfold/internal/invoice/domain"
	"github.com/smallbiznis/billfold/internal/invoice/number"
	productdomain "github.com/smallbiznis/billfold/internal/product/domain"
	"gorm.io/gorm"
)

var ErrInvalidRequest = errors.New("invalid_request")

// ErrorHandlingMiddleware maps errors recorded on the context to JSON
// {"error": "..."} payloads after the handler chain runs. Internal failure
// detail stays in the logs, not in the response body.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, gin.H{"error": message})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, string) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, validationMessage(err)
	case isConflictError(err):
		return http.StatusConflict, conflictMessage(err)
	case isNotFoundError(err):
		return http.StatusNotFound, "not found"
	case errors.Is(err, number.ErrAllocation):
		return http.StatusInternalServerError, "could not allocate invoice number"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, invoicedomain.ErrInvalidCustomerID),
		errors.Is(err, invoicedomain.ErrInvalidProductID),
		errors.Is(err, invoicedomain.ErrCustomerNotFound),
		errors.Is(err, invoicedomain.ErrProductNotFound),
		errors.Is(err, invoicedomain.ErrEmptyItems),
		errors.Is(err, invoicedomain.ErrInvalidQuantity),
		errors.Is(err, invoicedomain.ErrInvalidRate),
		errors.Is(err, invoicedomain.ErrTotalMismatch),
		errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, customerdomain.ErrInvalidMobile),
		errors.Is(err, customerdomain.ErrInvalidAddress),
		errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, productdomain.ErrInvalidName),
		errors.Is(err, productdomain.ErrInvalidRate),
		errors.Is(err, productdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, customerdomain.ErrDuplicateMobile),
		errors.Is(err, customerdomain.ErrCustomerHasInvoices),
		errors.Is(err, productdomain.ErrDuplicateName),
		errors.Is(err, productdomain.ErrProductInUse):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, invoicedomain.ErrCustomerNotFound):
		return "customer does not exist"
	case errors.Is(err, invoicedomain.ErrProductNotFound):
		return "one or more products do not exist"
	case errors.Is(err, invoicedomain.ErrEmptyItems):
		return "invoice requires at least one item"
	case errors.Is(err, invoicedomain.ErrInvalidQuantity):
		return "item quantity must be positive"
	case errors.Is(err, invoicedomain.ErrInvalidRate):
		return "item rate must not be negative"
	case errors.Is(err, invoicedomain.ErrTotalMismatch):
		return "totals do not match quantity and rate"
	case errors.Is(err, customerdomain.ErrInvalidMobile):
		return "mobile must be exactly 10 digits"
	case errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, productdomain.ErrInvalidName):
		return "name is required"
	case errors.Is(err, customerdomain.ErrInvalidAddress):
		return "address is required"
	case errors.Is(err, productdomain.ErrInvalidRate):
		return "rate must not be negative"
	default:
		return "invalid request"
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, customerdomain.ErrDuplicateMobile):
		return "a customer with this mobile already exists"
	case errors.Is(err, productdomain.ErrDuplicateName):
		return "a product with this name already exists"
	case errors.Is(err, customerdomain.ErrCustomerHasInvoices):
		return "customer has invoices and cannot be deleted"
	case errors.Is(err, productdomain.ErrProductInUse):
		return "product is referenced by invoices and cannot be deleted"
	default:
		return "conflict"
	}
}
