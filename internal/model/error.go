package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeEmptyCSV        = "EMPTY_CSV"
	ErrCodeListNotFound    = "LIST_NOT_FOUND"
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidQuantity = "INVALID_QUANTITY"
	ErrCodeInvalidImageFit = "INVALID_IMAGE_FIT"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyCSV        = NewDomainError(ErrCodeEmptyCSV, "CSV content is empty")
	ErrListNotFound    = NewDomainError(ErrCodeListNotFound, "No list found for that code")
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found in list")
	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be zero or greater")
	ErrInvalidImageFit = NewDomainError(ErrCodeInvalidImageFit, "Image fit must be cover, contain, fill or scale-down")
)
