package dto

import "math"

// ===========================================================================
// Response DTOs
// Standard response envelope for every API endpoint.
// ===========================================================================

// Response is the standard envelope.
type Response struct {
	// Success whether the request succeeded
	Success bool `json:"success"`

	// Data payload on success
	Data interface{} `json:"data,omitempty"`

	// Error failure detail
	Error *APIError `json:"error,omitempty"`

	// Meta pagination info for list endpoints
	Meta *Meta `json:"meta,omitempty"`
}

// APIError is the standard error shape.
type APIError struct {
	// Code machine-readable code (e.g. "NOT_FOUND")
	Code string `json:"code"`

	// Message user-facing message
	Message string `json:"message"`
}

// Meta carries pagination info.
type Meta struct {
	// Total total record count
	Total int64 `json:"total"`

	// Page current page (1-based)
	Page int `json:"page"`

	// Limit records per page
	Limit int `json:"limit"`

	// TotalPages total page count
	TotalPages int `json:"total_pages"`
}

// NewMeta builds pagination metadata.
func NewMeta(page, limit int, total int64) *Meta {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return &Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ===========================================================================
// Response builders
// ===========================================================================

// Success builds a success response.
func Success(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// SuccessWithMeta builds a success response with pagination.
func SuccessWithMeta(data interface{}, meta *Meta) Response {
	return Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	}
}

// Error builds an error response.
func Error(code, message string) Response {
	return Response{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
	}
}

// ErrorFromErr builds an error response from an error value, using the
// application error mapping when available.
func ErrorFromErr(err error) Response {
	return Response{
		Success: false,
		Error: &APIError{
			Code:    "ERROR",
			Message: err.Error(),
		},
	}
}
