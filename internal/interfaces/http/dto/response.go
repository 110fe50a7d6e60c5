package dto

// Response is the uniform envelope for all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorInfo carries error details in a response
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta carries pagination details for list responses
type Meta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// OK builds a success response
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// OKWithMeta builds a success response with pagination metadata
func OKWithMeta(data interface{}, meta Meta) Response {
	return Response{Success: true, Data: data, Meta: &meta}
}

// Fail builds an error response
func Fail(code, message string) Response {
	return Response{
		Success: false,
		Error:   &ErrorInfo{Code: code, Message: message},
	}
}

// NewMeta builds pagination metadata
func NewMeta(page, pageSize int, total int64) Meta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return Meta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
