package models

// PaginatedResponse wraps list endpoints. Total is the full row count so
// clients can compute page numbers without a second request.
type PaginatedResponse struct {
	Data     any `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

func NewPaginatedResponse(data any, total, page, pageSize int) *PaginatedResponse {
	return &PaginatedResponse{
		Data:     data,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
