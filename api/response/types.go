package response

import "fooddash/domain/shared"

// RequestIDKey gin context 中保存请求 ID 的键
const RequestIDKey = "request_id"

// Response 统一响应；失败时 Error 为 pkg/errors 的错误码
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// PaginatedResponse 订单列表等分页接口的响应
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
	Message    string      `json:"message"`
	Code       int         `json:"code"`
	RequestID  string      `json:"request_id,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// NewPagination 页码和页大小按 shared.PageRequest 的规则归一
func NewPagination(page, pageSize int, total int64) Pagination {
	req := shared.PageRequest{Page: page, PageSize: pageSize}.Normalize()
	totalPages := req.TotalPages(total)
	return Pagination{
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
	}
}
