package shared

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest 分页参数，Page 从 1 开始
type PageRequest struct {
	Page     int
	PageSize int
}

// Normalize 修正非法分页参数
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages 根据总数计算页数
func (p PageRequest) TotalPages(total int64) int {
	if p.PageSize <= 0 || total == 0 {
		return 0
	}
	return int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
}
