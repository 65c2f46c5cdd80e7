package dto

// CreateFootprintDTO 发布足迹请求体。
// 必填校验在 service 层完成，以便给出具体的错误提示。
type CreateFootprintDTO struct {
	UserName  string `json:"userName" validate:"max=64"`
	Content   string `json:"content" validate:"max=2000"`
	ImageData string `json:"imageData"`
}

// ListQueryDTO 分页查询参数
type ListQueryDTO struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20"`
}

type FootprintDTO struct {
	ID        uint64  `json:"id"`
	UserName  string  `json:"userName"`
	Content   *string `json:"content"`
	ImageURL  *string `json:"imageUrl"`
	Timestamp string  `json:"timestamp"`
}

type PaginationDTO struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

type FootprintListDTO struct {
	Items      []*FootprintDTO
	Pagination *PaginationDTO
}
