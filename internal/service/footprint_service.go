package service

import (
	"context"
	log "log/slog"
	"strings"

	"github.com/xpcclll/footprint/internal/api/dto"
	"github.com/xpcclll/footprint/internal/model"
	"github.com/xpcclll/footprint/internal/pkg/imagestore"
	"github.com/xpcclll/footprint/internal/repository"

	"github.com/jinzhu/copier"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	dtoTimeLayout = "2006-01-02 15:04:05"
)

type FootprintService interface {
	Create(ctx context.Context, req *dto.CreateFootprintDTO, ip, userAgent string) (*dto.FootprintDTO, error)
	List(ctx context.Context, page, pageSize int) (*dto.FootprintListDTO, error)
	Delete(ctx context.Context, id uint64) error
}

type footprintServiceImpl struct {
	repo   repository.FootprintRepo
	images *imagestore.Store
}

func NewFootprintService(repo repository.FootprintRepo, images *imagestore.Store) FootprintService {
	return &footprintServiceImpl{
		repo:   repo,
		images: images,
	}
}

// Create 创建足迹。图片解码失败不阻塞发布，但解码失败且没有文字内容时
// 拒绝请求，保证每行至少携带一种内容。
func (s *footprintServiceImpl) Create(ctx context.Context, req *dto.CreateFootprintDTO, ip, userAgent string) (*dto.FootprintDTO, error) {
	userName := strings.TrimSpace(req.UserName)
	if userName == "" {
		return nil, ErrEmptyAuthor
	}
	if req.Content == "" && req.ImageData == "" {
		return nil, ErrEmptyBody
	}

	fp := &model.Footprint{
		UserName:  userName,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if req.Content != "" {
		content := req.Content
		fp.Content = &content
	}

	if req.ImageData != "" {
		ref, err := s.images.Save(ctx, req.ImageData)
		if err != nil {
			log.WarnContext(ctx, "image payload rejected", "err", err)
		} else {
			fp.ImageURL = &ref
		}
	}

	if fp.Content == nil && fp.ImageURL == nil {
		return nil, ErrEmptyBody
	}

	created, err := s.repo.Create(ctx, fp)
	if err != nil {
		return nil, err
	}

	return toFootprintDTO(created)
}

// List 分页查询未删除足迹，非法分页参数按默认值收敛
func (s *footprintServiceImpl) List(ctx context.Context, page, pageSize int) (*dto.FootprintListDTO, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	fps, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.FootprintDTO, len(fps))
	for i, fp := range fps {
		item, err := toFootprintDTO(fp)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}

	return &dto.FootprintListDTO{
		Items: items,
		Pagination: &dto.PaginationDTO{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: (total + int64(pageSize) - 1) / int64(pageSize),
		},
	}, nil
}

// Delete 逻辑删除，id 不存在时同样成功
func (s *footprintServiceImpl) Delete(ctx context.Context, id uint64) error {
	return s.repo.SoftDelete(ctx, id)
}

// toFootprintDTO 将 Model 转换为返回给前端的 DTO
func toFootprintDTO(fp *model.Footprint) (*dto.FootprintDTO, error) {
	out := &dto.FootprintDTO{}
	if err := copier.Copy(out, fp); err != nil {
		return nil, err
	}
	out.Timestamp = fp.CreatedAt.Format(dtoTimeLayout)
	return out, nil
}
