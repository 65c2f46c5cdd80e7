package repository

import (
	"context"
	"time"

	"github.com/xpcclll/footprint/internal/model"

	"gorm.io/gorm"
)

const defaultPageSize = 20

// AuthorCount 按作者聚合的足迹数
type AuthorCount struct {
	UserName string `gorm:"column:username" json:"username"`
	Count    int64  `gorm:"column:count" json:"count"`
}

type FootprintRepo interface {
	Create(ctx context.Context, fp *model.Footprint) (*model.Footprint, error)
	List(ctx context.Context, page, pageSize int) ([]*model.Footprint, int64, error)
	SoftDelete(ctx context.Context, id uint64) error
	CountTotal(ctx context.Context) (int64, error)
	CountWithImage(ctx context.Context) (int64, error)
	CountCreatedOn(ctx context.Context, day time.Time) (int64, error)
	TopAuthors(ctx context.Context, limit int) ([]AuthorCount, error)
	AllImageRefs(ctx context.Context) ([]string, error)
}

type FootprintRepoImpl struct {
	db *gorm.DB
}

func NewFootprintRepository(db *gorm.DB) FootprintRepo {
	return &FootprintRepoImpl{
		db: db,
	}
}

// Create 插入后按主键回读，调用方拿到的是服务端生成的 id 和时间戳
func (s FootprintRepoImpl) Create(ctx context.Context, fp *model.Footprint) (*model.Footprint, error) {
	if err := s.db.WithContext(ctx).Create(fp).Error; err != nil {
		return nil, err
	}
	var out model.Footprint
	if err := s.db.WithContext(ctx).First(&out, fp.ID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// List 返回未删除足迹的第 page 页（1 起）和未删除总数。
// 排序为 created_at DESC，id DESC 仅作同时间的稳定 tie-break。
func (s FootprintRepoImpl) List(ctx context.Context, page, pageSize int) ([]*model.Footprint, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	var total int64
	err := s.db.WithContext(ctx).
		Model(&model.Footprint{}).
		Where("is_deleted = ?", false).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var fps []*model.Footprint
	err = s.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("created_at DESC, id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&fps).Error
	if err != nil {
		return nil, 0, err
	}

	return fps, total, nil
}

// SoftDelete 标记删除。id 不存在或已删除时同样静默成功，保证删除幂等
func (s FootprintRepoImpl) SoftDelete(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.Footprint{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

func (s FootprintRepoImpl) CountTotal(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&model.Footprint{}).
		Where("is_deleted = ?", false).
		Count(&total).Error
	return total, err
}

func (s FootprintRepoImpl) CountWithImage(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&model.Footprint{}).
		Where("image_url IS NOT NULL AND image_url <> '' AND is_deleted = ?", false).
		Count(&total).Error
	return total, err
}

// CountCreatedOn 统计某天（按 day 所在时区的自然日）创建的未删除足迹数
func (s FootprintRepoImpl) CountCreatedOn(ctx context.Context, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var total int64
	err := s.db.WithContext(ctx).
		Model(&model.Footprint{}).
		Where("created_at >= ? AND created_at < ? AND is_deleted = ?", start, end, false).
		Count(&total).Error
	return total, err
}

// TopAuthors 按未删除足迹数降序取前 limit 位作者，计数相同时顺序不作承诺
func (s FootprintRepoImpl) TopAuthors(ctx context.Context, limit int) ([]AuthorCount, error) {
	var out []AuthorCount
	err := s.db.WithContext(ctx).
		Model(&model.Footprint{}).
		Select("username, COUNT(*) as count").
		Where("is_deleted = ?", false).
		Group("username").
		Order("count DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AllImageRefs 返回所有行（含已删除）的图片引用。
// 已删除足迹的行仍长期保留，它们的图片不能被清理任务回收。
func (s FootprintRepoImpl) AllImageRefs(ctx context.Context) ([]string, error) {
	var refs []string
	err := s.db.WithContext(ctx).
		Model(&model.Footprint{}).
		Where("image_url IS NOT NULL AND image_url <> ''").
		Pluck("image_url", &refs).Error
	if err != nil {
		return nil, err
	}
	return refs, nil
}
