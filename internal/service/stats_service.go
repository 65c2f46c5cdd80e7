package service

import (
	"context"
	log "log/slog"
	"time"

	"github.com/xpcclll/footprint/internal/api/dto"
	"github.com/xpcclll/footprint/internal/pkg/redis"
	"github.com/xpcclll/footprint/internal/repository"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

const (
	statsCacheKey = "footprint:stats"
	statsCacheTTL = 30 * time.Second

	topUserLimit = 5
)

type StatsService interface {
	Stats(ctx context.Context) (*dto.StatsDTO, error)
}

type statsServiceImpl struct {
	repo repository.FootprintRepo
}

func NewStatsService(repo repository.FootprintRepo) StatsService {
	return &statsServiceImpl{
		repo: repo,
	}
}

// Stats 汇总统计。四个聚合查询并发执行，各查询之间不要求严格的同一时刻快照。
// 配置了 Redis 时结果短暂缓存，缓存故障一律降级为直查数据库。
func (s *statsServiceImpl) Stats(ctx context.Context) (*dto.StatsDTO, error) {
	if redis.Enabled() {
		if cached, err := redis.GetValue(ctx, statsCacheKey); err == nil && cached != "" {
			var out dto.StatsDTO
			if err = json.Unmarshal([]byte(cached), &out); err == nil {
				return &out, nil
			}
			log.WarnContext(ctx, "invalid stats cache entry", "err", err)
		}
	}

	var out dto.StatsDTO
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		out.TotalFootprints, err = s.repo.CountTotal(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.WithImages, err = s.repo.CountWithImage(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.TodayCount, err = s.repo.CountCreatedOn(gctx, time.Now())
		return err
	})
	g.Go(func() error {
		authors, err := s.repo.TopAuthors(gctx, topUserLimit)
		if err != nil {
			return err
		}
		topUsers := make([]dto.TopUserDTO, len(authors))
		for i, a := range authors {
			topUsers[i] = dto.TopUserDTO{
				Username: a.UserName,
				Count:    a.Count,
			}
		}
		out.TopUsers = topUsers
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if out.TopUsers == nil {
		out.TopUsers = []dto.TopUserDTO{}
	}

	if redis.Enabled() {
		if data, err := json.Marshal(&out); err == nil {
			if err = redis.SetWithExpiration(ctx, statsCacheKey, data, statsCacheTTL); err != nil {
				log.WarnContext(ctx, "failed to cache stats", "err", err)
			}
		}
	}

	return &out, nil
}
