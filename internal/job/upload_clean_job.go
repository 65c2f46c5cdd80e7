package job

import (
	"context"
	log "log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/xpcclll/footprint/internal/repository"
)

// orphanTTL 新写入的文件留出落库窗口，不立即回收
const orphanTTL = 24 * time.Hour

// UploadCleanupJob 清理上传目录里未被任何足迹引用的遗留文件。
// 已删除足迹的行仍保留引用，它们的图片不在清理范围内。
type UploadCleanupJob struct {
	repo repository.FootprintRepo
	dir  string
}

func NewUploadCleanupJob(repo repository.FootprintRepo, dir string) *UploadCleanupJob {
	return &UploadCleanupJob{
		repo: repo,
		dir:  dir,
	}
}

func (s *UploadCleanupJob) Run() {
	ctx := context.Background()
	log.Info("start upload cleanup job")

	refs, err := s.repo.AllImageRefs(ctx)
	if err != nil {
		log.Error("failed to load image references", "err", err)
		return
	}
	referenced := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		referenced[path.Base(ref)] = struct{}{}
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Error("failed to read upload dir", "dir", s.dir, "err", err)
		return
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := referenced[entry.Name()]; ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < orphanTTL {
			continue
		}

		if err = os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			log.Error("failed to delete orphaned upload", "file", entry.Name(), "err", err)
			continue
		}

		count++
		log.Info("cleanup orphaned upload", "file", entry.Name())
	}

	if count > 0 {
		log.Info("upload cleanup job finished", "cleaned_count", count)
	}
}
