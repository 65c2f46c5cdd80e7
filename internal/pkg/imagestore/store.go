package imagestore

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	log "log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const dataURIPrefix = "data:image/"

var (
	ErrNotImagePayload = errors.New("payload is not an image data URI")
	ErrBadPayload      = errors.New("malformed image payload")
)

// Store 将 data URI 形式的图片落盘到上传目录
type Store struct {
	dir     string
	baseURL string
}

func New(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save 解码图片负载并写入唯一命名的文件，返回可拼接访问 URL 的相对引用。
// 负载不合法时返回错误，是否致命由调用方决定。
func (s *Store) Save(ctx context.Context, payload string) (string, error) {
	if !strings.HasPrefix(payload, dataURIPrefix) {
		return "", ErrNotImagePayload
	}

	header, data, ok := strings.Cut(payload, ",")
	if !ok {
		return "", ErrBadPayload
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	filename := fmt.Sprintf("%d_%s.%s",
		time.Now().Unix(),
		strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		extFromHeader(header),
	)

	if err = os.WriteFile(filepath.Join(s.dir, filename), raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	// 尺寸探测失败不影响已落盘的文件
	if img, probeErr := imaging.Decode(bytes.NewReader(raw)); probeErr == nil {
		bounds := img.Bounds()
		log.InfoContext(ctx, "image stored", "file", filename,
			"width", bounds.Dx(), "height", bounds.Dy(), "size", len(raw))
	} else {
		log.WarnContext(ctx, "image stored but dimensions unavailable", "file", filename, "err", probeErr)
	}

	return s.baseURL + "/" + filename, nil
}

// extFromHeader 按 png、jpeg/jpg、gif 的顺序匹配扩展名，未识别时回退 png。
// 匹配顺序是约定而非对负载 MIME 的信任。
func extFromHeader(header string) string {
	switch {
	case strings.Contains(header, "png"):
		return "png"
	case strings.Contains(header, "jpeg"), strings.Contains(header, "jpg"):
		return "jpg"
	case strings.Contains(header, "gif"):
		return "gif"
	default:
		return "png"
	}
}
