package handler_test

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/xpcclll/footprint/internal/api/config"
	"github.com/xpcclll/footprint/internal/model"
	"github.com/xpcclll/footprint/internal/pkg/logger"
	"github.com/xpcclll/footprint/internal/wire"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 1x1 像素的合法 PNG
const tinyPNGBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

func setupTestServer(t *testing.T, maxBodySize int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.InitLogger()

	config.Cfg = &config.Config{
		Server: config.ServerConfig{Port: 8080, MaxBodySize: maxBodySize},
		Upload: config.UploadConfig{Dir: t.TempDir(), BaseURL: "/uploads"},
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Footprint{}))

	app, err := wire.BuildApplication(db, config.Cfg)
	require.NoError(t, err)
	return app.Router
}

func doJSON(t *testing.T, router *gin.Engine, method, target string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 && strings.Contains(w.Header().Get("Content-Type"), "json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func createFootprint(t *testing.T, router *gin.Engine, userName, content string) map[string]interface{} {
	t.Helper()
	w, resp := doJSON(t, router, http.MethodPost, "/api/footprints", gin.H{
		"userName": userName,
		"content":  content,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, resp["success"])
	return resp["data"].(map[string]interface{})
}

func TestHealthEndpoint(t *testing.T) {
	router := setupTestServer(t, 5<<20)

	w, resp := doJSON(t, router, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "footprints-backend", resp["service"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestCreateFootprintTextOnly(t *testing.T) {
	router := setupTestServer(t, 5<<20)

	w, resp := doJSON(t, router, http.MethodPost, "/api/footprints", gin.H{
		"userName": "alice",
		"content":  "hello world",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "足迹发布成功", resp["message"])

	data := resp["data"].(map[string]interface{})
	assert.Greater(t, data["id"].(float64), float64(0))
	assert.Equal(t, "alice", data["userName"])
	assert.Equal(t, "hello world", data["content"])
	assert.Nil(t, data["imageUrl"])
	assert.NotEmpty(t, data["timestamp"])
}

func TestCreateFootprintWithImage(t *testing.T) {
	router := setupTestServer(t, 5<<20)

	w, resp := doJSON(t, router, http.MethodPost, "/api/footprints", gin.H{
		"userName":  "alice",
		"imageData": "data:image/png;base64," + tinyPNGBase64,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, resp["success"])

	data := resp["data"].(map[string]interface{})
	imageURL, ok := data["imageUrl"].(string)
	require.True(t, ok)
	assert.Regexp(t, regexp.MustCompile(`^/uploads/\d+_[0-9a-f]{8}\.png$`), imageURL)

	// 上传的图片可以按返回的 URL 直接取回
	req := httptest.NewRequest(http.MethodGet, imageURL, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	expected, err := base64.StdEncoding.DecodeString(tinyPNGBase64)
	require.NoError(t, err)
	assert.Equal(t, expected, rec.Body.Bytes())
}

func TestCreateFootprintEmptyAuthor(t *testing.T) {
	router := setupTestServer(t, 5<<20)

	w, resp := doJSON(t, router, http.MethodPost, "/api/footprints", gin.H{
		"userName": "   ",
		"content":  "hi",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "用户名不能为空", resp["message"])
}

func TestCreateFootprintEmptyBody(t *testing.T) {
	router := setupTestServer(t, 5<<20)

	w, resp := doJSON(t, router, http.MethodPost, "/api/footprints", gin.H{
		"userName": "alice",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "至少需要填写内容或上传图片", resp["message"])
}

func TestCreateFootprintMalformedJSON(t *testing.T) {
	router := setupTestServer(t, 5<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/footprints", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "参数错误", resp["message"])
}

func TestListFootprintsPagination(t *testing.T) {
	router := setupTestServer(t, 5<<20)

	for _, content := range []string{"one", "two", "three"} {
		createFootprint(t, router, "alice", content)
	}

	w, resp := doJSON(t, router, http.MethodGet, "/api/footprints?page=1&page_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, resp["success"])

	items := resp["data"].([]interface{})
	assert.Len(t, items, 2)

	pagination := resp["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["page"])
	assert.Equal(t, float64(2), pagination["page_size"])
	assert.Equal(t, float64(3), pagination["total"])
	assert.Equal(t, float64(2), pagination["total_pages"])

	// 最新发布的在最前
	first := items[0].(map[string]interface{})
	assert.Equal(t, "three", first["content"])

	_, resp = doJSON(t, router, http.MethodGet, "/api/footprints?page=2&page_size=2", nil)
	assert.Len(t, resp["data"].([]interface{}), 1)
}

func TestDeleteFootprint(t *testing.T) {
	router := setupTestServer(t, 5<<20)

	data := createFootprint(t, router, "alice", "bye")
	id := strconv.FormatUint(uint64(data["id"].(float64)), 10)

	w, resp := doJSON(t, router, http.MethodDelete, "/api/footprints/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "足迹删除成功", resp["message"])

	// 删除后列表为空
	_, resp = doJSON(t, router, http.MethodGet, "/api/footprints", nil)
	assert.Empty(t, resp["data"])
}

func TestDeleteFootprintNonexistentIsOK(t *testing.T) {
	router := setupTestServer(t, 5<<20)

	w, resp := doJSON(t, router, http.MethodDelete, "/api/footprints/99999", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
}

func TestDeleteFootprintInvalidID(t *testing.T) {
	router := setupTestServer(t, 5<<20)

	w, resp := doJSON(t, router, http.MethodDelete, "/api/footprints/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "参数错误", resp["message"])
}

func TestStatsEndpoint(t *testing.T) {
	router := setupTestServer(t, 5<<20)

	createFootprint(t, router, "alice", "one")
	createFootprint(t, router, "alice", "two")
	createFootprint(t, router, "bob", "three")

	w, resp := doJSON(t, router, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, resp["success"])

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["total_footprints"])
	assert.Equal(t, float64(0), data["with_images"])
	assert.Equal(t, float64(3), data["today_count"])

	topUsers := data["top_users"].([]interface{})
	require.Len(t, topUsers, 2)
	first := topUsers[0].(map[string]interface{})
	assert.Equal(t, "alice", first["username"])
	assert.Equal(t, float64(2), first["count"])
}

func TestUnknownRoute(t *testing.T) {
	router := setupTestServer(t, 5<<20)

	w, resp := doJSON(t, router, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "请求的资源不存在", resp["message"])
}

func TestBodyTooLarge(t *testing.T) {
	router := setupTestServer(t, 256)

	w, resp := doJSON(t, router, http.MethodPost, "/api/footprints", gin.H{
		"userName": "alice",
		"content":  strings.Repeat("x", 1024),
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, false, resp["success"])
}
