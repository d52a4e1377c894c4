package handlers_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"dreamboard/internal/config"
	"dreamboard/internal/db"
	"dreamboard/internal/router"
	"dreamboard/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testIP = "192.0.2.1:1234"

// newCaptchaServer fakes the external verifier with a fixed verdict.
func newCaptchaServer(t *testing.T, success bool) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if success {
			w.Write([]byte(`{"success": true}`))
		} else {
			w.Write([]byte(`{"success": false}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// newUncalledCaptchaServer fails the test if the verifier is ever reached,
// for cases that must be rejected before the captcha step.
func newUncalledCaptchaServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Captcha verifier should not have been called")
		w.Write([]byte(`{"success": true}`))
	}))
	t.Cleanup(server.Close)
	return server
}

// setupApp wires a full engine against an in-memory database, exactly as
// main does, with the captcha endpoint pointed at the given URL.
func setupApp(t *testing.T, verifyURL string) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every :memory: connection is its own database, keep the pool at one
	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	if err := db.SeedBoards(gdb); err != nil {
		t.Fatalf("Failed to seed boards: %v", err)
	}
	db.DB = gdb

	// The index page cache would leak state between tests
	utils.GetCache().Delete("board:index")

	cfg := &config.Config{
		AdminPassword:      "hunter2",
		RecaptchaSiteKey:   "site-key",
		RecaptchaSecretKey: "secret-key",
		RecaptchaVerifyURL: verifyURL,
		ImageDir:           t.TempDir(),
		MaxUploadBytes:     1 << 20,
		SessionSecret:      "test-session-secret",
	}

	r := gin.New()
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("dreamboard_session", store))
	r.HTMLRender = router.LoadTemplates("../../web/templates")
	router.RegisterRoutes(r, cfg)
	return r, cfg
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	req.RemoteAddr = testIP
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(r *gin.Engine, path string, form url.Values, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// postMultipart submits a reply form, optionally attaching an image file.
func postMultipart(t *testing.T, r *gin.Engine, path string, fields map[string]string, filename string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("WriteField failed: %v", err)
		}
	}
	if filename != "" {
		part, err := writer.CreateFormFile("image", filename)
		if err != nil {
			t.Fatalf("CreateFormFile failed: %v", err)
		}
		if _, err := io.Copy(part, bytes.NewReader(fileContent)); err != nil {
			t.Fatalf("Copy failed: %v", err)
		}
	}
	writer.Close()

	req := httptest.NewRequest("POST", path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.RemoteAddr = testIP
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
