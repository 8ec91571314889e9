package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"solo-sparks/internal/config"
	"solo-sparks/internal/db"
	"solo-sparks/internal/logging"
	"solo-sparks/internal/quest"
	"solo-sparks/internal/rewards"
	"solo-sparks/internal/user"
)

// setupTestDB points db.DB at a fresh in-memory sqlite database named after
// the test, so tests never see each other's rows.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dbConn, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.Migrate(dbConn); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	sqlDB, _ := dbConn.DB()
	t.Cleanup(func() { sqlDB.Close() })
	db.DB = dbConn
	return dbConn
}

// seedCatalog loads the embedded quests and rewards.
func seedCatalog(t *testing.T) *quest.Catalog {
	t.Helper()
	cat, err := quest.LoadCatalog()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	if err := quest.SeedQuests(db.DB, cat.Quests); err != nil {
		t.Fatalf("failed to seed quests: %v", err)
	}
	if err := rewards.SeedRewards(db.DB, cat.Rewards); err != nil {
		t.Fatalf("failed to seed rewards: %v", err)
	}
	return cat
}

func seedUser(t *testing.T, username string, role user.Role) *user.User {
	t.Helper()
	u, err := user.Create(db.DB, username, "", "password1", role)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func setupRedis() *redis.Client {
	// Handler tests ignore session write failures, so a live server is optional.
	return redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15, MaxRetries: -1})
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.JWTSecret = "secret"
	cfg.Recommend.Limit = 8
	return cfg
}

// newUserRouter mounts the self-service routes behind a stub that signs in userID.
func newUserRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	registerUserRoutes(r.Group(""), newServices(testConfig(), nil, logging.Discard()))
	return r
}

// fixClock pins the handler clock for the duration of the test.
func fixClock(t *testing.T, now time.Time) {
	t.Helper()
	prev := clock
	clock = func() time.Time { return now }
	t.Cleanup(func() { clock = prev })
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
