package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gymmate/internal/api/handler"
	"gymmate/internal/pkg/database"
	"gymmate/internal/repository"
	"gymmate/internal/service"
)

type memBlacklist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (m *memBlacklist) Revoke(_ context.Context, signature string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[signature] = true
	return nil
}

func (m *memBlacklist) IsRevoked(_ context.Context, signature string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[signature], nil
}

type memStore struct{}

func (memStore) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	_, err := io.ReadAll(reader)
	return objectName, err
}
func (memStore) Remove(context.Context, string) error { return nil }
func (memStore) PublicURL(objectName string) string   { return "http://store.local/" + objectName }

type memMailer struct{}

func (memMailer) Send(context.Context, string, string, map[string]string) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	userRepo := repository.NewUserRepo(db)
	muscleRepo := repository.NewMuscleRepo(db)
	categoryRepo := repository.NewExerciseCategoryRepo(db)
	equipmentRepo := repository.NewEquipmentRepo(db)
	exerciseRepo := repository.NewExerciseRepo(db)
	imageRepo := repository.NewExerciseImageRepo(db)

	blacklist := &memBlacklist{revoked: make(map[string]bool)}
	store := memStore{}

	handlers := &HandlersGroup{
		AccountHandler:  handler.NewAccountHandler(service.NewAccountService(userRepo, blacklist, store, memMailer{}, "http://localhost/auth")),
		ExerciseHandler: handler.NewExerciseHandler(service.NewExerciseService(muscleRepo, categoryRepo, equipmentRepo, exerciseRepo, imageRepo, store)),
		MetricHandler:   handler.NewMetricHandler(service.NewMetricService(repository.NewMetricRepo(db))),
		WorkoutHandler:  handler.NewWorkoutHandler(service.NewWorkoutService(repository.NewDayOfWeekRepo(db), repository.NewRoutineRepo(db), repository.NewProgressRepo(db), exerciseRepo)),
	}

	return SetupRouter(handlers, blacklist), db
}

func doJSON(t *testing.T, r *gin.Engine, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// signUpAndLogin 注册、激活并登录，返回访问令牌
func signUpAndLogin(t *testing.T, r *gin.Engine, db *gorm.DB, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/users", "", gin.H{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.NoError(t, db.Exec("UPDATE users SET is_active = 1 WHERE email = ?", email).Error)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": email, "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func TestSignUpFlow(t *testing.T) {
	r, db := newTestRouter(t)

	t.Run("signup returns the created profile", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/users", "", gin.H{"email": "alice@example.com", "password": "secret1"})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "alice@example.com", resp["username"])
		assert.NotContains(t, w.Body.String(), "secret1")
	})

	t.Run("invalid payload lists every failing field", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/users", "", gin.H{"email": "nope", "password": "abc"})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string][]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp["email"], "Enter a valid email address.")
		assert.Contains(t, resp["password"], "Password must be at least 6 characters")
	})

	t.Run("authenticated signup is rejected with 405", func(t *testing.T) {
		token := signUpAndLogin(t, r, db, "bob@example.com")
		w := doJSON(t, r, http.MethodPost, "/api/v1/users", token, gin.H{"email": "x@example.com", "password": "secret1"})
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("unsupported verb on an endpoint returns 405", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, "/api/v1/auth/login", "", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestAuthRequired(t *testing.T) {
	r, db := newTestRouter(t)

	t.Run("catalog requires a token", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/exercises", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/exercises", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		token := signUpAndLogin(t, r, db, "carol@example.com")

		w := doJSON(t, r, http.MethodGet, "/api/v1/users/me", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodPost, "/api/v1/auth/logout", token, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, r, http.MethodGet, "/api/v1/users/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestStaffOnlyWrites(t *testing.T) {
	r, db := newTestRouter(t)
	token := signUpAndLogin(t, r, db, "dave@example.com")

	t.Run("regular user cannot create catalog entries", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/muscles", token, gin.H{"name": "Biceps"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("staff user can", func(t *testing.T) {
		// is_staff 需在登录前落库，登录签发的令牌才携带管理员标记
		w := doJSON(t, r, http.MethodPost, "/api/v1/users", "", gin.H{"email": "erin@example.com", "password": "secret1"})
		require.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, db.Exec("UPDATE users SET is_active = 1, is_staff = 1 WHERE email = ?", "erin@example.com").Error)

		w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "erin@example.com", "password": "secret1"})
		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		w = doJSON(t, r, http.MethodPost, "/api/v1/muscles", resp["token"], gin.H{"name": "Biceps"})
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// 普通用户仍可读取
		w = doJSON(t, r, http.MethodGet, "/api/v1/muscles", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-Total-Count"))
	})
}

func TestRoutineEndToEnd(t *testing.T) {
	r, db := newTestRouter(t)
	ownerToken := signUpAndLogin(t, r, db, "frank@example.com")
	otherToken := signUpAndLogin(t, r, db, "grace@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/v1/routines", ownerToken, gin.H{"name": "Push day", "is_public": false})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	routineID := int(created["id"].(float64))
	routinePath := "/api/v1/routines/" + strconv.Itoa(routineID)

	t.Run("owner reads it back", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, routinePath, ownerToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("stranger gets 404 for a private routine", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, routinePath, otherToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("owner patch flips visibility", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, routinePath, ownerToken, gin.H{"is_public": true})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodGet, routinePath, otherToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("stranger patch still reads as missing", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, routinePath, otherToken, gin.H{"name": "Hijacked"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("public listing carries pagination headers", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/public-routines?per_page=10", otherToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-Total-Count"))
	})

	t.Run("owner delete", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, routinePath, ownerToken, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, r, http.MethodGet, routinePath, ownerToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
