package Controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-booking/database"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/router"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testApp struct {
	db     *gorm.DB
	deps   router.Deps
	router *gin.Engine
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// setupApp menyiapkan router lengkap di atas SQLite in-memory
func setupApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.SetLogOutput(io.Discard)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	deps := router.NewDeps(db, utils.NewTokenManager("test-secret", time.Hour), services.NoopMailer{})
	deps.Identity.WithHashCost(bcrypt.MinCost)

	return &testApp{db: db, deps: deps, router: router.SetupRouter(deps)}
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

// userWithToken membuat user dengan role tertentu dan mengembalikan token-nya
func (a *testApp) userWithToken(t *testing.T, username string, role models.Role) (*models.User, string) {
	t.Helper()
	user, _, err := a.deps.Identity.EnsureUser(context.Background(), services.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
		Phone:    "0812000000",
	}, role)
	require.NoError(t, err)

	token, err := a.deps.Tokens.GenerateToken(user.ID, string(user.Role))
	require.NoError(t, err)
	return user, token
}

func (a *testApp) restaurant(t *testing.T, name string) *models.Restaurant {
	t.Helper()
	r, err := a.deps.Catalog.CreateRestaurant(context.Background(), services.RestaurantInput{Name: name, Address: "Jl. Test 1"})
	require.NoError(t, err)
	return r
}

func (a *testApp) table(t *testing.T, restaurantID uint, number string, capacity int) *models.Table {
	t.Helper()
	table, err := a.deps.Catalog.CreateTable(context.Background(), restaurantID, services.TableInput{TableNumber: number, Capacity: capacity})
	require.NoError(t, err)
	return table
}

func decode(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}
