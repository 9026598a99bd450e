package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/USBABC1/v60/config"
	"github.com/USBABC1/v60/dao"
	"github.com/USBABC1/v60/logic"
	"github.com/USBABC1/v60/middleware"
	"github.com/USBABC1/v60/models"
)

const testSecret = "segredo-de-teste"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Message{}, &models.SavedConversation{}))
	return db
}

func newSnapshotRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.GlobalConfig.Auth.Secret = testSecret

	snapshotLogic := logic.NewSnapshotLogic(dao.NewSavedConversationDAO(newTestDB(t)))
	ctrl := NewSnapshotController(snapshotLogic)

	r := gin.New()
	r.POST("/snapshots", middleware.Auth, ctrl.Save)
	r.GET("/snapshots", middleware.Auth, ctrl.List)
	r.POST("/snapshots/load", middleware.Auth, ctrl.Load)
	r.DELETE("/snapshots", middleware.Auth, ctrl.Delete)
	return r
}

func bearerToken(t *testing.T, userID uint64) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func doRequest(r *gin.Engine, method, target, body, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSnapshotEndpointsRequireAuth(t *testing.T) {
	r := newSnapshotRouter(t)

	w := doRequest(r, http.MethodGet, "/snapshots", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodPost, "/snapshots", `{"session_id":"s1","name":"X"}`, "Bearer token-invalido")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSnapshotSaveAndConflict(t *testing.T) {
	r := newSnapshotRouter(t)
	auth := bearerToken(t, 1)

	w := doRequest(r, http.MethodPost, "/snapshots", `{"session_id":"s1","name":"Plano A"}`, auth)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.SavedConversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, uint64(1), created.UserID)
	assert.Equal(t, "s1", created.SessionID)

	// Same name, other session: 409 identifying the duplicate name
	w = doRequest(r, http.MethodPost, "/snapshots", `{"session_id":"s2","name":"Plano A"}`, auth)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Plano A")

	// Same session, other name: 409 identifying the duplicate session
	w = doRequest(r, http.MethodPost, "/snapshots", `{"session_id":"s1","name":"Plano B"}`, auth)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "s1")

	// No extra row was inserted
	w = doRequest(r, http.MethodGet, "/snapshots", "", auth)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.SavedConversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestSnapshotGetByIDAndOwnership(t *testing.T) {
	r := newSnapshotRouter(t)
	owner := bearerToken(t, 1)
	stranger := bearerToken(t, 2)

	w := doRequest(r, http.MethodPost, "/snapshots", `{"session_id":"s1","name":"Minha"}`, owner)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.SavedConversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doRequest(r, http.MethodGet, fmt.Sprintf("/snapshots?id=%d", created.ID), "", owner)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, fmt.Sprintf("/snapshots?id=%d", created.ID), "", stranger)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSnapshotLoad(t *testing.T) {
	r := newSnapshotRouter(t)
	owner := bearerToken(t, 1)
	stranger := bearerToken(t, 2)

	w := doRequest(r, http.MethodPost, "/snapshots", `{"session_id":"sessao-antiga","name":"Retomar"}`, owner)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.SavedConversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doRequest(r, http.MethodPost, "/snapshots/load", fmt.Sprintf(`{"id":%d}`, created.ID), owner)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"session_id":"sessao-antiga"`)

	w = doRequest(r, http.MethodPost, "/snapshots/load", fmt.Sprintf(`{"id":%d}`, created.ID), stranger)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodPost, "/snapshots/load", `{}`, owner)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSnapshotDelete(t *testing.T) {
	r := newSnapshotRouter(t)
	auth := bearerToken(t, 1)

	w := doRequest(r, http.MethodPost, "/snapshots", `{"session_id":"s1","name":"Apagável"}`, auth)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.SavedConversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/snapshots?id=%d&activeSessionId=s1", created.ID), "", auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"was_active":true`)

	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/snapshots?id=%d", created.ID), "", auth)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
