package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/records-api/internal/handler"
	"github.com/clinicore/records-api/internal/repository/memory"
	catalogService "github.com/clinicore/records-api/internal/service/catalog"
	eventService "github.com/clinicore/records-api/internal/service/event"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := memory.NewStore()
	require.NoError(t, memory.Seed(context.Background(), s))

	events := eventService.NewService(memory.NewOutboxRepository(s), zerolog.Nop())
	svc := catalogService.NewService(memory.NewServiceRepository(s), events, zerolog.Nop())

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestDeleteBookedServiceReturnsConflict(t *testing.T) {
	engine := setupRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/services/1", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp handler.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Message, "restricted")
}

func TestListServicesByClinic(t *testing.T) {
	engine := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clinics/1/services", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	services := resp.Data.([]interface{})
	assert.Len(t, services, 2)
}
