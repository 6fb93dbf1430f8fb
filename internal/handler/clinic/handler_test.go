package clinic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/records-api/internal/handler"
	"github.com/clinicore/records-api/internal/repository/memory"
	clinicService "github.com/clinicore/records-api/internal/service/clinic"
	eventService "github.com/clinicore/records-api/internal/service/event"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := memory.NewStore()
	require.NoError(t, memory.Seed(context.Background(), s))

	events := eventService.NewService(memory.NewOutboxRepository(s), zerolog.Nop())
	svc := clinicService.NewService(memory.NewClinicRepository(s), events, zerolog.Nop())

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, handler.Response) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp handler.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestCreateAndGetClinic(t *testing.T) {
	engine := setupRouter(t)

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/clinics",
		`{"name":"Kano Specialist Hospital","address":"5 Zoo Road, Kano","email":"info@kanospecialist.ng"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", resp.Status)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(4), data["id"])

	w, resp = doRequest(t, engine, http.MethodGet, "/api/v1/clinics/4", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Kano Specialist Hospital", resp.Data.(map[string]interface{})["name"])
}

func TestCreateClinicValidation(t *testing.T) {
	engine := setupRouter(t)

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/clinics", `{"name":"No Address"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", resp.Status)
}

func TestGetUnknownClinicReturns404(t *testing.T) {
	engine := setupRouter(t)

	w, resp := doRequest(t, engine, http.MethodGet, "/api/v1/clinics/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "error", resp.Status)
}

func TestDeleteClinic(t *testing.T) {
	engine := setupRouter(t)

	w, _ := doRequest(t, engine, http.MethodDelete, "/api/v1/clinics/3", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, engine, http.MethodGet, "/api/v1/clinics/3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRenumberClinic(t *testing.T) {
	engine := setupRouter(t)

	w, _ := doRequest(t, engine, http.MethodPost, "/api/v1/clinics/1/renumber", `{"new_id":20}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, engine, http.MethodGet, "/api/v1/clinics/20", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Renumbering onto an occupied id is a conflict.
	w, _ = doRequest(t, engine, http.MethodPost, "/api/v1/clinics/20/renumber", `{"new_id":2}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}
