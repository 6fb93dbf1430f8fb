package records

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
	eventService "github.com/clinicore/records-api/internal/service/event"
	recordsService "github.com/clinicore/records-api/internal/service/records"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := memory.NewStore()
	require.NoError(t, memory.Seed(context.Background(), s))

	events := eventService.NewService(memory.NewOutboxRepository(s), zerolog.Nop())
	svc := recordsService.NewService(
		memory.NewPrescriptionRepository(s),
		memory.NewMedicalRecordRepository(s),
		events,
		zerolog.Nop(),
	)

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, handler.Response) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp handler.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestCreateAndDeletePrescription(t *testing.T) {
	engine := setupRouter(t)

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/prescriptions",
		`{"appointment_id":1,"patient_id":1,"doctor_id":1,"medication":"Lisinopril","dosage":"10mg daily","duration_days":30}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", resp.Status)

	w, _ = doRequest(t, engine, http.MethodDelete, "/api/v1/prescriptions/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, engine, http.MethodGet, "/api/v1/prescriptions/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteMedicalRecord(t *testing.T) {
	engine := setupRouter(t)

	w, _ := doRequest(t, engine, http.MethodDelete, "/api/v1/medical-records/3", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, engine, http.MethodGet, "/api/v1/medical-records/3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doRequest(t, engine, http.MethodDelete, "/api/v1/medical-records/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListMedicalRecordsByPatient(t *testing.T) {
	engine := setupRouter(t)

	w, resp := doRequest(t, engine, http.MethodGet, "/api/v1/patients/1/medical-records", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data.([]interface{}), 1)
}
