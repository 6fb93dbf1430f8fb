package records

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/records-api/internal/handler"
	"github.com/clinicore/records-api/internal/model"
	recordsService "github.com/clinicore/records-api/internal/service/records"
)

type Handler struct {
	service recordsService.RecordsServicer
}

func NewHandler(service recordsService.RecordsServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.POST("", h.CreatePrescription)
		prescriptions.GET("/:id", h.GetPrescription)
		prescriptions.DELETE("/:id", h.DeletePrescription)
	}

	medicalRecords := r.Group("/medical-records")
	{
		medicalRecords.POST("", h.CreateMedicalRecord)
		medicalRecords.GET("/:id", h.GetMedicalRecord)
		medicalRecords.DELETE("/:id", h.DeleteMedicalRecord)
	}

	r.GET("/patients/:id/prescriptions", h.ListPrescriptionsByPatient)
	r.GET("/patients/:id/medical-records", h.ListMedicalRecordsByPatient)
}

func (h *Handler) CreatePrescription(c *gin.Context) {
	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	prescription, err := h.service.CreatePrescription(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(prescription))
}

func (h *Handler) GetPrescription(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	prescription, err := h.service.GetPrescription(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(prescription))
}

func (h *Handler) ListPrescriptionsByPatient(c *gin.Context) {
	patientID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	prescriptions, err := h.service.ListPrescriptionsByPatient(c.Request.Context(), patientID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(prescriptions))
}

func (h *Handler) DeletePrescription(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeletePrescription(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) CreateMedicalRecord(c *gin.Context) {
	var req model.CreateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	record, err := h.service.CreateMedicalRecord(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(record))
}

func (h *Handler) GetMedicalRecord(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	record, err := h.service.GetMedicalRecord(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}

func (h *Handler) DeleteMedicalRecord(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteMedicalRecord(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListMedicalRecordsByPatient(c *gin.Context) {
	patientID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	records, err := h.service.ListMedicalRecordsByPatient(c.Request.Context(), patientID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}
