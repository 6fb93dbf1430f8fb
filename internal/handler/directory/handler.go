package directory

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/records-api/internal/handler"
	"github.com/clinicore/records-api/internal/model"
	directoryService "github.com/clinicore/records-api/internal/service/directory"
)

type Handler struct {
	service directoryService.DirectoryServicer
}

func NewHandler(service directoryService.DirectoryServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.POST("", h.CreateDoctor)
		doctors.GET("/:id", h.GetDoctor)
		doctors.PUT("/:id", h.UpdateDoctor)
		doctors.DELETE("/:id", h.DeleteDoctor)
		doctors.GET("/:id/specialties", h.ListDoctorSpecialties)
		doctors.POST("/:id/specialties/:specialtyId", h.AssignSpecialty)
		doctors.DELETE("/:id/specialties/:specialtyId", h.RemoveSpecialty)
	}

	specialties := r.Group("/specialties")
	{
		specialties.POST("", h.CreateSpecialty)
		specialties.GET("", h.ListSpecialties)
		specialties.GET("/:id", h.GetSpecialty)
		specialties.DELETE("/:id", h.DeleteSpecialty)
	}

	r.GET("/clinics/:id/doctors", h.ListDoctorsByClinic)
}

func (h *Handler) ListDoctorsByClinic(c *gin.Context) {
	clinicID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	doctors, err := h.service.ListDoctorsByClinic(c.Request.Context(), clinicID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doctor, err := h.service.CreateDoctor(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(doctor))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	doctor, err := h.service.GetDoctor(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doctor, err := h.service.UpdateDoctor(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteDoctor(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListDoctorSpecialties(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	specialties, err := h.service.ListDoctorSpecialties(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(specialties))
}

func (h *Handler) AssignSpecialty(c *gin.Context) {
	doctorID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	specialtyID, ok := handler.ParseID(c, "specialtyId")
	if !ok {
		return
	}

	if err := h.service.AssignSpecialty(c.Request.Context(), doctorID, specialtyID); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(nil))
}

func (h *Handler) RemoveSpecialty(c *gin.Context) {
	doctorID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	specialtyID, ok := handler.ParseID(c, "specialtyId")
	if !ok {
		return
	}

	if err := h.service.RemoveSpecialty(c.Request.Context(), doctorID, specialtyID); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) CreateSpecialty(c *gin.Context) {
	var req model.CreateSpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	specialty, err := h.service.CreateSpecialty(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(specialty))
}

func (h *Handler) GetSpecialty(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	specialty, err := h.service.GetSpecialty(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(specialty))
}

func (h *Handler) ListSpecialties(c *gin.Context) {
	specialties, err := h.service.ListSpecialties(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(specialties))
}

func (h *Handler) DeleteSpecialty(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSpecialty(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
