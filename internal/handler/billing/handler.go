package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/records-api/internal/handler"
	"github.com/clinicore/records-api/internal/model"
	billingService "github.com/clinicore/records-api/internal/service/billing"
)

type Handler struct {
	service billingService.BillingServicer
}

func NewHandler(service billingService.BillingServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/appointments/:id/payments", h.RecordPayment)
	r.GET("/appointments/:id/payments", h.ListPayments)
	r.GET("/appointments/:id/payments/total", h.TotalPaid)
}

func (h *Handler) RecordPayment(c *gin.Context) {
	appointmentID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req model.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	payment, err := h.service.RecordPayment(c.Request.Context(), appointmentID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(payment))
}

func (h *Handler) ListPayments(c *gin.Context) {
	appointmentID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	payments, err := h.service.ListPayments(c.Request.Context(), appointmentID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(payments))
}

func (h *Handler) TotalPaid(c *gin.Context) {
	appointmentID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	total, err := h.service.TotalPaid(c.Request.Context(), appointmentID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(total))
}
