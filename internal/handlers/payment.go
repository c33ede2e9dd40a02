// internal/handlers/payment.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keyward/keyward-backend/internal/middleware"
	"github.com/keyward/keyward-backend/internal/services"
	"github.com/keyward/keyward-backend/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// POST /payments/preference
func (h *PaymentHandler) CreatePreference(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	preference, err := h.paymentService.CreatePreference(caller.ID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, preference)
}

// POST /payments/webhook
//
// Always acknowledged: the provider retries indefinitely on any non-2xx.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	h.paymentService.HandleWebhook(payload)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
