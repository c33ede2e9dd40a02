// internal/handlers/verification.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/keyward/keyward-backend/internal/services"
)

type VerificationHandler struct {
	verificationService *services.VerificationService
}

func NewVerificationHandler(verificationService *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
	}
}

// POST /verify
//
// The verdict travels in the body, never in the status code: this endpoint is
// called by client software that must not have to distinguish transport
// failures from invalid licenses. It answers 200 no matter what.
func (h *VerificationHandler) Verify(c *gin.Context) {
	var req services.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, services.VerifyResponse{
			Valid:   false,
			Message: "Invalid request",
		})
		return
	}

	result, err := h.verificationService.Verify(&req)
	if err != nil {
		logrus.WithError(err).Error("Verification failed against the record store")
		c.JSON(http.StatusOK, services.VerifyResponse{
			Valid:   false,
			Message: "Verification temporarily unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
