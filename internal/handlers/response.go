package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorEnvelope is the terminal error shape for every endpoint: a short
// machine code plus human-readable details. The UI shows a generic
// retry prompt either way; the code exists for logging and telemetry.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error:   code,
		Details: details,
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
