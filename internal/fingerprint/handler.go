package fingerprint

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	signer *Signer
}

func NewHandler(signer *Signer) *Handler {
	return &Handler{signer: signer}
}

// NewExperiment hands a first-time client its signed identity string. The
// client stores it in a cookie and attaches it to mutation requests.
func (h *Handler) NewExperiment(c *gin.Context) {
	var req struct {
		Fingerprint string `json:"fingerprint"`
	}
	if err := c.ShouldBind(&req); err != nil || req.Fingerprint == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing fingerprint"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hmac": h.signer.GenerateClientString(req.Fingerprint)})
}
