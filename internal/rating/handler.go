package rating

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chanakan5591/FlavorFind/internal/fingerprint"
)

// Gate admits or rejects a mutation attempt before it touches storage.
type Gate interface {
	Allow(ctx context.Context, userFingerprint, clientIP string) bool
}

// Verifier checks a signed client identity string.
type Verifier interface {
	VerifyClientString(clientString string) bool
}

type Handler struct {
	service  *Service
	gate     Gate
	verifier Verifier
}

func NewHandler(service *Service, gate Gate, verifier Verifier) *Handler {
	return &Handler{service: service, gate: gate, verifier: verifier}
}

// --------------------------------------------------
// Submit rating: rate limit, verify identity, upsert
// --------------------------------------------------
func (h *Handler) SubmitRating(c *gin.Context) {
	var req struct {
		StoreID   string  `json:"storeId"`
		NewRating float64 `json:"newRating"`
		HMAC      string  `json:"hmac"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fp := fingerprint.FingerprintOf(req.HMAC)

	if !h.gate.Allow(c.Request.Context(), fp, c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	if !h.verifier.VerifyClientString(req.HMAC) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid hmac"})
		return
	}

	store, err := h.service.RateStore(c.Request.Context(), req.StoreID, fp, req.NewRating)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "new_store": store})
}
