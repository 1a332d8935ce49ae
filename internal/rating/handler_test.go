package rating

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Chanakan5591/FlavorFind/internal/canteen"
)

func storePtr(id string) *canteen.Store { return &canteen.Store{ID: id} }

type stubGate struct {
	allow           bool
	seenFingerprint string
}

func (g *stubGate) Allow(ctx context.Context, userFingerprint, clientIP string) bool {
	g.seenFingerprint = userFingerprint
	return g.allow
}

type stubVerifier struct{ valid bool }

func (v stubVerifier) VerifyClientString(clientString string) bool { return v.valid }

func newTestRouter(repo Repository, gate Gate, verifier Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(repo), gate, verifier)
	r := gin.New()
	r.POST("/ratings", h.SubmitRating)
	return r
}

func postRating(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ratings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

const validBody = `{"storeId": "s1", "newRating": 4, "hmac": "fp-abc:mac:nonce"}`

func TestSubmitRating(t *testing.T) {
	repo := &mockRepository{store: storePtr("s1")}
	gate := &stubGate{allow: true}
	r := newTestRouter(repo, gate, stubVerifier{valid: true})

	w := postRating(r, validBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		OK       bool            `json:"ok"`
		NewStore json.RawMessage `json:"new_store"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.OK || len(resp.NewStore) == 0 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	// The fingerprint part of the hmac string drives both gating and storage.
	if gate.seenFingerprint != "fp-abc" {
		t.Fatalf("gate saw %q", gate.seenFingerprint)
	}
	if repo.lastFingerprint != "fp-abc" || repo.lastRating != 4 {
		t.Fatalf("wrong upsert: %+v", repo)
	}
}

func TestSubmitRatingRateLimited(t *testing.T) {
	repo := &mockRepository{store: storePtr("s1")}
	r := newTestRouter(repo, &stubGate{allow: false}, stubVerifier{valid: true})

	w := postRating(r, validBody)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if repo.lastStoreID != "" {
		t.Fatal("rate-limited request must not reach storage")
	}
}

func TestSubmitRatingInvalidIdentity(t *testing.T) {
	repo := &mockRepository{store: storePtr("s1")}
	r := newTestRouter(repo, &stubGate{allow: true}, stubVerifier{valid: false})

	w := postRating(r, validBody)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if repo.lastStoreID != "" {
		t.Fatal("unverified request must not reach storage")
	}
}

func TestSubmitRatingBadRequest(t *testing.T) {
	r := newTestRouter(&mockRepository{store: storePtr("s1")}, &stubGate{allow: true}, stubVerifier{valid: true})

	if w := postRating(r, `{`); w.Code != http.StatusBadRequest {
		t.Fatalf("malformed json: expected 400, got %d", w.Code)
	}
	if w := postRating(r, `{"storeId": "s1", "newRating": 9, "hmac": "fp:mac:nonce"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range rating: expected 400, got %d", w.Code)
	}
}
