package fingerprint

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// Signer issues and verifies client identity strings of the form
// "fingerprint:hmac:nonce". The fingerprint is a browser-derived id; the HMAC
// ties it to this server so ratings cannot be forged for arbitrary clients.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

func (s *Signer) mac(fingerprintID, nonce string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(fingerprintID + nonce))
	return hex.EncodeToString(h.Sum(nil))
}

// GenerateClientString signs a fingerprint with a fresh nonce.
func (s *Signer) GenerateClientString(fingerprintID string) string {
	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fingerprintID + ":" + s.mac(fingerprintID, nonce) + ":" + nonce
}

// VerifyClientString recomputes the HMAC and compares it in constant time.
func (s *Signer) VerifyClientString(clientString string) bool {
	parts := strings.Split(clientString, ":")
	if len(parts) != 3 {
		return false
	}
	fingerprintID, clientMAC, nonce := parts[0], parts[1], parts[2]
	if fingerprintID == "" || clientMAC == "" || nonce == "" {
		return false
	}
	expected, err := hex.DecodeString(s.mac(fingerprintID, nonce))
	if err != nil {
		return false
	}
	got, err := hex.DecodeString(clientMAC)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, got)
}

// FingerprintOf extracts the fingerprint part of a client string without
// verifying it. Callers must verify separately before trusting it.
func FingerprintOf(clientString string) string {
	id, _, _ := strings.Cut(clientString, ":")
	return id
}
