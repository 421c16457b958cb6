package callback

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"
)

// Signer computes and verifies Duitku callback signatures. It is constructed
// from the service-held merchant code and API key; caller-supplied merchant
// codes are never used to derive the expected digest.
type Signer struct {
	merchantCode string
	apiKey       string
}

func NewSigner(merchantCode, apiKey string) *Signer {
	return &Signer{merchantCode: merchantCode, apiKey: apiKey}
}

// Sign returns the hex digest of merchantCode || amount || merchantOrderID || apiKey.
// The processor's callback contract uses MD5 over this concatenation.
func (s *Signer) Sign(amount int64, merchantOrderID string) string {
	raw := s.merchantCode + strconv.FormatInt(amount, 10) + merchantOrderID + s.apiKey
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether provided matches the expected signature for the
// given amount and merchant order id. Comparison is constant-time and never
// errors; malformed input simply fails to match.
func (s *Signer) Verify(amount int64, merchantOrderID, provided string) bool {
	expected := s.Sign(amount, merchantOrderID)
	provided = strings.ToLower(strings.TrimSpace(provided))
	if len(provided) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}
