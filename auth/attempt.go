package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"
)

// entropyBytes is the number of random bytes behind each state and code
// verifier. 32 bytes = 256 bits, comfortably above the 128-bit floor.
const entropyBytes = 32

// CodeChallengeMethodS256 is the only PKCE challenge method this server uses.
const CodeChallengeMethodS256 = "S256"

// LoginAttempt is the transient server-side record of one in-flight login.
// The session store owns it exclusively; at most one live attempt exists
// per browser session, and it is destroyed when the callback completes,
// successfully or not.
type LoginAttempt struct {
	State        string
	CodeVerifier string
	CreatedAt    time.Time
}

// NewState produces a high-entropy opaque anti-CSRF token.
func NewState() (string, error) {
	return randomURLString()
}

// NewCodeVerifier produces a PKCE code verifier. The verifier stays
// server-side; only the derived challenge ever reaches the browser.
func NewCodeVerifier() (string, error) {
	return randomURLString()
}

// CodeChallengeS256 derives the S256 code challenge from a verifier
// per RFC 7636: BASE64URL(SHA256(ASCII(verifier))), unpadded.
func CodeChallengeS256(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

func randomURLString() (string, error) {
	b := make([]byte, entropyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("entropy source unavailable: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
