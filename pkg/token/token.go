// Package token generates opaque session tokens.
//
// Tokens are bearer credentials matched against the session store; they carry
// no claims and cannot be validated offline. Each token combines a UUID, extra
// random bytes, and a time component so that tokens are unguessable and never
// collide even under a broken entropy source.
package token

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewSession returns a new opaque session token.
func NewSession() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")

	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// fallback: the UUID alone still carries 122 bits of entropy
		return id + strconv.FormatInt(time.Now().UnixNano(), 36)
	}

	return fmt.Sprintf("%s%x%s", id, b, strconv.FormatInt(time.Now().UnixNano(), 36))
}
