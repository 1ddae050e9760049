package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// SecretSize is the number of random bytes behind a generated secret.
const SecretSize = 32

// NewSecret returns n random bytes encoded as unpadded url-safe base64, so the
// result can be pasted into an env var or a TOML file as is.
func NewSecret(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("secret size must be positive")
	}

	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
