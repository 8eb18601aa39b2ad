package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"regexp"

	"github.com/zatekoja/clinicdirectory/internal/domain/providers"
	"golang.org/x/crypto/bcrypt"
)

// legacyHashPattern matches unsalted hex SHA-256 digests written by older deployments
var legacyHashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// BcryptHasher implements PasswordHasher. Legacy SHA-256 hashes are still
// accepted but reported as needing a rehash.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given bcrypt cost.
// A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) providers.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// prehash digests password so bcrypt never sees more than its 72 byte limit
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// Hash returns a bcrypt hash of the SHA-256 digest of password
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(prehash(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify compares password against hash
func (h *BcryptHasher) Verify(hash, password string) (bool, bool) {
	if legacyHashPattern.MatchString(hash) {
		sum := sha256.Sum256([]byte(password))
		ok := subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(hash)) == 1
		return ok, ok
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), prehash(password)); err != nil {
		return false, false
	}

	cost, err := bcrypt.Cost([]byte(hash))
	return true, err == nil && cost < h.cost
}
