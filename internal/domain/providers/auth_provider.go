package providers

import "github.com/zatekoja/clinicdirectory/internal/domain/entities"

// TokenProvider issues and verifies signed bearer tokens
type TokenProvider interface {
	// Issue signs a token carrying the user's identity and admin flag
	Issue(user entities.PublicUser) (string, error)

	// Verify decodes a token. Failures are unauthorized AppErrors whose
	// message distinguishes missing, expired and invalid tokens.
	Verify(token string) (*entities.PublicUser, error)
}

// PasswordHasher hashes and checks passwords
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Verify reports whether password matches hash, and whether the hash
	// uses an outdated scheme and should be replaced
	Verify(hash, password string) (ok bool, needsRehash bool)
}
