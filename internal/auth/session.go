// internal/auth/session.go
package auth

import (
	"crypto/ed25519"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fuseball/internal/models"
)

// privateKey and publicKey sign and verify handshake tokens.
var (
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey

	// tokenExpireSec is how many seconds until token expiration (0 => never).
	tokenExpireSec int
)

// identityClaims carries the full player identity inside the token, so guest
// sessions survive reconnects without any server-side storage.
type identityClaims struct {
	Identity models.PlayerIdentity `json:"identity"`
	jwt.RegisteredClaims
}

func parseTokenExpireTime() error {
	duration := os.Getenv("TOKEN_EXPIRE_TIME")
	if duration == "never" || duration == "0" || duration == "" {
		tokenExpireSec = 0
		return nil
	}
	d, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("failed to parse TOKEN_EXPIRE_TIME: %w", err)
	}
	tokenExpireSec = int(d.Seconds())
	return nil
}

// Init generates a fresh ed25519 key pair at runtime. Tokens do not survive a
// restart; clients just re-handshake as guests.
func Init() error {
	var err error
	publicKey, privateKey, err = ed25519.GenerateKey(nil)
	if err != nil {
		return fmt.Errorf("failed to generate ed25519 key pair: %w", err)
	}
	return parseTokenExpireTime()
}

// InitFromPath reads ed25519 private/public keys from files, so identities
// persist across restarts.
func InitFromPath(privatePath, publicPath string) error {
	privateKeyData, err := os.ReadFile(privatePath)
	if err != nil {
		return fmt.Errorf("failed to read private key file: %w", err)
	}
	publicKeyData, err := os.ReadFile(publicPath)
	if err != nil {
		return fmt.Errorf("failed to read public key file: %w", err)
	}
	privateKey = ed25519.PrivateKey(privateKeyData)
	publicKey = ed25519.PublicKey(publicKeyData)
	return parseTokenExpireTime()
}

// CreateToken signs a token asserting the given player identity.
func CreateToken(id models.PlayerIdentity) (string, error) {
	claims := identityClaims{
		Identity: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  fmt.Sprintf("%d", id.ID),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if tokenExpireSec > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Duration(tokenExpireSec) * time.Second))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return token.SignedString(privateKey)
}

// VerifyToken checks a handshake token and returns the asserted identity.
func VerifyToken(tokenString string) (models.PlayerIdentity, error) {
	var claims identityClaims
	t, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})
	if err != nil {
		return models.PlayerIdentity{}, fmt.Errorf("jwt parse error: %w", err)
	}
	if !t.Valid {
		return models.PlayerIdentity{}, fmt.Errorf("invalid token")
	}
	if claims.Identity.ID == 0 {
		return models.PlayerIdentity{}, fmt.Errorf("missing identity in token")
	}
	return claims.Identity, nil
}
