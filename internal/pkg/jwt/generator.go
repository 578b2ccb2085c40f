// internal/pkg/jwt/generator.go
package jwt

import (
	"crypto/rsa"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// AccessToken is a signed token plus the facts the session layer keys on.
type AccessToken struct {
	Token     string
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type Generator struct {
	priv     *rsa.PrivateKey
	issuer   string
	audience string
	kid      string // key id for rotation
	ttl      time.Duration
}

func NewGenerator(priv *rsa.PrivateKey, issuer, audience, kid string, ttl time.Duration) *Generator {
	return &Generator{
		priv:     priv,
		issuer:   issuer,
		audience: audience,
		kid:      kid,
		ttl:      ttl,
	}
}

// TTL is the lifetime of every token this generator signs.
func (g *Generator) TTL() time.Duration {
	return g.ttl
}

// IssueAccessToken signs an access token for the account.
func (g *Generator) IssueAccessToken(userID int64, accountType string) (*AccessToken, error) {
	return g.issue(userID, accountType, PurposeAccess)
}

func (g *Generator) issue(userID int64, accountType, purpose string) (*AccessToken, error) {
	if g.priv == nil {
		return nil, fmt.Errorf("jwt generator has nil private key")
	}

	now := time.Now()
	out := &AccessToken{
		JTI:       ulid.Make().String(),
		IssuedAt:  now,
		ExpiresAt: now.Add(g.ttl),
	}

	claims := &Claims{
		UserID:      userID,
		AccountType: accountType,
		Purpose:     purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			Audience:  jwt.ClaimStrings{g.audience},
			ExpiresAt: jwt.NewNumericDate(out.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        out.JTI,
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if g.kid != "" {
		tok.Header["kid"] = g.kid
	}

	signed, err := tok.SignedString(g.priv)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	out.Token = signed
	return out, nil
}
