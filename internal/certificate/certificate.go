// internal/certificate/certificate.go
//
// Completion certificate.
// Issued once the fifth phase is completed. The certificate carries a signed
// HS256 token so a printed or saved copy can be checked later with Verify.

package certificate

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/robalobadob/magicnumbers/internal/progress"
)

const (
	Title   = "Certificado de Conquista"
	Honoree = "GUARDIÃO DOS NÚMEROS"
	Text    = "Por completar a Missão dos Números Mágicos e dominar os números de 1 a 50!"

	// Issuer is written to and required in every token.
	Issuer = "magicnumbers"
)

var (
	// ErrNotEarned is returned by Issue while the game is not completed.
	ErrNotEarned = errors.New("certificate: game not completed")

	// ErrInvalid wraps every verification failure.
	ErrInvalid = errors.New("certificate: invalid token")
)

// Certificate is what the player sees and can print.
type Certificate struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Honoree  string    `json:"honoree"`
	Text     string    `json:"text"`
	Crystals int       `json:"crystals"`
	IssuedAt time.Time `json:"issuedAt"`
	Token    string    `json:"token"`
}

// Claims are the token payload.
type Claims struct {
	Honoree  string `json:"honoree"`
	Crystals int    `json:"crystals"`
	jwt.RegisteredClaims
}

// Signer issues and verifies certificates with a shared secret.
type Signer struct {
	secret []byte
}

// NewSigner returns a Signer using secret. An empty secret is rejected.
func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("certificate: empty secret")
	}
	return &Signer{secret: []byte(secret)}, nil
}

// Issue builds a certificate for p, or ErrNotEarned.
func (s *Signer) Issue(p progress.GameProgress, now time.Time) (Certificate, error) {
	if !p.CompletedGame {
		return Certificate{}, ErrNotEarned
	}
	now = now.UTC().Truncate(time.Second)
	c := Certificate{
		ID:       uuid.NewString(),
		Title:    Title,
		Honoree:  Honoree,
		Text:     Text,
		Crystals: p.TotalCrystals,
		IssuedAt: now,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Honoree:  c.Honoree,
		Crystals: c.Crystals,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       c.ID,
			Issuer:   Issuer,
			Subject:  Title,
			IssuedAt: jwt.NewNumericDate(now),
		},
	})
	ss, err := token.SignedString(s.secret)
	if err != nil {
		return Certificate{}, fmt.Errorf("certificate: sign: %w", err)
	}
	c.Token = ss
	return c, nil
}

// Verify checks a token's signature, algorithm and issuer and returns the
// certificate it describes (without the token text).
func (s *Signer) Verify(tokenStr string) (Certificate, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return Certificate{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	c := Certificate{
		ID:       claims.ID,
		Title:    Title,
		Honoree:  claims.Honoree,
		Text:     Text,
		Crystals: claims.Crystals,
	}
	if claims.IssuedAt != nil {
		c.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return c, nil
}
