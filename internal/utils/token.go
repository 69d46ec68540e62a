package utils

import (
	"time" // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// IdentityClaims is the identity token minted by the embedded-wallet provider
// after it authenticates the user. The backend validates the signature and
// trusts the claims; it never authenticates independently.
type IdentityClaims struct {
	Email                string `json:"email"`          // Provider-verified email
	WalletAddress        string `json:"wallet_address"` // Custodial wallet address, empty until provisioned
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateIdentityToken mints an identity token; used by tests and dev tooling
func GenerateIdentityToken(email, walletAddress, secret string) (string, error) {
	claims := IdentityClaims{
		Email:         email,         // Provider-verified email
		WalletAddress: walletAddress, // Custodial wallet address
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // Token expires in 24 hours
			IssuedAt:  jwt.NewNumericDate(time.Now()),                     // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseIdentityToken parses and validates an identity token string
func ParseIdentityToken(tokenStr, secret string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &IdentityClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*IdentityClaims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}
