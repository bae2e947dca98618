package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"nations-server/internal/shared/config"
)

// Claims carries the player identity plus the governed country, so
// ownership checks never need a database round trip.
type Claims struct {
	PlayerID  int    `json:"player_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CountryID *int   `json:"country_id,omitempty"`
	jwt.RegisteredClaims
}

func jwtSecret() ([]byte, error) {
	cfg := config.GlobalConfig
	if cfg == nil || cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is not configured")
	}
	return []byte(cfg.Auth.JWTSecret), nil
}

func GenerateJWT(playerID int, username, email, role string, countryID *int) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", fmt.Errorf("cannot generate JWT: %w", err)
	}

	expiration := config.GlobalConfig.Auth.TokenExpiration

	claims := Claims{
		PlayerID:  playerID,
		Username:  username,
		Email:     email,
		Role:      role,
		CountryID: countryID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   fmt.Sprintf("player_%d", playerID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateJWT(tokenString string) (*Claims, error) {
	secret, err := jwtSecret()
	if err != nil {
		return nil, fmt.Errorf("cannot validate JWT: %w", err)
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
