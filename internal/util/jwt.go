package util

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SSOClaims 身份提供方回调时携带的签名断言
type SSOClaims struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	jwt.RegisteredClaims
}

func SignSSOToken(claims *SSOClaims, secret string, expiration time.Duration) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseSSOToken(tokenString, secret string) (*SSOClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SSOClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SSOClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, err
}
