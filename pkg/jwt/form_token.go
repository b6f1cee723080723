package jwt

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// FormTokenLifetime bounds how long a rendered form can be submitted.
const FormTokenLifetime = 2 * time.Hour

// GenerateFormToken signs a token binding formID to userID. It is embedded in
// rendered forms and checked on submission.
func GenerateFormToken(userID, formID string) (string, error) {
	key, err := secret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &jwt.StandardClaims{
		Subject:   userID,
		Audience:  formID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(FormTokenLifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// ValidateFormToken checks that tokenString was issued for userID and formID.
func ValidateFormToken(tokenString, userID, formID string) error {
	key, err := secret()
	if err != nil {
		return err
	}

	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject != userID || !claims.VerifyAudience(formID, true) {
		return ErrInvalidToken
	}
	return nil
}
