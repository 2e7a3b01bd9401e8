package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var errEmptySubject = errors.New("token subject is empty")

// SubjectID accepts both string and numeric subject claims.
type SubjectID string

func (s *SubjectID) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = SubjectID(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("subject must be a string or a number: %w", err)
	}
	*s = SubjectID(num.String())
	return nil
}

type Claims struct {
	Sub     SubjectID `json:"sub"`
	IsAdmin bool      `json:"is_admin"`
	jwt.RegisteredClaims
}

func (c Claims) GetSubject() (string, error) {
	return string(c.Sub), nil
}

func parseToken(token string, secret []byte) (Claims, error) {
	claims := Claims{}
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil {
		return Claims{}, err
	}
	if claims.Sub == "" {
		return Claims{}, errEmptySubject
	}
	return claims, nil
}
