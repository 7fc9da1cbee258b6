package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken token mal formado, expirado, con firma incorrecta o sin taller.
var ErrInvalidToken = errors.New("jwt: token inválido")

// Claims claims estándar más el usuario, el taller emisor y el rol.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string `json:"user_id"`
	WorkshopID string `json:"workshop_id"`
	Role       string `json:"role"` // "admin" | "contable"
}

// Identity datos que el middleware deja en el contexto de la petición.
type Identity struct {
	UserID     string
	WorkshopID string
	Role       string
}

// Generate firma un token HS256 para la identidad dada.
func Generate(secret, issuer string, id Identity, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:     id.UserID,
		WorkshopID: id.WorkshopID,
		Role:       id.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida el token y devuelve la identidad. Un token sin workshop_id no es válido:
// todo documento se emite en nombre de un taller.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.WorkshopID == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: claims.UserID, WorkshopID: claims.WorkshopID, Role: claims.Role}, nil
}
