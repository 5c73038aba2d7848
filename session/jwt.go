package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

// JWTProvider validates HMAC-signed bearer tokens carrying a userId claim
type JWTProvider struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ Provider = (*JWTProvider)(nil)

func NewJWTProvider(secret string, ttl time.Duration) *JWTProvider {
	return &JWTProvider{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateJWT signs a token for userID
func (p *JWTProvider) GenerateJWT(userID, name, email string) (string, error) {
	if userID == "" {
		return "", errors.New("userID is required")
	}
	now := p.now()
	claims := jwt.MapClaims{
		"userId": userID,
		"name":   name,
		"email":  email,
		"iat":    now.Unix(),
		"exp":    now.Add(p.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	return signed, errors.Wrap(err, "sign token")
}

func (p *JWTProvider) ResolveSession(_ context.Context, creds Credentials) (*Identity, error) {
	tokenString := creds.BearerToken()
	if tokenString == "" {
		return nil, nil
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil
	}

	userID := claimString(claims["userId"])
	if userID == "" {
		userID = claimString(claims["sub"])
	}
	if userID == "" {
		return nil, nil
	}

	return &Identity{
		UserID: userID,
		Name:   claimString(claims["name"]),
		Email:  claimString(claims["email"]),
	}, nil
}

// claimString accepts string claims and the numeric ids older tokens carry
func claimString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}
