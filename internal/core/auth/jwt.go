package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go-contacts-api/pkg/utils"
)

// 令牌类型：普通会话 24h，找回密码 1h，二者不可互换使用
const (
	TokenTypeSession       = "session"
	TokenTypePasswordReset = "password_reset"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

type JWTer struct {
	Secret     []byte
	Issuer     string
	SessionTTL time.Duration
	ResetTTL   time.Duration
}

// Issue 签发会话令牌
func (j *JWTer) Issue(uid, email string) (string, error) {
	return j.sign(uid, email, TokenTypeSession, j.SessionTTL)
}

// IssueReset 签发找回密码令牌，jti 用于 Redis 侧一次性使用标记
func (j *JWTer) IssueReset(uid, email string) (string, error) {
	return j.sign(uid, email, TokenTypePasswordReset, j.ResetTTL)
}

func (j *JWTer) sign(uid, email, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:   uid,
		Email: email,
		Type:  typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        utils.NewID(),
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// Parse 校验签名与有效期；过期与非法分别返回 ErrExpiredToken / ErrInvalidToken
func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || c.UID == "" {
		return nil, ErrInvalidToken
	}
	if c.Type == "" {
		c.Type = TokenTypeSession
	}
	return c, nil
}
