// internal/server/auth.go
//
// 工作階段 token：HS256 JWT，sub 為使用者名稱，jti 為隨機 UUID。
// token 只證明「曾以正確密碼登入」；每次請求仍以名稱回到 Ledger 解析帳戶。
package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"coinops/internal/bank"
)

const (
	tokenIssuerName = "coinops"
	accountKey      = "account"
)

var errMissingToken = errors.New("missing bearer token")

type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func (ti tokenIssuer) issue(userName string) (string, time.Time, error) {
	now := ti.now()
	expires := now.Add(ti.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuerName,
		Subject:   userName,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign token")
	}
	return signed, expires, nil
}

// parse 驗證簽章與期限，回傳使用者名稱。
func (ti tokenIssuer) parse(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return ti.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuerName),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.now),
	)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// requireSession 解析 Authorization: Bearer <token>，並把帳戶放入 gin context。
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			writeErr(c, http.StatusUnauthorized, errMissingToken)
			return
		}
		userName, err := s.tokens.parse(strings.TrimSpace(raw))
		if err != nil {
			s.logger.WithError(err).Debug("rejected session token")
			writeErr(c, http.StatusUnauthorized, errors.New("invalid session token"))
			return
		}
		a, found := s.Ledger.Account(userName)
		if !found {
			writeErr(c, http.StatusUnauthorized, errors.New("invalid session token"))
			return
		}
		c.Set(accountKey, a)
		c.Next()
	}
}

// sessionAccount 取出 requireSession 設定的帳戶。
func sessionAccount(c *gin.Context) *bank.Account {
	return c.MustGet(accountKey).(*bank.Account)
}
