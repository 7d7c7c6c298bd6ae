package middleware

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"fooddash/api/ctxutil"
	"fooddash/api/response"
	"fooddash/config"
	"fooddash/domain/shared"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Claims 令牌载荷：sub 为用户 ID，role 为角色
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

// IssueToken 签发 HS256 令牌，用于本地调试和测试
func IssueToken(cfg *config.AuthConfig, actor shared.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(actor.UserID, 10),
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
}

// ParseToken 校验签名、有效期与签发方，返回调用方身份
func ParseToken(cfg *config.AuthConfig, raw string) (shared.Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errUnexpectedSigningMethod
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return shared.Actor{}, err
	}
	if !token.Valid {
		return shared.Actor{}, errors.New("invalid token")
	}
	if cfg.Issuer != "" && !claims.VerifyIssuer(cfg.Issuer, true) {
		return shared.Actor{}, errors.New("unexpected issuer")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return shared.Actor{}, errors.New("invalid subject")
	}
	role := shared.Role(strings.ToUpper(claims.Role))
	if !role.IsValid() {
		return shared.Actor{}, errors.New("unknown role")
	}
	return shared.Actor{UserID: userID, Role: role}, nil
}

// ActorMiddleware Bearer 令牌认证，成功后把 Actor 写入 gin context
func ActorMiddleware(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.HandleUnauthorized(c, "missing bearer token")
			return
		}

		actor, err := ParseToken(cfg, strings.TrimSpace(parts[1]))
		if err != nil {
			response.HandleUnauthorized(c, "invalid token")
			return
		}

		ctxutil.SetActor(c, actor)
		c.Next()
	}
}
