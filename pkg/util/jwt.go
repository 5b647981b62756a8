package util

import (
	"errors"
	"sync"
	"time"

	"TrainingLog/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired Token 已过期
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid Token 无效（签名、格式、签发方不符）
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims 访问令牌载荷
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

var (
	jwtMu  sync.RWMutex
	jwtCfg = config.DefaultJWTConfig()
)

// InitJWT 设置签名密钥与签发方，进程启动时调用一次
func InitJWT(cfg config.JWTConfig) {
	jwtMu.Lock()
	defer jwtMu.Unlock()
	jwtCfg = cfg
}

func currentJWTConfig() config.JWTConfig {
	jwtMu.RLock()
	defer jwtMu.RUnlock()
	return jwtCfg
}

// GenerateToken 为用户签发访问令牌（HS256）
func GenerateToken(userID string) (string, error) {
	cfg := currentJWTConfig()
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}

// ParseToken 校验并解析访问令牌
func ParseToken(tokenString string) (*Claims, error) {
	cfg := currentJWTConfig()
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
