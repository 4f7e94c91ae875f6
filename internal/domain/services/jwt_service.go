package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang-jwt/jwt/v4"
)

// ErrTokenDecode 令牌缺失、格式错误、签名或算法不匹配
var ErrTokenDecode = errors.New("token decode error")

// InterfaceJWTService 定义JWT服务接口
type InterfaceJWTService interface {
	GenerateToken(editorID uint) (string, error)
	ParseToken(tokenString string) (uint, error)
}

// JWTService 使用 HS256 签发和校验令牌。
// 令牌只携带 editor_id，不设置过期时间。
type JWTService struct {
	secretKey []byte
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(secretKey string) *JWTService {
	return &JWTService{secretKey: []byte(secretKey)}
}

// GenerateToken 生成JWT令牌
func (s *JWTService) GenerateToken(editorID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"editor_id": editorID})
	return token.SignedString(s.secretKey)
}

// ParseToken 验证令牌并返回其中的 editor_id
func (s *JWTService) ParseToken(tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, ErrTokenDecode
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: %v", ErrTokenDecode, err)
	}

	raw, ok := claims["editor_id"].(float64)
	if !ok || raw < 1 || raw != math.Trunc(raw) {
		return 0, fmt.Errorf("%w: missing editor_id claim", ErrTokenDecode)
	}
	return uint(raw), nil
}
