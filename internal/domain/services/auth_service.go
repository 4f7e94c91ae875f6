package services

import (
	"context"
	"errors"
	"strings"

	"logistics-http-service/internal/domain/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrEditorNotFound 令牌有效但对应的 Editor 不存在
	ErrEditorNotFound = errors.New("no editor is associated with this token")
	// ErrAdminOnly 非管理员访问管理员接口
	ErrAdminOnly = errors.New("this action is allowed only for admins")
	// ErrInvalidCredentials 登录邮箱或密码错误
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthResult 认证通过后传给后续处理的结果
type AuthResult struct {
	Editor *models.Editor
}

// IsAdmin 当前 Editor 是否为管理员
func (r *AuthResult) IsAdmin() bool {
	return r != nil && r.Editor != nil && r.Editor.SuperEditor
}

// InterfaceAuthService 定义认证服务接口
type InterfaceAuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, authorization string) (*AuthResult, error)
	Authorize(result *AuthResult, requireAdmin bool) error
}

// AuthService 登录和请求认证
type AuthService struct {
	db      *gorm.DB
	jwt     InterfaceJWTService
	editors *EditorService
}

// NewAuthService 创建一个新的认证服务
func NewAuthService(db *gorm.DB, jwtService InterfaceJWTService, editors *EditorService) *AuthService {
	return &AuthService{db: db, jwt: jwtService, editors: editors}
}

// Login 校验邮箱和密码，成功时返回新令牌
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	editor, err := s.editors.FindByEmail(ctx, email)
	if errors.Is(err, ErrRecordNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(editor.PasswordDigest), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwt.GenerateToken(editor.ID)
}

// Authenticate 从 Authorization 头解析令牌并加载对应的 Editor
func (s *AuthService) Authenticate(ctx context.Context, authorization string) (*AuthResult, error) {
	editorID, err := s.jwt.ParseToken(extractToken(authorization))
	if err != nil {
		return nil, err
	}

	var editor models.Editor
	err = s.db.WithContext(ctx).First(&editor, editorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEditorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &AuthResult{Editor: &editor}, nil
}

// Authorize 管理员接口要求 super_editor
func (s *AuthService) Authorize(result *AuthResult, requireAdmin bool) error {
	if requireAdmin && !result.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}

// extractToken 从授权头中提取 "Bearer <token>" 的令牌部分
func extractToken(authorization string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
