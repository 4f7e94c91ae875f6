package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"logistics-http-service/internal/domain/filter"
	"logistics-http-service/internal/domain/models"
	"logistics-http-service/internal/domain/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EditorService 管理系统操作人员，密码以 bcrypt 摘要保存
type EditorService struct {
	*Resource[models.Editor]
	db *gorm.DB
}

// maxPasswordBytes bcrypt 能处理的最大密码字节数
const maxPasswordBytes = 72

// NewEditorService 创建一个新的 Editor 服务，cost 为 bcrypt 的计算成本
func NewEditorService(db *gorm.DB, cost int) *EditorService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	def := Definition[models.Editor]{
		Name:      "editor",
		Permitted: []string{"name", "email", "password", "super_editor"},
		Filters: filter.Of(filter.String, "email", "name").
			With(filter.Of(filter.Boolean, "super_editor")),
		Rules: []validation.Rule{
			validation.Presence("name", "email"),
			validation.OnCreate(
				validation.Presence("password"),
				validation.Length("password", 6, 0),
				validation.MaxBytes("password", maxPasswordBytes),
			),
			validation.OnUpdate(
				validation.AllowBlank("password",
					validation.Length("password", 6, 0),
					validation.MaxBytes("password", maxPasswordBytes),
				),
			),
			validation.Uniqueness("email", "editors"),
			validation.Format("email", validation.EmailPattern, validation.MsgInvalidEmail),
			validation.AllowBlank("super_editor", validation.Boolean("super_editor")),
		},
		Unique: []string{"email"},
		Attributes: func(e *models.Editor) validation.Attributes {
			return validation.Attributes{
				"name":         e.Name,
				"email":        e.Email,
				"super_editor": e.SuperEditor,
			}
		},
		Assign: func(e *models.Editor, a validation.Attributes) error {
			e.Name = a.String("name")
			e.Email = a.String("email")
			e.SuperEditor, _ = a.Bool("super_editor")
			if a.Blank("password") {
				return nil
			}
			digest, err := bcrypt.GenerateFromPassword([]byte(a.String("password")), cost)
			if err != nil {
				return fmt.Errorf("生成密码哈希失败: %w", err)
			}
			e.PasswordDigest = string(digest)
			return nil
		},
		Dependents: []Dependent{
			{Name: "customers", Table: "customers", ForeignKey: "editor_id", Policy: Restrict},
			{Name: "shipments", Table: "shipments", ForeignKey: "editor_id", Policy: Restrict},
			{Name: "travelers", Table: "travelers", ForeignKey: "editor_id", Policy: Restrict},
		},
	}

	return &EditorService{Resource: NewResource(db, def), db: db}
}

// FindByEmail 按邮箱查找
func (s *EditorService) FindByEmail(ctx context.Context, email string) (*models.Editor, error) {
	var editor models.Editor
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&editor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &editor, nil
}

// EnsureSuperEditor 当系统中没有任何 Editor 时创建默认管理员，返回是否创建
func (s *EditorService) EnsureSuperEditor(ctx context.Context, name, email, password string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Editor{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return false, errors.New("DEFAULT_ADMIN_EMAIL and DEFAULT_ADMIN_PASSWORD are required to bootstrap the first editor")
	}

	_, err := s.Create(ctx, validation.Attributes{
		"name":         name,
		"email":        email,
		"password":     password,
		"super_editor": true,
	})
	if err != nil {
		return false, fmt.Errorf("创建默认管理员失败: %w", err)
	}
	return true, nil
}
