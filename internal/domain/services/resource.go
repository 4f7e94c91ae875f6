package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"logistics-http-service/internal/domain/filter"
	"logistics-http-service/internal/domain/models"
	"logistics-http-service/internal/domain/validation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrRecordNotFound 按ID查找的记录不存在
var ErrRecordNotFound = errors.New("record not found")

// DependentPolicy 删除记录时对关联记录的处理方式
type DependentPolicy int

const (
	// Restrict 存在关联记录时拒绝删除
	Restrict DependentPolicy = iota
	// Cascade 在同一事务中删除关联记录
	Cascade
)

// Dependent 描述一个 has_many 关联
type Dependent struct {
	Name       string // 关联名，同时是子资源的名称，例如 flight_expenses
	Table      string
	ForeignKey string
	Policy     DependentPolicy
}

// DependentsError 因存在关联记录而拒绝删除
type DependentsError struct {
	Association string
}

func (e *DependentsError) Error() string {
	return "Cannot delete record because dependent " + e.Association + " exist"
}

// Definition 描述一种资源：允许的参数、过滤字段、校验规则以及字段映射
type Definition[T models.Entity] struct {
	Name       string // 单数名称，用于 "<name> record not found"
	Permitted  []string
	Filters    filter.Set
	Rules      []validation.Rule
	Unique     []string // 有唯一索引的字段，用于翻译唯一键冲突
	Attributes func(*T) validation.Attributes
	Assign     func(*T, validation.Attributes) error
	Dependents []Dependent
}

// Resource 通用的增删改查服务
type Resource[T models.Entity] struct {
	db  *gorm.DB
	def Definition[T]
}

// NewResource 创建资源服务
func NewResource[T models.Entity](db *gorm.DB, def Definition[T]) *Resource[T] {
	return &Resource[T]{db: db, def: def}
}

// Name 资源的单数名称
func (r *Resource[T]) Name() string {
	return r.def.Name
}

// Permitted 创建和更新时允许的参数
func (r *Resource[T]) Permitted() []string {
	return r.def.Permitted
}

// Cascades 删除时会被级联删除的子资源名称
func (r *Resource[T]) Cascades() []string {
	var names []string
	for _, d := range r.def.Dependents {
		if d.Policy == Cascade {
			names = append(names, d.Name)
		}
	}
	return names
}

// List 按查询参数过滤并返回集合
func (r *Resource[T]) List(ctx context.Context, query url.Values, scopes ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	items := make([]T, 0)
	err := r.db.WithContext(ctx).
		Scopes(scopes...).
		Scopes(r.def.Filters.Scope(query)).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.def.Name, err)
	}
	return items, nil
}

// Find 按ID查找，scopes 可用于限定父资源
func (r *Resource[T]) Find(ctx context.Context, id uint, scopes ...func(*gorm.DB) *gorm.DB) (*T, error) {
	var item T
	err := r.db.WithContext(ctx).Scopes(scopes...).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s %d: %w", r.def.Name, id, err)
	}
	return &item, nil
}

// Create 校验参数并创建记录，校验失败时返回 validation.Errors
func (r *Resource[T]) Create(ctx context.Context, params validation.Attributes) (*T, error) {
	var item T
	if err := r.validate(ctx, params, 0); err != nil {
		return nil, err
	}
	if err := r.def.Assign(&item, params); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, r.translate(err)
	}
	return &item, nil
}

// Update 把参数覆盖到已有字段上，整体校验后保存
func (r *Resource[T]) Update(ctx context.Context, item *T, params validation.Attributes) error {
	attrs := r.def.Attributes(item).Merge(params)
	if err := r.validate(ctx, attrs, (*item).GetID()); err != nil {
		return err
	}
	if err := r.def.Assign(item, attrs); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return r.translate(err)
	}
	return nil
}

// Delete 在事务中检查和级联删除关联记录后删除自身
func (r *Resource[T]) Delete(ctx context.Context, item *T) error {
	id := (*item).GetID()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range r.def.Dependents {
			if d.Policy != Restrict {
				continue
			}
			var count int64
			if err := tx.Table(d.Table).Where(clause.Eq{Column: clause.Column{Name: d.ForeignKey}, Value: id}).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return &DependentsError{Association: d.Name}
			}
		}

		for _, d := range r.def.Dependents {
			if d.Policy != Cascade {
				continue
			}
			if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", tx.Statement.Quote(d.Table), tx.Statement.Quote(d.ForeignKey)), id).Error; err != nil {
				return err
			}
		}

		return tx.Delete(item).Error
	})
}

func (r *Resource[T]) validate(ctx context.Context, attrs validation.Attributes, id uint) error {
	errs, err := validation.Validate(&validation.Context{
		Ctx:   ctx,
		Attrs: attrs,
		ID:    id,
		Store: gormStore{db: r.db},
	}, r.def.Rules)
	if err != nil {
		return fmt.Errorf("validate %s: %w", r.def.Name, err)
	}
	if !errs.Empty() {
		return errs
	}
	return nil
}

// translate 并发写入绕过唯一性检查时，唯一索引冲突按校验错误返回
func (r *Resource[T]) translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) && len(r.def.Unique) > 0 {
		return validation.Errors{r.def.Unique[0]: {validation.MsgTaken}}
	}
	return fmt.Errorf("save %s: %w", r.def.Name, err)
}

// gormStore 为校验规则提供数据库查询
type gormStore struct {
	db *gorm.DB
}

func (s gormStore) Exists(ctx context.Context, table, column string, value any, excludeID uint) (bool, error) {
	query := s.db.WithContext(ctx).Table(table).Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ParentScope 把查询限定在父资源之下
func ParentScope(foreignKey string, parentID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: clause.Column{Name: foreignKey}, Value: parentID})
	}
}
