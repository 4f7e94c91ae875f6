package controllers

import (
	"context"
	"net/http"
	"net/url"

	"logistics-http-service/internal/domain/models"
	"logistics-http-service/internal/domain/services"
	"logistics-http-service/internal/domain/validation"
	"logistics-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// crudService 资源控制器依赖的服务方法，*services.Resource 及嵌入它的服务都满足
type crudService[T models.Entity] interface {
	Name() string
	Permitted() []string
	List(ctx context.Context, query url.Values, scopes ...func(*gorm.DB) *gorm.DB) ([]T, error)
	Find(ctx context.Context, id uint, scopes ...func(*gorm.DB) *gorm.DB) (*T, error)
	Create(ctx context.Context, params validation.Attributes) (*T, error)
	Update(ctx context.Context, item *T, params validation.Attributes) error
	Delete(ctx context.Context, item *T) error
}

// parentResource 嵌套路由中的父资源，例如 /shipments/:shipment_id/contents
type parentResource struct {
	param      string
	foreignKey string
	name       string
	find       func(ctx context.Context, id uint) error
}

// resourceConfig 一种资源的控制器配置
type resourceConfig[T models.Entity] struct {
	root string
	// idParam 记录ID的路径参数名，默认为 id
	idParam   string
	service   crudService[T]
	render    func(*T) any
	renderAll func([]T) any
	parent    *parentResource
	// stamp 在创建前填入来自令牌的字段
	stamp func(params validation.Attributes, auth *services.AuthResult)
	// beforeSave 在字段校验之前执行的业务检查，existing 在创建时为 nil
	beforeSave func(ctx context.Context, existing *T, params validation.Attributes) error
}

// ResourceController 处理一种资源的增删改查请求
type ResourceController[T models.Entity] struct {
	Ctx  *gin.Context
	Auth *services.AuthResult

	cfg      resourceConfig[T]
	parentID uint
	scopes   []func(*gorm.DB) *gorm.DB
}

// newResourceController 创建资源控制器
func newResourceController[T models.Entity](ctx *gin.Context, auth *services.AuthResult, cfg resourceConfig[T]) *ResourceController[T] {
	return &ResourceController[T]{Ctx: ctx, Auth: auth, cfg: cfg}
}

// resolveParent 加载路径中的父资源，之后的查询都限定在父资源之下
func (c *ResourceController[T]) resolveParent() bool {
	p := c.cfg.parent
	if p == nil {
		return true
	}

	id, ok := parseID(c.Ctx, p.param)
	if !ok {
		response.NotFound(c.Ctx, p.name)
		return false
	}
	if err := p.find(c.Ctx.Request.Context(), id); err != nil {
		renderError(c.Ctx, p.name, err)
		return false
	}

	c.parentID = id
	c.scopes = append(c.scopes, services.ParentScope(p.foreignKey, id))
	return true
}

// find 加载路径中的记录
func (c *ResourceController[T]) find() (*T, bool) {
	name := c.cfg.service.Name()
	param := c.cfg.idParam
	if param == "" {
		param = "id"
	}
	id, ok := parseID(c.Ctx, param)
	if !ok {
		response.NotFound(c.Ctx, name)
		return nil, false
	}

	item, err := c.cfg.service.Find(c.Ctx.Request.Context(), id, c.scopes...)
	if err != nil {
		renderError(c.Ctx, name, err)
		return nil, false
	}
	return item, true
}

// params 读取允许的参数，父资源ID覆盖请求体中的外键
func (c *ResourceController[T]) params() (validation.Attributes, bool) {
	params, ok := requireParams(c.Ctx, c.cfg.root, c.cfg.service.Permitted())
	if !ok {
		return nil, false
	}
	if c.parentID != 0 {
		params[c.cfg.parent.foreignKey] = c.parentID
	}
	return params, true
}

// Index 1. 获取资源列表，查询参数按允许的过滤字段做等值过滤
func (c *ResourceController[T]) Index() {
	if !c.resolveParent() {
		return
	}

	items, err := c.cfg.service.List(c.Ctx.Request.Context(), c.Ctx.Request.URL.Query(), c.scopes...)
	if err != nil {
		renderError(c.Ctx, c.cfg.service.Name(), err)
		return
	}
	response.Success(c.Ctx, c.cfg.renderAll(items))
}

// Show 2. 获取单个资源
func (c *ResourceController[T]) Show() {
	if !c.resolveParent() {
		return
	}

	item, ok := c.find()
	if !ok {
		return
	}
	response.Success(c.Ctx, c.cfg.render(item))
}

// Create 3. 创建资源
func (c *ResourceController[T]) Create() {
	if !c.resolveParent() {
		return
	}

	params, ok := c.params()
	if !ok {
		return
	}
	if c.cfg.stamp != nil {
		c.cfg.stamp(params, c.Auth)
	}

	ctx := c.Ctx.Request.Context()
	if c.cfg.beforeSave != nil {
		if err := c.cfg.beforeSave(ctx, nil, params); err != nil {
			renderError(c.Ctx, c.cfg.service.Name(), err)
			return
		}
	}

	item, err := c.cfg.service.Create(ctx, params)
	if err != nil {
		renderError(c.Ctx, c.cfg.service.Name(), err)
		return
	}
	response.Created(c.Ctx, c.cfg.render(item))
}

// Update 4. 更新资源，未提交的字段保持原值
func (c *ResourceController[T]) Update() {
	if !c.resolveParent() {
		return
	}

	item, ok := c.find()
	if !ok {
		return
	}
	params, ok := c.params()
	if !ok {
		return
	}

	ctx := c.Ctx.Request.Context()
	if c.cfg.beforeSave != nil {
		if err := c.cfg.beforeSave(ctx, item, params); err != nil {
			renderError(c.Ctx, c.cfg.service.Name(), err)
			return
		}
	}

	if err := c.cfg.service.Update(ctx, item, params); err != nil {
		renderError(c.Ctx, c.cfg.service.Name(), err)
		return
	}
	response.Success(c.Ctx, c.cfg.render(item))
}

// Destroy 5. 删除资源
func (c *ResourceController[T]) Destroy() {
	if !c.resolveParent() {
		return
	}

	item, ok := c.find()
	if !ok {
		return
	}
	if err := c.cfg.service.Delete(c.Ctx.Request.Context(), item); err != nil {
		renderError(c.Ctx, c.cfg.service.Name(), err)
		return
	}
	response.NoContent(c.Ctx)
}

// handleResource 按方法名分发到资源控制器
func handleResource[T models.Entity](cfg resourceConfig[T], method string) func(*gin.Context, *services.AuthResult) {
	return func(ctx *gin.Context, auth *services.AuthResult) {
		controller := newResourceController(ctx, auth, cfg)

		switch method {
		case "index":
			controller.Index()
		case "show":
			controller.Show()
		case "create":
			controller.Create()
		case "update":
			controller.Update()
		case "destroy":
			controller.Destroy()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid method"})
		}
	}
}

// stampEditor 把当前 Editor 设为记录的所有者
func stampEditor(params validation.Attributes, auth *services.AuthResult) {
	params["editor_id"] = auth.Editor.ID
}
