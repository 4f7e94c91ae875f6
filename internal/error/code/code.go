package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusCreated - 201: 已创建.
	StatusCreated = 201
	// StatusNoContent - 204: 已删除.
	StatusNoContent = 204
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusUnprocessableEntity - 422: 请求参数无法处理.
	StatusUnprocessableEntity = 422
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusServiceUnavailable - 503: 服务不可用.
	StatusServiceUnavailable = 503
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrParamMissing - 422: 缺少必填参数.
	ErrParamMissing
	// ErrValidation - 422: 字段校验失败.
	ErrValidation
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 认证相关错误码 (101xxx).
const (
	// ErrTokenInvalid - 401: 令牌无效或缺失.
	ErrTokenInvalid int = iota + 101000
	// ErrEditorNotFound - 401: 令牌对应的用户不存在.
	ErrEditorNotFound
	// ErrAdminOnly - 401: 仅管理员可操作.
	ErrAdminOnly
	// ErrLoginFailed - 401: 邮箱或密码错误.
	ErrLoginFailed
)

// 业务相关错误码 (102xxx).
const (
	// ErrStockExceeded - 422: 数量超过库存.
	ErrStockExceeded int = iota + 102000
	// ErrDependentExists - 422: 存在关联记录，不能删除.
	ErrDependentExists
)

// 数据库相关错误码 (105xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
	// ErrDatabaseUnavailable - 503: 数据库不可用.
	ErrDatabaseUnavailable
)
