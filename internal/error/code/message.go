package code

// 错误码消息映射，消息会直接返回给客户端
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "success",
	ErrUnknown:         "internal server error",
	ErrParamMissing:    "param is missing or the value is empty",
	ErrValidation:      "validation failed",
	ErrTooManyRequests: "too many requests",

	// 认证相关错误码
	ErrTokenInvalid:   "unauthorized request: JWT is invalid or not provided at all",
	ErrEditorNotFound: "unauthorized request: No User(editor) is associated with this token",
	ErrAdminOnly:      "unauthorized request: this action is allowed only for admins",
	ErrLoginFailed:    "invalid email or password",

	// 业务相关错误码
	ErrStockExceeded:   "Quantity exceeds available stock",
	ErrDependentExists: "Cannot delete record because dependent records exist",

	// 数据库相关错误码
	ErrDatabase:            "internal server error",
	ErrRecordNotFound:      "Record not found",
	ErrDatabaseUnavailable: "database unavailable",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrParamMissing:    StatusUnprocessableEntity,
	ErrValidation:      StatusUnprocessableEntity,
	ErrTooManyRequests: StatusTooManyRequests,

	// 认证相关错误码
	ErrTokenInvalid:   StatusUnauthorized,
	ErrEditorNotFound: StatusUnauthorized,
	ErrAdminOnly:      StatusUnauthorized,
	ErrLoginFailed:    StatusUnauthorized,

	// 业务相关错误码
	ErrStockExceeded:   StatusUnprocessableEntity,
	ErrDependentExists: StatusUnprocessableEntity,

	// 数据库相关错误码
	ErrDatabase:            StatusInternalServerError,
	ErrRecordNotFound:      StatusNotFound,
	ErrDatabaseUnavailable: StatusServiceUnavailable,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return codeMessageMap[ErrUnknown]
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
