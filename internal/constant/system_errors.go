package constant

// 系统级错误码 (1xxx)

const (
	CodeSuccess       = 0    // 操作成功
	CodeSystemError   = 1000 // 系统内部错误
	CodeDatabaseError = 1001 // 数据库操作失败，包括连接失败、查询错误、事务异常等
	CodeRedisError    = 1002 // Redis缓存服务错误
	CodeInternalError = 1003 // 内部服务错误，业务逻辑处理过程中出现的未预期异常
	CodeTimeout       = 1005 // 请求处理超时
	CodeConflict      = 1006 // 并发冲突，乐观锁重试次数耗尽
)

// 参数错误码
const (
	CodeInvalidParams   = 1100 // 参数格式错误
	CodeMissingParams   = 1101 // 缺少必要参数
	CodeParamsTypeError = 1103 // 参数类型错误
)

// 认证授权错误码
const (
	CodeUnauthorized   = 1200 // 未授权访问，请求缺少有效的身份认证信息
	CodeSignatureError = 1203 // 签名验证失败
	CodeAccessDenied   = 1204 // 访问权限不足，当前身份没有执行该操作的权限
)
