package followup

import "fmt"

// ===========================
// FollowUp Domain 錯誤定義
// ===========================

// ErrorCode 錯誤代碼類型
type ErrorCode string

// 錯誤代碼常量
const (
	ErrCodeInvalidTask     ErrorCode = "TASK_INVALID"
	ErrCodeInvalidTaskID   ErrorCode = "TASK_ID_INVALID"
	ErrCodeTaskNotFound    ErrorCode = "TASK_NOT_FOUND"
	ErrCodeTaskAlreadyDone ErrorCode = "TASK_ALREADY_DONE"
)

// DomainError 領域錯誤
// 與 customer bounded context 相同的結構化錯誤模式
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

// Error 實現 error 接口
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %+v)", e.Code, e.Message, e.Context)
}

// WithContext 添加上下文信息（返回新的錯誤實例，保持不可變性）
func (e *DomainError) WithContext(keyValues ...interface{}) error {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)
	for k, v := range e.Context {
		ctx[k] = v
	}
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
	}
}

// Is 實現 errors.Is 接口
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ===========================
// 預定義錯誤
// ===========================

var (
	// ErrInvalidTask 任務輸入驗證失敗
	ErrInvalidTask = &DomainError{
		Code:    ErrCodeInvalidTask,
		Message: "跟進任務驗證失敗（原因不能為空）",
	}

	// ErrInvalidTaskID 任務 ID 無效
	ErrInvalidTaskID = &DomainError{
		Code:    ErrCodeInvalidTaskID,
		Message: "無效的任務 ID",
	}

	// ErrTaskNotFound 任務不存在
	ErrTaskNotFound = &DomainError{
		Code:    ErrCodeTaskNotFound,
		Message: "跟進任務不存在",
	}

	// ErrTaskAlreadyDone 任務已完成
	//
	// 觸發條件：對已完成的任務再次執行 Complete
	ErrTaskAlreadyDone = &DomainError{
		Code:    ErrCodeTaskAlreadyDone,
		Message: "跟進任務已完成，不可重複完成",
	}
)
