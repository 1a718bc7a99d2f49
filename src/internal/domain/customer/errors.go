package customer

import "fmt"

// ===========================
// 錯誤代碼定義
// ===========================

// ErrorCode 錯誤代碼類型
type ErrorCode string

// 錯誤代碼常量
const (
	// 輸入驗證相關
	ErrCodeValidation            ErrorCode = "CUSTOMER_VALIDATION"
	ErrCodeInvalidPhoneNumber    ErrorCode = "PHONE_NUMBER_INVALID"
	ErrCodeInvalidRating         ErrorCode = "RATING_INVALID"
	ErrCodeInvalidClassification ErrorCode = "CLASSIFICATION_INVALID"
	ErrCodeInvalidOrderStatus    ErrorCode = "ORDER_STATUS_INVALID"

	// 積分相關
	ErrCodeNegativePointsAmount ErrorCode = "POINTS_NEGATIVE"
	ErrCodeInsufficientPoints   ErrorCode = "POINTS_INSUFFICIENT"
	ErrCodeInvalidPointValue    ErrorCode = "POINT_VALUE_INVALID"
	ErrCodeInvalidEarnRate      ErrorCode = "EARN_RATE_INVALID"

	// 兌換相關
	ErrCodeInvalidRedemption ErrorCode = "REDEMPTION_INVALID"

	// 聚合相關
	ErrCodeInvalidCustomerID ErrorCode = "CUSTOMER_ID_INVALID"
	ErrCodeCorruptedLedger   ErrorCode = "LEDGER_CORRUPTED"
)

// ===========================
// DomainError 結構
// ===========================

// DomainError 領域錯誤
// 設計原則：
// 1. 包含結構化的錯誤代碼（用於外層狀態碼映射）
// 2. 支持上下文信息（用於調試和日誌）
// 3. 不可變性（創建後不可修改）
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

	// 複製現有上下文
	for k, v := range e.Context {
		ctx[k] = v
	}

	// 添加新上下文
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

// Is 實現 errors.Is 接口（用於錯誤類型判斷）
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

// 輸入驗證相關錯誤
var (
	ErrValidation = &DomainError{
		Code:    ErrCodeValidation,
		Message: "輸入驗證失敗（數量必須為正且原因不能為空）",
	}

	ErrInvalidPhoneNumber = &DomainError{
		Code:    ErrCodeInvalidPhoneNumber,
		Message: "手機號碼格式無效（必須是11位數字，且以01開頭）",
	}

	ErrInvalidRating = &DomainError{
		Code:    ErrCodeInvalidRating,
		Message: "評分必須在 1-5 之間",
	}

	ErrInvalidClassification = &DomainError{
		Code:    ErrCodeInvalidClassification,
		Message: "無效的客戶分級",
	}

	ErrInvalidOrderStatus = &DomainError{
		Code:    ErrCodeInvalidOrderStatus,
		Message: "無效的訂單狀態",
	}
)

// 積分相關錯誤
var (
	ErrNegativePointsAmount = &DomainError{
		Code:    ErrCodeNegativePointsAmount,
		Message: "積分數量不能為負數",
	}

	ErrInsufficientPoints = &DomainError{
		Code:    ErrCodeInsufficientPoints,
		Message: "積分餘額不足",
	}

	ErrInvalidPointValue = &DomainError{
		Code:    ErrCodeInvalidPointValue,
		Message: "積分兌換率必須為正數",
	}

	ErrInvalidEarnRate = &DomainError{
		Code:    ErrCodeInvalidEarnRate,
		Message: "消費累點比率必須為正數",
	}
)

// 兌換相關錯誤
var (
	ErrInvalidRedemption = &DomainError{
		Code:    ErrCodeInvalidRedemption,
		Message: "兌換積分數量不正確或超出餘額",
	}
)

// 聚合相關錯誤
var (
	ErrInvalidCustomerID = &DomainError{
		Code:    ErrCodeInvalidCustomerID,
		Message: "無效的客戶 ID",
	}

	ErrCorruptedLedger = &DomainError{
		Code:    ErrCodeCorruptedLedger,
		Message: "積分帳本數據損壞（points != totalEarned - totalUsed）",
	}
)
