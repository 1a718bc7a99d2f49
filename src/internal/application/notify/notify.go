package notify

import (
	"errors"

	"github.com/retailops/retail_crm/src/internal/domain/customer"
)

// ===========================
// Notification 通知值對象
// ===========================

// Severity 通知嚴重程度
type Severity string

// 通知嚴重程度常量
const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notification 用戶通知（message, severity 對）
//
// 設計原則：
// - 純值對象：交給外部的 toast／通知協作者顯示，此核心不負責呈現
// - Use Case 在成功時附帶 success 通知；錯誤由 ForError 轉換
type Notification struct {
	Message  string
	Severity Severity
}

// Success 創建成功通知
func Success(message string) Notification {
	return Notification{Message: message, Severity: SeveritySuccess}
}

// Error 創建錯誤通知
func Error(message string) Notification {
	return Notification{Message: message, Severity: SeverityError}
}

// Info 創建信息通知
func Info(message string) Notification {
	return Notification{Message: message, Severity: SeverityInfo}
}

// ForError 將領域錯誤轉換為用戶可見的錯誤通知
//
// 映射規則（阿拉伯文訊息沿用既有 UI 文案）：
// - 餘額不足 → "النقاط المتاحة غير كافية."
// - 兌換數量無效 → "عدد النقاط غير صحيح أو غير كافي."
// - 版本衝突 → 提示重新整理後重試
// - 其他 → 通用失敗訊息
func ForError(err error) Notification {
	switch {
	case errors.Is(err, customer.ErrInsufficientPoints):
		return Error("النقاط المتاحة غير كافية.")
	case errors.Is(err, customer.ErrInvalidRedemption):
		return Error("عدد النقاط غير صحيح أو غير كافي.")
	case errors.Is(err, customer.ErrVersionConflict):
		return Error("تم تعديل بيانات العميل من جهة أخرى، يرجى إعادة التحميل والمحاولة مرة أخرى.")
	case errors.Is(err, customer.ErrCustomerNotFound):
		return Error("العميل غير موجود.")
	case errors.Is(err, customer.ErrValidation):
		return Error("البيانات المدخلة غير صحيحة.")
	default:
		return Error("حدث خطأ غير متوقع، يرجى المحاولة مرة أخرى.")
	}
}
