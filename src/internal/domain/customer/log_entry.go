package customer

import (
	"time"

	"github.com/shopspring/decimal"
)

// ===========================
// OrderStatus 訂單狀態
// ===========================

// OrderStatus 訂單生命週期狀態
type OrderStatus string

// 訂單狀態常量
const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusReturned   OrderStatus = "Returned"
)

// ParseOrderStatus 從字串解析訂單狀態
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned:
		return OrderStatus(s), nil
	default:
		return "", ErrInvalidOrderStatus.WithContext("value", s)
	}
}

// String 轉換為字串表示
func (s OrderStatus) String() string {
	return string(s)
}

// ===========================
// LogEntry 歷史記錄條目
// ===========================

// LogEntry 客戶歷史記錄條目（值對象）
//
// 設計原則：
// 1. 不可變性：條目一經寫入永不修改（append-only 由 HistoryLog 保證）
// 2. 每筆積分變動必須對應恰好一筆條目（pointsChange 等於實際套用的差額）
// 3. invoiceID 可能是真實發票號碼，也可能是合成代碼（如兌換券代碼）
//
// 欄位說明：
// - invoiceID: 發票號碼或合成代碼
// - date: 記錄時間
// - details: 人類可讀描述（阿拉伯文操作訊息）
// - status: 訂單生命週期狀態
// - feedback: 購後回饋評分（1-5，可選）
// - pointsChange: 套用到餘額的有號積分差額
// - amount: 消費金額（非購買類條目為 0）
type LogEntry struct {
	invoiceID    string
	date         time.Time
	details      string
	status       OrderStatus
	feedback     *Rating
	pointsChange int
	amount       decimal.Decimal
}

// NewLogEntry 建構函數
//
// 業務規則：
// - invoiceID 不能為空（手動操作使用合成代碼）
// - details 不能為空
func NewLogEntry(
	invoiceID string,
	date time.Time,
	details string,
	status OrderStatus,
	feedback *Rating,
	pointsChange int,
	amount decimal.Decimal,
) (LogEntry, error) {
	if invoiceID == "" {
		return LogEntry{}, ErrValidation.WithContext(
			"field", "invoiceID",
			"reason", "invoiceID cannot be empty",
		)
	}
	if details == "" {
		return LogEntry{}, ErrValidation.WithContext(
			"field", "details",
			"reason", "details cannot be empty",
		)
	}

	return LogEntry{
		invoiceID:    invoiceID,
		date:         date,
		details:      details,
		status:       status,
		feedback:     feedback,
		pointsChange: pointsChange,
		amount:       amount,
	}, nil
}

// InvoiceID 獲取發票號碼（或合成代碼）
func (e LogEntry) InvoiceID() string {
	return e.invoiceID
}

// Date 獲取記錄時間
func (e LogEntry) Date() time.Time {
	return e.date
}

// Details 獲取描述
func (e LogEntry) Details() string {
	return e.details
}

// Status 獲取訂單狀態
func (e LogEntry) Status() OrderStatus {
	return e.status
}

// Feedback 獲取購後回饋評分
//
// 返回：
//   Rating - 評分
//   bool - 是否存在評分（false 表示尚無回饋）
func (e LogEntry) Feedback() (Rating, bool) {
	if e.feedback == nil {
		return Rating{}, false
	}
	return *e.feedback, true
}

// PointsChange 獲取積分差額（有號）
func (e LogEntry) PointsChange() int {
	return e.pointsChange
}

// Amount 獲取消費金額
func (e LogEntry) Amount() decimal.Decimal {
	return e.amount
}

// ===========================
// HistoryLog 歷史記錄
// ===========================

// HistoryLog 客戶歷史記錄（append-only 序列）
//
// 設計原則：
// 1. 只允許追加：沒有任何修改或刪除條目的方法
// 2. 內部以寫入順序存儲（最舊在前），讀取時返回最新在前
//    （最新在前是呈現慣例，不是存儲要求）
// 3. 條目為不可變值對象，讀取返回副本，外部無法篡改內部狀態
type HistoryLog struct {
	entries []LogEntry
}

// NewHistoryLog 創建空的歷史記錄
func NewHistoryLog() HistoryLog {
	return HistoryLog{entries: make([]LogEntry, 0)}
}

// ReconstructHistoryLog 從持久化存儲重建歷史記錄
//
// 參數：
//   entries - 按寫入順序排列的條目（最舊在前）
func ReconstructHistoryLog(entries []LogEntry) HistoryLog {
	copied := make([]LogEntry, len(entries))
	copy(copied, entries)
	return HistoryLog{entries: copied}
}

// Append 追加新條目（唯一的寫入操作）
func (l *HistoryLog) Append(entry LogEntry) {
	l.entries = append(l.entries, entry)
}

// Entries 獲取所有條目（最新在前）
//
// 返回副本，呼叫端無法透過返回值修改歷史記錄
func (l HistoryLog) Entries() []LogEntry {
	result := make([]LogEntry, len(l.entries))
	for i, entry := range l.entries {
		result[len(l.entries)-1-i] = entry
	}
	return result
}

// InOrder 獲取所有條目（寫入順序，最舊在前）
//
// 使用場景：Repository 持久化時保留寫入順序
func (l HistoryLog) InOrder() []LogEntry {
	result := make([]LogEntry, len(l.entries))
	copy(result, l.entries)
	return result
}

// Len 獲取條目數量
func (l HistoryLog) Len() int {
	return len(l.entries)
}

// Latest 獲取最新條目
//
// 返回：
//   LogEntry - 最新條目
//   bool - 記錄是否非空
func (l HistoryLog) Latest() (LogEntry, bool) {
	if len(l.entries) == 0 {
		return LogEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}
