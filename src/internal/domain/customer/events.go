package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ===========================
// CustomerRegistered 領域事件
// ===========================

// CustomerRegisteredEvent 客戶已註冊事件
type CustomerRegisteredEvent struct {
	eventID    string
	customerID CustomerID
	name       string
	occurredAt time.Time
}

// NewCustomerRegisteredEvent 創建客戶已註冊事件
func NewCustomerRegisteredEvent(customerID CustomerID, name string) *CustomerRegisteredEvent {
	return &CustomerRegisteredEvent{
		eventID:    uuid.New().String(),
		customerID: customerID,
		name:       name,
		occurredAt: time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *CustomerRegisteredEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *CustomerRegisteredEvent) EventType() string {
	return "customer.registered"
}

// OccurredAt 實現 DomainEvent 介面
func (e *CustomerRegisteredEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *CustomerRegisteredEvent) AggregateID() string {
	return e.customerID.String()
}

// CustomerID 獲取客戶 ID
func (e *CustomerRegisteredEvent) CustomerID() CustomerID {
	return e.customerID
}

// Name 獲取客戶姓名
func (e *CustomerRegisteredEvent) Name() string {
	return e.name
}

// ===========================
// PointsGranted 領域事件
// ===========================

// PointsGrantedEvent 積分已授予事件
type PointsGrantedEvent struct {
	eventID    string
	customerID CustomerID
	amount     PointsAmount
	reason     string
	occurredAt time.Time
}

// NewPointsGrantedEvent 創建積分已授予事件
func NewPointsGrantedEvent(
	customerID CustomerID,
	amount PointsAmount,
	reason string,
) *PointsGrantedEvent {
	return &PointsGrantedEvent{
		eventID:    uuid.New().String(),
		customerID: customerID,
		amount:     amount,
		reason:     reason,
		occurredAt: time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *PointsGrantedEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *PointsGrantedEvent) EventType() string {
	return "customer.points_granted"
}

// OccurredAt 實現 DomainEvent 介面
func (e *PointsGrantedEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *PointsGrantedEvent) AggregateID() string {
	return e.customerID.String()
}

// Amount 獲取積分數量
func (e *PointsGrantedEvent) Amount() PointsAmount {
	return e.amount
}

// Reason 獲取授予原因
func (e *PointsGrantedEvent) Reason() string {
	return e.reason
}

// ===========================
// PointsDeducted 領域事件
// ===========================

// PointsDeductedEvent 積分已扣減事件
type PointsDeductedEvent struct {
	eventID    string
	customerID CustomerID
	amount     PointsAmount
	reason     string
	occurredAt time.Time
}

// NewPointsDeductedEvent 創建積分已扣減事件
func NewPointsDeductedEvent(
	customerID CustomerID,
	amount PointsAmount,
	reason string,
) *PointsDeductedEvent {
	return &PointsDeductedEvent{
		eventID:    uuid.New().String(),
		customerID: customerID,
		amount:     amount,
		reason:     reason,
		occurredAt: time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *PointsDeductedEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *PointsDeductedEvent) EventType() string {
	return "customer.points_deducted"
}

// OccurredAt 實現 DomainEvent 介面
func (e *PointsDeductedEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *PointsDeductedEvent) AggregateID() string {
	return e.customerID.String()
}

// Amount 獲取積分數量
func (e *PointsDeductedEvent) Amount() PointsAmount {
	return e.amount
}

// Reason 獲取扣減原因
func (e *PointsDeductedEvent) Reason() string {
	return e.reason
}

// ===========================
// VoucherIssued 領域事件
// ===========================

// VoucherIssuedEvent 兌換券已發行事件
type VoucherIssuedEvent struct {
	eventID       string
	customerID    CustomerID
	voucherCode   string
	redeemedPoints PointsAmount
	discountValue decimal.Decimal
	occurredAt    time.Time
}

// NewVoucherIssuedEvent 創建兌換券已發行事件
func NewVoucherIssuedEvent(
	customerID CustomerID,
	voucherCode string,
	redeemedPoints PointsAmount,
	discountValue decimal.Decimal,
) *VoucherIssuedEvent {
	return &VoucherIssuedEvent{
		eventID:        uuid.New().String(),
		customerID:     customerID,
		voucherCode:    voucherCode,
		redeemedPoints: redeemedPoints,
		discountValue:  discountValue,
		occurredAt:     time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *VoucherIssuedEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *VoucherIssuedEvent) EventType() string {
	return "customer.voucher_issued"
}

// OccurredAt 實現 DomainEvent 介面
func (e *VoucherIssuedEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *VoucherIssuedEvent) AggregateID() string {
	return e.customerID.String()
}

// VoucherCode 獲取兌換券代碼
func (e *VoucherIssuedEvent) VoucherCode() string {
	return e.voucherCode
}

// RedeemedPoints 獲取兌換的積分數量
func (e *VoucherIssuedEvent) RedeemedPoints() PointsAmount {
	return e.redeemedPoints
}

// DiscountValue 獲取折扣金額
func (e *VoucherIssuedEvent) DiscountValue() decimal.Decimal {
	return e.discountValue
}

// ===========================
// PurchaseRecorded 領域事件
// ===========================

// PurchaseRecordedEvent 購買已記錄事件
type PurchaseRecordedEvent struct {
	eventID      string
	customerID   CustomerID
	invoiceID    string
	amount       decimal.Decimal
	earnedPoints PointsAmount
	occurredAt   time.Time
}

// NewPurchaseRecordedEvent 創建購買已記錄事件
func NewPurchaseRecordedEvent(
	customerID CustomerID,
	invoiceID string,
	amount decimal.Decimal,
	earnedPoints PointsAmount,
) *PurchaseRecordedEvent {
	return &PurchaseRecordedEvent{
		eventID:      uuid.New().String(),
		customerID:   customerID,
		invoiceID:    invoiceID,
		amount:       amount,
		earnedPoints: earnedPoints,
		occurredAt:   time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *PurchaseRecordedEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *PurchaseRecordedEvent) EventType() string {
	return "customer.purchase_recorded"
}

// OccurredAt 實現 DomainEvent 介面
func (e *PurchaseRecordedEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *PurchaseRecordedEvent) AggregateID() string {
	return e.customerID.String()
}

// InvoiceID 獲取發票號碼
func (e *PurchaseRecordedEvent) InvoiceID() string {
	return e.invoiceID
}

// Amount 獲取消費金額
func (e *PurchaseRecordedEvent) Amount() decimal.Decimal {
	return e.amount
}

// EarnedPoints 獲取本次獲得的積分
func (e *PurchaseRecordedEvent) EarnedPoints() PointsAmount {
	return e.earnedPoints
}
