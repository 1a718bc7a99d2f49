package customer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ===========================
// 兌換券常量
// ===========================

const (
	// VoucherValidityDays 兌換券有效天數（固定政策常量：發行日 + 30 天）
	VoucherValidityDays = 30

	// voucherCodePrefix 兌換券代碼前綴（沿用既有印刷格式）
	voucherCodePrefix = "VCHR"

	// voucherDateLayout 兌換券日期顯示格式（dd/mm/yyyy）
	// 兌換券上的日期是顯示用字串，不是機器可讀時間戳
	voucherDateLayout = "02/01/2006"
)

// ===========================
// Voucher 兌換券
// ===========================

// Voucher 兌換券載荷（顯示／列印用）
//
// 設計原則：
// - 純顯示載荷：交給外部的兌換券列印協作者，此核心不追蹤券的後續使用
// - 日期為預先格式化的字串（顯示用途）
// - 沒有「待定券」狀態：每次發行是單一原子轉移，核銷追蹤屬於外部系統
type Voucher struct {
	CustomerName string
	Amount       decimal.Decimal
	Code         string
	IssueDate    string
	ExpiryDate   string
}

// NewVoucherCode 生成兌換券代碼
//
// 格式：VCHR-<發行時間毫秒>-<UUID 片段>
//
// 唯一性說明：
// - 毫秒時間戳 + UUID 片段保證進程內唯一
// - 跨存儲的全域唯一性屬於外部存儲的職責（此核心不做碰撞檢查）
func NewVoucherCode(issuedAt time.Time) string {
	fragment := uuid.New().String()[:8]
	return fmt.Sprintf("%s-%d-%s", voucherCodePrefix, issuedAt.UnixMilli(), fragment)
}

// VoucherExpiryDate 計算兌換券到期日
//
// 業務規則：到期日 = 發行日 + 30 天（固定政策）
func VoucherExpiryDate(issuedAt time.Time) time.Time {
	return issuedAt.AddDate(0, 0, VoucherValidityDays)
}

// FormatVoucherDate 將時間格式化為兌換券顯示字串
func FormatVoucherDate(t time.Time) string {
	return t.Format(voucherDateLayout)
}
