package customer

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// ===========================
// PointsAmount 值對象
// ===========================

// PointsAmount 積分數量值對象
// 設計原則：值對象不可變、自我驗證
type PointsAmount struct {
	value int
}

// NewPointsAmount 建構函數（checked 版本）
// 對外部輸入進行完整驗證
//
// 建構約束：積分數量必須 >= 0（不存在負數積分的概念）
func NewPointsAmount(value int) (PointsAmount, error) {
	if value < 0 {
		return PointsAmount{}, fmt.Errorf(
			"%w: attempted to create PointsAmount with value %d",
			ErrNegativePointsAmount,
			value,
		)
	}
	return PointsAmount{value: value}, nil
}

// newPointsAmountUnchecked 內部建構函數（unchecked 版本）
// 僅供內部使用，當我們確定值有效時使用
//
// 前提條件：調用者必須保證 value >= 0
func newPointsAmountUnchecked(value int) PointsAmount {
	return PointsAmount{value: value}
}

// Value 獲取積分數量
func (p PointsAmount) Value() int {
	return p.value
}

// Add 相加（返回新的 PointsAmount，保持不變性）
func (p PointsAmount) Add(other PointsAmount) PointsAmount {
	return newPointsAmountUnchecked(p.value + other.value)
}

// Subtract 相減（返回新的 PointsAmount）
// 業務規則：不能扣除超過當前數量的積分
func (p PointsAmount) Subtract(other PointsAmount) (PointsAmount, error) {
	if p.value < other.value {
		return PointsAmount{}, ErrInsufficientPoints.WithContext(
			"current", p.value,
			"subtract", other.value,
		)
	}

	// 已經保證 result >= 0，可以安全使用 unchecked 建構
	return newPointsAmountUnchecked(p.value - other.value), nil
}

// IsZero 判斷是否為零
func (p PointsAmount) IsZero() bool {
	return p.value == 0
}

// Equals 比較兩個 PointsAmount 是否相等
func (p PointsAmount) Equals(other PointsAmount) bool {
	return p.value == other.value
}

// GreaterThan 判斷是否大於另一個 PointsAmount
func (p PointsAmount) GreaterThan(other PointsAmount) bool {
	return p.value > other.value
}

// LessThan 判斷是否小於另一個 PointsAmount
func (p PointsAmount) LessThan(other PointsAmount) bool {
	return p.value < other.value
}

// ===========================
// PointValue 值對象
// ===========================

// PointValue 積分兌換率值對象（每 1 點兌換的金額，單位：EGP）
//
// 設計原則：
// - 金額計算使用 decimal.Decimal 確保精確（不使用 float64）
// - 兌換率由外部設定（SystemSettings）提供，此核心不持有設定狀態
type PointValue struct {
	value decimal.Decimal
}

// NewPointValue 建構函數
//
// 建構約束：兌換率必須 > 0
func NewPointValue(value decimal.Decimal) (PointValue, error) {
	if value.LessThanOrEqual(decimal.Zero) {
		return PointValue{}, ErrInvalidPointValue.WithContext(
			"value", value.String(),
		)
	}
	return PointValue{value: value}, nil
}

// Value 獲取兌換率
func (p PointValue) Value() decimal.Decimal {
	return p.value
}

// DiscountFor 計算兌換指定積分數量可得的折扣金額
//
// 業務規則：discountValue = points * pointValue
func (p PointValue) DiscountFor(points PointsAmount) decimal.Decimal {
	return p.value.Mul(decimal.NewFromInt(int64(points.Value())))
}

// ===========================
// EarnRate 值對象
// ===========================

// EarnRate 消費累點比率值對象（每消費多少 EGP 獲得 1 點）
type EarnRate struct {
	value decimal.Decimal
}

// NewEarnRate 建構函數
//
// 建構約束：比率必須 > 0（除數不能為零）
func NewEarnRate(value decimal.Decimal) (EarnRate, error) {
	if value.LessThanOrEqual(decimal.Zero) {
		return EarnRate{}, ErrInvalidEarnRate.WithContext(
			"value", value.String(),
		)
	}
	return EarnRate{value: value}, nil
}

// Value 獲取比率
func (r EarnRate) Value() decimal.Decimal {
	return r.value
}

// ===========================
// Rating 值對象
// ===========================

// Rating 評分值對象（1-5 星）
//
// 使用場景：
// - 歷史記錄上的購後回饋評分（可選欄位）
// - 客戶印象的產品品質／門市體驗評分
type Rating struct {
	value int
}

// NewRating 建構函數
//
// 建構約束：評分必須在 1-5 之間
func NewRating(value int) (Rating, error) {
	if value < 1 || value > 5 {
		return Rating{}, ErrInvalidRating.WithContext(
			"value", value,
		)
	}
	return Rating{value: value}, nil
}

// Value 獲取評分
func (r Rating) Value() int {
	return r.value
}

// ===========================
// PhoneNumber 值對象
// ===========================

// phoneNumberPattern 埃及手機號碼格式：11 位數字，以 01 開頭
var phoneNumberPattern = regexp.MustCompile(`^01[0-9]{9}$`)

// PhoneNumber 手機號碼值對象
//
// 業務規則：
// - 必須是 11 位數字
// - 必須以 01 開頭（埃及手機號碼段）
type PhoneNumber struct {
	value string
}

// NewPhoneNumber 建構函數
func NewPhoneNumber(value string) (PhoneNumber, error) {
	if !phoneNumberPattern.MatchString(value) {
		return PhoneNumber{}, ErrInvalidPhoneNumber.WithContext(
			"value", value,
		)
	}
	return PhoneNumber{value: value}, nil
}

// String 轉換為字串表示
func (p PhoneNumber) String() string {
	return p.value
}

// IsZero 判斷是否為零值（未設定）
func (p PhoneNumber) IsZero() bool {
	return p.value == ""
}

// Equals 比較兩個手機號碼是否相等
func (p PhoneNumber) Equals(other PhoneNumber) bool {
	return p.value == other.value
}
