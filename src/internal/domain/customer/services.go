package customer

import (
	"github.com/shopspring/decimal"
)

// ===========================
// PointsPolicy 領域服務
// ===========================

// PointsPolicy 消費累點計算領域服務
//
// 設計原則：
// 1. Domain Service 封裝不屬於任何單一實體/值對象的業務邏輯
// 2. 協調多個值對象（EarnRate + 消費金額 → PointsAmount）
// 3. 無狀態（stateless）- 所有數據通過參數傳入，可安全共享
type PointsPolicy struct{}

// NewPointsPolicy 建構函數
// Domain Service 通常是無狀態的，但保留建構函數用於未來擴展
func NewPointsPolicy() *PointsPolicy {
	return &PointsPolicy{}
}

// PointsForAmount 根據消費金額和累點比率計算獲得積分
//
// 業務規則：
// - 積分 = floor(金額 / 比率)
// - 使用向下取整（消費 99.99 不會得到 100 / rate 向上的點數）
// - 負數金額返回 0 積分（防禦性編程）
//
// 參數：
//   amount - 消費金額（使用 decimal.Decimal 確保精確計算）
//   rate - 累點比率值對象
//
// 返回：
//   PointsAmount - 計算得到的積分（保證 >= 0）
//   error - 如果計算結果無效
func (s *PointsPolicy) PointsForAmount(
	amount decimal.Decimal,
	rate EarnRate,
) (PointsAmount, error) {
	// 計算：amount / earn_rate，然後向下取整
	pointsValue := amount.Div(rate.Value()).Floor().IntPart()

	// 處理邊緣情況：負數金額（理論上不應該發生，但保持防禦性）
	if pointsValue < 0 {
		pointsValue = 0
	}

	// 使用 checked 建構函數，確保積分有效性
	return NewPointsAmount(int(pointsValue))
}
