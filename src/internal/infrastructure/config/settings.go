package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ===========================
// 系統設定
// ===========================

// 預設值（未提供設定檔時使用）
var (
	// DefaultPointValue 每點折抵金額（鎊）
	DefaultPointValue = decimal.NewFromInt(1)

	// DefaultEarnRate 每消費多少鎊獲得 1 點
	DefaultEarnRate = decimal.NewFromInt(10)
)

// SystemSettings 系統層級設定
//
// 設定來源：YAML 設定檔（可選），未提供時使用預設值
type SystemSettings struct {
	// PointValue 每點折抵金額（兌換優惠券時 折抵金額 = 點數 × PointValue）
	PointValue decimal.Decimal `yaml:"point_value"`

	// EarnRate 積分獲取率（每消費 EarnRate 鎊獲得 1 點，向下取整）
	EarnRate decimal.Decimal `yaml:"earn_rate"`
}

// DefaultSettings 返回預設系統設定
func DefaultSettings() SystemSettings {
	return SystemSettings{
		PointValue: DefaultPointValue,
		EarnRate:   DefaultEarnRate,
	}
}

// LoadSettings 從 YAML 檔案載入系統設定
//
// 行為：
// - path == "": 返回預設設定
// - 檔案不存在: 返回錯誤
// - 檔案中省略的欄位: 使用預設值
// - 驗證失敗（非正數）: 返回錯誤
func LoadSettings(path string) (SystemSettings, error) {
	settings := DefaultSettings()

	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return SystemSettings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	// 使用中間結構區分「省略」與「零值」
	var raw struct {
		PointValue *decimal.Decimal `yaml:"point_value"`
		EarnRate   *decimal.Decimal `yaml:"earn_rate"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return SystemSettings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}

	if raw.PointValue != nil {
		settings.PointValue = *raw.PointValue
	}
	if raw.EarnRate != nil {
		settings.EarnRate = *raw.EarnRate
	}

	if err := settings.Validate(); err != nil {
		return SystemSettings{}, err
	}

	return settings, nil
}

// Validate 驗證設定值
//
// 規則：PointValue 與 EarnRate 必須為正數
func (s SystemSettings) Validate() error {
	if !s.PointValue.IsPositive() {
		return fmt.Errorf("point_value must be positive, got %s", s.PointValue.String())
	}
	if !s.EarnRate.IsPositive() {
		return fmt.Errorf("earn_rate must be positive, got %s", s.EarnRate.String())
	}
	return nil
}
