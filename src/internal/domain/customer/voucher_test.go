package customer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// Voucher 輔助函數測試
// ===========================

// Test 1: NewVoucherCode 格式為 VCHR-<毫秒>-<片段>
func TestNewVoucherCode_Format(t *testing.T) {
	// Arrange
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	// Act
	code := customer.NewVoucherCode(issuedAt)

	// Assert
	parts := strings.Split(code, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "VCHR", parts[0])
	assert.Equal(t, "1704110400000", parts[1], "第二段為發行時間毫秒")
	assert.Len(t, parts[2], 8, "第三段為 8 字元 UUID 片段")
}

// Test 2: NewVoucherCode 每次生成唯一代碼
func TestNewVoucherCode_Unique(t *testing.T) {
	// Arrange
	now := time.Now()

	// Act
	code1 := customer.NewVoucherCode(now)
	code2 := customer.NewVoucherCode(now)

	// Assert
	assert.NotEqual(t, code1, code2, "同一毫秒內 UUID 片段保證唯一")
}

// Test 3: VoucherExpiryDate 為發行日 + 30 天
func TestVoucherExpiryDate_30DaysAfterIssue(t *testing.T) {
	// Arrange
	issuedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Act
	expiry := customer.VoucherExpiryDate(issuedAt)

	// Assert
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), expiry)
}

// Test 4: VoucherExpiryDate 跨月邊界
func TestVoucherExpiryDate_CrossesMonthBoundary(t *testing.T) {
	// Arrange
	issuedAt := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	// Act
	expiry := customer.VoucherExpiryDate(issuedAt)

	// Assert
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), expiry, "2024 年 2 月有 29 天")
}

// Test 5: FormatVoucherDate 格式為 dd/mm/yyyy
func TestFormatVoucherDate_Format(t *testing.T) {
	// Arrange
	date := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

	// Act
	formatted := customer.FormatVoucherDate(date)

	// Assert
	assert.Equal(t, "05/03/2024", formatted)
}
