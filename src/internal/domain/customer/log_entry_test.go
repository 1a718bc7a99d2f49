package customer_test

import (
	"testing"
	"time"

	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLogEntry 創建測試用歷史條目
func newTestLogEntry(t *testing.T, invoiceID string, pointsChange int) customer.LogEntry {
	entry, err := customer.NewLogEntry(
		invoiceID,
		time.Now(),
		"شراء تجريبي",
		customer.OrderStatusDelivered,
		nil,
		pointsChange,
		decimal.NewFromInt(100),
	)
	require.NoError(t, err)
	return entry
}

// ===========================
// LogEntry 測試
// ===========================

// Test 1: NewLogEntry 成功建立
func TestNewLogEntry_ValidInput_Success(t *testing.T) {
	// Arrange
	date := time.Now()
	rating, _ := customer.NewRating(4)

	// Act
	entry, err := customer.NewLogEntry(
		"INV-100",
		date,
		"شراء بفاتورة",
		customer.OrderStatusDelivered,
		&rating,
		50,
		decimal.NewFromInt(500),
	)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "INV-100", entry.InvoiceID())
	assert.Equal(t, date, entry.Date())
	assert.Equal(t, customer.OrderStatusDelivered, entry.Status())
	assert.Equal(t, 50, entry.PointsChange())

	feedback, ok := entry.Feedback()
	require.True(t, ok)
	assert.Equal(t, 4, feedback.Value())
}

// Test 2: NewLogEntry 空發票號碼返回錯誤
func TestNewLogEntry_EmptyInvoiceID_ReturnsError(t *testing.T) {
	// Act
	_, err := customer.NewLogEntry(
		"",
		time.Now(),
		"تفاصيل",
		customer.OrderStatusDelivered,
		nil,
		0,
		decimal.Zero,
	)

	// Assert
	assert.ErrorIs(t, err, customer.ErrValidation)
}

// Test 3: NewLogEntry 空描述返回錯誤
func TestNewLogEntry_EmptyDetails_ReturnsError(t *testing.T) {
	// Act
	_, err := customer.NewLogEntry(
		"INV-100",
		time.Now(),
		"",
		customer.OrderStatusDelivered,
		nil,
		0,
		decimal.Zero,
	)

	// Assert
	assert.ErrorIs(t, err, customer.ErrValidation)
}

// Test 4: Feedback 未設定時返回 false
func TestLogEntry_Feedback_NilReturnsFalse(t *testing.T) {
	// Arrange
	entry := newTestLogEntry(t, "INV-100", 10)

	// Act
	_, ok := entry.Feedback()

	// Assert
	assert.False(t, ok)
}

// ===========================
// OrderStatus 測試
// ===========================

// Test 5: ParseOrderStatus 有效狀態
func TestParseOrderStatus_ValidStatuses(t *testing.T) {
	validStatuses := []string{
		"Pending", "Processing", "Shipped", "Delivered", "Cancelled", "Returned",
	}

	for _, s := range validStatuses {
		status, err := customer.ParseOrderStatus(s)
		require.NoError(t, err, "status: %s", s)
		assert.Equal(t, s, status.String())
	}
}

// Test 6: ParseOrderStatus 無效狀態返回錯誤
func TestParseOrderStatus_InvalidStatus_ReturnsError(t *testing.T) {
	// Act
	_, err := customer.ParseOrderStatus("Unknown")

	// Assert
	assert.ErrorIs(t, err, customer.ErrInvalidOrderStatus)
}

// ===========================
// HistoryLog 測試
// ===========================

// Test 7: 空記錄
func TestHistoryLog_Empty(t *testing.T) {
	// Arrange
	log := customer.NewHistoryLog()

	// Assert
	assert.Equal(t, 0, log.Len())
	assert.Empty(t, log.Entries())

	_, ok := log.Latest()
	assert.False(t, ok)
}

// Test 8: Append 後 Entries 最新在前
func TestHistoryLog_Entries_NewestFirst(t *testing.T) {
	// Arrange
	log := customer.NewHistoryLog()
	log.Append(newTestLogEntry(t, "INV-1", 10))
	log.Append(newTestLogEntry(t, "INV-2", 20))
	log.Append(newTestLogEntry(t, "INV-3", 30))

	// Act
	entries := log.Entries()

	// Assert
	require.Len(t, entries, 3)
	assert.Equal(t, "INV-3", entries[0].InvoiceID())
	assert.Equal(t, "INV-2", entries[1].InvoiceID())
	assert.Equal(t, "INV-1", entries[2].InvoiceID())
}

// Test 9: InOrder 保留寫入順序
func TestHistoryLog_InOrder_PreservesWriteOrder(t *testing.T) {
	// Arrange
	log := customer.NewHistoryLog()
	log.Append(newTestLogEntry(t, "INV-1", 10))
	log.Append(newTestLogEntry(t, "INV-2", 20))

	// Act
	entries := log.InOrder()

	// Assert
	require.Len(t, entries, 2)
	assert.Equal(t, "INV-1", entries[0].InvoiceID())
	assert.Equal(t, "INV-2", entries[1].InvoiceID())
}

// Test 10: Latest 返回最新條目
func TestHistoryLog_Latest(t *testing.T) {
	// Arrange
	log := customer.NewHistoryLog()
	log.Append(newTestLogEntry(t, "INV-1", 10))
	log.Append(newTestLogEntry(t, "INV-2", 20))

	// Act
	latest, ok := log.Latest()

	// Assert
	require.True(t, ok)
	assert.Equal(t, "INV-2", latest.InvoiceID())
}

// Test 11: Entries 返回副本，外部修改不影響內部狀態
func TestHistoryLog_Entries_ReturnsCopy(t *testing.T) {
	// Arrange
	log := customer.NewHistoryLog()
	log.Append(newTestLogEntry(t, "INV-1", 10))
	log.Append(newTestLogEntry(t, "INV-2", 20))

	// Act: 篡改返回的切片
	entries := log.Entries()
	entries[0] = newTestLogEntry(t, "TAMPERED", 999)

	// Assert: 內部狀態不受影響
	fresh := log.Entries()
	assert.Equal(t, "INV-2", fresh[0].InvoiceID())
}

// Test 12: ReconstructHistoryLog 從寫入順序重建
func TestReconstructHistoryLog_RebuildsFromWriteOrder(t *testing.T) {
	// Arrange
	stored := []customer.LogEntry{
		newTestLogEntry(t, "INV-1", 10),
		newTestLogEntry(t, "INV-2", 20),
	}

	// Act
	log := customer.ReconstructHistoryLog(stored)

	// Assert
	assert.Equal(t, 2, log.Len())

	entries := log.Entries()
	assert.Equal(t, "INV-2", entries[0].InvoiceID(), "重建後仍然最新在前")
}
