package customer

import (
	"errors"
	"testing"

	"github.com/retailops/retail_crm/src/internal/application/notify"
	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// RecordPurchase Use Case 測試
// ===========================

// Test 1: 成功記錄購買並累點
func TestRecordPurchaseUseCase_Success(t *testing.T) {
	// Arrange
	mockRepo := NewMockCustomerRepository()
	mockTxManager := NewMockTransactionManager()
	useCase := NewRecordPurchaseUseCase(mockRepo, mockTxManager)

	c := seedTestCustomer(t, mockRepo)

	cmd := RecordPurchaseCommand{
		CustomerID: c.CustomerID().String(),
		InvoiceID:  "INV-1001",
		Amount:     decimal.NewFromInt(255),
		Status:     "Delivered",
		EarnRate:   decimal.NewFromInt(10),
	}

	// Act
	result, err := useCase.Execute(cmd)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 25, result.EarnedPoints, "255 / 10 = 25.5 → 向下取整為 25")
	assert.Equal(t, 25, result.Points)
	assert.Equal(t, 1, result.PurchaseCount)
	assert.True(t, decimal.NewFromInt(255).Equal(result.TotalPurchases))
	assert.Contains(t, result.ActionDetail, "INV-1001")
	assert.Equal(t, notify.SeveritySuccess, result.Notification.Severity)

	assert.Equal(t, 1, mockRepo.UpdateCallCount)
}

// Test 2: 無效訂單狀態，返回 ErrInvalidOrderStatus
func TestRecordPurchaseUseCase_InvalidStatus_ReturnsError(t *testing.T) {
	// Arrange
	mockRepo := NewMockCustomerRepository()
	mockTxManager := NewMockTransactionManager()
	useCase := NewRecordPurchaseUseCase(mockRepo, mockTxManager)

	c := seedTestCustomer(t, mockRepo)

	cmd := RecordPurchaseCommand{
		CustomerID: c.CustomerID().String(),
		InvoiceID:  "INV-1001",
		Amount:     decimal.NewFromInt(100),
		Status:     "Unknown",
		EarnRate:   decimal.NewFromInt(10),
	}

	// Act
	result, err := useCase.Execute(cmd)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, customer.ErrInvalidOrderStatus))
	assert.Equal(t, 0, mockRepo.UpdateCallCount)
}

// Test 3: 無效累點比率，返回 ErrInvalidEarnRate
func TestRecordPurchaseUseCase_InvalidEarnRate_ReturnsError(t *testing.T) {
	// Arrange
	mockRepo := NewMockCustomerRepository()
	mockTxManager := NewMockTransactionManager()
	useCase := NewRecordPurchaseUseCase(mockRepo, mockTxManager)

	c := seedTestCustomer(t, mockRepo)

	cmd := RecordPurchaseCommand{
		CustomerID: c.CustomerID().String(),
		InvoiceID:  "INV-1001",
		Amount:     decimal.NewFromInt(100),
		Status:     "Delivered",
		EarnRate:   decimal.Zero,
	}

	// Act
	result, err := useCase.Execute(cmd)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, customer.ErrInvalidEarnRate))
}

// Test 4: 空發票號碼，返回 ErrValidation
func TestRecordPurchaseUseCase_EmptyInvoice_ReturnsError(t *testing.T) {
	// Arrange
	mockRepo := NewMockCustomerRepository()
	mockTxManager := NewMockTransactionManager()
	useCase := NewRecordPurchaseUseCase(mockRepo, mockTxManager)

	c := seedTestCustomer(t, mockRepo)

	cmd := RecordPurchaseCommand{
		CustomerID: c.CustomerID().String(),
		InvoiceID:  "",
		Amount:     decimal.NewFromInt(100),
		Status:     "Delivered",
		EarnRate:   decimal.NewFromInt(10),
	}

	// Act
	result, err := useCase.Execute(cmd)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, customer.ErrValidation))
}
