package customer

import (
	"errors"
	"strings"
	"testing"

	"github.com/retailops/retail_crm/src/internal/application/notify"
	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// IssueVoucher Use Case 測試
// ===========================

// Test 1: 成功發行兌換券
func TestIssueVoucherUseCase_Success(t *testing.T) {
	// Arrange
	mockRepo := NewMockCustomerRepository()
	mockTxManager := NewMockTransactionManager()
	useCase := NewIssueVoucherUseCase(mockRepo, mockTxManager)

	c := seedCustomerWithPoints(t, mockRepo, 1000)

	cmd := IssueVoucherCommand{
		CustomerID:     c.CustomerID().String(),
		PointsToRedeem: 300,
		PointValue:     decimal.NewFromInt(1),
	}

	// Act
	result, err := useCase.Execute(cmd)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result)

	// 帳本快照
	assert.Equal(t, 700, result.Points)
	assert.Equal(t, 1000, result.TotalPointsEarned)
	assert.Equal(t, 300, result.TotalPointsUsed)

	// 兌換券載荷
	assert.Equal(t, "أحمد محمد", result.Voucher.CustomerName)
	assert.True(t, decimal.NewFromInt(300).Equal(result.Voucher.Amount))
	assert.True(t, strings.HasPrefix(result.Voucher.Code, "VCHR-"))
	assert.NotEmpty(t, result.Voucher.IssueDate)
	assert.NotEmpty(t, result.Voucher.ExpiryDate)

	// 操作描述與通知
	assert.Contains(t, result.ActionDetail, "إصدار قسيمة خصم")
	assert.Equal(t, notify.SeveritySuccess, result.Notification.Severity)

	assert.Equal(t, 1, mockRepo.UpdateCallCount)
	assert.Equal(t, 1, mockTxManager.InTransactionCallCount)
}

// Test 2: 兌換率放大折扣金額
func TestIssueVoucherUseCase_FractionalPointValue(t *testing.T) {
	// Arrange
	mockRepo := NewMockCustomerRepository()
	mockTxManager := NewMockTransactionManager()
	useCase := NewIssueVoucherUseCase(mockRepo, mockTxManager)

	c := seedCustomerWithPoints(t, mockRepo, 500)

	cmd := IssueVoucherCommand{
		CustomerID:     c.CustomerID().String(),
		PointsToRedeem: 200,
		PointValue:     decimal.RequireFromString("0.5"),
	}

	// Act
	result, err := useCase.Execute(cmd)

	// Assert
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(result.Voucher.Amount), "200 × 0.5 = 100")
}

// Test 3: 零點數，返回 ErrInvalidRedemption
func TestIssueVoucherUseCase_ZeroPoints_ReturnsInvalidRedemption(t *testing.T) {
	// Arrange
	mockRepo := NewMockCustomerRepository()
	mockTxManager := NewMockTransactionManager()
	useCase := NewIssueVoucherUseCase(mockRepo, mockTxManager)

	c := seedCustomerWithPoints(t, mockRepo, 100)

	cmd := IssueVoucherCommand{
		CustomerID:     c.CustomerID().String(),
		PointsToRedeem: 0,
		PointValue:     decimal.NewFromInt(1),
	}

	// Act
	result, err := useCase.Execute(cmd)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, customer.ErrInvalidRedemption))
	assert.Equal(t, 0, mockRepo.UpdateCallCount)
}

// Test 4: 負數點數，返回 ErrInvalidRedemption（不進入事務）
func TestIssueVoucherUseCase_NegativePoints_ReturnsInvalidRedemption(t *testing.T) {
	// Arrange
	mockRepo := NewMockCustomerRepository()
	mockTxManager := NewMockTransactionManager()
	useCase := NewIssueVoucherUseCase(mockRepo, mockTxManager)

	c := seedCustomerWithPoints(t, mockRepo, 100)

	cmd := IssueVoucherCommand{
		CustomerID:     c.CustomerID().String(),
		PointsToRedeem: -50,
		PointValue:     decimal.NewFromInt(1),
	}

	// Act
	result, err := useCase.Execute(cmd)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, customer.ErrInvalidRedemption))
	assert.Equal(t, 0, mockTxManager.InTransactionCallCount)
}

// Test 5: 超出餘額，返回 ErrInvalidRedemption 且餘額不變
func TestIssueVoucherUseCase_OverBalance_ReturnsInvalidRedemption(t *testing.T) {
	// Arrange
	mockRepo := NewMockCustomerRepository()
	mockTxManager := NewMockTransactionManager()
	useCase := NewIssueVoucherUseCase(mockRepo, mockTxManager)

	c := seedCustomerWithPoints(t, mockRepo, 100)

	cmd := IssueVoucherCommand{
		CustomerID:     c.CustomerID().String(),
		PointsToRedeem: 101,
		PointValue:     decimal.NewFromInt(1),
	}

	// Act
	result, err := useCase.Execute(cmd)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, customer.ErrInvalidRedemption))
	assert.Equal(t, 100, c.Points().Value(), "餘額不變")
	assert.Equal(t, 0, c.TotalPointsUsed().Value())

	// 通知映射
	notification := notify.ForError(err)
	assert.Equal(t, "عدد النقاط غير صحيح أو غير كافي.", notification.Message)
}

// Test 6: 無效兌換率，返回 ErrInvalidPointValue
func TestIssueVoucherUseCase_InvalidPointValue_ReturnsError(t *testing.T) {
	// Arrange
	mockRepo := NewMockCustomerRepository()
	mockTxManager := NewMockTransactionManager()
	useCase := NewIssueVoucherUseCase(mockRepo, mockTxManager)

	c := seedCustomerWithPoints(t, mockRepo, 100)

	cmd := IssueVoucherCommand{
		CustomerID:     c.CustomerID().String(),
		PointsToRedeem: 50,
		PointValue:     decimal.Zero,
	}

	// Act
	result, err := useCase.Execute(cmd)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, customer.ErrInvalidPointValue))
	assert.Equal(t, 0, mockTxManager.InTransactionCallCount)
}
