package customer

import (
	"errors"
	"testing"

	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// GetCustomerProfile Use Case 測試
// ===========================

// Test 1: 成功查詢客戶檔案
func TestGetCustomerProfileUseCase_Success(t *testing.T) {
	// Arrange
	mockRepo := NewMockCustomerRepository()
	useCase := NewGetCustomerProfileUseCase(mockRepo)

	c := seedCustomerWithPoints(t, mockRepo, 300)

	amount, _ := customer.NewPointsAmount(100)
	_, err := c.DeductPoints(amount, "تصحيح")
	require.NoError(t, err)

	// Act
	result, err := useCase.Execute(GetCustomerProfileQuery{
		CustomerID: c.CustomerID().String(),
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "أحمد محمد", result.Name)
	assert.Equal(t, 200, result.Points)
	assert.Equal(t, 300, result.TotalPointsEarned)
	assert.Equal(t, 100, result.TotalPointsUsed)
	assert.Equal(t, result.TotalPointsEarned-result.TotalPointsUsed, result.Points)

	// 歷史記錄最新在前
	require.Len(t, result.Log, 2)
	assert.Equal(t, -100, result.Log[0].PointsChange, "最新條目（扣減）在前")
	assert.Equal(t, 300, result.Log[1].PointsChange)
}

// Test 2: 客戶不存在，返回 ErrCustomerNotFound
func TestGetCustomerProfileUseCase_NotFound_ReturnsError(t *testing.T) {
	// Arrange
	mockRepo := NewMockCustomerRepository()
	useCase := NewGetCustomerProfileUseCase(mockRepo)

	// Act
	result, err := useCase.Execute(GetCustomerProfileQuery{
		CustomerID: customer.NewCustomerID().String(),
	})

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, customer.ErrCustomerNotFound))
}

// Test 3: 重複查詢返回相同快照（讀取冪等）
func TestGetCustomerProfileUseCase_RepeatedReads_SameSnapshot(t *testing.T) {
	// Arrange
	mockRepo := NewMockCustomerRepository()
	useCase := NewGetCustomerProfileUseCase(mockRepo)

	c := seedCustomerWithPoints(t, mockRepo, 500)
	query := GetCustomerProfileQuery{CustomerID: c.CustomerID().String()}

	// Act
	result1, err1 := useCase.Execute(query)
	result2, err2 := useCase.Execute(query)

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, result1.Points, result2.Points)
	assert.Equal(t, len(result1.Log), len(result2.Log))
	assert.Equal(t, result1.Version, result2.Version)
}
