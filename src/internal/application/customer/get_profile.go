package customer

import (
	"fmt"
	"time"

	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/shopspring/decimal"
)

// ===========================
// GetCustomerProfile Use Case
// ===========================

// GetCustomerProfileQuery 查詢客戶檔案的查詢
type GetCustomerProfileQuery struct {
	CustomerID string
}

// LogEntryDTO 歷史記錄條目（Output DTO）
type LogEntryDTO struct {
	InvoiceID    string
	Date         time.Time
	Details      string
	Status       string
	Feedback     *int // nil 表示尚無回饋
	PointsChange int
	Amount       decimal.Decimal
}

// CustomerProfileResult 查詢客戶檔案的結果
//
// Log 以最新在前排序（呈現慣例）
type CustomerProfileResult struct {
	CustomerID        string
	Name              string
	Phone             string
	Email             string
	Governorate       string
	CustomerType      string
	Classification    string
	JoinDate          time.Time
	Points            int
	TotalPointsEarned int
	TotalPointsUsed   int
	TotalPurchases    decimal.Decimal
	PurchaseCount     int
	HasBadReputation  bool
	Version           int
	Log               []LogEntryDTO
}

// GetCustomerProfileUseCase 查詢客戶檔案 Use Case
//
// 讀操作：可選事務參與（獨立查詢時傳 nil context，auto-commit 模式）
//
// 冪等性：重複讀取同一快照（中間沒有操作）返回相同的
// Points / Log 值，讀取不產生任何隱藏變更
type GetCustomerProfileUseCase struct {
	customerRepo customer.CustomerRepository
}

// NewGetCustomerProfileUseCase 創建 Use Case 實例
func NewGetCustomerProfileUseCase(repo customer.CustomerRepository) *GetCustomerProfileUseCase {
	return &GetCustomerProfileUseCase{
		customerRepo: repo,
	}
}

// Execute 執行查詢客戶檔案
func (uc *GetCustomerProfileUseCase) Execute(query GetCustomerProfileQuery) (*CustomerProfileResult, error) {
	// 1. 驗證並轉換 CustomerID
	customerID, err := customer.CustomerIDFromString(query.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse customer ID: %w", err)
	}

	// 2. 查詢客戶（獨立讀操作，auto-commit 模式）
	c, err := uc.customerRepo.FindByID(nil, customerID)
	if err != nil {
		return nil, err
	}

	// 3. 轉換歷史記錄（最新在前）
	entries := c.Log().Entries()
	logDTOs := make([]LogEntryDTO, 0, len(entries))
	for _, entry := range entries {
		var feedback *int
		if rating, ok := entry.Feedback(); ok {
			value := rating.Value()
			feedback = &value
		}
		logDTOs = append(logDTOs, LogEntryDTO{
			InvoiceID:    entry.InvoiceID(),
			Date:         entry.Date(),
			Details:      entry.Details(),
			Status:       entry.Status().String(),
			Feedback:     feedback,
			PointsChange: entry.PointsChange(),
			Amount:       entry.Amount(),
		})
	}

	// 4. 返回結果（DTO 轉換）
	return &CustomerProfileResult{
		CustomerID:        c.CustomerID().String(),
		Name:              c.Name(),
		Phone:             c.Phone().String(),
		Email:             c.Email(),
		Governorate:       c.Governorate(),
		CustomerType:      c.Type().String(),
		Classification:    c.Classification().String(),
		JoinDate:          c.JoinDate(),
		Points:            c.Points().Value(),
		TotalPointsEarned: c.TotalPointsEarned().Value(),
		TotalPointsUsed:   c.TotalPointsUsed().Value(),
		TotalPurchases:    c.TotalPurchases(),
		PurchaseCount:     c.PurchaseCount(),
		HasBadReputation:  c.HasBadReputation(),
		Version:           c.Version(),
		Log:               logDTOs,
	}, nil
}
