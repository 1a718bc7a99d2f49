package customer

import (
	"fmt"
	"time"

	"github.com/retailops/retail_crm/src/internal/application/notify"
	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/retailops/retail_crm/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===========================
// RecordPurchase Use Case
// ===========================

// RecordPurchaseCommand 記錄購買指令
//
// EarnRate 由調用者從 SystemSettings 提供（每消費多少 EGP 獲得 1 點）
type RecordPurchaseCommand struct {
	CustomerID string          // 客戶 ID（UUID 字串）
	InvoiceID  string          // 發票號碼（必填）
	Amount     decimal.Decimal // 消費金額（必須 > 0）
	Status     string          // 訂單狀態
	EarnRate   decimal.Decimal // 消費累點比率
}

// RecordPurchaseResult 記錄購買結果
type RecordPurchaseResult struct {
	CustomerID        string
	EarnedPoints      int
	Points            int
	TotalPointsEarned int
	TotalPointsUsed   int
	PurchaseCount     int
	TotalPurchases    decimal.Decimal
	ActionDetail      string
	Notification      notify.Notification
}

// RecordPurchaseUseCase 記錄購買 Use Case
//
// 職責：
// 1. 驗證輸入
// 2. 以 PointsPolicy 計算本次購買獲得的積分（floor(金額 / 比率)）
// 3. 記錄購買（帳本累加 + 消費統計 + 歷史條目）
// 4. 以樂觀鎖版本持久化更新
//
// 注意：客戶分級（Bronze/Silver/Gold/Platinum）由外部政策重算，
// 此 Use Case 不觸發分級變更
type RecordPurchaseUseCase struct {
	customerRepo customer.CustomerRepository
	txManager    shared.TransactionManager
	policy       *customer.PointsPolicy
}

// NewRecordPurchaseUseCase 創建 Use Case 實例
func NewRecordPurchaseUseCase(
	repo customer.CustomerRepository,
	txManager shared.TransactionManager,
) *RecordPurchaseUseCase {
	return &RecordPurchaseUseCase{
		customerRepo: repo,
		txManager:    txManager,
		policy:       customer.NewPointsPolicy(),
	}
}

// Execute 執行記錄購買
func (uc *RecordPurchaseUseCase) Execute(cmd RecordPurchaseCommand) (*RecordPurchaseResult, error) {
	// 1. 驗證並轉換輸入
	customerID, err := customer.CustomerIDFromString(cmd.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse customer ID: %w", err)
	}

	status, err := customer.ParseOrderStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	earnRate, err := customer.NewEarnRate(cmd.EarnRate)
	if err != nil {
		return nil, err
	}

	// 2. 計算本次購買獲得的積分（Domain Service）
	earnedPoints, err := uc.policy.PointsForAmount(cmd.Amount, earnRate)
	if err != nil {
		return nil, err
	}

	// 3. 在事務中執行業務邏輯
	var result *RecordPurchaseResult
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		c, err := uc.customerRepo.FindByID(ctx, customerID)
		if err != nil {
			return err
		}

		entry, err := c.RecordPurchase(cmd.InvoiceID, cmd.Amount, earnedPoints, status, time.Now())
		if err != nil {
			return err
		}

		if err := uc.customerRepo.Update(ctx, c, c.Version()); err != nil {
			return err
		}

		result = &RecordPurchaseResult{
			CustomerID:        c.CustomerID().String(),
			EarnedPoints:      earnedPoints.Value(),
			Points:            c.Points().Value(),
			TotalPointsEarned: c.TotalPointsEarned().Value(),
			TotalPointsUsed:   c.TotalPointsUsed().Value(),
			PurchaseCount:     c.PurchaseCount(),
			TotalPurchases:    c.TotalPurchases(),
			ActionDetail:      entry.Details(),
			Notification: notify.Success(
				fmt.Sprintf("تم تسجيل الفاتورة %s بنجاح.", cmd.InvoiceID),
			),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
