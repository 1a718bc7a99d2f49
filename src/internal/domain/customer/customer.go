package customer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailops/retail_crm/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===========================
// Customer 聚合根
// ===========================

// Customer 客戶聚合根
//
// 聚合邊界：
// - 客戶基本信息（ID, Name, PhoneNumber, Governorate）
// - 積分帳本（Points, TotalPointsEarned, TotalPointsUsed）
// - 歷史記錄（append-only HistoryLog）
// - 印象記錄（append-only）
// - 消費統計（TotalPurchases, PurchaseCount, LastPurchaseDate）
//
// 業務不變條件：
// - TotalPointsEarned >= 0（累積獲得的積分總數，單調非遞減）
// - TotalPointsUsed >= 0（累積使用的積分總數，單調非遞減）
// - TotalPointsUsed <= TotalPointsEarned（使用積分不能超過獲得積分）
// - Points = TotalPointsEarned - TotalPointsUsed（餘額恆等式，永不偏離）
// - 每次積分變動對應恰好一筆歷史條目，pointsChange 等於套用的差額
//
// 設計原則：
// 1. 輕量級快照：聚合只操作調用者提供的快照，不跨調用共享可變狀態
// 2. 全有或全無：命令方法先驗證後變更，失敗時不產生部分變更
// 3. 事件驅動：所有狀態變更都發布領域事件（Pull 模式）
// 4. Tell, Don't Ask：封裝業務邏輯，不暴露內部狀態供外部判斷
type Customer struct {
	// 聚合根識別符
	customerID CustomerID

	// 基本信息
	name           string
	phone          PhoneNumber
	email          string
	governorate    string
	customerType   CustomerType
	classification Classification // 外部政策計算，此核心只存取不推導
	joinDate       time.Time

	// 積分帳本（使用值對象）
	earnedPoints PointsAmount // 累積獲得積分
	usedPoints   PointsAmount // 累積使用積分

	// 消費統計
	totalPurchases   decimal.Decimal
	purchaseCount    int
	lastPurchaseDate *time.Time

	// 信譽標記
	hasBadReputation bool

	// 歷史與印象（append-only）
	log         HistoryLog
	impressions []Impression

	// 審計字段
	createdAt time.Time
	updatedAt time.Time
	version   int // 樂觀鎖版本號（由外部存儲在每次接受寫入時遞增）

	// 待發布的領域事件
	events []shared.DomainEvent
}

// ===========================
// 建構函數（工廠方法）
// ===========================

// NewCustomer 創建新客戶（註冊）
//
// 業務規則：
// - Name 和 Governorate 不能為空
// - PhoneNumber 必須有效（已在值對象中驗證）
// - 新客戶初始積分為 0，分級為 Bronze（待外部政策重算）
// - 初始版本號為 1
// - 發布 CustomerRegistered 事件
func NewCustomer(
	name string,
	phone PhoneNumber,
	governorate string,
	customerType CustomerType,
) (*Customer, error) {
	if name == "" {
		return nil, ErrValidation.WithContext(
			"field", "name",
			"reason", "name cannot be empty",
		)
	}
	if governorate == "" {
		return nil, ErrValidation.WithContext(
			"field", "governorate",
			"reason", "governorate cannot be empty",
		)
	}
	if phone.IsZero() {
		return nil, ErrValidation.WithContext(
			"field", "phone",
			"reason", "phone cannot be empty",
		)
	}

	now := time.Now()

	c := &Customer{
		customerID:     NewCustomerID(),
		name:           name,
		phone:          phone,
		governorate:    governorate,
		customerType:   customerType,
		classification: ClassificationBronze,
		joinDate:       now,
		earnedPoints:   newPointsAmountUnchecked(0), // 0 保證有效，使用 unchecked
		usedPoints:     newPointsAmountUnchecked(0),
		totalPurchases: decimal.Zero,
		log:            NewHistoryLog(),
		impressions:    make([]Impression, 0),
		createdAt:      now,
		updatedAt:      now,
		version:        1,
		events:         make([]shared.DomainEvent, 0),
	}

	c.addEvent(NewCustomerRegisteredEvent(c.customerID, name))

	return c, nil
}

// ===========================
// 查詢方法（Getters）
// ===========================
//
// ⚠️ 警告：不應在業務邏輯中使用這些 getter 做判斷
// 正確做法：在聚合根內部提供業務方法

// CustomerID 獲取客戶 ID
func (c *Customer) CustomerID() CustomerID {
	return c.customerID
}

// Name 獲取客戶姓名
func (c *Customer) Name() string {
	return c.name
}

// Phone 獲取手機號碼
func (c *Customer) Phone() PhoneNumber {
	return c.phone
}

// Email 獲取電子郵件
func (c *Customer) Email() string {
	return c.email
}

// Governorate 獲取省份
func (c *Customer) Governorate() string {
	return c.governorate
}

// Type 獲取客戶類型
func (c *Customer) Type() CustomerType {
	return c.customerType
}

// Classification 獲取客戶分級
func (c *Customer) Classification() Classification {
	return c.classification
}

// JoinDate 獲取加入日期
func (c *Customer) JoinDate() time.Time {
	return c.joinDate
}

// TotalPointsEarned 獲取累積獲得積分
func (c *Customer) TotalPointsEarned() PointsAmount {
	return c.earnedPoints
}

// TotalPointsUsed 獲取累積使用積分
func (c *Customer) TotalPointsUsed() PointsAmount {
	return c.usedPoints
}

// Points 獲取可用積分餘額（派生值）
//
// 不變條件保證：
// - 由於 usedPoints <= earnedPoints 不變條件，結果永遠 >= 0
// - 每次調用都重新計算，餘額恆等式 points = earned - used 由構造保證
func (c *Customer) Points() PointsAmount {
	// 不變條件保證 earnedPoints >= usedPoints，Subtract 永不失敗
	available, _ := c.earnedPoints.Subtract(c.usedPoints)
	return available
}

// TotalPurchases 獲取累積消費金額
func (c *Customer) TotalPurchases() decimal.Decimal {
	return c.totalPurchases
}

// PurchaseCount 獲取消費次數
func (c *Customer) PurchaseCount() int {
	return c.purchaseCount
}

// LastPurchaseDate 獲取最後消費日期
//
// 返回：
//   time.Time - 最後消費日期
//   bool - 是否曾有消費
func (c *Customer) LastPurchaseDate() (time.Time, bool) {
	if c.lastPurchaseDate == nil {
		return time.Time{}, false
	}
	return *c.lastPurchaseDate, true
}

// HasBadReputation 是否被標記為不良信譽
func (c *Customer) HasBadReputation() bool {
	return c.hasBadReputation
}

// Log 獲取歷史記錄
func (c *Customer) Log() HistoryLog {
	return c.log
}

// Impressions 獲取印象記錄（副本）
func (c *Customer) Impressions() []Impression {
	result := make([]Impression, len(c.impressions))
	copy(result, c.impressions)
	return result
}

// CreatedAt 獲取創建時間
func (c *Customer) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt 獲取最後更新時間
func (c *Customer) UpdatedAt() time.Time {
	return c.updatedAt
}

// Version 獲取樂觀鎖版本號
func (c *Customer) Version() int {
	return c.version
}

// ===========================
// 事件管理
// ===========================

// addEvent 添加領域事件到待發布列表（私有方法）
func (c *Customer) addEvent(event shared.DomainEvent) {
	c.events = append(c.events, event)
}

// PullEvents 獲取所有待發布事件並清空列表
//
// 設計原則：
// - Pull 模式（而非 Push）：聚合根不依賴 EventPublisher
// - 只讀取一次：獲取後清空，避免重複發布
func (c *Customer) PullEvents() []shared.DomainEvent {
	events := c.events
	c.events = make([]shared.DomainEvent, 0)
	return events
}

// ===========================
// 命令方法（積分帳本）
// ===========================

// newAdjustmentCode 生成手動調整的合成代碼
//
// 歷史條目的 invoiceID 不能為空，手動授予/扣減沒有真實發票，
// 使用合成代碼保持條目可追溯
func newAdjustmentCode(now time.Time) string {
	return fmt.Sprintf("ADJ-%d-%s", now.UnixMilli(), uuid.New().String()[:8])
}

// GrantPoints 手動授予積分（核心業務邏輯）
//
// 參數：
//   amount - 授予的積分數量（PointsAmount 已保證 >= 0）
//   reason - 授予原因（必填，寫入歷史條目描述）
//
// 業務規則：
// - amount 必須 > 0，reason 必須非空，否則 ErrValidation 且不產生任何變更
//
// 副作用：
// - earnedPoints 累加（餘額隨恆等式同步增加）
// - 追加一筆 pointsChange = +amount 的歷史條目
// - 更新 updatedAt
// - 發布 PointsGrantedEvent
//
// 返回：
//   LogEntry - 新追加的歷史條目（調用者可取 Details 作為 actionDetail）
func (c *Customer) GrantPoints(amount PointsAmount, reason string) (LogEntry, error) {
	if amount.IsZero() {
		return LogEntry{}, ErrValidation.WithContext(
			"field", "amount",
			"reason", "amount must be positive",
		)
	}
	if reason == "" {
		return LogEntry{}, ErrValidation.WithContext(
			"field", "reason",
			"reason", "reason cannot be empty",
		)
	}

	now := time.Now()

	entry, err := NewLogEntry(
		newAdjustmentCode(now),
		now,
		fmt.Sprintf("منح %d نقطة لسبب: %s", amount.Value(), reason),
		OrderStatusDelivered,
		nil,
		amount.Value(),
		decimal.Zero,
	)
	if err != nil {
		return LogEntry{}, err
	}

	// 狀態變更（驗證已全部通過）
	c.earnedPoints = c.earnedPoints.Add(amount)
	c.log.Append(entry)
	c.updatedAt = now

	c.addEvent(NewPointsGrantedEvent(c.customerID, amount, reason))

	return entry, nil
}

// DeductPoints 手動扣減積分（核心業務邏輯）
//
// 參數：
//   amount - 扣減的積分數量（PointsAmount 已保證 >= 0）
//   reason - 扣減原因（必填）
//
// 業務規則：
// - amount 必須 > 0，reason 必須非空，否則 ErrValidation
// - amount 必須 <= 可用餘額，否則 ErrInsufficientPoints，且任何字段都不變更
//
// 副作用：
// - usedPoints 累加（餘額隨恆等式同步減少）
// - 追加一筆 pointsChange = -amount 的歷史條目
// - 更新 updatedAt
// - 發布 PointsDeductedEvent
func (c *Customer) DeductPoints(amount PointsAmount, reason string) (LogEntry, error) {
	if amount.IsZero() {
		return LogEntry{}, ErrValidation.WithContext(
			"field", "amount",
			"reason", "amount must be positive",
		)
	}
	if reason == "" {
		return LogEntry{}, ErrValidation.WithContext(
			"field", "reason",
			"reason", "reason cannot be empty",
		)
	}

	// 前置條件：檢查是否有足夠積分（餘額永不為負）
	available := c.Points()
	if amount.GreaterThan(available) {
		return LogEntry{}, ErrInsufficientPoints.WithContext(
			"requested", amount.Value(),
			"available", available.Value(),
			"reason", reason,
		)
	}

	now := time.Now()

	entry, err := NewLogEntry(
		newAdjustmentCode(now),
		now,
		fmt.Sprintf("خصم %d نقطة لسبب: %s", amount.Value(), reason),
		OrderStatusDelivered,
		nil,
		-amount.Value(),
		decimal.Zero,
	)
	if err != nil {
		return LogEntry{}, err
	}

	// 狀態變更（驗證已全部通過）
	c.usedPoints = c.usedPoints.Add(amount)
	c.log.Append(entry)
	c.updatedAt = now

	c.addEvent(NewPointsDeductedEvent(c.customerID, amount, reason))

	return entry, nil
}

// RedeemPoints 兌換積分並發行折扣券（核心業務邏輯）
//
// 參數：
//   pointsToRedeem - 兌換的積分數量
//   pointValue - 積分兌換率（由外部 SystemSettings 提供，此核心不持有設定）
//   now - 發行時間（由調用者注入，保持可測試性）
//
// 業務規則：
// - pointsToRedeem 必須 > 0 且 <= 可用餘額，否則 ErrInvalidRedemption，
//   不追加歷史條目、不變更任何字段
// - 折扣金額 = pointsToRedeem * pointValue
// - 到期日 = 發行日 + 30 天（固定政策）
//
// 帳本效果：
// - 等同扣減 pointsToRedeem，但歷史條目的 invoiceID 為兌換券代碼、
//   details 描述折扣金額、amount 為 0（兌換不是購買）
//
// 返回：
//   Voucher - 顯示／列印用兌換券載荷
//   LogEntry - 新追加的歷史條目
func (c *Customer) RedeemPoints(
	pointsToRedeem PointsAmount,
	pointValue PointValue,
	now time.Time,
) (Voucher, LogEntry, error) {
	available := c.Points()
	if pointsToRedeem.IsZero() || pointsToRedeem.GreaterThan(available) {
		return Voucher{}, LogEntry{}, ErrInvalidRedemption.WithContext(
			"requested", pointsToRedeem.Value(),
			"available", available.Value(),
		)
	}

	discountValue := pointValue.DiscountFor(pointsToRedeem)
	code := NewVoucherCode(now)

	entry, err := NewLogEntry(
		code,
		now,
		fmt.Sprintf("إصدار قسيمة خصم بقيمة %s جنيه", discountValue.String()),
		OrderStatusDelivered,
		nil,
		-pointsToRedeem.Value(),
		decimal.Zero, // 兌換不是購買，金額為 0
	)
	if err != nil {
		return Voucher{}, LogEntry{}, err
	}

	// 狀態變更（驗證已全部通過）
	c.usedPoints = c.usedPoints.Add(pointsToRedeem)
	c.log.Append(entry)
	c.updatedAt = now

	c.addEvent(NewVoucherIssuedEvent(c.customerID, code, pointsToRedeem, discountValue))

	voucher := Voucher{
		CustomerName: c.name,
		Amount:       discountValue,
		Code:         code,
		IssueDate:    FormatVoucherDate(now),
		ExpiryDate:   FormatVoucherDate(VoucherExpiryDate(now)),
	}

	return voucher, entry, nil
}

// ===========================
// 命令方法（消費與其他）
// ===========================

// RecordPurchase 記錄一筆已完成的購買
//
// 參數：
//   invoiceID - 發票號碼（必填）
//   amount - 消費金額（必須 > 0）
//   earnedPoints - 本次購買獲得的積分（由 PointsPolicy 計算）
//   status - 訂單狀態
//   now - 記錄時間
//
// 副作用：
// - earnedPoints 累加
// - 消費統計更新（totalPurchases, purchaseCount, lastPurchaseDate）
// - 追加一筆含金額與積分差額的歷史條目
// - 發布 PurchaseRecordedEvent
func (c *Customer) RecordPurchase(
	invoiceID string,
	amount decimal.Decimal,
	earnedPoints PointsAmount,
	status OrderStatus,
	now time.Time,
) (LogEntry, error) {
	if invoiceID == "" {
		return LogEntry{}, ErrValidation.WithContext(
			"field", "invoiceID",
			"reason", "invoiceID cannot be empty",
		)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return LogEntry{}, ErrValidation.WithContext(
			"field", "amount",
			"reason", "amount must be positive",
		)
	}

	entry, err := NewLogEntry(
		invoiceID,
		now,
		fmt.Sprintf("شراء بفاتورة رقم %s بقيمة %s جنيه", invoiceID, amount.String()),
		status,
		nil,
		earnedPoints.Value(),
		amount,
	)
	if err != nil {
		return LogEntry{}, err
	}

	// 狀態變更（驗證已全部通過）
	c.earnedPoints = c.earnedPoints.Add(earnedPoints)
	c.totalPurchases = c.totalPurchases.Add(amount)
	c.purchaseCount++
	purchaseDate := now
	c.lastPurchaseDate = &purchaseDate
	c.log.Append(entry)
	c.updatedAt = now

	c.addEvent(NewPurchaseRecordedEvent(c.customerID, invoiceID, amount, earnedPoints))

	return entry, nil
}

// AddImpression 追加印象記錄
//
// 業務規則：印象記錄 append-only，一經寫入不可修改
func (c *Customer) AddImpression(impression Impression) {
	c.impressions = append(c.impressions, impression)
	c.updatedAt = time.Now()
}

// MarkBadReputation 標記／解除不良信譽
func (c *Customer) MarkBadReputation(flag bool) {
	c.hasBadReputation = flag
	c.updatedAt = time.Now()
}

// ApplyClassification 套用外部政策計算的分級
//
// 業務規則：
// - 分級門檻與重算時機屬於外部政策，此核心只接受結果
// - Classification 已由 ParseClassification 驗證
func (c *Customer) ApplyClassification(classification Classification) {
	c.classification = classification
	c.updatedAt = time.Now()
}

// UpdateContact 更新聯絡信息
//
// 業務規則：Name 不能為空；Email 可選
func (c *Customer) UpdateContact(name, email string) error {
	if name == "" {
		return ErrValidation.WithContext(
			"field", "name",
			"reason", "name cannot be empty",
		)
	}

	c.name = name
	c.email = email
	c.updatedAt = time.Now()

	return nil
}

// ===========================
// 聚合重建方法（僅供 Infrastructure Layer 使用）
// ===========================

// ReconstructCustomer 從持久化存儲重建聚合根
//
// 與 NewCustomer 的區別：
//   New: 創建新聚合，發布 CustomerRegistered 事件
//   Reconstruct: 重建已存在的聚合，不發布事件（事件已發生過）
//
// 重要：即使是從資料庫重建，也必須驗證不變條件，防止損壞資料污染領域層：
// - earned/used >= 0
// - used <= earned
// - points == earned - used（餘額恆等式）
func ReconstructCustomer(
	customerID CustomerID,
	name string,
	phone PhoneNumber,
	email string,
	governorate string,
	customerType CustomerType,
	classification Classification,
	joinDate time.Time,
	points int,
	totalPointsEarned int,
	totalPointsUsed int,
	totalPurchases decimal.Decimal,
	purchaseCount int,
	lastPurchaseDate *time.Time,
	hasBadReputation bool,
	log HistoryLog,
	impressions []Impression,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Customer, error) {
	// 1. 驗證 ID 有效性
	if customerID.IsEmpty() {
		return nil, ErrInvalidCustomerID.WithContext(
			"reason", "invalid customer ID in database",
		)
	}

	// 2. 驗證積分數量（防止負數）
	earnedAmount, err := NewPointsAmount(totalPointsEarned)
	if err != nil {
		return nil, ErrCorruptedLedger.WithContext(
			"field", "totalPointsEarned",
			"value", totalPointsEarned,
		)
	}

	usedAmount, err := NewPointsAmount(totalPointsUsed)
	if err != nil {
		return nil, ErrCorruptedLedger.WithContext(
			"field", "totalPointsUsed",
			"value", totalPointsUsed,
		)
	}

	// 3. 驗證關鍵不變條件：used <= earned 且餘額恆等式成立
	if usedAmount.GreaterThan(earnedAmount) {
		return nil, ErrCorruptedLedger.WithContext(
			"totalPointsUsed", totalPointsUsed,
			"totalPointsEarned", totalPointsEarned,
		)
	}
	if points != totalPointsEarned-totalPointsUsed {
		return nil, ErrCorruptedLedger.WithContext(
			"points", points,
			"totalPointsEarned", totalPointsEarned,
			"totalPointsUsed", totalPointsUsed,
		)
	}

	// 4. 重建聚合（使用已驗證的值對象）
	copied := make([]Impression, len(impressions))
	copy(copied, impressions)

	return &Customer{
		customerID:       customerID,
		name:             name,
		phone:            phone,
		email:            email,
		governorate:      governorate,
		customerType:     customerType,
		classification:   classification,
		joinDate:         joinDate,
		earnedPoints:     earnedAmount,
		usedPoints:       usedAmount,
		totalPurchases:   totalPurchases,
		purchaseCount:    purchaseCount,
		lastPurchaseDate: lastPurchaseDate,
		hasBadReputation: hasBadReputation,
		log:              log,
		impressions:      copied,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		version:          version,
		events:           make([]shared.DomainEvent, 0), // 重建時不包含事件
	}, nil
}
