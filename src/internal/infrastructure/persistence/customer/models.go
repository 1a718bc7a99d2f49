package customer

import (
	"time"

	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/shopspring/decimal"
)

// ===========================
// GORM Models
// ===========================

// CustomerGORM 客戶資料表模型
//
// 設計原則：
// - 僅用於 Infrastructure Layer（不暴露給 Domain Layer）
// - 與 Domain Customer 聚合分離（Mapper 轉換）
//
// 資料庫約束：
// - customer_id: 主鍵（UUID）
// - phone: 唯一索引（一個手機號碼對應一個客戶）
// - points / total_points_earned / total_points_used: >= 0
// - version: 樂觀鎖版本號，每次接受寫入時遞增
// - 餘額恆等式 points = total_points_earned - total_points_used
//   在重建聚合時驗證（ReconstructCustomer）
type CustomerGORM struct {
	// 識別欄位
	CustomerID string `gorm:"column:customer_id;type:varchar(36);primaryKey"`
	Name       string `gorm:"column:name;not null"`
	Phone      string `gorm:"column:phone;type:varchar(11);uniqueIndex;not null"`
	Email      string `gorm:"column:email"`

	// 基本信息
	Governorate    string    `gorm:"column:governorate;not null"`
	CustomerType   string    `gorm:"column:customer_type;not null"`
	Classification string    `gorm:"column:classification;not null"`
	JoinDate       time.Time `gorm:"column:join_date;not null"`

	// 積分帳本
	Points            int `gorm:"column:points;not null;default:0;check:points >= 0"`
	TotalPointsEarned int `gorm:"column:total_points_earned;not null;default:0;check:total_points_earned >= 0"`
	TotalPointsUsed   int `gorm:"column:total_points_used;not null;default:0;check:total_points_used >= 0"`

	// 消費統計
	TotalPurchases   decimal.Decimal `gorm:"column:total_purchases;type:decimal(14,2);not null"`
	PurchaseCount    int             `gorm:"column:purchase_count;not null;default:0"`
	LastPurchaseDate *time.Time      `gorm:"column:last_purchase_date"`

	// 信譽標記
	HasBadReputation bool `gorm:"column:has_bad_reputation;not null;default:false"`

	// 審計欄位
	Version   int       `gorm:"column:version;not null;default:1"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (CustomerGORM) TableName() string {
	return "customers"
}

// LogEntryGORM 歷史記錄條目資料表模型
//
// 設計原則：
// - insert-only 子表：條目一經寫入不修改（append-only 由 Repository 保證）
// - 自增主鍵保留寫入順序，查詢時按 id ASC 重建寫入順序
type LogEntryGORM struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID string `gorm:"column:customer_id;type:varchar(36);index;not null"`

	InvoiceID    string          `gorm:"column:invoice_id;not null"`
	Date         time.Time       `gorm:"column:date;not null"`
	Details      string          `gorm:"column:details;not null"`
	Status       string          `gorm:"column:status;not null"`
	Feedback     *int            `gorm:"column:feedback"` // NULL 表示尚無回饋
	PointsChange int             `gorm:"column:points_change;not null"`
	Amount       decimal.Decimal `gorm:"column:amount;type:decimal(14,2);not null"`
}

// TableName 指定資料表名稱
func (LogEntryGORM) TableName() string {
	return "customer_log_entries"
}

// ImpressionGORM 客戶印象資料表模型（insert-only 子表）
type ImpressionGORM struct {
	ImpressionID string `gorm:"column:impression_id;type:varchar(36);primaryKey"`
	CustomerID   string `gorm:"column:customer_id;type:varchar(36);index;not null"`

	Date                   time.Time `gorm:"column:date;not null"`
	RecordedBy             string    `gorm:"column:recorded_by;not null"`
	ProductQualityRating   int       `gorm:"column:product_quality_rating;not null"`
	ProductQualityNotes    string    `gorm:"column:product_quality_notes"`
	BranchExperienceRating int       `gorm:"column:branch_experience_rating;not null"`
	BranchExperienceNotes  string    `gorm:"column:branch_experience_notes"`
	DiscoveryChannel       string    `gorm:"column:discovery_channel;not null"`
	IsFirstVisit           bool      `gorm:"column:is_first_visit;not null;default:false"`
}

// TableName 指定資料表名稱
func (ImpressionGORM) TableName() string {
	return "customer_impressions"
}

// ===========================
// Mapper Functions
// ===========================

// toDomain 將 GORM 模型轉換為 Domain 聚合
//
// 參數：
//   g - 客戶主表模型
//   logRows - 歷史條目（按寫入順序，最舊在前）
//   impressionRows - 印象記錄
//
// 轉換邏輯：
// - 所有值對象透過 checked 建構函數重建（防止損壞資料污染領域層）
// - 餘額恆等式在 ReconstructCustomer 內驗證
func toDomain(
	g *CustomerGORM,
	logRows []LogEntryGORM,
	impressionRows []ImpressionGORM,
) (*customer.Customer, error) {
	// 1. 轉換識別欄位與值對象
	customerID, err := customer.CustomerIDFromString(g.CustomerID)
	if err != nil {
		return nil, err
	}

	phone, err := customer.NewPhoneNumber(g.Phone)
	if err != nil {
		return nil, err
	}

	customerType, err := customer.ParseCustomerType(g.CustomerType)
	if err != nil {
		return nil, err
	}

	classification, err := customer.ParseClassification(g.Classification)
	if err != nil {
		return nil, err
	}

	// 2. 重建歷史記錄
	entries := make([]customer.LogEntry, 0, len(logRows))
	for _, row := range logRows {
		entry, err := logEntryToDomain(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	log := customer.ReconstructHistoryLog(entries)

	// 3. 重建印象記錄
	impressions := make([]customer.Impression, 0, len(impressionRows))
	for _, row := range impressionRows {
		impression, err := impressionToDomain(row)
		if err != nil {
			return nil, err
		}
		impressions = append(impressions, impression)
	}

	// 4. 重建聚合（餘額恆等式在此驗證）
	return customer.ReconstructCustomer(
		customerID,
		g.Name,
		phone,
		g.Email,
		g.Governorate,
		customerType,
		classification,
		g.JoinDate,
		g.Points,
		g.TotalPointsEarned,
		g.TotalPointsUsed,
		g.TotalPurchases,
		g.PurchaseCount,
		g.LastPurchaseDate,
		g.HasBadReputation,
		log,
		impressions,
		g.CreatedAt,
		g.UpdatedAt,
		g.Version,
	)
}

// logEntryToDomain 將歷史條目模型轉換為 Domain 值對象
func logEntryToDomain(row LogEntryGORM) (customer.LogEntry, error) {
	status, err := customer.ParseOrderStatus(row.Status)
	if err != nil {
		return customer.LogEntry{}, err
	}

	var feedback *customer.Rating
	if row.Feedback != nil {
		rating, err := customer.NewRating(*row.Feedback)
		if err != nil {
			return customer.LogEntry{}, err
		}
		feedback = &rating
	}

	return customer.NewLogEntry(
		row.InvoiceID,
		row.Date,
		row.Details,
		status,
		feedback,
		row.PointsChange,
		row.Amount,
	)
}

// impressionToDomain 將印象模型轉換為 Domain 值對象
func impressionToDomain(row ImpressionGORM) (customer.Impression, error) {
	productQuality, err := customer.NewRating(row.ProductQualityRating)
	if err != nil {
		return customer.Impression{}, err
	}

	branchExperience, err := customer.NewRating(row.BranchExperienceRating)
	if err != nil {
		return customer.Impression{}, err
	}

	channel, err := customer.ParseDiscoveryChannel(row.DiscoveryChannel)
	if err != nil {
		return customer.Impression{}, err
	}

	return customer.ReconstructImpression(
		row.ImpressionID,
		row.Date,
		row.RecordedBy,
		productQuality,
		row.ProductQualityNotes,
		branchExperience,
		row.BranchExperienceNotes,
		channel,
		row.IsFirstVisit,
	), nil
}

// toGORM 將 Domain 聚合轉換為 GORM 主表模型
func toGORM(c *customer.Customer) *CustomerGORM {
	var lastPurchaseDate *time.Time
	if date, ok := c.LastPurchaseDate(); ok {
		lastPurchaseDate = &date
	}

	return &CustomerGORM{
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
		LastPurchaseDate:  lastPurchaseDate,
		HasBadReputation:  c.HasBadReputation(),
		Version:           c.Version(),
		CreatedAt:         c.CreatedAt(),
		UpdatedAt:         c.UpdatedAt(),
	}
}

// logEntriesToGORM 將歷史記錄轉換為子表模型（寫入順序）
func logEntriesToGORM(c *customer.Customer) []LogEntryGORM {
	entries := c.Log().InOrder()
	rows := make([]LogEntryGORM, 0, len(entries))
	for _, entry := range entries {
		var feedback *int
		if rating, ok := entry.Feedback(); ok {
			value := rating.Value()
			feedback = &value
		}
		rows = append(rows, LogEntryGORM{
			CustomerID:   c.CustomerID().String(),
			InvoiceID:    entry.InvoiceID(),
			Date:         entry.Date(),
			Details:      entry.Details(),
			Status:       entry.Status().String(),
			Feedback:     feedback,
			PointsChange: entry.PointsChange(),
			Amount:       entry.Amount(),
		})
	}
	return rows
}

// impressionsToGORM 將印象記錄轉換為子表模型
func impressionsToGORM(c *customer.Customer) []ImpressionGORM {
	impressions := c.Impressions()
	rows := make([]ImpressionGORM, 0, len(impressions))
	for _, impression := range impressions {
		rows = append(rows, ImpressionGORM{
			ImpressionID:           impression.ID(),
			CustomerID:             c.CustomerID().String(),
			Date:                   impression.Date(),
			RecordedBy:             impression.RecordedBy(),
			ProductQualityRating:   impression.ProductQualityRating().Value(),
			ProductQualityNotes:    impression.ProductQualityNotes(),
			BranchExperienceRating: impression.BranchExperienceRating().Value(),
			BranchExperienceNotes:  impression.BranchExperienceNotes(),
			DiscoveryChannel:       impression.DiscoveryChannel().String(),
			IsFirstVisit:           impression.IsFirstVisit(),
		})
	}
	return rows
}
