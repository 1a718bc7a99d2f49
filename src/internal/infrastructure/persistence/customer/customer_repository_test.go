package customer

import (
	"testing"
	"time"

	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ===========================
// CustomerRepository Integration Tests
// ===========================

// setupTestDB 創建測試資料庫（in-memory SQLite）
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to connect to test database")

	err = db.AutoMigrate(&CustomerGORM{}, &LogEntryGORM{}, &ImpressionGORM{})
	require.NoError(t, err, "failed to migrate database schema")

	return db
}

// createTestCustomer 創建測試用客戶
func createTestCustomer(t *testing.T, phoneNumber string) *customer.Customer {
	phone, err := customer.NewPhoneNumber(phoneNumber)
	require.NoError(t, err)

	c, err := customer.NewCustomer("أحمد محمد", phone, "القاهرة", customer.CustomerTypeNormal)
	require.NoError(t, err)

	c.PullEvents()
	return c
}

// grantPoints 授予測試積分
func grantPoints(t *testing.T, c *customer.Customer, value int) {
	amount, err := customer.NewPointsAmount(value)
	require.NoError(t, err)

	_, err = c.GrantPoints(amount, "رصيد تجريبي")
	require.NoError(t, err)
}

// Test 1: Save 保存新客戶成功
func TestCustomerRepository_Save_NewCustomer_Success(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)
	c := createTestCustomer(t, "01012345678")

	// Act
	err := repo.Save(nil, c)

	// Assert
	require.NoError(t, err)

	var gormModel CustomerGORM
	result := db.First(&gormModel, "customer_id = ?", c.CustomerID().String())
	require.NoError(t, result.Error)
	assert.Equal(t, "أحمد محمد", gormModel.Name)
	assert.Equal(t, "01012345678", gormModel.Phone)
	assert.Equal(t, 0, gormModel.Points)
	assert.Equal(t, 1, gormModel.Version)
}

// Test 2: Save 手機號碼重複返回 ErrCustomerAlreadyExists
func TestCustomerRepository_Save_DuplicatePhone_ReturnsError(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)

	c1 := createTestCustomer(t, "01012345678")
	require.NoError(t, repo.Save(nil, c1))

	c2 := createTestCustomer(t, "01012345678")

	// Act
	err := repo.Save(nil, c2)

	// Assert
	assert.ErrorIs(t, err, customer.ErrCustomerAlreadyExists)
}

// Test 3: FindByID 完整往返（含歷史條目）
func TestCustomerRepository_FindByID_RoundTrip(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)

	c := createTestCustomer(t, "01012345678")
	grantPoints(t, c, 300)

	amount, _ := customer.NewPointsAmount(100)
	_, err := c.DeductPoints(amount, "تصحيح")
	require.NoError(t, err)

	require.NoError(t, repo.Save(nil, c))

	// Act
	found, err := repo.FindByID(nil, c.CustomerID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, c.CustomerID().String(), found.CustomerID().String())
	assert.Equal(t, 200, found.Points().Value())
	assert.Equal(t, 300, found.TotalPointsEarned().Value())
	assert.Equal(t, 100, found.TotalPointsUsed().Value())

	// 歷史條目往返（最新在前）
	entries := found.Log().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, -100, entries[0].PointsChange(), "最新條目（扣減）在前")
	assert.Equal(t, 300, entries[1].PointsChange())
}

// Test 4: FindByID 客戶不存在返回 ErrCustomerNotFound
func TestCustomerRepository_FindByID_NotFound_ReturnsError(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)

	// Act
	found, err := repo.FindByID(nil, customer.NewCustomerID())

	// Assert
	assert.Nil(t, found)
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
}

// Test 5: FindByPhone 成功查找
func TestCustomerRepository_FindByPhone_Success(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)

	c := createTestCustomer(t, "01098765432")
	require.NoError(t, repo.Save(nil, c))

	phone, _ := customer.NewPhoneNumber("01098765432")

	// Act
	found, err := repo.FindByPhone(nil, phone)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, c.CustomerID().String(), found.CustomerID().String())
}

// Test 6: Update 以正確版本成功更新並遞增版本
func TestCustomerRepository_Update_CorrectVersion_Success(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)

	c := createTestCustomer(t, "01012345678")
	require.NoError(t, repo.Save(nil, c))

	// 重新載入並執行命令
	loaded, err := repo.FindByID(nil, c.CustomerID())
	require.NoError(t, err)
	grantPoints(t, loaded, 500)

	// Act
	err = repo.Update(nil, loaded, loaded.Version())

	// Assert
	require.NoError(t, err)

	reloaded, err := repo.FindByID(nil, c.CustomerID())
	require.NoError(t, err)
	assert.Equal(t, 500, reloaded.Points().Value())
	assert.Equal(t, 2, reloaded.Version(), "接受寫入後版本遞增")
	assert.Equal(t, 1, reloaded.Log().Len(), "歷史條目隨聚合持久化")
}

// Test 7: Update 版本過期返回 ErrVersionConflict
func TestCustomerRepository_Update_StaleVersion_ReturnsVersionConflict(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)

	c := createTestCustomer(t, "01012345678")
	require.NoError(t, repo.Save(nil, c))

	// 兩個協作者各自載入版本 1 的快照
	snapshotA, err := repo.FindByID(nil, c.CustomerID())
	require.NoError(t, err)
	snapshotB, err := repo.FindByID(nil, c.CustomerID())
	require.NoError(t, err)

	// 協作者 A 先寫入成功（版本 1 → 2）
	grantPoints(t, snapshotA, 100)
	require.NoError(t, repo.Update(nil, snapshotA, snapshotA.Version()))

	// 協作者 B 攜帶過期版本寫入
	grantPoints(t, snapshotB, 200)

	// Act
	err = repo.Update(nil, snapshotB, snapshotB.Version())

	// Assert
	assert.ErrorIs(t, err, customer.ErrVersionConflict)

	// A 的寫入保留，B 的寫入被拒絕
	reloaded, _ := repo.FindByID(nil, c.CustomerID())
	assert.Equal(t, 100, reloaded.Points().Value())
}

// Test 8: Update 客戶不存在返回 ErrCustomerNotFound
func TestCustomerRepository_Update_NotFound_ReturnsError(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)

	c := createTestCustomer(t, "01012345678")

	// Act（從未保存）
	err := repo.Update(nil, c, c.Version())

	// Assert
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
}

// Test 9: Update 後重新載入保持餘額恆等式
func TestCustomerRepository_Update_BalanceIdentityPreservedAcrossReloads(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)

	c := createTestCustomer(t, "01012345678")
	require.NoError(t, repo.Save(nil, c))

	// 多輪操作，每輪重新載入
	operations := []struct {
		grant  int
		deduct int
	}{
		{grant: 500, deduct: 0},
		{grant: 0, deduct: 120},
		{grant: 30, deduct: 200},
	}

	for _, op := range operations {
		loaded, err := repo.FindByID(nil, c.CustomerID())
		require.NoError(t, err)

		if op.grant > 0 {
			grantPoints(t, loaded, op.grant)
		}
		if op.deduct > 0 {
			amount, _ := customer.NewPointsAmount(op.deduct)
			_, err := loaded.DeductPoints(amount, "خصم")
			require.NoError(t, err)
		}

		require.NoError(t, repo.Update(nil, loaded, loaded.Version()))
	}

	// Act
	final, err := repo.FindByID(nil, c.CustomerID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 530, final.TotalPointsEarned().Value())
	assert.Equal(t, 320, final.TotalPointsUsed().Value())
	assert.Equal(t, 210, final.Points().Value())
	assert.Equal(t, 3, final.Log().Len())
}

// Test 10: 損壞的帳本資料在載入時被拒絕
func TestCustomerRepository_FindByID_CorruptedLedger_ReturnsError(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)

	c := createTestCustomer(t, "01012345678")
	require.NoError(t, repo.Save(nil, c))

	// 直接竄改資料庫，破壞餘額恆等式
	err := db.Model(&CustomerGORM{}).
		Where("customer_id = ?", c.CustomerID().String()).
		Update("points", 999).Error
	require.NoError(t, err)

	// Act
	found, err := repo.FindByID(nil, c.CustomerID())

	// Assert
	assert.Nil(t, found)
	assert.ErrorIs(t, err, customer.ErrCorruptedLedger)
}

// Test 11: Delete 刪除客戶與子表
func TestCustomerRepository_Delete_RemovesAggregate(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)

	c := createTestCustomer(t, "01012345678")
	grantPoints(t, c, 100)
	require.NoError(t, repo.Save(nil, c))

	// Act
	err := repo.Delete(nil, c.CustomerID())

	// Assert
	require.NoError(t, err)

	_, err = repo.FindByID(nil, c.CustomerID())
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)

	var logCount int64
	db.Model(&LogEntryGORM{}).Where("customer_id = ?", c.CustomerID().String()).Count(&logCount)
	assert.Equal(t, int64(0), logCount, "歷史條目一併刪除")
}

// Test 12: Delete 客戶不存在返回 ErrCustomerNotFound
func TestCustomerRepository_Delete_NotFound_ReturnsError(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)

	// Act
	err := repo.Delete(nil, customer.NewCustomerID())

	// Assert
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
}

// Test 13: 印象記錄往返
func TestCustomerRepository_Impressions_RoundTrip(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)

	c := createTestCustomer(t, "01012345678")

	productQuality, _ := customer.NewRating(5)
	branchExperience, _ := customer.NewRating(4)
	impression, err := customer.NewImpression(
		time.Now(),
		"موظف الفرع",
		productQuality,
		"جودة ممتازة",
		branchExperience,
		"",
		customer.DiscoveryChannelInstagram,
		true,
	)
	require.NoError(t, err)
	c.AddImpression(impression)

	require.NoError(t, repo.Save(nil, c))

	// Act
	found, err := repo.FindByID(nil, c.CustomerID())

	// Assert
	require.NoError(t, err)
	impressions := found.Impressions()
	require.Len(t, impressions, 1)
	assert.Equal(t, 5, impressions[0].ProductQualityRating().Value())
	assert.Equal(t, "جودة ممتازة", impressions[0].ProductQualityNotes())
	assert.True(t, impressions[0].IsFirstVisit())
}

// Test 14: 消費統計往返
func TestCustomerRepository_PurchaseStats_RoundTrip(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)

	c := createTestCustomer(t, "01012345678")
	earned, _ := customer.NewPointsAmount(25)
	_, err := c.RecordPurchase("INV-1001", decimal.NewFromInt(250), earned, customer.OrderStatusDelivered, time.Now())
	require.NoError(t, err)

	require.NoError(t, repo.Save(nil, c))

	// Act
	found, err := repo.FindByID(nil, c.CustomerID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, found.PurchaseCount())
	assert.True(t, decimal.NewFromInt(250).Equal(found.TotalPurchases()))
	assert.Equal(t, 25, found.Points().Value())

	_, hasPurchase := found.LastPurchaseDate()
	assert.True(t, hasPurchase)
}
