package customer

import (
	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/retailops/retail_crm/src/internal/domain/shared"
)

// ===========================
// Mock CustomerRepository
// ===========================

type MockCustomerRepository struct {
	customers map[string]*customer.Customer

	SaveCallCount   int
	UpdateCallCount int

	// UpdateErr 注入 Update 錯誤（模擬版本衝突等）
	UpdateErr error
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[string]*customer.Customer),
	}
}

// seed 預置客戶（模擬資料庫中已存在）
func (m *MockCustomerRepository) seed(c *customer.Customer) {
	m.customers[c.CustomerID().String()] = c
}

func (m *MockCustomerRepository) Save(ctx shared.TransactionContext, c *customer.Customer) error {
	m.SaveCallCount++

	// 模擬手機號碼唯一約束
	for _, existing := range m.customers {
		if existing.Phone().Equals(c.Phone()) {
			return customer.ErrCustomerAlreadyExists
		}
	}

	m.customers[c.CustomerID().String()] = c
	return nil
}

func (m *MockCustomerRepository) FindByID(ctx shared.TransactionContext, customerID customer.CustomerID) (*customer.Customer, error) {
	if c, exists := m.customers[customerID.String()]; exists {
		return c, nil
	}
	return nil, customer.ErrCustomerNotFound
}

func (m *MockCustomerRepository) FindByPhone(ctx shared.TransactionContext, phone customer.PhoneNumber) (*customer.Customer, error) {
	for _, c := range m.customers {
		if c.Phone().Equals(phone) {
			return c, nil
		}
	}
	return nil, customer.ErrCustomerNotFound
}

func (m *MockCustomerRepository) Update(ctx shared.TransactionContext, c *customer.Customer, expectedVersion int) error {
	m.UpdateCallCount++

	if m.UpdateErr != nil {
		return m.UpdateErr
	}

	if _, exists := m.customers[c.CustomerID().String()]; !exists {
		return customer.ErrCustomerNotFound
	}

	m.customers[c.CustomerID().String()] = c
	return nil
}

func (m *MockCustomerRepository) Delete(ctx shared.TransactionContext, customerID customer.CustomerID) error {
	if _, exists := m.customers[customerID.String()]; !exists {
		return customer.ErrCustomerNotFound
	}
	delete(m.customers, customerID.String())
	return nil
}

// ===========================
// Mock TransactionManager
// ===========================

type MockTransactionManager struct {
	InTransactionCallCount int
	ShouldFail             bool
	FailError              error
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	m.InTransactionCallCount++

	if m.ShouldFail {
		return m.FailError
	}

	// nil context 對 mock 來說足夠（Repository mock 不使用事務）
	var ctx shared.TransactionContext
	return fn(ctx)
}
