package customer

// ===========================
// Classification 客戶分級
// ===========================

// Classification 客戶分級（由消費門檻外部計算）
//
// 業務規則：
// - 分級由外部政策根據消費門檻計算（門檻與重算時機不屬於此核心）
// - 此核心只負責驗證與存取，永遠不會重新推導分級
type Classification string

// 客戶分級常量
const (
	ClassificationBronze   Classification = "Bronze"
	ClassificationSilver   Classification = "Silver"
	ClassificationGold     Classification = "Gold"
	ClassificationPlatinum Classification = "Platinum"
)

// ParseClassification 從字串解析客戶分級
//
// 返回：
//   Classification - 解析成功的分級
//   error - 未知分級（返回 ErrInvalidClassification）
func ParseClassification(s string) (Classification, error) {
	switch Classification(s) {
	case ClassificationBronze, ClassificationSilver, ClassificationGold, ClassificationPlatinum:
		return Classification(s), nil
	default:
		return "", ErrInvalidClassification.WithContext("value", s)
	}
}

// String 轉換為字串表示
func (c Classification) String() string {
	return string(c)
}

// ===========================
// CustomerType 客戶類型
// ===========================

// CustomerType 客戶類型（一般／企業）
type CustomerType string

// 客戶類型常量
const (
	CustomerTypeNormal    CustomerType = "Normal"
	CustomerTypeCorporate CustomerType = "Corporate"
)

// ParseCustomerType 從字串解析客戶類型
func ParseCustomerType(s string) (CustomerType, error) {
	switch CustomerType(s) {
	case CustomerTypeNormal, CustomerTypeCorporate:
		return CustomerType(s), nil
	default:
		return "", ErrValidation.WithContext(
			"field", "customerType",
			"value", s,
		)
	}
}

// String 轉換為字串表示
func (t CustomerType) String() string {
	return string(t)
}
