package customer

import (
	"time"

	"github.com/google/uuid"
)

// ===========================
// DiscoveryChannel 得知渠道
// ===========================

// DiscoveryChannel 客戶得知品牌的渠道
type DiscoveryChannel string

// 得知渠道常量
const (
	DiscoveryChannelFacebook  DiscoveryChannel = "Facebook"
	DiscoveryChannelInstagram DiscoveryChannel = "Instagram"
	DiscoveryChannelGoogle    DiscoveryChannel = "Google"
	DiscoveryChannelFriends   DiscoveryChannel = "Friends"
	DiscoveryChannelStreet    DiscoveryChannel = "Street"
	DiscoveryChannelOther     DiscoveryChannel = "Other"
)

// ParseDiscoveryChannel 從字串解析得知渠道
func ParseDiscoveryChannel(s string) (DiscoveryChannel, error) {
	switch DiscoveryChannel(s) {
	case DiscoveryChannelFacebook, DiscoveryChannelInstagram, DiscoveryChannelGoogle,
		DiscoveryChannelFriends, DiscoveryChannelStreet, DiscoveryChannelOther:
		return DiscoveryChannel(s), nil
	default:
		return "", ErrValidation.WithContext(
			"field", "discoveryChannel",
			"value", s,
		)
	}
}

// String 轉換為字串表示
func (c DiscoveryChannel) String() string {
	return string(c)
}

// ===========================
// Impression 客戶印象
// ===========================

// Impression 客戶印象記錄（值對象）
//
// 業務規則：
// - 由門市人員在服務後記錄，一經寫入不可修改
// - 與歷史記錄相同採 append-only，只在客戶整筆刪除時一併消失
type Impression struct {
	id                     string
	date                   time.Time
	recordedBy             string
	productQualityRating   Rating
	productQualityNotes    string
	branchExperienceRating Rating
	branchExperienceNotes  string
	discoveryChannel       DiscoveryChannel
	isFirstVisit           bool
}

// NewImpression 建構函數
//
// 業務規則：
// - recordedBy 不能為空（審計要求）
// - 兩項評分已由 Rating 值對象保證在 1-5 之間
func NewImpression(
	date time.Time,
	recordedBy string,
	productQualityRating Rating,
	productQualityNotes string,
	branchExperienceRating Rating,
	branchExperienceNotes string,
	discoveryChannel DiscoveryChannel,
	isFirstVisit bool,
) (Impression, error) {
	if recordedBy == "" {
		return Impression{}, ErrValidation.WithContext(
			"field", "recordedBy",
			"reason", "recordedBy cannot be empty",
		)
	}

	return Impression{
		id:                     uuid.New().String(),
		date:                   date,
		recordedBy:             recordedBy,
		productQualityRating:   productQualityRating,
		productQualityNotes:    productQualityNotes,
		branchExperienceRating: branchExperienceRating,
		branchExperienceNotes:  branchExperienceNotes,
		discoveryChannel:       discoveryChannel,
		isFirstVisit:           isFirstVisit,
	}, nil
}

// ReconstructImpression 從持久化存儲重建印象記錄
func ReconstructImpression(
	id string,
	date time.Time,
	recordedBy string,
	productQualityRating Rating,
	productQualityNotes string,
	branchExperienceRating Rating,
	branchExperienceNotes string,
	discoveryChannel DiscoveryChannel,
	isFirstVisit bool,
) Impression {
	return Impression{
		id:                     id,
		date:                   date,
		recordedBy:             recordedBy,
		productQualityRating:   productQualityRating,
		productQualityNotes:    productQualityNotes,
		branchExperienceRating: branchExperienceRating,
		branchExperienceNotes:  branchExperienceNotes,
		discoveryChannel:       discoveryChannel,
		isFirstVisit:           isFirstVisit,
	}
}

// ID 獲取印象記錄 ID
func (i Impression) ID() string {
	return i.id
}

// Date 獲取記錄時間
func (i Impression) Date() time.Time {
	return i.date
}

// RecordedBy 獲取記錄人員
func (i Impression) RecordedBy() string {
	return i.recordedBy
}

// ProductQualityRating 獲取產品品質評分
func (i Impression) ProductQualityRating() Rating {
	return i.productQualityRating
}

// ProductQualityNotes 獲取產品品質備註
func (i Impression) ProductQualityNotes() string {
	return i.productQualityNotes
}

// BranchExperienceRating 獲取門市體驗評分
func (i Impression) BranchExperienceRating() Rating {
	return i.branchExperienceRating
}

// BranchExperienceNotes 獲取門市體驗備註
func (i Impression) BranchExperienceNotes() string {
	return i.branchExperienceNotes
}

// DiscoveryChannel 獲取得知渠道
func (i Impression) DiscoveryChannel() DiscoveryChannel {
	return i.discoveryChannel
}

// IsFirstVisit 是否首次來店
func (i Impression) IsFirstVisit() bool {
	return i.isFirstVisit
}
