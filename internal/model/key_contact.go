package model

// InfoType 事件联系人的信息类型判别符
const (
	InfoTypeKeyContact = "key_contact"
	InfoTypeGeneral    = "general"
)

// EventContact 事件外部联系人表 — 对应 event_contacts
// info_type = key_contact 的行才是告警订阅意义上的"关键联系人"。
type EventContact struct {
	EventContactID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"event_contact_id"`
	EventID        string `gorm:"type:uuid;not null;index"                        json:"event_id"`
	CompanyID      string `gorm:"type:uuid;not null"                              json:"company_id"`
	Name           string `gorm:"type:varchar(100);not null"                      json:"name"`
	Title          string `gorm:"type:varchar(100)"                               json:"title"`
	ContactPhone   string `gorm:"type:varchar(30)"                                json:"contact_phone"`
	ContactEmail   string `gorm:"type:varchar(255)"                               json:"contact_email"`
	InfoType       string `gorm:"type:varchar(30);not null;default:'key_contact'" json:"info_type"`
	SoftDeleteModel
}

// TableName 指定表名
func (EventContact) TableName() string { return "event_contacts" }

// [自证通过] internal/model/key_contact.go
