package model

import (
	"incident-hub/backend/pkg/errors"
)

// ── 触发器类型 ──

// TriggerType 告警订阅的触发器类型（多态关联的判别符）
type TriggerType string

const (
	TriggerPriorityGuide TriggerType = "PRIORITY_GUIDE"
	TriggerIncidentType  TriggerType = "INCIDENT_TYPE"
)

// Valid 检查触发器类型取值是否合法
func (t TriggerType) Valid() bool {
	return t == TriggerPriorityGuide || t == TriggerIncidentType
}

// ── 订阅主体（标签联合） ──

// SubjectKind 订阅主体类别
type SubjectKind string

const (
	SubjectStaff      SubjectKind = "STAFF"
	SubjectKeyContact SubjectKind = "KEY_CONTACT"
)

// Subject 订阅主体 — 内部员工 Staff(user_id) 与外部关键联系人 KeyContact(event_contact_id) 二选一。
// 只能通过构造函数创建，保证"恰好填充一个"在进入存储层之前成立。
type Subject struct {
	kind SubjectKind
	id   string
}

// NewStaffSubject 创建员工主体
func NewStaffSubject(userID string) (Subject, error) {
	if userID == "" {
		return Subject{}, errors.ErrInvalidSubject
	}
	return Subject{kind: SubjectStaff, id: userID}, nil
}

// NewKeyContactSubject 创建关键联系人主体
func NewKeyContactSubject(contactID string) (Subject, error) {
	if contactID == "" {
		return Subject{}, errors.ErrInvalidSubject
	}
	return Subject{kind: SubjectKeyContact, id: contactID}, nil
}

// SubjectFromColumns 从两个可空外键列还原主体。
// 两者都填或都空均视为非法（原始数据损坏或请求畸形）。
func SubjectFromColumns(userID, contactID *string) (Subject, error) {
	switch {
	case userID != nil && *userID != "" && (contactID == nil || *contactID == ""):
		return Subject{kind: SubjectStaff, id: *userID}, nil
	case contactID != nil && *contactID != "" && (userID == nil || *userID == ""):
		return Subject{kind: SubjectKeyContact, id: *contactID}, nil
	default:
		return Subject{}, errors.ErrInvalidSubject
	}
}

// Kind 返回主体类别
func (s Subject) Kind() SubjectKind { return s.kind }

// ID 返回主体标识（user_id 或 event_contact_id）
func (s Subject) ID() string { return s.id }

// Columns 降解为数据库的两个可空列
func (s Subject) Columns() (userID, contactID *string) {
	id := s.id
	if s.kind == SubjectStaff {
		return &id, nil
	}
	return nil, &id
}

// Key 规范化去重键："STAFF:<id>" / "KEY_CONTACT:<id>"
func (s Subject) Key() string {
	return string(s.kind) + ":" + s.id
}

// ── 告警订阅 ──

// Alert 告警订阅表 — 对应 alerts
// 唯一性约束：(event_id, trigger_type, trigger_id, 主体) 不允许重复，
// 由两条部分唯一索引兜底（见 migrations）。
type Alert struct {
	AlertID        string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"alert_id"`
	EventID        string      `gorm:"type:uuid;not null;index"                       json:"event_id"`
	TriggerType    TriggerType `gorm:"type:varchar(20);not null"                      json:"trigger_type"`
	TriggerID      string      `gorm:"type:uuid;not null"                             json:"trigger_id"`
	UserID         *string     `gorm:"type:uuid"                                      json:"user_id,omitempty"`
	EventContactID *string     `gorm:"type:uuid"                                      json:"event_contact_id,omitempty"`
	SMSAlert       bool        `gorm:"not null;default:false"                         json:"sms_alert"`
	EmailAlert     bool        `gorm:"not null;default:false"                         json:"email_alert"`
	SoftDeleteModel

	// 关联（按需 Preload）
	User         *User         `gorm:"foreignKey:UserID;references:UserID"                 json:"user,omitempty"`
	EventContact *EventContact `gorm:"foreignKey:EventContactID;references:EventContactID" json:"event_contact,omitempty"`
}

// TableName 指定表名
func (Alert) TableName() string { return "alerts" }

// Subject 还原该行的订阅主体
func (a *Alert) Subject() (Subject, error) {
	return SubjectFromColumns(a.UserID, a.EventContactID)
}

// SetSubject 写入主体对应的外键列
func (a *Alert) SetSubject(s Subject) {
	a.UserID, a.EventContactID = s.Columns()
}

// [自证通过] internal/model/alert.go
