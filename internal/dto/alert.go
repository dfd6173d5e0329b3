package dto

// ── 告警订阅模块 DTO ──

// CreateAlertsRequest 为单个触发器批量创建订阅请求
// user_ids 与 event_contact_ids 必须恰好提供一组（Service 层校验）。
// remove = true 时语义反转：删除该主体集合在此触发器上的订阅。
type CreateAlertsRequest struct {
	TriggerType     string   `json:"trigger_type"      binding:"required"`
	TriggerID       string   `json:"trigger_id"        binding:"required,uuid"`
	UserIDs         []string `json:"user_ids"          binding:"omitempty,dive,uuid"`
	EventContactIDs []string `json:"event_contact_ids" binding:"omitempty,dive,uuid"`
	SMSAlert        bool     `json:"sms_alert"`
	EmailAlert      bool     `json:"email_alert"`
	Remove          bool     `json:"remove"`
}

// BulkCreateAlertsRequest 笛卡尔积批量创建请求：trigger_ids × 主体集合
type BulkCreateAlertsRequest struct {
	TriggerType     string   `json:"trigger_type"      binding:"required"`
	TriggerIDs      []string `json:"trigger_ids"       binding:"required,min=1,dive,uuid"`
	UserIDs         []string `json:"user_ids"          binding:"omitempty,dive,uuid"`
	EventContactIDs []string `json:"event_contact_ids" binding:"omitempty,dive,uuid"`
	SMSAlert        bool     `json:"sms_alert"`
	EmailAlert      bool     `json:"email_alert"`
}

// ReassignAlertsRequest 破坏性重指派请求：
// 先删除该主体在此触发器类型下的全部订阅，再按 trigger_ids 重建。
// trigger_ids 为空表示清空该主体的订阅。
type ReassignAlertsRequest struct {
	TriggerType    string   `json:"trigger_type"     binding:"required"`
	UserID         *string  `json:"user_id"          binding:"omitempty,uuid"`
	EventContactID *string  `json:"event_contact_id" binding:"omitempty,uuid"`
	TriggerIDs     []string `json:"trigger_ids"      binding:"omitempty,dive,uuid"`
	SMSAlert       bool     `json:"sms_alert"`
	EmailAlert     bool     `json:"email_alert"`
}

// SubscribeAllRequest 单主体"订阅全部已配置触发器"便捷请求
type SubscribeAllRequest struct {
	TriggerType    string  `json:"trigger_type"     binding:"required"`
	UserID         *string `json:"user_id"          binding:"omitempty,uuid"`
	EventContactID *string `json:"event_contact_id" binding:"omitempty,uuid"`
	SMSAlert       bool    `json:"sms_alert"`
	EmailAlert     bool    `json:"email_alert"`
}

// UpdateAlertRequest 更新单条订阅请求（翻转通知开关或改指触发器）
type UpdateAlertRequest struct {
	SMSAlert   *bool   `json:"sms_alert"`
	EmailAlert *bool   `json:"email_alert"`
	TriggerID  *string `json:"trigger_id" binding:"omitempty,uuid"`
}

// RemoveBySubjectRequest 按主体删除请求
type RemoveBySubjectRequest struct {
	TriggerType    string  `json:"trigger_type"     binding:"required"`
	UserID         *string `json:"user_id"          binding:"omitempty,uuid"`
	EventContactID *string `json:"event_contact_id" binding:"omitempty,uuid"`
}

// AlertResponse 订阅信息响应
type AlertResponse struct {
	ID             string  `json:"id"`
	EventID        string  `json:"event_id"`
	TriggerType    string  `json:"trigger_type"`
	TriggerID      string  `json:"trigger_id"`
	UserID         *string `json:"user_id,omitempty"`
	EventContactID *string `json:"event_contact_id,omitempty"`
	SMSAlert       bool    `json:"sms_alert"`
	EmailAlert     bool    `json:"email_alert"`
	CreatedAt      string  `json:"created_at"`
}

// RemovedResponse 删除操作响应
type RemovedResponse struct {
	Removed int64 `json:"removed"`
}

// [自证通过] internal/dto/alert.go
