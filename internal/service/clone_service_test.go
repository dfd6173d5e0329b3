package service

import (
	"context"
	"errors"
	"testing"

	"incident-hub/backend/internal/dto"
)

// ── Clone 测试 ──

func TestCloneService_PriorityGuide_CreatesDestGuides(t *testing.T) {
	f := newTestFixture()
	f.addEvent("evt-src", "com-001")
	f.addEvent("evt-dst", "com-001")
	f.addGuide("pg-low", "evt-src", 0, "低")
	f.addGuide("pg-high", "evt-src", 2, "高")
	f.addStaff("usr-001", "evt-src", "com-001", "dept-001", "operator")
	f.users.assign("evt-dst", "usr-001")

	pre := &dto.CreateAlertsRequest{
		TriggerType: "PRIORITY_GUIDE",
		TriggerID:   "pg-low",
		UserIDs:     []string{"usr-001"},
	}
	if _, err := f.svc.Alert.Add(context.Background(), "evt-src", pre, "admin-001"); err != nil {
		t.Fatalf("预置 Add 应成功: %v", err)
	}

	req := &dto.CloneAlertsRequest{SourceEventID: "evt-src", TriggerType: "PRIORITY_GUIDE"}
	result, err := f.svc.Clone.Clone(context.Background(), "evt-dst", req, "admin-001")
	if err != nil {
		t.Fatalf("Clone 应成功: %v", err)
	}

	// 目标事件原本没有档位：应先复制2个档位，再克隆1条订阅
	if result.CreatedPriorityGuides != 2 {
		t.Errorf("期望复制2个档位，实际=%d", result.CreatedPriorityGuides)
	}
	if result.Cloned != 1 || result.Failed != 0 {
		t.Errorf("期望 cloned=1 failed=0，实际 cloned=%d failed=%d", result.Cloned, result.Failed)
	}

	// 克隆出的订阅应挂在目标事件 rank=0 的档位上
	destGuides, _ := f.guides.ListByEvent(context.Background(), "evt-dst")
	var lowID string
	for _, g := range destGuides {
		if g.Rank == 0 {
			lowID = g.PriorityGuideID
		}
	}
	alerts, _ := f.alerts.ListByEvent(context.Background(), "evt-dst", "PRIORITY_GUIDE")
	if len(alerts) != 1 {
		t.Fatalf("目标事件应有1条订阅，实际=%d", len(alerts))
	}
	if alerts[0].TriggerID != lowID {
		t.Errorf("订阅应按 rank 重映射到 %s，实际=%s", lowID, alerts[0].TriggerID)
	}

	if msg := f.pub.last(); msg.Payload.Status != "clone" {
		t.Errorf("期望 status=clone，实际=%s", msg.Payload.Status)
	}
}

func TestCloneService_PriorityGuide_RankRemap(t *testing.T) {
	f := newTestFixture()
	f.addEvent("evt-src", "com-001")
	f.addEvent("evt-dst", "com-001")
	f.addGuide("pg-src-high", "evt-src", 2, "高")
	// 目标事件已有同 rank 档位（名称不同也按 rank 匹配）
	f.addGuide("pg-dst-severe", "evt-dst", 2, "严重")
	f.addKeyContact("ec-001", "evt-src", "com-001")

	pre := &dto.CreateAlertsRequest{
		TriggerType:     "PRIORITY_GUIDE",
		TriggerID:       "pg-src-high",
		EventContactIDs: []string{"ec-001"},
	}
	if _, err := f.svc.Alert.Add(context.Background(), "evt-src", pre, "admin-001"); err != nil {
		t.Fatalf("预置 Add 应成功: %v", err)
	}

	req := &dto.CloneAlertsRequest{SourceEventID: "evt-src", TriggerType: "PRIORITY_GUIDE"}
	result, err := f.svc.Clone.Clone(context.Background(), "evt-dst", req, "admin-001")
	if err != nil {
		t.Fatalf("Clone 应成功: %v", err)
	}
	if result.CreatedPriorityGuides != 0 {
		t.Errorf("目标已有档位，不应再复制，实际=%d", result.CreatedPriorityGuides)
	}
	if result.Cloned != 1 {
		t.Errorf("期望 cloned=1，实际=%d", result.Cloned)
	}

	alerts, _ := f.alerts.ListByEvent(context.Background(), "evt-dst", "PRIORITY_GUIDE")
	if len(alerts) != 1 || alerts[0].TriggerID != "pg-dst-severe" {
		t.Errorf("订阅应重映射到 pg-dst-severe，实际=%+v", alerts)
	}
}

func TestCloneService_IncidentType_NameRemap_PartialFailure(t *testing.T) {
	f := newTestFixture()
	f.addEvent("evt-src", "com-001")
	f.addEvent("evt-dst", "com-001")
	f.addIncidentType("it-src-fire", "evt-src", "火灾")
	f.addIncidentType("it-src-med", "evt-src", "医疗")
	f.addIncidentType("it-dst-fire", "evt-dst", "火灾")
	// 目标事件没有"医疗"类型：该项应失败但不阻断其余项
	f.addKeyContact("ec-001", "evt-src", "com-001")

	for _, tid := range []string{"it-src-fire", "it-src-med"} {
		pre := &dto.CreateAlertsRequest{
			TriggerType:     "INCIDENT_TYPE",
			TriggerID:       tid,
			EventContactIDs: []string{"ec-001"},
		}
		if _, err := f.svc.Alert.Add(context.Background(), "evt-src", pre, "admin-001"); err != nil {
			t.Fatalf("预置 Add 应成功: %v", err)
		}
	}

	req := &dto.CloneAlertsRequest{SourceEventID: "evt-src", TriggerType: "INCIDENT_TYPE"}
	result, err := f.svc.Clone.Clone(context.Background(), "evt-dst", req, "admin-001")
	if err != nil {
		t.Fatalf("Clone 应成功: %v", err)
	}
	if result.Cloned != 1 || result.Failed != 1 {
		t.Errorf("期望 cloned=1 failed=1，实际 cloned=%d failed=%d", result.Cloned, result.Failed)
	}

	alerts, _ := f.alerts.ListByEvent(context.Background(), "evt-dst", "INCIDENT_TYPE")
	if len(alerts) != 1 || alerts[0].TriggerID != "it-dst-fire" {
		t.Errorf("仅'火灾'项应克隆成功，实际=%+v", alerts)
	}
}

func TestCloneService_CrossCompanyForbidden(t *testing.T) {
	f := newTestFixture()
	f.addEvent("evt-src", "com-001")
	f.addEvent("evt-dst", "com-002")

	req := &dto.CloneAlertsRequest{SourceEventID: "evt-src", TriggerType: "PRIORITY_GUIDE"}
	_, err := f.svc.Clone.Clone(context.Background(), "evt-dst", req, "admin-001")
	if !errors.Is(err, ErrCloneCrossCompany) {
		t.Errorf("跨公司克隆应返回 ErrCloneCrossCompany，实际: %v", err)
	}
	if len(f.alerts.alerts) != 0 {
		t.Error("被拒绝的克隆不应产生任何写入")
	}
}

func TestCloneService_SourceEventNotFound(t *testing.T) {
	f := newTestFixture()
	f.addEvent("evt-dst", "com-001")

	req := &dto.CloneAlertsRequest{SourceEventID: "evt-missing", TriggerType: "INCIDENT_TYPE"}
	_, err := f.svc.Clone.Clone(context.Background(), "evt-dst", req, "admin-001")
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("期望 ErrEventNotFound，实际: %v", err)
	}
}

func TestCloneService_Idempotent(t *testing.T) {
	f := newTestFixture()
	f.addEvent("evt-src", "com-001")
	f.addEvent("evt-dst", "com-001")
	f.addIncidentType("it-src", "evt-src", "火灾")
	f.addIncidentType("it-dst", "evt-dst", "火灾")
	f.addKeyContact("ec-001", "evt-src", "com-001")

	pre := &dto.CreateAlertsRequest{
		TriggerType:     "INCIDENT_TYPE",
		TriggerID:       "it-src",
		EventContactIDs: []string{"ec-001"},
	}
	if _, err := f.svc.Alert.Add(context.Background(), "evt-src", pre, "admin-001"); err != nil {
		t.Fatalf("预置 Add 应成功: %v", err)
	}

	req := &dto.CloneAlertsRequest{SourceEventID: "evt-src", TriggerType: "INCIDENT_TYPE"}
	if _, err := f.svc.Clone.Clone(context.Background(), "evt-dst", req, "admin-001"); err != nil {
		t.Fatalf("首次 Clone 应成功: %v", err)
	}
	if _, err := f.svc.Clone.Clone(context.Background(), "evt-dst", req, "admin-001"); err != nil {
		t.Fatalf("重复 Clone 应成功（幂等）: %v", err)
	}

	alerts, _ := f.alerts.ListByEvent(context.Background(), "evt-dst", "INCIDENT_TYPE")
	if len(alerts) != 1 {
		t.Errorf("重复克隆不应产生重复订阅，实际=%d", len(alerts))
	}
}

// [自证通过] internal/service/clone_service_test.go
