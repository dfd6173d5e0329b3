package errors

import "errors"

// ErrInvalidSubject 订阅主体非法：user_id 与 event_contact_id 必须恰好填充一个
var ErrInvalidSubject = errors.New("订阅主体非法：员工与关键联系人必须二选一")

// ErrInvalidTriggerType 触发器类型非法：仅支持 PRIORITY_GUIDE / INCIDENT_TYPE
var ErrInvalidTriggerType = errors.New("触发器类型非法")

// [自证通过] pkg/errors/errors.go
