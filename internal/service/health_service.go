package service

import (
	"time"

	"gorm.io/gorm"
)

type HealthStatus struct {
	Service        string
	Database       string
	Healthy        bool
	ActiveSearches int
	Checked        time.Time
}

type HealthService interface {
	Check() *HealthStatus
}

type healthService struct {
	name   string
	ping   func() (string, bool)
	active func() int
}

// NewHealthService reports database reachability and, when active is not
// nil, the number of searches currently running.
func NewHealthService(db *gorm.DB, name string, active func() int) HealthService {
	if active == nil {
		active = func() int { return 0 }
	}
	return &healthService{
		name:   name,
		active: active,
		ping: func() (string, bool) {
			if db == nil {
				return "disconnected", false
			}
			sqlDB, err := db.DB()
			if err != nil {
				return "unhealthy", false
			}
			if pingErr := sqlDB.Ping(); pingErr != nil {
				return "unhealthy", false
			}
			return "healthy", true
		},
	}
}

func (h *healthService) Check() *HealthStatus {
	dbStatus, ok := h.ping()
	return &HealthStatus{
		Service:        h.name,
		Database:       dbStatus,
		Healthy:        ok,
		ActiveSearches: h.active(),
		Checked:        time.Now().UTC(),
	}
}
