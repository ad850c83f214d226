package service

import (
	"database/sql"
	"strconv"

	"github.com/bafang/portfolio-tracker/internal/database"
	"github.com/bafang/portfolio-tracker/internal/model"
)

// SystemService reports application health and version information.
type SystemService struct {
	db         *sql.DB
	appVersion string
}

// NewSystemService creates a new SystemService.
func NewSystemService(db *sql.DB, appVersion string) *SystemService {
	return &SystemService{db: db, appVersion: appVersion}
}

// Version returns the application version and the current schema
// migration version.
func (s *SystemService) Version() model.VersionInfo {
	info := model.VersionInfo{AppVersion: s.appVersion}
	if v, err := database.Version(s.db); err == nil {
		info.DbVersion = strconv.FormatInt(v, 10)
	}
	return info
}

// Health reports whether the database is reachable.
func (s *SystemService) Health() error {
	return database.HealthCheck(s.db)
}
