// Package storage persists scan sightings in SQLite through GORM.
package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/lcalzada-xor/wland/internal/core/domain"
	"github.com/lcalzada-xor/wland/internal/core/ports"
)

// SightingModel is the GORM model for one observed BSS, keyed by BSSID.
// Duplicates across probe responses collapse into a sighting counter; the
// scan result stream itself is never deduplicated.
type SightingModel struct {
	BSSID      string `gorm:"primaryKey"`
	SSID       string `gorm:"index"`
	Channel    int
	RSSI       int
	AuthSuites uint8
	Ciphers    uint8
	FirstSeen  time.Time
	LastSeen   time.Time
	Sightings  int
}

// SurveyStore implements ports.SurveyRecorder on SQLite.
type SurveyStore struct {
	db *gorm.DB
}

var _ ports.SurveyRecorder = (*SurveyStore)(nil)

// NewSurveyStore opens (or creates) the database and migrates the schema.
func NewSurveyStore(path string) (*SurveyStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening survey db: %w", err)
	}
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, fmt.Errorf("installing gorm tracing: %w", err)
	}
	if err := db.AutoMigrate(&SightingModel{}); err != nil {
		return nil, fmt.Errorf("migrating survey schema: %w", err)
	}
	return &SurveyStore{db: db}, nil
}

// RecordSighting upserts one BSS observation.
func (s *SurveyStore) RecordSighting(bss domain.BSSDescriptor) error {
	now := time.Now()

	var m SightingModel
	err := s.db.Where("bss_id = ?", bss.BSSID.String()).First(&m).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		m = SightingModel{
			BSSID:      bss.BSSID.String(),
			SSID:       string(bss.SSID),
			Channel:    int(bss.Channel),
			RSSI:       int(bss.RSSI),
			AuthSuites: uint8(bss.AuthenticationSuites),
			Ciphers:    uint8(bss.UnicastCiphers),
			FirstSeen:  now,
			LastSeen:   now,
			Sightings:  1,
		}
		return s.db.Create(&m).Error
	case err != nil:
		return err
	}

	m.SSID = string(bss.SSID)
	m.Channel = int(bss.Channel)
	m.RSSI = int(bss.RSSI)
	m.AuthSuites = uint8(bss.AuthenticationSuites)
	m.Ciphers = uint8(bss.UnicastCiphers)
	m.LastSeen = now
	m.Sightings++
	return s.db.Save(&m).Error
}

// RecentSightings returns the most recently seen BSSs, newest first.
func (s *SurveyStore) RecentSightings(limit int) ([]SightingModel, error) {
	var out []SightingModel
	err := s.db.Order("last_seen desc").Limit(limit).Find(&out).Error
	return out, err
}

// Close releases the underlying connection.
func (s *SurveyStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
