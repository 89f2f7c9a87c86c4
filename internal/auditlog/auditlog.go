// Package auditlog persists a thin record of each detection for operator
// debugging. It is an expansion beyond the core detection engine: the
// engine itself stays stateless, and this package is an optional sink the
// HTTP surface can write to.
package auditlog

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"uadetect/internal/pkg/useragent"
)

// Entry is one recorded detection.
type Entry struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	UserAgent     string `gorm:"index;not null"`
	BotName       string `gorm:"index"`
	OsName        string `gorm:"index"`
	OsVersion     string
	ClientKind    string `gorm:"index"`
	ClientName    string `gorm:"index"`
	ClientVersion string
	DeviceKind    string `gorm:"index"`
	DeviceBrand   string `gorm:"index"`
	DeviceModel   string
	CreatedAt     time.Time `gorm:"index;not null"`
}

// Log wraps a gorm connection dedicated to the audit table.
type Log struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// Open opens (creating if necessary) the sqlite database at path and
// migrates the audit table.
func Open(path string, log *logrus.Logger) (*Log, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	db.Exec("PRAGMA journal_mode = WAL")

	if err := db.AutoMigrate(&Entry{}); err != nil {
		log.WithError(err).Error("failed to auto-migrate audit log database")
		return nil, err
	}

	log.Infof("audit log database ready at %s", path)
	return &Log{db: db, logger: log}, nil
}

// Record stores a projection of det keyed by the input user agent.
func (l *Log) Record(ua string, det useragent.Detection) error {
	entry := Entry{
		UserAgent: ua,
		CreatedAt: time.Now().UTC(),
	}
	if det.Bot != nil {
		entry.BotName = det.Bot.Name
	}
	if det.Os != nil {
		entry.OsName = det.Os.Name
		entry.OsVersion = det.Os.Version
	}
	if det.Client != nil {
		entry.ClientKind = det.Client.Kind.String()
		entry.ClientName = det.Client.Name
		entry.ClientVersion = det.Client.Version
	}
	if det.Device != nil {
		entry.DeviceBrand = det.Device.Brand
		entry.DeviceModel = det.Device.Model
		if det.Device.Kind != nil {
			entry.DeviceKind = det.Device.Kind.String()
		}
	}
	return l.db.Create(&entry).Error
}

// Close releases the underlying connection.
func (l *Log) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
