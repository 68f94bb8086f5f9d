// Package buildlog persists one row per compile attempt so companion
// tooling (cmd/emgctl history) can list past builds. The core driver
// never imports this package: a bare `emergent` invocation stays pure
// file I/O.
package buildlog

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Record is one compile attempt.
type Record struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	SourcePath  string `gorm:"index" json:"source_path"`
	SourceHash  string `gorm:"index" json:"source_hash"`
	Success     bool   `json:"success"`
	ErrorCount  int    `json:"error_count"`
	EmittedPath string `json:"emitted_path"`
	CompiledAt  int64  `json:"compiled_at"`
}

// Log is a handle to the build-history database.
type Log struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the sqlite database at dbPath and
// migrates the Record table.
func Open(dbPath string) (*Log, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}
	return &Log{db: db}, nil
}

// Append records one compile attempt. A non-zero CompiledAt is stored
// as given; a zero CompiledAt is replaced with the current Unix time.
func (l *Log) Append(r Record) error {
	if r.CompiledAt == 0 {
		r.CompiledAt = time.Now().Unix()
	}
	return l.db.Create(&r).Error
}

// Recent returns the n most recently compiled rows, newest first.
func (l *Log) Recent(n int) ([]Record, error) {
	var records []Record
	err := l.db.Order("compiled_at desc").Limit(n).Find(&records).Error
	return records, err
}

// Close releases the underlying database connection.
func (l *Log) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
