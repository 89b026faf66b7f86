package postgres

import (
	"context"
	"sort"
	"strings"
	"time"
)

// DefaultHistoryLimit caps ListByVehicle when no limit is given.
const DefaultHistoryLimit = 100

// InsertRecord is one audited construction-state insert.
type InsertRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VehicleID string    `gorm:"index;not null" json:"vehicleId"`
	Owner     string    `gorm:"not null" json:"owner"`
	LeafCount int       `json:"leafCount"`
	Keys      string    `gorm:"type:text" json:"keys"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (InsertRecord) TableName() string {
	return "construction_state_inserts"
}

// NewInsertRecord builds a record for the given leaf keys. Keys are stored
// sorted and comma separated.
func NewInsertRecord(vehicleID, owner string, keys []string) InsertRecord {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	return InsertRecord{
		VehicleID: vehicleID,
		Owner:     owner,
		LeafCount: len(sorted),
		Keys:      strings.Join(sorted, ","),
	}
}

// Ledger persists InsertRecords.
type Ledger struct {
	pg *Postgres
}

// NewLedger migrates the ledger table and returns the ledger.
func NewLedger(pg *Postgres) (*Ledger, error) {
	if err := pg.DB().AutoMigrate(&InsertRecord{}); err != nil {
		return nil, TranslateError(err)
	}
	return &Ledger{pg: pg}, nil
}

// Record stores rec. ID and CreatedAt are filled in by the database.
func (l *Ledger) Record(ctx context.Context, rec *InsertRecord) error {
	return TranslateError(l.pg.DB().WithContext(ctx).Create(rec).Error)
}

// ListByVehicle returns the newest records of a vehicle first. A limit of zero
// or less means DefaultHistoryLimit.
func (l *Ledger) ListByVehicle(ctx context.Context, vehicleID string, limit int) ([]InsertRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	records := make([]InsertRecord, 0)
	err := l.pg.DB().WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	return records, nil
}
