package storage

import (
	"errors"

	"gorm.io/gorm"
)

// SQLiteRepository implements Repository on a GORM SQLite handle.
type SQLiteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) CreateFightRecord(rec *FightRecord) error {
	return r.db.Create(rec).Error
}

func (r *SQLiteRepository) GetFightRecordByJoinCode(code string) (*FightRecord, error) {
	var rec FightRecord
	if err := r.db.Where("join_code = ?", code).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *SQLiteRepository) UpdateFightRecord(rec *FightRecord) error {
	return r.db.Save(rec).Error
}

func (r *SQLiteRepository) ListRecentFights(limit int) ([]FightRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var recs []FightRecord
	err := r.db.
		Where("status IN ?", []string{FightStatusFinished, FightStatusAbandoned}).
		Order("ended_at DESC").
		Limit(limit).
		Find(&recs).Error
	return recs, err
}
