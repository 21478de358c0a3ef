package storage

import (
	"time"

	"gorm.io/gorm"
)

// Fight record lifecycle states.
const (
	FightStatusInProgress = "in_progress"
	FightStatusFinished   = "finished"
	FightStatusAbandoned  = "abandoned"
)

// FightRecord is the persisted outcome journal for one fight. It carries no
// player progression; it exists for history views and for diagnosing softlock
// recoveries in the field.
type FightRecord struct {
	gorm.Model
	JoinCode           string    `json:"join_code" gorm:"uniqueIndex"`
	ClientKey          string    `json:"-" gorm:"index"`
	Status             string    `json:"status"`
	Winner             string    `json:"winner"`
	Rounds             int       `json:"rounds"`
	SoftlockRecoveries int       `json:"softlock_recoveries"`
	EndedAt            time.Time `json:"ended_at"`
}

// TableName keeps the persisted table name explicit.
func (FightRecord) TableName() string { return "fight_records" }
