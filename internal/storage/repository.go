package storage

type Repository interface {
	CreateFightRecord(r *FightRecord) error
	GetFightRecordByJoinCode(code string) (*FightRecord, error)
	UpdateFightRecord(r *FightRecord) error
	// ListRecentFights returns finished and abandoned fights, newest first.
	ListRecentFights(limit int) ([]FightRecord, error)
}
