package models

// User is the owner of financial records. Users are created out-of-band and
// never modified by the ingest pipeline.
type User struct {
	ID   uint   `gorm:"column:user_id;primaryKey" json:"user_id"`
	Name string `gorm:"size:255;not null" json:"name"`
}
