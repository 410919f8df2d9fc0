package entity

import "time"

// Recording is an uploaded audio file plus its metadata. The stored file and
// the row share a lifecycle: deleting the row removes the file.
type Recording struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	FilePath    string    `gorm:"type:text;not null" json:"file_path"`
	FileSize    int64     `gorm:"not null" json:"file_size"`
	ContentType string    `gorm:"type:varchar(100);not null" json:"content_type"`
	Duration    float64   `gorm:"default:0" json:"duration"`
	PatientID   *int      `gorm:"index" json:"patient_id,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Recording) TableName() string {
	return "recordings"
}
