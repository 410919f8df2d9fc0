package entity

import "time"

// Signature is the single per-patient record of informed-consent
// acknowledgment. The unique index on PatientID enforces the 1:1 relation.
type Signature struct {
	ID               int       `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID        *int      `gorm:"uniqueIndex" json:"patient_id,omitempty"`
	IsChecked        bool      `gorm:"not null;default:false" json:"is_checked"`
	DigitalSignature string    `gorm:"type:varchar(200);not null" json:"digital_signature"`
	Date             time.Time `gorm:"type:date;not null" json:"date"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Signature) TableName() string {
	return "signatures"
}
