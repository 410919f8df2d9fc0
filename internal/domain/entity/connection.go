package entity

import "time"

// ProviderPatientConnection is the authorization edge between a provider and
// a patient. At most one row exists per (provider, patient) pair.
type ProviderPatientConnection struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProviderID int       `gorm:"not null;uniqueIndex:idx_provider_patient" json:"provider_id"`
	PatientID  int       `gorm:"not null;uniqueIndex:idx_provider_patient" json:"patient_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Provider Provider `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	Patient  Patient  `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (ProviderPatientConnection) TableName() string {
	return "provider_patient_connections"
}
