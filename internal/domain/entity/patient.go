package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents patient-specific profile data, 1:1 with a User
type Patient struct {
	ID             int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FirstName      string    `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName       string    `gorm:"type:varchar(255);not null" json:"last_name"`
	Age            int       `gorm:"not null" json:"age"`
	MedicalHistory string    `gorm:"type:text" json:"medical_history,omitempty"`
	Address        string    `gorm:"type:text" json:"address,omitempty"`
	PhoneNumber    string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User        User                        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Recordings  []Recording                 `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"recordings,omitempty"`
	Surveys     []Survey                    `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"surveys,omitempty"`
	Requests    []RecordingRequest          `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"requests,omitempty"`
	Connections []ProviderPatientConnection `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"connections,omitempty"`
	Signature   *Signature                  `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"signature,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
