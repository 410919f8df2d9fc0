package entity

import (
	"time"

	"github.com/google/uuid"
)

// Provider represents provider-specific profile data, 1:1 with a User
type Provider struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FirstName   string    `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName    string    `gorm:"type:varchar(255);not null" json:"last_name"`
	PhoneNumber string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Email       string    `gorm:"type:varchar(255);not null" json:"email"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User        User                        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Surveys     []Survey                    `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"surveys,omitempty"`
	Requests    []RecordingRequest          `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"requests,omitempty"`
	Connections []ProviderPatientConnection `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"connections,omitempty"`
}

func (Provider) TableName() string {
	return "providers"
}
