package entity

import "time"

// SurveyStatus represents the lifecycle state of a survey
type SurveyStatus string

const (
	SurveyStatusSent      SurveyStatus = "sent"
	SurveyStatusCompleted SurveyStatus = "completed"
)

// Survey is a provider-issued bundle of question instances awaiting patient
// answers. Created in "sent" with blank response rows; completes exactly once.
type Survey struct {
	ID           int          `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string       `gorm:"type:varchar(255);not null" json:"title"`
	IssueDate    time.Time    `gorm:"autoCreateTime" json:"issue_date"`
	ResponseDate *time.Time   `json:"response_date,omitempty"`
	Status       SurveyStatus `gorm:"type:varchar(10);not null;default:'sent';index" json:"status"`
	PatientID    int          `gorm:"not null;index" json:"patient_id"`
	ProviderID   int          `gorm:"not null;index" json:"provider_id"`

	// Relationships
	Patient       Patient                  `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Provider      Provider                 `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	OpenResponses []OpenQuestionResponse   `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"open_responses,omitempty"`
	MCResponses   []MultipleChoiceResponse `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"mc_responses,omitempty"`
}

func (Survey) TableName() string {
	return "surveys"
}

// IsCompleted checks if the survey has been submitted
func (s *Survey) IsCompleted() bool {
	return s.Status == SurveyStatusCompleted
}

// Complete marks the survey completed and stamps the response date
func (s *Survey) Complete(at time.Time) {
	s.Status = SurveyStatusCompleted
	s.ResponseDate = &at
}

// OpenQuestionResponse is a child row of a survey holding the free-text answer
type OpenQuestionResponse struct {
	ID         int    `gorm:"primaryKey;autoIncrement" json:"id"`
	SurveyID   int    `gorm:"not null;index" json:"survey_id"`
	QuestionID int    `gorm:"not null;index" json:"question_id"`
	Response   string `gorm:"type:varchar(255)" json:"response"`

	// Relationships
	Question OpenQuestion `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (OpenQuestionResponse) TableName() string {
	return "open_question_responses"
}

// MultipleChoiceResponse is a child row of a survey holding the selected
// option, if any. The selected option must belong to the referenced question;
// the survey usecase validates this before storing.
type MultipleChoiceResponse struct {
	ID               int  `gorm:"primaryKey;autoIncrement" json:"id"`
	SurveyID         int  `gorm:"not null;index" json:"survey_id"`
	QuestionID       int  `gorm:"not null;index" json:"question_id"`
	SelectedOptionID *int `json:"selected_option_id,omitempty"`

	// Relationships
	Question       MultipleChoiceQuestion `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	SelectedOption *MultipleChoiceOption  `gorm:"foreignKey:SelectedOptionID" json:"selected_option,omitempty"`
}

func (MultipleChoiceResponse) TableName() string {
	return "multiple_choice_responses"
}
