package entity

// OpenQuestion is a free-text question from the shared question bank
type OpenQuestion struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Description string `gorm:"type:varchar(255);not null" json:"description"`
}

func (OpenQuestion) TableName() string {
	return "open_questions"
}

// MultipleChoiceQuestion is a curated question with a fixed option set
type MultipleChoiceQuestion struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Description string `gorm:"type:varchar(255);not null" json:"description"`

	// Relationships
	Options []MultipleChoiceOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

func (MultipleChoiceQuestion) TableName() string {
	return "multiple_choice_questions"
}

// MultipleChoiceOption is one possible answer to a multiple choice question
type MultipleChoiceOption struct {
	ID         int    `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID int    `gorm:"not null;index" json:"question_id"`
	Option     string `gorm:"type:varchar(255);not null" json:"option"`
}

func (MultipleChoiceOption) TableName() string {
	return "multiple_choice_options"
}
