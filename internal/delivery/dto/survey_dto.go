package dto

import "time"

// Request DTOs

type CreateSurveyRequest struct {
	PatientID       int    `json:"patient_id" validate:"required,min=1"`
	Title           string `json:"title" validate:"required,max=255"`
	OpenQuestionIDs []int  `json:"open_question_ids" validate:"omitempty,dive,min=1"`
	MCQuestionIDs   []int  `json:"mc_question_ids" validate:"omitempty,dive,min=1"`
}

type SubmitSurveyRequest struct {
	MultipleChoiceResponses []MCAnswer   `json:"multiple_choice_responses" validate:"omitempty,dive"`
	OpenResponses           []OpenAnswer `json:"open_responses" validate:"omitempty,dive"`
}

type MCAnswer struct {
	QuestionID       int `json:"question_id" validate:"required,min=1"`
	SelectedOptionID int `json:"selected_option_id" validate:"required,min=1"`
}

type OpenAnswer struct {
	QuestionID int    `json:"question_id" validate:"required,min=1"`
	Response   string `json:"response" validate:"max=255"`
}

// Response DTOs

type SurveyResponse struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	IssueDate    time.Time  `json:"issue_date"`
	ResponseDate *time.Time `json:"response_date,omitempty"`
	Status       string     `json:"status"`
	PatientID    int        `json:"patient"`
	ProviderID   int        `json:"provider"`
}

type SurveyListResponse struct {
	Surveys []SurveyResponse `json:"surveys"`
	Total   int              `json:"total"`
}

type OpenQuestionResponse struct {
	ID          int    `json:"id"`
	Description string `json:"question_description"`
}

type MCOptionResponse struct {
	ID     int    `json:"id"`
	Option string `json:"option"`
}

type MCQuestionResponse struct {
	ID          int                `json:"id"`
	Description string             `json:"question_description"`
	Options     []MCOptionResponse `json:"options"`
}

// QuestionBankResponse lists every question a survey can draw from
type QuestionBankResponse struct {
	OpenQuestions           []OpenQuestionResponse `json:"open_questions"`
	MultipleChoiceQuestions []MCQuestionResponse   `json:"multiple_choice_questions"`
}

type AnsweredMCResponse struct {
	Question       MCQuestionResponse `json:"question"`
	Options        []MCOptionResponse `json:"options"`
	SelectedOption *string            `json:"selected_option"`
}

type AnsweredOpenResponse struct {
	Question OpenQuestionResponse `json:"question"`
	Response string               `json:"response"`
}

// SurveyQuestionsResponse mirrors the response rows of one survey, with
// option lists and any stored selections
type SurveyQuestionsResponse struct {
	SurveyTitle             string                 `json:"survey_title"`
	MultipleChoiceResponses []AnsweredMCResponse   `json:"multiple_choice_responses"`
	OpenResponses           []AnsweredOpenResponse `json:"open_responses"`
}
