package model

import "gorm.io/datatypes"

type AnswerKind string

const (
	AnswerGeneral AnswerKind = "general"
	AnswerCode    AnswerKind = "code"
)

// DefaultAnswerTitle is shown for answerers with no ledger entry yet.
const DefaultAnswerTitle = "Beginner"

// Question owns two answer streams: per-code-line answers anchored to a line
// of the posted snippet, and general answers.
type Question struct {
	UUIDBase
	Title            string                      `gorm:"size:255;not null" json:"title"`
	Description      string                      `gorm:"type:text" json:"description"`
	Category         string                      `gorm:"size:32;index;not null" json:"category"`
	CustomCategories datatypes.JSONSlice[string] `json:"customCategories"`
	Code             string                      `gorm:"type:text" json:"code"`
	UserID           string                      `gorm:"size:32;index;not null" json:"userId"`
	Answers          []Answer                    `gorm:"foreignKey:QuestionID" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}

// Answer is either a general answer (LineNumber 0) or a code-line answer.
// UserTitle is the answerer's rank snapshot taken at answer time and
// refreshed whenever a resolve toggle changes their title.
type Answer struct {
	BaseModel
	QuestionID string     `gorm:"type:varchar(36);index;not null" json:"-"`
	Kind       AnswerKind `gorm:"size:10;index;not null" json:"-"`
	LineNumber int        `gorm:"default:0" json:"lineNumber,omitempty"`
	Text       string     `gorm:"type:text;not null" json:"text"`
	UserID     string     `gorm:"size:32;index;not null" json:"userId"`
	UserTitle  string     `gorm:"size:100;default:'Beginner'" json:"userTitle"`
	Resolved   bool       `gorm:"default:false" json:"resolved"`
}

func (Answer) TableName() string {
	return "answers"
}
