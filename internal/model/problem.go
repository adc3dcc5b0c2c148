package model

import "gorm.io/datatypes"

// Problem is an online-judge exercise with a single sample test case used
// for correctness checking.
type Problem struct {
	UUIDBase
	Title             string `gorm:"size:255;not null" json:"title"`
	Description       string `gorm:"type:text" json:"description"`
	InputDescription  string `gorm:"type:text" json:"input_description"`
	OutputDescription string `gorm:"type:text" json:"output_description"`
	SampleInput       string `gorm:"type:text" json:"sample_input"`
	SampleOutput      string `gorm:"type:text" json:"sample_output"`
}

func (Problem) TableName() string {
	return "problems"
}

// Submission stores the submitted source together with the raw Judge0 result
// payload for later inspection.
type Submission struct {
	UUIDBase
	ProblemID string         `gorm:"type:varchar(36);index;not null" json:"problem_id"`
	UserID    string         `gorm:"size:32;index;not null" json:"user_id"`
	Code      string         `gorm:"type:text;not null" json:"code"`
	Language  string         `gorm:"size:32;not null" json:"language"`
	Result    datatypes.JSON `json:"result"`
}

func (Submission) TableName() string {
	return "submissions"
}
