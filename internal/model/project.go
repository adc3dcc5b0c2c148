package model

import "gorm.io/datatypes"

// ProjectComment is embedded in the project document as JSON, mirroring the
// comment stream shown on the showcase page.
type ProjectComment struct {
	Username  string `json:"username"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Project is a student's submitted GitHub project with its extracted
// metadata, AI summary and preview images.
type Project struct {
	UUIDBase
	Username          string                              `gorm:"size:100;not null" json:"username"`
	ProjectName       string                              `gorm:"size:255;not null" json:"project_name"`
	Description       string                              `gorm:"type:text" json:"description"`
	Language          string                              `gorm:"size:50" json:"language"`
	Stars             int                                 `json:"stars"`
	UpdatedAtRemote   string                              `gorm:"size:40" json:"updated_at"`
	License           string                              `gorm:"size:100" json:"license"`
	Forks             int                                 `json:"forks"`
	Watchers          int                                 `json:"watchers"`
	Contributors      string                              `gorm:"size:255" json:"contributors"`
	IsPrivate         bool                                `json:"is_private"`
	DefaultBranch     string                              `gorm:"size:100;default:'main'" json:"default_branch"`
	RepositoryURL     string                              `gorm:"size:255;not null" json:"repository_url"`
	TextExtracted     string                              `gorm:"type:text" json:"text_extracted"`
	Summary           string                              `gorm:"type:text" json:"summary"`
	PreviewImageURLs  datatypes.JSONSlice[string]         `json:"image_preview_urls"`
	GeneratedImageURL string                              `gorm:"size:255" json:"generated_image_url"`
	Views             int                                 `gorm:"default:0" json:"views"`
	Comments          datatypes.JSONSlice[ProjectComment] `json:"comments"`
	StudentID         string                              `gorm:"size:32;index" json:"student_id"`
	Course            string                              `gorm:"size:100" json:"course"`
	CourseCode        string                              `gorm:"size:32;index" json:"course_code"`
}

func (Project) TableName() string {
	return "projects"
}
