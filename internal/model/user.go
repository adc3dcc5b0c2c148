package model

type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleProfessor UserRole = "professor"
	RoleAdmin     UserRole = "admin"
)

// User is the GitHub-backed account directory entry. Students sign up with
// the additional-info form after their first OAuth login; the student record
// in enrollment tables is keyed by StudentID, this row links it to GitHub.
// swagger:model User
type User struct {
	BaseModel
	Name           string `gorm:"size:100;not null" json:"name"`
	SchoolEmail    string `gorm:"size:100;not null" json:"schoolEmail"`
	StudentID      string `gorm:"size:32;uniqueIndex;not null" json:"studentId"`
	Age            int    `json:"age"`
	Contact        string `gorm:"size:50" json:"contact"`
	GithubUsername string `gorm:"size:100;index" json:"githubUsername"`
	GithubName     string `gorm:"size:100" json:"githubName"`
	GithubID       string `gorm:"size:32;uniqueIndex;not null" json:"githubId"`
}

func (User) TableName() string {
	return "users"
}

// Professor accounts authenticate with email and password instead of GitHub.
type Professor struct {
	BaseModel
	Name        string `gorm:"size:100" json:"name"`
	Email       string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	ProfessorID string `gorm:"size:32;uniqueIndex;not null" json:"professorId"`
	Password    string `gorm:"size:100" json:"-"`
}

func (Professor) TableName() string {
	return "professors"
}
