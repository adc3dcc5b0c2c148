package util

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrStudentNotFound      = errors.New("student not found")
	ErrProfessorNotFound    = errors.New("professor not found")
	ErrCriteriaNotFound     = errors.New("evaluation criteria not found")
	ErrNotConfigured        = errors.New("evaluation criteria not configured for course")
	ErrAlreadyExists        = errors.New("resource already exists")
	ErrDuplicateSubmission  = errors.New("evaluation already submitted for this team")
	ErrTeamCapacityExceeded = errors.New("maximum number of teams reached for this course")
	ErrNoTeamsFound         = errors.New("no teams found for the course")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrSlotInvalid          = errors.New("invalid reservation time")
	ErrSlotUnavailable      = errors.New("the selected time is unavailable")
	ErrSlotFull             = errors.New("the selected time is fully booked")
	ErrLanguageUnsupported  = errors.New("language not supported")
)
