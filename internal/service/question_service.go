package service

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"campus_hub_backend/internal/model"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/util"
	"campus_hub_backend/pkg/logger"
	"campus_hub_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Credit deltas for marking an answer resolved. Unresolving applies the
// exact negation, so toggle round trips leave the ledger unchanged.
const (
	answererCredit = 1.0
	askerCredit    = 0.5
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	UserRepo     *repository.UserRepository
	ScoreService *ScoreService
	DB           *gorm.DB
}

func NewQuestionService(questionRepo *repository.QuestionRepository, userRepo *repository.UserRepository, scoreService *ScoreService, db *gorm.DB) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		UserRepo:     userRepo,
		ScoreService: scoreService,
		DB:           db,
	}
}

type QuestionInput struct {
	Title            string   `json:"title" binding:"required"`
	Description      string   `json:"description"`
	Category         string   `json:"category" binding:"required"`
	CustomCategories []string `json:"customCategories"`
	Code             string   `json:"code"`
}

func (s *QuestionService) CreateQuestion(input *QuestionInput, userID string) (*model.Question, error) {
	question := &model.Question{
		Title:            input.Title,
		Description:      input.Description,
		Category:         input.Category,
		CustomCategories: datatypes.NewJSONSlice(input.CustomCategories),
		Code:             input.Code,
		UserID:           userID,
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) GetQuestions(limit int) ([]model.Question, error) {
	return s.QuestionRepo.FindAll(limit)
}

// QuestionDetail groups the answer stream the way clients render it:
// general answers in posting order and code answers keyed by line number.
type QuestionDetail struct {
	Question       *model.Question          `json:"question"`
	GeneralAnswers []model.Answer           `json:"answers"`
	CodeAnswers    map[string][]model.Answer `json:"codeAnswers"`
}

func (s *QuestionService) GetQuestion(id string) (*QuestionDetail, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	answers, err := s.QuestionRepo.AllAnswers(id)
	if err != nil {
		return nil, err
	}
	detail := &QuestionDetail{
		Question:       question,
		GeneralAnswers: []model.Answer{},
		CodeAnswers:    make(map[string][]model.Answer),
	}
	for _, answer := range answers {
		if answer.Kind == model.AnswerCode {
			key := strconv.Itoa(answer.LineNumber)
			detail.CodeAnswers[key] = append(detail.CodeAnswers[key], answer)
		} else {
			detail.GeneralAnswers = append(detail.GeneralAnswers, answer)
		}
	}
	return detail, nil
}

// AddAnswer appends a general or code answer, stamped with the author's
// current title in the question's category.
func (s *QuestionService) AddAnswer(questionID string, kind model.AnswerKind, lineNumber int, text, userID string) (*model.Answer, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	title := model.DefaultAnswerTitle
	if user, err := s.UserRepo.FindByGithubUsername(userID); err == nil {
		title = s.ScoreService.CurrentTitle(user.StudentID, s.scoringCategory(question))
	}

	answer := &model.Answer{
		QuestionID: questionID,
		Kind:       kind,
		LineNumber: lineNumber,
		Text:       text,
		UserID:     userID,
		UserTitle:  title,
	}
	if err := s.QuestionRepo.AddAnswer(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// ResolveResult reports the state after one toggle.
type ResolveResult struct {
	Resolved          bool   `json:"resolved"`
	AnswererTitle     string `json:"userTitle"`
	AskerTitle        string `json:"questionUserTitle"`
	HasResolvedAnswer bool   `json:"hasResolvedAnswer"`
}

// ToggleResolveGeneral flips the resolved flag on the idx-th general answer.
func (s *QuestionService) ToggleResolveGeneral(questionID string, index int) (*ResolveResult, error) {
	return s.toggleResolve(questionID, func(tx *gorm.DB) (*model.Answer, error) {
		answers, err := s.QuestionRepo.GeneralAnswers(tx, questionID)
		if err != nil {
			return nil, err
		}
		if index < 0 || index >= len(answers) {
			return nil, util.ErrNotFound
		}
		return &answers[index], nil
	})
}

// ToggleResolveCode flips the resolved flag on the idx-th answer attached to
// one code line.
func (s *QuestionService) ToggleResolveCode(questionID string, lineNumber, index int) (*ResolveResult, error) {
	return s.toggleResolve(questionID, func(tx *gorm.DB) (*model.Answer, error) {
		answers, err := s.QuestionRepo.CodeAnswers(tx, questionID, lineNumber)
		if err != nil {
			return nil, err
		}
		if index < 0 || index >= len(answers) {
			return nil, util.ErrNotFound
		}
		return &answers[index], nil
	})
}

// toggleResolve is the resolve state machine. Resolving credits the
// answerer +1 and the asker +0.5 in the question's category; unresolving
// applies -1 and -0.5. Both ledger writes, the flag flip and the title
// snapshot refresh commit in one transaction so a failed credit never
// leaves a half-toggled answer.
func (s *QuestionService) toggleResolve(questionID string, pick func(tx *gorm.DB) (*model.Answer, error)) (*ResolveResult, error) {
	var result ResolveResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var question model.Question
		if err := tx.Where("id = ?", questionID).First(&question).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrNotFound
			}
			return err
		}

		answer, err := pick(tx)
		if err != nil {
			return err
		}

		answerer, err := s.UserRepo.FindByGithubUsername(answer.UserID)
		if err != nil {
			return fmt.Errorf("%w: answer author %s", util.ErrUserNotFound, answer.UserID)
		}
		asker, err := s.UserRepo.FindByGithubUsername(question.UserID)
		if err != nil {
			return fmt.Errorf("%w: question author %s", util.ErrUserNotFound, question.UserID)
		}

		resolving := !answer.Resolved
		direction := 1.0
		if !resolving {
			direction = -1
		}
		category := s.scoringCategory(&question)

		_, answererTitle, err := s.ScoreService.ApplyDeltaTx(tx, answerer.StudentID, category, direction*answererCredit)
		if err != nil {
			return err
		}
		_, askerTitle, err := s.ScoreService.ApplyDeltaTx(tx, asker.StudentID, category, direction*askerCredit)
		if err != nil {
			return err
		}

		if err := tx.Model(&model.Answer{}).
			Where("id = ?", answer.ID).
			Updates(map[string]interface{}{"resolved": resolving, "user_title": answererTitle}).Error; err != nil {
			return err
		}
		// Every answer the user left on this question shows the same,
		// fresh title.
		if err := s.QuestionRepo.RefreshUserTitles(tx, questionID, answer.UserID, answererTitle); err != nil {
			return err
		}

		hasResolved, err := s.QuestionRepo.HasResolvedAnswer(tx, questionID, answer.UserID)
		if err != nil {
			return err
		}

		result = ResolveResult{
			Resolved:          resolving,
			AnswererTitle:     answererTitle,
			AskerTitle:        askerTitle,
			HasResolvedAnswer: hasResolved,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	label := "unresolve"
	if result.Resolved {
		label = "resolve"
	}
	monitoring.ResolveToggles.WithLabelValues(label).Inc()
	logger.Log.Info("answer resolve toggled",
		zap.String("question", questionID),
		zap.Bool("resolved", result.Resolved))
	return &result, nil
}

// scoringCategory maps a question's category onto the seeded tier table,
// folding unknown or custom categories into the catch-all bucket.
func (s *QuestionService) scoringCategory(question *model.Question) string {
	if s.ScoreService.HasCategory(question.Category) {
		return question.Category
	}
	return "others"
}

// CategoryCounts summarizes the question board per category.
func (s *QuestionService) CategoryCounts() (map[string]int, error) {
	questions, err := s.QuestionRepo.FindAll(0)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, question := range questions {
		counts[question.Category]++
	}
	return counts, nil
}

// SortAnswerKeys is a helper for stable rendering of code answer groups.
func SortAnswerKeys(groups map[string][]model.Answer) []string {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})
	return keys
}
