package repository

import (
	"campus_hub_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	err := r.DB.Where("id = ?", id).First(&question).Error
	return &question, err
}

func (r *QuestionRepository) FindAll(limit int) ([]model.Question, error) {
	var questions []model.Question
	query := r.DB.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) AddAnswer(answer *model.Answer) error {
	return r.DB.Create(answer).Error
}

// GeneralAnswers returns the question's general answer stream in insertion
// order, so client-side answer indexes stay stable.
func (r *QuestionRepository) GeneralAnswers(tx *gorm.DB, questionID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := tx.Where("question_id = ? AND kind = ?", questionID, model.AnswerGeneral).
		Order("id").
		Find(&answers).Error
	return answers, err
}

func (r *QuestionRepository) CodeAnswers(tx *gorm.DB, questionID string, lineNumber int) ([]model.Answer, error) {
	var answers []model.Answer
	err := tx.Where("question_id = ? AND kind = ? AND line_number = ?",
		questionID, model.AnswerCode, lineNumber).
		Order("id").
		Find(&answers).Error
	return answers, err
}

func (r *QuestionRepository) AllAnswers(questionID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("question_id = ?", questionID).Order("id").Find(&answers).Error
	return answers, err
}

// RefreshUserTitles rewrites the cached title snapshot on every answer the
// user posted to this question, so no stale snapshot survives a resolve.
func (r *QuestionRepository) RefreshUserTitles(tx *gorm.DB, questionID, userID, title string) error {
	return tx.Model(&model.Answer{}).
		Where("question_id = ? AND user_id = ?", questionID, userID).
		Update("user_title", title).Error
}

func (r *QuestionRepository) HasResolvedAnswer(tx *gorm.DB, questionID, userID string) (bool, error) {
	var count int64
	err := tx.Model(&model.Answer{}).
		Where("question_id = ? AND user_id = ? AND resolved = ?", questionID, userID, true).
		Count(&count).Error
	return count > 0, err
}
