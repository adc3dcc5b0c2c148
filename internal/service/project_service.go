package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"campus_hub_backend/internal/model"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/util"
	"campus_hub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectService struct {
	ProjectRepo *repository.ProjectRepository
	Storage     *StorageService
	AIService   *AIService
	DB          *gorm.DB
}

func NewProjectService(projectRepo *repository.ProjectRepository, storage *StorageService, aiService *AIService, db *gorm.DB) *ProjectService {
	return &ProjectService{
		ProjectRepo: projectRepo,
		Storage:     storage,
		AIService:   aiService,
		DB:          db,
	}
}

type ProjectInput struct {
	Username        string   `json:"username" binding:"required"`
	ProjectName     string   `json:"project_name" binding:"required"`
	Description     string   `json:"description"`
	Language        string   `json:"language"`
	Stars           int      `json:"stars"`
	UpdatedAtRemote string   `json:"updated_at"`
	License         string   `json:"license"`
	Forks           int      `json:"forks"`
	Watchers        int      `json:"watchers"`
	Contributors    string   `json:"contributors"`
	IsPrivate       bool     `json:"is_private"`
	DefaultBranch   string   `json:"default_branch"`
	RepositoryURL   string   `json:"repository_url" binding:"required"`
	TextExtracted   string   `json:"text_extracted"`
	StudentID       string   `json:"student_id"`
	Course          string   `json:"course"`
	CourseCode      string   `json:"course_code"`
	PreviewImages   []string `json:"image_preview_urls"`
}

// SaveProject stores a submitted project, generating the AI summary from
// the extracted README when one is available.
func (s *ProjectService) SaveProject(ctx context.Context, input *ProjectInput) (*model.Project, error) {
	project := &model.Project{
		Username:         input.Username,
		ProjectName:      input.ProjectName,
		Description:      input.Description,
		Language:         input.Language,
		Stars:            input.Stars,
		UpdatedAtRemote:  input.UpdatedAtRemote,
		License:          input.License,
		Forks:            input.Forks,
		Watchers:         input.Watchers,
		Contributors:     input.Contributors,
		IsPrivate:        input.IsPrivate,
		DefaultBranch:    input.DefaultBranch,
		RepositoryURL:    input.RepositoryURL,
		TextExtracted:    input.TextExtracted,
		PreviewImageURLs: datatypes.NewJSONSlice(input.PreviewImages),
		Comments:         datatypes.NewJSONSlice([]model.ProjectComment{}),
		StudentID:        input.StudentID,
		Course:           input.Course,
		CourseCode:       input.CourseCode,
	}
	if project.DefaultBranch == "" {
		project.DefaultBranch = "main"
	}

	if input.TextExtracted != "" && s.AIService != nil {
		summary, err := s.AIService.Summarize(ctx, input.TextExtracted)
		if err != nil {
			logger.Log.Warn("project summary generation failed", zap.Error(err))
		} else {
			project.Summary = summary
		}
	}

	if err := s.ProjectRepo.Create(project); err != nil {
		return nil, err
	}
	logger.Log.Info("project saved",
		zap.String("project", project.ProjectName),
		zap.String("student", project.StudentID))
	return project, nil
}

func (s *ProjectService) GetProjects(limit int) ([]model.Project, error) {
	return s.ProjectRepo.FindAll(limit)
}

// GetProject returns one project and counts the view.
func (s *ProjectService) GetProject(id string) (*model.Project, error) {
	project, err := s.ProjectRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.ProjectRepo.IncrementViews(id); err != nil {
		return nil, err
	}
	project.Views++
	return project, nil
}

// AddComment appends to the project's comment stream.
func (s *ProjectService) AddComment(id, username, content string) (*model.Project, error) {
	var project *model.Project
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var row model.Project
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrNotFound
			}
			return err
		}
		comments := append([]model.ProjectComment(row.Comments), model.ProjectComment{
			Username:  username,
			Content:   content,
			Timestamp: time.Now().Format(time.RFC3339),
		})
		if err := tx.Model(&row).Update("comments", datatypes.NewJSONSlice(comments)).Error; err != nil {
			return err
		}
		row.Comments = datatypes.NewJSONSlice(comments)
		project = &row
		return nil
	})
	return project, err
}

func (s *ProjectService) DeleteProject(id string) error {
	affected, err := s.ProjectRepo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// UploadPreviews stores the uploaded images and appends their URLs to the
// project record.
func (s *ProjectService) UploadPreviews(ctx context.Context, id string, files []*multipart.FileHeader) ([]string, error) {
	project, err := s.ProjectRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		url, err := s.Storage.UploadPreviewImage(ctx, id, header.Filename, file,
			header.Size, header.Header.Get("Content-Type"))
		file.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	merged := append([]string(project.PreviewImageURLs), urls...)
	err = s.DB.Model(&model.Project{}).
		Where("id = ?", id).
		Update("preview_image_urls", datatypes.NewJSONSlice(merged)).Error
	if err != nil {
		return nil, err
	}
	return urls, nil
}
