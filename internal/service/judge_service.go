package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"campus_hub_backend/internal/config"
	"campus_hub_backend/internal/model"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/util"
	"campus_hub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// languageIDs maps accepted languages to Judge0 language identifiers.
var languageIDs = map[string]int{
	"python":     71,
	"javascript": 63,
}

const (
	judgePollInterval = time.Second
	judgePollLimit    = 30
)

type JudgeService struct {
	ProblemRepo *repository.ProblemRepository
	Config      config.Judge0Config
	HTTPClient  *http.Client
}

func NewJudgeService(problemRepo *repository.ProblemRepository, cfg config.Judge0Config) *JudgeService {
	return &JudgeService{
		ProblemRepo: problemRepo,
		Config:      cfg,
		HTTPClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

type ProblemInput struct {
	Title             string `json:"title" binding:"required"`
	Description       string `json:"description" binding:"required"`
	InputDescription  string `json:"input_description"`
	OutputDescription string `json:"output_description"`
	SampleInput       string `json:"sample_input"`
	SampleOutput      string `json:"sample_output" binding:"required"`
}

func (s *JudgeService) CreateProblem(input *ProblemInput) (*model.Problem, error) {
	problem := &model.Problem{
		Title:             input.Title,
		Description:       input.Description,
		InputDescription:  input.InputDescription,
		OutputDescription: input.OutputDescription,
		SampleInput:       input.SampleInput,
		SampleOutput:      input.SampleOutput,
	}
	if err := s.ProblemRepo.Create(problem); err != nil {
		return nil, err
	}
	return problem, nil
}

func (s *JudgeService) GetProblems() ([]model.Problem, error) {
	return s.ProblemRepo.FindAll()
}

func (s *JudgeService) GetProblem(id string) (*model.Problem, error) {
	problem, err := s.ProblemRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	return problem, err
}

// JudgeResult is the verdict returned after a submission run.
type JudgeResult struct {
	SubmissionID  string `json:"submission_id"`
	Status        string `json:"status"`
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output"`
	IsCorrect     bool   `json:"is_correct"`
}

type judge0Submission struct {
	Token string `json:"token"`
}

type judge0Result struct {
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output"`
	Status        struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
}

// Submit runs the code against the problem's sample input on Judge0 and
// checks the output against the sample output. The raw result is stored
// with the submission.
func (s *JudgeService) Submit(ctx context.Context, problemID, userID, code, language string) (*JudgeResult, error) {
	languageID, ok := languageIDs[strings.ToLower(language)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", util.ErrLanguageUnsupported, language)
	}

	problem, err := s.ProblemRepo.FindByID(problemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	token, err := s.createRun(ctx, code, languageID, problem.SampleInput)
	if err != nil {
		return nil, err
	}
	run, err := s.awaitRun(ctx, token)
	if err != nil {
		return nil, err
	}

	result := &JudgeResult{
		Status:        run.Status.Description,
		Stdout:        run.Stdout,
		Stderr:        run.Stderr,
		CompileOutput: run.CompileOutput,
		IsCorrect: run.Status.ID == 3 &&
			strings.TrimSpace(run.Stdout) == strings.TrimSpace(problem.SampleOutput),
	}

	raw, err := json.Marshal(run)
	if err != nil {
		return nil, err
	}
	submission := &model.Submission{
		ProblemID: problemID,
		UserID:    userID,
		Code:      code,
		Language:  strings.ToLower(language),
		Result:    raw,
	}
	if err := s.ProblemRepo.CreateSubmission(submission); err != nil {
		return nil, err
	}
	result.SubmissionID = submission.ID

	logger.Log.Info("submission judged",
		zap.String("problem", problemID),
		zap.String("status", result.Status),
		zap.Bool("correct", result.IsCorrect))
	return result, nil
}

func (s *JudgeService) createRun(ctx context.Context, code string, languageID int, stdin string) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"source_code": code,
		"language_id": languageID,
		"stdin":       stdin,
	})
	if err != nil {
		return "", err
	}

	url := s.Config.URL + "/submissions?base64_encoded=false&wait=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	s.setHeaders(req)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("judge0 submission returned %d", resp.StatusCode)
	}

	var created judge0Submission
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", err
	}
	if created.Token == "" {
		return "", fmt.Errorf("judge0 submission returned no token")
	}
	return created.Token, nil
}

// awaitRun polls until the run leaves the queue or the attempt budget runs
// out.
func (s *JudgeService) awaitRun(ctx context.Context, token string) (*judge0Result, error) {
	url := s.Config.URL + "/submissions/" + token + "?base64_encoded=false"
	for attempt := 0; attempt < judgePollLimit; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		s.setHeaders(req)

		resp, err := s.HTTPClient.Do(req)
		if err != nil {
			return nil, err
		}
		var run judge0Result
		err = json.NewDecoder(resp.Body).Decode(&run)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		// 1 = In Queue, 2 = Processing
		if run.Status.ID > 2 {
			return &run, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(judgePollInterval):
		}
	}
	return nil, fmt.Errorf("judge0 run %s did not finish in time", token)
}

func (s *JudgeService) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if s.Config.APIKey != "" {
		req.Header.Set("X-RapidAPI-Key", s.Config.APIKey)
	}
	if s.Config.Host != "" {
		req.Header.Set("X-RapidAPI-Host", s.Config.Host)
	}
}
