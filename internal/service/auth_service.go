package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"campus_hub_backend/internal/config"
	"campus_hub_backend/internal/model"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/util"
	"campus_hub_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	githubAuthorizeURL = "https://github.com/login/oauth/authorize"
	githubTokenURL     = "https://github.com/login/oauth/access_token"
	githubUserURL      = "https://api.github.com/user"

	// loginCacheTTL bounds how long a login timestamp survives in Redis.
	loginCacheTTL = 24 * time.Hour
)

type AuthService struct {
	UserRepo      *repository.UserRepository
	ProfessorRepo *repository.ProfessorRepository
	CourseRepo    *repository.CourseRepository
	Redis         *redis.Client
	Config        *config.Config
	HTTPClient    *http.Client
}

func NewAuthService(userRepo *repository.UserRepository, professorRepo *repository.ProfessorRepository, courseRepo *repository.CourseRepository, redisClient *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:      userRepo,
		ProfessorRepo: professorRepo,
		CourseRepo:    courseRepo,
		Redis:         redisClient,
		Config:        cfg,
		HTTPClient:    &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthorizeURL builds the GitHub consent page URL the login endpoint
// redirects to.
func (s *AuthService) AuthorizeURL() string {
	params := url.Values{}
	params.Set("client_id", s.Config.GitHub.ClientID)
	params.Set("redirect_uri", s.Config.GitHub.RedirectURI)
	params.Set("scope", "read:user user:email")
	return githubAuthorizeURL + "?" + params.Encode()
}

// GithubProfile is the subset of the GitHub user payload the platform uses.
type GithubProfile struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
}

// LoginOutcome tells the callback handler where to send the browser.
type LoginOutcome struct {
	Token      string
	Registered bool
	Profile    *GithubProfile
	User       *model.User
}

// LoginWithGithub exchanges the OAuth code, resolves the GitHub profile
// against the user directory and issues a JWT for registered students.
// Unregistered profiles come back with Registered=false so the caller can
// route them to signup.
func (s *AuthService) LoginWithGithub(ctx context.Context, code string) (*LoginOutcome, error) {
	token, err := s.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByGithubID(strconv.FormatInt(profile.ID, 10))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &LoginOutcome{Registered: false, Profile: profile}, nil
		}
		return nil, err
	}

	jwtToken, err := util.GenerateStudentJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	s.recordLogin(ctx, profile.ID)

	return &LoginOutcome{
		Token:      jwtToken,
		Registered: true,
		Profile:    profile,
		User:       user,
	}, nil
}

func (s *AuthService) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", s.Config.GitHub.ClientID)
	form.Set("client_secret", s.Config.GitHub.ClientSecret)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, githubTokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("%w: github token exchange failed: %s",
			util.ErrInvalidCredentials, payload.Error)
	}
	return payload.AccessToken, nil
}

func (s *AuthService) fetchProfile(ctx context.Context, accessToken string) (*GithubProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, githubUserURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: github profile fetch returned %d",
			util.ErrInvalidCredentials, resp.StatusCode)
	}

	var profile GithubProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// recordLogin keeps the last-login timestamp in Redis with a TTL, shared
// across instances instead of living in process memory.
func (s *AuthService) recordLogin(ctx context.Context, githubID int64) {
	if s.Redis == nil {
		return
	}
	key := fmt.Sprintf("github_login:%d", githubID)
	if err := s.Redis.Set(ctx, key, time.Now().Format(time.RFC3339), loginCacheTTL).Err(); err != nil {
		logger.Log.Warn("login cache write failed", zap.Error(err))
	}
}

// LastLogin returns the cached last-login time, or zero when none exists.
func (s *AuthService) LastLogin(ctx context.Context, githubID int64) (time.Time, error) {
	if s.Redis == nil {
		return time.Time{}, nil
	}
	key := fmt.Sprintf("github_login:%d", githubID)
	value, err := s.Redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, value)
}

// RegisterProfessor creates a professor account. The professor ID must be
// attached to at least one course roster before an account can exist.
func (s *AuthService) RegisterProfessor(name, email, professorID, password string) error {
	courses, err := s.CourseRepo.FindByProfessorID(professorID)
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		return fmt.Errorf("%w: professor %s has no courses", util.ErrProfessorNotFound, professorID)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	professor := &model.Professor{
		Name:        name,
		Email:       email,
		ProfessorID: professorID,
		Password:    string(hash),
	}
	err = s.ProfessorRepo.Create(professor)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: professor account for %s", util.ErrAlreadyExists, email)
	}
	return err
}

// LoginProfessor verifies credentials and returns a professor JWT.
func (s *AuthService) LoginProfessor(email, password string) (string, *model.Professor, error) {
	professor, err := s.ProfessorRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(professor.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateProfessorJWT(professor, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, professor, nil
}
