package util

import (
	"campus_hub_backend/internal/model"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	GithubID  string         `json:"github_id,omitempty"`
	StudentID string         `json:"student_id,omitempty"`
	Subject   string         `json:"sub_name"`
	Role      model.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// GenerateStudentJWT issues the token minted after a successful GitHub OAuth
// exchange.
func GenerateStudentJWT(user *model.User, secret string, expiration time.Duration) (string, error) {
	claims := &Claims{
		GithubID:  user.GithubID,
		StudentID: user.StudentID,
		Subject:   user.GithubUsername,
		Role:      model.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GenerateProfessorJWT(professor *model.Professor, secret string, expiration time.Duration) (string, error) {
	claims := &Claims{
		StudentID: professor.ProfessorID,
		Subject:   professor.Email,
		Role:      model.RoleProfessor,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, err
}

func GetUserFromContext(c *gin.Context) *Claims {
	user, exists := c.Get("user")
	if !exists {
		return nil
	}
	claims, ok := user.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
