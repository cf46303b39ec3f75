package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/auth"
)

// Claims represents the authorization claims transmitted via a JWT.
//
// The token is a client-side artifact only: route authorization always reads
// the session store, never the token.
type Claims struct {
	jwt.StandardClaims
	Email        string    `json:"email,omitempty"`
	DisplayName  string    `json:"display_name,omitempty"`
	Role         auth.Role `json:"role,omitempty"`
	IsStudent    bool      `json:"is_student,omitempty"`    // -> STUDENT PORTAL
	IsFaculty    bool      `json:"is_faculty,omitempty"`    // -> FACULTY PORTAL
	IsAdmin      bool      `json:"is_admin,omitempty"`      // -> ADMIN PORTAL
	IsGovernment bool      `json:"is_government,omitempty"` // -> GOVERNMENT PORTAL
}

func GetPrincipalClaims(conf *core.Config, p auth.Principal) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   p.ID,
			Audience:  "Shule Portal",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email:        p.Email,
		DisplayName:  p.DisplayName,
		Role:         p.Role,
		IsStudent:    p.Role == auth.RoleStudent,
		IsFaculty:    p.Role == auth.RoleFaculty,
		IsAdmin:      p.Role == auth.RoleAdmin,
		IsGovernment: p.Role == auth.RoleGovernment,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}
