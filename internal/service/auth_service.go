package service

import (
	"campus_backend/internal/config"
	"campus_backend/internal/model"
	"campus_backend/internal/repository"
	"campus_backend/internal/util"
	"crypto/subtle"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var studentIDPattern = regexp.MustCompile(`^\d{4}$`)

// AuthService issues portal tokens. Students identify themselves with the
// last four DNI digits plus their store; trainers share one rotatable
// password.
type AuthService struct {
	Credentials *repository.CredentialRepository
	JWT         config.JWTConfig
	logger      *zap.Logger
}

func NewAuthService(credentials *repository.CredentialRepository, jwtCfg config.JWTConfig, logger *zap.Logger) *AuthService {
	return &AuthService{Credentials: credentials, JWT: jwtCfg, logger: logger}
}

type StudentLoginInput struct {
	StudentID string `json:"studentId" binding:"required"`
	Store     string `json:"store" binding:"required"`
}

type TrainerLoginInput struct {
	Password string `json:"password" binding:"required"`
}

type LoginOutput struct {
	Token string         `json:"token"`
	Name  string         `json:"name"`
	Store string         `json:"store,omitempty"`
	Role  model.UserRole `json:"role"`
}

// StudentLogin validates the self-asserted identity and issues a student
// token. There is no student password: the identity is declarative, the
// token only scopes what the portal shows.
func (s *AuthService) StudentLogin(in StudentLoginInput) (*LoginOutput, error) {
	id := strings.TrimSpace(in.StudentID)
	if !studentIDPattern.MatchString(id) {
		return nil, fmt.Errorf("%w: el identificador deben ser los 4 últimos dígitos del DNI", util.ErrValidation)
	}
	store := strings.TrimSpace(in.Store)
	if store == "" {
		store = model.NoStore
	}

	identity := model.StudentIdentity{ID: id, Store: store}
	name := identity.DisplayName()
	token, err := util.GenerateJWT(name, store, model.RoleStudent, s.JWT.Secret, s.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	s.logger.Info("student login", zap.String("student", name))
	return &LoginOutput{Token: token, Name: name, Store: store, Role: model.RoleStudent}, nil
}

// TrainerLogin checks the shared trainer password and issues a trainer
// token. Constant-time comparison; the stored secret never leaves this
// layer.
func (s *AuthService) TrainerLogin(in TrainerLoginInput) (*LoginOutput, error) {
	stored, err := s.Credentials.GetTrainerPassword()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	if subtle.ConstantTimeCompare([]byte(in.Password), []byte(stored)) != 1 {
		s.logger.Warn("trainer login rejected")
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT("Formador", "", model.RoleTrainer, s.JWT.Secret, s.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	s.logger.Info("trainer login")
	return &LoginOutput{Token: token, Name: "Formador", Role: model.RoleTrainer}, nil
}

// RotateTrainerPassword replaces the shared trainer secret after verifying
// the current one.
func (s *AuthService) RotateTrainerPassword(current, next string) error {
	stored, err := s.Credentials.GetTrainerPassword()
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	if subtle.ConstantTimeCompare([]byte(current), []byte(stored)) != 1 {
		return util.ErrInvalidCredentials
	}
	next = strings.TrimSpace(next)
	if len(next) < 4 {
		return fmt.Errorf("%w: la nueva contraseña es demasiado corta", util.ErrValidation)
	}
	if err := s.Credentials.SetTrainerPassword(next); err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	s.logger.Info("trainer password rotated")
	return nil
}
