package services

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/tablebird/tablebird-console/models"
)

// AuthServiceInterface owns the persisted staff session: login through the
// gateway, the stored token/user pair, and the forced logout when the gateway
// rejects the token. It is the console's TokenSource.
type AuthServiceInterface interface {
	TokenSource

	// Login authenticates against the gateway and persists the session.
	Login(email, password string) (*models.LoginResponse, error)

	// Logout drops the persisted session.
	Logout() error

	// CurrentUser returns the persisted staff profile, if a session exists.
	CurrentUser() (*models.User, bool)
}

// AuthService implements AuthServiceInterface on the state store.
type AuthService struct {
	state StateStoreInterface
}

var authServiceInstance AuthServiceInterface

// InitAuthService initializes the auth service on the given state store
func InitAuthService(state StateStoreInterface) AuthServiceInterface {
	authServiceInstance = &AuthService{state: state}
	return authServiceInstance
}

// GetAuthService returns the initialized auth service instance
func GetAuthService() AuthServiceInterface {
	return authServiceInstance
}

// SetAuthService sets the auth service instance (primarily for testing)
func SetAuthService(service AuthServiceInterface) {
	authServiceInstance = service
}

// Login authenticates a staff member and persists the returned session.
// Only admin and staff roles may use the console.
func (s *AuthService) Login(email, password string) (*models.LoginResponse, error) {
	if email == "" || password == "" {
		return nil, &ValidationError{Code: "MISSING_CREDENTIALS", Message: "Email and password are required"}
	}

	// The gateway singleton is resolved at call time; the auth service is
	// constructed before the gateway client, which takes it as TokenSource.
	response, err := GetGatewayService().Login(email, password)
	if err != nil {
		return nil, err
	}

	if !response.User.CanAccessConsole() {
		return nil, &ValidationError{Code: "ACCESS_DENIED", Message: "Only admin and staff accounts can access the console"}
	}

	if err := s.state.Set(models.StateKeySessionToken, response.AccessToken); err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(response.User)
	if err != nil {
		return nil, err
	}
	if err := s.state.Set(models.StateKeySessionUser, string(encoded)); err != nil {
		return nil, err
	}

	logrus.WithField("email", email).Info("Staff login succeeded")
	return response, nil
}

// Logout drops the persisted session
func (s *AuthService) Logout() error {
	if err := s.state.Delete(models.StateKeySessionToken); err != nil {
		return err
	}
	return s.state.Delete(models.StateKeySessionUser)
}

// CurrentUser returns the persisted staff profile
func (s *AuthService) CurrentUser() (*models.User, bool) {
	encoded, exists, err := s.state.Get(models.StateKeySessionUser)
	if err != nil || !exists {
		return nil, false
	}

	var user models.User
	if err := json.Unmarshal([]byte(encoded), &user); err != nil {
		logrus.WithError(err).Warn("Stored session user is unreadable, dropping it")
		_ = s.state.Delete(models.StateKeySessionUser)
		return nil, false
	}
	return &user, true
}

// AccessToken returns the persisted session token
func (s *AuthService) AccessToken() (string, bool) {
	token, exists, err := s.state.Get(models.StateKeySessionToken)
	if err != nil {
		logrus.WithError(err).Warn("Failed to read session token")
		return "", false
	}
	return token, exists && token != ""
}

// ClearSession drops the session after a gateway auth rejection
func (s *AuthService) ClearSession() {
	if err := s.Logout(); err != nil {
		logrus.WithError(err).Warn("Failed to clear session")
	}
}
