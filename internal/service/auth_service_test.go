package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/apaulliao/classboard-api/internal/models"
	appErrors "github.com/apaulliao/classboard-api/pkg/errors"
)

type operatorRepoStub struct {
	operators  map[string]*models.Operator
	lastLogin  map[string]time.Time
	findErr    error
	updateErr  error
	updateHits int
}

func (s *operatorRepoStub) FindByEmail(_ context.Context, email string) (*models.Operator, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	op, ok := s.operators[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *op
	return &clone, nil
}

func (s *operatorRepoStub) FindByID(_ context.Context, id string) (*models.Operator, error) {
	for _, op := range s.operators {
		if op.ID == id {
			clone := *op
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *operatorRepoStub) UpdateLastLogin(_ context.Context, id string, ts time.Time) error {
	s.updateHits++
	if s.updateErr != nil {
		return s.updateErr
	}
	if s.lastLogin == nil {
		s.lastLogin = map[string]time.Time{}
	}
	s.lastLogin[id] = ts
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *operatorRepoStub) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &operatorRepoStub{operators: map[string]*models.Operator{
		"admin@school.test": {
			ID:           "op-1",
			Email:        "admin@school.test",
			PasswordHash: string(hash),
			FullName:     "Site Admin",
			Role:         models.RoleAdmin,
			Active:       true,
		},
	}}
	svc := NewAuthService(repo, nil, nil, AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "classboard-test",
	})
	return svc, repo
}

func TestAuthServiceLogin(t *testing.T) {
	svc, repo := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "admin@school.test", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "op-1", resp.Operator.ID)
	require.Empty(t, resp.Operator.PasswordHash)
	require.Equal(t, 1, repo.updateHits)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "op-1", claims.UserID)
	require.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "admin@school.test", Password: "nope"})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@school.test", Password: "whatever"})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	svc, repo := newAuthFixture(t)
	repo.operators["admin@school.test"].Active = false

	_, err := svc.Login(context.Background(), LoginRequest{Email: "admin@school.test", Password: "correct-horse"})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginInvalidPayload(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "not-an-email", Password: ""})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenExpired(t *testing.T) {
	svc, _ := newAuthFixture(t)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "admin@school.test", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginSurvivesLastLoginError(t *testing.T) {
	svc, repo := newAuthFixture(t)
	repo.updateErr = sql.ErrConnDone

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "admin@school.test", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
}
