package use_cases

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/openmarket/marketplace-service/internal/application/ports"
	domainErrors "github.com/openmarket/marketplace-service/internal/domain/errors"
	"github.com/openmarket/marketplace-service/internal/domain/market"
	"github.com/openmarket/marketplace-service/internal/infrastructure/monitoring"
	"github.com/openmarket/marketplace-service/internal/pkg/clock"
	"github.com/openmarket/marketplace-service/internal/pkg/generator"
	"github.com/openmarket/marketplace-service/internal/pkg/logger"
)

const bcryptCost = 10

type AccountsUseCase struct {
	users ports.UserRepository
	ids   *generator.IDGenerator
	clk   clock.Clock
	log   *logger.Logger
}

func NewAccountsUseCase(users ports.UserRepository, ids *generator.IDGenerator, clk clock.Clock, log *logger.Logger) *AccountsUseCase {
	return &AccountsUseCase{
		users: users,
		ids:   ids,
		clk:   clk,
		log:   log,
	}
}

func (uc *AccountsUseCase) Register(ctx context.Context, username, email, paypal, password string) (string, error) {
	if username == "" {
		return "", domainErrors.ErrMissingUsername
	}
	if email == "" {
		return "", domainErrors.ErrMissingEmail
	}
	if paypal == "" {
		return "", domainErrors.ErrMissingPayPal
	}
	if password == "" {
		return "", domainErrors.ErrMissingPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	user := market.NewUser(uc.ids.UserID(), username, email, paypal, string(hash), uc.clk.Now())
	if err := uc.users.CreateUser(ctx, user); err != nil {
		return "", err
	}

	monitoring.RegistrationsTotal.Inc()
	uc.log.Info("user registered", "user_id", user.ID, "username", username)
	return user.ID, nil
}

func (uc *AccountsUseCase) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" {
		return "", domainErrors.ErrMissingUsername
	}

	user, err := uc.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		monitoring.LoginFailuresTotal.Inc()
		return "", domainErrors.ErrInvalidCredentials
	}

	return user.ID, nil
}

func (uc *AccountsUseCase) GetDetails(ctx context.Context, userID string) (*market.User, error) {
	if userID == "" {
		return nil, domainErrors.ErrMissingUserID
	}
	return uc.users.GetUserByID(ctx, userID)
}
