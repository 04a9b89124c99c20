package validator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"mealdash/internal/repository"
	"mealdash/internal/usecase"
)

type authValidator struct {
	users repository.UserRepository
}

func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

func (v *authValidator) ValidateRegister(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password required", usecase.ErrValidation)
	}

	if !isEmailLike(email) {
		return fmt.Errorf("%w: invalid email", usecase.ErrValidation)
	}

	if len(password) < 8 {
		return fmt.Errorf("%w: password too short", usecase.ErrValidation)
	}

	// duplicate email needs a lookup
	u, err := v.users.FindByEmail(ctx, email)
	if err == nil && u != nil {
		return usecase.ErrConflict
	}

	return nil
}

func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password required", usecase.ErrValidation)
	}

	if !isEmailLike(email) {
		return fmt.Errorf("%w: invalid email", usecase.ErrValidation)
	}

	return nil
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func isEmailLike(s string) bool {
	return emailRe.MatchString(s)
}
