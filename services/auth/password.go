package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
	"github.com/canada-ca/tracker-sub010/internal/i18n"
)

const MinPasswordLength = 12

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "could not hash password")
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidateNewPassword checks the length rule and the confirmation.
func ValidateNewPassword(ctx context.Context, password, confirmPassword string) error {
	if len(password) < MinPasswordLength {
		return tracker_errors.BadRequest(i18n.T(ctx, "Password does not meet requirements."))
	}
	if password != confirmPassword {
		return tracker_errors.BadRequest(i18n.T(ctx, "Passwords do not match."))
	}
	return nil
}

// GenerateTfaCode returns a random six digit code.
func GenerateTfaCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", errors.Wrap(err, "could not generate tfa code")
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
