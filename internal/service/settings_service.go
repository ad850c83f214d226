package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/bafang/portfolio-tracker/internal/apperrors"
	"github.com/bafang/portfolio-tracker/internal/repository"
)

const (
	settingCalendarUser     = "calendar.username"
	settingCalendarPassword = "calendar.password"
)

// SettingsService stores application settings. Secrets (the trade-date
// service credentials) are fernet-encrypted at rest; everything else is
// stored as plain key/value pairs.
type SettingsService struct {
	repo *repository.SettingsRepository
	key  *fernet.Key
}

// NewSettingsService creates a SettingsService. encryptionKey is a
// base64 fernet key, typically from configuration.
func NewSettingsService(repo *repository.SettingsRepository, encryptionKey string) (*SettingsService, error) {
	key, err := fernet.DecodeKey(encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("invalid settings encryption key: %w", err)
	}
	return &SettingsService{repo: repo, key: key}, nil
}

// Get returns a plain setting value.
func (s *SettingsService) Get(ctx context.Context, key string) (string, error) {
	return s.repo.Get(ctx, key)
}

// Set stores a plain setting value.
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, value)
}

// SetCalendarCredentials encrypts and stores the trade-date service
// login pair.
func (s *SettingsService) SetCalendarCredentials(ctx context.Context, user, password string) error {
	for key, value := range map[string]string{
		settingCalendarUser:     user,
		settingCalendarPassword: password,
	} {
		token, err := fernet.EncryptAndSign([]byte(value), s.key)
		if err != nil {
			return fmt.Errorf("failed to encrypt %s: %w", key, err)
		}
		if err := s.repo.Set(ctx, key, string(token)); err != nil {
			return fmt.Errorf("failed to store %s: %w", key, err)
		}
	}
	return nil
}

// CalendarCredentials returns the decrypted trade-date service login
// pair, or ErrCredentialsNotConfigured when none are stored.
func (s *SettingsService) CalendarCredentials() (user, password string, err error) {
	ctx := context.Background()

	user, err = s.decrypted(ctx, settingCalendarUser)
	if err != nil {
		return "", "", err
	}
	password, err = s.decrypted(ctx, settingCalendarPassword)
	if err != nil {
		return "", "", err
	}
	return user, password, nil
}

func (s *SettingsService) decrypted(ctx context.Context, key string) (string, error) {
	stored, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrSettingNotFound) {
			return "", apperrors.ErrCredentialsNotConfigured
		}
		return "", err
	}

	// TTL 0: stored credentials do not expire.
	plain := fernet.VerifyAndDecrypt([]byte(stored), 0, []*fernet.Key{s.key})
	if plain == nil {
		return "", fmt.Errorf("failed to decrypt setting %s", key)
	}
	return string(plain), nil
}
