package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/levent-cli/internal/domain"
	"github.com/bnema/levent-cli/internal/ports"
)

const DefaultAPIKeyRef = "levent/openai/api_key"

var ErrEmptySecret = errors.New("secret value is empty")

// CredentialService manages the chat backend API key in the secret store.
type CredentialService struct {
	store ports.SecretStore
	ref   string
}

func NewCredentialService(store ports.SecretStore, ref string) *CredentialService {
	if strings.TrimSpace(ref) == "" {
		ref = DefaultAPIKeyRef
	}

	return &CredentialService{store: store, ref: ref}
}

func (s *CredentialService) Ref() string {
	return s.ref
}

// SetAPIKey replaces the stored key. When the write fails the previous key is
// put back so a half-written rotation never leaves the user without one.
func (s *CredentialService) SetAPIKey(ctx context.Context, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrEmptySecret
	}

	previous, err := s.store.Get(ctx, s.ref)
	if err != nil {
		if !errors.Is(err, domain.ErrSecretNotFound) {
			return fmt.Errorf("read current api key: %w", err)
		}
		previous = ""
	}

	if err := s.store.Put(ctx, s.ref, value); err != nil {
		if previous == "" {
			return fmt.Errorf("store api key: %w", err)
		}
		if restoreErr := s.store.Put(ctx, s.ref, previous); restoreErr != nil {
			return fmt.Errorf("store api key and restore previous key: %w", errors.Join(err, restoreErr))
		}
		return fmt.Errorf("store api key: %w", err)
	}

	return nil
}

func (s *CredentialService) RemoveAPIKey(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.ref); err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}

	return nil
}

// APIKey returns domain.ErrSecretNotFound when no key has been stored.
func (s *CredentialService) APIKey(ctx context.Context) (string, error) {
	value, err := s.store.Get(ctx, s.ref)
	if err != nil {
		return "", fmt.Errorf("get api key: %w", err)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("get api key: %w", domain.ErrSecretNotFound)
	}

	return value, nil
}
