package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/levent-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiKeyRef = "levent/openai/api_key"

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, []string{"insert", "-m", "-f", apiKeyRef}, args)
			assert.Equal(t, "sk-test\n", input)
			return "", "", nil
		},
	}

	require.NoError(t, store.Put(context.Background(), apiKeyRef, "sk-test"))
	assert.True(t, called)
}

func TestStoreGetKeepsFirstLine(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		stdout string
	}{
		{name: "trailing newline", stdout: "sk-test\n"},
		{name: "crlf", stdout: "sk-test\r\n"},
		{name: "multiline entry", stdout: "sk-test\nurl: https://platform.openai.com\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := &Store{
				run: func(ctx context.Context, input string, args ...string) (string, string, error) {
					assert.Equal(t, []string{"show", apiKeyRef}, args)
					assert.Empty(t, input)
					return tc.stdout, "", nil
				},
			}

			value, err := store.Get(context.Background(), apiKeyRef)
			require.NoError(t, err)
			assert.Equal(t, "sk-test", value)
		})
	}
}

func TestStoreGetMapsMissingEntryToNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: levent/openai/api_key is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), apiKeyRef)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteUsesPassRemoveAndIgnoresMissing(t *testing.T) {
	t.Parallel()

	var calls [][]string
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			calls = append(calls, args)
			return "", "Error: levent/openai/api_key is not in the password store.", errors.New("exit status 1")
		},
	}

	require.NoError(t, store.Delete(context.Background(), apiKeyRef))
	assert.Equal(t, [][]string{{"rm", "-f", apiKeyRef}}, calls)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), apiKeyRef)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, apiKeyRef)
	assert.ErrorContains(t, err, "gpg: decryption failed")
}
