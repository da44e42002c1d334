package signer_test

import (
	"context"
	"encoding/base64"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/edo-upd/internal/logger"
	"github.com/rezonia/edo-upd/internal/signer"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

// script runs body with sh; the thumbprint becomes $0
func script(body string) []string {
	return []string{"sh", "-c", body}
}

func TestCommand_SignBase64(t *testing.T) {
	requireShell(t)

	s, err := signer.New(script(`data=$(cat); printf '%s' "$data:$0" | base64`), time.Second, logger.Discard())
	require.NoError(t, err)

	sig, err := s.SignBase64(context.Background(), "PEZhaWwvPg==", "A1B2C3")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sig)
	require.NoError(t, err)
	assert.Equal(t, "PEZhaWwvPg==:A1B2C3", string(raw))
}

func TestCommand_Errors(t *testing.T) {
	requireShell(t)

	tests := []struct {
		name string
		body string
		err  error
		msg  string
	}{
		{"exit code", `echo "certificate not found" >&2; exit 3`, signer.ErrSignFailed, "certificate not found"},
		{"empty output", `cat > /dev/null`, signer.ErrEmptySignature, ""},
		{"not base64", `cat > /dev/null; echo 'not base64!'`, signer.ErrInvalidOutput, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := signer.New(script(tt.body), time.Second, logger.Discard())
			require.NoError(t, err)

			_, err = s.SignBase64(context.Background(), "AAAA", "A1B2C3")
			require.ErrorIs(t, err, tt.err)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestCommand_Timeout(t *testing.T) {
	requireShell(t)

	s, err := signer.New(script(`sleep 5`), 50*time.Millisecond, logger.Discard())
	require.NoError(t, err)

	_, err = s.SignBase64(context.Background(), "AAAA", "A1B2C3")
	require.ErrorIs(t, err, signer.ErrSignFailed)
}

func TestNew(t *testing.T) {
	_, err := signer.New(nil, 0, nil)
	require.ErrorIs(t, err, signer.ErrToolUnavailable)

	_, err = signer.New([]string{"definitely-not-a-signer-tool"}, 0, nil)
	require.ErrorIs(t, err, signer.ErrToolUnavailable)
}
