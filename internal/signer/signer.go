// Package signer produces detached CMS signatures with an external tool
// such as a CryptoPro wrapper script. The tool receives the base64 data
// on stdin and the certificate thumbprint as its last argument and
// prints the base64 signature to stdout.
package signer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/rezonia/edo-upd/internal/crpt"
)

// DefaultTimeout bounds a single signing run
const DefaultTimeout = 30 * time.Second

var _ crpt.Signer = (*Command)(nil)

// Command runs an external signing tool
type Command struct {
	path    string
	args    []string
	timeout time.Duration
	log     *slog.Logger
}

// New resolves the executable of command. The remaining elements are
// passed before the thumbprint.
func New(command []string, timeout time.Duration, log *slog.Logger) (*Command, error) {
	if len(command) == 0 || strings.TrimSpace(command[0]) == "" {
		return nil, NewError(ErrCodeToolUnavailable, "signer command is not configured", nil)
	}

	path, err := exec.LookPath(command[0])
	if err != nil {
		return nil, NewError(ErrCodeToolUnavailable, fmt.Sprintf("external tool not available: %s", command[0]), err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}

	return &Command{
		path:    path,
		args:    append([]string(nil), command[1:]...),
		timeout: timeout,
		log:     log,
	}, nil
}

// SignBase64 signs base64 data with the certificate identified by thumbprint
func (c *Command) SignBase64(ctx context.Context, data, thumbprint string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := append(append([]string(nil), c.args...), thumbprint)
	cmd := exec.CommandContext(ctx, c.path, args...)
	cmd.Stdin = strings.NewReader(data)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	started := time.Now()
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "signer exited with error"
		}
		return "", NewError(ErrCodeSignFailed, msg, err)
	}
	c.log.DebugContext(ctx, "document signed", "tool", c.path, "duration", time.Since(started))

	signature := strings.Join(strings.Fields(stdout.String()), "")
	if signature == "" {
		return "", NewError(ErrCodeEmptySignature, "signer printed no signature", nil)
	}
	if _, err := base64.StdEncoding.DecodeString(signature); err != nil {
		return "", NewError(ErrCodeInvalidOutput, "signature is not base64", err)
	}
	return signature, nil
}
