package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/terraincognita07/invoicehero/internal/security"
)

func RunIssueTokenCommand(secret string, userID string, ttl time.Duration, out io.Writer) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errors.New("user id is required")
	}
	if strings.TrimSpace(secret) == "" {
		return errors.New("TOKEN_SECRET is not configured")
	}

	tokens, err := security.NewTokenManager(secret, ttl)
	if err != nil {
		return err
	}
	token, err := tokens.Issue(userID)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	fmt.Fprintln(out, token)
	return nil
}
