package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rounds/internal/mode/shared"
	"github.com/zjrosen/rounds/internal/session"
)

var sessionReveal bool

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or clear the stored session token",
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored doctor session",
	Long: `Show the session token stored after sign up. The token is masked
unless --reveal is given.

Examples:
  rounds session show
  rounds session show --reveal`,
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := openSessions(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return showSession(os.Stdout, db.TokenRepository(), shared.RealClock{}.Now(), sessionReveal)
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored doctor session",
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := openSessions(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return clearSession(os.Stdout, db.TokenRepository())
	},
}

func init() {
	sessionShowCmd.Flags().BoolVar(&sessionReveal, "reveal", false, "print the full token")
	sessionCmd.AddCommand(sessionShowCmd, sessionClearCmd)
	rootCmd.AddCommand(sessionCmd)
}

func showSession(w io.Writer, repo session.Repository, now time.Time, reveal bool) error {
	tok, err := repo.Get(session.DoctorTokenKey)
	if err != nil {
		var notFound *session.TokenNotFoundError
		if errors.As(err, &notFound) {
			_, err := fmt.Fprintln(w, "No session stored. Sign up with `rounds` first.")
			return err
		}
		return fmt.Errorf("reading session: %w", err)
	}

	value := tok.Masked()
	if reveal {
		value = tok.Value()
	}
	_, _ = fmt.Fprintf(w, "key:     %s\n", tok.Key())
	_, _ = fmt.Fprintf(w, "token:   %s\n", value)
	_, _ = fmt.Fprintf(w, "email:   %s\n", tok.Email())
	if tok.Subject() != "" {
		_, _ = fmt.Fprintf(w, "subject: %s\n", tok.Subject())
	}
	_, _ = fmt.Fprintf(w, "expiry:  %s\n", shared.FormatExpiry(tok.ExpiresAt(), now))
	_, err = fmt.Fprintf(w, "stored:  %s\n", tok.CreatedAt().Local().Format(time.RFC3339))
	return err
}

func clearSession(w io.Writer, repo session.Repository) error {
	err := repo.Delete(session.DoctorTokenKey)
	var notFound *session.TokenNotFoundError
	switch {
	case errors.As(err, &notFound):
		_, err = fmt.Fprintln(w, "No session stored.")
		return err
	case err != nil:
		return fmt.Errorf("clearing session: %w", err)
	}
	_, err = fmt.Fprintln(w, "Session cleared.")
	return err
}
