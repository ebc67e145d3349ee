package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MKhiriev/go-cxf/internal/app"
	"github.com/MKhiriev/go-cxf/internal/service"
	"github.com/MKhiriev/go-cxf/internal/store"
	"github.com/MKhiriev/go-cxf/models"
)

// retryer classifies storage errors once a database is open.
var retryer app.Retryer

// cxfApp is the wiring behind commands that touch the store. The caller
// must defer Close.
type cxfApp struct {
	db       *store.DB
	services *service.Services
}

func newApp(ctx context.Context) (*cxfApp, error) {
	db, err := store.NewDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	retryer = db

	services, err := service.NewServices(
		store.NewStorages(db, log),
		*cfg,
		models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
		log,
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing services: %w", err)
	}

	return &cxfApp{db: db, services: services}, nil
}

func (a *cxfApp) Close() {
	if err := a.db.Close(); err != nil {
		log.Warn().Err(err).Msg("closing storage")
	}
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// writeOutput writes data to path, or stdout when path is "-". Files are
// created private since they may hold secrets.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// readSecret prompts on the terminal without echo. When stdin is not a
// terminal the first line of stdin is used, so scripts can pipe secrets in.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	fd, ok := terminalInput(cmd)
	if !ok {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading secret: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return string(secret), nil
}

// terminalInput returns the descriptor of the command input when it is an
// interactive terminal.
func terminalInput(cmd *cobra.Command) (int, bool) {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// readNewSecret asks twice when interactive.
func readNewSecret(cmd *cobra.Command, prompt string) (string, error) {
	secret, err := readSecret(cmd, prompt)
	if _, ok := terminalInput(cmd); err != nil || !ok {
		return secret, err
	}
	again, err := readSecret(cmd, "Repeat: ")
	if err != nil {
		return "", err
	}
	if again != secret {
		return "", errors.New("secrets do not match")
	}
	return secret, nil
}

func accountIDs(raw []string) ([]models.B64Url, error) {
	ids := make([]models.B64Url, 0, len(raw))
	for _, s := range raw {
		id, err := models.ParseB64Url(s)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
