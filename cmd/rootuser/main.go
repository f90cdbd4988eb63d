// Package main seeds the initial root account. It prompts for a
// username and password (both default to "root") and creates a
// superuser with staff rights, skipping creation when the user already
// exists.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/okarpova/staffhub/internal/apperr"
	"github.com/okarpova/staffhub/internal/config"
	"github.com/okarpova/staffhub/internal/db"
	"github.com/okarpova/staffhub/internal/logger"
	"github.com/okarpova/staffhub/internal/models"
	"github.com/okarpova/staffhub/internal/password"
	"github.com/okarpova/staffhub/internal/repository"
)

func prompt(reader *bufio.Reader, label, fallback string) string {
	fmt.Printf("%s (default %q): ", label, fallback)
	line, err := reader.ReadString('\n')
	if err != nil {
		return fallback
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

func main() {
	options, err := config.Parse()
	if err != nil {
		fmt.Printf("invalid configuration: %v\n", err)
		return
	}

	zapLogger, err := logger.New(options.LogLevel)
	if err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		return
	}
	defer func() { _ = zapLogger.Sync() }()

	reader := bufio.NewReader(os.Stdin)
	username := prompt(reader, "username", "root")
	plaintext := prompt(reader, "password", "root")

	ctx := context.Background()
	postgresDB, err := db.InitPostgres(ctx, options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	users := repository.NewPostgresUserRepository(postgresDB)

	if _, err := users.Get(ctx, username); err == nil {
		zapLogger.Info("user already exists", zap.String("username", username))
		return
	} else if apperr.KindOf(err) != apperr.KindNotFound {
		zapLogger.Fatal("cannot check user", zap.Error(err))
	}

	credential, err := password.Hash(plaintext)
	if err != nil {
		zapLogger.Fatal("cannot hash password", zap.Error(err))
	}

	if _, err := users.Create(ctx, &models.User{
		Username:    username,
		Password:    credential,
		IsStaff:     true,
		IsActive:    true,
		IsSuperuser: true,
	}); err != nil {
		zapLogger.Fatal("cannot create user", zap.Error(err))
	}

	zapLogger.Info("user has been created successfully", zap.String("username", username))
}
