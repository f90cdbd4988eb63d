package db

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestCleanOrphanedAvatars(t *testing.T) {
	dbMock, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer dbMock.Close()

	dir := t.TempDir()
	for _, name := range []string{"avatar_kept.png", "avatar_orphan.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	mock.ExpectQuery("SELECT avatar FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"avatar"}).
			AddRow("http://localhost:8080/media/avatar_kept.png"))

	removed, err := cleanOrphanedAvatars(context.Background(), dbMock, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed file, got %d", removed)
	}
	if _, err := os.Stat(filepath.Join(dir, "avatar_kept.png")); err != nil {
		t.Errorf("referenced file was removed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "avatar_orphan.png")); !os.IsNotExist(err) {
		t.Errorf("orphaned file still present")
	}
}

func TestCleanOrphanedAvatars_MissingDir(t *testing.T) {
	dbMock, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer dbMock.Close()

	mock.ExpectQuery("SELECT avatar FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"avatar"}))

	removed, err := cleanOrphanedAvatars(context.Background(), dbMock, filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected 0 removed files, got %d", removed)
	}
}

func TestStartOrphanedAvatarCleaner_ErrorLogged(t *testing.T) {
	dbMock, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer dbMock.Close()

	mock.ExpectQuery("SELECT avatar FROM users").
		WillReturnError(fmt.Errorf("db fail"))

	var buf bytes.Buffer
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(&buf),
		zapcore.ErrorLevel,
	)
	logger := zap.New(core)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartOrphanedAvatarCleaner(ctx, dbMock, t.TempDir(), 10*time.Millisecond, logger)

	time.Sleep(200 * time.Millisecond)
	cancel()

	if !strings.Contains(buf.String(), "failed to clean orphaned avatars") {
		t.Errorf("expected error log, got:\n%s", buf.String())
	}
}

func TestStartOrphanedAvatarCleaner_CancelBeforeTicker(t *testing.T) {
	dbMock, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer dbMock.Close()

	logger := zap.NewNop()
	ctx, cancel := context.WithCancel(context.Background())

	StartOrphanedAvatarCleaner(ctx, dbMock, t.TempDir(), 100*time.Millisecond, logger)
	cancel()

	time.Sleep(50 * time.Millisecond)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected sql calls: %v", err)
	}
}
