package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// StartOrphanedAvatarCleaner periodically removes files from mediaDir
// that no user row references. Failed uploads and crashed requests can
// leave files behind; this reclaims them in the background until ctx
// is cancelled.
func StartOrphanedAvatarCleaner(
	ctx context.Context,
	db *sql.DB,
	mediaDir string,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := cleanOrphanedAvatars(ctx, db, mediaDir)
				if err != nil {
					log.Error("failed to clean orphaned avatars", zap.Error(err))
					continue
				}
				if removed > 0 {
					log.Info("cleaned orphaned avatars", zap.Int("removed", removed))
				}
			}
		}
	}()
}

func cleanOrphanedAvatars(ctx context.Context, db *sql.DB, mediaDir string) (int, error) {
	rows, err := db.QueryContext(ctx, `SELECT avatar FROM users WHERE avatar IS NOT NULL`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	// Avatars are stored as public URLs; the file name is the last
	// path segment.
	referenced := make(map[string]struct{})
	for rows.Next() {
		var avatar string
		if err := rows.Scan(&avatar); err != nil {
			return 0, err
		}
		referenced[filepath.Base(avatar)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	entries, err := os.ReadDir(mediaDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := referenced[entry.Name()]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(mediaDir, entry.Name())); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
