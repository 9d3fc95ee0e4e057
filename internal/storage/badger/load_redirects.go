package badger

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/interfaces"
	"github.com/ternarybob/linkfix/internal/models"
)

// RedirectFile represents a redirect rule entry in a TOML file
// Format:
//
//	[[redirect]]
//	old_url = "old/path"
//	new_url = "new/path"
//	published = true
//	comment = "optional note"
type RedirectFile struct {
	Redirects []RedirectEntry `toml:"redirect"`
}

type RedirectEntry struct {
	ID        int    `toml:"id"`
	OldURL    string `toml:"old_url"`
	NewURL    string `toml:"new_url"`
	Published *bool  `toml:"published"`
	Comment   string `toml:"comment"`
}

// LoadRedirectsFromFiles loads redirect rules from all TOML files in a
// directory. Missing directories are not an error; the store may be seeded
// through the API instead.
func LoadRedirectsFromFiles(ctx context.Context, storage interfaces.RedirectStorage, dirPath string, logger arbor.ILogger) error {
	logger.Debug().Str("dir", dirPath).Msg("Loading redirects from files")

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("dir", dirPath).Msg("Redirects directory not found, skipping")
			return nil
		}
		logger.Warn().Err(err).Str("dir", dirPath).Msg("Failed to read redirects directory")
		return err
	}

	loadedCount := 0
	skippedCount := 0
	errorCount := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}

		filePath := filepath.Join(dirPath, entry.Name())
		loaded, skipped, errors := loadRedirectsFromFile(ctx, storage, filePath, logger)
		loadedCount += loaded
		skippedCount += skipped
		errorCount += errors
	}

	logger.Debug().
		Int("loaded", loadedCount).
		Int("skipped", skippedCount).
		Int("errors", errorCount).
		Msg("Finished loading redirects from files")

	return nil
}

func loadRedirectsFromFile(ctx context.Context, storage interfaces.RedirectStorage, filePath string, logger arbor.ILogger) (loaded, skipped, errors int) {
	logger.Debug().Str("file", filePath).Msg("Loading redirects from file")

	content, err := os.ReadFile(filePath)
	if err != nil {
		logger.Warn().Err(err).Str("file", filePath).Msg("Failed to read redirect file")
		return 0, 0, 1
	}

	var file RedirectFile
	if err := toml.Unmarshal(content, &file); err != nil {
		logger.Warn().Err(err).Str("file", filePath).Msg("Failed to parse redirect file")
		return 0, 0, 1
	}

	fileName := filepath.Base(filePath)
	for _, entry := range file.Redirects {
		if entry.OldURL == "" {
			logger.Warn().Str("file", fileName).Msg("Skipping redirect with empty old_url")
			skipped++
			continue
		}

		published := true
		if entry.Published != nil {
			published = *entry.Published
		}

		redirect := &models.Redirect{
			ID:        entry.ID,
			OldURL:    entry.OldURL,
			NewURL:    entry.NewURL,
			Published: published,
			Comment:   entry.Comment,
		}

		if err := storage.SaveRedirect(ctx, redirect); err != nil {
			logger.Error().Err(err).Str("old_url", entry.OldURL).Msg("Failed to store redirect")
			errors++
			continue
		}

		logger.Debug().Int("id", redirect.ID).Str("old_url", redirect.OldURL).Msg("Loaded redirect")
		loaded++
	}

	return loaded, skipped, errors
}
