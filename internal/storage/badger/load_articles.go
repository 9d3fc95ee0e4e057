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

// ArticleFile represents article fixtures in a TOML file
// Format:
//
//	[[article]]
//	id = 1
//	title = "About us"
//	introtext = "<p>...</p>"
//	fulltext = "<p>...</p>"
type ArticleFile struct {
	Articles []ArticleEntry `toml:"article"`
}

type ArticleEntry struct {
	ID        int    `toml:"id"`
	Title     string `toml:"title"`
	IntroText string `toml:"introtext"`
	FullText  string `toml:"fulltext"`
}

// LoadArticlesFromFiles loads article fixtures from all TOML files in a
// directory. A missing directory is skipped silently.
func LoadArticlesFromFiles(ctx context.Context, storage interfaces.ArticleStorage, dirPath string, logger arbor.ILogger) error {
	logger.Debug().Str("dir", dirPath).Msg("Loading articles from files")

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("dir", dirPath).Msg("Articles directory not found, skipping")
			return nil
		}
		logger.Warn().Err(err).Str("dir", dirPath).Msg("Failed to read articles directory")
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
		loaded, skipped, errors := loadArticlesFromFile(ctx, storage, filePath, logger)
		loadedCount += loaded
		skippedCount += skipped
		errorCount += errors
	}

	logger.Debug().
		Int("loaded", loadedCount).
		Int("skipped", skippedCount).
		Int("errors", errorCount).
		Msg("Finished loading articles from files")

	return nil
}

func loadArticlesFromFile(ctx context.Context, storage interfaces.ArticleStorage, filePath string, logger arbor.ILogger) (loaded, skipped, errors int) {
	logger.Debug().Str("file", filePath).Msg("Loading articles from file")

	content, err := os.ReadFile(filePath)
	if err != nil {
		logger.Warn().Err(err).Str("file", filePath).Msg("Failed to read article file")
		return 0, 0, 1
	}

	var file ArticleFile
	if err := toml.Unmarshal(content, &file); err != nil {
		logger.Warn().Err(err).Str("file", filePath).Msg("Failed to parse article file")
		return 0, 0, 1
	}

	fileName := filepath.Base(filePath)
	for _, entry := range file.Articles {
		if entry.ID <= 0 {
			logger.Warn().Str("file", fileName).Str("title", entry.Title).Msg("Skipping article without ID")
			skipped++
			continue
		}

		article := &models.Article{
			ID:        entry.ID,
			Title:     entry.Title,
			IntroText: entry.IntroText,
			FullText:  entry.FullText,
		}

		if err := storage.SaveArticle(ctx, article); err != nil {
			logger.Error().Err(err).Int("id", entry.ID).Msg("Failed to store article")
			errors++
			continue
		}

		logger.Debug().Int("id", article.ID).Str("title", article.Title).Msg("Loaded article")
		loaded++
	}

	return loaded, skipped, errors
}
