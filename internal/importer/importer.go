// Package importer brings markdown flashcards from a local directory or a git
// repository into a deck.
package importer

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/conorfennell/flashdeck/internal/cardhash"
	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/conorfennell/flashdeck/internal/gitsource"
	"github.com/conorfennell/flashdeck/internal/parser"
)

// Store is the persistence an import needs.
type Store interface {
	FindCardByHash(ctx context.Context, hash string) (*domain.Card, error)
	CreateCard(ctx context.Context, card domain.Card) (int64, error)
	AddCardToDeck(ctx context.Context, cardID, deckID int64) (bool, error)
}

// SyncFunc fetches repoURL into localPath.
type SyncFunc func(ctx context.Context, repoURL, localPath string, progress io.Writer, logger *slog.Logger) error

// Result summarizes an import.
type Result struct {
	Files    int
	Created  int     // new cards
	Existing int     // cards that were already known by content
	Linked   int     // cards newly added to the deck
	Errors   []error // files that could not be parsed
}

// Importer reads cards from sources.
type Importer struct {
	reposDir string
	progress io.Writer
	sync     SyncFunc
	logger   *slog.Logger
}

// New creates an Importer that keeps git checkouts under reposDir.
func New(reposDir string, logger *slog.Logger) *Importer {
	return &Importer{
		reposDir: reposDir,
		sync:     gitsource.Sync,
		logger:   logger,
	}
}

// WithProgress sets where git progress output is written.
func (im *Importer) WithProgress(w io.Writer) *Importer {
	im.progress = w
	return im
}

// WithSync replaces the git fetcher.
func (im *Importer) WithSync(sync SyncFunc) *Importer {
	im.sync = sync
	return im
}

// Import reads every markdown file under source and adds its cards to the
// deck. Cards whose content is already stored are reused rather than
// duplicated. Files that fail to parse are reported in the result; a storage
// failure aborts the import.
func (im *Importer) Import(ctx context.Context, store Store, source string, deckID int64) (Result, error) {
	logger := im.logger.With("source", source, "deck_id", deckID)
	dir := source

	if gitsource.IsRemote(source) {
		localPath, err := gitsource.LocalPath(im.reposDir, source)
		if err != nil {
			return Result{}, errors.Wrap(err, "resolve checkout path")
		}
		if err := im.sync(ctx, source, localPath, im.progress, logger); err != nil {
			return Result{}, errors.Wrapf(err, "sync %s", source)
		}
		dir = localPath
	}

	var result Result
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		result.Files++
		cards, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			result.Errors = append(result.Errors, errors.Wrapf(parseErr, "parse %s", path))
			return nil
		}
		for _, card := range cards {
			if err := im.store(ctx, store, card, deckID, &result); err != nil {
				return err
			}
		}
		return nil
	})
	if walkErr != nil {
		return result, errors.Wrapf(walkErr, "import from %s", dir)
	}

	logger.Info("import complete",
		"files", result.Files,
		"created", result.Created,
		"existing", result.Existing,
		"linked", result.Linked,
		"errors", len(result.Errors),
	)
	return result, nil
}

func (im *Importer) store(ctx context.Context, store Store, card domain.Card, deckID int64, result *Result) error {
	card.Hash = cardhash.Hash(card)

	existing, err := store.FindCardByHash(ctx, card.Hash)
	if err != nil {
		return err
	}

	cardID := int64(0)
	if existing != nil {
		result.Existing++
		cardID = existing.ID
	} else {
		im.logger.Debug("new card found, inserting", "hash", card.Hash)
		cardID, err = store.CreateCard(ctx, card)
		if err != nil {
			return err
		}
		result.Created++
	}

	added, err := store.AddCardToDeck(ctx, cardID, deckID)
	if err != nil {
		return err
	}
	if added {
		result.Linked++
	}
	return nil
}
