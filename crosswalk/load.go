package crosswalk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/lehigh-university-libraries/iga/format"
	"github.com/lehigh-university-libraries/iga/format/cff"
	"github.com/lehigh-university-libraries/iga/format/codemeta"
	"github.com/lehigh-university-libraries/iga/source"
)

// LoadBundle gathers the sources for one release: the repository's
// codemeta.json and CITATION.cff at the release, plus the platform objects.
// A metadata file that is missing or cannot be parsed is treated as absent.
func LoadBundle(ctx context.Context, repo source.Repo, release *source.Release, accounts source.AccountFetcher) (*source.Bundle, error) {
	bundle := &source.Bundle{Repo: repo, Release: release, Accounts: accounts}
	files, err := repo.Files(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing repository files: %w", err)
	}

	if bundle.Machine, err = loadRepoFile(ctx, repo, files, []string{codemeta.Filename}); err != nil {
		return nil, err
	}
	if bundle.Citation, err = loadRepoFile(ctx, repo, files, cff.Filenames); err != nil {
		return nil, err
	}
	if !bundle.HasMetadata() {
		slog.Info("release has no codemeta.json or CITATION.cff", "repo", repo.Info().FullName)
	}
	return bundle, nil
}

// loadRepoFile parses the first of names present in files. Only a
// cancelled context is an error.
func loadRepoFile(ctx context.Context, repo source.Repo, files, names []string) (*source.Document, error) {
	i := slices.IndexFunc(names, func(n string) bool { return slices.Contains(files, n) })
	if i < 0 {
		return nil, nil
	}
	name := names[i]

	data, err := repo.FileContent(ctx, name)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		slog.Warn("unable to read metadata file", "file", name, "error", err)
		return nil, nil
	}
	doc, err := parseSource(name, data)
	if err != nil {
		slog.Warn("ignoring malformed metadata file", "file", name, "error", err)
		return nil, nil
	}
	slog.Debug("loaded metadata file", "file", name, "keys", len(doc.Keys()))
	return doc, nil
}

func parseSource(name string, data []byte) (*source.Document, error) {
	parser, ok := format.ForFilename(name)
	if !ok {
		return nil, fmt.Errorf("no parser for %s", name)
	}
	return parser.ParseSource(bytes.NewReader(data), &format.ParseOptions{SourceName: name})
}

// ErrNoSources is returned by LoadFiles when given no file names.
var ErrNoSources = errors.New("no codemeta.json or CITATION.cff file given")

// LoadFiles reads local metadata files for building a record without a
// platform release. Either path may be empty. Unlike LoadBundle, read and
// parse failures are returned.
func LoadFiles(codemetaPath, cffPath string) (*source.Bundle, error) {
	if codemetaPath == "" && cffPath == "" {
		return nil, ErrNoSources
	}
	bundle := &source.Bundle{}
	var err error
	if codemetaPath != "" {
		if bundle.Machine, err = loadLocalFile(codemetaPath, codemeta.Filename); err != nil {
			return nil, err
		}
	}
	if cffPath != "" {
		if bundle.Citation, err = loadLocalFile(cffPath, cff.Filenames[0]); err != nil {
			return nil, err
		}
	}
	return bundle, nil
}

// loadLocalFile parses path with the parser for the conventional name, so
// files named differently are still read as the right format.
func loadLocalFile(path, conventional string) (*source.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parser, ok := format.ForFilename(conventional)
	if !ok {
		return nil, fmt.Errorf("no parser for %s", conventional)
	}
	doc, err := parser.ParseSource(bytes.NewReader(data), &format.ParseOptions{SourceName: path})
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}
