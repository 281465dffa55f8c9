package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// StaticRepo is a Repo backed by in-memory data. FileData maps file names to
// contents; file names without data are listed but cannot be read.
type StaticRepo struct {
	Repo          RepoInfo
	Langs         []string
	FileNames     []string
	FileData      map[string][]byte
	Contributions []Account
}

var _ Repo = (*StaticRepo)(nil)

func (s *StaticRepo) Info() RepoInfo { return s.Repo }

func (s *StaticRepo) Languages(context.Context) ([]string, error) { return s.Langs, nil }

func (s *StaticRepo) Files(context.Context) ([]string, error) {
	names := append([]string(nil), s.FileNames...)
	for name := range s.FileData {
		if !contains(names, name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *StaticRepo) FileContent(_ context.Context, path string) ([]byte, error) {
	data, ok := s.FileData[path]
	if !ok {
		return nil, fmt.Errorf("file %q: %w", path, os.ErrNotExist)
	}
	return data, nil
}

func (s *StaticRepo) Contributors(context.Context) ([]Account, error) { return s.Contributions, nil }

// LocalRepo serves files from a directory, for building records from a
// checkout without a platform.
type LocalRepo struct {
	Dir      string
	Metadata RepoInfo
}

var _ Repo = (*LocalRepo)(nil)

func (l *LocalRepo) Info() RepoInfo { return l.Metadata }

func (l *LocalRepo) Languages(context.Context) ([]string, error) { return nil, nil }

func (l *LocalRepo) Files(context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (l *LocalRepo) FileContent(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(l.Dir, filepath.Clean("/"+path)))
}

func (l *LocalRepo) Contributors(context.Context) ([]Account, error) { return nil, nil }

// StaticAccounts is an AccountFetcher backed by a map keyed by login.
type StaticAccounts map[string]Account

func (s StaticAccounts) Account(_ context.Context, login string) (*Account, error) {
	a, ok := s[login]
	if !ok {
		return nil, fmt.Errorf("account %q: %w", login, os.ErrNotExist)
	}
	return &a, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
