package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrWeekNotFound = errors.New("week not found")
	ErrFileNotFound = errors.New("file not found")
)

// Source lists weekly directories and opens files inside them. Open returns
// an error wrapping ErrFileNotFound for files that do not exist.
type Source interface {
	ListWeeks(ctx context.Context) ([]int, error)
	Open(ctx context.Context, week int, name string) (io.ReadCloser, error)
}

// LocalSource reads week_NN directories under Root.
type LocalSource struct {
	Root string
}

func (s LocalSource) ListWeeks(ctx context.Context) ([]int, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.Root, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return weeksFromNames(names), nil
}

func (s LocalSource) Open(ctx context.Context, week int, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.Root, WeekDir(week), name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrFileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return f, nil
}

// parseWeekDir accepts "week_07" style names.
func parseWeekDir(name string) (int, bool) {
	rest, ok := strings.CutPrefix(strings.ToLower(strings.Trim(name, "/")), "week_")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func weeksFromNames(names []string) []int {
	seen := map[int]bool{}
	weeks := []int{}
	for _, n := range names {
		if w, ok := parseWeekDir(n); ok && !seen[w] {
			seen[w] = true
			weeks = append(weeks, w)
		}
	}
	sort.Ints(weeks)
	return weeks
}
