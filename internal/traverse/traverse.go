// Package traverse walks a header and its local includes, building a model.
package traverse

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/phobologic/hlgen/internal/classify"
	"github.com/phobologic/hlgen/internal/decl"
	"github.com/phobologic/hlgen/internal/discover"
	"github.com/phobologic/hlgen/internal/model"
)

const maxLineSize = 1 << 20

// Walker reads headers line by line and dispatches each line by category.
type Walker struct {
	Classifier *classify.Classifier
	Resolver   *discover.Resolver
	Logger     *slog.Logger

	// Lenient logs malformed declarations and keeps going instead of
	// failing the walk.
	Lenient bool
}

// New returns a Walker. A nil logger discards output.
func New(c *classify.Classifier, r *discover.Resolver, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Walker{Classifier: c, Resolver: r, Logger: logger}
}

// Walk reads root and, depth first, every header it includes. Records appear
// in the model in the order their lines were read. Failing to open root is
// an error; failing to open an include only ends that branch.
func (w *Walker) Walk(root string) (*model.Model, error) {
	f, err := os.Open(root)
	if err != nil {
		return nil, fmt.Errorf("opening root header: %w", err)
	}

	s := &walk{
		w:       w,
		m:       &model.Model{},
		visited: map[string]struct{}{visitKey(root): {}},
		missing: map[string]struct{}{},
	}
	if err := s.readFile(root, f, true); err != nil {
		return nil, err
	}
	return s.m, nil
}

type walk struct {
	w       *Walker
	m       *model.Model
	visited map[string]struct{}
	missing map[string]struct{}
}

func (s *walk) readFile(path string, f *os.File, isRoot bool) error {
	defer f.Close()

	rel := s.relPath(path)
	s.m.Files = append(s.m.Files, rel)

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r")
		if err := s.handleLine(rel, n, line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		if isRoot {
			return fmt.Errorf("reading %s: %w", rel, err)
		}
		s.w.Logger.Debug("include read failed", slog.String("file", rel), slog.Any("err", err))
	}
	return nil
}

func (s *walk) handleLine(file string, n int, line string) error {
	switch s.w.Classifier.Classify(line) {
	case classify.Include:
		name, ok := decl.IncludeName(line)
		if !ok {
			return nil
		}
		return s.include(name)

	case classify.ClassDecl:
		if c, ok := decl.ParseClass(line); ok {
			c.File, c.Line = file, n
			s.m.Classes = append(s.m.Classes, c)
		}

	case classify.ClassDeclExtended:
		if c, ok := decl.ParseExtendedClass(line); ok {
			c.File, c.Line = file, n
			s.m.Classes = append(s.m.Classes, c)
		}

	case classify.MethodDecl:
		meth, err := decl.ParseMethod(line)
		if err != nil {
			return s.malformed(file, n, err)
		}
		meth.File, meth.Line = file, n
		s.m.Methods = append(s.m.Methods, meth)

	case classify.FunctionDecl:
		fn, err := decl.ParseFunction(line)
		if err != nil {
			return s.malformed(file, n, err)
		}
		fn.File, fn.Line = file, n
		s.m.Functions = append(s.m.Functions, fn)
	}
	return nil
}

// include reads a header named by an include directive. Each header is read
// at most once per walk, which also stops include cycles.
func (s *walk) include(name string) error {
	path, ok := s.w.Resolver.Path(name)
	if !ok {
		s.w.Logger.Debug("include skipped", slog.String("include", name))
		return nil
	}

	key := visitKey(path)
	if _, seen := s.visited[key]; seen {
		s.w.Logger.Debug("include already read", slog.String("include", name))
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		s.w.Logger.Debug("include unavailable", slog.String("include", name), slog.Any("err", err))
		if _, dup := s.missing[key]; !dup {
			s.missing[key] = struct{}{}
			s.m.Missing = append(s.m.Missing, s.relPath(path))
		}
		return nil
	}
	s.visited[key] = struct{}{}

	return s.readFile(path, f, false)
}

func (s *walk) malformed(file string, n int, err error) error {
	if !s.w.Lenient {
		return fmt.Errorf("%s:%d: %w", file, n, err)
	}
	s.w.Logger.Warn("skipping malformed declaration",
		slog.String("file", file),
		slog.Int("line", n),
		slog.Any("err", err))
	return nil
}

// relPath names a header relative to the base directory, or by its absolute
// path when it lies outside it.
func (s *walk) relPath(path string) string {
	abs := visitKey(path)
	if s.w.Resolver == nil {
		return filepath.ToSlash(abs)
	}
	baseAbs, err := filepath.Abs(s.w.Resolver.Base)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	rel, err := filepath.Rel(baseAbs, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

func visitKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
