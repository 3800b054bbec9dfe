package processor

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"vidmark/internal/pkg/logger"
)

// Scratch hands out uniquely named files in dir and removes all of them on
// Cleanup. One Scratch belongs to one job; it is not safe for concurrent use.
type Scratch struct {
	dir   string
	paths []string
}

func NewScratch(dir string) *Scratch {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Scratch{dir: dir}
}

// Path reserves a new file name. The file itself is created by the caller,
// but is tracked for removal from this point on.
func (s *Scratch) Path(role, ext string) string {
	p := filepath.Join(s.dir, "vidmark-"+role+"-"+uuid.NewString()+ext)
	s.paths = append(s.paths, p)
	return p
}

// Cleanup removes every reserved file once. Files that were never created are
// skipped; other failures are logged and otherwise ignored.
func (s *Scratch) Cleanup(log *logger.Logger) {
	for _, p := range s.paths {
		err := os.Remove(p)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		log.Warn("failed to remove scratch file", "path", p, "error", err.Error())
	}
	s.paths = nil
}

// extOf returns the extension of a URL or object path, or def when it has none.
// For URLs only the path counts, so a bare host never yields its TLD.
func extOf(locator, def string) string {
	if u, err := url.Parse(locator); err == nil && u.Scheme != "" && u.Host != "" {
		locator = u.Path
	} else if i := strings.IndexAny(locator, "?#"); i >= 0 {
		locator = locator[:i]
	}
	ext := strings.ToLower(path.Ext(locator))
	if ext == "" || len(ext) > 5 || strings.ContainsAny(ext, "/:") {
		return def
	}
	return ext
}
