package viewport

import (
	"sync"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/logging"
)

// Loader guards a document slot against stale loads. Each Begin bumps
// the generation; a Complete carrying an older token is dropped, so a
// slow parse can never overwrite a newer document.
type Loader[T any] struct {
	mu  sync.Mutex
	gen uint64
	doc T
	ok  bool
}

// Begin starts a new load and returns its generation token.
func (l *Loader[T]) Begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	return l.gen
}

// Complete installs a loaded document if its token is still current.
func (l *Loader[T]) Complete(gen uint64, doc T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		logging.Logger().Info("dropping stale document load",
			"got", gen, "current", l.gen)
		return false
	}
	l.doc = doc
	l.ok = true
	return true
}

// Current returns the installed document, if any.
func (l *Loader[T]) Current() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.doc, l.ok
}
