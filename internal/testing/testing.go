// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/repositories"
	"github.com/desertthunder/roster/internal/store"
)

// ErrSaveFailed is returned by [FlakyBackend] once its save budget is spent.
var ErrSaveFailed = errors.New("save failed")

// FlakyBackend wraps a [store.MemoryBackend] and fails every Save after the first n.
type FlakyBackend struct {
	*store.MemoryBackend
	mu      sync.Mutex
	allowed int
	failFor map[string]bool
}

// NewFlakyBackend allows n saves before failing. A negative n never fails by count.
func NewFlakyBackend(n int) *FlakyBackend {
	return &FlakyBackend{MemoryBackend: store.NewMemoryBackend(), allowed: n, failFor: map[string]bool{}}
}

// FailCollection makes every save of name fail.
func (f *FlakyBackend) FailCollection(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failFor[name] = true
}

func (f *FlakyBackend) Save(name string, v any) error {
	f.mu.Lock()
	if f.failFor[name] || f.allowed == 0 {
		f.mu.Unlock()
		return ErrSaveFailed
	}
	if f.allowed > 0 {
		f.allowed--
	}
	f.mu.Unlock()
	return f.MemoryBackend.Save(name, v)
}

// NewRepositories returns repositories over a fresh in-memory store.
func NewRepositories(t *testing.T) (*repositories.Repositories, *store.Store, *store.MemoryBackend) {
	t.Helper()
	backend := store.NewMemoryBackend()
	s, err := store.Open(backend)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return repositories.NewRepositories(s), s, backend
}

// Seed creates one record per name in each collection and fails the test on error.
func Seed(t *testing.T, repos *repositories.Repositories, students, courses, instructors []string) {
	t.Helper()
	for _, name := range students {
		if _, err := repos.Students.Create(name); err != nil {
			t.Fatalf("failed to seed student %q: %v", name, err)
		}
	}
	for _, name := range courses {
		if _, err := repos.Courses.Create(name, 3); err != nil {
			t.Fatalf("failed to seed course %q: %v", name, err)
		}
	}
	for _, name := range instructors {
		if _, err := repos.Instructors.Create(name, ""); err != nil {
			t.Fatalf("failed to seed instructor %q: %v", name, err)
		}
	}
}

// MustEnroll enrolls student in course and fails the test on error.
func MustEnroll(t *testing.T, repos *repositories.Repositories, student, course models.ID) {
	t.Helper()
	if _, err := repos.Enrollments.Enroll(student, course); err != nil {
		t.Fatalf("failed to enroll student %d in course %d: %v", student, course, err)
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return dir
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}
