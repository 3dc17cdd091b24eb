package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/repositories"
	"github.com/desertthunder/roster/internal/shared"
	"github.com/desertthunder/roster/internal/store"
	tu "github.com/desertthunder/roster/internal/testing"
)

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer, *repositories.Repositories) {
	t.Helper()
	_, s, _ := tu.NewRepositories(t)
	out := &bytes.Buffer{}
	r := NewRunner(RunnerOpts{Store: s, Output: out, Logger: log.New(io.Discard)})
	return r, out, r.repos
}

// run executes args against a fresh command tree, with a config path that does not exist.
func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	return runWith(t, r, filepath.Join(t.TempDir(), "missing.toml"), args...)
}

func runWith(t *testing.T, r *Runner, configPath string, args ...string) error {
	t.Helper()
	argv := append([]string{"roster", "-c", configPath}, args...)
	return newApp(r).Run(context.Background(), argv)
}

func mustRun(t *testing.T, r *Runner, args ...string) {
	t.Helper()
	if err := run(t, r, args...); err != nil {
		t.Fatalf("roster %s: %v", strings.Join(args, " "), err)
	}
}

func TestStudentCommands(t *testing.T) {
	t.Run("add and list", func(t *testing.T) {
		r, out, repos := newTestRunner(t)

		mustRun(t, r, "student", "add", "Ada")
		mustRun(t, r, "student", "add", "Linus")
		if !strings.Contains(out.String(), "Created student 2: Linus") {
			t.Errorf("unexpected output: %s", out.String())
		}
		if len(repos.Students.List()) != 2 {
			t.Fatalf("expected 2 students, got %d", len(repos.Students.List()))
		}

		out.Reset()
		mustRun(t, r, "student", "list")
		if !strings.Contains(out.String(), "Students: 2") || !strings.Contains(out.String(), "Name: Ada") {
			t.Errorf("unexpected list output: %s", out.String())
		}

		out.Reset()
		mustRun(t, r, "student", "list", "--json")
		var students []models.Student
		if err := json.Unmarshal(out.Bytes(), &students); err != nil {
			t.Fatalf("failed to decode list: %v", err)
		}
		if students[0].Name != "Ada" || students[1].ID != 2 {
			t.Errorf("unexpected students: %+v", students)
		}
	})

	t.Run("add with courses ignores unknown ids", func(t *testing.T) {
		r, _, repos := newTestRunner(t)
		repos.Courses.Create("Compilers", 4)

		mustRun(t, r, "student", "add", "--courses", "1,9,x", "Ada")

		ada, _ := repos.Students.Get(1)
		if len(ada.Courses) != 1 || ada.Courses[0] != 1 {
			t.Errorf("expected enrollment in course 1 only, got %v", ada.Courses)
		}
	})

	t.Run("add rejects blank name", func(t *testing.T) {
		r, _, repos := newTestRunner(t)

		if err := run(t, r, "student", "add", " "); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
		if len(repos.Students.List()) != 0 {
			t.Error("blank student was saved")
		}
	})

	t.Run("show", func(t *testing.T) {
		r, out, repos := newTestRunner(t)
		repos.Students.Create("Ada")
		repos.Courses.Create("Compilers", 4)
		repos.Enrollments.Enroll(1, 1)

		mustRun(t, r, "student", "show", "1")
		if !strings.Contains(out.String(), "Compilers (#1, 4 credits)") {
			t.Errorf("unexpected output: %s", out.String())
		}

		tests := []struct {
			args []string
			want error
		}{
			{[]string{"student", "show"}, shared.ErrMissingArgument},
			{[]string{"student", "show", "abc"}, shared.ErrInvalidInput},
			{[]string{"student", "show", "9"}, shared.ErrNotFound},
		}
		for _, tt := range tests {
			if err := run(t, r, tt.args...); !errors.Is(err, tt.want) {
				t.Errorf("%v: expected %v, got %v", tt.args, tt.want, err)
			}
		}
	})

	t.Run("edit", func(t *testing.T) {
		r, _, repos := newTestRunner(t)
		repos.Students.Create("Ada")

		mustRun(t, r, "student", "edit", "--name", "Ada Lovelace", "1")
		if ada, _ := repos.Students.Get(1); ada.Name != "Ada Lovelace" {
			t.Errorf("expected rename, got %q", ada.Name)
		}

		if err := run(t, r, "student", "edit", "1"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("delete needs --yes", func(t *testing.T) {
		r, out, repos := newTestRunner(t)
		repos.Students.Create("Ada")

		if err := run(t, r, "student", "delete", "1"); err != nil {
			t.Fatalf("unconfirmed delete should not fail: %v", err)
		}
		if !strings.Contains(out.String(), "not confirmed") {
			t.Errorf("expected not confirmed notice, got %s", out.String())
		}
		if len(repos.Students.List()) != 1 {
			t.Fatal("unconfirmed delete removed the student")
		}

		mustRun(t, r, "student", "delete", "--yes", "1")
		if len(repos.Students.List()) != 0 {
			t.Error("confirmed delete kept the student")
		}

		if err := run(t, r, "student", "delete", "--yes", "1"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestCourseCommands(t *testing.T) {
	t.Run("add, edit and show", func(t *testing.T) {
		r, out, repos := newTestRunner(t)
		tu.Seed(t, repos, []string{"Ada"}, nil, []string{"Grace"})

		mustRun(t, r, "course", "add", "--credits", "4.5", "Compilers")
		course, err := repos.Courses.Get(1)
		if err != nil || course.Credits != 4.5 {
			t.Fatalf("unexpected course: %+v %v", course, err)
		}

		if err := run(t, r, "course", "add", "--credits=-1", "Bad"); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation for negative credits, got %v", err)
		}

		mustRun(t, r, "course", "edit", "--credits", "3", "1")
		if c, _ := repos.Courses.Get(1); c.Credits != 3 || c.Name != "Compilers" {
			t.Errorf("unexpected course after edit: %+v", c)
		}

		mustRun(t, r, "course", "assign", "--instructors", "1, 7, x", "1")
		tu.MustEnroll(t, repos, 1, 1)

		out.Reset()
		mustRun(t, r, "course", "show", "1")
		for _, want := range []string{"Instructors: Grace", "Enrolled: 1", "Ada (#1)"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("show output missing %q: %s", want, out.String())
			}
		}

		out.Reset()
		mustRun(t, r, "course", "show", "--json", "1")
		var detail struct {
			ID          models.ID        `json:"id"`
			Instructors []models.ID      `json:"instructors"`
			Roster      []models.Student `json:"roster"`
		}
		if err := json.Unmarshal(out.Bytes(), &detail); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if detail.ID != 1 || len(detail.Instructors) != 1 || len(detail.Roster) != 1 {
			t.Errorf("unexpected detail: %+v", detail)
		}
	})

	t.Run("delete prunes enrollments", func(t *testing.T) {
		r, _, repos := newTestRunner(t)
		tu.Seed(t, repos, []string{"Ada", "Linus"}, []string{"Compilers", "Databases"}, nil)
		tu.MustEnroll(t, repos, 1, 1)
		tu.MustEnroll(t, repos, 1, 2)
		tu.MustEnroll(t, repos, 2, 1)

		mustRun(t, r, "course", "delete", "--yes", "1")

		for _, s := range repos.Students.List() {
			if s.EnrolledIn(1) {
				t.Errorf("student %d still enrolled in deleted course", s.ID)
			}
		}
		if ada, _ := repos.Students.Get(1); !ada.EnrolledIn(2) {
			t.Error("unrelated enrollment was dropped")
		}
	})
}

func TestInstructorCommands(t *testing.T) {
	r, out, repos := newTestRunner(t)
	tu.Seed(t, repos, nil, []string{"Compilers"}, nil)

	mustRun(t, r, "instructor", "add", "--department", "CS", "Grace")
	mustRun(t, r, "course", "assign", "--instructors", "1", "1")

	out.Reset()
	mustRun(t, r, "instructor", "show", "1")
	if !strings.Contains(out.String(), "Department: CS") || !strings.Contains(out.String(), "Compilers (#1)") {
		t.Errorf("unexpected show output: %s", out.String())
	}

	mustRun(t, r, "instructor", "edit", "--department=", "1")
	if i, _ := repos.Instructors.Get(1); i.Department != "" || i.Name != "Grace" {
		t.Errorf("expected department cleared, got %+v", i)
	}

	mustRun(t, r, "instructor", "delete", "--yes", "1")
	if c, _ := repos.Courses.Get(1); len(c.Instructors) != 0 {
		t.Errorf("expected instructor pruned from course, got %v", c.Instructors)
	}
}

func TestEnrollAndStats(t *testing.T) {
	r, out, repos := newTestRunner(t)
	tu.Seed(t, repos, []string{"Ada", "Linus"}, []string{"Compilers"}, []string{"Grace"})

	mustRun(t, r, "enroll", "add", "1", "1")
	mustRun(t, r, "enroll", "add", "1", "1")
	mustRun(t, r, "enroll", "add", "2", "1")
	if ada, _ := repos.Students.Get(1); len(ada.Courses) != 1 {
		t.Errorf("expected a single enrollment, got %v", ada.Courses)
	}

	if err := run(t, r, "enroll", "add", "1", "5"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing course, got %v", err)
	}
	if err := run(t, r, "enroll", "add", "1"); !errors.Is(err, shared.ErrMissingArgument) {
		t.Errorf("expected ErrMissingArgument, got %v", err)
	}

	mustRun(t, r, "enroll", "drop", "2", "1")
	mustRun(t, r, "enroll", "drop", "2", "1")

	out.Reset()
	mustRun(t, r, "stats", "--json")
	var summary repositories.Summary
	if err := json.Unmarshal(out.Bytes(), &summary); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	want := repositories.Summary{Students: 2, Courses: 1, Instructors: 1, Enrollments: 1, Credits: 3}
	if summary != want {
		t.Errorf("expected %+v, got %+v", want, summary)
	}

	out.Reset()
	mustRun(t, r, "stats")
	if !strings.Contains(out.String(), "Enrollments:     1") {
		t.Errorf("unexpected stats output: %s", out.String())
	}
}

func TestExportImport(t *testing.T) {
	t.Run("csv", func(t *testing.T) {
		r, _, repos := newTestRunner(t)
		tu.Seed(t, repos, []string{"Ada"}, []string{"Compilers"}, nil)

		path := filepath.Join(t.TempDir(), "courses.csv")
		mustRun(t, r, "export", "--collection", "courses", "--format", "csv", "-o", path)

		if !strings.Contains(tu.MustReadFile(t, path), "1,Compilers,3,") {
			t.Errorf("unexpected csv: %s", tu.MustReadFile(t, path))
		}
	})

	t.Run("all collections", func(t *testing.T) {
		r, out, repos := newTestRunner(t)
		tu.Seed(t, repos, []string{"Ada"}, []string{"Compilers"}, []string{"Grace"})

		dir := filepath.Join(t.TempDir(), "snapshot")
		mustRun(t, r, "export", "--all", "--format", "csv,json,xlsx", "-o", dir)

		for _, name := range []string{"students.csv", "courses.json", "students.xlsx", "instructors.csv", "export_manifest.json"} {
			tu.AssertFileExists(t, filepath.Join(dir, name))
		}
		if !strings.Contains(out.String(), "Files: 7/7 written") {
			t.Errorf("unexpected output: %s", out.String())
		}
	})

	t.Run("rejects bad combinations", func(t *testing.T) {
		r, _, _ := newTestRunner(t)
		dir := t.TempDir()

		if err := run(t, r, "export", "--collection", "courses", "--format", "xlsx", "-o", filepath.Join(dir, "c.xlsx")); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if err := run(t, r, "export", "--format", "pdf", "-o", filepath.Join(dir, "s.pdf")); !errors.Is(err, shared.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
		if err := run(t, r, "export", "--collection", "grades"); !errors.Is(err, shared.ErrUnknownCollection) {
			t.Errorf("expected ErrUnknownCollection, got %v", err)
		}
	})

	t.Run("xlsx round trip", func(t *testing.T) {
		src, _, repos := newTestRunner(t)
		tu.Seed(t, repos, []string{"Ada", "Linus"}, nil, nil)

		path := filepath.Join(t.TempDir(), "roster.xlsx")
		mustRun(t, src, "export", "--format", "xlsx", "-o", path)
		tu.AssertFileExists(t, path)

		dst, out, imported := newTestRunner(t)
		tu.Seed(t, imported, []string{"Grace"}, nil, nil)
		mustRun(t, dst, "import", path)

		students := imported.Students.List()
		if len(students) != 3 || students[1].Name != "Ada" || students[2].ID != 3 {
			t.Errorf("unexpected students after import: %+v", students)
		}
		if !strings.Contains(out.String(), "Imported 2 student(s)") {
			t.Errorf("unexpected output: %s", out.String())
		}
	})

	t.Run("import errors", func(t *testing.T) {
		r, _, _ := newTestRunner(t)

		if err := run(t, r, "import"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}

		path := filepath.Join(t.TempDir(), "names.txt")
		os.WriteFile(path, []byte("Ada\n"), 0644)
		if err := run(t, r, "import", path); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func writeConfig(t *testing.T, dir, backend, encoding string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf(`[storage]
backend = %q
dir = %q
encoding = %q

[database]
path = %q

[log]
level = "error"
`, backend, filepath.Join(dir, "data"), encoding, filepath.Join(dir, "roster.db"))

	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestPersistence(t *testing.T) {
	tests := []struct {
		backend  string
		encoding string
		file     string
	}{
		{shared.BackendFile, shared.EncodingJSON, "data/students.json"},
		{shared.BackendFile, shared.EncodingYAML, "data/students.yaml"},
		{shared.BackendSQLite, shared.EncodingJSON, "roster.db"},
	}

	for _, tt := range tests {
		t.Run(tt.backend+"/"+tt.encoding, func(t *testing.T) {
			dir := t.TempDir()
			configPath := writeConfig(t, dir, tt.backend, tt.encoding)

			first := NewRunner(RunnerOpts{Output: io.Discard, Logger: log.New(io.Discard)})
			if err := runWith(t, first, configPath, "student", "add", "Ada"); err != nil {
				t.Fatalf("failed to add student: %v", err)
			}
			tu.AssertFileExists(t, filepath.Join(dir, tt.file))

			out := &bytes.Buffer{}
			second := NewRunner(RunnerOpts{Output: out, Logger: log.New(io.Discard)})
			if err := runWith(t, second, configPath, "student", "list", "--json"); err != nil {
				t.Fatalf("failed to list students: %v", err)
			}
			if !strings.Contains(out.String(), `"name":"Ada"`) {
				t.Errorf("student not persisted: %s", out.String())
			}
		})
	}

	t.Run("corrupt collection is an error", func(t *testing.T) {
		dir := t.TempDir()
		configPath := writeConfig(t, dir, shared.BackendFile, shared.EncodingJSON)
		os.MkdirAll(filepath.Join(dir, "data"), 0755)
		os.WriteFile(filepath.Join(dir, "data", "courses.json"), []byte("{not json"), 0644)

		r := NewRunner(RunnerOpts{Output: io.Discard, Logger: log.New(io.Discard)})
		err := runWith(t, r, configPath, "course", "list")
		if !errors.Is(err, shared.ErrCorruptCollection) {
			t.Errorf("expected ErrCorruptCollection, got %v", err)
		}
	})
}

func TestSetup(t *testing.T) {
	t.Run("creates config and data dir", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := tu.MustGetwd(t)
		tu.MustChdir(t, tempDir)
		defer tu.MustChdir(t, originalDir)

		out := &bytes.Buffer{}
		r := NewRunner(RunnerOpts{Output: out, Logger: log.New(io.Discard)})
		if err := runWith(t, r, "config.toml", "setup"); err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		tu.AssertFileExists(t, "config.toml")
		tu.AssertFileExists(t, "data")
		if !strings.Contains(out.String(), "Created config.toml") {
			t.Errorf("unexpected output: %s", out.String())
		}
	})

	t.Run("sqlite runs migrations", func(t *testing.T) {
		dir := t.TempDir()
		configPath := writeConfig(t, dir, shared.BackendSQLite, shared.EncodingJSON)

		r := NewRunner(RunnerOpts{Output: io.Discard, Logger: log.New(io.Discard)})
		if err := runWith(t, r, configPath, "setup"); err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		backend, err := store.OpenSQLiteBackend(filepath.Join(dir, "roster.db"), 1, 1)
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer backend.Close()

		if rev, err := backend.Revision(models.StudentsCollection); err != nil || rev != 0 {
			t.Errorf("expected empty collections table, got revision %d (%v)", rev, err)
		}
	})
}
