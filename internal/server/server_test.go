package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/repositories"
	tu "github.com/desertthunder/roster/internal/testing"
)

func setupRouter(t *testing.T, mw ...Middleware) (*BasicRouter, *repositories.Repositories) {
	t.Helper()
	repos, s, _ := tu.NewRepositories(t)
	tu.Seed(t, repos, []string{"Ada", "Linus"}, []string{"Compilers"}, []string{"Grace"})
	tu.MustEnroll(t, repos, 1, 1)
	return NewRosterRouter(NewRosterHandler(s), mw...), repos
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRosterHandler(t *testing.T) {
	router, _ := setupRouter(t)

	t.Run("GET /students", func(t *testing.T) {
		rec := get(t, router, "/students")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %q", ct)
		}

		var students []models.Student
		if err := json.Unmarshal(rec.Body.Bytes(), &students); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if len(students) != 2 || !students[0].EnrolledIn(1) {
			t.Errorf("unexpected students: %+v", students)
		}
	})

	t.Run("GET by id", func(t *testing.T) {
		tests := []struct {
			path   string
			status int
			want   string
		}{
			{"/students/2", http.StatusOK, `"name":"Linus"`},
			{"/courses/1", http.StatusOK, `"credits":3`},
			{"/instructors/1", http.StatusOK, `"name":"Grace"`},
			{"/students/9", http.StatusNotFound, `"error":"not found"`},
			{"/students/abc", http.StatusBadRequest, `not a numeric id`},
			{"/widgets", http.StatusNotFound, `"error"`},
		}

		for _, tt := range tests {
			t.Run(tt.path, func(t *testing.T) {
				rec := get(t, router, tt.path)
				if rec.Code != tt.status {
					t.Errorf("expected %d, got %d", tt.status, rec.Code)
				}
				if !strings.Contains(rec.Body.String(), tt.want) {
					t.Errorf("body %q missing %q", rec.Body.String(), tt.want)
				}
			})
		}
	})

	t.Run("GET /stats", func(t *testing.T) {
		rec := get(t, router, "/stats")

		var got repositories.Summary
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		want := repositories.Summary{Students: 2, Courses: 1, Instructors: 1, Enrollments: 1, Credits: 3}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("GET / lists routes", func(t *testing.T) {
		rec := get(t, router, "/")
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/stats") {
			t.Errorf("unexpected index: %d %s", rec.Code, rec.Body.String())
		}
		if rec := get(t, router, "/nope"); rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 for unknown path, got %d", rec.Code)
		}
	})

	t.Run("rejects writes", func(t *testing.T) {
		for _, path := range []string{"/students", "/"} {
			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"name":"Eve"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("%s: expected 405, got %d", path, rec.Code)
			}
			if rec.Header().Get("Allow") == "" {
				t.Errorf("%s: missing Allow header", path)
			}
		}
	})

	t.Run("reflects later writes", func(t *testing.T) {
		router, repos := setupRouter(t)
		repos.Students.Create("Grace")

		if !strings.Contains(get(t, router, "/students").Body.String(), "Grace") {
			t.Error("new student not served")
		}
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("applies in registration order", func(t *testing.T) {
		var order []string
		tag := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(tag("first"), tag("second"))
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		get(t, router, "/ping")
		if strings.Join(order, ",") != "first,second,handler" {
			t.Errorf("unexpected order: %v", order)
		}
		if got := router.Patterns(); len(got) != 1 || got[0] != "/ping" {
			t.Errorf("unexpected patterns: %v", got)
		}
	})

	t.Run("RequestLogger", func(t *testing.T) {
		var buf bytes.Buffer
		router, _ := setupRouter(t, RequestLogger(log.New(&buf)))

		get(t, router, "/students/9")
		out := buf.String()
		for _, want := range []string{"method=GET", "path=/students/9", "status=404"} {
			if !strings.Contains(out, want) {
				t.Errorf("log %q missing %q", out, want)
			}
		}
	})

	t.Run("Recoverer", func(t *testing.T) {
		router := NewBasicRouter()
		router.Use(Recoverer(log.New(io.Discard)))
		router.Handle(http.MethodGet, "/boom", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		if rec := get(t, router, "/boom"); rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})
}

func TestRateLimiter(t *testing.T) {
	t.Run("rejects requests over the burst", func(t *testing.T) {
		router, _ := setupRouter(t, RateLimiter(1, 2))

		codes := make([]int, 3)
		for i := range codes {
			codes[i] = get(t, router, "/stats").Code
		}

		if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
			t.Fatalf("expected burst to pass, got %v", codes)
		}
		rec := get(t, router, "/stats")
		if codes[2] != http.StatusTooManyRequests || rec.Code != http.StatusTooManyRequests {
			t.Errorf("expected 429 after burst, got %v then %d", codes, rec.Code)
		}
		if rec.Header().Get("Retry-After") != "1" {
			t.Errorf("expected Retry-After 1, got %q", rec.Header().Get("Retry-After"))
		}
		if !strings.Contains(rec.Body.String(), "rate limit exceeded") {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("zero rate disables limiting", func(t *testing.T) {
		router, _ := setupRouter(t, RateLimiter(0, 0))

		for i := 0; i < 50; i++ {
			if code := get(t, router, "/stats").Code; code != http.StatusOK {
				t.Fatalf("request %d: expected 200, got %d", i, code)
			}
		}
	})
}

func TestServe(t *testing.T) {
	router, _ := setupRouter(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, ln, router, log.New(io.Discard)) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/stats")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}
