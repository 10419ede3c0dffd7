//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/easytech/webapi/config"
	"github.com/easytech/webapi/internal/server"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const (
	serverPort    = 18080
	adminPassword = "e2e-admin-password"
)

var baseURL = fmt.Sprintf("http://localhost:%d", serverPort)

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongodb: %v\n", err)
		os.Exit(1)
	}
	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start redis: %v\n", err)
		_ = mongoContainer.Terminate(context.Background())
		os.Exit(1)
	}
	terminate := func() {
		_ = redisContainer.Terminate(context.Background())
		_ = mongoContainer.Terminate(context.Background())
	}

	mongoURI, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mongodb connection string: %v\n", err)
		terminate()
		os.Exit(1)
	}
	redisAddr, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "redis endpoint: %v\n", err)
		terminate()
		os.Exit(1)
	}

	srv, err := startServer(ctx, mongoURI, redisAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
		terminate()
		os.Exit(1)
	}

	if err := waitForHealth(ctx, baseURL+"/healthz"); err != nil {
		fmt.Fprintf(os.Stderr, "server not healthy: %v\n", err)
		_ = srv.Shutdown(context.Background())
		terminate()
		os.Exit(1)
	}

	code := m.Run()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	_ = srv.Shutdown(shutdownCtx)
	shutdownCancel()
	terminate()
	os.Exit(code)
}

func TestSeededContent(t *testing.T) {
	client := newClient(t)

	var services []map[string]any
	status := client.getJSON(t, "/api/services", &services)
	if status != http.StatusOK {
		t.Fatalf("list services status %d", status)
	}
	if len(services) != 3 {
		t.Fatalf("expected 3 seeded services, got %d", len(services))
	}

	var related []map[string]any
	if status := client.getJSON(t, "/api/blog-posts/related/1", &related); status != http.StatusOK {
		t.Fatalf("related posts status %d", status)
	}
	if len(related) != 0 {
		t.Fatalf("seeded posts have distinct categories, got %d related", len(related))
	}
}

func TestBookingFlow(t *testing.T) {
	client := newClient(t)

	if status := client.postJSON(t, "/api/bookings", map[string]any{"serviceId": 1, "date": "2024-07-01", "time": "09:00"}, nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 before login, got %d", status)
	}

	var login struct {
		User struct {
			ID       int    `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	if status := client.postJSON(t, "/api/login", map[string]string{"username": "admin", "password": adminPassword}, &login); status != http.StatusOK {
		t.Fatalf("login status %d", status)
	}
	if login.User.Username != "admin" {
		t.Fatalf("unexpected login user %q", login.User.Username)
	}

	for _, date := range []string{"2024-07-01", "2024-07-02"} {
		if status := client.postJSON(t, "/api/bookings", map[string]any{"serviceId": 2, "date": date, "time": "09:00"}, nil); status != http.StatusCreated {
			t.Fatalf("create booking status %d", status)
		}
	}

	var bookings []struct {
		Date   string `json:"date"`
		UserID int    `json:"userId"`
		Status string `json:"status"`
	}
	if status := client.getJSON(t, "/api/bookings", &bookings); status != http.StatusOK {
		t.Fatalf("list bookings status %d", status)
	}
	if len(bookings) != 2 || bookings[0].Date != "2024-07-02" {
		t.Fatalf("unexpected bookings: %+v", bookings)
	}
	for _, b := range bookings {
		if b.UserID != login.User.ID || b.Status != "pending" {
			t.Fatalf("unexpected booking: %+v", b)
		}
	}

	if status := client.postJSON(t, "/api/logout", nil, nil); status != http.StatusOK {
		t.Fatalf("logout status %d", status)
	}
	if status := client.getJSON(t, "/api/user", nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", status)
	}
}

func TestNewsletterFlow(t *testing.T) {
	client := newClient(t)
	email := fmt.Sprintf("reader_%d@example.com", time.Now().UnixNano())

	if status := client.postJSON(t, "/api/newsletter-subscribe", map[string]string{"email": email}, nil); status != http.StatusCreated {
		t.Fatalf("subscribe status %d", status)
	}
	if status := client.postJSON(t, "/api/newsletter-subscribe", map[string]string{"email": email}, nil); status != http.StatusBadRequest {
		t.Fatalf("duplicate subscribe status %d", status)
	}
}

type apiClient struct {
	http *http.Client
}

func newClient(t *testing.T) *apiClient {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &apiClient{http: &http.Client{Jar: jar, Timeout: 5 * time.Second}}
}

func (c *apiClient) getJSON(t *testing.T, path string, out any) int {
	t.Helper()
	return c.do(t, http.MethodGet, path, nil, out)
}

func (c *apiClient) postJSON(t *testing.T, path string, payload, out any) int {
	t.Helper()
	return c.do(t, http.MethodPost, path, payload, out)
}

func (c *apiClient) do(t *testing.T, method, path string, payload, out any) int {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	} else if resp.StatusCode >= 500 {
		msg, _ := io.ReadAll(resp.Body)
		t.Logf("%s %s: %d %s", method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return resp.StatusCode
}

func startServer(ctx context.Context, mongoURI, redisAddr string) (*server.Server, error) {
	_ = os.Setenv("ENV", "test")
	_ = os.Setenv("SERVER_PORT", fmt.Sprintf("%d", serverPort))
	_ = os.Setenv("DB_DRIVER", "mongo")
	_ = os.Setenv("MONGODB_URI", mongoURI)
	_ = os.Setenv("MONGODB_DATABASE", "easytech_e2e")
	_ = os.Setenv("SESSION_SECRET", "e2e-session-secret-0123456789abcdef")
	_ = os.Setenv("SESSION_STORE", "redis")
	_ = os.Setenv("REDIS_ADDR", redisAddr)
	_ = os.Setenv("MQ_BACKEND", "memory")
	_ = os.Setenv("STORAGE_BACKEND", "memory")
	_ = os.Setenv("SEED_ADMIN_PASSWORD", adminPassword)

	cfg := config.LoadConfig()
	srv, err := server.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	go func() {
		_ = srv.Start()
	}()

	return srv, nil
}

func waitForHealth(ctx context.Context, url string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			return fmt.Errorf("health check failed with status")
		case <-ticker.C:
		}
	}
}
