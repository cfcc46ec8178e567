package middleware

import (
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"dormly/services/auth"

	"github.com/gofiber/fiber/v2"
)

func newProtectedApp(tokens *auth.TokenIssuer) *fiber.App {
	app := fiber.New()
	app.Get("/me", IsAuthenticated(tokens), func(c *fiber.Ctx) error {
		return c.SendString(strconv.FormatUint(uint64(UserID(c)), 10))
	})
	return app
}

func TestIsAuthenticated(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	valid, err := tokens.Issue(42, "somchai")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	foreign, _ := auth.NewTokenIssuer("other", time.Hour).Issue(42, "somchai")

	cases := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"bearer token", "Bearer " + valid, "", fiber.StatusOK},
		{"cookie fallback", "", valid, fiber.StatusOK},
		{"missing token", "", "", fiber.StatusUnauthorized},
		{"malformed header", "Token " + valid, "", fiber.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, "", fiber.StatusUnauthorized},
	}

	app := newProtectedApp(tokens)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.Header.Set("Cookie", "access="+tc.cookie)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tc.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}

func TestUserIDWithoutAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(strconv.FormatUint(uint64(UserID(c)), 10))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	buf := make([]byte, 8)
	n, _ := resp.Body.Read(buf)
	if string(buf[:n]) != "0" {
		t.Errorf("body = %q, want 0", buf[:n])
	}
}
