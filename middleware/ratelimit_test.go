package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/TomTom4/kin/middleware"
)

func TestRateLimit(t *testing.T) {
	app := fiber.New()
	rl := middleware.NewRateLimiter(1, 2)
	app.Post("/login", middleware.RateLimit(rl), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// burst of 2 passes, the third is throttled
	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, resp.StatusCode)
		}
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	if err != nil {
		t.Fatalf("throttled request: %v", err)
	}
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.StatusCode)
	}
}

func TestRateLimitSeparatesClients(t *testing.T) {
	rl := middleware.NewRateLimiter(1, 1)
	app := fiber.New(fiber.Config{
		ProxyHeader: "X-Forwarded-For",
	})
	app.Post("/login", middleware.RateLimit(rl), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	first := httptest.NewRequest(http.MethodPost, "/login", nil)
	first.Header.Set("X-Forwarded-For", "10.0.0.1")
	if resp, _ := app.Test(first); resp.StatusCode != http.StatusOK {
		t.Fatalf("first client: status = %d, want 200", resp.StatusCode)
	}

	// a different IP gets its own bucket
	second := httptest.NewRequest(http.MethodPost, "/login", nil)
	second.Header.Set("X-Forwarded-For", "10.0.0.2")
	if resp, _ := app.Test(second); resp.StatusCode != http.StatusOK {
		t.Fatalf("second client: status = %d, want 200", resp.StatusCode)
	}
}
