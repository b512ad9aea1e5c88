package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/AmbHasan/My-quran-journey/model"
	"github.com/AmbHasan/My-quran-journey/shared"
)

type stubResolver struct {
	users map[string]*model.User
	err   error
}

func (r *stubResolver) ExtractTokenFromHeader(authHeader string) (string, error) {
	if !strings.HasPrefix(authHeader, "Bearer ") || len(authHeader) == len("Bearer ") {
		return "", errors.New("authorization header is missing")
	}
	return strings.TrimPrefix(authHeader, "Bearer "), nil
}

func (r *stubResolver) Resolve(_ context.Context, token string) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	user, ok := r.users[token]
	if !ok {
		return nil, shared.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, shared.ErrUserNotFound
	}
	return user, nil
}

func newAuthApp(resolver TokenResolver) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: shared.ResponseError})
	mw := NewAuthMiddleware(resolver)
	app.Get("/me", mw.RequiredAuth(), func(c *fiber.Ctx) error {
		user := c.Locals(shared.CurrentUser).(*model.User)
		return c.SendString(c.Locals(shared.UserID).(string) + ":" + user.Username)
	})
	return app
}

func TestRequiredAuth(t *testing.T) {
	resolver := &stubResolver{users: map[string]*model.User{
		"good":     {ID: "u1", Username: "reader", IsActive: true},
		"inactive": {ID: "u2", Username: "gone", IsActive: false},
	}}
	app := newAuthApp(resolver)

	cases := []struct {
		name     string
		header   string
		status   int
		contains string
	}{
		{"valid", "Bearer good", http.StatusOK, "u1:reader"},
		{"missing header", "", http.StatusUnauthorized, "authorization header is missing"},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, "Invalid token"},
		{"inactive user", "Bearer inactive", http.StatusUnauthorized, "User not found"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: request: %v", tc.name, err)
		}
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != tc.status {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.status, resp.StatusCode)
		}
		if !strings.Contains(string(body), tc.contains) {
			t.Errorf("%s: body %q does not contain %q", tc.name, body, tc.contains)
		}
	}
}

func TestRequiredAuthStoreFailureIsInternal(t *testing.T) {
	resolver := &stubResolver{err: shared.NewInternalError(shared.ErrPersistence, "")}
	app := newAuthApp(resolver)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer any")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}
