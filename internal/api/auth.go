package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aquaview/water-quality-dashboard/internal/session"
)

type loginResponse struct {
	Status string       `json:"status"`
	Token  string       `json:"token"`
	User   session.User `json:"user"`
}

// Login authenticates against the backend and stores the resulting session.
func (c *Client) Login(ctx context.Context, username, password string) (session.Session, error) {
	body := map[string]string{"username": username, "password": password}

	var result loginResponse
	resp, err := c.http.R().SetContext(ctx).SetBody(body).SetResult(&result).Post("/login")
	if err != nil {
		return session.Session{}, fmt.Errorf("login: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return session.Session{}, fmt.Errorf("login: invalid credentials")
	}
	if resp.IsError() {
		return session.Session{}, fmt.Errorf("login: backend returned %s", resp.Status())
	}
	if result.Status != "success" || result.Token == "" {
		return session.Session{}, fmt.Errorf("login: unexpected response status %q", result.Status)
	}

	sess := session.Session{
		Token:     result.Token,
		User:      result.User,
		ExpiresAt: time.Now().Add(c.ttl),
	}
	if err := c.sessions.Set(sess); err != nil {
		return session.Session{}, fmt.Errorf("login: %w", err)
	}

	c.logger.Info("logged in",
		zap.String("username", sess.User.Username),
		zap.String("user_type", sess.User.UserType))
	return sess, nil
}

// Logout ends the session. The local session is cleared even when the
// server-side call fails; there is nothing useful to do with a token the
// user has abandoned.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.http.R().SetContext(ctx).Post("/logout"); err != nil {
		c.logger.Warn("server-side logout failed, continuing with local logout", zap.Error(err))
	}
	return c.sessions.Clear()
}

// CheckAuth asks the backend whether the current session is still valid.
func (c *Client) CheckAuth(ctx context.Context) error {
	var env statusEnvelope
	resp, err := c.http.R().SetContext(ctx).SetResult(&env).Get("/check")
	if err := c.checkResponse(resp, err, "check session"); err != nil {
		return err
	}
	return env.check("check session")
}
