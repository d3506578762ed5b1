// ABOUTME: Sign-in, session verification, and restore-on-load flows
// ABOUTME: Classifies failures and guards every commit with the live epoch

package console

import (
	"context"
	"fmt"

	"github.com/claudia1121/catalog-admin/internal/hexapi"
	"github.com/claudia1121/catalog-admin/internal/session"
)

// SignIn posts credentials and, on success, persists the returned token and
// verifies the session. Failures are classified into a page notice; the
// state stays Unauthenticated.
func (c *Console) SignIn(ctx context.Context, username, password string) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrBusy
	}
	c.submitting = true
	c.username = username
	epoch := c.epoch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if epoch == c.epoch {
			c.submitting = false
		}
		c.mu.Unlock()
	}()

	res, err := c.api.SignIn(ctx, username, password)
	if !c.stillCurrent(epoch) {
		return nil
	}
	if err != nil {
		c.mu.Lock()
		c.state = StateUnauthenticated
		c.mu.Unlock()
		c.notices.Show(ScopePage, signInFailureMessage(err))
		return err
	}

	tok := session.Token{Value: res.Token, ExpiresAt: res.ExpiresAt()}
	if err := c.tokens.Save(tok); err != nil {
		c.logger.Warn("persisting token", "error", err)
	}
	if err := c.flag.Set(); err != nil {
		c.logger.Warn("setting session flag", "error", err)
	}
	c.api.SetAuthorization(res.Token)
	c.notices.Dismiss(ScopePage)

	return c.verify(ctx, epoch)
}

// signInFailureMessage maps a signin error onto the page notice wording.
func signInFailureMessage(err error) string {
	if hexapi.IsCredentialFailure(err) {
		return msgBadCredentials
	}

	apiErr, ok := hexapi.AsAPIError(err)
	if !ok {
		return "登入失敗：請稍後再試"
	}

	msg := apiErr.JoinedMessage()
	if apiErr.StatusCode == 400 {
		if msg == "" {
			msg = "請確認輸入格式"
		}
		return fmt.Sprintf("登入失敗（400）：%s", msg)
	}
	return fmt.Sprintf("登入失敗：%d %s", apiErr.StatusCode, msg)
}

// VerifySession checks the current authorization against the API and, on
// success, transitions to Authenticated and fetches the first page.
func (c *Console) VerifySession(ctx context.Context) error {
	return c.verify(ctx, c.currentEpoch())
}

// verify runs the verification for a captured epoch. Only a verification
// whose epoch is still live at completion may commit Authenticated state.
func (c *Console) verify(ctx context.Context, epoch uint64) error {
	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return nil
	}
	c.state = StateChecking
	c.mu.Unlock()

	err := c.api.CheckSession(ctx)
	if !c.stillCurrent(epoch) {
		return nil
	}

	if err != nil {
		if hexapi.IsAuthFailure(err) {
			c.ForceLogout(msgSessionExpired)
			return err
		}
		// The stored token may still be valid; keep it for a retry.
		c.mu.Lock()
		if epoch == c.epoch {
			c.state = StateUnauthenticated
		}
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return nil
	}
	c.state = StateAuthenticated
	c.mu.Unlock()

	c.logger.Info("session verified")
	return c.ListPage(ctx, 1)
}

// RestoreSession re-authenticates from the persisted token on startup. It
// does nothing unless both the token and the session flag are present; a
// failed restore clears the token, since it proved invalid.
func (c *Console) RestoreSession(ctx context.Context) error {
	tok, ok, err := c.tokens.Load()
	if err != nil {
		c.logger.Warn("loading token", "error", err)
		return nil
	}
	if !ok || !c.flag.IsSet() {
		return nil
	}

	epoch := c.currentEpoch()
	c.api.SetAuthorization(tok.Value)

	err = c.verify(ctx, epoch)

	if c.stillCurrent(epoch) && c.State() != StateAuthenticated {
		// The token did not hold up; drop it silently.
		c.clearSession()
		c.mu.Lock()
		if epoch == c.epoch {
			c.state = StateUnauthenticated
		}
		c.mu.Unlock()
	}
	return err
}
