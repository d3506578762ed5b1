// ABOUTME: Session controller state, epochs, and forced-logout reset
// ABOUTME: Owns the authenticated flag and all catalog view state

package console

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/claudia1121/catalog-admin/internal/hexapi"
	"github.com/claudia1121/catalog-admin/internal/session"
)

// State is the auth/session state.
type State int

const (
	StateUnauthenticated State = iota
	StateChecking
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// ErrBusy is returned when a mutation is rejected because another one is
// still outstanding. Mutations are serialized, never concurrent.
var ErrBusy = errors.New("another operation is in progress")

// messageDelimiter joins multi-part user-facing messages.
const messageDelimiter = "、"

// User-facing notices, verbatim from the admin surface.
const (
	msgSessionExpired = "登入已失效（401/403），請重新登入"
	msgBadCredentials = "登入失敗：帳號或密碼錯誤"
	msgFetchFailed    = "取得產品失敗，請稍後再試"
	msgSaveFailed     = "儲存失敗，請稍後再試"
	msgDeleteFailed   = "刪除失敗，請稍後再試"
	msgUploadFailed   = "主圖上傳失敗，請稍後再試"
)

// API is the slice of the catalog client the controller needs.
type API interface {
	SignIn(ctx context.Context, username, password string) (hexapi.SignInResult, error)
	CheckSession(ctx context.Context) error
	ListProducts(ctx context.Context, page int) (hexapi.ProductPage, error)
	CreateProduct(ctx context.Context, p hexapi.Product) error
	UpdateProduct(ctx context.Context, id string, p hexapi.Product) error
	DeleteProduct(ctx context.Context, id string) error
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
	SetAuthorization(token string)
	ClearAuthorization()
}

// TokenStore persists the session token. *session.FileTokenStore and
// *session.MemoryTokenStore both satisfy it.
type TokenStore interface {
	Load() (tok session.Token, ok bool, err error)
	Save(tok session.Token) error
	Clear() error
}

// SessionFlag marks that this session logged in explicitly.
type SessionFlag interface {
	Set() error
	Clear() error
	IsSet() bool
}

// Options tunes the controller's timer windows.
type Options struct {
	PageNoticeTTL  time.Duration
	ModalNoticeTTL time.Duration
	HighlightTTL   time.Duration
	Logger         *slog.Logger
}

// Console orchestrates the session state machine and the catalog view.
type Console struct {
	api     API
	tokens  TokenStore
	flag    SessionFlag
	logger  *slog.Logger
	notices *Notifier

	highlightTTL time.Duration

	mu             sync.Mutex
	epoch          uint64
	state          State
	username       string
	submitting     bool
	saving         bool
	loading        bool
	products       []hexapi.Product
	pagination     hexapi.Pagination
	highlightID    string
	highlightSeq   uint64
	highlightTimer *time.Timer
}

// New creates a controller. Zero option fields fall back to the production
// windows (3s notices, 2.5s highlight).
func New(api API, tokens TokenStore, flag SessionFlag, opts Options) *Console {
	if opts.PageNoticeTTL == 0 {
		opts.PageNoticeTTL = 3 * time.Second
	}
	if opts.ModalNoticeTTL == 0 {
		opts.ModalNoticeTTL = 3 * time.Second
	}
	if opts.HighlightTTL == 0 {
		opts.HighlightTTL = 2500 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Console{
		api:          api,
		tokens:       tokens,
		flag:         flag,
		logger:       opts.Logger,
		notices:      NewNotifier(opts.PageNoticeTTL, opts.ModalNoticeTTL),
		highlightTTL: opts.HighlightTTL,
	}
}

// State returns the current session state.
func (c *Console) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Products returns the last successfully fetched page. The slice is a copy.
func (c *Console) Products() []hexapi.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]hexapi.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Pagination returns the descriptor of the last successful fetch.
func (c *Console) Pagination() hexapi.Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagination
}

// Loading reports whether a list fetch is outstanding.
func (c *Console) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// HighlightID returns the id flagged for a transient highlight, empty when
// none is flagged.
func (c *Console) HighlightID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.highlightID
}

// PageNotice returns the current page-scoped notice.
func (c *Console) PageNotice() string {
	return c.notices.Message(ScopePage)
}

// ModalNotice returns the current modal-scoped notice.
func (c *Console) ModalNotice() string {
	return c.notices.Message(ScopeModal)
}

// DismissModalNotice clears the modal notice immediately, as closing the
// edit surface does.
func (c *Console) DismissModalNotice() {
	c.notices.Dismiss(ScopeModal)
}

// Username returns the login name kept across forced logouts.
func (c *Console) Username() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.username
}

// DisplayNumber converts a local row index on the current page into the
// global serial number shown to the user.
func (c *Console) DisplayNumber(localIndex int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return displayNumber(c.pagination, localIndex)
}

func displayNumber(p hexapi.Pagination, localIndex int) int {
	page := p.CurrentPage
	if page < 1 {
		page = 1
	}
	per := p.PerPage
	if per < 1 {
		per = 10
	}
	return (page-1)*per + localIndex + 1
}

// stillCurrent reports whether the captured epoch is still live.
func (c *Console) stillCurrent(epoch uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return epoch == c.epoch
}

// currentEpoch captures the live epoch.
func (c *Console) currentEpoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

// resetLocked invalidates all in-flight work and clears dependent state.
// Callers hold c.mu.
func (c *Console) resetLocked(clearUsername bool) {
	c.epoch++
	c.state = StateUnauthenticated
	c.products = nil
	c.pagination = hexapi.Pagination{}
	c.submitting = false
	c.saving = false
	c.loading = false
	c.highlightID = ""
	c.highlightSeq++
	if c.highlightTimer != nil {
		c.highlightTimer.Stop()
		c.highlightTimer = nil
	}
	if clearUsername {
		c.username = ""
	}
}

// clearSession drops the token everywhere: header, store, and session flag.
func (c *Console) clearSession() {
	c.api.ClearAuthorization()
	if err := c.tokens.Clear(); err != nil {
		c.logger.Warn("clearing token", "error", err)
	}
	if err := c.flag.Clear(); err != nil {
		c.logger.Warn("clearing session flag", "error", err)
	}
}

// ForceLogout resets the session in response to an authorization failure.
// Idempotent: repeating it only refreshes the notice.
func (c *Console) ForceLogout(message string) {
	c.mu.Lock()
	c.resetLocked(false)
	c.mu.Unlock()

	c.clearSession()
	c.notices.Dismiss(ScopeModal)
	if message != "" {
		c.notices.Show(ScopePage, message)
	} else {
		c.notices.Dismiss(ScopePage)
	}

	c.logger.Info("session reset", "forced", true)
}

// Logout is the explicit user action: the same reset, silently, and the
// remembered username goes too.
func (c *Console) Logout() {
	c.mu.Lock()
	c.resetLocked(true)
	c.mu.Unlock()

	c.clearSession()
	c.notices.Dismiss(ScopeModal)
	c.notices.Dismiss(ScopePage)

	c.logger.Info("session reset", "forced", false)
}

// flashHighlight flags id for a transient highlight, restarting the window
// when one is already running.
func (c *Console) flashHighlight(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.highlightTimer != nil {
		c.highlightTimer.Stop()
	}
	c.highlightID = id
	c.highlightSeq++

	seq := c.highlightSeq
	c.highlightTimer = time.AfterFunc(c.highlightTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.highlightSeq == seq {
			c.highlightID = ""
			c.highlightTimer = nil
		}
	})
}

// Close tears the controller down: in-flight work is invalidated and all
// timers stop. State is left unauthenticated but the stored token survives.
func (c *Console) Close() {
	c.mu.Lock()
	c.resetLocked(false)
	c.mu.Unlock()
	c.notices.Close()
}
