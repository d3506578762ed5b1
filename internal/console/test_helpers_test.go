// ABOUTME: Shared test fake for the catalog API
// ABOUTME: Records calls and supports gated completions for ordering tests

package console

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/claudia1121/catalog-admin/internal/hexapi"
	"github.com/claudia1121/catalog-admin/internal/session"
)

// fakeAPI implements the API interface with scripted responses. Gate
// channels, when set, let a test hold a call open and decide when it
// completes relative to other events.
type fakeAPI struct {
	mu sync.Mutex

	token string

	signInResult hexapi.SignInResult
	signInErr    error

	checkErr     error
	checkStarted chan struct{}
	checkRelease chan struct{}

	pages       map[int]hexapi.ProductPage
	listErr     error
	listCalls   []int
	listStarted chan struct{}
	listRelease chan struct{}

	created       []hexapi.Product
	createErr     error
	createStarted chan struct{}
	createRelease chan struct{}

	updated   map[string]hexapi.Product
	updateErr error

	deleted   []string
	deleteErr error

	uploadURL string
	uploadErr error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		signInResult: hexapi.SignInResult{
			Token:   "token-1",
			Expired: time.Now().Add(time.Hour).UnixMilli(),
		},
		pages:   map[int]hexapi.ProductPage{},
		updated: map[string]hexapi.Product{},
	}
}

// page builds a one-page fixture with standard pagination.
func page(current, total, perPage int, products ...hexapi.Product) hexapi.ProductPage {
	return hexapi.ProductPage{
		Products: products,
		Pagination: hexapi.Pagination{
			TotalPages:  total,
			CurrentPage: current,
			HasPre:      current > 1,
			HasNext:     current < total,
			PerPage:     perPage,
		},
	}
}

func (f *fakeAPI) SignIn(ctx context.Context, username, password string) (hexapi.SignInResult, error) {
	f.mu.Lock()
	res, err := f.signInResult, f.signInErr
	f.mu.Unlock()
	if err != nil {
		return hexapi.SignInResult{}, err
	}
	return res, nil
}

func (f *fakeAPI) CheckSession(ctx context.Context) error {
	f.mu.Lock()
	started, release, err := f.checkStarted, f.checkRelease, f.checkErr
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	return err
}

func (f *fakeAPI) ListProducts(ctx context.Context, page int) (hexapi.ProductPage, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, page)
	started, release, err := f.listStarted, f.listRelease, f.listErr
	res := f.pages[page]
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	if err != nil {
		return hexapi.ProductPage{}, err
	}
	return res, nil
}

func (f *fakeAPI) CreateProduct(ctx context.Context, p hexapi.Product) error {
	f.mu.Lock()
	started, release, err := f.createStarted, f.createRelease, f.createErr
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.created = append(f.created, p)
	f.mu.Unlock()
	return nil
}

func (f *fakeAPI) UpdateProduct(ctx context.Context, id string, p hexapi.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated[id] = p
	return nil
}

func (f *fakeAPI) DeleteProduct(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return f.uploadURL, nil
}

func (f *fakeAPI) SetAuthorization(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeAPI) ClearAuthorization() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
}

func (f *fakeAPI) authorization() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeAPI) listedPages() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, len(f.listCalls))
	copy(out, f.listCalls)
	return out
}

func (f *fakeAPI) createdProducts() []hexapi.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]hexapi.Product, len(f.created))
	copy(out, f.created)
	return out
}

func (f *fakeAPI) deletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.deleted))
	copy(out, f.deleted)
	return out
}

func (f *fakeAPI) updatedProduct(id string) (hexapi.Product, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.updated[id]
	return p, ok
}

// testConsole bundles a controller with its fake collaborators.
type testConsole struct {
	*Console
	api    *fakeAPI
	tokens *session.MemoryTokenStore
	flag   *session.MemoryFlag
}

// newTestConsole builds a controller with short timer windows so expiry can
// be observed without slowing the suite down.
func newTestConsole() *testConsole {
	api := newFakeAPI()
	tokens := session.NewMemoryTokenStore()
	flag := session.NewMemoryFlag()
	c := New(api, tokens, flag, Options{
		PageNoticeTTL:  100 * time.Millisecond,
		ModalNoticeTTL: 100 * time.Millisecond,
		HighlightTTL:   50 * time.Millisecond,
	})
	return &testConsole{Console: c, api: api, tokens: tokens, flag: flag}
}

// signedIn returns a console already in the authenticated state with page 1
// loaded.
func signedIn(tc *testConsole) {
	tc.api.pages[1] = page(1, 1, 10,
		hexapi.Product{ID: "p1", Title: "Oolong", Category: "tea", Unit: "包", Price: 120},
	)
	_ = tc.SignIn(context.Background(), "admin@example.com", "secret")
}
