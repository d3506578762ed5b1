// ABOUTME: Paginated catalog fetches and serialized mutations
// ABOUTME: Page intent is captured once per mutation, never re-derived

package console

import (
	"context"
	"io"

	"github.com/claudia1121/catalog-admin/internal/hexapi"
)

// ListPage fetches one page of the catalog and replaces the product list and
// pagination descriptor atomically. A stale completion is discarded without
// touching state; a failure leaves the previous page intact.
func (c *Console) ListPage(ctx context.Context, page int) error {
	c.mu.Lock()
	epoch := c.epoch
	c.loading = true
	c.mu.Unlock()

	res, err := c.api.ListProducts(ctx, page)

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return nil
	}
	c.loading = false
	if err == nil {
		c.products = res.Products
		c.pagination = res.Pagination
	}
	c.mu.Unlock()

	if err != nil {
		if hexapi.IsAuthFailure(err) {
			c.ForceLogout(msgSessionExpired)
			return err
		}
		c.notices.Show(ScopePage, msgFetchFailed)
		return err
	}

	c.notices.Dismiss(ScopePage)
	return nil
}

// Create validates the draft locally, creates it, and re-fetches page 1.
// Missing required fields abort before any network call, naming every
// missing field in one modal notice.
func (c *Console) Create(ctx context.Context, draft hexapi.Product) error {
	if v := validateDraft(draft); v != nil {
		c.notices.Show(ScopeModal, v.validationMessage())
		return v
	}

	epoch, err := c.beginMutation()
	if err != nil {
		return err
	}
	defer c.endMutation(epoch)

	c.notices.Dismiss(ScopeModal)

	if err := c.api.CreateProduct(ctx, normalizeDraft(draft)); err != nil {
		return c.mutationFailure(epoch, err, ScopeModal, msgSaveFailed)
	}
	if !c.stillCurrent(epoch) {
		return nil
	}

	// The new item is assumed to sort onto the first page.
	err = c.ListPage(ctx, 1)
	c.notices.Dismiss(ScopeModal)
	return err
}

// Update validates the draft locally, updates the product, re-fetches the
// page that was displayed when the edit was submitted, and flags the id for
// a transient highlight.
func (c *Console) Update(ctx context.Context, id string, draft hexapi.Product) error {
	if v := validateDraft(draft); v != nil {
		c.notices.Show(ScopeModal, v.validationMessage())
		return v
	}

	epoch, err := c.beginMutation()
	if err != nil {
		return err
	}
	defer c.endMutation(epoch)

	intent := c.pageIntent()
	c.notices.Dismiss(ScopeModal)

	if err := c.api.UpdateProduct(ctx, id, normalizeDraft(draft)); err != nil {
		return c.mutationFailure(epoch, err, ScopeModal, msgSaveFailed)
	}
	if !c.stillCurrent(epoch) {
		return nil
	}

	err = c.ListPage(ctx, intent)
	if c.stillCurrent(epoch) {
		c.flashHighlight(id)
	}
	c.notices.Dismiss(ScopeModal)
	return err
}

// Remove deletes a product after the confirm callback approves the prompt.
// A declined prompt makes no network call. Success re-fetches the page that
// was displayed when the delete was requested.
func (c *Console) Remove(ctx context.Context, id string, confirm func(DeletePrompt) bool) error {
	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return ErrBusy
	}
	prompt := deletePrompt(hexapi.Product{ID: id}, 0)
	for i, p := range c.products {
		if p.ID == id {
			prompt = deletePrompt(p, displayNumber(c.pagination, i))
			break
		}
	}
	c.mu.Unlock()

	if confirm != nil && !confirm(prompt) {
		return nil
	}

	epoch, err := c.beginMutation()
	if err != nil {
		return err
	}
	defer c.endMutation(epoch)

	intent := c.pageIntent()
	c.notices.Dismiss(ScopePage)

	if err := c.api.DeleteProduct(ctx, id); err != nil {
		return c.mutationFailure(epoch, err, ScopePage, msgDeleteFailed)
	}
	if !c.stillCurrent(epoch) {
		return nil
	}

	return c.ListPage(ctx, intent)
}

// UploadImage uploads one image and returns its hosted URL. Failures
// surface as a modal notice so the edit surface can stay open.
func (c *Console) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	epoch := c.currentEpoch()

	url, err := c.api.UploadImage(ctx, filename, r)
	if !c.stillCurrent(epoch) {
		return "", nil
	}
	if err != nil {
		if hexapi.IsAuthFailure(err) {
			c.ForceLogout(msgSessionExpired)
			return "", err
		}
		c.notices.Show(ScopeModal, msgUploadFailed)
		return "", err
	}
	return url, nil
}

// beginMutation acquires the saving flag and captures the live epoch.
func (c *Console) beginMutation() (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saving {
		return 0, ErrBusy
	}
	c.saving = true
	return c.epoch, nil
}

// endMutation releases the saving flag unless the session was reset in the
// meantime, in which case the reset already dropped it.
func (c *Console) endMutation(epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch == c.epoch {
		c.saving = false
	}
}

// pageIntent reads the currently displayed page once, for re-fetching after
// a mutation.
func (c *Console) pageIntent() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pagination.CurrentPage < 1 {
		return 1
	}
	return c.pagination.CurrentPage
}

// mutationFailure routes a mutation error: authorization failures force a
// logout, everything else lands in the given notice scope with the server
// message or a fallback. Stale completions surface nothing.
func (c *Console) mutationFailure(epoch uint64, err error, scope Scope, fallback string) error {
	if !c.stillCurrent(epoch) {
		return nil
	}
	if hexapi.IsAuthFailure(err) {
		c.ForceLogout(msgSessionExpired)
		return err
	}
	msg := fallback
	if apiErr, ok := hexapi.AsAPIError(err); ok && apiErr.JoinedMessage() != "" {
		msg = apiErr.JoinedMessage()
	}
	c.notices.Show(scope, msg)
	return err
}
