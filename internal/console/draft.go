// ABOUTME: Product draft validation and normalization
// ABOUTME: Required-field checks, rating clamp, and modification stamping

package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/claudia1121/catalog-admin/internal/hexapi"
)

// Required-field labels, shown verbatim in validation messages.
const (
	labelTitle    = "標題"
	labelCategory = "分類"
	labelUnit     = "單位"
)

// requiredFields lists the fields a draft must fill, in display order.
var requiredFields = []struct {
	label string
	value func(hexapi.Product) string
}{
	{labelTitle, func(p hexapi.Product) string { return p.Title }},
	{labelCategory, func(p hexapi.Product) string { return p.Category }},
	{labelUnit, func(p hexapi.Product) string { return p.Unit }},
}

// ValidationError reports required fields missing from a draft. No network
// call is made when a draft fails validation.
type ValidationError struct {
	// Fields holds the labels of the missing fields, in display order.
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, messageDelimiter)
}

// validationMessage is the combined modal message naming every missing field.
func (e *ValidationError) validationMessage() string {
	parts := make([]string, len(e.Fields))
	for i, label := range e.Fields {
		parts[i] = label + "為必填"
	}
	return "無法存檔：" + strings.Join(parts, messageDelimiter)
}

// validateDraft returns nil when every required field is non-empty after
// trimming.
func validateDraft(p hexapi.Product) *ValidationError {
	var missing []string
	for _, f := range requiredFields {
		if strings.TrimSpace(f.value(p)) == "" {
			missing = append(missing, f.label)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing}
}

// ClampRating confines a rating to the closed interval [0, 5].
func ClampRating(r int) int {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}

// normalizeDraft applies the submission-side coercions: the rating clamp and
// a fresh modification timestamp.
func normalizeDraft(p hexapi.Product) hexapi.Product {
	p.Rating = ClampRating(p.Rating)
	p.ModifiedAt = time.Now().UnixMilli()
	return p
}

// DeletePrompt carries the details a delete confirmation presents, enough to
// disambiguate the row being removed.
type DeletePrompt struct {
	DisplayNo int
	Title     string
	Category  string
	Price     string
	ID        string
}

// deletePrompt builds the confirmation details for a product. Products not
// present in the current page still get a prompt keyed on the id alone.
func deletePrompt(p hexapi.Product, displayNo int) DeletePrompt {
	prompt := DeletePrompt{
		DisplayNo: displayNo,
		Title:     p.Title,
		Category:  p.Category,
		Price:     fmt.Sprintf("%g", p.Price),
		ID:        p.ID,
	}
	if prompt.Title == "" {
		prompt.Title = "(未命名)"
	}
	if prompt.Category == "" {
		prompt.Category = "-"
	}
	return prompt
}
