package rules

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/inspect"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// RemoveMetadataTags flags configured metadata tags present on an asset. The
// fix removes them all.
type RemoveMetadataTags struct {
	base
	tags []string
}

// NewRemoveMetadataTags creates the remove-metadata-tags rule.
func NewRemoveMetadataTags(tags []string) *RemoveMetadataTags {
	return &RemoveMetadataTags{
		base: base{meta: rule.Meta{
			ID:          "remove-metadata-tags",
			Description: "Assets do not carry banned metadata tags",
			Severity:    validator.SeverityWarning,
			Kinds:       asset.Kinds(),
		}},
		tags: slices.Clone(tags),
	}
}

func (r *RemoveMetadataTags) present(c *inspect.Context) []string {
	var found []string
	for _, tag := range r.tags {
		if _, ok := c.Metadata(tag); ok {
			found = append(found, tag)
		}
	}
	return found
}

func (r *RemoveMetadataTags) Check(_ context.Context, c *inspect.Context) ([]rule.Finding, error) {
	found := r.present(c)
	if len(found) == 0 {
		return nil, nil
	}
	return []rule.Finding{{
		Message: fmt.Sprintf("asset carries metadata tags that must be removed: %s", strings.Join(found, ", ")),
		Fixable: true,
	}}, nil
}

func (r *RemoveMetadataTags) Fix(_ context.Context, c *inspect.Context, ed *inspect.Editor, _ validator.Report) error {
	for _, tag := range r.present(c) {
		ed.RemoveMetadata(tag)
	}
	return nil
}

// RequiredProperties requires assets of configured classes to set the
// configured properties to non-blank values.
type RequiredProperties struct {
	base
	required map[string][]string
}

// NewRequiredProperties creates the required-properties rule.
func NewRequiredProperties(required map[string][]string) *RequiredProperties {
	cp := make(map[string][]string, len(required))
	for class, props := range required {
		cp[class] = slices.Clone(props)
	}
	return &RequiredProperties{
		base: base{meta: rule.Meta{
			ID:          "required-properties",
			Description: "Assets set the properties required for their class",
			Severity:    validator.SeverityError,
			Kinds:       asset.Kinds(),
		}},
		required: cp,
	}
}

func (r *RequiredProperties) Check(_ context.Context, c *inspect.Context) ([]rule.Finding, error) {
	var findings []rule.Finding
	for _, prop := range r.required[c.Class()] {
		v, ok := c.Property(prop)
		if ok && !asset.IsBlank(v) {
			continue
		}
		findings = append(findings, rule.Finding{
			Message: fmt.Sprintf("required property %s is not set", prop),
		})
	}
	return findings, nil
}
