package rule

import (
	"slices"
	"strings"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/inspect"
)

// Matcher selects the assets a rule applies to.
type Matcher interface {
	Match(c *inspect.Context) bool
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(c *inspect.Context) bool

func (f MatcherFunc) Match(c *inspect.Context) bool { return f(c) }

// UnderDir reports whether assetPath equals dir or lies below it. The
// comparison is case-sensitive.
func UnderDir(assetPath, dir string) bool {
	dir = strings.TrimSuffix(dir, "/")
	return assetPath == dir || strings.HasPrefix(assetPath, dir+"/")
}

// InDirs matches assets under any of dirs.
func InDirs(dirs ...string) Matcher {
	dirs = slices.Clone(dirs)
	return MatcherFunc(func(c *inspect.Context) bool {
		return slices.ContainsFunc(dirs, func(d string) bool { return UnderDir(c.Path(), d) })
	})
}

// NamePrefix matches assets whose name starts with prefix.
func NamePrefix(prefix string) Matcher {
	return MatcherFunc(func(c *inspect.Context) bool { return strings.HasPrefix(c.Name(), prefix) })
}

// NameSuffix matches assets whose name ends with suffix.
func NameSuffix(suffix string) Matcher {
	return MatcherFunc(func(c *inspect.Context) bool { return strings.HasSuffix(c.Name(), suffix) })
}

// HasMetadata matches assets carrying the metadata tag.
func HasMetadata(key string) Matcher {
	return MatcherFunc(func(c *inspect.Context) bool {
		_, ok := c.Metadata(key)
		return ok
	})
}

// ClassIs matches assets of any of the given host classes.
func ClassIs(classes ...string) Matcher {
	classes = slices.Clone(classes)
	return MatcherFunc(func(c *inspect.Context) bool { return slices.Contains(classes, c.Class()) })
}

// HasProperty matches assets that set the property.
func HasProperty(name string) Matcher {
	return MatcherFunc(func(c *inspect.Context) bool {
		_, ok := c.Property(name)
		return ok
	})
}

// PropertyEquals matches assets whose property renders as the same string
// as value, so 3 matches "3" and true matches "true".
func PropertyEquals(name string, value any) Matcher {
	want := asset.String(value)
	return MatcherFunc(func(c *inspect.Context) bool {
		got, ok := c.Property(name)
		return ok && asset.String(got) == want
	})
}

// And matches when every matcher matches.
func And(ms ...Matcher) Matcher {
	return MatcherFunc(func(c *inspect.Context) bool {
		for _, m := range ms {
			if !m.Match(c) {
				return false
			}
		}
		return true
	})
}

// Or matches when any matcher matches.
func Or(ms ...Matcher) Matcher {
	return MatcherFunc(func(c *inspect.Context) bool {
		for _, m := range ms {
			if m.Match(c) {
				return true
			}
		}
		return false
	})
}

// Not inverts a matcher.
func Not(m Matcher) Matcher {
	return MatcherFunc(func(c *inspect.Context) bool { return !m.Match(c) })
}
