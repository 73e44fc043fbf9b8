// Package filter evaluates user-supplied expressions against movies.
//
// Expressions use the expr language and must produce a boolean. Every Item
// field is available by name, along with a few helpers:
//
//	Year >= 2000 and VoteAverage > 7
//	lower(Title) contains "star"
//	hasGenre(878) and daysSince(AddedAt) < 30
//	titleHas("matrix")
package filter

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled expression
type Filter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache enables compile caching with the specified size
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// Compiler turns expressions into Filters
type Compiler struct {
	helpers map[string]any
	cache   *lruCache
}

// NewCompiler creates a new Compiler
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{helpers: staticHelpers()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile parses and type-checks an expression
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.compileEnv()),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &Filter{expression: expression, program: program, helpers: c.helpers}
	if c.cache != nil {
		c.cache.Put(expression, f)
	}
	return f, nil
}

// CacheSize returns the number of cached filters
func (c *Compiler) CacheSize() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// compileEnv declares item fields with their types so expressions are checked
func (c *Compiler) compileEnv() map[string]any {
	env := itemEnv(Item{})
	maps.Copy(env, c.helpers)
	return env
}

// Expression returns the source expression
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against item. Items that fail to evaluate do not
// match.
func (f *Filter) Match(item Item) bool {
	env := itemEnv(item)
	maps.Copy(env, f.helpers)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}
	matched, _ := result.(bool)
	return matched
}

// Apply returns the elements of items that match f. A nil filter matches
// everything.
func Apply[T any](f *Filter, items []T, convert func(T) Item) []T {
	if f == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if f.Match(convert(it)) {
			out = append(out, it)
		}
	}
	return out
}

// Resolve picks the expression to use: an explicit expression wins over a
// named preset. Both empty means no filtering and yields "".
func Resolve(expression, preset string, presets map[string]string) (string, error) {
	if strings.TrimSpace(expression) != "" {
		return expression, nil
	}
	if preset == "" {
		return "", nil
	}
	if e, ok := presets[preset]; ok {
		return e, nil
	}
	return "", &PresetNotFoundError{Name: preset}
}

func itemEnv(item Item) map[string]any {
	genres := item.GenreIDs
	return map[string]any{
		"MovieID":     item.MovieID,
		"Title":       item.Title,
		"Year":        item.Year,
		"Overview":    item.Overview,
		"PosterPath":  item.PosterPath,
		"AddedAt":     item.AddedAt,
		"VoteAverage": item.VoteAverage,
		"Popularity":  item.Popularity,
		"GenreIDs":    item.GenreIDs,
		"hasGenre": func(id int) bool {
			return slices.Contains(genres, id)
		},
		"titleHas": func(substr string) bool {
			return strings.Contains(strings.ToLower(item.Title), strings.ToLower(substr))
		},
	}
}

func staticHelpers() map[string]any {
	return map[string]any{
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
		"yearsAgo": func(years int) time.Time {
			return time.Now().AddDate(-years, 0, 0)
		},
	}
}
