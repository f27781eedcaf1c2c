package descriptor

import (
	"regexp"
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/shell"
)

var validEnvName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// missingMarker stands in for references that could not be resolved
const missingMarker = "\x00"

// ResolvedVar is the final value of an environment variable after all
// ENV steps have been applied
type ResolvedVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	// Complete is false when the value references variables whose value
	// is unknown (typically inherited from the base image)
	Complete bool `json:"complete"`
	// Missing lists the unresolved references
	Missing []string `json:"missing,omitempty"`

	pattern *regexp.Regexp
}

// Matches reports whether an observed value is consistent with this one.
// Complete values must be equal; incomplete ones must match with every
// unresolved reference standing for an arbitrary string.
func (v ResolvedVar) Matches(observed string) bool {
	if v.Complete || v.pattern == nil {
		return observed == v.Value
	}
	return v.pattern.MatchString(observed)
}

// envState is a variable's value during resolution. marked holds the value
// with unresolved references replaced by missingMarker.
type envState struct {
	value   string
	marked  string
	missing []string
}

// envScope feeds known values to the shell lexer. A name with no known
// value may still be set in the base image, so it resolves to
// missingMarker and is recorded rather than treated as unset.
type envScope struct {
	known   map[string]envState
	args    map[string]string
	missing []string
}

func (e *envScope) Get(name string) (string, bool) {
	if s, ok := e.known[name]; ok {
		e.missing = append(e.missing, s.missing...)
		return s.marked, true
	}
	if a, ok := e.args[name]; ok {
		return a, true
	}
	e.missing = append(e.missing, name)
	return missingMarker, true
}

func (e *envScope) Keys() []string {
	keys := make([]string, 0, len(e.known)+len(e.args))
	for k := range e.known {
		keys = append(keys, k)
	}
	for k := range e.args {
		keys = append(keys, k)
	}
	return keys
}

// ResolveEnv applies ENV assignments in order with Dockerfile word
// semantics: quotes and escapes are removed, and $NAME, ${NAME} and the
// ${NAME:-word} / ${NAME:+word} modifiers expand against the values known
// at that point. base holds values inherited from the base image; ARG
// defaults are visible to expansion but not exported.
func (d *Descriptor) ResolveEnv(base map[string]string) []ResolvedVar {
	scope := &envScope{
		known: make(map[string]envState, len(base)+len(d.Env)),
		args:  make(map[string]string, len(d.Args)),
	}
	for k, v := range base {
		scope.known[k] = envState{value: v, marked: v}
	}
	for _, a := range d.Args {
		scope.args[a.Name] = a.Default
	}
	lex := shell.NewLex(d.escapeToken())

	var order []string
	seen := make(map[string]bool)

	for _, env := range d.Env {
		scope.missing = nil
		marked, _, err := lex.ProcessWord(env.Value, scope)
		missing := scope.missing
		if err != nil {
			// The builder rejects the word; nothing is known about the value
			marked = missingMarker
			missing = append(missing, env.Name)
		}

		scope.known[env.Name] = envState{
			value:   strings.ReplaceAll(marked, missingMarker, ""),
			marked:  marked,
			missing: missing,
		}
		if !seen[env.Name] {
			seen[env.Name] = true
			order = append(order, env.Name)
		}
	}

	resolved := make([]ResolvedVar, 0, len(order))
	for _, name := range order {
		s := scope.known[name]
		v := ResolvedVar{
			Name:     name,
			Value:    s.value,
			Complete: len(s.missing) == 0,
			Missing:  appendUnique(nil, s.missing...),
		}
		if !v.Complete {
			parts := strings.Split(s.marked, missingMarker)
			for i := range parts {
				parts[i] = regexp.QuoteMeta(parts[i])
			}
			v.pattern = regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
		}
		resolved = append(resolved, v)
	}
	return resolved
}

// EnvMap returns the resolved environment as a map
func (d *Descriptor) EnvMap(base map[string]string) map[string]string {
	out := make(map[string]string)
	for _, v := range d.ResolveEnv(base) {
		out[v.Name] = v.Value
	}
	return out
}
