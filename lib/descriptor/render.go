package descriptor

import (
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/parser"
	"github.com/opencontainers/go-digest"
	v1 "github.com/opencontainers/image-spec/specs-go/v1"
)

// Render returns the canonical text form. Parsing the output yields an
// equivalent descriptor, and rendering is stable across that round trip.
func (d *Descriptor) Render() string {
	var b strings.Builder
	escape := d.escapeToken()
	if escape != parser.DefaultEscapeToken {
		b.WriteString("# escape=" + string(escape) + "\n\n")
	}
	for _, step := range d.Steps {
		b.WriteString(string(step.Kind))
		for _, f := range step.Flags {
			b.WriteString(" ")
			b.WriteString(f)
		}
		if step.Args != "" {
			b.WriteString(" ")
			b.WriteString(renderArgs(step, escape))
		}
		b.WriteString("\n")
		if step.Kind == KindFrom {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderArgs(step Step, escape rune) string {
	if step.Kind != KindRun || step.JSON {
		return step.Args
	}
	return strings.Join(splitAndList(step.Args, escape), " "+string(escape)+"\n    && ")
}

// splitAndList splits a shell command at its top-level && operators.
// Operators inside quotes, $(...) and backticks stay where they are. A list
// with an empty member is returned whole.
func splitAndList(cmd string, escape rune) []string {
	runes := []rune(cmd)
	var (
		parts    []string
		quote    rune
		backtick bool
		start    int
		depth    int
	)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == escape && quote != '\'':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '`':
			backtick = !backtick
		case c == '$' && i+1 < len(runes) && runes[i+1] == '(':
			depth++
			i++
		case c == '(' && depth > 0:
			depth++
		case c == ')' && depth > 0:
			depth--
		case c == '&' && depth == 0 && !backtick && i+1 < len(runes) && runes[i+1] == '&':
			parts = append(parts, strings.TrimSpace(string(runes[start:i])))
			start = i + 2
			i++
		}
	}
	parts = append(parts, strings.TrimSpace(string(runes[start:])))

	for _, p := range parts {
		if p == "" {
			return []string{strings.TrimSpace(cmd)}
		}
	}
	return parts
}

// Digest is the content digest of the canonical form
func (d *Descriptor) Digest() digest.Digest {
	return digest.FromString(d.Render())
}

// ImageConfig projects the descriptor onto the OCI image configuration a
// built image is expected to carry. Variables inherited from the base image
// are taken from base; unknown references expand to the empty string.
func (d *Descriptor) ImageConfig(base map[string]string) v1.ImageConfig {
	cfg := v1.ImageConfig{
		User:       d.User,
		WorkingDir: d.WorkDir,
		Cmd:        d.Cmd,
		Entrypoint: d.Entrypoint,
	}

	for _, v := range d.ResolveEnv(base) {
		cfg.Env = append(cfg.Env, v.Name+"="+v.Value)
	}

	if len(d.Labels) > 0 {
		cfg.Labels = make(map[string]string, len(d.Labels))
		for k, v := range d.Labels {
			cfg.Labels[k] = v
		}
	}

	if len(d.Expose) > 0 {
		cfg.ExposedPorts = make(map[string]struct{}, len(d.Expose))
		for _, p := range d.Expose {
			if !strings.Contains(p, "/") {
				p += "/tcp"
			}
			cfg.ExposedPorts[p] = struct{}{}
		}
	}

	return cfg
}
