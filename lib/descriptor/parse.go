package descriptor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/parser"
	"github.com/moby/buildkit/frontend/dockerfile/shell"
)

// Parse reads a descriptor. Line continuations, comments and the escape
// directive are handled by the BuildKit Dockerfile parser; instruction
// arguments are interpreted here.
func Parse(r io.Reader) (*Descriptor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read descriptor: %w", err)
	}

	if !hasInstructions(data) {
		return nil, ErrEmpty
	}

	result, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if result.AST == nil || len(result.AST.Children) == 0 {
		return nil, ErrEmpty
	}

	d := &Descriptor{escape: result.EscapeToken}
	for _, node := range result.AST.Children {
		if len(node.Heredocs) > 0 {
			d.problems = append(d.problems, fmt.Errorf("%w: heredoc (line %d)", ErrUnsupportedInstruction, node.StartLine))
			continue
		}
		d.Add(Step{
			Kind:  Kind(strings.ToUpper(node.Value)),
			Args:  nodeArgs(node),
			Flags: node.Flags,
			JSON:  node.Attributes["json"],
			Line:  node.StartLine,
		})
	}

	if d.froms == 0 {
		d.problems = append(d.problems, ErrMissingBase)
	}
	if len(d.problems) > 0 {
		return nil, errors.Join(d.problems...)
	}

	return d, nil
}

// ParseFile reads a descriptor from disk
func ParseFile(path string) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ParseString is a convenience for in-memory descriptors
func ParseString(s string) (*Descriptor, error) {
	return Parse(strings.NewReader(s))
}

// nodeArgs strips the keyword and flags from the joined logical line
func nodeArgs(node *parser.Node) string {
	rest := strings.TrimSpace(node.Original)
	_, rest = cutWord(rest)
	for range node.Flags {
		_, rest = cutWord(rest)
	}
	return strings.TrimSpace(rest)
}

func cutWord(s string) (string, string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}

func hasInstructions(data []byte) bool {
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) > 0 && line[0] != '#' {
			return true
		}
	}
	return false
}

// keyValues splits ENV and LABEL arguments the way the Dockerfile parser
// does, including the legacy "KEY value with spaces" form. Values keep
// their quotes and escapes; expansion happens later.
func keyValues(kind Kind, args string, escape rune) ([][2]string, error) {
	src := string(kind) + " " + args + "\n"
	if escape != parser.DefaultEscapeToken {
		src = "# escape=" + string(escape) + "\n" + src
	}
	result, err := parser.Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	if result.AST == nil || len(result.AST.Children) != 1 || result.AST.Children[0].Next == nil {
		return nil, errors.New("missing arguments")
	}

	var pairs [][2]string
	for n := result.AST.Children[0].Next; n != nil; {
		if n.Next == nil {
			return nil, fmt.Errorf("expected key=value, got %q", n.Value)
		}
		pairs = append(pairs, [2]string{n.Value, n.Next.Value})
		if n.Next.Next == nil {
			break
		}
		n = n.Next.Next.Next
	}
	return pairs, nil
}

// literal removes quotes and escapes the way the builder does, leaving
// variable references unexpanded
func (d *Descriptor) literal(word string) string {
	lex := shell.NewLex(d.escapeToken())
	lex.SkipUnsetEnv = true
	out, _, err := lex.ProcessWord(strings.TrimSpace(word), shell.EnvsFromSlice(nil))
	if err != nil {
		return strings.TrimSpace(word)
	}
	return out
}

func quoteIfNeeded(v string) string {
	if v != "" && !strings.ContainsAny(v, " \t\"'\\") {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(v) + `"`
}
