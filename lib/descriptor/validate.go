package descriptor

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/distribution/reference"
	"github.com/moby/buildkit/frontend/dockerfile/shell"
)

// Validate checks the invariants a sandbox image descriptor must hold.
// Every problem is reported; the result wraps ErrInvalid.
func (d *Descriptor) Validate() error {
	errs := append([]error(nil), d.problems...)

	if d.BaseImage == "" {
		errs = append(errs, ErrMissingBase)
	} else if _, err := reference.ParseNormalizedNamed(d.ExpandedBaseImage()); err != nil {
		errs = append(errs, fmt.Errorf("base image %q: %w", d.BaseImage, err))
	}

	if d.WorkDir != "" && !path.IsAbs(d.WorkDir) {
		errs = append(errs, fmt.Errorf("workdir %q must be absolute", d.WorkDir))
	}

	for _, env := range d.Env {
		if !validEnvName.MatchString(env.Name) {
			errs = append(errs, fmt.Errorf("invalid environment variable name %q", env.Name))
		}
	}

	for _, arg := range d.Args {
		if !validEnvName.MatchString(arg.Name) {
			errs = append(errs, fmt.Errorf("invalid build argument name %q", arg.Name))
		}
	}

	switch user := d.RuntimeUser(); user {
	case "":
		errs = append(errs, fmt.Errorf("%w: no USER instruction", ErrRootUser))
	case "root", "0":
		errs = append(errs, ErrRootUser)
	}

	if len(d.Cmd) == 0 && len(d.Entrypoint) == 0 {
		errs = append(errs, errors.New("no default command"))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Problems lists the individual failures joined into a Validate error
func Problems(err error) []string {
	if err == nil {
		return nil
	}
	multi, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []string{err.Error()}
	}
	var out []string
	for _, e := range multi.Unwrap() {
		if e == ErrInvalid {
			continue
		}
		out = append(out, Problems(e)...)
	}
	return out
}

// Warnings reports suspicious but buildable constructs
func (d *Descriptor) Warnings() []string {
	var warnings []string

	user := d.RuntimeUser()
	if user != "" && user != "root" && !isNumeric(user) && indexOf(d.users, user) < 0 {
		warnings = append(warnings, fmt.Sprintf("user %q is not created by this descriptor and must exist in the base image", user))
	}

	// Package managers need root; flag installs that happen after USER switches away.
	current := ""
	for _, step := range d.Steps {
		switch step.Kind {
		case KindUser:
			current, _, _ = strings.Cut(d.literal(step.Args), ":")
		case KindRun:
			cmd, err := runCommand(step)
			if err != nil {
				continue
			}
			if current != "" && current != "root" && current != "0" && len(detectPackages(cmd)) > 0 {
				warnings = append(warnings, fmt.Sprintf("line %d installs packages as non-root user %q", step.Line, current))
			}
		}
	}

	if strings.HasSuffix(d.ExpandedBaseImage(), ":latest") || !strings.ContainsAny(lastSegment(d.ExpandedBaseImage()), ":@") {
		warnings = append(warnings, fmt.Sprintf("base image %q is not pinned to a version", d.BaseImage))
	}

	return warnings
}

// ExpandedBaseImage substitutes ARG defaults into the FROM reference
func (d *Descriptor) ExpandedBaseImage() string {
	args := make([]string, 0, len(d.Args))
	for _, a := range d.Args {
		args = append(args, a.Name+"="+a.Default)
	}
	ref, _, err := shell.NewLex(d.escapeToken()).ProcessWord(d.BaseImage, shell.EnvsFromSlice(args))
	if err != nil {
		return d.BaseImage
	}
	return ref
}

func lastSegment(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
