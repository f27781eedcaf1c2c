// Package descriptor interprets container image build descriptors.
//
// A descriptor is Dockerfile-format text describing a single-stage runtime
// image: a base image, package installation, a non-root user, environment
// variables and a default command. The package parses it into a typed model,
// renders it back to canonical text, detects the packages and users it
// creates, and validates the invariants a sandbox image must hold.
package descriptor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/parser"
)

// Kind is an instruction keyword
type Kind string

const (
	KindFrom       Kind = "FROM"
	KindArg        Kind = "ARG"
	KindWorkdir    Kind = "WORKDIR"
	KindRun        Kind = "RUN"
	KindUser       Kind = "USER"
	KindEnv        Kind = "ENV"
	KindCmd        Kind = "CMD"
	KindEntrypoint Kind = "ENTRYPOINT"
	KindLabel      Kind = "LABEL"
	KindCopy       Kind = "COPY"
	KindExpose     Kind = "EXPOSE"
)

var supportedKinds = map[Kind]bool{
	KindFrom:       true,
	KindArg:        true,
	KindWorkdir:    true,
	KindRun:        true,
	KindUser:       true,
	KindEnv:        true,
	KindCmd:        true,
	KindEntrypoint: true,
	KindLabel:      true,
	KindCopy:       true,
	KindExpose:     true,
}

// Step is one instruction in source order
type Step struct {
	Kind  Kind     `json:"kind"`
	Args  string   `json:"args"`
	Flags []string `json:"flags,omitempty"`
	JSON  bool     `json:"json,omitempty"` // exec form (["a", "b"])
	Line  int      `json:"line,omitempty"`
}

// Package is a system or language package installed by a RUN step
type Package struct {
	Name    string `json:"name"`
	Manager string `json:"manager"`
}

// EnvVar is an environment assignment as written, before expansion
type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Arg is a build argument with its optional default
type Arg struct {
	Name    string `json:"name"`
	Default string `json:"default,omitempty"`
}

// Descriptor is the interpreted form of a build descriptor
type Descriptor struct {
	BaseImage  string            `json:"base_image"`
	Stage      string            `json:"stage,omitempty"`
	WorkDir    string            `json:"work_dir,omitempty"`
	Packages   []Package         `json:"packages,omitempty"`
	User       string            `json:"user,omitempty"`
	Env        []EnvVar          `json:"env,omitempty"`
	Cmd        []string          `json:"cmd,omitempty"`
	Entrypoint []string          `json:"entrypoint,omitempty"`
	Labels     map[string]string `json:"labels,omitempty"`
	Args       []Arg             `json:"args,omitempty"`
	Expose     []string          `json:"expose,omitempty"`
	Steps      []Step            `json:"steps"`

	users    []string
	problems []error
	froms    int
	escape   rune
}

// New returns a descriptor based on the given image
func New(baseImage string) *Descriptor {
	d := &Descriptor{}
	d.Add(Step{Kind: KindFrom, Args: baseImage})
	return d
}

// Rebase returns a copy with the FROM image replaced
func (d *Descriptor) Rebase(image string) *Descriptor {
	out := &Descriptor{escape: d.escape}
	for _, step := range d.Steps {
		if step.Kind == KindFrom {
			step.Args = image
			if d.Stage != "" {
				step.Args += " AS " + d.Stage
			}
		}
		out.Add(step)
	}
	return out
}

// Users returns the accounts created by RUN steps, in creation order
func (d *Descriptor) Users() []string {
	return append([]string(nil), d.users...)
}

// RuntimeUser returns the user part of the USER instruction (without group)
func (d *Descriptor) RuntimeUser() string {
	user, _, _ := strings.Cut(d.User, ":")
	return user
}

func (d *Descriptor) escapeToken() rune {
	if d.escape == 0 {
		return parser.DefaultEscapeToken
	}
	return d.escape
}

// Add appends a step and updates the derived fields
func (d *Descriptor) Add(step Step) *Descriptor {
	step.Args = strings.TrimSpace(step.Args)
	if step.Kind == KindRun && !step.JSON {
		step.Args = strings.Join(splitAndList(step.Args, d.escapeToken()), " && ")
	}
	d.Steps = append(d.Steps, step)
	if err := d.apply(step); err != nil {
		d.problems = append(d.problems, err)
	}
	return d
}

// Run appends a shell-form RUN step
func (d *Descriptor) Run(command string) *Descriptor {
	return d.Add(Step{Kind: KindRun, Args: command})
}

// SetEnv appends an ENV step
func (d *Descriptor) SetEnv(name, value string) *Descriptor {
	return d.Add(Step{Kind: KindEnv, Args: name + "=" + quoteIfNeeded(value)})
}

// SetUser appends a USER step
func (d *Descriptor) SetUser(user string) *Descriptor {
	return d.Add(Step{Kind: KindUser, Args: user})
}

// SetWorkDir appends a WORKDIR step
func (d *Descriptor) SetWorkDir(dir string) *Descriptor {
	return d.Add(Step{Kind: KindWorkdir, Args: dir})
}

// SetCmd appends an exec-form CMD step
func (d *Descriptor) SetCmd(cmd ...string) *Descriptor {
	data, _ := json.Marshal(cmd)
	return d.Add(Step{Kind: KindCmd, Args: string(data), JSON: true})
}

// apply folds a single step into the derived model
func (d *Descriptor) apply(step Step) error {
	if !supportedKinds[step.Kind] {
		return fmt.Errorf("%w: %s (line %d)", ErrUnsupportedInstruction, step.Kind, step.Line)
	}

	if d.froms == 0 && step.Kind != KindFrom && step.Kind != KindArg {
		return fmt.Errorf("%w: %s before FROM (line %d)", ErrMissingBase, step.Kind, step.Line)
	}

	switch step.Kind {
	case KindFrom:
		d.froms++
		if d.froms > 1 {
			return fmt.Errorf("%w (line %d)", ErrMultiStage, step.Line)
		}
		fields := strings.Fields(step.Args)
		if len(fields) == 0 {
			return fmt.Errorf("%w: FROM requires an image (line %d)", ErrSyntax, step.Line)
		}
		d.BaseImage = fields[0]
		if len(fields) == 3 && strings.EqualFold(fields[1], "as") {
			d.Stage = fields[2]
		}

	case KindArg:
		name, def, _ := strings.Cut(step.Args, "=")
		d.Args = append(d.Args, Arg{Name: strings.TrimSpace(name), Default: d.literal(def)})

	case KindWorkdir:
		d.WorkDir = d.joinWorkDir(d.literal(step.Args))

	case KindRun:
		cmd, err := runCommand(step)
		if err != nil {
			return fmt.Errorf("%w: RUN (line %d): %v", ErrSyntax, step.Line, err)
		}
		for _, pkg := range detectPackages(cmd) {
			d.addPackage(pkg)
		}
		d.users = appendUnique(d.users, detectUsers(cmd)...)

	case KindUser:
		d.User = d.literal(step.Args)

	case KindEnv:
		pairs, err := keyValues(KindEnv, step.Args, d.escapeToken())
		if err != nil {
			return fmt.Errorf("%w: ENV (line %d): %v", ErrSyntax, step.Line, err)
		}
		for _, p := range pairs {
			d.Env = append(d.Env, EnvVar{Name: p[0], Value: p[1]})
		}

	case KindLabel:
		pairs, err := keyValues(KindLabel, step.Args, d.escapeToken())
		if err != nil {
			return fmt.Errorf("%w: LABEL (line %d): %v", ErrSyntax, step.Line, err)
		}
		if d.Labels == nil {
			d.Labels = make(map[string]string)
		}
		for _, p := range pairs {
			d.Labels[d.literal(p[0])] = d.literal(p[1])
		}

	case KindCmd, KindEntrypoint:
		argv, err := commandLine(step)
		if err != nil {
			return fmt.Errorf("%w: %s (line %d): %v", ErrSyntax, step.Kind, step.Line, err)
		}
		if step.Kind == KindCmd {
			d.Cmd = argv
		} else {
			d.Entrypoint = argv
		}

	case KindExpose:
		d.Expose = append(d.Expose, strings.Fields(step.Args)...)
	}

	return nil
}

func (d *Descriptor) addPackage(pkg Package) {
	for _, existing := range d.Packages {
		if existing == pkg {
			return
		}
	}
	d.Packages = append(d.Packages, pkg)
}

// joinWorkDir resolves relative WORKDIR values against the previous one
func (d *Descriptor) joinWorkDir(dir string) string {
	if strings.HasPrefix(dir, "/") || d.WorkDir == "" {
		return dir
	}
	return strings.TrimSuffix(d.WorkDir, "/") + "/" + dir
}

// commandLine returns argv for CMD and ENTRYPOINT in either form
func commandLine(step Step) ([]string, error) {
	if step.JSON {
		return decodeExec(step.Args)
	}
	if step.Args == "" {
		return nil, nil
	}
	return []string{"/bin/sh", "-c", step.Args}, nil
}

// runCommand returns the command text of a RUN step in either form
func runCommand(step Step) (string, error) {
	if !step.JSON {
		return step.Args, nil
	}
	argv, err := decodeExec(step.Args)
	if err != nil {
		return "", err
	}
	return strings.Join(argv, " "), nil
}

func decodeExec(args string) ([]string, error) {
	var argv []string
	if err := json.Unmarshal([]byte(args), &argv); err != nil {
		return nil, err
	}
	return argv, nil
}

func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		found := false
		for _, existing := range list {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			list = append(list, v)
		}
	}
	return list
}
