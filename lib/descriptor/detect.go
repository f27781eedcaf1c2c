package descriptor

import (
	"regexp"
	"strings"

	"github.com/google/shlex"
)

// Package managers recognised in RUN steps
const (
	ManagerApt    = "apt"
	ManagerApk    = "apk"
	ManagerDnf    = "dnf"
	ManagerYum    = "yum"
	ManagerPHPExt = "php-ext"
)

// shellSeparator splits a command line into simple commands
var shellSeparator = regexp.MustCompile(`&&|\|\||;|\|`)

// installers maps a command to its manager and install subcommand.
// An empty subcommand means every positional argument is a package.
var installers = map[string]struct {
	manager    string
	subcommand string
}{
	"apt-get":                {ManagerApt, "install"},
	"apt":                    {ManagerApt, "install"},
	"apk":                    {ManagerApk, "add"},
	"dnf":                    {ManagerDnf, "install"},
	"microdnf":               {ManagerDnf, "install"},
	"yum":                    {ManagerYum, "install"},
	"docker-php-ext-install": {ManagerPHPExt, ""},
}

// flags that consume the following token
var packageFlagArgs = map[string]bool{
	"-o":           true, // apt-get -o Dpkg::Options::=...
	"-t":           true, // apk add -t / apt-get -t release
	"--virtual":    true,
	"--repository": true,
	"-X":           true,
}

var userFlagArgs = map[string]bool{
	"-s": true, "-u": true, "-g": true, "-G": true, "-d": true, "-c": true,
	"-k": true, "-e": true, "-f": true, "-K": true, "-p": true, "-h": true,
	"--shell": true, "--uid": true, "--gid": true, "--home": true, "--home-dir": true,
	"--gecos": true, "--ingroup": true, "--comment": true, "--groups": true,
	"--password": true, "--skel": true, "--key": true, "--expiredate": true,
	"--inactive": true,
}

// simpleCommands splits a shell command into argv lists, dropping leading
// sudo and environment assignments
func simpleCommands(cmd string) [][]string {
	var out [][]string
	for _, segment := range shellSeparator.Split(cmd, -1) {
		argv, err := shlex.Split(segment)
		if err != nil {
			argv = strings.Fields(segment)
		}
		for len(argv) > 0 && (argv[0] == "sudo" || isAssignment(argv[0])) {
			argv = argv[1:]
		}
		if len(argv) > 0 {
			out = append(out, argv)
		}
	}
	return out
}

func isAssignment(tok string) bool {
	name, _, ok := strings.Cut(tok, "=")
	return ok && validEnvName.MatchString(name)
}

// detectPackages finds the packages installed by a RUN command
func detectPackages(cmd string) []Package {
	var pkgs []Package
	for _, argv := range simpleCommands(cmd) {
		inst, ok := installers[argv[0]]
		if !ok {
			continue
		}

		rest := argv[1:]
		if inst.subcommand != "" {
			idx := indexOf(rest, inst.subcommand)
			if idx < 0 {
				continue
			}
			rest = rest[idx+1:]
		}

		for _, name := range positionals(rest, packageFlagArgs) {
			// apt pins versions with pkg=1.2.3, apk with pkg=1.2.3-r0
			name, _, _ = strings.Cut(name, "=")
			if name == "" || strings.ContainsAny(name, "$`") {
				continue
			}
			pkgs = append(pkgs, Package{Name: name, Manager: inst.manager})
		}
	}
	return pkgs
}

// detectUsers finds the accounts created by useradd/adduser
func detectUsers(cmd string) []string {
	var users []string
	for _, argv := range simpleCommands(cmd) {
		if argv[0] != "useradd" && argv[0] != "adduser" {
			continue
		}
		if names := positionals(argv[1:], userFlagArgs); len(names) > 0 {
			users = append(users, names[0])
		}
	}
	return users
}

// positionals returns non-flag arguments, skipping values of flags that take one
func positionals(args []string, flagArgs map[string]bool) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if strings.HasPrefix(tok, "-") {
			if flagArgs[tok] {
				i++
			}
			continue
		}
		out = append(out, tok)
	}
	return out
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
