package argv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// globalTree builds prog -> remote -> add, with a required global --config
// on the root and a global --verbose on remote
func globalTree(t *testing.T) (root, remote, add *Command) {
	t.Helper()
	root = MustCommand("prog", "")
	root.WithOption(MustOption("config", "", "-c", "--config").
		Global().Required().
		WithArgument(NewArgument("path", "")))

	remote = MustCommand("remote", "")
	remote.WithOption(MustOption("verbose", "", "-v", "--verbose").Global())
	add = MustCommand("add", "").WithArgument(NewArgument("url", ""))

	if err := root.AddCommand(remote); err != nil {
		t.Fatalf("AddCommand: %v", err)
	}
	if err := remote.AddCommand(add); err != nil {
		t.Fatalf("AddCommand: %v", err)
	}
	return root, remote, add
}

func optionNames(opts []*Option) []string {
	names := make([]string, 0, len(opts))
	for _, o := range opts {
		names = append(names, o.Name())
	}
	return names
}

func TestGlobalFromDescendant(t *testing.T) {
	root, _, _ := globalTree(t)
	p := NewParser(root)

	result, err := p.Parse([]string{"remote", "add", "-c", "cfg.toml", "-v", "git@host"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Command().FullName() != "prog remote add" {
		t.Errorf("resolved %q", result.Command().FullName())
	}
	if v, _ := result.OptionValue("config", "path"); v.String() != "cfg.toml" {
		t.Errorf("config = %#v", v)
	}
	if !result.Has("verbose") {
		t.Errorf("remote global not visible in add")
	}
	if got := optionNames(result.Globals()); len(got) != 2 || got[0] != "config" || got[1] != "verbose" {
		t.Errorf("Globals() = %v, want [config verbose]", got)
	}

	// the root global is required everywhere below
	_, err = p.Parse([]string{"remote", "add", "git@host"})
	perr := expectCode(t, err, CodeMissingRequiredOption)
	if perr.Placeholders[0] != "-c, --config" {
		t.Errorf("placeholder %q", perr.Placeholders[0])
	}
}

func TestGlobalNotVisibleOnDeclaringCommandAncestors(t *testing.T) {
	root, _, _ := globalTree(t)
	// --verbose is declared on remote and does not reach the root
	_, err := NewParser(root).Parse([]string{"-c", "x", "--verbose"})
	perr := expectCode(t, err, CodeUnknownOption)
	if perr.Placeholders[0] != "--verbose" {
		t.Errorf("offending token %q", perr.Placeholders[0])
	}
}

func TestGlobalShadowedByDeeperGlobal(t *testing.T) {
	root, remote, _ := globalTree(t)
	remote.WithOption(MustOption("config", "", "--config").Global())

	result, err := NewParser(root).Parse([]string{"remote", "add", "url"})
	if err != nil {
		t.Fatalf("shadowed required global still enforced: %v", err)
	}
	if got := optionNames(result.Globals()); len(got) != 2 || got[0] != "verbose" || got[1] != "config" {
		t.Errorf("Globals() = %v, want [verbose config]", got)
	}

	// -c belonged only to the shadowed declaration
	_, err = NewParser(root).Parse([]string{"remote", "add", "-c", "x", "url"})
	expectCode(t, err, CodeTooManyArguments)
}

func TestGlobalShadowedByLocalToken(t *testing.T) {
	root, _, add := globalTree(t)
	add.WithOption(MustOption("count", "", "-c").WithArgument(NewArgument("n", "").Default(IntValue(0))))

	result, err := NewParser(root).Parse([]string{"remote", "add", "-c", "3", "url"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v, _ := result.OptionValue("count", "n"); !v.Equal(IntValue(3)) {
		t.Errorf("local -c not preferred, count = %#v", v)
	}
	for _, g := range result.Globals() {
		if g.Name() == "config" {
			t.Errorf("global sharing a token with a local option must be evicted")
		}
	}
}

func TestResolveStopsAtFirstNonCommand(t *testing.T) {
	root, _, _ := globalTree(t)
	p := NewParser(root)
	r := p.resolve([]string{"remote", "x", "add"})
	if r.command.Name() != "remote" || r.consumed != 1 {
		t.Errorf("resolve stopped at %q after %d tokens", r.command.Name(), r.consumed)
	}
	r = p.resolve([]string{"--", "remote"})
	if r.command != root || r.consumed != 0 {
		t.Errorf("terminator must not resolve as a command")
	}
}

func TestScopedGroupsAcrossPath(t *testing.T) {
	root := MustCommand("prog", "")
	root.WithOption(MustOption("quiet", "", "-q").Global())
	root.WithOption(MustOption("loud", "", "-l").Global())
	root.WithOption(MustOption("local", "", "--local"))
	if err := root.AddExclusiveGroup("noise", "quiet", "loud", "local"); err != nil {
		t.Fatalf("AddExclusiveGroup: %v", err)
	}
	if _, err := root.Subcommand("sub", ""); err != nil {
		t.Fatalf("Subcommand: %v", err)
	}

	_, err := NewParser(root).Parse([]string{"sub", "-q", "-l"})
	expectCode(t, err, CodeMutuallyExclusiveOptions)
}

func TestResolveTrace(t *testing.T) {
	root, _, _ := globalTree(t)
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	if _, err := NewParser(root, WithLogger(logger)).Parse([]string{"remote", "add", "-c", "x", "u"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"descend", "option", "parsed"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
}
