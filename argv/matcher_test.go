package argv

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func includeTree() *Command {
	root := MustCommand("cc", "")
	root.WithOption(MustOption("include", "", "-I", "--include").
		ShortMatch(ShortMatchAll).
		WithArgument(NewArgument("dir", "")))
	root.WithOption(MustOption("opt", "", "-O").
		ShortMatch(ShortMatchSingleChar).
		WithArgument(NewArgument("level", "").Default(IntValue(0))))
	root.WithOption(MustOption("warn", "", "-W").
		ShortMatch(ShortMatchSingleLetter).
		WithArgument(NewArgument("name", "")))
	root.WithOption(MustOption("define", "", "-D").
		WithArgument(NewArgument("macro", "")))
	root.WithOption(MustOption("verbose", "", "-v"))
	root.WithArgument(NewArgument("files", "").Optional().MultiValue())
	return root
}

func TestShortMatchRules(t *testing.T) {
	p := NewParser(includeTree(), WithShortFlags())
	tests := []struct {
		name   string
		tokens []string
		option string
		arg    string
		want   Value
	}{
		{"match all", []string{"-I/usr/include"}, "include", "dir", StringValue("/usr/include")},
		{"separate value", []string{"-I", "/opt"}, "include", "dir", StringValue("/opt")},
		{"single char", []string{"-O2"}, "opt", "level", IntValue(2)},
		{"single letter", []string{"-Wall"}, "warn", "name", StringValue("all")},
		{"key value", []string{"--include=/src"}, "include", "dir", StringValue("/src")},
		{"key value on short", []string{"-D=X"}, "define", "macro", StringValue("X")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := p.Parse(tt.tokens)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			v, ok := result.OptionValue(tt.option, tt.arg)
			if !ok || !v.Equal(tt.want) {
				t.Errorf("%s.%s = %#v, %v, want %#v", tt.option, tt.arg, v, ok, tt.want)
			}
		})
	}
}

func TestShortMatchRejections(t *testing.T) {
	p := NewParser(includeTree(), WithShortFlags())
	tests := []struct {
		name   string
		tokens []string
		code   ErrorCode
	}{
		// -O22 has a two character remainder, so it falls through to positionals
		{"single char too long", []string{"-O22"}, CodeNoError},
		{"single letter digit", []string{"-W1"}, CodeNoError},
		{"rule none", []string{"-DX"}, CodeNoError},
		{"flag with attached value", []string{"-v=1"}, CodeNoError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := p.Parse(tt.tokens)
			expectCode(t, err, tt.code)
			if got := result.ArgValues("files"); len(got) != 1 || got[0].String() != tt.tokens[0] {
				t.Errorf("token should stay positional, files = %v", got)
			}
		})
	}
}

func TestShortFlagsDisabled(t *testing.T) {
	result, err := NewParser(includeTree()).Parse([]string{"-I/usr/include"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Has("include") {
		t.Errorf("prefix match applied without WithShortFlags")
	}
}

func TestKeyValueDisabled(t *testing.T) {
	result, err := NewParser(includeTree(), WithoutKeyValue()).Parse([]string{"--include=/src"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Has("include") {
		t.Errorf("--key=value split with WithoutKeyValue")
	}
}

func TestDOSStyle(t *testing.T) {
	root := MustCommand("dir", "")
	root.WithOption(MustOption("sort", "", "/O").WithArgument(NewArgument("order", "")))
	root.WithOption(MustOption("wide", "", "/W"))
	p := NewParser(root, WithDOSStyle())

	result, err := p.Parse([]string{"/O:N", "/W"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v, _ := result.OptionValue("sort", "order"); !v.Equal(StringValue("N")) {
		t.Errorf("order = %#v", v)
	}
	if !result.Has("wide") {
		t.Errorf("wide not matched")
	}

	_, err = p.Parse([]string{"/X"})
	perr := expectCode(t, err, CodeUnknownOption)
	if perr.Placeholders[0] != "/X" {
		t.Errorf("offending token %q", perr.Placeholders[0])
	}

	// without DOS style a slash token is an ordinary positional
	_, err = NewParser(root).Parse([]string{"/X"})
	expectCode(t, err, CodeTooManyArguments)
}

func TestCaseInsensitive(t *testing.T) {
	root := MustCommand("prog", "")
	root.WithOption(MustOption("file", "", "--file").WithArgument(NewArgument("path", "")))
	if _, err := root.Subcommand("Build", ""); err != nil {
		t.Fatalf("Subcommand: %v", err)
	}
	root.WithOption(MustOption("include", "", "-I").ShortMatch(ShortMatchAll).WithArgument(NewArgument("dir", "")))

	p := NewParser(root, WithCaseInsensitive(), WithShortFlags())
	result, err := p.Parse([]string{"--FILE", "a.txt"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v, _ := result.OptionValue("file", "path"); !v.Equal(StringValue("a.txt")) {
		t.Errorf("path = %#v", v)
	}

	result, err = p.Parse([]string{"-iSrc"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v, _ := result.OptionValue("include", "dir"); !v.Equal(StringValue("Src")) {
		t.Errorf("folded prefix match must keep the value's case, got %#v", v)
	}

	result, err = p.Parse([]string{"build"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Command().Name() != "Build" {
		t.Errorf("resolved %q", result.Command().Name())
	}

	_, err = NewParser(root).Parse([]string{"--FILE", "a.txt"})
	expectCode(t, err, CodeUnknownOption)
}

func TestOptionArguments(t *testing.T) {
	root := MustCommand("prog", "")
	root.WithOption(MustOption("point", "", "-p").
		WithArgument(NewArgument("x", "").Default(IntValue(0))).
		WithArgument(NewArgument("y", "").Default(IntValue(0))).
		WithArgument(NewArgument("label", "").Optional()))
	root.WithOption(MustOption("tags", "", "-t").
		WithArgument(NewArgument("tag", "").MultiValue()))
	root.WithOption(MustOption("verbose", "", "-v"))
	p := NewParser(root)

	t.Run("optional slot stops at option", func(t *testing.T) {
		result, err := p.Parse([]string{"-p", "1", "2", "-v"})
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		occ := result.Occurrences("point")
		if len(occ) != 1 {
			t.Fatalf("point occurred %d times", len(occ))
		}
		got := []Value{}
		for _, n := range []string{"x", "y", "label"} {
			v, _ := occ[0].Value(n)
			got = append(got, v)
		}
		if diff := cmp.Diff([]Value{IntValue(1), IntValue(2), NullValue()}, got); diff != "" {
			t.Errorf("values mismatch (-want +got):\n%s", diff)
		}
		if !result.Has("verbose") {
			t.Errorf("verbose swallowed as a value")
		}
	})

	t.Run("required slot takes option-like token", func(t *testing.T) {
		result, err := p.Parse([]string{"-p", "1", "-5"})
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if v, _ := result.OptionValue("point", "y"); !v.Equal(IntValue(-5)) {
			t.Errorf("y = %#v", v)
		}
	})

	t.Run("missing required slot", func(t *testing.T) {
		_, err := p.Parse([]string{"-p", "1"})
		perr := expectCode(t, err, CodeMissingOptionArgument)
		if diff := cmp.Diff([]string{"-p", "y"}, perr.Placeholders); diff != "" {
			t.Errorf("placeholders mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("multi-valued slot", func(t *testing.T) {
		result, err := p.Parse([]string{"-t", "a", "b", "-v", "-t", "c"})
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		occ := result.Occurrences("tags")
		if len(occ) != 2 || result.Count("tags") != 2 {
			t.Fatalf("tags occurred %d times", len(occ))
		}
		if diff := cmp.Diff([]Value{StringValue("a"), StringValue("b")}, occ[0].Values("tag")); diff != "" {
			t.Errorf("first occurrence mismatch (-want +got):\n%s", diff)
		}
		if occ[1].Token() != "-t" || occ[1].Option().Name() != "tags" {
			t.Errorf("occurrence metadata wrong")
		}
	})

	t.Run("type mismatch in option argument", func(t *testing.T) {
		_, err := p.Parse([]string{"-p", "one", "2"})
		expectCode(t, err, CodeArgumentTypeMismatch)
	})

	t.Run("attached value on flag", func(t *testing.T) {
		_, err := p.Parse([]string{"-p=1", "2"})
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
	})
}

func TestExclusiveGroup(t *testing.T) {
	build := func() *Command {
		root := MustCommand("prog", "")
		root.WithOption(MustOption("json", "", "--json").Required())
		root.WithOption(MustOption("yaml", "", "--yaml").Required())
		if err := root.AddExclusiveGroup("format", "json", "yaml"); err != nil {
			panic(err)
		}
		return root
	}
	p := NewParser(build())

	tests := []struct {
		name   string
		tokens []string
		code   ErrorCode
	}{
		{"both", []string{"--json", "--yaml"}, CodeMutuallyExclusiveOptions},
		{"json alone", []string{"--json"}, CodeNoError},
		{"yaml alone", []string{"--yaml"}, CodeNoError},
		{"repeat of same member", []string{"--json", "--json"}, CodeNoError},
		{"neither", nil, CodeMissingRequiredOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.tokens)
			perr := expectCode(t, err, tt.code)
			if tt.code == CodeMutuallyExclusiveOptions {
				if diff := cmp.Diff([]string{"--yaml", "--json"}, perr.Placeholders); diff != "" {
					t.Errorf("placeholders mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestMaxOccurrence(t *testing.T) {
	root := MustCommand("prog", "")
	root.WithOption(MustOption("level", "", "-l").MaxOccurrence(1))
	root.WithOption(MustOption("verbose", "", "-v").MaxOccurrence(2))
	p := NewParser(root)

	_, err := p.Parse([]string{"-l", "-l"})
	perr := expectCode(t, err, CodeOptionOccurTooMuch)
	if diff := cmp.Diff([]string{"-l", "1"}, perr.Placeholders); diff != "" {
		t.Errorf("placeholders mismatch (-want +got):\n%s", diff)
	}

	result, err := p.Parse([]string{"-v", "-v"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Count("verbose") != 2 {
		t.Errorf("Count() = %d", result.Count("verbose"))
	}

	_, err = p.Parse([]string{"-v", "-v", "-v"})
	expectCode(t, err, CodeOptionOccurTooMuch)
}
