package shared

import (
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
)

func TestGetBaseDescription(t *testing.T) {
	t.Parallel()

	desc := GetBaseDescription()

	if desc == "" {
		t.Error("GetBaseDescription() should not return empty string")
	}

	for _, proto := range []string{"tcp", "udp", "unix"} {
		if !strings.Contains(desc, proto) {
			t.Errorf("description should mention %s protocol", proto)
		}
	}
}

func TestGetArgsUsage(t *testing.T) {
	t.Parallel()

	usage := GetArgsUsage()

	if !strings.Contains(usage, "target") {
		t.Error("usage should mention target")
	}
}

func flagNames(flags []cli.Flag) map[string]bool {
	names := make(map[string]bool)
	for _, flag := range flags {
		if n := flag.Names(); len(n) > 0 {
			names[n[0]] = true
		}
	}
	return names
}

func TestGetCommonFlags(t *testing.T) {
	t.Parallel()

	names := flagNames(GetCommonFlags())

	for _, name := range []string{VerboseFlag, LogFileFlag} {
		if !names[name] {
			t.Errorf("expected flag %q not found", name)
		}
	}
}

func TestGetStreamFlags(t *testing.T) {
	t.Parallel()

	names := flagNames(GetStreamFlags())

	expected := []string{StrategyFlag, LengthFlag, DelimiterFlag, CodecFlag, TimeoutFlag, ReadTimeoutFlag, NonBlockingFlag}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("expected flag %q not found", name)
		}
	}
}

func TestFlagsDoNotCollide(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, flag := range append(GetCommonFlags(), GetStreamFlags()...) {
		for _, n := range flag.Names() {
			if seen[n] {
				t.Errorf("flag name or alias %q used twice", n)
			}
			seen[n] = true
		}
	}
}
