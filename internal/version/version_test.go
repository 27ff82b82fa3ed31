// ABOUTME: Tests for version reporting
// ABOUTME: Checks the CLI version line and the constants it is built from
package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	got := String()
	if !strings.HasPrefix(got, "mpegsync ") {
		t.Errorf("expected product name first, got %q", got)
	}
	if !strings.HasSuffix(got, " "+Version) {
		t.Errorf("expected version %q last, got %q", Version, got)
	}
}

func TestVersionIsSemver(t *testing.T) {
	parts := strings.Split(Version, ".")
	if len(parts) != 3 {
		t.Fatalf("expected major.minor.patch, got %q", Version)
	}
	for _, p := range parts {
		if p == "" || strings.Trim(p, "0123456789") != "" {
			t.Errorf("expected numeric component in %q, got %q", Version, p)
		}
	}
}

func TestManufacturer(t *testing.T) {
	if Manufacturer == "" {
		t.Error("manufacturer should not be empty")
	}
}
