package domain_test

import (
	"errors"
	"testing"

	"github.com/retortlabs/retort/internal/core/domain"
)

func TestParsePin(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantErr bool
		pkg     string
		version string
	}{
		{name: "simple pin", spec: "coverage==3.7.1", pkg: "coverage", version: "3.7.1"},
		{name: "dotted package name", spec: "zope.interface==3.6.1", pkg: "zope.interface", version: "3.6.1"},
		{name: "surrounding whitespace", spec: "  mock==1.0.1  ", pkg: "mock", version: "1.0.1"},
		{name: "missing separator", spec: "Twisted-10.2.0", wantErr: true},
		{name: "single equals", spec: "Twisted=10.2.0", wantErr: true},
		{name: "empty version", spec: "Twisted==", wantErr: true},
		{name: "empty name", spec: "==1.0", wantErr: true},
		{name: "two versions", spec: "Twisted==10.2.0==11.0.0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dep, err := domain.ParsePin(tt.spec)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrMalformedPin) {
					t.Fatalf("expected ErrMalformedPin, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dep.Name.String() != tt.pkg {
				t.Errorf("expected name %q, got %q", tt.pkg, dep.Name.String())
			}
			if dep.Version.String() != tt.version {
				t.Errorf("expected version %q, got %q", tt.version, dep.Version.String())
			}
		})
	}
}

func TestDependency_Spec_RoundTrip(t *testing.T) {
	dep, err := domain.ParsePin("SQLAlchemy==0.6.8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dep.Spec() != "SQLAlchemy==0.6.8" {
		t.Errorf("expected round-tripped spec, got %q", dep.Spec())
	}
}

func TestDependency_Validate_DisabledNeedsReason(t *testing.T) {
	dep := domain.Dependency{
		Name:     domain.NewInternedString("txrestapi"),
		Disabled: true,
	}
	if err := dep.Validate(); !errors.Is(err, domain.ErrDisabledWithoutReason) {
		t.Fatalf("expected ErrDisabledWithoutReason, got %v", err)
	}

	dep.Reason = "pulls in an unpinned transitive requirement"
	if err := dep.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDependency_Validate_DisabledSkipsVersionCheck(t *testing.T) {
	// A disabled entry may omit the version; it is never installed.
	dep := domain.Dependency{
		Name:     domain.NewInternedString("txrestapi"),
		Disabled: true,
		Reason:   "incompatible with the pinned Twisted",
	}
	if err := dep.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
