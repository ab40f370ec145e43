package domain_test

import (
	"reflect"
	"testing"

	"github.com/retortlabs/retort/internal/core/domain"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "plain words",
			raw:  "bash tox_env.sh {workdir}",
			want: []string{"bash", "tox_env.sh", "{workdir}"},
		},
		{
			name: "single quoted glob stays one argument",
			raw:  "coverage run --branch --omit '*/migration/*' {envbindir}/trial -v test",
			want: []string{"coverage", "run", "--branch", "--omit", "*/migration/*", "{envbindir}/trial", "-v", "test"},
		},
		{
			name: "double quotes with spaces",
			raw:  `echo "hello world"`,
			want: []string{"echo", "hello world"},
		},
		{
			name: "collapsed whitespace",
			raw:  "coveralls   \t  ",
			want: []string{"coveralls"},
		},
		{
			name: "empty quoted argument",
			raw:  `grep "" file`,
			want: []string{"grep", "", "file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := domain.ParseCommand(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(cmd.Argv, tt.want) {
				t.Errorf("expected argv %v, got %v", tt.want, cmd.Argv)
			}
			if cmd.Raw != tt.raw {
				t.Errorf("expected raw line to be preserved, got %q", cmd.Raw)
			}
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	if _, err := domain.ParseCommand("   "); err == nil {
		t.Error("expected error for blank command line")
	}
	if _, err := domain.ParseCommand(`echo "unterminated`); err == nil {
		t.Error("expected error for unterminated quote")
	}
}
