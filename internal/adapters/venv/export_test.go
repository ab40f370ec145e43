package venv

import "context"

// SetRunner replaces the external command runner for tests.
func (p *Provisioner) SetRunner(run func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	p.run = run
}
