package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
)

// GenerateEnvID creates a deterministic hash identifying an environment's
// provisioning inputs: the interpreter selector and the enabled pin specs.
// Two environments with the same ID can share a provisioned directory.
func GenerateEnvID(basepython string, pins []string) string {
	// Sort pins so declaration order does not change the identity
	sorted := make([]string, len(pins))
	copy(sorted, pins)
	slices.Sort(sorted)

	// Build deterministic string
	var builder strings.Builder
	builder.WriteString("python:")
	builder.WriteString(basepython)
	builder.WriteString(";")
	for _, pin := range sorted {
		builder.WriteString(pin)
		builder.WriteString(";")
	}

	// Hash the string
	hash := sha256.Sum256([]byte(builder.String()))
	return hex.EncodeToString(hash[:])
}

// EnvID returns the provisioning identity of the environment.
func (e *Environment) EnvID() string {
	return GenerateEnvID(e.Basepython, e.PinSpecs())
}
