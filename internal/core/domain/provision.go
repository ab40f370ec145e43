package domain

import "time"

// ProvisionedEnv describes a ready-to-use isolated environment.
type ProvisionedEnv struct {
	// Name is the environment name.
	Name InternedString

	// Dir is the absolute environment directory.
	Dir string

	// BinDir is the executable directory inside Dir.
	BinDir string

	// Interpreter is the absolute path of the interpreter inside the environment.
	Interpreter string

	// EnvID is the provisioning identity the environment was built from.
	EnvID string

	// Reused is true when an existing provisioned directory was reused.
	Reused bool
}

// ProvisionRecord is the persisted provisioning state for one environment.
// A stored record whose EnvID and DescriptorHash still match allows the
// provisioner to skip interpreter resolution and package installation.
type ProvisionRecord struct {
	// EnvName is the environment name the record belongs to.
	EnvName string `json:"env_name"`

	// EnvID is the provisioning identity at the time of creation.
	EnvID string `json:"env_id"`

	// DescriptorHash is the content hash of the descriptor file.
	DescriptorHash string `json:"descriptor_hash"`

	// Interpreter is the resolved interpreter the environment was built with.
	Interpreter string `json:"interpreter"`

	// Timestamp records when the environment was provisioned.
	Timestamp time.Time `json:"timestamp"`
}
