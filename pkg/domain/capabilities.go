package domain

import "fmt"

// Capabilities selects which context sources and guards a pipeline version supports.
type Capabilities struct {
	SupportsState          bool `json:"supports_state"`
	SupportsNodeAddressing bool `json:"supports_node_addressing"`
	EnforcesScope          bool `json:"enforces_scope"`
}

// Profile names a predefined capability set.
type Profile string

const (
	// ProfileLegacy exposes msg and payload only and does not enforce scope.
	ProfileLegacy Profile = "legacy"
	// ProfileStateful adds state and enforces scope.
	ProfileStateful Profile = "stateful"
	// ProfileFull adds node addressing. This is the default.
	ProfileFull Profile = "full"
)

// DefaultCapabilities returns the capabilities of ProfileFull.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		SupportsState:          true,
		SupportsNodeAddressing: true,
		EnforcesScope:          true,
	}
}

// CapabilitiesFor resolves a profile name.
func CapabilitiesFor(p Profile) (Capabilities, error) {
	switch p {
	case ProfileLegacy:
		return Capabilities{}, nil
	case ProfileStateful:
		return Capabilities{SupportsState: true, EnforcesScope: true}, nil
	case ProfileFull, "":
		return DefaultCapabilities(), nil
	default:
		return Capabilities{}, fmt.Errorf("unknown profile %q (want legacy, stateful or full)", p)
	}
}
