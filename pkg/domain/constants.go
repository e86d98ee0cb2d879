package domain

// Operation and identity constants.
const (
	// OperationText is the single operation identifier supported by the component.
	OperationText = "text"

	// DefaultOutputPath is the dotted path used when a wrapped config has no output_path.
	DefaultOutputPath = "text"

	// DefaultRouting is the routing value emitted when the config has none.
	DefaultRouting = "out"
)

// Context keys exposed to templates.
const (
	KeyMsg         = "msg"
	KeyPayload     = "payload"
	KeyPayloadJSON = "payload_json"
	KeyState       = "state"
	KeyStateJSON   = "state_json"
	KeyNode        = "node"
	KeyNodeID      = "node_id"
	KeyNodePayload = "node_payload"
	KeyConfig      = "config"
	KeyTemplates   = "templates"
	KeyRouting     = "routing"

	// KeyInput is the state sub-object whose entries are flattened first.
	KeyInput = "input"
	// KeyNodes is the state sub-object addressed by node_id.
	KeyNodes = "nodes"
)

// ReservedKeys are context names that flattened state and state.input entries
// may never overwrite. Adding a structural context field requires adding it here.
var ReservedKeys = map[string]struct{}{
	KeyState:       {},
	KeyPayload:     {},
	KeyMsg:         {},
	KeyConfig:      {},
	KeyTemplates:   {},
	KeyRouting:     {},
	KeyStateJSON:   {},
	KeyPayloadJSON: {},
	KeyNode:        {},
	KeyNodeID:      {},
	KeyNodePayload: {},
}

// IsReserved reports whether key belongs to the reserved context namespace.
func IsReserved(key string) bool {
	_, ok := ReservedKeys[key]
	return ok
}
