package observer

import (
	_ "embed"

	"forage/internal/sims/forage"
)

// Version is the observer protocol version.
const Version = "1.0"

// Message types.
const (
	TypeFrame   = "FRAME"
	TypeAdvance = "ADVANCE"
	TypeReset   = "RESET"
	TypeError   = "ERROR"
)

// FrameSchema is the JSON schema every FRAME satisfies.
//
//go:embed frame.schema.json
var FrameSchema string

// Frame is sent on connect and after every turn.
type Frame struct {
	Type            string             `json:"type"`
	ProtocolVersion string             `json:"protocol_version"`
	Sim             string             `json:"sim"`
	State           forage.State       `json:"state"`
	Scores          []int              `json:"scores"`
	Report          *forage.TurnReport `json:"report,omitempty"`
}

// ClientMsg is a command from a connected client. RESET reuses the current
// seed unless Seed is set.
type ClientMsg struct {
	Type string `json:"type"`
	Seed int64  `json:"seed,omitempty"`
}

// ErrorMsg reports a rejected command.
type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
