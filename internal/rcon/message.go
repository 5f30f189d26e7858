package rcon

// requestName is the fixed message type the Rust server expects on every
// command frame.
const requestName = "WebRcon"

// Request is one command frame sent to the server. The Identifier is chosen
// by the client and echoed back by the server on the matching response.
type Request struct {
	Identifier int    `json:"Identifier"`
	Message    string `json:"Message"`
	Name       string `json:"Name"`
}

// Response is one reply frame from the server.
//
// Type classifies the message (Generic, Log, Warning, Error, Chat). Stack
// carries a stack trace on server errors and is usually absent.
type Response struct {
	Identifier int    `json:"Identifier"`
	Message    string `json:"Message"`
	Type       string `json:"Type"`
	Stack      string `json:"Stack,omitempty"`

	// Raw is the reply frame exactly as the server sent it.
	Raw []byte `json:"-"`
}
