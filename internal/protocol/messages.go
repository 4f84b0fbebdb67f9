package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Name            string `json:"name,omitempty"`
	Variant         string `json:"variant,omitempty"` // Registry ID, defaults to "snake"
}

// INPUT (client -> server). Only the latest INPUT before a movement tick counts.
type InputMsg struct {
	Type string `json:"type"`
	Dir  string `json:"dir"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	SessionID       string `json:"session_id"`
	Variant         string `json:"variant"`
	Arena           Arena  `json:"arena"`
	MoveIntervalMS  int64  `json:"move_interval_ms"`
	FoodIntervalMS  int64  `json:"food_interval_ms"`
}

type Arena struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// FRAME (server -> client), sent after every movement or food tick.
type FrameMsg struct {
	Type     string  `json:"type"`
	Tick     uint64  `json:"tick"`
	Phase    string  `json:"phase"`
	Heading  string  `json:"heading"`
	Length   int     `json:"length"`
	Eaten    int     `json:"eaten"`
	Segments []Cell  `json:"segments"` // Head first
	Food     []Cell  `json:"food"`
	Events   []Event `json:"events,omitempty"`
}

type Event struct {
	Kind      string `json:"kind"` // game_over, growth, food_spawned
	Tick      uint64 `json:"tick"`
	At        Cell   `json:"at"`
	Collision string `json:"collision,omitempty"`
	Length    int    `json:"length"`
}

// ERROR (server -> client)
type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewError builds an ERROR message.
func NewError(code, message string) ErrorMsg {
	// Clients only ever see documented codes
	if !IsKnownCode(code) {
		code = ErrInternal
	}
	return ErrorMsg{Type: TypeError, Code: code, Message: message}
}
