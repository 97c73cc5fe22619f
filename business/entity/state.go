package entity

type State string

const (
	StateConnected         State = "connected"
	StateDisconnected      State = "disconnected"
	StateWaitingConnect    State = "waitingConnect"
	StateWaitingDisconnect State = "waitingDisconnect"
	StateWaitingStatus     State = "waitingStatus"
	StateErrorConnect      State = "errorConnect"
	StateErrorDisconnect   State = "errorDisconnect"
	StateErrorStatus       State = "errorStatus"
	StateUnsupported       State = "unsupported"
)

type Action string

const (
	ActionNone       Action = ""
	ActionConnect    Action = "connect"
	ActionDisconnect Action = "disconnect"
)

const (
	ReasonUnsupported         = "unsupported"
	ReasonConnectedOther      = "connected-other"
	ReasonAlreadyConnected    = "already-connected"
	ReasonAlreadyDisconnected = "already-disconnected"
)

// Action returns what a click does in this state. Only the two steady
// states carry an action; every other state renders a disabled button.
func (s State) Action() Action {
	switch s {
	case StateConnected:
		return ActionDisconnect
	case StateDisconnected:
		return ActionConnect
	default:
		return ActionNone
	}
}

func (s State) Enabled() bool {
	return s.Action() != ActionNone
}

func (s State) Waiting() bool {
	return s == StateWaitingConnect || s == StateWaitingDisconnect || s == StateWaitingStatus
}

func (s State) Failed() bool {
	return s == StateErrorConnect || s == StateErrorDisconnect || s == StateErrorStatus
}

func (s State) Valid() bool {
	_, ok := descriptors[s]
	return ok
}

type Room struct {
	Name          string `json:"name"`
	VCRoomName    string `json:"vc_room_name"`
	StatusURL     string `json:"status_url"`
	ConnectURL    string `json:"connect_url"`
	DisconnectURL string `json:"disconnect_url"`
}

// StatusResponse is the body returned by the status, connect and disconnect
// endpoints. For connect/disconnect, Success only means the request was
// accepted.
type StatusResponse struct {
	Success      bool   `json:"success"`
	Connected    bool   `json:"connected"`
	Reason       string `json:"reason,omitempty"`
	Message      string `json:"message,omitempty"`
	RoomName     string `json:"room_name,omitempty"`
	VCRoomID     string `json:"vc_room_id,omitempty"`
	ServiceType  string `json:"service_type,omitempty"`
	RoomEndpoint string `json:"room_endpoint,omitempty"`
}

// Err converts an unsuccessful response into a *RejectedError.
func (r *StatusResponse) Err() error {
	if r.Success {
		return nil
	}
	return &RejectedError{Reason: r.Reason, Message: r.Message}
}
