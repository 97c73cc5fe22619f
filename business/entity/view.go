package entity

import "strings"

const (
	IconCamera   = "icon-camera"
	IconNoCamera = "icon-no-camera"
	IconSpinner  = "icon-spinner"
	IconWarning  = "icon-warning"

	TooltipError = "error"
)

type descriptor struct {
	icon        string
	tooltip     string
	tooltipType string
}

var descriptors = map[State]descriptor{
	StateConnected:         {icon: IconNoCamera, tooltip: msgTooltipConnected},
	StateDisconnected:      {icon: IconCamera, tooltip: msgTooltipDisconnected},
	StateWaitingConnect:    {icon: IconSpinner, tooltip: msgTooltipWaitingConnect},
	StateWaitingDisconnect: {icon: IconSpinner, tooltip: msgTooltipWaitingDisconnect},
	StateWaitingStatus:     {icon: IconSpinner, tooltip: msgTooltipWaitingStatus},
	StateErrorConnect:      {icon: IconWarning, tooltip: msgTooltipErrorConnect, tooltipType: TooltipError},
	StateErrorDisconnect:   {icon: IconWarning, tooltip: msgTooltipErrorDisconnect, tooltipType: TooltipError},
	StateErrorStatus:       {icon: IconWarning, tooltip: msgTooltipErrorStatus, tooltipType: TooltipError},
	StateUnsupported:       {icon: IconWarning, tooltip: msgTooltipUnsupported},
}

// View is what a button shows: everything in it derives from the room, the
// state and the optional extra message.
type View struct {
	Room        string `json:"room"`
	VCRoom      string `json:"vc_room"`
	State       State  `json:"state"`
	Action      Action `json:"action,omitempty"`
	Icon        string `json:"icon"`
	Label       string `json:"label"`
	Tooltip     string `json:"tooltip"`
	TooltipType string `json:"tooltip_type,omitempty"`
	Enabled     bool   `json:"enabled"`
}

func Render(tr *Translator, room Room, state State, extra string) View {
	d, ok := descriptors[state]
	if !ok {
		d = descriptors[StateErrorStatus]
	}

	if extra != "" {
		extra += "\n"
	}

	return View{
		Room:        room.Name,
		VCRoom:      room.VCRoomName,
		State:       state,
		Action:      state.Action(),
		Icon:        d.icon,
		Label:       room.Name,
		Tooltip:     strings.TrimRight(tr.Sprintf(d.tooltip, room.Name, room.VCRoomName, extra), "\n"),
		TooltipType: d.tooltipType,
		Enabled:     state.Enabled(),
	}
}
