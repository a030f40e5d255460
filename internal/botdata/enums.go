package botdata

import "fmt"

// Command is a membership notification sent to a running bot so it can keep
// its own roster of the room.
type Command int

const (
	CommandJoin Command = 1
	CommandPart Command = 2
	CommandQuit Command = 3
)

var commandNames = map[Command]string{
	CommandJoin: "JOIN",
	CommandPart: "PART",
	CommandQuit: "QUIT",
}

// CommandFromValue returns the Command for v. The second result is false when
// v is not a known code.
func CommandFromValue(v int) (Command, bool) {
	c := Command(v)
	if _, ok := commandNames[c]; !ok {
		return 0, false
	}
	return c, true
}

// Value returns the integer code of c.
func (c Command) Value() int { return int(c) }

// Valid reports whether c is a known command.
func (c Command) Valid() bool {
	_, ok := commandNames[c]
	return ok
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(c))
}

// ChannelType classifies the chat surfaces a bot may be loaded into.
type ChannelType int

const (
	ChannelChatRoom  ChannelType = 1
	ChannelGroupChat ChannelType = 2
)

var channelTypeNames = map[ChannelType]string{
	ChannelChatRoom:  "CHAT_ROOM",
	ChannelGroupChat: "GROUP_CHAT",
}

// ChannelTypeFromValue returns the ChannelType for v. The second result is
// false when v is not a known code.
func ChannelTypeFromValue(v int) (ChannelType, bool) {
	t := ChannelType(v)
	if _, ok := channelTypeNames[t]; !ok {
		return 0, false
	}
	return t, true
}

// Value returns the integer code of t.
func (t ChannelType) Value() int { return int(t) }

// Valid reports whether t is a known channel type.
func (t ChannelType) Valid() bool {
	_, ok := channelTypeNames[t]
	return ok
}

func (t ChannelType) String() string {
	if name, ok := channelTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// State names the lifecycle stages of one game hosted by a running bot.
// GameEnded is a terminal sentinel and deliberately not contiguous with Playing.
type State int

const (
	StateNoGame        State = 0
	StateGameStarting  State = 1
	StateGameStarted   State = 2
	StateGameJoining   State = 3
	StateGameJoinEnded State = 4
	StatePlaying       State = 5
	StateGameEnded     State = 99
)

var stateNames = map[State]string{
	StateNoGame:        "NO_GAME",
	StateGameStarting:  "GAME_STARTING",
	StateGameStarted:   "GAME_STARTED",
	StateGameJoining:   "GAME_JOINING",
	StateGameJoinEnded: "GAME_JOIN_ENDED",
	StatePlaying:       "PLAYING",
	StateGameEnded:     "GAME_ENDED",
}

// StateFromValue returns the State for v. The second result is false when v
// is not a known code.
func StateFromValue(v int) (State, bool) {
	s := State(v)
	if _, ok := stateNames[s]; !ok {
		return 0, false
	}
	return s, true
}

// Value returns the integer code of s.
func (s State) Value() int { return int(s) }

// Valid reports whether s is a known state.
func (s State) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

// Terminal reports whether s is the end-of-game sentinel.
func (s State) Terminal() bool { return s == StateGameEnded }

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(s))
}
