package protocol

import "encoding/json"

// CommandMethod names an outbound command sent to the daemon over stdin.
type CommandMethod string

const (
	MethodReload  CommandMethod = "reload"
	MethodRestart CommandMethod = "restart"
	MethodStop    CommandMethod = "stop"
)

// Command is a request written to a child process's stdin, tagged with an
// id so its Response can be correlated by the request tracker.
type Command struct {
	ID     uint64
	Method CommandMethod
	AppID  string
}

type wireCommand struct {
	Method string            `json:"method"`
	Params wireCommandParams `json:"params"`
	ID     uint64            `json:"id"`
}

type wireCommandParams struct {
	AppID string `json:"appId"`
}

// Encode renders the command as a single newline-terminated JSON line
// ready to be written to a child process's stdin.
func (c Command) Encode() ([]byte, error) {
	data, err := json.Marshal(wireCommand{
		Method: string(c.Method),
		Params: wireCommandParams{AppID: c.AppID},
		ID:     c.ID,
	})
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
