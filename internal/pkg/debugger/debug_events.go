package debugger

import (
	"bytes"
	"encoding/json"

	"go.uber.org/zap"
)

// DebugPrintFrame logs a raw event frame as received on the WebSocket channel,
// pretty-printed when it parses as JSON. Callers gate it on debug level; it is
// meant for poking at misbehaving clients, not for production traffic.
func DebugPrintFrame(logger *zap.SugaredLogger, frame []byte) {
	logger.Debugw("event frame received", "raw", string(frame))

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, frame, "", "  "); err == nil {
		logger.Debugw("event frame decoded", "json", pretty.String())
	}
}
