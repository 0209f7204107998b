package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/portsight/portsight/internal/scanning"
)

// ToolName tags every JSON envelope this tool emits.
const ToolName = "portsight"

// Envelope wraps one scan run for JSON output.
type Envelope struct {
	Tool        string                  `json:"tool"`
	Version     string                  `json:"version"`
	ScanID      string                  `json:"scan_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Targets     []scanning.TargetReport `json:"targets"`
}

// NewEnvelope builds the JSON envelope for a completed run. The
// generation timestamp is always UTC.
func NewEnvelope(version, scanID string, reports []scanning.TargetReport) Envelope {
	return Envelope{
		Tool:        ToolName,
		Version:     version,
		ScanID:      scanID,
		GeneratedAt: time.Now().UTC(),
		Targets:     reports,
	}
}

// WriteJSON writes the envelope as indented JSON.
func WriteJSON(w io.Writer, env Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// MarshalJSONEnvelope returns the indented JSON bytes for an envelope,
// for callers writing to a file.
func MarshalJSONEnvelope(env Envelope) ([]byte, error) {
	return json.MarshalIndent(env, "", "  ")
}
