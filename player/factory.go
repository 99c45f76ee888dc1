package player

import (
	"context"
	"fmt"
	"net/http"
)

// New creates the AudioOutput for backend. client is used by backends that
// fetch the stream themselves.
func New(ctx context.Context, backend string, client *http.Client) (AudioOutput, error) {
	switch backend {
	case "", BackendMPV:
		out, err := NewMPVOutput(ctx)
		if err != nil {
			return nil, err
		}
		return out, nil
	case BackendBeep:
		out, err := NewBeepOutput(client)
		if err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown player backend %q", backend)
	}
}
