package transportv1

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Codec encodes TransportService messages as JSON. It registers under the
// "json" name so that both the Connect and gRPC-Web JSON content types use
// it.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string {
	return "json"
}

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal %T", msg)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty payload leaves msg zero.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return errors.Wrapf(err, "failed to unmarshal %T", msg)
	}
	return nil
}
