// Package transport implements the fixed wire framing finalized facet
// results are shipped with: a 13-byte big-endian header (payload length,
// request id, status byte) followed by an optionally compressed payload.
// The framing is an external contract consumed by the coordinating node;
// nothing in it is facet-specific.
package transport

// Status is the header's flag byte. Status values are immutable: the
// As*/With* methods return a new value, so a status read out of a
// pooled buffer can never be mutated in place.
type Status byte

const (
	statusResponse Status = 1 << 0
	statusError    Status = 1 << 1
	statusCompress Status = 1 << 2
)

// IsRequest reports whether the frame carries a request.
func (s Status) IsRequest() bool { return s&statusResponse == 0 }

// IsResponse reports whether the frame carries a response.
func (s Status) IsResponse() bool { return s&statusResponse != 0 }

// IsError reports whether the error flag is set.
func (s Status) IsError() bool { return s&statusError != 0 }

// IsCompressed reports whether the payload is compressed.
func (s Status) IsCompressed() bool { return s&statusCompress != 0 }

// AsRequest returns s with the request/response bit cleared.
func (s Status) AsRequest() Status { return s &^ statusResponse }

// AsResponse returns s with the request/response bit set.
func (s Status) AsResponse() Status { return s | statusResponse }

// WithError returns s with the error flag set.
func (s Status) WithError() Status { return s | statusError }

// WithCompressed returns s with the compressed-payload flag set.
func (s Status) WithCompressed() Status { return s | statusCompress }
