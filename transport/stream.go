package transport

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// HeaderSize is the fixed frame prefix: length, request id, status.
const HeaderSize = 4 + 8 + 1

// The wire length field counts the request id and status byte along
// with the payload, excluding the length field itself.
const lengthOverhead = 8 + 1

var (
	// ErrShortFrame is returned when a frame is shorter than its header
	// claims.
	ErrShortFrame = errors.New("transport: frame shorter than header")

	// ErrLengthMismatch is returned when the header length field does
	// not match the frame size.
	ErrLengthMismatch = errors.New("transport: header length does not match frame")

	// ErrNotRequest is returned when a response frame is parsed as a
	// request.
	ErrNotRequest = errors.New("transport: frame is not a request")

	// ErrNotResponse is returned when a request frame is parsed as a
	// response.
	ErrNotResponse = errors.New("transport: frame is not a response")

	// ErrActionTooLong is returned when an action name exceeds the
	// 16-bit length prefix.
	ErrActionTooLong = errors.New("transport: action name too long")
)

// Header is the decoded fixed prefix of a frame.
type Header struct {
	// Length is the wire length field: payload bytes plus the request id
	// and status byte.
	Length    uint32
	RequestID uint64
	Status    Status
}

func writeHeader(dst []byte, payloadLen int, requestID uint64, status Status) {
	binary.BigEndian.PutUint32(dst[0:4], uint32(payloadLen+lengthOverhead))
	binary.BigEndian.PutUint64(dst[4:12], requestID)
	dst[12] = byte(status)
}

// ReadHeader decodes and validates the fixed prefix of frame.
func ReadHeader(frame []byte) (Header, error) {
	if len(frame) < HeaderSize {
		return Header{}, ErrShortFrame
	}
	h := Header{
		Length:    binary.BigEndian.Uint32(frame[0:4]),
		RequestID: binary.BigEndian.Uint64(frame[4:12]),
		Status:    Status(frame[12]),
	}
	if int(h.Length) != len(frame)-4 {
		return Header{}, ErrLengthMismatch
	}
	return h, nil
}

// Options control payload encoding of built frames and decoding of
// parsed ones. A nil Options means no compression and DefaultCompressor
// for decompressing frames that carry the compressed bit.
type Options struct {
	// Compress runs the payload through the Compressor and sets the
	// compressed status bit.
	Compress bool
	// Compressor overrides DefaultCompressor.
	Compressor Compressor
}

func (o *Options) compressor() Compressor {
	if o != nil && o.Compressor != nil {
		return o.Compressor
	}
	return DefaultCompressor
}

// BuildRequest frames an action name and message as a request.
func BuildRequest(requestID uint64, action string, message []byte, opts *Options) ([]byte, error) {
	if len(action) > math.MaxUint16 {
		return nil, ErrActionTooLong
	}
	body := make([]byte, 0, 2+len(action)+len(message))
	body = binary.BigEndian.AppendUint16(body, uint16(len(action)))
	body = append(body, action...)
	body = append(body, message...)
	return seal(requestID, Status(0).AsRequest(), body, opts)
}

// BuildResponse frames a message as a response.
func BuildResponse(requestID uint64, message []byte, opts *Options) ([]byte, error) {
	return seal(requestID, Status(0).AsResponse(), message, opts)
}

// BuildErrorResponse frames an error message as a response with the
// error flag set. Error payloads are never compressed.
func BuildErrorResponse(requestID uint64, message []byte) ([]byte, error) {
	return seal(requestID, Status(0).AsResponse().WithError(), message, nil)
}

func seal(requestID uint64, status Status, body []byte, opts *Options) ([]byte, error) {
	if opts != nil && opts.Compress {
		compressed, err := opts.compressor().Compress(body)
		if err != nil {
			return nil, fmt.Errorf("transport: compress payload: %w", err)
		}
		body = compressed
		status = status.WithCompressed()
	}
	frame := make([]byte, HeaderSize+len(body))
	writeHeader(frame, len(body), requestID, status)
	copy(frame[HeaderSize:], body)
	return frame, nil
}

func payload(h Header, frame []byte, opts *Options) ([]byte, error) {
	body := frame[HeaderSize:]
	if !h.Status.IsCompressed() {
		return body, nil
	}
	out, err := opts.compressor().Decompress(body)
	if err != nil {
		return nil, fmt.Errorf("transport: decompress payload: %w", err)
	}
	return out, nil
}

// Request is a decoded request frame.
type Request struct {
	RequestID uint64
	Action    string
	Message   []byte
}

// ParseRequest decodes a request frame, decompressing the payload when
// the compressed bit is set.
func ParseRequest(frame []byte, opts *Options) (Request, error) {
	h, err := ReadHeader(frame)
	if err != nil {
		return Request{}, err
	}
	if !h.Status.IsRequest() {
		return Request{}, ErrNotRequest
	}
	body, err := payload(h, frame, opts)
	if err != nil {
		return Request{}, err
	}
	if len(body) < 2 {
		return Request{}, ErrShortFrame
	}
	n := int(binary.BigEndian.Uint16(body[0:2]))
	if len(body) < 2+n {
		return Request{}, ErrShortFrame
	}
	return Request{
		RequestID: h.RequestID,
		Action:    string(body[2 : 2+n]),
		Message:   body[2+n:],
	}, nil
}

// Response is a decoded response frame.
type Response struct {
	RequestID uint64
	Err       bool
	Message   []byte
}

// ParseResponse decodes a response frame, decompressing the payload when
// the compressed bit is set.
func ParseResponse(frame []byte, opts *Options) (Response, error) {
	h, err := ReadHeader(frame)
	if err != nil {
		return Response{}, err
	}
	if !h.Status.IsResponse() {
		return Response{}, ErrNotResponse
	}
	body, err := payload(h, frame, opts)
	if err != nil {
		return Response{}, err
	}
	return Response{
		RequestID: h.RequestID,
		Err:       h.Status.IsError(),
		Message:   body,
	}, nil
}
