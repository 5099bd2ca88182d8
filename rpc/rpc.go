package unitconvrpc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Header and body keys of a Packet.
const (
	HeaderID   = "id"
	HeaderKind = "kind"

	BodyRequest  = "request"
	BodyResponse = "response"
	BodyCatalog  = "catalog"

	KindConvert = "convert"
	KindCatalog = "catalog"
	KindResult  = "result"
)

// Response codes.
const (
	CodeOK              = ""
	CodeUnknownCategory = "unknown_category"
	CodeUnknownUnit     = "unknown_unit"
	CodeInvalidValue    = "invalid_value"
	CodeOutOfRange      = "out_of_range"
	CodeBadRequest      = "bad_request"
)

// ErrBadPacket is returned for packets that lack the expected header or body.
var ErrBadPacket = errors.New("unitconvrpc: bad packet")

type Packet struct {
	H map[string][]byte `msgpack:"h,omitempty"`
	B map[string][]byte `msgpack:"b,omitempty"`
}

type Request struct {
	ID       string  `msgpack:"id"`
	Category string  `msgpack:"category"`
	From     string  `msgpack:"from"`
	To       string  `msgpack:"to"`
	Value    float64 `msgpack:"value"`
}

type Response struct {
	ID    string  `msgpack:"id"`
	Value float64 `msgpack:"value"`
	Error string  `msgpack:"error,omitempty"`
	Code  string  `msgpack:"code,omitempty"`
}

// CategoryInfo describes one category of a catalog reply.
type CategoryInfo struct {
	Name  string   `msgpack:"name"`
	Kind  string   `msgpack:"kind"`
	Units []string `msgpack:"units"`
}

// NewRequest returns a convert request stamped with a fresh UUID.
func NewRequest(category, from, to string, value float64) Request {
	return Request{
		ID:       uuid.NewString(),
		Category: category,
		From:     from,
		To:       to,
		Value:    value,
	}
}

// RequestPacket wraps req in a convert packet.
func RequestPacket(req Request) (*Packet, error) {
	body, err := msgpack.Marshal(&req)
	if err != nil {
		return nil, err
	}
	return &Packet{
		H: map[string][]byte{HeaderID: []byte(req.ID), HeaderKind: []byte(KindConvert)},
		B: map[string][]byte{BodyRequest: body},
	}, nil
}

// ResponsePacket wraps resp in a result packet.
func ResponsePacket(resp Response) (*Packet, error) {
	body, err := msgpack.Marshal(&resp)
	if err != nil {
		return nil, err
	}
	return &Packet{
		H: map[string][]byte{HeaderID: []byte(resp.ID), HeaderKind: []byte(KindResult)},
		B: map[string][]byte{BodyResponse: body},
	}, nil
}

// CatalogRequestPacket asks for the categories and units the peer knows.
func CatalogRequestPacket() *Packet {
	return &Packet{
		H: map[string][]byte{HeaderID: []byte(uuid.NewString()), HeaderKind: []byte(KindCatalog)},
	}
}

// CatalogPacket wraps a catalog reply to the request with the given id.
func CatalogPacket(id string, categories []CategoryInfo) (*Packet, error) {
	body, err := msgpack.Marshal(categories)
	if err != nil {
		return nil, err
	}
	return &Packet{
		H: map[string][]byte{HeaderID: []byte(id), HeaderKind: []byte(KindResult)},
		B: map[string][]byte{BodyCatalog: body},
	}, nil
}

// DecodeCatalog extracts the categories carried by a catalog reply.
func DecodeCatalog(pkt *Packet) ([]CategoryInfo, error) {
	if pkt == nil {
		return nil, fmt.Errorf("%w: nil packet", ErrBadPacket)
	}
	body, ok := pkt.B[BodyCatalog]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q body", ErrBadPacket, BodyCatalog)
	}
	var categories []CategoryInfo
	if err := msgpack.Unmarshal(body, &categories); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPacket, err)
	}
	return categories, nil
}

// DecodeRequest extracts the Request carried by a convert packet.
func DecodeRequest(pkt *Packet) (Request, error) {
	var req Request
	if pkt == nil {
		return req, fmt.Errorf("%w: nil packet", ErrBadPacket)
	}
	if kind := string(pkt.H[HeaderKind]); kind != KindConvert {
		return req, fmt.Errorf("%w: kind %q", ErrBadPacket, kind)
	}
	body, ok := pkt.B[BodyRequest]
	if !ok {
		return req, fmt.Errorf("%w: missing %q body", ErrBadPacket, BodyRequest)
	}
	if err := msgpack.Unmarshal(body, &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrBadPacket, err)
	}
	return req, nil
}

// DecodeResponse extracts the Response carried by a result packet.
func DecodeResponse(pkt *Packet) (Response, error) {
	var resp Response
	if pkt == nil {
		return resp, fmt.Errorf("%w: nil packet", ErrBadPacket)
	}
	body, ok := pkt.B[BodyResponse]
	if !ok {
		return resp, fmt.Errorf("%w: missing %q body", ErrBadPacket, BodyResponse)
	}
	if err := msgpack.Unmarshal(body, &resp); err != nil {
		return resp, fmt.Errorf("%w: %v", ErrBadPacket, err)
	}
	return resp, nil
}

// WritePacket appends the msgpack encoding of pkt to w.
func WritePacket(w io.Writer, pkt *Packet) error {
	return msgpack.NewEncoder(w).Encode(pkt)
}

// PacketBuffer reassembles packets from a byte stream that may split them
// at arbitrary points.
type PacketBuffer struct {
	buf bytes.Buffer
}

// Feed appends data and returns every packet that is now complete. Bytes of
// a trailing partial packet stay buffered for the next call. On a decode
// error Feed returns the packets decoded before the bad frame and discards
// everything still buffered, since msgpack has no frame marker to resync on.
func (pb *PacketBuffer) Feed(data []byte) ([]*Packet, error) {
	pb.buf.Write(data)

	var results []*Packet
	for pb.buf.Len() > 0 {
		r := bytes.NewReader(pb.buf.Bytes())
		dec := msgpack.NewDecoder(r)
		v := new(Packet)
		if err := dec.Decode(v); err != nil {
			if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
				// not enough data yet, stop
				break
			}
			pb.buf.Reset()
			return results, err
		}
		pb.buf.Next(pb.buf.Len() - r.Len())
		results = append(results, v)
	}
	return results, nil
}

// Pending reports how many bytes of an incomplete packet are buffered.
func (pb *PacketBuffer) Pending() int {
	return pb.buf.Len()
}
