package unitconvrpc

import (
	"errors"
	"fmt"
	"io"
)

// Client is the peer side of a batch stream: it writes request packets to w
// and reads result packets back from r.
type Client struct {
	w       io.Writer
	r       io.Reader
	pb      PacketBuffer
	pending []*Packet
	chunk   []byte
	err     error // decode failure, reported once pending drains
}

func NewClient(r io.Reader, w io.Writer) *Client {
	return &Client{w: w, r: r, chunk: make([]byte, readChunk)}
}

// Convert sends a convert request.
func (c *Client) Convert(req Request) error {
	pkt, err := RequestPacket(req)
	if err != nil {
		return err
	}
	return WritePacket(c.w, pkt)
}

// Catalog sends a catalog request and returns its id.
func (c *Client) Catalog() (string, error) {
	pkt := CatalogRequestPacket()
	return string(pkt.H[HeaderID]), WritePacket(c.w, pkt)
}

// Next returns the next result packet. It returns io.EOF once r is drained
// on a packet boundary. After a corrupt frame Next returns the packets
// decoded ahead of it, then the decode error on every later call.
func (c *Client) Next() (*Packet, error) {
	for len(c.pending) == 0 {
		if c.err != nil {
			return nil, c.err
		}
		n, readErr := c.r.Read(c.chunk)
		if n > 0 {
			pkts, err := c.pb.Feed(c.chunk[:n])
			c.pending = append(c.pending, pkts...)
			if err != nil {
				c.err = err
				continue
			}
		}
		if readErr != nil && len(c.pending) == 0 {
			if errors.Is(readErr, io.EOF) && c.pb.Pending() > 0 {
				return nil, fmt.Errorf("%w: %d trailing bytes", io.ErrUnexpectedEOF, c.pb.Pending())
			}
			return nil, readErr
		}
	}
	pkt := c.pending[0]
	c.pending = c.pending[1:]
	return pkt, nil
}

// Responses reads every remaining result packet as a convert Response.
func (c *Client) Responses() ([]Response, error) {
	var out []Response
	for {
		pkt, err := c.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		resp, err := DecodeResponse(pkt)
		if err != nil {
			return out, err
		}
		out = append(out, resp)
	}
}
