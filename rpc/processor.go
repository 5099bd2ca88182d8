package unitconvrpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"unitconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const readChunk = 32 * 1024

// Processor answers convert packets against a unit table.
type Processor struct {
	Table   *unitconv.Table
	Workers int
	Log     logrus.FieldLogger
}

// NewProcessor returns a processor over the built-in table.
func NewProcessor(workers int) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		Table:   unitconv.DefaultTable(),
		Workers: workers,
		Log:     logrus.StandardLogger(),
	}
}

// Handle converts a single request. Failures are reported in the response,
// never as a Go error.
func (p *Processor) Handle(req Request) Response {
	resp := Response{ID: req.ID}
	v, err := p.Table.Convert(req.Value, req.From, req.To, req.Category)
	if err != nil {
		resp.Error = err.Error()
		resp.Code = codeOf(err)
		return resp
	}
	resp.Value = v
	return resp
}

// Catalog lists every category of the table with its units.
func (p *Processor) Catalog() ([]CategoryInfo, error) {
	names := p.Table.Categories()
	out := make([]CategoryInfo, 0, len(names))
	for _, name := range names {
		kind, err := p.Table.KindOf(name)
		if err != nil {
			return nil, err
		}
		units, err := p.Table.UnitsOf(name)
		if err != nil {
			return nil, err
		}
		out = append(out, CategoryInfo{Name: name, Kind: kind.String(), Units: units})
	}
	return out, nil
}

// HandlePacket answers a convert or catalog packet with a result packet.
func (p *Processor) HandlePacket(pkt *Packet) (*Packet, error) {
	if pkt != nil && string(pkt.H[HeaderKind]) == KindCatalog {
		categories, err := p.Catalog()
		if err != nil {
			return nil, err
		}
		return CatalogPacket(string(pkt.H[HeaderID]), categories)
	}
	req, err := DecodeRequest(pkt)
	if err != nil {
		var id string
		if pkt != nil {
			id = string(pkt.H[HeaderID])
		}
		p.Log.WithField("id", id).WithError(err).Warn("rejecting packet")
		return ResponsePacket(Response{ID: id, Error: err.Error(), Code: CodeBadRequest})
	}
	resp := p.Handle(req)
	if resp.Code != CodeOK {
		p.Log.WithFields(logrus.Fields{
			"id":       req.ID,
			"category": req.Category,
			"code":     resp.Code,
		}).Debug("conversion failed")
	}
	return ResponsePacket(resp)
}

// ProcessAll answers pkts concurrently, at most Workers at a time. The
// result packets keep the order of pkts.
func (p *Processor) ProcessAll(ctx context.Context, pkts []*Packet) ([]*Packet, error) {
	out := make([]*Packet, len(pkts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	for i := range pkts {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := p.HandlePacket(pkts[i])
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Run reads a stream of convert and catalog packets from r until EOF and
// writes one result packet per request to w, in input order. Packets that
// decode but carry a bad request get an error response. Bytes that are not
// msgpack end the run with an error once the packets before them are answered.
func (p *Processor) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	var pb PacketBuffer
	chunk := make([]byte, readChunk)
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, readErr := r.Read(chunk)
		if n > 0 {
			pkts, decodeErr := pb.Feed(chunk[:n])
			results, err := p.ProcessAll(ctx, pkts)
			if err != nil {
				return err
			}
			for _, res := range results {
				if err := WritePacket(w, res); err != nil {
					return err
				}
			}
			total += len(pkts)
			// packets ahead of a corrupt frame are answered before giving up
			if decodeErr != nil {
				p.Log.WithField("packets", total).WithError(decodeErr).Error("corrupt frame in batch stream")
				return fmt.Errorf("decoding packet %d: %w", total, decodeErr)
			}
		}
		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				return readErr
			}
			break
		}
	}
	if pending := pb.Pending(); pending > 0 {
		return fmt.Errorf("%w: %d trailing bytes", io.ErrUnexpectedEOF, pending)
	}
	p.Log.WithField("packets", total).Info("batch complete")
	return nil
}

func (p *Processor) workers() int {
	if p.Workers < 1 {
		return 1
	}
	return p.Workers
}

func codeOf(err error) string {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, unitconv.ErrUnknownCategory):
		return CodeUnknownCategory
	case errors.Is(err, unitconv.ErrUnknownUnit):
		return CodeUnknownUnit
	case errors.Is(err, unitconv.ErrInvalidValue):
		return CodeInvalidValue
	case errors.Is(err, unitconv.ErrOutOfRange):
		return CodeOutOfRange
	}
	return CodeBadRequest
}
