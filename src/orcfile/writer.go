package orcfile

import (
	"fmt"
	"io"

	"github.com/kokes/orcwrite/src/compress"
	"github.com/kokes/orcwrite/src/data"
	"github.com/kokes/orcwrite/src/orcproto"
	"github.com/kokes/orcwrite/src/schema"
	"github.com/kokes/orcwrite/src/stats"
	"github.com/kokes/orcwrite/src/stripe"
)

// countingWriter tracks the absolute byte offset written through it so the
// Writer always knows where the next stripe (or the footer) starts.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Writer drives a single ORC file's lifecycle: the magic header, a
// sequence of stripes and the final footer/postscript. Callers obtain the
// data tree via Data(), write values directly to its leaves, then call
// WriteBatch to commit rows (spec §4.5).
//
// A Writer is not safe for concurrent use.
type Writer struct {
	sink *countingWriter
	cfg  Config

	root       data.Node
	rootSchema *schema.Schema
	stripe     *stripe.Stripe

	stripeDescs []stripe.Descriptor
	stripeRows  int64
	totalRows   int64
	fileStats   []stats.Statistics

	poisoned bool
	err      error
}

// Open assigns column ids to rootSchema, validates it, builds the data
// tree and writes the file's magic header to sink.
func Open(sink io.Writer, rootSchema *schema.Schema, cfg Config) (*Writer, error) {
	schema.Assign(rootSchema)
	if err := schema.Validate(rootSchema); err != nil {
		return nil, err
	}

	cw := &countingWriter{w: sink}
	if _, err := cw.Write([]byte(Magic)); err != nil {
		return nil, &IOError{Op: "write magic", Err: err}
	}

	root := data.New(rootSchema, data.Config{Compression: cfg.Compression, BlockSize: cfg.CompressionBlockSize})
	return &Writer{
		sink:       cw,
		cfg:        cfg,
		root:       root,
		rootSchema: rootSchema,
		stripe:     stripe.New(root, cfg.Compression, cfg.CompressionBlockSize),
	}, nil
}

// Data returns the root of the column data tree; callers write values to
// its leaves (by type-asserting to the concrete node, e.g. *data.LongNode)
// before calling WriteBatch.
func (w *Writer) Data() data.Node { return w.root }

// WriteBatch commits n rows written to the data tree's leaves since the
// last WriteBatch call. It verifies the cumulative row count accumulated
// in the still-open stripe (spec §4.5: row-count verification happens per
// batch against the whole stripe so far, not just the delta), then flushes
// the stripe if its estimated size has crossed the configured target.
func (w *Writer) WriteBatch(n int64) error {
	if w.poisoned {
		return w.err
	}
	w.stripeRows += n
	w.root.VerifyRowCount(w.stripeRows)
	w.stripe.AddRows(n)
	w.totalRows += n

	if w.cfg.StripeTargetSize > 0 && w.stripe.EstimatedSize() >= w.cfg.StripeTargetSize {
		if err := w.flushStripe(); err != nil {
			return w.poison("flush stripe", err)
		}
	}
	return nil
}

func (w *Writer) poison(op string, err error) error {
	w.poisoned = true
	w.err = &IOError{Op: op, Err: err}
	return w.err
}

// flushStripe captures and merges the data tree's current Statistics into
// the file-level totals (this must happen before Stripe.Flush, which
// resets every node's accumulators), then flushes the stripe to the sink.
func (w *Writer) flushStripe() error {
	var live []*stats.Statistics
	w.root.Statistics(&live)
	if w.fileStats == nil {
		w.fileStats = make([]stats.Statistics, len(live))
		for i, s := range live {
			w.fileStats[i] = *s
		}
	} else {
		for i, s := range live {
			w.fileStats[i].Merge(s)
		}
	}

	desc, err := w.stripe.Flush(w.sink, w.sink.n)
	if err != nil {
		return err
	}
	w.stripeDescs = append(w.stripeDescs, desc)
	w.stripeRows = 0
	return nil
}

// Finish flushes any rows remaining in the open stripe, writes the file
// footer and postscript, and leaves the Writer unusable for further writes.
func (w *Writer) Finish() error {
	if w.poisoned {
		return w.err
	}
	if w.stripeRows > 0 || len(w.stripeDescs) == 0 {
		if err := w.flushStripe(); err != nil {
			return w.poison("flush final stripe", err)
		}
	}

	headerLength := int64(len(Magic))
	contentLength := w.sink.n - headerLength

	stripeMsgs := make([][]byte, len(w.stripeDescs))
	for i, d := range w.stripeDescs {
		stripeMsgs[i] = orcproto.StripeInformation(
			uint64(d.Offset), uint64(d.IndexLength), uint64(d.DataLength), uint64(d.FooterLength), uint64(d.RowCount),
		)
	}

	typeMsgs := buildTypeMessages(w.rootSchema)
	statMsgs := buildStatMessages(w.fileStats)

	footer := orcproto.Footer(
		uint64(headerLength), uint64(contentLength),
		stripeMsgs, typeMsgs, nil,
		uint64(w.totalRows), statMsgs, uint32(w.cfg.RowIndexStride),
	)

	footerStream := compress.NewStream(w.cfg.Compression, w.cfg.CompressionBlockSize)
	if _, err := footerStream.Write(footer); err != nil {
		return w.poison("encode footer", err)
	}
	footerLength, err := footerStream.Finish(w.sink)
	if err != nil {
		return w.poison("write footer", err)
	}

	ps := orcproto.PostScript(
		uint64(footerLength), uint64(compressionToProto(w.cfg.Compression)),
		uint64(w.cfg.CompressionBlockSize), uint64(w.cfg.WriterVersion), Magic,
	)
	if len(ps) == 0 || len(ps) > 255 {
		return w.poison("write postscript", &postScriptLengthError{length: len(ps)})
	}
	if _, err := w.sink.Write(ps); err != nil {
		return w.poison("write postscript", err)
	}
	if _, err := w.sink.Write([]byte{byte(len(ps))}); err != nil {
		return w.poison("write postscript length", err)
	}

	w.poisoned = true
	w.err = fmt.Errorf("orcfile: writer already finished")
	return nil
}
