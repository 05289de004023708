package bytehuff

import (
	"bufio"
	"fmt"
	"io"
)

const readChunkSize = 4096

// Reader decompresses a serialized Container as it is read.  The header is
// parsed on the first call to Read; the payload is then pulled from the
// underlying reader one chunk at a time and decoded incrementally, so the
// whole container never needs to be in memory.
//
// The Reader buffers its input.  If the caller passes a *bufio.Reader, that
// buffer is used directly and is left positioned just after the container;
// the Reader never resets a buffer it did not allocate.
//
type Reader struct {
	src        *bufio.Reader
	buffer     *bufio.Reader
	dec        Decoder
	chunk      []byte
	out        []byte
	pending    []byte
	payloadLen uint64
	bytesLeft  uint64
	started    bool
	err        error
}

// NewReader returns a Reader that decompresses the container read from r.
func NewReader(r io.Reader) *Reader {
	rr := &Reader{}
	rr.Reset(r)
	return rr
}

// Reset discards all state and prepares to read a new container from r.
func (rr *Reader) Reset(r io.Reader) {
	buffer := rr.buffer
	src, ok := r.(*bufio.Reader)
	if !ok {
		if buffer != nil {
			buffer.Reset(r)
		} else {
			buffer = bufio.NewReader(r)
		}
		src = buffer
	}
	*rr = Reader{
		src:    src,
		buffer: buffer,
		chunk:  rr.chunk,
		out:    rr.out[:0],
	}
}

// Read implements io.Reader.  It returns io.EOF once the whole payload has
// been decoded and checked.  Corrupt or truncated input yields the same
// errors as Decode, after any symbols decoded before the fault.
func (rr *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if !rr.started {
		rr.started = true
		rr.err = rr.readHeader()
	}
	for len(rr.pending) == 0 {
		if rr.err != nil {
			return 0, rr.err
		}
		rr.fill()
	}
	n := copy(p, rr.pending)
	rr.pending = rr.pending[n:]
	return n, nil
}

func (rr *Reader) readHeader() error {
	ft, bitLength, err := ReadHeader(rr.src)
	if err != nil {
		return err
	}
	t, err := BuildTree(ft)
	if err != nil {
		return err
	}
	rr.dec.Init(t, bitLength)
	rr.payloadLen = payloadBytes(bitLength)
	rr.bytesLeft = rr.payloadLen
	if rr.chunk == nil {
		rr.chunk = make([]byte, readChunkSize)
	}
	return nil
}

// fill decodes the next chunk of payload into rr.pending, or sets rr.err.
func (rr *Reader) fill() {
	if rr.bytesLeft == 0 {
		rr.err = rr.dec.Finish()
		if rr.err == nil {
			rr.err = io.EOF
		}
		return
	}

	want := uint64(len(rr.chunk))
	if want > rr.bytesLeft {
		want = rr.bytesLeft
	}
	n, err := rr.src.Read(rr.chunk[:want])
	if n > 0 {
		rr.bytesLeft -= uint64(n)
		out, _, decErr := rr.dec.Decode(rr.out[:0], rr.chunk[:n])
		rr.out = out[:0]
		rr.pending = out
		if decErr != nil {
			rr.err = decErr
			return
		}
	}

	switch {
	case err == io.EOF && rr.bytesLeft != 0:
		rr.err = &TruncatedStreamError{Field: "payload", Want: rr.payloadLen, Got: rr.payloadLen - rr.bytesLeft}
	case err != nil && err != io.EOF:
		rr.err = fmt.Errorf("bytehuff: reading payload: %w", err)
	}
}

var _ io.Reader = (*Reader)(nil)
