// Package runfile implements buffered binary I/O for disk-resident sorted
// runs. A run file is a raw sequence of 8-byte host-endian float64 values
// with no header and no length prefix; the element count is implied by the
// file size. Run files are transient sort artifacts: consumers delete them
// once merged or streamed out.
package runfile

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"
)

// valueSize is the encoded size of one element in bytes.
const valueSize = 8

// fileBufferSize is the write buffer used for whole-run flushes.
const fileBufferSize = 1 << 16

// Writer appends values to a freshly created, uniquely named run file
// through an internal buffer that flushes when full and on Finish.
type Writer struct {
	file *os.File
	buf  *bufio.Writer
}

// Create opens a new run file in dir with room for bufferElements values in
// the write buffer.
func Create(dir string, bufferElements int) (*Writer, error) {
	f, err := os.CreateTemp(dir, runFilePrefix)
	if err != nil {
		return nil, err
	}
	return &Writer{file: f, buf: bufio.NewWriterSize(f, bufferElements*valueSize)}, nil
}

// Name returns the run file's path.
func (w *Writer) Name() string {
	return w.file.Name()
}

// Append writes one value.
func (w *Writer) Append(v float64) error {
	var scratch [valueSize]byte
	binary.NativeEndian.PutUint64(scratch[:], math.Float64bits(v))
	_, err := w.buf.Write(scratch[:])
	return err
}

// Finish flushes the buffer and closes the file. The Writer is unusable
// afterwards.
func (w *Writer) Finish() error {
	if err := w.buf.Flush(); err != nil {
		return err
	}
	return w.file.Close()
}

// CreateRun writes values to a new uniquely named run file in dir and
// returns its path.
func CreateRun(dir string, values []float64) (string, error) {
	w, err := Create(dir, fileBufferSize/valueSize)
	if err != nil {
		return "", err
	}
	for _, v := range values {
		if err := w.Append(v); err != nil {
			return w.Name(), err
		}
	}
	return w.Name(), w.Finish()
}

// WriteRun creates or overwrites path with the encoding of values.
func WriteRun(path string, values []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	buf := bufio.NewWriterSize(f, fileBufferSize)
	var scratch [valueSize]byte
	for _, v := range values {
		binary.NativeEndian.PutUint64(scratch[:], math.Float64bits(v))
		if _, err := buf.Write(scratch[:]); err != nil {
			f.Close()
			return err
		}
	}
	if err := buf.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadRun loads an entire run file into memory. Trailing bytes short of a
// full element are ignored.
func ReadRun(path string) ([]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(raw)/valueSize)
	for i := range values {
		values[i] = math.Float64frombits(binary.NativeEndian.Uint64(raw[i*valueSize:]))
	}
	return values, nil
}

// Reader streams a run file through a fixed-size buffer. Peek never performs
// I/O; Next refills the buffer transparently when it runs dry. A refill that
// yields fewer elements than the buffer holds is valid and signals upcoming
// exhaustion; exhaustion itself is reported only once a refill returns zero
// elements.
type Reader struct {
	file      *os.File
	raw       []byte
	values    []float64
	pos       int
	exhausted bool
}

// Open opens path for streaming with a buffer of bufferElements values and
// performs the initial fill.
func Open(path string, bufferElements int) (*Reader, error) {
	if bufferElements < 1 {
		bufferElements = 1
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := &Reader{
		file:   f,
		raw:    make([]byte, bufferElements*valueSize),
		values: make([]float64, 0, bufferElements),
	}
	if err := r.fill(); err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// Peek returns the current head value, or false when the run is exhausted.
func (r *Reader) Peek() (float64, bool) {
	if r.pos >= len(r.values) {
		return 0, false
	}
	return r.values[r.pos], true
}

// Next advances past the current head, refilling from disk when the buffer
// is spent.
func (r *Reader) Next() error {
	r.pos++
	if r.pos >= len(r.values) && !r.exhausted {
		return r.fill()
	}
	return nil
}

func (r *Reader) fill() error {
	n, err := io.ReadFull(r.file, r.raw)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	if err != nil {
		return err
	}
	got := n / valueSize
	r.values = r.values[:got]
	for i := 0; i < got; i++ {
		r.values[i] = math.Float64frombits(binary.NativeEndian.Uint64(r.raw[i*valueSize:]))
	}
	r.pos = 0
	if got == 0 {
		r.exhausted = true
	}
	return nil
}

// Close releases the underlying file. It does not delete the file and is
// safe to call more than once.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	f := r.file
	r.file = nil
	return f.Close()
}
