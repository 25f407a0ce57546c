package ingest

// sanitize.go provides the io.Reader wrappers applied to CSV input before
// parsing:
//
//   - bomSkipper removes a UTF-8 byte order mark (0xEF 0xBB 0xBF), common in
//     files exported from Windows tools.
//   - utf8Sanitizer replaces bytes that are not part of a valid UTF-8 sequence
//     with '?', so one bad byte cannot abort an entire import.
//   - byteLimiter fails the read once the input exceeds the configured size.
//
// wrapReader applies them in the correct order.

import (
	"errors"
	"io"
	"unicode/utf8"
)

// errTooLarge is returned through the csv reader when input exceeds the limit.
var errTooLarge = errors.New("input exceeds maximum allowed size")

func wrapReader(r io.Reader, maxBytes int64) io.Reader {
	if maxBytes > 0 {
		r = &byteLimiter{reader: r, remaining: maxBytes}
	}
	return newUTF8Sanitizer(newBOMSkipper(r))
}

// bomSkipper drops a leading UTF-8 BOM from the stream.
type bomSkipper struct {
	reader  io.Reader
	checked bool
}

func newBOMSkipper(r io.Reader) *bomSkipper {
	return &bomSkipper{reader: r}
}

func (b *bomSkipper) Read(p []byte) (int, error) {
	if b.checked {
		return b.reader.Read(p)
	}
	b.checked = true

	head := make([]byte, 3)
	n, err := io.ReadFull(b.reader, head)
	if n == 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		return b.reader.Read(p)
	}
	// Not a BOM: hand the buffered bytes to the caller first.
	if n > 0 {
		copied := copy(p, head[:n])
		if copied < n {
			// Caller's buffer is tiny; keep the remainder for later reads.
			b.reader = io.MultiReader(newByteReader(head[copied:n]), b.reader)
		}
		return copied, nil
	}
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return 0, err
}

// newByteReader returns a reader over a fixed byte slice without pulling in
// bytes.NewReader's seek surface.
func newByteReader(b []byte) io.Reader {
	return &byteReader{buf: b}
}

type byteReader struct {
	buf []byte
}

func (r *byteReader) Read(p []byte) (int, error) {
	if len(r.buf) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

// utf8Sanitizer replaces invalid UTF-8 bytes with '?' as data flows through.
// An incomplete multi-byte sequence at the end of a read is held back until
// the next read decides whether it completes.
type utf8Sanitizer struct {
	reader  io.Reader
	pending []byte
}

func newUTF8Sanitizer(r io.Reader) *utf8Sanitizer {
	return &utf8Sanitizer{
		reader:  r,
		pending: make([]byte, 0, utf8.UTFMax),
	}
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	if len(p) < utf8.UTFMax {
		// Too small to hold a rune plus carry-over; not worth supporting.
		return 0, io.ErrShortBuffer
	}

	n := copy(p, s.pending)
	s.pending = s.pending[:0]

	read, err := s.reader.Read(p[n:])
	n += read
	if n == 0 {
		return 0, err
	}

	// On EOF or a real error nothing more is coming: a trailing incomplete
	// sequence can never complete, so it is replaced instead of held back.
	final := err != nil
	kept := s.sanitize(p[:n], final)
	if kept == 0 && err == nil {
		// Everything read so far is one incomplete sequence; try again.
		return s.Read(p)
	}
	return kept, err
}

// sanitize rewrites buf in place, replacing invalid bytes with '?'. It returns
// the number of bytes to surface; a trailing incomplete sequence is moved to
// s.pending unless final, in which case it is replaced too.
func (s *utf8Sanitizer) sanitize(buf []byte, final bool) int {
	i := 0
	for i < len(buf) {
		if buf[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(buf[i:])
		if r != utf8.RuneError || size > 1 {
			i += size
			continue
		}
		// Either garbage or an incomplete sequence at the buffer end.
		if !final && !utf8.FullRune(buf[i:]) && len(buf)-i < utf8.UTFMax {
			s.pending = append(s.pending, buf[i:]...)
			return i
		}
		buf[i] = '?'
		i++
	}
	return len(buf)
}

// byteLimiter errors once more than remaining bytes have been read. Input of
// exactly the limit still succeeds; only the first byte beyond it fails.
type byteLimiter struct {
	reader    io.Reader
	remaining int64
}

func (l *byteLimiter) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		return 0, errTooLarge
	}
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.reader.Read(p)
	if int64(n) <= l.remaining {
		l.remaining -= int64(n)
		return n, err
	}
	l.remaining = -1
	return 0, errTooLarge
}
