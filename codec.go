// HSHEX is a whitespace-tolerant text dump of 16-bit RGB pixels:
//
//	HSHEX
//	{width} {height}
//	RRRR GGGG BBBB RRRR GGGG BBBB ...
//
// Each channel is four hex digits. The encoder ends every row with a newline;
// the decoder ignores line structure entirely.

package hshex

import (
	"bufio"
	"io"
	"strconv"
)

const magic = "HSHEX"

const hexDigits = "0123456789ABCDEF"

// longest accepted dimension token, sign included
const maxIntToken = 20

// longest header token kept for error reporting
const maxHeaderToken = 32

// scanner reads HSHEX tokens from a buffered reader. Read failures other
// than end of input are returned as *IOError.
type scanner struct {
	r *bufio.Reader
}

func newScanner(r io.Reader) *scanner {
	if br, ok := r.(*bufio.Reader); ok {
		return &scanner{r: br}
	}
	return &scanner{r: bufio.NewReader(r)}
}

// readByte returns ok == false at end of input.
func (s *scanner) readByte() (c byte, ok bool, err error) {
	c, err = s.r.ReadByte()
	if err == io.EOF {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, &IOError{Op: "read", Err: err}
	}
	return c, true, nil
}

func (s *scanner) unread() {
	// Only ever called directly after a successful ReadByte.
	_ = s.r.UnreadByte()
}

func (s *scanner) skipSpace() error {
	for {
		c, ok, err := s.readByte()
		if err != nil || !ok {
			return err
		}
		if !isSpace(c) {
			s.unread()
			return nil
		}
	}
}

// word reads up to limit non-space bytes after skipping leading whitespace.
func (s *scanner) word(limit int) (string, error) {
	if err := s.skipSpace(); err != nil {
		return "", err
	}
	buf := make([]byte, 0, limit)
	for len(buf) < limit {
		c, ok, err := s.readByte()
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		if isSpace(c) {
			s.unread()
			break
		}
		buf = append(buf, c)
	}
	return string(buf), nil
}

// integer reads an optionally signed decimal integer. ok is false when the
// input holds no well-formed integer at this position; tok is then the text
// that was rejected.
func (s *scanner) integer() (v int, tok string, ok bool, err error) {
	if err = s.skipSpace(); err != nil {
		return 0, "", false, err
	}
	buf := make([]byte, 0, 8)
	for {
		c, more, err := s.readByte()
		if err != nil {
			return 0, "", false, err
		}
		if !more {
			break
		}
		signed := len(buf) == 0 && (c == '+' || c == '-')
		if !signed && (c < '0' || c > '9') {
			s.unread()
			if len(buf) == 0 && !isSpace(c) {
				buf = append(buf, c)
			}
			break
		}
		if len(buf) == maxIntToken {
			return 0, string(buf), false, nil
		}
		buf = append(buf, c)
	}
	v, convErr := strconv.Atoi(string(buf))
	if convErr != nil {
		return 0, string(buf), false, nil
	}
	return v, string(buf), true, nil
}

// channel reads exactly four hex digits.
func (s *scanner) channel() (v uint16, ok bool, err error) {
	if err = s.skipSpace(); err != nil {
		return 0, false, err
	}
	for range 4 {
		c, more, err := s.readByte()
		if err != nil {
			return 0, false, err
		}
		d, isHex := hexValue(c)
		if !more || !isHex {
			return 0, false, nil
		}
		v = v<<4 | uint16(d)
	}
	return v, true, nil
}

func (s *scanner) pixel() (p Pixel, ok bool, err error) {
	if p.R, ok, err = s.channel(); !ok || err != nil {
		return Pixel{}, false, err
	}
	if p.G, ok, err = s.channel(); !ok || err != nil {
		return Pixel{}, false, err
	}
	if p.B, ok, err = s.channel(); !ok || err != nil {
		return Pixel{}, false, err
	}
	return p, true, nil
}

// Decode reads one HSHEX image from r. Bytes after the last pixel record are
// not consumed by the format and are ignored.
func Decode(r io.Reader) (*Image, error) {
	s := newScanner(r)

	// The whole whitespace-delimited token must be the magic, so "HSHEXX"
	// and "HSHEX1" are header errors rather than dimension errors.
	header, err := s.word(maxHeaderToken)
	if err != nil {
		return nil, err
	}
	if header != magic {
		return nil, errBadHeader(header)
	}

	width, tok, ok, err := s.integer()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errBadDimensions(tok)
	}
	height, tok, ok, err := s.integer()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errBadDimensions(tok)
	}

	n, err := checkedPixelCount(width, height)
	if err != nil {
		return nil, err
	}

	// Grow as records arrive so a lying header cannot force a huge allocation
	// for a short input.
	pix := make([]Pixel, 0, min(n, 1<<16))
	for i := range n {
		p, ok, err := s.pixel()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errBadPixel(i)
		}
		pix = append(pix, p)
	}

	return &Image{width: width, height: height, pix: pix}, nil
}

// Encode writes img to w in canonical HSHEX layout: uppercase hex, one space
// after every channel and a newline after every row.
func Encode(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)

	buf := make([]byte, 0, 64)
	buf = append(buf, magic...)
	buf = append(buf, '\n')
	buf = strconv.AppendInt(buf, int64(img.width), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(img.height), 10)
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return &IOError{Op: "write", Err: err}
	}

	for i, p := range img.pix {
		buf = appendHex4(buf[:0], p.R)
		buf = append(buf, ' ')
		buf = appendHex4(buf, p.G)
		buf = append(buf, ' ')
		buf = appendHex4(buf, p.B)
		buf = append(buf, ' ')
		if (i+1)%img.width == 0 {
			buf = append(buf, '\n')
		}
		if _, err := bw.Write(buf); err != nil {
			return &IOError{Op: "write", Err: err}
		}
	}

	if err := bw.Flush(); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	return nil
}

func appendHex4(dst []byte, v uint16) []byte {
	return append(dst,
		hexDigits[v>>12&0xF],
		hexDigits[v>>8&0xF],
		hexDigits[v>>4&0xF],
		hexDigits[v&0xF],
	)
}
