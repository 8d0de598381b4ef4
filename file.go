package hshex

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ZstdExt marks paths whose HSHEX payload is wrapped in a zstd frame.
const ZstdExt = ".zst"

// IsCompressed reports whether Load and Save treat path as zstd framed.
func IsCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ZstdExt)
}

func newZstdReader(r io.Reader) (*zstd.Decoder, error) {
	return zstd.NewReader(
		r,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
}

func newZstdWriter(w io.Writer) (*zstd.Encoder, error) {
	return zstd.NewWriter(
		w,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
	)
}

// Load reads the image stored at path. The file is closed before Load
// returns, whatever the outcome.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	var r io.Reader = f
	if IsCompressed(path) {
		dec, err := newZstdReader(f)
		if err != nil {
			return nil, &IOError{Op: "decompress", Path: path, Err: err}
		}
		defer dec.Close()
		r = dec
	}

	img, err := Decode(r)
	if err != nil {
		return nil, withPath(err, path)
	}
	return img, nil
}

// Save writes img to path, creating or truncating the file.
func Save(path string, img *Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	if !IsCompressed(path) {
		return withPath(Encode(f, img), path)
	}

	enc, err := newZstdWriter(f)
	if err != nil {
		return &IOError{Op: "compress", Path: path, Err: err}
	}
	if err := Encode(enc, img); err != nil {
		enc.Close()
		return withPath(err, path)
	}
	if err := enc.Close(); err != nil {
		return &IOError{Op: "compress", Path: path, Err: err}
	}
	return nil
}

// withPath fills in the path of an *IOError raised below Load or Save.
func withPath(err error, path string) error {
	var ioErr *IOError
	if errors.As(err, &ioErr) && ioErr.Path == "" {
		ioErr.Path = path
	}
	return err
}
