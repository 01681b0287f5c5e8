package savefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/snake-rogue/internal/games/snake"
)

// GhostFileExt is the conventional extension of exported ghost runs.
const GhostFileExt = ".ghost.zst"

// Compress packs a document with zstd.
func Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

// Decompress unpacks a zstd blob.
func Decompress(blob []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("savefile: decompress: %w", err)
	}
	return out, nil
}

// WriteGhost streams a compressed ghost document to w.
func WriteGhost(w io.Writer, run snake.GhostRun) error {
	data, err := EncodeGhost(run)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// ReadGhost reads a compressed ghost document from r.
func ReadGhost(r io.Reader) (snake.GhostRun, error) {
	dec, err := zstd.NewReader(bufio.NewReader(r))
	if err != nil {
		return snake.GhostRun{}, err
	}
	defer dec.Close()
	data, err := io.ReadAll(dec)
	if err != nil {
		return snake.GhostRun{}, fmt.Errorf("savefile: read ghost: %w", err)
	}
	return DecodeGhost(data)
}

// WriteGhostFile writes run to path, creating parent directories.
func WriteGhostFile(path string, run snake.GhostRun) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := WriteGhost(f, run); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// ReadGhostFile loads a ghost run exported by WriteGhostFile.
func ReadGhostFile(path string) (snake.GhostRun, error) {
	f, err := os.Open(path)
	if err != nil {
		return snake.GhostRun{}, err
	}
	defer f.Close()
	return ReadGhost(f)
}
