// Package formats provides parsers and writers for world editor file formats.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Chunk format errors.
var (
	ErrInvalidChunkMagic       = errors.New("invalid chunk magic: expected 'WECK'")
	ErrUnsupportedChunkVersion = errors.New("unsupported chunk version")
	ErrTruncatedChunkData      = errors.New("truncated chunk data")
	ErrMalformedChunkData      = errors.New("malformed chunk data")
)

// ChunkVersion is the current chunk file version.
const ChunkVersion = 1

// ObjectRecord is one placed object as stored in a chunk file. Kind is kept
// as a raw tag so the format does not depend on the current object catalog.
type ObjectRecord struct {
	Kind      string
	X, Y, Z   float32
	RotationY float32
	Scale     float32
}

// ChunkFile is a parsed world chunk: a square height field plus the objects
// placed on it.
type ChunkFile struct {
	Version    int
	Size       float32
	Resolution int
	Samples    []float32 // row-major, Resolution*Resolution values
	Objects    []ObjectRecord
}

// ParseChunk parses a chunk file from raw bytes.
//
// The format is line-oriented text:
//
//	WECK <version>
//	size <float>
//	resolution <int>
//	<resolution lines of <resolution> space-separated heights>
//	objects <count>
//	<count lines of: kind x y z rotation scale>
func ParseChunk(data []byte) (*ChunkFile, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	line, ok := nextLine(sc)
	if !ok {
		return nil, ErrTruncatedChunkData
	}
	fields := strings.Fields(line)
	if len(fields) != 2 || fields[0] != "WECK" {
		return nil, ErrInvalidChunkMagic
	}
	version, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: version %q", ErrMalformedChunkData, fields[1])
	}
	if version != ChunkVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChunkVersion, version)
	}

	c := &ChunkFile{Version: version}

	size, err := parseKeyedFloat(sc, "size")
	if err != nil {
		return nil, err
	}
	if size <= 0 || math.IsInf(float64(size), 0) || math.IsNaN(float64(size)) {
		return nil, fmt.Errorf("%w: size %f", ErrMalformedChunkData, size)
	}
	c.Size = size

	resolution, err := parseKeyedInt(sc, "resolution")
	if err != nil {
		return nil, err
	}
	if resolution < 2 || resolution > 4096 {
		return nil, fmt.Errorf("%w: resolution %d", ErrMalformedChunkData, resolution)
	}
	c.Resolution = resolution

	c.Samples = make([]float32, 0, resolution*resolution)
	for row := 0; row < resolution; row++ {
		line, ok := nextLine(sc)
		if !ok {
			return nil, fmt.Errorf("%w: sample row %d", ErrTruncatedChunkData, row)
		}
		values := strings.Fields(line)
		if len(values) != resolution {
			return nil, fmt.Errorf("%w: sample row %d has %d values, want %d",
				ErrMalformedChunkData, row, len(values), resolution)
		}
		for col, raw := range values {
			v, err := strconv.ParseFloat(raw, 32)
			if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
				return nil, fmt.Errorf("%w: sample (%d,%d) %q",
					ErrMalformedChunkData, row, col, raw)
			}
			c.Samples = append(c.Samples, float32(v))
		}
	}

	count, err := parseKeyedInt(sc, "objects")
	if err != nil {
		return nil, err
	}
	if count < 0 || count > 1<<20 {
		return nil, fmt.Errorf("%w: object count %d", ErrMalformedChunkData, count)
	}
	c.Objects = make([]ObjectRecord, 0, count)
	for i := 0; i < count; i++ {
		line, ok := nextLine(sc)
		if !ok {
			return nil, fmt.Errorf("%w: object %d", ErrTruncatedChunkData, i)
		}
		obj, err := parseObjectRecord(line)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		c.Objects = append(c.Objects, obj)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedChunkData, err)
	}
	return c, nil
}

func parseObjectRecord(line string) (ObjectRecord, error) {
	fields := strings.Fields(line)
	if len(fields) != 6 {
		return ObjectRecord{}, fmt.Errorf("%w: %d fields, want 6", ErrMalformedChunkData, len(fields))
	}
	var nums [5]float32
	for i, raw := range fields[1:] {
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return ObjectRecord{}, fmt.Errorf("%w: field %q", ErrMalformedChunkData, raw)
		}
		nums[i] = float32(v)
	}
	if nums[4] <= 0 {
		return ObjectRecord{}, fmt.Errorf("%w: scale %f", ErrMalformedChunkData, nums[4])
	}
	return ObjectRecord{
		Kind:      fields[0],
		X:         nums[0],
		Y:         nums[1],
		Z:         nums[2],
		RotationY: nums[3],
		Scale:     nums[4],
	}, nil
}

func parseKeyedFloat(sc *bufio.Scanner, key string) (float32, error) {
	raw, err := parseKeyed(sc, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedChunkData, key, raw)
	}
	return float32(v), nil
}

func parseKeyedInt(sc *bufio.Scanner, key string) (int, error) {
	raw, err := parseKeyed(sc, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedChunkData, key, raw)
	}
	return v, nil
}

func parseKeyed(sc *bufio.Scanner, key string) (string, error) {
	line, ok := nextLine(sc)
	if !ok {
		return "", fmt.Errorf("%w: missing %s", ErrTruncatedChunkData, key)
	}
	fields := strings.Fields(line)
	if len(fields) != 2 || fields[0] != key {
		return "", fmt.Errorf("%w: expected '%s <value>', got %q", ErrMalformedChunkData, key, line)
	}
	return fields[1], nil
}

// nextLine returns the next non-empty line, trimmed.
func nextLine(sc *bufio.Scanner) (string, bool) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			return line, true
		}
	}
	return "", false
}

// Encode serializes the chunk to the textual format ParseChunk reads.
// Heights are written with enough precision to round-trip float32 exactly.
func (c *ChunkFile) Encode() []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "WECK %d\n", ChunkVersion)
	fmt.Fprintf(&b, "size %s\n", formatFloat(c.Size))
	fmt.Fprintf(&b, "resolution %d\n", c.Resolution)

	for row := 0; row < c.Resolution; row++ {
		for col := 0; col < c.Resolution; col++ {
			if col > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(formatFloat(c.Samples[row*c.Resolution+col]))
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "objects %d\n", len(c.Objects))
	for _, o := range c.Objects {
		fmt.Fprintf(&b, "%s %s %s %s %s %s\n",
			o.Kind,
			formatFloat(o.X), formatFloat(o.Y), formatFloat(o.Z),
			formatFloat(o.RotationY), formatFloat(o.Scale))
	}
	return b.Bytes()
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// LoadChunkFile parses a chunk file from disk.
func LoadChunkFile(path string) (*ChunkFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chunk file: %w", err)
	}
	return ParseChunk(data)
}

// SaveChunkFile writes the chunk to disk.
func SaveChunkFile(path string, c *ChunkFile) error {
	if len(c.Samples) != c.Resolution*c.Resolution {
		return fmt.Errorf("%w: %d samples for resolution %d",
			ErrMalformedChunkData, len(c.Samples), c.Resolution)
	}
	if err := os.WriteFile(path, c.Encode(), 0o644); err != nil {
		return fmt.Errorf("writing chunk file: %w", err)
	}
	return nil
}
