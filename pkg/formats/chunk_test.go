package formats

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

// createTestChunk builds a small valid chunk for round-trip tests.
func createTestChunk() *ChunkFile {
	const res = 3
	samples := []float32{
		0, 0.5, 1,
		-0.25, 2.125, 0.1,
		3, -1.5, 0.33333334,
	}
	return &ChunkFile{
		Version:    ChunkVersion,
		Size:       64,
		Resolution: res,
		Samples:    samples,
		Objects: []ObjectRecord{
			{Kind: "tree", X: 10.5, Y: 1.25, Z: 20, RotationY: 1.5707964, Scale: 1},
			{Kind: "rock", X: 3, Y: 0, Z: 3, RotationY: 0, Scale: 2.5},
		},
	}
}

func TestParseChunk_RoundTrip(t *testing.T) {
	want := createTestChunk()

	got, err := ParseChunk(want.Encode())
	if err != nil {
		t.Fatalf("ParseChunk failed: %v", err)
	}

	if got.Version != want.Version {
		t.Errorf("version = %d, want %d", got.Version, want.Version)
	}
	if got.Size != want.Size {
		t.Errorf("size = %f, want %f", got.Size, want.Size)
	}
	if got.Resolution != want.Resolution {
		t.Errorf("resolution = %d, want %d", got.Resolution, want.Resolution)
	}
	if len(got.Samples) != len(want.Samples) {
		t.Fatalf("got %d samples, want %d", len(got.Samples), len(want.Samples))
	}
	for i := range want.Samples {
		if got.Samples[i] != want.Samples[i] {
			t.Errorf("sample %d = %v, want %v", i, got.Samples[i], want.Samples[i])
		}
	}
	if len(got.Objects) != len(want.Objects) {
		t.Fatalf("got %d objects, want %d", len(got.Objects), len(want.Objects))
	}
	for i := range want.Objects {
		if got.Objects[i] != want.Objects[i] {
			t.Errorf("object %d = %+v, want %+v", i, got.Objects[i], want.Objects[i])
		}
	}
}

func TestParseChunk_NoObjects(t *testing.T) {
	c := createTestChunk()
	c.Objects = nil

	got, err := ParseChunk(c.Encode())
	if err != nil {
		t.Fatalf("ParseChunk failed: %v", err)
	}
	if len(got.Objects) != 0 {
		t.Errorf("expected no objects, got %d", len(got.Objects))
	}
}

func TestParseChunk_InvalidMagic(t *testing.T) {
	_, err := ParseChunk([]byte("NOPE 1\nsize 64\nresolution 2\n0 0\n0 0\nobjects 0\n"))
	if !errors.Is(err, ErrInvalidChunkMagic) {
		t.Errorf("expected ErrInvalidChunkMagic, got %v", err)
	}
}

func TestParseChunk_UnsupportedVersion(t *testing.T) {
	_, err := ParseChunk([]byte("WECK 99\nsize 64\nresolution 2\n0 0\n0 0\nobjects 0\n"))
	if !errors.Is(err, ErrUnsupportedChunkVersion) {
		t.Errorf("expected ErrUnsupportedChunkVersion, got %v", err)
	}
}

func TestParseChunk_Truncated(t *testing.T) {
	data := createTestChunk().Encode()

	// Cutting the payload anywhere after the header must produce an error,
	// not a partial chunk.
	for _, frac := range []int{0, len(data) / 4, len(data) / 2} {
		if _, err := ParseChunk(data[:frac]); err == nil {
			t.Errorf("expected error for %d-byte prefix", frac)
		}
	}

	_, err := ParseChunk([]byte(""))
	if !errors.Is(err, ErrTruncatedChunkData) {
		t.Errorf("expected ErrTruncatedChunkData for empty input, got %v", err)
	}
}

func TestParseChunk_Malformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"bad size", "WECK 1\nsize huge\nresolution 2\n0 0\n0 0\nobjects 0\n"},
		{"negative size", "WECK 1\nsize -4\nresolution 2\n0 0\n0 0\nobjects 0\n"},
		{"resolution too small", "WECK 1\nsize 64\nresolution 1\n0\nobjects 0\n"},
		{"short sample row", "WECK 1\nsize 64\nresolution 2\n0\n0 0\nobjects 0\n"},
		{"nan sample", "WECK 1\nsize 64\nresolution 2\nNaN 0\n0 0\nobjects 0\n"},
		{"bad object fields", "WECK 1\nsize 64\nresolution 2\n0 0\n0 0\nobjects 1\ntree 1 2\n"},
		{"zero object scale", "WECK 1\nsize 64\nresolution 2\n0 0\n0 0\nobjects 1\ntree 1 2 3 0 0\n"},
		{"missing key", "WECK 1\nresolution 2\n0 0\n0 0\nobjects 0\n"},
	}
	for _, tc := range cases {
		if _, err := ParseChunk([]byte(tc.data)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestParseChunk_IgnoresBlankLines(t *testing.T) {
	text := "WECK 1\n\nsize 64\n\nresolution 2\n0 0\n\n0 0\n\nobjects 0\n\n"
	c, err := ParseChunk([]byte(text))
	if err != nil {
		t.Fatalf("ParseChunk failed: %v", err)
	}
	if c.Resolution != 2 || len(c.Samples) != 4 {
		t.Errorf("unexpected chunk: resolution %d, %d samples", c.Resolution, len(c.Samples))
	}
}

func TestSaveLoadChunkFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.weck")
	want := createTestChunk()

	if err := SaveChunkFile(path, want); err != nil {
		t.Fatalf("SaveChunkFile failed: %v", err)
	}
	got, err := LoadChunkFile(path)
	if err != nil {
		t.Fatalf("LoadChunkFile failed: %v", err)
	}
	if got.Size != want.Size || got.Resolution != want.Resolution {
		t.Errorf("header mismatch: %+v", got)
	}
	if got.Samples[4] != want.Samples[4] {
		t.Errorf("sample mismatch: %v != %v", got.Samples[4], want.Samples[4])
	}
}

func TestSaveChunkFile_SampleCountMismatch(t *testing.T) {
	c := createTestChunk()
	c.Samples = c.Samples[:5]
	err := SaveChunkFile(filepath.Join(t.TempDir(), "bad.weck"), c)
	if err == nil {
		t.Fatal("expected error for sample count mismatch")
	}
	if !strings.Contains(err.Error(), "samples") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadChunkFile_Missing(t *testing.T) {
	if _, err := LoadChunkFile(filepath.Join(t.TempDir(), "missing.weck")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
