package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/born-ml/perceptron/internal/matrix"
	"github.com/born-ml/perceptron/internal/nn"
)

// Load reads a model written by Save.
//
// The data section is verified against the stored SHA-256 checksum and the
// header against the layer sizes before any matrix is built.
func Load(r io.Reader) (nn.Model, Header, error) {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read fixed header: %w", err)
	}
	if string(fixed[0:4]) != MagicBytes {
		return nil, Header{}, fmt.Errorf("%w: got %q, expected %q", ErrInvalidMagic, fixed[0:4], MagicBytes)
	}
	if version := binary.LittleEndian.Uint32(fixed[4:8]); version != FormatVersion {
		return nil, Header{}, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	headerSize := binary.LittleEndian.Uint64(fixed[16:24])
	dataSize := binary.LittleEndian.Uint64(fixed[24:32])
	var stored [ChecksumSize]byte
	copy(stored[:], fixed[ChecksumOffset:ChecksumOffset+ChecksumSize])

	if headerSize > MaxHeaderSize {
		return nil, Header{}, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}
	if dataSize > MaxDataSize {
		return nil, Header{}, &ValidationError{
			Err:     ErrOutOfBounds,
			Details: fmt.Sprintf("data size %d exceeds max %d", dataSize, int64(MaxDataSize)),
		}
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read header JSON: %w", err)
	}
	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, Header{}, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	padding := dataOffset(int64(headerSize)) - int64(FixedHeaderSize) - int64(headerSize)
	if _, err := io.CopyN(io.Discard, r, padding); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read padding: %w", err)
	}

	data := make([]byte, dataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read weight data: %w", err)
	}
	if err := ValidateChecksum(ComputeChecksum(data), stored); err != nil {
		return nil, Header{}, err
	}

	//nolint:gosec // G115: dataSize is bounded by MaxDataSize
	if err := ValidateHeader(&header, int64(dataSize)); err != nil {
		return nil, Header{}, fmt.Errorf("validation failed: %w", err)
	}

	model := make(nn.Model, len(header.Tensors))
	for i, t := range header.Tensors {
		m, err := decodeTensor(t, data[t.Offset:t.Offset+t.Size])
		if err != nil {
			return nil, Header{}, err
		}
		model[i] = m
	}
	return model, header, nil
}

func decodeTensor(t TensorMeta, raw []byte) (*matrix.Matrix, error) {
	m, err := matrix.Zeros(t.Shape[0], t.Shape[1])
	if err != nil {
		return nil, fmt.Errorf("tensor %q: %w", t.Name, err)
	}
	for r := 0; r < t.Shape[0]; r++ {
		row := m.RawRow(r)
		for c := range row {
			row[c] = math.Float64frombits(binary.LittleEndian.Uint64(raw))
			raw = raw[bytesPerWeight:]
		}
	}
	return m, nil
}

// LoadFile reads a model from path.
func LoadFile(path string) (nn.Model, Header, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, Header{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Load(file)
}

// LoadNetwork reads a model from path and builds a network from it.
func LoadNetwork(path string) (*nn.Network, Header, error) {
	model, header, err := LoadFile(path)
	if err != nil {
		return nil, Header{}, err
	}
	net, err := nn.NewNetworkFromModel(model)
	if err != nil {
		return nil, Header{}, fmt.Errorf("%w: %w", ErrModelMismatch, err)
	}
	return net, header, nil
}
