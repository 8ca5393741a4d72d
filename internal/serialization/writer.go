package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/born-ml/perceptron/internal/nn"
)

// Producer identifies this library in written headers.
const Producer = "perceptron 0.1.0"

// SaveOptions carries the optional parts of a header.
type SaveOptions struct {
	Metadata map[string]string // Custom key/value metadata
	Training *TrainingMeta     // Training summary
}

// Save writes model to w in .born format.
func Save(w io.Writer, model nn.Model, opts SaveOptions) error {
	sizes, err := model.Sizes()
	if err != nil {
		return fmt.Errorf("invalid model: %w", err)
	}

	header := Header{
		FormatVersion: FormatVersion,
		Producer:      Producer,
		ModelType:     ModelType,
		LayerSizes:    sizes,
		CreatedAt:     time.Now().UTC(),
		Tensors:       make([]TensorMeta, 0, len(model)),
		Metadata:      opts.Metadata,
		Training:      opts.Training,
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	// Encode weights and calculate tensor offsets
	var data []byte
	for i, m := range model {
		rows, cols := m.Dims()
		offset := int64(len(data))
		for r := 0; r < rows; r++ {
			for _, v := range m.RawRow(r) {
				data = binary.LittleEndian.AppendUint64(data, math.Float64bits(v))
			}
		}
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   TensorName(i),
			DType:  DTypeFloat64,
			Shape:  []int{rows, cols},
			Offset: offset,
			Size:   int64(len(data)) - offset,
		})
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	fixed := make([]byte, FixedHeaderSize)

	// 0x00-0x03: Magic bytes "BORN"
	copy(fixed[0:4], MagicBytes)

	// 0x04-0x07: Version
	binary.LittleEndian.PutUint32(fixed[4:8], FormatVersion)

	// 0x08-0x0B: Flags
	flags := uint32(0)
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}
	if header.Training != nil {
		flags |= FlagHasTraining
	}
	binary.LittleEndian.PutUint32(fixed[8:12], flags)

	// 0x0C-0x0F: Reserved (0)

	// 0x10-0x17: Header size
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(headerJSON)))

	// 0x18-0x1F: Data size
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(len(data)))

	// 0x20-0x3F: SHA-256 checksum
	checksum := ComputeChecksum(data)
	copy(fixed[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	if _, err := w.Write(fixed); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header JSON: %w", err)
	}

	headerSize := int64(len(headerJSON))
	padding := dataOffset(headerSize) - int64(FixedHeaderSize) - headerSize
	if padding > 0 {
		if _, err := w.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write weight data: %w", err)
	}
	return nil
}

// SaveFile writes model to path, replacing any existing file.
func SaveFile(path string, model nn.Model, opts SaveOptions) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	return Save(file, model, opts)
}
