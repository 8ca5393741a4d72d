package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// Validation limits for security and resource protection.
const (
	MaxHeaderSize    = 16 * 1024 * 1024 // 16MB - maximum JSON header size
	MaxDataSize      = 1 << 32          // 4GB - maximum weight data size
	MaxTensorCount   = 10_000           // Maximum number of layers in a file
	MaxTensorNameLen = 256              // Maximum tensor name length

	maxWeights = MaxDataSize / bytesPerWeight
)

// ValidateTensorOffsets checks for overlapping tensor offsets and out-of-bounds access.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return &ValidationError{
			Err:     ErrTooManyTensors,
			Details: fmt.Sprintf("got %d, max %d", len(tensors), MaxTensorCount),
		}
	}

	sorted := make([]TensorMeta, len(tensors))
	copy(sorted, tensors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, t := range sorted {
		if t.Offset < 0 || t.Size < 0 {
			return &ValidationError{
				Err:     ErrNegativeOffset,
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset=%d, size=%d", t.Offset, t.Size),
			}
		}

		if t.Offset+t.Size > dataSize {
			return &ValidationError{
				Err:     ErrOutOfBounds,
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", t.Offset, t.Size, dataSize),
			}
		}

		if i < len(sorted)-1 {
			next := sorted[i+1]
			if t.Offset+t.Size > next.Offset {
				return &ValidationError{
					Err:     ErrOffsetOverlap,
					Tensor:  t.Name,
					Tensor2: next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						t.Offset, t.Offset+t.Size, next.Offset, next.Offset+next.Size),
				}
			}
		}
	}

	return nil
}

// ValidateTensorName rejects over-long names and names with path
// separators, parent references or NUL bytes.
func ValidateTensorName(name string) error {
	if len(name) > MaxTensorNameLen {
		return &ValidationError{
			Err:     ErrInvalidTensorName,
			Tensor:  name[:MaxTensorNameLen],
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen),
		}
	}
	if strings.Contains(name, "..") ||
		strings.ContainsAny(name, "/\\") ||
		strings.Contains(name, "\x00") {
		return &ValidationError{
			Err:     ErrInvalidTensorName,
			Tensor:  name,
			Details: "contains a path separator, '..' or a null byte",
		}
	}
	return nil
}

// ValidateHeader checks that h describes a sigmoid network whose tensors
// fit in dataSize bytes: one float64 tensor per layer transition, named in
// order, shaped (sizes[i]+1) × sizes[i+1].
func ValidateHeader(h *Header, dataSize int64) error {
	if h.FormatVersion != FormatVersion {
		return fmt.Errorf("%w: header declares %d", ErrUnsupportedVersion, h.FormatVersion)
	}
	if len(h.Tensors) > MaxTensorCount {
		return &ValidationError{
			Err:     ErrTooManyTensors,
			Details: fmt.Sprintf("got %d, max %d", len(h.Tensors), MaxTensorCount),
		}
	}
	if len(h.LayerSizes) < 2 || len(h.Tensors) != len(h.LayerSizes)-1 {
		return fmt.Errorf("%w: %d tensors for layer sizes %v", ErrModelMismatch, len(h.Tensors), h.LayerSizes)
	}

	for i, t := range h.Tensors {
		if err := ValidateTensorName(t.Name); err != nil {
			return err
		}
		if t.Name != TensorName(i) {
			return fmt.Errorf("%w: tensor %d is named %q, want %q", ErrModelMismatch, i, t.Name, TensorName(i))
		}
		if t.DType != DTypeFloat64 {
			return fmt.Errorf("%w: tensor %q has dtype %q", ErrModelMismatch, t.Name, t.DType)
		}
		in, out := h.LayerSizes[i], h.LayerSizes[i+1]
		if in <= 0 || out <= 0 {
			return fmt.Errorf("%w: layer sizes %d -> %d", ErrModelMismatch, in, out)
		}
		// rows*cols must fit in MaxDataSize; checked by division so nothing overflows.
		rows, cols := int64(in)+1, int64(out)
		if cols > maxWeights/rows {
			return fmt.Errorf("%w: layer %d -> %d exceeds %d weights", ErrModelMismatch, in, out, int64(maxWeights))
		}
		if len(t.Shape) != 2 || int64(t.Shape[0]) != rows || int64(t.Shape[1]) != cols {
			return fmt.Errorf("%w: tensor %q has shape %v, want [%d %d]", ErrModelMismatch, t.Name, t.Shape, rows, cols)
		}
		if want := rows * cols * bytesPerWeight; t.Size != want {
			return fmt.Errorf("%w: tensor %q has %d bytes, want %d", ErrModelMismatch, t.Name, t.Size, want)
		}
	}

	return ValidateTensorOffsets(h.Tensors, dataSize)
}
