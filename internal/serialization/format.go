package serialization

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Format constants.
const (
	MagicBytes      = "BORN"
	FormatVersion   = 2    // Fixed 64-byte header with SHA-256 checksum
	HeaderAlignment = 64   // Weight data starts on a 64-byte boundary
	FixedHeaderSize = 64   // Fixed header size (0x40 bytes)
	ChecksumSize    = 32   // SHA-256 checksum size (32 bytes)
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
	ModelType       = "sigmoid-mlp"
	DTypeFloat64    = "float64"
	bytesPerWeight  = 8
)

// Flags for the .born format.
const (
	FlagHasMetadata uint32 = 1 << 2 // bit 2: custom metadata included
	FlagHasTraining uint32 = 1 << 3 // bit 3: training summary included
)

// Header represents the JSON header in a .born file.
type Header struct {
	FormatVersion int               `json:"format_version"`     // Version of the .born format
	Producer      string            `json:"producer"`           // Library that wrote the file
	ModelType     string            `json:"model_type"`         // Always ModelType
	LayerSizes    []int             `json:"layer_sizes"`        // Declared sizes: input, hidden..., output
	CreatedAt     time.Time         `json:"created_at"`         // When the file was created
	Tensors       []TensorMeta      `json:"tensors"`            // One entry per layer
	Metadata      map[string]string `json:"metadata"`           // Custom metadata
	Training      *TrainingMeta     `json:"training,omitempty"` // Training summary (optional)
}

// TrainingMeta records how the stored weights were produced.
type TrainingMeta struct {
	Strategy     string  `json:"strategy"`
	LearningRate float64 `json:"learning_rate"`
	Iterations   int     `json:"iterations"`
	FinalCost    float64 `json:"final_cost"`
}

// TensorMeta describes a weight matrix in the .born file.
type TensorMeta struct {
	Name   string `json:"name"`   // Tensor name (e.g., "layer.0.weight")
	DType  string `json:"dtype"`  // Always "float64"
	Shape  []int  `json:"shape"`  // [rows, cols]
	Offset int64  `json:"offset"` // Bytes from start of the data section
	Size   int64  `json:"size"`   // Size in bytes
}

// TensorName returns the tensor name used for layer i.
func TensorName(layer int) string {
	return fmt.Sprintf("layer.%d.weight", layer)
}

// dataOffset returns where the data section starts for a JSON header of
// headerSize bytes.
func dataOffset(headerSize int64) int64 {
	pos := int64(FixedHeaderSize) + headerSize
	return pos + (HeaderAlignment-pos%HeaderAlignment)%HeaderAlignment
}

// ComputeChecksum returns the SHA-256 digest stored at ChecksumOffset for a
// weight data section.
func ComputeChecksum(data []byte) [ChecksumSize]byte {
	return sha256.Sum256(data)
}

// ValidateChecksum returns ErrChecksumMismatch unless the digests agree.
func ValidateChecksum(computed, stored [ChecksumSize]byte) error {
	if computed != stored {
		return ErrChecksumMismatch
	}
	return nil
}
