// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package serialization reads and writes trained networks in the .born
// format: a 64-byte fixed header with a SHA-256 checksum of the weights,
// a JSON header, and little-endian float64 weight data.
//
// Example:
//
//	err := serialization.SaveFile("xor.born", net.Model(), serialization.SaveOptions{})
//	net, header, err := serialization.LoadNetwork("xor.born")
package serialization

import (
	"io"

	"github.com/born-ml/perceptron/internal/nn"
	"github.com/born-ml/perceptron/internal/serialization"
)

// Header is the JSON header of a .born file.
type Header = serialization.Header

// TrainingMeta summarizes the run that produced a model.
type TrainingMeta = serialization.TrainingMeta

// SaveOptions carries the optional parts of a header.
type SaveOptions = serialization.SaveOptions

// Errors.
var (
	ErrChecksumMismatch   = serialization.ErrChecksumMismatch
	ErrInvalidMagic       = serialization.ErrInvalidMagic
	ErrUnsupportedVersion = serialization.ErrUnsupportedVersion
	ErrModelMismatch      = serialization.ErrModelMismatch
)

// Save writes model to w.
func Save(w io.Writer, model nn.Model, opts SaveOptions) error {
	return serialization.Save(w, model, opts)
}

// SaveFile writes model to path.
func SaveFile(path string, model nn.Model, opts SaveOptions) error {
	return serialization.SaveFile(path, model, opts)
}

// Load reads a model from r.
func Load(r io.Reader) (nn.Model, Header, error) {
	return serialization.Load(r)
}

// LoadFile reads a model from path.
func LoadFile(path string) (nn.Model, Header, error) {
	return serialization.LoadFile(path)
}

// LoadNetwork reads a model from path and builds a network from it.
func LoadNetwork(path string) (*nn.Network, Header, error) {
	return serialization.LoadNetwork(path)
}
