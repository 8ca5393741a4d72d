// Package serialization saves and loads trained networks in the .born format.
//
// The .born format is a simple binary format with a JSON header:
//
//	Format Structure:
//	  [4 bytes: Magic "BORN"]
//	  [4 bytes: Version (uint32 LE)]
//	  [4 bytes: Flags (uint32 LE)]
//	  [4 bytes: Reserved]
//	  [8 bytes: Header Size (uint64 LE)]
//	  [8 bytes: Data Size (uint64 LE)]
//	  [32 bytes: SHA-256 of the data section]
//	  [Header: JSON metadata]
//	  [Padding to a 64-byte boundary]
//	  [Weight data: float64 LE, row-major, one tensor per layer]
//
// Each layer is stored as a tensor named "layer.<i>.weight" of shape
// (inputs+1) × outputs, bias row last, exactly as nn.Model holds it.
//
// Example usage:
//
//	// Save a trained model
//	err := serialization.SaveFile("xor.born", net.Model(), serialization.SaveOptions{
//	    Metadata: map[string]string{"dataset": "xor"},
//	})
//
//	// Load it back
//	model, header, err := serialization.LoadFile("xor.born")
//	net, err := nn.NewNetworkFromModel(model)
package serialization
