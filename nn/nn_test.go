// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/perceptron/nn"
)

func TestPublicAPI(t *testing.T) {
	net, err := nn.NewNetwork([]int{2, 1}, nn.Constant(0.5))
	require.NoError(t, err)

	data, err := nn.NewDataset([][]float64{{1, 0}}, [][]float64{{1}})
	require.NoError(t, err)

	cost, err := net.Cost(data)
	require.NoError(t, err)
	assert.InDelta(t, 0.07232948812851325, cost, 1e-15)

	costs, err := net.Train(data, 1, 1)
	require.NoError(t, err)
	require.Len(t, costs, 1)
	assert.Less(t, costs[0], cost)

	clone, err := nn.NewNetworkFromModel(net.Model())
	require.NoError(t, err)
	assert.Equal(t, net.Sizes(), clone.Sizes())

	_, err = nn.NewNetwork([]int{2}, nn.Random())
	assert.ErrorIs(t, err, nn.ErrInvalidLayerSpec)
}
