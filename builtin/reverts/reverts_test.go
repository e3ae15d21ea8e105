// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Reverts(t *testing.T) {
	revert := New("test")
	assert.Equal(t, "test", revert.message)
	assert.Equal(t, revert.Error(), revert.message)

	assert.True(t, IsRevertErr(revert))
	assert.True(t, IsRevertErr(errors.Wrap(revert, "wrapped")))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))

	var nilRevert *ErrRevert
	assert.False(t, IsRevertErr(nilRevert))
}

func TestAsRevert(t *testing.T) {
	revert := New("target already registered")

	got, ok := AsRevert(errors.Wrap(revert, "whitelist"))
	assert.True(t, ok)
	assert.Same(t, revert, got)
	assert.True(t, errors.Is(errors.Wrap(revert, "whitelist"), revert))

	_, ok = AsRevert(errors.New("disk failure"))
	assert.False(t, ok)
}

func TestBytes(t *testing.T) {
	encoded := New("Not allowed").Bytes()

	expected := "08c379a0" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"000000000000000000000000000000000000000000000000000000000000000b" +
		"4e6f7420616c6c6f776564000000000000000000000000000000000000000000"
	assert.Equal(t, expected, hex.EncodeToString(encoded))

	var nilRevert *ErrRevert
	assert.Nil(t, nilRevert.Bytes())
}
