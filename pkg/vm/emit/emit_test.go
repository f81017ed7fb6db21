package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallylabs/tally-go/pkg/vm"
	"github.com/tallylabs/tally-go/pkg/vm/opcode"
)

func TestBuilderRoundTrip(t *testing.T) {
	b := NewBuilder().Set(5).Add(3).Sub(2)
	require.Equal(t, 3, b.Len())

	raw, err := b.Bytes()
	require.NoError(t, err)

	prog, err := vm.ParseProgram(raw)
	require.NoError(t, err)
	assert.Equal(t, b.Program(), prog)

	res, err := vm.Evaluate(prog)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), res)
}

func TestBuilderRawInstruction(t *testing.T) {
	b := NewBuilder().Instruction(opcode.Opcode(7), vm.Pos(1))
	raw, err := b.Bytes()
	require.NoError(t, err)

	prog, err := vm.ParseProgram(raw)
	require.NoError(t, err)

	_, err = vm.Evaluate(prog)
	var f *vm.Fault
	require.ErrorAs(t, err, &f)
	assert.Equal(t, vm.FaultUnknownOpcode, f.Code)
}

func TestBuilderTooLong(t *testing.T) {
	b := NewBuilder()
	for i := 0; i <= vm.MaxProgramLength; i++ {
		b.Add(1)
	}
	_, err := b.Bytes()
	require.Error(t, err)
}

func TestBuilderEmpty(t *testing.T) {
	raw, err := NewBuilder().Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, raw)

	prog, err := vm.ParseProgram(raw)
	require.NoError(t, err)
	require.Len(t, prog, 0)
}
