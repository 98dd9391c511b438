package asm_test

import (
	"encoding/binary"
	"testing"

	"github.com/mrsharp/isavm/asm"
	"github.com/mrsharp/isavm/isa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemblePushAddOutHlt(t *testing.T) {
	obj, err := asm.Assemble([]byte("push 5 push 7 add out hlt"), nil)
	require.NoError(t, err)
	require.Len(t, obj, 21)

	assert.Equal(t, byte(isa.OpPush), obj[0])
	assert.Equal(t, int64(5), int64(binary.LittleEndian.Uint64(obj[1:9])))
	assert.Equal(t, byte(isa.OpPush), obj[9])
	assert.Equal(t, int64(7), int64(binary.LittleEndian.Uint64(obj[10:18])))
	assert.Equal(t, byte(isa.OpAdd), obj[18])
	assert.Equal(t, byte(isa.OpOut), obj[19])
	assert.Equal(t, byte(isa.OpHlt), obj[20])
}

func TestAssembleDivPopOut(t *testing.T) {
	obj, err := asm.Assemble([]byte("push 20 push 6 div pop r0 out pop r0 out hlt"), nil)
	require.NoError(t, err)
	// push K (9) *2 + div (1) + pop rN (2) + out (1) + pop rN (2) + out (1) + hlt (1)
	require.Len(t, obj, 9+9+1+2+1+2+1+1)
}

func TestAssembleForwardLabelLoop(t *testing.T) {
	src := `push 0 pop r1
label loop
push r1 push 10 cmp je end
push r1 push 1 add pop r1
jmp loop
label end
push r1 pop r0 out hlt`
	obj, err := asm.Assemble([]byte(src), nil)
	require.NoError(t, err)
	require.NotEmpty(t, obj)
}

func TestAssembleFuncCall(t *testing.T) {
	src := `func sq push r0 push r0 mul pop r0 ret
in call sq out hlt`
	obj, err := asm.Assemble([]byte(src), nil)
	require.NoError(t, err)
	require.NotEmpty(t, obj)
	// call's resolved target must equal sq's offset, which is 0 here since
	// the function body is emitted before any other instruction.
	callIdx := len(obj) - 1 - 9 - 1 // hlt, out, call
	assert.Equal(t, byte(isa.OpCall), obj[callIdx])
	target := binary.LittleEndian.Uint64(obj[callIdx+1 : callIdx+9])
	assert.Equal(t, uint64(0), target)
}

func TestAssemblePopWithNoOperand(t *testing.T) {
	obj, err := asm.Assemble([]byte("push 1 pop"), nil)
	require.NoError(t, err)
	require.Len(t, obj, 10) // push K (9) + bare pop (1)
	assert.Equal(t, byte(isa.OpPop), obj[9])
}

func TestAssembleUnknownMnemonicFails(t *testing.T) {
	_, err := asm.Assemble([]byte("push 1 foo hlt"), nil)
	require.Error(t, err)
	var aerr *asm.Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, asm.ErrUnknownCommand, aerr.Kind)
	assert.Equal(t, "foo", aerr.Token)
}

func TestAssembleUnresolvedLabelFailsInPassTwo(t *testing.T) {
	_, err := asm.Assemble([]byte("jmp nowhere hlt"), nil)
	require.Error(t, err)
	var aerr *asm.Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, asm.ErrBadLabel, aerr.Kind)
}

func TestAssembleRedefinedLabelFails(t *testing.T) {
	_, err := asm.Assemble([]byte("label x hlt label x hlt"), nil)
	require.Error(t, err)
	var aerr *asm.Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, asm.ErrBadLabel, aerr.Kind)
}

func TestAssembleReservationBaseAddress(t *testing.T) {
	obj, err := asm.Assemble([]byte("res a:4 res b:8 push a push [b] hlt"), nil)
	require.NoError(t, err)
	// push a -> formName, 9 bytes; push [b] -> formMemName, 9 bytes; hlt -> 1
	require.Len(t, obj, 9+9+1)
	aBase := binary.LittleEndian.Uint64(obj[1:9])
	bBase := binary.LittleEndian.Uint64(obj[10:18])
	assert.Equal(t, uint64(0), aBase)
	assert.Equal(t, uint64(4), bBase)
	assert.Equal(t, byte(isa.OpPush)|isa.FlagMem, obj[9])
}

func TestAssembleOnlyHlt(t *testing.T) {
	obj, err := asm.Assemble([]byte("hlt"), nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{byte(isa.OpHlt)}, obj)
}

func TestAssembleZeroSizeReservationFails(t *testing.T) {
	_, err := asm.Assemble([]byte("res a:0 hlt"), nil)
	require.Error(t, err)
	var aerr *asm.Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, asm.ErrBadReserve, aerr.Kind)
}

func TestAssembleBadPushArgumentFails(t *testing.T) {
	_, err := asm.Assemble([]byte("push $$$ hlt"), nil)
	require.Error(t, err)
	var aerr *asm.Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, asm.ErrBadArgument, aerr.Kind)
}
