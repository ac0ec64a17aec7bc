// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestParseAllWireTypes(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 300)
	b = protowire.AppendTag(b, 2, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 0x0102030405060708)
	b = protowire.AppendTag(b, 3, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("hello"))
	b = protowire.AppendTag(b, 4, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, 0xdeadbeef)

	fields, err := Parse(b)
	require.NoError(t, err)
	require.Len(t, fields, 4)

	assert.Equal(t, Field{Number: 1, Value: Varint(300)}, fields[0])
	assert.Equal(t, Field{Number: 2, Value: Fixed64(0x0102030405060708)}, fields[1])
	assert.Equal(t, Field{Number: 3, Value: Bytes("hello")}, fields[2])
	assert.Equal(t, Field{Number: 4, Value: Fixed32(0xdeadbeef)}, fields[3])

	assert.Equal(t, protowire.VarintType, fields[0].Type())
	assert.Equal(t, protowire.Fixed64Type, fields[1].Type())
	assert.Equal(t, protowire.BytesType, fields[2].Type())
	assert.Equal(t, protowire.Fixed32Type, fields[3].Type())
}

func TestReadVarint(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    uint64
		wantErr error
	}{
		{name: "single byte", input: []byte{0x08}, want: 8},
		{name: "two bytes", input: []byte{0xac, 0x02}, want: 300},
		{name: "max uint64", input: protowire.AppendVarint(nil, 1<<64-1), want: 1<<64 - 1},
		{name: "empty", input: nil, wantErr: ErrTruncatedVarint},
		{name: "ends mid sequence", input: []byte{0x80, 0x80}, wantErr: ErrTruncatedVarint},
		{name: "eleven bytes", input: []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}, wantErr: ErrVarintOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDecoder(tt.input).ReadVarint()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadLengthDelimitedTruncated(t *testing.T) {
	b := protowire.AppendVarint(nil, 10)
	b = append(b, "short"...)

	_, err := NewDecoder(b).ReadLengthDelimited()
	assert.ErrorIs(t, err, ErrTruncatedPayload)
}

func TestParseKeepsFieldsBeforeTruncatedVarint(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 7)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("kept"))
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = append(b, 0xff, 0xff) // varint cut off

	fields, err := Parse(b)
	assert.ErrorIs(t, err, ErrTruncatedVarint)
	require.Len(t, fields, 2)
	assert.Equal(t, Varint(7), fields[0].Value)
	assert.Equal(t, Bytes("kept"), fields[1].Value)

	assert.Equal(t, fields, ParseAll(b))
}

func TestParseStopsAtUnknownWireType(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)
	b = protowire.AppendTag(b, 2, protowire.StartGroupType)
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)

	fields, err := Parse(b)
	assert.ErrorIs(t, err, ErrUnknownWireType)
	assert.Len(t, fields, 1)
}

func TestParseTruncatedFixed(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.Fixed64Type)
	b = append(b, 1, 2, 3)

	fields, err := Parse(b)
	assert.ErrorIs(t, err, ErrTruncatedPayload)
	assert.Empty(t, fields)
}

func TestFieldsRestartable(t *testing.T) {
	var b []byte
	for i := 1; i <= 3; i++ {
		b = protowire.AppendTag(b, protowire.Number(i), protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(i*10))
	}

	d := NewDecoder(b)
	var first, second []uint64
	for f := range d.Fields() {
		v, _ := f.AsUint()
		first = append(first, v)
		if len(first) == 2 {
			break
		}
	}
	for f := range d.Fields() {
		v, _ := f.AsUint()
		second = append(second, v)
	}

	assert.Equal(t, []uint64{10, 20}, first)
	assert.Equal(t, []uint64{10, 20, 30}, second)
	assert.NoError(t, d.Err())
	assert.Equal(t, len(b), d.Offset())
}

func TestFirstBytes(t *testing.T) {
	fields := []Field{
		{Number: 2, Value: Varint(1)},
		{Number: 2, Value: Bytes("doc")},
		{Number: 2, Value: Bytes("second")},
	}

	b, ok := FirstBytes(fields, 2)
	require.True(t, ok)
	assert.Equal(t, []byte("doc"), b)

	_, ok = FirstBytes(fields, 3)
	assert.False(t, ok)
}
