// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wire reads protobuf wire-format fields without a schema.
// Field numbers carry no type information here; callers interpret each
// field by the position it occupies in the message they are walking.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"iter"

	"google.golang.org/protobuf/encoding/protowire"
)

var (
	// ErrTruncatedVarint means the buffer ended inside a varint.
	ErrTruncatedVarint = errors.New("truncated varint")

	// ErrVarintOverflow means a varint ran past ten bytes.
	ErrVarintOverflow = errors.New("varint overflows 64 bits")

	// ErrTruncatedPayload means fewer bytes remain than a field declares.
	ErrTruncatedPayload = errors.New("truncated payload")

	// ErrUnknownWireType means a tag named a wire type other than varint,
	// fixed32, fixed64 or length-delimited (groups included).
	ErrUnknownWireType = errors.New("unknown wire type")

	// ErrFieldNumber means a tag encoded a field number outside the valid range.
	ErrFieldNumber = errors.New("invalid field number")
)

// Value is the decoded payload of a field. It is one of Varint, Fixed32,
// Fixed64 or Bytes.
type Value interface {
	isValue()
}

// Varint is a wire type 0 value.
type Varint uint64

// Fixed32 is a wire type 5 value.
type Fixed32 uint32

// Fixed64 is a wire type 1 value.
type Fixed64 uint64

// Bytes is a wire type 2 value. It aliases the buffer it was read from.
type Bytes []byte

func (Varint) isValue()  {}
func (Fixed32) isValue() {}
func (Fixed64) isValue() {}
func (Bytes) isValue()   {}

// Field is one tag/value pair.
type Field struct {
	Number protowire.Number
	Value  Value
}

// Type returns the wire type the field was encoded with.
func (f Field) Type() protowire.Type {
	switch f.Value.(type) {
	case Varint:
		return protowire.VarintType
	case Fixed32:
		return protowire.Fixed32Type
	case Fixed64:
		return protowire.Fixed64Type
	case Bytes:
		return protowire.BytesType
	}
	return -1
}

// AsUint returns the numeric value of a varint or fixed-width field.
func (f Field) AsUint() (uint64, bool) {
	switch v := f.Value.(type) {
	case Varint:
		return uint64(v), true
	case Fixed32:
		return uint64(v), true
	case Fixed64:
		return uint64(v), true
	case Bytes:
		return 0, false
	}
	return 0, false
}

// AsBytes returns the payload of a length-delimited field.
func (f Field) AsBytes() ([]byte, bool) {
	switch v := f.Value.(type) {
	case Bytes:
		return []byte(v), true
	case Varint, Fixed32, Fixed64:
		return nil, false
	}
	return nil, false
}

// Decoder reads fields sequentially from a buffer.
type Decoder struct {
	buf []byte
	pos int
	err error
}

// NewDecoder returns a decoder positioned at the start of buf.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Reset rewinds the decoder to the start of its buffer and clears any error.
func (d *Decoder) Reset() {
	d.pos = 0
	d.err = nil
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int {
	return d.pos
}

// More reports whether unread bytes remain.
func (d *Decoder) More() bool {
	return d.pos < len(d.buf)
}

// Err returns the error that stopped the last iteration of Fields, if any.
func (d *Decoder) Err() error {
	return d.err
}

// ReadVarint reads one base-128 varint.
func (d *Decoder) ReadVarint() (uint64, error) {
	rest := d.buf[d.pos:]
	v, n := protowire.ConsumeVarint(rest)
	if n < 0 {
		return 0, varintError(rest)
	}
	d.pos += n
	return v, nil
}

// ReadLengthDelimited reads a varint length followed by that many bytes.
func (d *Decoder) ReadLengthDelimited() ([]byte, error) {
	length, err := d.ReadVarint()
	if err != nil {
		return nil, err
	}
	if uint64(len(d.buf)-d.pos) < length {
		return nil, fmt.Errorf("%w: want %d bytes, have %d", ErrTruncatedPayload, length, len(d.buf)-d.pos)
	}
	b := d.buf[d.pos : d.pos+int(length)]
	d.pos += int(length)
	return b, nil
}

// ReadField reads the next tag and its value.
func (d *Decoder) ReadField() (Field, error) {
	tag, err := d.ReadVarint()
	if err != nil {
		return Field{}, err
	}
	num, typ := protowire.DecodeTag(tag)
	if num < 0 {
		return Field{}, fmt.Errorf("%w: tag %d", ErrFieldNumber, tag)
	}

	switch typ {
	case protowire.VarintType:
		v, err := d.ReadVarint()
		if err != nil {
			return Field{}, err
		}
		return Field{Number: num, Value: Varint(v)}, nil
	case protowire.Fixed32Type:
		v, n := protowire.ConsumeFixed32(d.buf[d.pos:])
		if n < 0 {
			return Field{}, fmt.Errorf("%w: fixed32", ErrTruncatedPayload)
		}
		d.pos += n
		return Field{Number: num, Value: Fixed32(v)}, nil
	case protowire.Fixed64Type:
		v, n := protowire.ConsumeFixed64(d.buf[d.pos:])
		if n < 0 {
			return Field{}, fmt.Errorf("%w: fixed64", ErrTruncatedPayload)
		}
		d.pos += n
		return Field{Number: num, Value: Fixed64(v)}, nil
	case protowire.BytesType:
		b, err := d.ReadLengthDelimited()
		if err != nil {
			return Field{}, err
		}
		return Field{Number: num, Value: Bytes(b)}, nil
	default:
		return Field{}, fmt.Errorf("%w: %d (field %d)", ErrUnknownWireType, typ, num)
	}
}

// Fields returns a sequence over every field in the buffer. Each range
// over the sequence starts again from the beginning. Iteration stops at
// the end of the buffer or at the first read error, which Err reports.
func (d *Decoder) Fields() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		d.Reset()
		for d.More() {
			f, err := d.ReadField()
			if err != nil {
				d.err = err
				return
			}
			if !yield(f) {
				return
			}
		}
	}
}

// Parse decodes buf and returns the fields read before the buffer ended or
// a read failed, along with that failure.
func Parse(buf []byte) ([]Field, error) {
	d := NewDecoder(buf)
	var fields []Field
	for f := range d.Fields() {
		fields = append(fields, f)
	}
	return fields, d.Err()
}

// ParseAll decodes buf and returns every field read before the buffer
// ended or a read failed. Trailing bytes that cannot be decoded are
// ignored.
func ParseAll(buf []byte) []Field {
	fields, _ := Parse(buf)
	return fields
}

// FirstBytes returns the payload of the first length-delimited field
// numbered num.
func FirstBytes(fields []Field, num protowire.Number) ([]byte, bool) {
	for _, f := range fields {
		if f.Number != num {
			continue
		}
		if b, ok := f.AsBytes(); ok {
			return b, true
		}
	}
	return nil, false
}

// varintError classifies a failed varint read: the buffer either ended
// before a terminating byte or the encoding ran past ten bytes.
func varintError(b []byte) error {
	if len(b) >= binary.MaxVarintLen64 {
		return ErrVarintOverflow
	}
	for _, c := range b {
		if c < 0x80 {
			return ErrVarintOverflow
		}
	}
	return ErrTruncatedVarint
}
