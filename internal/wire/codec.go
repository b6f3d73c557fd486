// Package wire persists a fully assembled catalogue, render settings, and
// router state to a length-delimited binary form, and rebuilds them without
// re-running graph construction.
//
// The wire format is hand-rolled on top of google.golang.org/protobuf's
// low-level encoding/protowire primitives (tag/varint/fixed64/length-
// delimited helpers) rather than generated from a .proto file: every message
// below is just a sequence of (field number, wire type) tagged values,
// exactly as a generated protobuf encoder would produce. Unknown field
// numbers are skipped generically by wire type, giving forward compatibility
// for free.
package wire

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/avlasov/transcat/internal/transcaterr"
)

// appendVarint appends a (num, VarintType) tagged unsigned integer field.
func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)

	return protowire.AppendVarint(b, v)
}

// appendBool appends a boolean field, omitted entirely when false — decoding
// treats an absent field as its zero value, so this is lossless.
func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}

	return appendVarint(b, num, 1)
}

// appendDouble appends a (num, Fixed64Type) tagged IEEE-754 double.
func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)

	return protowire.AppendFixed64(b, math.Float64bits(v))
}

// appendString appends a (num, BytesType) tagged UTF-8 string, omitted when
// empty (decoding treats an absent field as "").
func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendString(b, v)
}

// appendMessage appends a (num, BytesType) tagged embedded message.
func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendBytes(b, msg)
}

// walkFields decodes b as a flat sequence of protobuf-style tagged fields,
// invoking visit once per varint, fixed64 or bytes field with the raw decoded
// value (varint and fixed64 as raw uint64, bytes as a slice). Any field
// number visit does not recognize is simply handed to it anyway — visit is
// responsible for ignoring unknown numbers, which is how forward
// compatibility falls out of this format for free. Fields of any other wire
// type (fixed32, groups) are skipped without calling visit.
func walkFields(b []byte, visit func(num protowire.Number, typ protowire.Type, raw uint64, bytesVal []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return transcaterr.New(transcaterr.KindCorrupt, "wire: truncated tag")
		}
		b = b[n:]

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return transcaterr.New(transcaterr.KindCorrupt, "wire: truncated varint field %d", num)
			}
			b = b[n:]
			if err := visit(num, typ, v, nil); err != nil {
				return err
			}
		case protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return transcaterr.New(transcaterr.KindCorrupt, "wire: truncated fixed64 field %d", num)
			}
			b = b[n:]
			if err := visit(num, typ, v, nil); err != nil {
				return err
			}
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return transcaterr.New(transcaterr.KindCorrupt, "wire: truncated bytes field %d", num)
			}
			b = b[n:]
			if err := visit(num, typ, 0, v); err != nil {
				return err
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return transcaterr.New(transcaterr.KindCorrupt, "wire: malformed wire type %d on field %d", typ, num)
			}
			b = b[n:]
		}
	}

	return nil
}

func fixed64ToFloat64(v uint64) float64 { return math.Float64frombits(v) }
