// Package wasm builds the minimal binary WebAssembly module the Code
// Emitter and Finalization stages produce (spec.md §4.2 CodeGen, §4.6
// Finalization): a section-oriented writer over the module's magic
// number, version, and ordered sections, using LEB128 encoding for
// every variable-length integer the format requires.
package wasm

import "bytes"

// SectionID identifies one of the standard WebAssembly module sections,
// in the order the binary format requires them to appear.
type SectionID byte

const (
	SectionCustom SectionID = iota
	SectionType
	SectionImport
	SectionFunction
	SectionTable
	SectionMemory
	SectionGlobal
	SectionExport
	SectionStart
	SectionElement
	SectionCode
	SectionData
	SectionDataCount
)

var magic = [4]byte{0x00, 0x61, 0x73, 0x6d}
var version = [4]byte{0x01, 0x00, 0x00, 0x00}

// Module accumulates sections in the order they are added and encodes
// itself to the canonical binary layout on Bytes.
type Module struct {
	sections []section
}

type section struct {
	id      SectionID
	payload []byte
}

// New creates an empty Module.
func New() *Module { return &Module{} }

// AddSection appends a section with the given id and already-encoded
// payload. Sections must be added in ascending SectionID order except
// for SectionCustom, which may appear anywhere (the WebAssembly binary
// format's only ordering exception).
func (m *Module) AddSection(id SectionID, payload []byte) {
	m.sections = append(m.sections, section{id: id, payload: payload})
}

// Bytes encodes the module to its binary form: magic, version, then
// each section as (id byte, LEB128 length, payload).
func (m *Module) Bytes() []byte {
	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.Write(version[:])
	for _, s := range m.sections {
		buf.WriteByte(byte(s.id))
		buf.Write(AppendULEB128(nil, uint64(len(s.payload))))
		buf.Write(s.payload)
	}
	return buf.Bytes()
}

// DataSegment is one active data segment, used both by the
// ordinary Data section and by the standalone `.data` companion module
// spec.md §4.6 describes for the MVP-threading workaround.
type DataSegment struct {
	MemoryIndex uint32
	Offset      int32 // i32.const offset for an active segment
	Bytes       []byte
}

// EncodeDataSection encodes a sequence of active data segments into a
// Data section payload.
func EncodeDataSection(segments []DataSegment) []byte {
	var buf bytes.Buffer
	buf.Write(AppendULEB128(nil, uint64(len(segments))))
	for _, seg := range segments {
		buf.Write(AppendULEB128(nil, uint64(seg.MemoryIndex)))
		buf.WriteByte(0x41) // i32.const
		buf.Write(AppendSLEB128(nil, int64(seg.Offset)))
		buf.WriteByte(0x0b) // end
		buf.Write(AppendULEB128(nil, uint64(len(seg.Bytes))))
		buf.Write(seg.Bytes)
	}
	return buf.Bytes()
}
