package main

import (
	"encoding/binary"
	"fmt"
	"sort"

	"tlog.app/go/errors"
)

// summarizeModule walks a compiled SPIR-V binary's instruction stream
// and tallies how many times each opcode appears, using the word
// layout a disassembler would walk, but reduced to counts rather than
// full text — enough to sanity-check a translator
// run (e.g. "did this shader actually emit an OpEntryPoint and at
// least one OpFunction?") without needing the full disassembler.
func summarizeModule(data []byte) (string, error) {
	if len(data) < 20 {
		return "", errors.New("module too small to contain a SPIR-V header")
	}
	if binary.LittleEndian.Uint32(data[0:4]) != 0x07230203 {
		return "", errors.New("invalid SPIR-V magic")
	}

	bound := binary.LittleEndian.Uint32(data[12:16])

	counts := map[uint16]int{}
	total := 0
	offset := 20
	for offset+4 <= len(data) {
		word := binary.LittleEndian.Uint32(data[offset:])
		opcode := uint16(word & 0xFFFF)
		wordCount := int(word >> 16)
		if wordCount == 0 || offset+wordCount*4 > len(data) {
			return "", errors.New("malformed instruction at byte offset %d", offset)
		}

		counts[opcode]++
		total++
		offset += wordCount * 4
	}

	opcodes := make([]uint16, 0, len(counts))
	for op := range counts {
		opcodes = append(opcodes, op)
	}
	sort.Slice(opcodes, func(i, j int) bool { return opcodes[i] < opcodes[j] })

	result := fmt.Sprintf("%d bytes, id bound %d, %d instructions across %d opcodes:", len(data), bound, total, len(opcodes))
	for _, op := range opcodes {
		result += fmt.Sprintf(" op%d=%d", op, counts[op])
	}
	return result, nil
}
