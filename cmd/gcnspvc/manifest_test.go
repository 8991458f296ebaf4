package main

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/gogpu/gcnspv/gcn"
	"github.com/gogpu/gcnspv/spirv"
	"github.com/gogpu/gcnspv/translator"
)

const minimalVertexManifest = `{
	"programInfo": {"shaderType": "vertex", "key": "test.vs"},
	"analysisInfo": {"expParams": [{"target": "position", "componentCount": 4}]},
	"shaderInput": {
		"vertexInputs": [{"location": 0, "componentCount": 4, "startingVgpr": 0}],
		"resources": []
	},
	"instructions": [
		{"category": "vector_alu", "op": "v_mov_b32",
		 "dst": [{"kind": "register", "index": 10}],
		 "src": [{"kind": "literal"}],
		 "literal": 0, "mask": 1}
	]
}`

func TestParseManifestDecodesProgramInfo(t *testing.T) {
	programInfo, analysis, shaderInput, instructions, err := parseManifest([]byte(minimalVertexManifest))
	if err != nil {
		t.Fatalf("parseManifest: %v", err)
	}

	if programInfo.ShaderType != gcn.ShaderTypeVertex {
		t.Fatalf("shaderType = %v, want Vertex", programInfo.ShaderType)
	}
	if programInfo.Key != "test.vs" {
		t.Fatalf("key = %q, want test.vs", programInfo.Key)
	}
	if len(analysis.ExpParams) != 1 || analysis.ExpParams[0].Target != gcn.ExportTargetPosition {
		t.Fatalf("expParams = %+v, want one Position entry", analysis.ExpParams)
	}
	if len(shaderInput.VertexInputs) != 1 || shaderInput.VertexInputs[0].Type.Count != 4 {
		t.Fatalf("vertexInputs = %+v, want one 4-wide input", shaderInput.VertexInputs)
	}
	if shaderInput.VertexInputs[0].StartingVgpr != 0 {
		t.Fatalf("startingVgpr = %d, want 0", shaderInput.VertexInputs[0].StartingVgpr)
	}
	if len(instructions) != 1 || instructions[0].Category != gcn.CategoryVectorALU {
		t.Fatalf("instructions = %+v, want one vector ALU instruction", instructions)
	}
}

func TestParseManifestRejectsUnknownShaderType(t *testing.T) {
	_, _, _, _, err := parseManifest([]byte(`{"programInfo": {"shaderType": "nonsense"}}`))
	if err == nil {
		t.Fatal("expected an error for an unrecognized shaderType")
	}
}

func TestParseManifestRejectsUnknownOperandKind(t *testing.T) {
	raw := `{
		"programInfo": {"shaderType": "vertex"},
		"instructions": [{"category": "scalar_alu", "op": "s_mov_b32",
			"dst": [{"kind": "bogus"}], "src": []}]
	}`
	_, _, _, _, err := parseManifest([]byte(raw))
	if err == nil {
		t.Fatal("expected an error for an unrecognized operand kind")
	}
}

func TestManifestDrivesTranslatorEndToEnd(t *testing.T) {
	ctx := context.Background()
	programInfo, analysis, shaderInput, instructions, err := parseManifest([]byte(minimalVertexManifest))
	if err != nil {
		t.Fatalf("parseManifest: %v", err)
	}

	tr := translator.New(ctx, programInfo, analysis, shaderInput)
	for _, ins := range instructions {
		tr.Process(ctx, ins)
	}

	spv, err := tr.Finalize(ctx)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if len(spv) < 20 || binary.LittleEndian.Uint32(spv[0:4]) != spirv.MagicNumber {
		t.Fatalf("Finalize did not produce a valid SPIR-V header")
	}

	summary, err := summarizeModule(spv)
	if err != nil {
		t.Fatalf("summarizeModule: %v", err)
	}
	if summary == "" {
		t.Fatal("expected a non-empty summary")
	}
}

func TestSummarizeModuleRejectsBadMagic(t *testing.T) {
	_, err := summarizeModule(make([]byte, 24))
	if err == nil {
		t.Fatal("expected an error for a zeroed (invalid magic) buffer")
	}
}
