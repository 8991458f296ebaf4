package main

import (
	"encoding/json"

	"tlog.app/go/errors"

	"github.com/gogpu/gcnspv/gcn"
)

// manifest is this repository's own substitute for the external GCN
// decoder and analysis pass (spec.md §1): it lets a translator run be
// driven and checked end to end from a plain JSON file instead of a
// real shader binary. It deserializes onto the JSON mirror structs
// below, which parseManifest converts onto gcn.ProgramInfo,
// gcn.AnalysisInfo, gcn.ShaderInput, and a []gcn.Instruction.
type manifest struct {
	ProgramInfo  programInfoJSON  `json:"programInfo"`
	AnalysisInfo analysisInfoJSON `json:"analysisInfo"`
	ShaderInput  shaderInputJSON  `json:"shaderInput"`
	Instructions []instructionJSON `json:"instructions"`
}

type programInfoJSON struct {
	ShaderType string `json:"shaderType"`
	Key        string `json:"key"`
}

type analysisInfoJSON struct {
	ExpParams []expParamJSON `json:"expParams"`
}

type expParamJSON struct {
	Target         string `json:"target"`
	ComponentCount uint32 `json:"componentCount"`
}

type shaderInputJSON struct {
	VertexInputs []vertexInputJSON `json:"vertexInputs"`
	Resources    []resourceJSON    `json:"resources"`
}

type vertexInputJSON struct {
	Location       uint32 `json:"location"`
	ComponentCount uint32 `json:"componentCount"`
	StartingVgpr   uint32 `json:"startingVgpr"`
}

type resourceJSON struct {
	Set     uint32 `json:"set"`
	Binding uint32 `json:"binding"`
	Stride  uint32 `json:"stride"`
}

type instructionJSON struct {
	Category string        `json:"category"`
	Op       string        `json:"op"`
	Dst      []operandJSON `json:"dst"`
	Src      []operandJSON `json:"src"`
	Literal  uint32        `json:"literal"`
	Mask     uint8         `json:"mask"`
}

type operandJSON struct {
	Kind  string `json:"kind"`
	Code  uint32 `json:"code"`
	Index uint32 `json:"index"`
}

// parseManifest unmarshals raw JSON and converts every field onto its
// gcn counterpart, rejecting unknown enum spellings up front rather
// than letting them silently fall through to a zero value deep inside
// the translator.
func parseManifest(raw []byte) (gcn.ProgramInfo, gcn.AnalysisInfo, gcn.ShaderInput, []gcn.Instruction, error) {
	var m manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return gcn.ProgramInfo{}, gcn.AnalysisInfo{}, gcn.ShaderInput{}, nil, errors.Wrap(err, "decode manifest")
	}

	shaderType, err := parseShaderType(m.ProgramInfo.ShaderType)
	if err != nil {
		return gcn.ProgramInfo{}, gcn.AnalysisInfo{}, gcn.ShaderInput{}, nil, err
	}
	programInfo := gcn.ProgramInfo{ShaderType: shaderType, Key: m.ProgramInfo.Key}

	analysis := gcn.AnalysisInfo{}
	for _, p := range m.AnalysisInfo.ExpParams {
		target, err := parseExportTarget(p.Target)
		if err != nil {
			return gcn.ProgramInfo{}, gcn.AnalysisInfo{}, gcn.ShaderInput{}, nil, err
		}
		analysis.ExpParams = append(analysis.ExpParams, gcn.ExpParam{Target: target, ComponentCount: p.ComponentCount})
	}

	shaderInput := gcn.ShaderInput{}
	for _, vi := range m.ShaderInput.VertexInputs {
		shaderInput.VertexInputs = append(shaderInput.VertexInputs, gcn.VertexInputSemantic{
			Location:     vi.Location,
			Type:         gcn.VectorType{Type: gcn.ScalarF32, Count: vi.ComponentCount},
			StartingVgpr: vi.StartingVgpr,
		})
	}
	for _, r := range m.ShaderInput.Resources {
		shaderInput.Resources = append(shaderInput.Resources, gcn.ResourceBuffer{Set: r.Set, Binding: r.Binding, Stride: r.Stride})
	}

	instructions := make([]gcn.Instruction, 0, len(m.Instructions))
	for i, insJSON := range m.Instructions {
		category, err := parseCategory(insJSON.Category)
		if err != nil {
			return gcn.ProgramInfo{}, gcn.AnalysisInfo{}, gcn.ShaderInput{}, nil, errors.Wrap(err, "instruction %d", i)
		}

		dst, err := parseOperands(insJSON.Dst)
		if err != nil {
			return gcn.ProgramInfo{}, gcn.AnalysisInfo{}, gcn.ShaderInput{}, nil, errors.Wrap(err, "instruction %d dst", i)
		}
		src, err := parseOperands(insJSON.Src)
		if err != nil {
			return gcn.ProgramInfo{}, gcn.AnalysisInfo{}, gcn.ShaderInput{}, nil, errors.Wrap(err, "instruction %d src", i)
		}

		instructions = append(instructions, gcn.Instruction{
			Category: category,
			Op:       insJSON.Op,
			Dst:      dst,
			Src:      src,
			Literal:  insJSON.Literal,
			Mask:     gcn.RegisterMask(insJSON.Mask),
		})
	}

	return programInfo, analysis, shaderInput, instructions, nil
}

func parseOperands(ops []operandJSON) ([]gcn.Operand, error) {
	out := make([]gcn.Operand, 0, len(ops))
	for _, o := range ops {
		kind, err := parseOperandKind(o.Kind)
		if err != nil {
			return nil, err
		}
		out = append(out, gcn.Operand{Kind: kind, Code: o.Code, Index: o.Index})
	}
	return out, nil
}

func parseShaderType(s string) (gcn.ShaderType, error) {
	switch s {
	case "vertex":
		return gcn.ShaderTypeVertex, nil
	case "hull":
		return gcn.ShaderTypeHull, nil
	case "domain":
		return gcn.ShaderTypeDomain, nil
	case "geometry":
		return gcn.ShaderTypeGeometry, nil
	case "pixel":
		return gcn.ShaderTypePixel, nil
	case "compute":
		return gcn.ShaderTypeCompute, nil
	default:
		return 0, errors.New("unknown shaderType %q", s)
	}
}

func parseExportTarget(s string) (gcn.ExportTarget, error) {
	switch s {
	case "position":
		return gcn.ExportTargetPosition, nil
	case "param":
		return gcn.ExportTargetParam, nil
	case "mrt":
		return gcn.ExportTargetMRT, nil
	case "z":
		return gcn.ExportTargetZ, nil
	default:
		return 0, errors.New("unknown export target %q", s)
	}
}

func parseCategory(s string) (gcn.InstructionCategory, error) {
	switch s {
	case "scalar_alu":
		return gcn.CategoryScalarALU, nil
	case "scalar_memory":
		return gcn.CategoryScalarMemory, nil
	case "vector_alu":
		return gcn.CategoryVectorALU, nil
	case "vector_memory":
		return gcn.CategoryVectorMemory, nil
	case "flow_control":
		return gcn.CategoryFlowControl, nil
	case "data_share":
		return gcn.CategoryDataShare, nil
	case "vector_interpolation":
		return gcn.CategoryVectorInterpolation, nil
	case "export":
		return gcn.CategoryExport, nil
	case "debug_profile":
		return gcn.CategoryDebugProfile, nil
	case "unknown", "":
		return gcn.CategoryUnknown, nil
	default:
		return 0, errors.New("unknown instruction category %q", s)
	}
}

func parseOperandKind(s string) (gcn.OperandKind, error) {
	switch s {
	case "register":
		return gcn.OperandKindRegister, nil
	case "vcc_lo":
		return gcn.OperandKindVCCLo, nil
	case "vcc_hi":
		return gcn.OperandKindVCCHi, nil
	case "m0":
		return gcn.OperandKindM0, nil
	case "exec_lo":
		return gcn.OperandKindExecLo, nil
	case "exec_hi":
		return gcn.OperandKindExecHi, nil
	case "vccz":
		return gcn.OperandKindVCCZ, nil
	case "execz":
		return gcn.OperandKindExecZ, nil
	case "scc":
		return gcn.OperandKindSCC, nil
	case "lds_direct":
		return gcn.OperandKindLdsDirect, nil
	case "inline_int":
		return gcn.OperandKindInlineInt, nil
	case "inline_float":
		return gcn.OperandKindInlineFloat, nil
	case "literal":
		return gcn.OperandKindLiteralConst, nil
	default:
		return 0, errors.New("unknown operand kind %q", s)
	}
}
