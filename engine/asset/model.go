package asset

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidModel wraps every structural problem found in a glTF file.
	ErrInvalidModel = errors.New("asset: invalid glTF model")

	errGLTFVersion    = fmt.Errorf("%w: version must be 2.x", ErrInvalidModel)
	errGLBMagic       = fmt.Errorf("%w: bad GLB magic number", ErrInvalidModel)
	errGLBVersion     = fmt.Errorf("%w: GLB version must be 2", ErrInvalidModel)
	errGLBTooSmall    = fmt.Errorf("%w: GLB file too small", ErrInvalidModel)
	errGLBTruncated   = fmt.Errorf("%w: GLB file truncated", ErrInvalidModel)
	errMissingJSON    = fmt.Errorf("%w: GLB file has no JSON chunk", ErrInvalidModel)
	errNoPositions    = fmt.Errorf("%w: no mesh carries POSITION bounds", ErrInvalidModel)
	errAccessorBounds = fmt.Errorf("%w: POSITION accessor needs three-component min and max", ErrInvalidModel)
)

// GLB container constants.
const (
	glbMagic     = 0x46546C67 // "glTF"
	glbVersion   = 2
	glbChunkJSON = 0x4E4F534A // "JSON"
)

// Model is a glTF scene reduced to its mesh-space bounding box, which is all
// the diorama needs to stand a prop in for it.
type Model struct {
	Name   string
	Path   string
	Meshes int
	Min    [3]float32
	Max    [3]float32
}

// Size returns the edge lengths of the bounding box.
func (m *Model) Size() [3]float32 {
	return [3]float32{m.Max[0] - m.Min[0], m.Max[1] - m.Min[1], m.Max[2] - m.Min[2]}
}

// Center returns the middle of the bounding box.
func (m *Model) Center() [3]float32 {
	return [3]float32{(m.Max[0] + m.Min[0]) / 2, (m.Max[1] + m.Min[1]) / 2, (m.Max[2] + m.Min[2]) / 2}
}

// gltfDocument is the subset of the glTF root read for bounds.
type gltfDocument struct {
	Asset struct {
		Version string `json:"version"`
	} `json:"asset"`
	Meshes []struct {
		Primitives []struct {
			Attributes map[string]int `json:"attributes"`
		} `json:"primitives"`
	} `json:"meshes"`
	Accessors []struct {
		Type string    `json:"type"`
		Min  []float32 `json:"min"`
		Max  []float32 `json:"max"`
	} `json:"accessors"`
}

type glbHeader struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

type glbChunkHeader struct {
	ChunkLength uint32
	ChunkType   uint32
}

// LoadModel reads a .gltf or .glb file and computes the bounds of every mesh
// primitive's POSITION accessor. Node transforms are not applied.
//
// Parameters:
//   - name: the handle name
//   - path: the file to read; binary files are detected by extension or magic
//
// Returns:
//   - *Model: the model bounds
//   - error: a read error or one wrapping ErrInvalidModel
func LoadModel(name, path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load model %q: %w", name, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".glb") || (len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == glbMagic) {
		data, err = glbJSONChunk(data)
		if err != nil {
			return nil, fmt.Errorf("load model %q: %w", name, err)
		}
	}

	var doc gltfDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("load model %q: %w: %v", name, ErrInvalidModel, err)
	}
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return nil, fmt.Errorf("load model %q: %w", name, errGLTFVersion)
	}

	m, err := bounds(&doc)
	if err != nil {
		return nil, fmt.Errorf("load model %q: %w", name, err)
	}
	m.Name, m.Path = name, path
	return m, nil
}

// glbJSONChunk returns the JSON chunk of a GLB container.
func glbJSONChunk(data []byte) ([]byte, error) {
	if len(data) < 12 {
		return nil, errGLBTooSmall
	}
	r := bytes.NewReader(data)

	var header glbHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read GLB header: %w", err)
	}
	if header.Magic != glbMagic {
		return nil, errGLBMagic
	}
	if header.Version != glbVersion {
		return nil, errGLBVersion
	}
	if uint64(header.Length) > uint64(len(data)) {
		return nil, fmt.Errorf("%w: header claims %d bytes, file has %d", errGLBTruncated, header.Length, len(data))
	}

	for {
		var chunk glbChunkHeader
		if err := binary.Read(r, binary.LittleEndian, &chunk); err != nil {
			if err == io.EOF {
				return nil, errMissingJSON
			}
			return nil, fmt.Errorf("read GLB chunk header: %w", err)
		}
		if uint64(chunk.ChunkLength) > uint64(r.Len()) {
			return nil, fmt.Errorf("%w: chunk claims %d bytes, %d remain", errGLBTruncated, chunk.ChunkLength, r.Len())
		}
		body := make([]byte, chunk.ChunkLength)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, fmt.Errorf("read GLB chunk: %w", err)
		}
		if chunk.ChunkType == glbChunkJSON {
			return body, nil
		}
	}
}

func bounds(doc *gltfDocument) (*Model, error) {
	m := &Model{
		Meshes: len(doc.Meshes),
		Min:    [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max:    [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
	found := false
	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			idx, ok := prim.Attributes["POSITION"]
			if !ok {
				continue
			}
			if idx < 0 || idx >= len(doc.Accessors) {
				return nil, fmt.Errorf("%w: POSITION accessor %d out of range", ErrInvalidModel, idx)
			}
			acc := doc.Accessors[idx]
			if acc.Type != "VEC3" || len(acc.Min) != 3 || len(acc.Max) != 3 {
				return nil, errAccessorBounds
			}
			for k := range 3 {
				m.Min[k] = min(m.Min[k], acc.Min[k])
				m.Max[k] = max(m.Max[k], acc.Max[k])
			}
			found = true
		}
	}
	if !found {
		return nil, errNoPositions
	}
	return m, nil
}
