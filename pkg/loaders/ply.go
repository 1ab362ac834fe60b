// Package loaders reads triangle meshes from PLY files and textures from images.
package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/log"
)

var logger = log.New("loaders")

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYElement is an element block of the header, in file order
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYData contains the mesh loaded from a PLY file
type PLYData struct {
	Vertices  []core.Vec3 // Vertex positions (x, y, z)
	Faces     []int       // Triangle indices (3 per triangle); polygons are fanned
	TexCoords []core.Vec2 // Per-vertex (u, v), empty if not present
}

// LoadPLY loads a PLY file in ASCII or binary format
func LoadPLY(filename string) (*PLYData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ReadPLY(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	logger.Infof("loaded %s: %d vertices, %d triangles in %v",
		filename, len(data.Vertices), len(data.Faces)/3, time.Since(startTime))
	return data, nil
}

// ReadPLY parses a PLY stream
func ReadPLY(r *bufio.Reader) (*PLYData, error) {
	header, err := parsePLYHeader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values valueReader
	switch header.Format {
	case "binary_little_endian":
		values = &binaryValues{r: r, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValues{r: r, order: binary.BigEndian}
	case "ascii":
		scanner := bufio.NewScanner(r)
		scanner.Split(bufio.ScanWords)
		values = &asciiValues{scanner: scanner}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %q", header.Format)
	}

	data, err := readBody(header, values)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY data: %w", err)
	}

	for _, i := range data.Faces {
		if i < 0 || i >= len(data.Vertices) {
			return nil, fmt.Errorf("face index %d out of range for %d vertices", i, len(data.Vertices))
		}
	}
	return data, nil
}

// parsePLYHeader reads lines up to and including end_header, leaving r at the
// first byte of the body
func parsePLYHeader(r *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	first := true

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("header ended without end_header: %w", err)
		}
		line = strings.TrimSpace(line)

		if first {
			if line != "ply" {
				return nil, fmt.Errorf("missing ply magic number")
			}
			first = false
			continue
		}
		if line == "end_header" {
			return header, nil
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", line)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element: %q", line)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			element := &header.Elements[len(header.Elements)-1]
			element.Properties = append(element.Properties, prop)
		default:
			return nil, fmt.Errorf("unknown header keyword %q", parts[0])
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		return PLYProperty{Name: parts[3], IsList: true, ListType: parts[1], DataType: parts[2]}, nil
	}
	return PLYProperty{Name: parts[1], Type: parts[0]}, nil
}

// readBody reads every element in header order. Only vertex positions, texture
// coordinates and face vertex lists are kept.
func readBody(header *PLYHeader, values valueReader) (*PLYData, error) {
	data := &PLYData{}

	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			if err := readVertices(element, values, data); err != nil {
				return nil, err
			}
		case "face":
			if err := readFaces(element, values, data); err != nil {
				return nil, err
			}
		default:
			for i := 0; i < element.Count; i++ {
				for _, prop := range element.Properties {
					if _, err := readProperty(values, prop); err != nil {
						return nil, fmt.Errorf("skipping %s %d: %w", element.Name, i, err)
					}
				}
			}
		}
	}
	return data, nil
}

func readVertices(element PLYElement, values valueReader, data *PLYData) error {
	hasU, hasV := false, false
	for _, prop := range element.Properties {
		switch prop.Name {
		case "u", "s", "texture_u":
			hasU = true
		case "v", "t", "texture_v":
			hasV = true
		}
	}
	hasUV := hasU && hasV

	data.Vertices = make([]core.Vec3, 0, element.Count)
	if hasUV {
		data.TexCoords = make([]core.Vec2, 0, element.Count)
	}

	for i := 0; i < element.Count; i++ {
		var position core.Vec3
		var uv core.Vec2
		for _, prop := range element.Properties {
			list, err := readProperty(values, prop)
			if err != nil {
				return fmt.Errorf("vertex %d property %s: %w", i, prop.Name, err)
			}
			if prop.IsList {
				continue
			}
			switch prop.Name {
			case "x":
				position.X = list[0]
			case "y":
				position.Y = list[0]
			case "z":
				position.Z = list[0]
			case "u", "s", "texture_u":
				uv.X = list[0]
			case "v", "t", "texture_v":
				uv.Y = list[0]
			}
		}
		data.Vertices = append(data.Vertices, position)
		if hasUV {
			data.TexCoords = append(data.TexCoords, uv)
		}
	}
	return nil
}

func readFaces(element PLYElement, values valueReader, data *PLYData) error {
	data.Faces = make([]int, 0, element.Count*3)

	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			list, err := readProperty(values, prop)
			if err != nil {
				return fmt.Errorf("face %d property %s: %w", i, prop.Name, err)
			}
			if !prop.IsList || (prop.Name != "vertex_indices" && prop.Name != "vertex_index") {
				continue
			}
			if len(list) < 3 {
				return fmt.Errorf("face %d has %d vertices", i, len(list))
			}

			// Fan triangulation keeps the polygon's winding
			for k := 1; k+1 < len(list); k++ {
				data.Faces = append(data.Faces, int(list[0]), int(list[k]), int(list[k+1]))
			}
		}
	}
	return nil
}

// readProperty reads one scalar, or every entry of a list property
func readProperty(values valueReader, prop PLYProperty) ([]float64, error) {
	if !prop.IsList {
		v, err := values.next(prop.Type)
		if err != nil {
			return nil, err
		}
		return []float64{v}, nil
	}

	count, err := values.next(prop.ListType)
	if err != nil {
		return nil, err
	}
	if count < 0 || count != math.Trunc(count) {
		return nil, fmt.Errorf("invalid list length %v", count)
	}

	list := make([]float64, int(count))
	for i := range list {
		if list[i], err = values.next(prop.DataType); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// valueReader yields successive scalar values of the body
type valueReader interface {
	next(dataType string) (float64, error)
}

type binaryValues struct {
	r     io.Reader
	order binary.ByteOrder
}

func (b *binaryValues) next(dataType string) (float64, error) {
	switch dataType {
	case "float", "float32":
		var v float32
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "double", "float64":
		var v float64
		err := binary.Read(b.r, b.order, &v)
		return v, err
	case "int", "int32":
		var v int32
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "uint", "uint32":
		var v uint32
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "short", "int16":
		var v int16
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "ushort", "uint16":
		var v uint16
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "char", "int8":
		var v int8
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "uchar", "uint8":
		var v uint8
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	default:
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
}

type asciiValues struct {
	scanner *bufio.Scanner
}

func (a *asciiValues) next(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	v, err := strconv.ParseFloat(a.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", dataType, a.scanner.Text())
	}
	return v, nil
}
