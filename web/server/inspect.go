package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/geometry"
	"github.com/df07/go-sppm/pkg/material"
	"github.com/df07/go-sppm/pkg/sppm"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// hexColor formats a linear color clamped to [0,1]
func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// materialInfo classifies a material by its dominant behavior at hit
func materialInfo(mat *material.Material, hit core.Hit) (string, map[string]interface{}) {
	diffuse := mat.DiffuseAt(hit)
	properties := map[string]interface{}{
		"diffuse":         vec(diffuse),
		"color":           hexColor(diffuse),
		"specular":        vec(mat.Specular),
		"shininess":       mat.Shininess,
		"reflectiveness":  mat.Reflectiveness,
		"refractiveness":  vec(mat.Refractiveness),
		"refractiveIndex": mat.RefractiveIndex,
	}
	if mat.Texture != nil {
		properties["texture"] = fmt.Sprintf("%T", mat.Texture)
	}

	switch {
	case mat.IsEmissive():
		properties["emission"] = vec(mat.Emission)
		properties["color"] = hexColor(mat.Emission)
		return "emissive", properties
	case mat.IsRefractive():
		return "refractive", properties
	case mat.IsReflective():
		return "mirror", properties
	case mat.Texture != nil:
		return "textured", properties
	default:
		return "diffuse", properties
	}
}

// geometryInfo extracts the defining parameters of a surface
func geometryInfo(surface geometry.Surface) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := surface.(type) {
	case *geometry.Sphere:
		properties["center"] = vec(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = vec(geom.Point)
		properties["normal"] = vec(geom.Normal)
		return "plane", properties

	case *geometry.Quad:
		properties["corner"] = vec(geom.Corner)
		properties["u"] = vec(geom.U)
		properties["v"] = vec(geom.V)
		properties["normal"] = vec(geom.Normal)
		return "quad", properties

	case *geometry.Box:
		properties["min"] = vec(geom.Bounds.Min)
		properties["max"] = vec(geom.Bounds.Max)
		return "box", properties

	case *geometry.Disc:
		properties["center"] = vec(geom.Center)
		properties["normal"] = vec(geom.Normal)
		properties["radius"] = geom.Radius
		return "disc", properties

	case *geometry.Cylinder:
		properties["baseCenter"] = vec(geom.BaseCenter)
		properties["topCenter"] = vec(geom.TopCenter)
		properties["radius"] = geom.Radius
		return "cylinder", properties

	case *geometry.Triangle:
		properties["vertices"] = [][3]float64{vec(geom.V0), vec(geom.V1), vec(geom.V2)}
		properties["normal"] = vec(geom.Normal())
		return "triangle", properties

	case *geometry.TriangleMesh:
		properties["triangleCount"] = geom.TriangleCount()
		bbox := geom.BoundingBox()
		properties["boundingBox"] = map[string]interface{}{
			"min": vec(bbox.Min),
			"max": vec(bbox.Max),
		}
		return "triangle_mesh", properties

	default:
		return "unknown", properties
	}
}

// handleInspect casts the eye ray through a pixel and reports the first surface hit
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.loadScene(req.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	width, height := req.Width, req.Height
	if width == 0 {
		width = sceneObj.Width
	}
	if height == 0 {
		height = sceneObj.Height
	}
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	ray := sppm.NewCamera(sceneObj.World, sceneObj.Camera, s.engine).PrimaryRay(pixelX, pixelY, width, height)
	hit, ok := sceneObj.World.Intersect(ray)
	if !ok {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := materialInfo(hit.Surface.Material(), hit.Hit)
	geometryType, geometryProps := geometryInfo(hit.Surface)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vec(hit.Point),
		Normal:       vec(hit.Normal),
		Distance:     hit.Distance,
		FrontFace:    hit.Normal.Dot(ray.Direction) < 0,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
