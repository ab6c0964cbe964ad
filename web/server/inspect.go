package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse contains information about what was hit at a pixel
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	X            int                    `json:"x"`
	Y            int                    `json:"y"`
	Point        [3]float64             `json:"point,omitempty"`
	Normal       [3]float64             `json:"normal,omitempty"`
	Distance     float64                `json:"distance,omitempty"`
	FrontFace    bool                   `json:"frontFace,omitempty"`
	MaterialType string                 `json:"materialType,omitempty"`
	Material     map[string]interface{} `json:"material,omitempty"`
	ObjectIndex  int                    `json:"objectIndex"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Geometry     map[string]interface{} `json:"geometry,omitempty"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// handleInspect casts a ray through the center of pixel (x, y) and reports
// the closest hit
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()
	req, err := parseRenderRequest(values)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request: "+err.Error())
	}

	x, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid x coordinate")
	}
	y, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid y coordinate")
	}
	if x < 0 || x >= req.Width || y < 0 || y >= req.Height {
		return errorJSON(c, http.StatusBadRequest,
			fmt.Sprintf("Pixel (%d, %d) outside %dx%d image", x, y, req.Width, req.Height))
	}

	sceneObj, found, err := s.buildScene(req, s.logger("inspect"))
	if !found {
		return errorJSON(c, http.StatusNotFound, "Unknown scene: "+req.Scene)
	}
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Scene error: "+err.Error())
	}

	return c.JSON(http.StatusOK, inspectPixel(sceneObj, x, y, req.Width, req.Height, req.Seed))
}

// inspectPixel finds the top-level object nearest along the pixel's center ray
func inspectPixel(s *scene.Scene, x, y, width, height int, seed int64) InspectResponse {
	response := InspectResponse{X: x, Y: y, ObjectIndex: -1}

	sampler := core.NewSeededSampler(seed)
	u := (float64(x) + 0.5) / float64(width)
	v := (float64(height-1-y) + 0.5) / float64(height)
	ray := s.Camera.GetRay(u, v, sampler)

	closest := math.Inf(1)
	var hit *core.HitRecord
	for i, object := range s.Objects {
		if h, ok := object.Hit(ray, 0.001, closest, sampler); ok {
			closest = h.T
			hit = h
			response.ObjectIndex = i
		}
	}
	if hit == nil {
		return response
	}

	response.Hit = true
	response.Point = vecArray(hit.Point)
	response.Normal = vecArray(hit.Normal)
	response.Distance = hit.T
	response.FrontFace = hit.FrontFace
	response.MaterialType, response.Material = extractMaterialInfo(hit.Material, *hit)
	response.GeometryType, response.Geometry = extractGeometryInfo(s.Objects[response.ObjectIndex])
	return response
}

// extractMaterialInfo reports a material's kind and its parameters, with
// textures evaluated at the hit
func extractMaterialInfo(mat core.Material, hit core.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	evaluate := func(t material.Texture) [3]float64 {
		return vecArray(t.Evaluate(hit.UV, hit.Point))
	}

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = evaluate(m.Albedo)
		return "lambertian", properties
	case *material.Metal:
		properties["albedo"] = evaluate(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties
	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		return "dielectric", properties
	case *material.DiffuseLight:
		properties["emission"] = evaluate(m.Emit)
		return "diffuse_light", properties
	case *material.Isotropic:
		properties["albedo"] = evaluate(m.Albedo)
		return "isotropic", properties
	case nil:
		return "none", properties
	default:
		return fmt.Sprintf("%T", mat), properties
	}
}

// extractGeometryInfo describes a top-level scene object. Transforms report
// the object they wrap under "object".
func extractGeometryInfo(object core.Hittable) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch g := object.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(g.Center)
		properties["radius"] = g.Radius
		return "sphere", properties
	case *geometry.AxisRect:
		normal := g.Normal()
		properties["normal"] = vecArray(normal)
		properties["k"] = g.K
		properties["a"] = [2]float64{g.A0, g.A1}
		properties["b"] = [2]float64{g.B0, g.B1}
		return "rect", properties
	case *geometry.Box:
		properties["min"] = vecArray(g.Min)
		properties["max"] = vecArray(g.Max)
		return "box", properties
	case *geometry.Translate:
		properties["offset"] = vecArray(g.Offset)
		innerType, inner := extractGeometryInfo(g.Object)
		inner["type"] = innerType
		properties["object"] = inner
		return "translate", properties
	case *geometry.RotateY:
		innerType, inner := extractGeometryInfo(g.Object)
		inner["type"] = innerType
		properties["object"] = inner
		return "rotate_y", properties
	case *geometry.ConstantMedium:
		innerType, inner := extractGeometryInfo(g.Boundary)
		inner["type"] = innerType
		properties["object"] = inner
		return "constant_medium", properties
	default:
		return fmt.Sprintf("%T", object), properties
	}
}
