package scenegen

import (
	"encoding/json"
	"strings"

	"github.com/fresneltrace/fresnel/pkg/scene"
)

const promptHeader = `You design scenes for a path tracer. Reply with exactly one JSON
document inside a single ` + "```json" + ` fence and nothing else. The document
must follow this schema:

{
  "image":   { "filename": "out.png", "width": W, "height": H },
  "camera":  { "look_from": [x,y,z], "look_at": [x,y,z], "up": [x,y,z],
               "vertical_fov": degrees, "aspect_ratio": W/H,
               "aperture": a, "focus_distance": d,
               "time_min": t0, "time_max": t1 },
  "sampler": { "n": samples-per-axis, "max_depth": bounces },
  "background_color": { "r": r, "g": g, "b": b },
  "background": "solid" | "gradient",
  "scene_list": [ Object, ... ]
}

Every Object, Material and Texture is an object with exactly one key
naming its variant:

Object:
  { "sphere": { "center": [x,y,z], "velocity": [dx,dy,dz], "time": t0,
                "radius": r, "material": Material } }
    (velocity and time are optional; velocity makes the sphere move)
  { "rect": { "axes": ["x","y","z"], "a": [lo,hi], "b": [lo,hi],
              "offset": k, "material": Material } }
    (axes is a permutation: the first two span the plane, the third is
     the normal; ["x","y","z"] is a z-normal wall, ["x","z","y"] a
     y-normal floor or ceiling, ["y","z","x"] an x-normal wall)
  { "box": { "min": [x,y,z], "max": [x,y,z], "material": Material } }
  { "list": [ Object, ... ] }

Material:
  { "lambertian": { "albedo": Texture } }
  { "metal": { "albedo": { "r": r, "g": g, "b": b }, "fuzz": f } }
  { "dielectric": { "refractive_index": n } }
  { "diffuse_light": { "emit": Texture } }

Texture:
  { "solid": { "r": r, "g": g, "b": b } }
  { "checker": { "odd": Texture, "even": Texture } }
  { "noise": { "scale": s, "depth": d, "seed": n, "size": 256 } }
  { "image": { "path": "file.png" } }

Rules: dimensions and sampler values are at least 1; vertical_fov is in
(0, 180); focus_distance is positive; a camera must not sit on its
target. Lights only matter with a solid dark background. Emission colors
above 1 make brighter lights.
`

const lightExample = `
Example: a glowing panel over a metal box

` + "```json" + `
{
  "image": { "filename": "panel.png", "width": 400, "height": 400 },
  "camera": {
    "look_from": [0, 2, 6], "look_at": [0, 1, 0], "up": [0, 1, 0],
    "vertical_fov": 45, "aspect_ratio": 1, "aperture": 0,
    "focus_distance": 6
  },
  "sampler": { "n": 8, "max_depth": 32 },
  "background_color": { "r": 0.02, "g": 0.02, "b": 0.03 },
  "background": "solid",
  "scene_list": [
    { "rect": { "axes": ["x", "z", "y"], "a": [-4, 4], "b": [-4, 4],
                "offset": 0,
                "material": { "lambertian": { "albedo": { "solid": { "r": 0.7, "g": 0.7, "b": 0.7 } } } } } },
    { "rect": { "axes": ["x", "z", "y"], "a": [-1, 1], "b": [-1, 1],
                "offset": 4,
                "material": { "diffuse_light": { "emit": { "solid": { "r": 8, "g": 8, "b": 8 } } } } } },
    { "box": { "min": [-0.7, 0, -0.7], "max": [0.7, 1.4, 0.7],
               "material": { "metal": { "albedo": { "r": 0.8, "g": 0.8, "b": 0.9 }, "fuzz": 0.05 } } } }
  ]
}
` + "```" + `
`

// SystemPrompt returns the generation instructions: the scene schema, the
// authoring rules, and two worked examples.
func SystemPrompt() string {
	var b strings.Builder
	b.WriteString(promptHeader)

	data, err := json.MarshalIndent(scene.NewSimpleScene(), "", "  ")
	if err == nil {
		b.WriteString("\nExample: three spheres under a gradient sky\n\n```json\n")
		b.Write(data)
		b.WriteString("\n```\n")
	}

	b.WriteString(lightExample)
	return b.String()
}
