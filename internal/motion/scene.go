package motion

// GeometryKind names a primitive shape understood by the renderer.
type GeometryKind string

const (
	Sphere   GeometryKind = "sphere"
	Cylinder GeometryKind = "cylinder"
)

// Geometry describes a primitive's shape.
//
// Args follow the renderer's constructor order: sphere (radius, widthSegments, heightSegments) and
// cylinder (radiusTop, radiusBottom, height, radialSegments).
type Geometry struct {
	Kind GeometryKind `json:"kind"`
	Args []float64    `json:"args"`
}

// Material describes a standard physically based material.
type Material struct {
	Color             string  `json:"color"`
	Opacity           float64 `json:"opacity"`
	Transparent       bool    `json:"transparent"`
	Emissive          string  `json:"emissive,omitempty"`
	EmissiveIntensity float64 `json:"emissiveIntensity,omitempty"`
	Roughness         float64 `json:"roughness"`
	Metalness         float64 `json:"metalness"`
}

// Transform places a node relative to its parent.
type Transform struct {
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
}

// Node is a group or a mesh in the scene graph. Meshes have a geometry and a material; groups only have children.
type Node struct {
	Name      string    `json:"name"`
	Transform Transform `json:"transform"`
	Geometry  *Geometry `json:"geometry,omitempty"`
	Material  *Material `json:"material,omitempty"`
	Children  []Node    `json:"children,omitempty"`
}

// Light is an ambient or point light.
type Light struct {
	Kind      string  `json:"kind"`
	Position  Vec3    `json:"position"`
	Intensity float64 `json:"intensity"`
	Color     string  `json:"color,omitempty"`
}

// Camera is a perspective camera.
type Camera struct {
	Position Vec3    `json:"position"`
	FOV      float64 `json:"fov"`
}

// Scene is the declarative description submitted to the renderer once. Per-frame poses are applied to the nodes named
// in [Frame]: each swimmer pose to a copy of Swimmer, the judge pose to Judge.
type Scene struct {
	Camera   Camera  `json:"camera"`
	Lights   []Light `json:"lights"`
	Swimmer  Node    `json:"swimmer"`
	Judge    Node    `json:"judge"`
	Swimmers []Vec3  `json:"swimmers"`
}

func mesh(name string, pos Vec3, geometry Geometry, material Material) Node {
	return Node{
		Name:      name,
		Transform: Transform{Position: pos},
		Geometry:  &geometry,
		Material:  &material,
	}
}

func opaque(color string, roughness, metalness float64) Material {
	return Material{Color: color, Opacity: 1, Roughness: roughness, Metalness: metalness}
}

func glowing(color string, opacity, emissiveIntensity float64) Material {
	return Material{
		Color:             color,
		Opacity:           opacity,
		Transparent:       true,
		Emissive:          "#ffffff",
		EmissiveIntensity: emissiveIntensity,
		Roughness:         1,
	}
}

// SwimmerModel is the translucent background swimmer: a head and a two-segment tail.
func SwimmerModel(phase float64) Node {
	secondSegment := mesh("tail-tip", Vec3{Y: -0.5},
		Geometry{Kind: Cylinder, Args: []float64{0.025, 0.015, 0.4, 8}},
		glowing("#c0c0c0", 0.2, 0.05))
	// The tip is bent once at creation so that swimmers do not look identical.
	secondSegment.Transform.Rotation.Z = tipBend(phase)

	return Node{
		Name: "swimmer",
		Children: []Node{
			mesh("head", Vec3{}, Geometry{Kind: Sphere, Args: []float64{0.15, 16, 16}}, glowing("#e0e0e0", 0.3, 0.1)),
			{
				Name:      "tail",
				Transform: Transform{Position: Vec3{Y: -0.1}},
				Children: []Node{
					mesh("tail-base", Vec3{Y: -0.2},
						Geometry{Kind: Cylinder, Args: []float64{0.03, 0.025, 0.4, 8}},
						glowing("#d0d0d0", 0.25, 0.05)),
					secondSegment,
				},
			},
		},
	}
}

// JudgeModel is the foreground judge: a head with eyes, a powdered wig with curls and a tail.
func JudgeModel() Node {
	ball := func(r float64) Geometry { return Geometry{Kind: Sphere, Args: []float64{r, 16, 16}} }
	wig := opaque("#ffffff", 0.8, 0)
	eye := opaque("#000000", 1, 0)
	return Node{
		Name: "judge",
		Children: []Node{
			mesh("head", Vec3{Y: 0.5}, Geometry{Kind: Sphere, Args: []float64{0.5, 32, 32}}, opaque("#f0f0f0", 0.3, 0.1)),
			mesh("eye-left", Vec3{X: -0.15, Y: 0.6, Z: 0.4}, Geometry{Kind: Sphere, Args: []float64{0.08, 16, 16}}, eye),
			mesh("eye-right", Vec3{X: 0.15, Y: 0.6, Z: 0.4}, Geometry{Kind: Sphere, Args: []float64{0.08, 16, 16}}, eye),
			mesh("wig", Vec3{Y: 0.8}, Geometry{Kind: Cylinder, Args: []float64{0.6, 0.5, 0.3, 32}}, wig),
			mesh("curl-left-top", Vec3{X: -0.5, Y: 0.6}, ball(0.15), wig),
			mesh("curl-left-bottom", Vec3{X: -0.6, Y: 0.4}, ball(0.12), wig),
			mesh("curl-right-top", Vec3{X: 0.5, Y: 0.6}, ball(0.15), wig),
			mesh("curl-right-bottom", Vec3{X: 0.6, Y: 0.4}, ball(0.12), wig),
			mesh("tail", Vec3{Y: -0.2}, Geometry{Kind: Cylinder, Args: []float64{0.1, 0.05, 2, 16}}, opaque("#e0e0e0", 0.4, 0)),
		},
	}
}

// BackgroundLights lights the swarm with a dim warm palette.
func BackgroundLights() []Light {
	return []Light{
		{Kind: "ambient", Intensity: 0.3},
		{Kind: "point", Position: Vec3{X: 10, Y: 10, Z: 10}, Intensity: 0.3, Color: "#8b6f47"},
		{Kind: "point", Position: Vec3{X: -10, Y: -10, Z: -5}, Intensity: 0.2, Color: "#d4b896"},
	}
}

// NewScene describes the whole stage for swarm.
func NewScene(swarm Swarm) Scene {
	bases := make([]Vec3, len(swarm))
	for i, p := range swarm {
		bases[i] = p.Base()
	}
	return Scene{
		Camera:   Camera{Position: Vec3{Z: 8}, FOV: 60},
		Lights:   BackgroundLights(),
		Swimmer:  SwimmerModel(0),
		Judge:    JudgeModel(),
		Swimmers: bases,
	}
}
