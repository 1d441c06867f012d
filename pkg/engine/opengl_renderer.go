package engine

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"quickfx/internal/logger"
	"quickfx/pkg/effects"
	"quickfx/pkg/scene"
)

// floats per vertex: position, normal, smoothed normal
const vertexStride = 9

// gpuMesh is the uploaded form of a scene mesh.
type gpuMesh struct {
	vao uint32
	vbo uint32
	ebo uint32

	// byte offset and index count of each submesh in ebo
	offsets []int
	counts  []int32

	// smoothed normals were present at upload
	smooth bool
}

// OpenGLRenderer draws the scene graph with one shader program per
// material shader name. Material parameters become uniforms of the same
// name; zTest and stencilPass drive the depth and stencil state.
type OpenGLRenderer struct {
	width  int
	height int
	logger *logger.Logger

	programs map[string]uint32
	uniforms map[uint32]map[string]int32
	meshes   map[*scene.Mesh]*gpuMesh

	// Thread safety
	mutex sync.Mutex
}

var _ Renderer = (*OpenGLRenderer)(nil)

// NewOpenGLRenderer creates a new OpenGL renderer. A GL context must be
// current on the calling thread.
func NewOpenGLRenderer(width, height int, log *logger.Logger) (*OpenGLRenderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Infof("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	r := &OpenGLRenderer{
		width:    width,
		height:   height,
		logger:   log,
		programs: make(map[string]uint32),
		uniforms: make(map[uint32]map[string]int32),
		meshes:   make(map[*scene.Mesh]*gpuMesh),
	}

	for name, src := range shaderSources {
		program, err := r.createShaderProgram(src.vertex, src.fragment)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("failed to build shader %s: %w", name, err)
		}
		r.programs[name] = program
	}

	gl.ClearColor(0.08, 0.08, 0.1, 1.0)
	return r, nil
}

// createShaderProgram compiles and links a shader program from source
func (r *OpenGLRenderer) createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	// Vertex shader
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}

	// Fragment shader
	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// Check for linking errors
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		gl.DeleteProgram(program)
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)

		return 0, fmt.Errorf("shader program linking failed: %v", log)
	}

	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

// compileShader compiles a shader from source
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		gl.DeleteShader(shader)

		return 0, fmt.Errorf("shader compilation failed: %v", log)
	}

	return shader, nil
}

// UpdateResolution updates the renderer resolution
func (r *OpenGLRenderer) UpdateResolution(width, height int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.width = width
	r.height = height
}

// Render draws one frame of the scene under root.
func (r *OpenGLRenderer) Render(root *scene.Node, time float64) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.StencilMask(0xFF)
	gl.DepthMask(true)
	gl.ColorMask(true, true, true, true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)

	view, projection := r.camera(time)

	for _, call := range collectDraws(root) {
		program, ok := r.programs[call.Material.Shader]
		if !ok {
			continue
		}
		mesh := r.upload(call.Renderer.Mesh)
		if call.Submesh >= len(mesh.counts) || mesh.counts[call.Submesh] == 0 {
			continue
		}

		applyPassState(call.Material)

		gl.UseProgram(program)
		r.setMatrix(program, "model", call.Model)
		r.setMatrix(program, "view", view)
		r.setMatrix(program, "projection", projection)
		if loc := r.uniform(program, "time"); loc >= 0 {
			gl.Uniform1f(loc, float32(time))
		}
		r.setMaterialUniforms(program, call.Material)

		gl.BindVertexArray(mesh.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, mesh.counts[call.Submesh], gl.UNSIGNED_INT,
			uintptr(mesh.offsets[call.Submesh]))
	}
	gl.BindVertexArray(0)
}

// camera orbits the origin slowly.
func (r *OpenGLRenderer) camera(time float64) (view, projection mgl32.Mat4) {
	angle := float32(time * 0.3)
	eye := mgl32.Vec3{10 * float32(math.Sin(float64(angle))), 5, 10 * float32(math.Cos(float64(angle)))}
	view = mgl32.LookAtV(eye, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})

	aspect := float32(1)
	if r.height > 0 {
		aspect = float32(r.width) / float32(r.height)
	}
	projection = mgl32.Perspective(mgl32.DegToRad(45), aspect, 0.1, 100)
	return view, projection
}

// applyPassState sets depth, stencil, color and blend state for one
// material slot.
func applyPassState(m *scene.Material) {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(true)
	gl.ColorMask(true, true, true, true)
	gl.Disable(gl.STENCIL_TEST)
	gl.Disable(gl.BLEND)

	switch m.Kind {
	case scene.KindOutlineMask:
		gl.DepthFunc(compareFuncToGL(materialCompare(m)))
		gl.DepthMask(false)
		gl.ColorMask(false, false, false, false)
		gl.Enable(gl.STENCIL_TEST)
		gl.StencilFunc(gl.ALWAYS, 1, 0xFF)
		pass, _ := m.Float(effects.ParamStencilPass)
		gl.StencilOp(gl.KEEP, gl.KEEP, stencilOpToGL(scene.StencilOp(pass)))

	case scene.KindOutlineFill:
		gl.DepthFunc(compareFuncToGL(materialCompare(m)))
		gl.DepthMask(false)
		gl.Enable(gl.STENCIL_TEST)
		gl.StencilFunc(gl.NOTEQUAL, 1, 0xFF)
		gl.StencilOp(gl.KEEP, gl.KEEP, gl.KEEP)
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	case scene.KindBlinker:
		gl.DepthMask(false)
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)

	case scene.KindOverlay:
		gl.DepthMask(false)
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
}

// materialCompare reads the zTest parameter, defaulting to LessEqual.
func materialCompare(m *scene.Material) scene.CompareFunc {
	v, ok := m.Float(effects.ParamZTest)
	if !ok {
		return scene.CompareLessEqual
	}
	return scene.CompareFunc(v)
}

func compareFuncToGL(c scene.CompareFunc) uint32 {
	switch c {
	case scene.CompareNever:
		return gl.NEVER
	case scene.CompareLess:
		return gl.LESS
	case scene.CompareEqual:
		return gl.EQUAL
	case scene.CompareLessEqual:
		return gl.LEQUAL
	case scene.CompareGreater:
		return gl.GREATER
	case scene.CompareNotEqual:
		return gl.NOTEQUAL
	case scene.CompareGreaterEqual:
		return gl.GEQUAL
	}
	// disabled depth testing passes everything
	return gl.ALWAYS
}

func stencilOpToGL(op scene.StencilOp) uint32 {
	switch op {
	case scene.StencilZero:
		return gl.ZERO
	case scene.StencilReplace:
		return gl.REPLACE
	}
	return gl.KEEP
}

// upload returns the GPU copy of m, uploading it on first use and again
// once smoothed normals appear.
func (r *OpenGLRenderer) upload(m *scene.Mesh) *gpuMesh {
	smooth := m.UVs(effects.SmoothNormalChannel)
	g, ok := r.meshes[m]
	if ok && (g.smooth || len(smooth) == 0) {
		return g
	}
	if !ok {
		g = &gpuMesh{}
		gl.GenVertexArrays(1, &g.vao)
		gl.GenBuffers(1, &g.vbo)
		gl.GenBuffers(1, &g.ebo)
		r.meshes[m] = g
	}

	data := make([]float32, 0, len(m.Vertices)*vertexStride)
	for i, v := range m.Vertices {
		var n, s mgl32.Vec3
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		if i < len(smooth) {
			s = smooth[i]
		}
		data = append(data, v[0], v[1], v[2], n[0], n[1], n[2], s[0], s[1], s[2])
	}

	var indices []uint32
	g.offsets = g.offsets[:0]
	g.counts = g.counts[:0]
	for _, sub := range m.Submeshes {
		g.offsets = append(g.offsets, len(indices)*4)
		g.counts = append(g.counts, int32(len(sub)))
		indices = append(indices, sub...)
	}
	g.smooth = len(smooth) > 0

	gl.BindVertexArray(g.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	// Position, normal and smoothed normal attributes
	for i := uint32(0); i < 3; i++ {
		gl.VertexAttribPointerWithOffset(i, 3, gl.FLOAT, false, vertexStride*4, uintptr(i*3*4))
		gl.EnableVertexAttribArray(i)
	}
	gl.BindVertexArray(0)

	r.logger.Debugf("uploaded mesh %s: %d vertices, %d submeshes", m.Name, len(m.Vertices), len(m.Submeshes))
	return g
}

// uniform returns the cached location of a uniform, -1 when the program
// does not use it.
func (r *OpenGLRenderer) uniform(program uint32, name string) int32 {
	locs, ok := r.uniforms[program]
	if !ok {
		locs = make(map[string]int32)
		r.uniforms[program] = locs
	}
	loc, ok := locs[name]
	if !ok {
		loc = gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		locs[name] = loc
	}
	return loc
}

func (r *OpenGLRenderer) setMatrix(program uint32, name string, m mgl32.Mat4) {
	if loc := r.uniform(program, name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

func (r *OpenGLRenderer) setMaterialUniforms(program uint32, m *scene.Material) {
	for name, v := range m.Floats {
		if loc := r.uniform(program, name); loc >= 0 {
			gl.Uniform1f(loc, v)
		}
	}
	for name, v := range m.Vectors {
		if loc := r.uniform(program, name); loc >= 0 {
			gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
		}
	}
}

// Close releases GPU resources
func (r *OpenGLRenderer) Close() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, g := range r.meshes {
		gl.DeleteVertexArrays(1, &g.vao)
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
	}
	r.meshes = map[*scene.Mesh]*gpuMesh{}

	for _, program := range r.programs {
		gl.DeleteProgram(program)
	}
	r.programs = map[string]uint32{}
	r.uniforms = map[uint32]map[string]int32{}
}
