// Package scene renders streamed terrain regions.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/terrastream/internal/engine/scene/shaders"
	"github.com/Faultbox/terrastream/internal/engine/shader"
	"github.com/Faultbox/terrastream/internal/terrain/grid"
	"github.com/Faultbox/terrastream/internal/terrain/mesh"
	"github.com/Faultbox/terrastream/internal/terrain/stream"
	"github.com/Faultbox/terrastream/pkg/math"
)

// chunkMesh owns one region's GPU buffers. It is the renderable handle
// the streaming pipeline holds: visibility transitions arrive through
// SetVisible, where entering visibility restarts the fade-in ramp.
type chunkMesh struct {
	scene *TerrainScene
	coord grid.RegionCoord
	base  math.Vec3 // region origin in world space

	vao        uint32
	buffers    [3]uint32 // positions, normals, uvs
	ebo        uint32
	indexCount int32

	visible bool
	fade    float32
}

// SetVisible implements stream.Renderable. The fade ramp restarts only
// on a hidden-to-visible transition, so the redundant show a LOD rebuild
// issues on an inherited-visible chunk does not replay it.
func (m *chunkMesh) SetVisible(visible bool) {
	if visible && !m.visible {
		m.fade = 0
	}
	m.visible = visible
}

// Release implements stream.Renderable.
func (m *chunkMesh) Release() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(3, &m.buffers[0])
	gl.DeleteBuffers(1, &m.ebo)

	// A rebuild spawns the replacement before releasing the old handle;
	// only drop the map entry if it is still ours.
	if m.scene.chunks[m.coord] == m {
		delete(m.scene.chunks, m.coord)
	}
}

// TerrainScene uploads built region geometry and draws every visible
// chunk with a shared shader. It implements stream.Host.
type TerrainScene struct {
	program      uint32
	locViewProj  int32
	locOffset    int32
	locLightDir  int32
	locMaxHeight int32
	locAlpha     int32

	chunks       map[grid.RegionCoord]*chunkMesh
	regionExtent float32
	maxHeight    float32
	shift        math.Vec3 // accumulated floating-origin offset
	fadeRate     float32   // alpha per second

	LightDir math.Vec3
}

var _ stream.Host = (*TerrainScene)(nil)

// New creates the terrain scene. regionExtent is the region edge length
// in world units, maxHeight the highest possible surface height.
func New(regionExtent, maxHeight float32) (*TerrainScene, error) {
	program, err := shader.CompileProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	return &TerrainScene{
		program:      program,
		locViewProj:  shader.GetUniform(program, "uViewProj"),
		locOffset:    shader.GetUniform(program, "uOffset"),
		locLightDir:  shader.GetUniform(program, "uLightDir"),
		locMaxHeight: shader.GetUniform(program, "uMaxHeight"),
		locAlpha:     shader.GetUniform(program, "uAlpha"),
		chunks:       make(map[grid.RegionCoord]*chunkMesh),
		regionExtent: regionExtent,
		maxHeight:    maxHeight,
		fadeRate:     2.5,
		LightDir:     math.Vec3{X: -0.4, Y: -1, Z: -0.3},
	}, nil
}

// Spawn implements stream.Host: uploads the geometry and returns the
// owning handle. Chunks spawn hidden; the visibility sweep shows them.
// A LOD rebuild spawns over a live chunk, and the replacement carries
// its visibility and fade forward so the region never blinks.
func (s *TerrainScene) Spawn(c grid.RegionCoord, g *mesh.Geometry) stream.Renderable {
	m := &chunkMesh{
		scene: s,
		coord: c,
		base: math.Vec3{
			X: float32(c.X) * s.regionExtent,
			Z: float32(c.Z) * s.regionExtent,
		},
		indexCount: int32(len(g.Indices)),
	}
	if old := s.chunks[c]; old != nil {
		m.visible = old.visible
		m.fade = old.fade
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(3, &m.buffers[0])

	gl.BindBuffer(gl.ARRAY_BUFFER, m.buffers[0])
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Positions)*3*4, unsafe.Pointer(&g.Positions[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.buffers[1])
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Normals)*3*4, unsafe.Pointer(&g.Normals[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.buffers[2])
	gl.BufferData(gl.ARRAY_BUFFER, len(g.UVs)*2*4, unsafe.Pointer(&g.UVs[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	s.chunks[c] = m
	return m
}

// ShiftOrigin applies a floating-origin shift. Every chunk's render
// position moves together because the shift is a single scene-level
// value read at draw time.
func (s *TerrainScene) ShiftOrigin(delta math.Vec3) {
	s.shift = s.shift.Add(delta)
}

// Draw renders all visible chunks. dt advances the fade-in ramps.
func (s *TerrainScene) Draw(viewProj math.Mat4, dt float32) {
	gl.UseProgram(s.program)
	gl.UniformMatrix4fv(s.locViewProj, 1, false, viewProj.Ptr())
	gl.Uniform3f(s.locLightDir, s.LightDir.X, s.LightDir.Y, s.LightDir.Z)
	gl.Uniform1f(s.locMaxHeight, s.maxHeight)

	for _, m := range s.chunks {
		if !m.visible || m.indexCount == 0 {
			continue
		}

		if m.fade < 1 {
			m.fade += s.fadeRate * dt
			if m.fade > 1 {
				m.fade = 1
			}
		}

		offset := m.base.Sub(s.shift)
		gl.Uniform3f(s.locOffset, offset.X, offset.Y, offset.Z)
		gl.Uniform1f(s.locAlpha, m.fade)

		gl.BindVertexArray(m.vao)
		gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

// Close releases all GPU resources.
func (s *TerrainScene) Close() {
	for _, m := range s.chunks {
		m.Release()
	}
	if s.program != 0 {
		gl.DeleteProgram(s.program)
	}
}
