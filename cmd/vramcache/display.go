package main

import (
	"fmt"
	"runtime"

	glcore "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"

	gldevice "github.com/arl/vramcache/device/gl"
	"github.com/arl/vramcache/emu/log"
	"github.com/arl/vramcache/texcache"
)

const vertexShaderSource = `
#version 330 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;
out vec2 uv;
void main() {
	uv = aUV;
	gl_Position = vec4(aPos, 0.0, 1.0);
}
`

const fragmentShaderSource = `
#version 330 core
in vec2 uv;
out vec4 color;
uniform sampler2D tex;
void main() {
	color = texture(tex, uv);
}
`

// DisplayCmd opens a window and shows one decoded texture-cache page,
// exercising the real OpenGL device backend end-to-end the way a typical
// emulator front end drives its framebuffer texture.
type DisplayCmd struct {
	VramPath string `arg:"" name:"vram-dump" help:"Raw little-endian 16-bit VRAM dump." type:"existingfile"`

	Page  uint8  `name:"page" help:"VRAM page to display."`
	Mode  string `name:"mode" enum:"4bit,8bit,16bit" default:"16bit"`
	ClutX int    `name:"clut-x"`
	ClutY int    `name:"clut-y"`
}

func init() { runtime.LockOSThread() }

func (c *DisplayCmd) Run() error {
	buf, err := loadVRAM(c.VramPath)
	if err != nil {
		return err
	}
	mode, err := parseMode(c.Mode)
	if err != nil {
		return err
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	defer sdl.Quit()

	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 3)

	window, err := sdl.CreateWindow("vramcache", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		512, 512, sdl.WINDOW_OPENGL|sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	glctx, err := window.GLCreateContext()
	if err != nil {
		return fmt.Errorf("create gl context: %w", err)
	}
	defer sdl.GLDeleteContext(glctx)

	if err := glcore.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	prog, err := linkProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return err
	}
	defer glcore.DeleteProgram(prog)

	vao, vbo := newQuad()
	defer glcore.DeleteVertexArrays(1, &vao)
	defer glcore.DeleteBuffers(1, &vbo)

	dev := gldevice.New()
	cache := texcache.New(dev, buf)

	src := cache.LookupSource(c.Page, mode, texcache.NewPaletteReg(c.ClutX, c.ClutY))
	if src == nil {
		return fmt.Errorf("device refused to allocate a texture")
	}
	texID, err := gldevice.ID(src.Texture)
	if err != nil {
		return err
	}

	log.ModCLI.Infof("displaying page %d mode=%s, close the window to exit", c.Page, mode)

	running := true
	for running {
		for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
			switch e.(type) {
			case *sdl.QuitEvent:
				running = false
			}
		}

		glcore.Clear(glcore.COLOR_BUFFER_BIT)
		glcore.UseProgram(prog)
		glcore.ActiveTexture(glcore.TEXTURE0)
		glcore.BindTexture(glcore.TEXTURE_2D, texID)
		glcore.BindVertexArray(vao)
		glcore.DrawArrays(glcore.TRIANGLE_STRIP, 0, 4)

		window.GLSwap()
		sdl.Delay(16)
	}

	return nil
}

func linkProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vs, err := compileShader(vertexSrc, glcore.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer glcore.DeleteShader(vs)

	fs, err := compileShader(fragmentSrc, glcore.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer glcore.DeleteShader(fs)

	prog := glcore.CreateProgram()
	glcore.AttachShader(prog, vs)
	glcore.AttachShader(prog, fs)
	glcore.LinkProgram(prog)

	var status int32
	glcore.GetProgramiv(prog, glcore.LINK_STATUS, &status)
	if status == glcore.FALSE {
		var logLen int32
		glcore.GetProgramiv(prog, glcore.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen)
		glcore.GetProgramInfoLog(prog, logLen, nil, &log[0])
		return 0, fmt.Errorf("link program: %s", string(log))
	}
	return prog, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := glcore.CreateShader(shaderType)
	csrc, free := glcore.Strs(source + "\x00")
	defer free()
	glcore.ShaderSource(shader, 1, csrc, nil)
	glcore.CompileShader(shader)

	var status int32
	glcore.GetShaderiv(shader, glcore.COMPILE_STATUS, &status)
	if status == glcore.FALSE {
		var logLen int32
		glcore.GetShaderiv(shader, glcore.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen)
		glcore.GetShaderInfoLog(shader, logLen, nil, &log[0])
		return 0, fmt.Errorf("compile shader: %s", string(log))
	}
	return shader, nil
}

// newQuad builds a full-viewport textured quad: (pos.xy, uv.xy) per vertex.
func newQuad() (vao, vbo uint32) {
	vertices := []float32{
		-1, -1, 0, 1,
		1, -1, 1, 1,
		-1, 1, 0, 0,
		1, 1, 1, 0,
	}

	glcore.GenVertexArrays(1, &vao)
	glcore.GenBuffers(1, &vbo)

	glcore.BindVertexArray(vao)
	glcore.BindBuffer(glcore.ARRAY_BUFFER, vbo)
	glcore.BufferData(glcore.ARRAY_BUFFER, len(vertices)*4, glcore.Ptr(vertices), glcore.STATIC_DRAW)

	glcore.VertexAttribPointerWithOffset(0, 2, glcore.FLOAT, false, 4*4, 0)
	glcore.EnableVertexAttribArray(0)
	glcore.VertexAttribPointerWithOffset(1, 2, glcore.FLOAT, false, 4*4, 2*4)
	glcore.EnableVertexAttribArray(1)

	glcore.BindVertexArray(0)
	return vao, vbo
}
