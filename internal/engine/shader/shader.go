// Package shader compiles the GLSL programs the renderer draws with.
package shader

import (
	"embed"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/nightfield/internal/logger"
)

const version = "#version 410 core\n"

//go:embed glsl
var sources embed.FS

// Program names.
const (
	Mesh = "mesh"
	Line = "line"
)

// Source assembles the vertex and fragment sources of the named program.
// Mesh stages are prefixed with the shared lighting code.
func Source(name string) (vertex, fragment string, err error) {
	var prelude string
	if name == Mesh {
		b, err := sources.ReadFile("glsl/lighting.glsl")
		if err != nil {
			return "", "", fmt.Errorf("lighting prelude: %w", err)
		}
		prelude = string(b)
	}

	stage := func(ext string) (string, error) {
		b, err := sources.ReadFile("glsl/" + name + ext)
		if err != nil {
			return "", fmt.Errorf("program %q: %w", name, err)
		}
		var sb strings.Builder
		sb.WriteString(version)
		sb.WriteString(prelude)
		sb.Write(b)
		return sb.String(), nil
	}

	if vertex, err = stage(".vert"); err != nil {
		return "", "", err
	}
	if fragment, err = stage(".frag"); err != nil {
		return "", "", err
	}
	return vertex, fragment, nil
}

// Load compiles the named embedded program.
func Load(name string) (uint32, error) {
	vs, fs, err := Source(name)
	if err != nil {
		return 0, err
	}
	program, err := CompileProgram(vs, fs)
	if err != nil {
		return 0, fmt.Errorf("program %q: %w", name, err)
	}
	logger.Named("shader").Debug("program linked", zap.String("name", name), zap.Uint32("id", program))
	return program, nil
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", strings.TrimRight(string(log), "\x00"))
	}

	return program, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, strings.TrimRight(string(log), "\x00"))
	}

	return shader, nil
}

// Uniform returns the location of a uniform, or -1 if it is inactive.
func Uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
