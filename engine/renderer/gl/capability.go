package gl

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/kinema/engine/core"
)

// Caps holds the optional feature bits every other component branches
// on. Probed once; never re-queried per call.
type Caps struct {
	// RowLength: UNPACK_ROW_LENGTH can express the source stride, so a
	// padded buffer uploads in one call.
	RowLength bool
	// VAO: vertex array objects are available.
	VAO bool
	// Debug: a driver debug message channel is available.
	Debug bool
	// ES: the context is OpenGL ES. ES cannot read back the default
	// framebuffer.
	ES           bool
	Major, Minor int
	// GLSL is the shader variant the context compiles.
	GLSL ShaderVersion
}

// ProbeCaps queries the context version and extension string once and
// derives every capability bit from them.
func ProbeCaps(g GL) Caps {
	var c Caps

	ver := g.GetString(VERSION)
	if rest, ok := strings.CutPrefix(ver, "OpenGL ES "); ok {
		c.ES = true
		ver = rest
	}
	if _, err := fmt.Sscanf(ver, "%d.%d", &c.Major, &c.Minor); err != nil {
		core.LogWarn("gl: unparseable version string %q, assuming 2.1", ver)
		c.Major, c.Minor = 2, 1
	}

	exts := g.GetString(EXTENSIONS)

	if c.ES {
		c.RowLength = c.Major >= 3 || CheckExtension(exts, "GL_EXT_unpack_subimage")
		c.VAO = c.Major >= 3 || CheckExtension(exts, "GL_OES_vertex_array_object")
	} else {
		c.RowLength = true
		c.VAO = c.Major >= 3 || CheckExtension(exts, "GL_ARB_vertex_array_object")
	}
	c.Debug = CheckExtension(exts, "GL_KHR_debug") ||
		(!c.ES && (c.Major > 4 || (c.Major == 4 && c.Minor >= 3)))

	c.GLSL = pickShaderVersion(c)

	core.LogDebug("gl: version %d.%d es=%v row_length=%v vao=%v debug=%v glsl=%s",
		c.Major, c.Minor, c.ES, c.RowLength, c.VAO, c.Debug, c.GLSL)
	return c
}

// CheckExtension reports whether ext occurs in the space-separated
// combined extension string. Exact word match; "GL_EXT_foo" must not
// match "GL_EXT_foobar".
func CheckExtension(extensions, ext string) bool {
	if ext == "" {
		return false
	}
	pos := 0
	for {
		i := strings.Index(extensions[pos:], ext)
		if i < 0 {
			return false
		}
		abs := pos + i
		end := abs + len(ext)
		startOK := abs == 0 || extensions[abs-1] == ' '
		endOK := end == len(extensions) || extensions[end] == ' '
		if startOK && endOK {
			return true
		}
		pos = end
	}
}
