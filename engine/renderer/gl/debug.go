package gl

import (
	"github.com/spaghettifunk/kinema/engine/core"
)

func errorToString(err Enum) string {
	switch err {
	case INVALID_ENUM:
		return "INVALID_ENUM"
	case INVALID_VALUE:
		return "INVALID_VALUE"
	case INVALID_OPERATION:
		return "INVALID_OPERATION"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	case OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	default:
		return "unknown"
	}
}

// CheckError drains the context error queue into the log. The driver
// may queue several errors per call, so this loops until empty. Errors
// are never fatal to this layer.
func CheckError(ctx *Context, when string) {
	for {
		err := ctx.GetError()
		if err == NO_ERROR {
			break
		}
		core.LogError("%s: OpenGL error %s", when, errorToString(err))
	}
}

// SetDebugLogger routes the context debug channel into the engine log,
// classified by the driver's own severity. Messages can arrive
// asynchronously relative to the call that caused them and never alter
// control flow.
func SetDebugLogger(ctx *Context) {
	if !ctx.Caps.Debug {
		return
	}
	installed := ctx.DebugMessageCallback(func(source, xtype Enum, id uint32, severity Enum, message string) {
		switch severity {
		case DEBUG_SEVERITY_NOTIFICATION:
			core.LogVerbose("GL: %s", message)
		case DEBUG_SEVERITY_LOW:
			core.LogInfo("GL: %s", message)
		case DEBUG_SEVERITY_MEDIUM:
			core.LogWarn("GL: %s", message)
		default:
			core.LogError("GL: %s", message)
		}
	})
	if !installed {
		core.LogVerbose("gl: context advertises a debug channel the binding cannot install")
	}
}
