// FILE: lixenwraith/recorder/compat/level.go
package compat

// Level labels adapter output. The recorder itself has no levels; adapters carry the
// level of the calling library into the line text or the structured entry.
type Level string

const (
	LevelTrace Level = "TRACE"
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
	LevelFatal Level = "FATAL"
	LevelPanic Level = "PANIC"
)

const (
	sourceGnet     = "gnet"
	sourceFastHTTP = "fasthttp"
	sourceFiber    = "fiber"
)

// textLine renders the plain-text form shared by the adapters
func textLine(source string, level Level, msg string) string {
	return "[" + source + "] " + string(level) + " " + msg
}
