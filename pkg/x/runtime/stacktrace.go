package runtime

import (
	"bytes"
	"runtime"
	"strconv"
)

// PrintStackTrace captures the calling goroutine's stack, skipping the
// innermost skip frames (the recover/defer machinery itself).
func PrintStackTrace(skip int) string {
	pc := make([]uintptr, 64)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pc[:n])
	var buf bytes.Buffer
	for {
		frame, more := frames.Next()
		buf.WriteString(frame.Function)
		buf.WriteByte('\n')
		buf.WriteByte('\t')
		buf.WriteString(frame.File)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(frame.Line))
		buf.WriteByte('\n')
		if !more {
			break
		}
	}
	return buf.String()
}
