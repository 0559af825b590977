package common

import (
	"fmt"
	"time"
)

const (
	Name = `atlasbom`
)

var (
	Version = `v1.2.0`
	When    = time.Now().Unix()

	LogLinenumbers bool
	LogHides       []string

	silentFlag bool
	debugFlag  bool
	traceFlag  bool
)

// DefineVerbosity wires the command line verbosity flags into the logger.
// Trace implies debug, and debug wins over silent.
func DefineVerbosity(silent, debug, trace bool) {
	silentFlag = silent && !debug && !trace
	debugFlag = debug || trace
	traceFlag = trace
}

func Silent() bool {
	return silentFlag
}

func DebugFlag() bool {
	return debugFlag
}

func TraceFlag() bool {
	return traceFlag
}

func UserAgent() string {
	return fmt.Sprintf("%s/%s", Name, Version)
}
