package pretty

import (
	"os"

	"github.com/Tully9/CernAtlasSBOM/common"
)

func Ok() error {
	common.Log("%sOK.%s", Green, Reset)
	return nil
}

func Highlight(form string, details ...interface{}) {
	common.Log(Cyan+form+Reset, details...)
}

func Note(form string, details ...interface{}) {
	common.Log(Yellow+"Note: "+form+Reset, details...)
}

func Warning(form string, details ...interface{}) {
	common.Log(Yellow+"Warning: "+form+Reset, details...)
}

// Guard exits the process with given exitcode unless the condition
// holds. Command surfaces use it as their terminal error check.
func Guard(condition bool, exitcode int, form string, details ...interface{}) {
	if !condition {
		common.Log(Red+form+Reset, details...)
		common.WaitLogs()
		os.Exit(exitcode)
	}
}

func Exit(exitcode int, form string, details ...interface{}) error {
	common.Log(form, details...)
	common.WaitLogs()
	os.Exit(exitcode)
	return nil
}
