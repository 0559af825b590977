package main

import (
	"github.com/Tully9/CernAtlasSBOM/cmd"
	"github.com/Tully9/CernAtlasSBOM/common"
)

func main() {
	defer common.WaitLogs()
	cmd.Execute()
}
