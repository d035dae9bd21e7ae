package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
)

func parseIntArg(args []string, name string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("exactly one argument (%s) is required", name)
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, args[0])
	}
	return i, nil
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

func errorf(format string, a ...interface{}) {
	color.New(color.FgRed).PrintfFunc()("ERROR: "+format+"\n", a...)
}
