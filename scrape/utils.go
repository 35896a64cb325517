package scrape

import (
	"fmt"

	"github.com/dave/gpxtools/globals"
)

func logf(format string, a ...interface{}) {
	if globals.LOG {
		fmt.Printf(format, a...)
	}
}

func debugf(format string, a ...interface{}) {
	if globals.DEBUG {
		fmt.Printf(format, a...)
	}
}
