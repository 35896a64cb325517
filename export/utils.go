package export

import (
	"fmt"

	"github.com/dave/gpxtools/globals"
)

func logf(format string, a ...interface{}) {
	if globals.LOG {
		fmt.Printf(format, a...)
	}
}
