// inkforge is the desktop shell core for the Inkforge writing studio.
package main

import (
	"os"

	"github.com/inkforge/inkforge/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
