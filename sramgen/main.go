// Sramgen generates memory modules from vendor SRAM macros.
package main

import "github.com/sarchlab/sramgen/sramgen/cmd"

func main() {
	cmd.Execute()
}
