// Command vmsim runs page reference strings through a simulated memory
// manager.
package main

import "github.com/sarchlab/vmsim/vmsim/cmd"

func main() {
	cmd.Execute()
}
