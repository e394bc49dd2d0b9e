// Command someline-15 previews and exports the Someline 15 inserts.
package main

import "github.com/someline/someline/lines/someline15"

func main() {
	someline15.Project().Main()
}
