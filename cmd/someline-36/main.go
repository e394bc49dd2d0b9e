// Command someline-36 previews and exports the Someline 36 inserts.
package main

import "github.com/someline/someline/lines/someline36"

func main() {
	someline36.Project().Main()
}
