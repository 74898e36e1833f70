// Public domain.

package main

import "github.com/soniakeys/nuscan/internal/nuprog"

func main() {
	nuprog.Main()
}
