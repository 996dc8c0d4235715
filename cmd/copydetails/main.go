//  BYZRA ⸻ cmd/copydetails/main.go <>
// +-----------------------------------------------------------+
//  copies media properties and file times between two files   |____
//  .go <--| CLI entrypoint                                          +

package main

import "os"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout))
}
