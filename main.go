/*
Copyright © 2025 Peter Campbell
*/
package main

import "github.com/pcampbell/trellis/cmd"

func main() {
	cmd.Execute()
}
