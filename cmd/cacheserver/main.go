// Command cacheserver runs the tempuscache HTTP server.
package main

import "github.com/Krishna8167/tempuscache/v2/internal/cli"

func main() {
	cli.Execute()
}
