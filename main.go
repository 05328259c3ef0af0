/*
Copyright © 2026 Kindred Systems <oss@kindredhq.com>
*/
package main

import "github.com/kindredhq/licenseer/cmd"

func main() {
	cmd.Execute()
}
