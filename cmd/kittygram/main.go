// @title			Kittygram API
// @version		1.0
// @description	Cat catalog: cats, achievements and their images.
// @BasePath		/
package main

import "kittygram/cmd/kittygram/commands"

func main() {
	commands.Execute()
}
