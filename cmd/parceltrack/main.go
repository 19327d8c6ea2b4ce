package main

import "github.com/matthieukhl/parceltrack/internal/cmd"

func main() {
	cmd.Execute()
}
