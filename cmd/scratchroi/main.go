package main

import (
	"scratchroi-backend/cmd/scratchroi/cmd"
)

func main() {
	cmd.Execute()
}
