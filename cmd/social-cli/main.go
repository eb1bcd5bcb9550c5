package main

import (
	"github.com/redvista/social-cli/internal/cmd"
)

func main() {
	cmd.Execute()
}
