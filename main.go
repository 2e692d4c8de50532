package main

import (
	"gitlab.com/minerex-platform/admin_api/cmd"
)

func main() {
	cmd.Execute()
}
