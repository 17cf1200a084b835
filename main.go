package main

import (
	_ "github.com/inkwell-net/inkwell/src/admintools"
	_ "github.com/inkwell-net/inkwell/src/migration"
	"github.com/inkwell-net/inkwell/src/website"
)

func main() {
	website.WebsiteCommand.Execute()
}
