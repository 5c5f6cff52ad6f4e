package main

import (
	"github.com/hance08/canopy/cmd"
	"github.com/hance08/canopy/internal/store"
)

func main() {
	cmd.Execute(store.Migrations)
}
