package main

import (
	"github.com/vanir-db/vanir/cmd/vanir/cmd"
	"github.com/vanir-db/vanir/pkg/di"
)

func main() {
	// Initialize dependency injection container
	container := di.NewContainer()

	// Inject dependencies into cmd package
	cmd.SetContainer(container)

	cmd.Execute()
}
