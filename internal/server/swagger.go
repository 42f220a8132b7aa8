package server

//go:generate swag init -g internal/server/server.go -o docs/swagger

// @title FormPilot API
// @version 0.1
// @description Interactive documentation for the FormPilot autofill assistant API surface.
// @contact.name FormPilot Maintainers
// @contact.url https://github.com/raysh454/formpilot
// @BasePath /
