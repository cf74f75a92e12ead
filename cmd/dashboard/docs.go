package main

//go:generate swag init -g cmd/dashboard/main.go -o docs

// @title           Fundboard API
// @version         0.1.0
// @description     Read-only reporting dashboard for the funded-account program.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
