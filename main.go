package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/onedrop-app/onedrop-api/cmd/app"
)

// @title       OneDrop API
// @version     1.0
// @description Blood donation campaigns: requests, approvals, drives and donor enrollment.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		os.Exit(1)
	}
}
