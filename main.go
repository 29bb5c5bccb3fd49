package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/eventorg/smart-event-api/cmd/app"
)

// @title           Smart Event Organizer API
// @description     Event announcements, scheduling, attendee registration and feedback.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
