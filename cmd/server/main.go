package main

import "taskpilot/internal/app"

// @title           taskpilot API
// @version         1.0
// @description     Task management backend with OTP registration and cookie-based JWT auth.
// @BasePath        /
func main() {
	app.Run()
}
