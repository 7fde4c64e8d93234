package main

import "telshop/internal/app"

// @title telshop API
// @version 1.0
// @description Point-of-sale and bookkeeping backend for a small phone shop.
// @BasePath /
func main() {
	app.Run()
}
