package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	_ = godotenv.Load(".env")

	Execute()
}
