package main

import (
	"github.com/tonedrill/backend/cmd/app"
)

// @title          Tonedrill API
// @version        1.0.0
// @description    Backend for the Tonedrill ear-training application: drill prompts, attempt scoring and per-user practice statistics.
// @host           https://tonedrill.app
// @BasePath       /api
func main() {
	app.Run()
}
