package main

import (
	"github.com/corray333/order-bridge/internal/app"
	"github.com/corray333/order-bridge/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
