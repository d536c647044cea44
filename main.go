package main

import "github.com/dsharma08k/monday-bi-agent/internal/app"

func main() {
	app.Main()
}
