package main

import (
	"os"

	"github.com/nulldns/subdns-portal/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
