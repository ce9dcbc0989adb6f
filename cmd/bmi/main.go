package main

import (
	"os"

	"github.com/yusufkecer/eatsmart-backend/internal/cli"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		os.Exit(1)
	}
}
