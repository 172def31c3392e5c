package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nvoronin/daybook/internal/flagx"
	"github.com/nvoronin/daybook/internal/server"
	"github.com/nvoronin/daybook/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	// -mint-token <device-id> prints a device token and exits.
	args := flagx.FilterArgs(os.Args[1:], []string{"-mint-token"})
	fs := flag.NewFlagSet("mint", flag.ContinueOnError)
	deviceID := fs.String("mint-token", "", "mint a device token for the given device id and exit")
	if err := fs.Parse(args); err == nil && *deviceID != "" {
		token, err := app.MintToken(*deviceID)
		if err != nil {
			log.Printf("%v", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	app.Run(ctx)
}
