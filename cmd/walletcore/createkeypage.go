package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var createkeypage = cli.Command{
	Name:  "createkeypage",
	Usage: "add a new page to a key book",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "book",
			Usage:    "url of the owning key book",
			Required: true,
		},
	},
	Action: createKeyPageAction,
}

func createKeyPageAction(ctx *cli.Context) error {
	walletSvc, cleanup, err := appServices()
	if err != nil {
		return err
	}
	defer cleanup()

	page, res, err := walletSvc.CreateKeyPage(
		context.Background(), ctx.String("book"),
	)
	if err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{
		"keyPage": page,
		"result":  res,
	})

	return nil
}
