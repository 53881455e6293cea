package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var writedata = cli.Command{
	Name:  "writedata",
	Usage: "append an entry to a data account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "account",
			Usage:    "url of the data account",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "data",
			Usage:    "content of the entry",
			Required: true,
		},
	},
	Action: writeDataAction,
}

func writeDataAction(ctx *cli.Context) error {
	walletSvc, cleanup, err := appServices()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := walletSvc.WriteData(
		context.Background(),
		ctx.String("account"), []byte(ctx.String("data")),
	)
	if err != nil {
		return err
	}

	printRespJSON(res)

	return nil
}
