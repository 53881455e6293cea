package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var createidentity = cli.Command{
	Name:  "createidentity",
	Usage: "create a new identity (ADI) sponsored by a lite account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "sponsor",
			Usage:    "lite account address funding the creation",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "url",
			Usage:    "chain url of the new identity, eg. acc://myadi.acme",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "name",
			Usage:    "display name of the identity",
			Required: true,
		},
	},
	Action: createIdentityAction,
}

func createIdentityAction(ctx *cli.Context) error {
	walletSvc, cleanup, err := appServices()
	if err != nil {
		return err
	}
	defer cleanup()

	identity, res, err := walletSvc.CreateIdentity(
		context.Background(),
		ctx.String("sponsor"), ctx.String("url"), ctx.String("name"),
	)
	if err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{
		"identity": identity,
		"result":   res,
	})

	return nil
}
