package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var listaccounts = cli.Command{
	Name:   "listaccounts",
	Usage:  "list all wallet accounts",
	Action: listAccountsAction,
}

func listAccountsAction(ctx *cli.Context) error {
	walletSvc, cleanup, err := appServices()
	if err != nil {
		return err
	}
	defer cleanup()

	accounts, err := walletSvc.ListAccounts(context.Background())
	if err != nil {
		return err
	}

	printRespJSON(accounts)

	return nil
}
