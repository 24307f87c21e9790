package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/unitrack/portal/core/session"
	"github.com/unitrack/portal/gateway"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db       *sqlx.DB
	sessions session.ServiceInterface
	gw       *gateway.Client
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate SUBCOMMAND [args] - manage session DB migrations (up, down, status, ...)")
	fmt.Println("  purge - delete expired portal sessions")
	fmt.Println("  checklogin -username USERNAME|EMAIL - verify credentials against the upstream API")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	checkLoginCmd := flag.NewFlagSet("checklogin", flag.ExitOnError)
	checkLoginUname := checkLoginCmd.String("username", "", "The user's username or email. The password will be prompted next.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "purge":
		return cli.purge()
	case "checklogin":
		if err := checkLoginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *checkLoginUname == "" {
			checkLoginCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			checkLoginCmd.Usage()
			return errHelp
		}
		return cli.checkLogin(*checkLoginUname, string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}
