package main

import (
	"context"
	"fmt"
)

// checkLogin verifies a set of credentials against the upstream API and
// signs right back out.
func (cli *commandLine) checkLogin(uname, pwd string) error {
	ctx := context.Background()

	usr, err := cli.gw.Login(ctx, uname, pwd)
	if err != nil {
		return err
	}
	fmt.Printf("OK: %s <%s> role=%s\n", usr.DisplayName(), usr.Email, usr.Role)

	// confirm the upstream actually established a session for us
	if me, err := cli.gw.CurrentUser(ctx); err != nil {
		fmt.Printf("warning: session check failed: %v\n", err)
	} else if me.ID != usr.ID {
		fmt.Printf("warning: session belongs to user %d, expected %d\n", me.ID, usr.ID)
	}

	if err := cli.gw.Logout(ctx); err != nil {
		fmt.Printf("warning: upstream logout failed: %v\n", err)
	}
	return nil
}
