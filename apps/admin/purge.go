package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) purge() error {
	n, err := cli.sessions.Purge(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("purged %d expired session(s)\n", n)
	return nil
}
