package cmd

import (
	"context"

	"github.com/ardnew/gflag/cli/cmd/console"
	"github.com/ardnew/gflag/log"
)

// Console edits the flags declared by a schema interactively.
type Console struct {
	Declaration `embed:""`

	History string `default:"${cache}/${historyFile}" help:"Console history file." type:"path"`
}

// Run executes the console command.
func (c *Console) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := c.open(ctx)
	if err != nil {
		return err
	}

	session, err := console.NewSession(s.reg, s.program)
	if err != nil {
		return err
	}

	return console.Run(ctx, session, c.History, log.Default())
}
