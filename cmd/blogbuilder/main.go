package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogbuilder/cmd/blogbuilder/commands"
	"git.home.luguber.info/inful/blogbuilder/internal/version"
)

func main() {
	cli := &commands.CLI{}
	vars := kong.Vars{"version": version.Version}
	for k, v := range commands.DefaultThemeVar() {
		vars[k] = v
	}
	ctx := kong.Parse(cli,
		kong.Name("blogbuilder"),
		kong.Description("A small and easy static blog generator."),
		vars,
	)
	ctx.FatalIfErrorf(ctx.Run(&commands.Global{}))
}
