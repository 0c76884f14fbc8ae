package main

import (
	"bytes"
	"fmt"
	"github.com/urfave/cli"
	"github.com/xiaobogaga/jackc/compiler/internal"
	"github.com/xiaobogaga/jackc/logger"
	"github.com/xiaobogaga/jackc/vm"
	"os"
)

var (
	verbose  bool
	noColor  bool
	jobs     int
	toStdout bool
)

func reportError(filename string, err error) {
	// The source is only needed to show the failing line, a read error just drops it.
	src, _ := os.ReadFile(filename)
	fmt.Fprintln(os.Stderr, makeMessage(filename, err, src, !noColor))
}

func compileAction(c *cli.Context) error {
	if len(c.Args()) == 0 {
		return cli.ShowAppHelp(c)
	}
	logger.Toggle(verbose)
	results, err := internal.CompilePaths(c.Args(), jobs, !toStdout)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			reportError(result.Source, result.Err)
			continue
		}
		if toStdout {
			fmt.Print(string(result.Code))
		}
	}
	if failed > 0 {
		return cli.NewExitError(fmt.Sprintf("%d of %d files failed to compile", failed, len(results)), 1)
	}
	return nil
}

func tokensAction(c *cli.Context) error {
	files, err := internal.JackFiles(c.Args())
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		var out bytes.Buffer
		err = internal.DumpTokens(src, &out)
		if err != nil {
			reportError(file, err)
			return cli.NewExitError("tokenizing failed", 1)
		}
		fmt.Print(out.String())
	}
	return nil
}

func verifyAction(c *cli.Context) error {
	logger.Toggle(verbose)
	failed := 0
	for _, file := range c.Args() {
		f, err := os.Open(file)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		commands, err := vm.Parse(f)
		f.Close()
		if err != nil {
			failed++
			fmt.Fprintln(os.Stderr, makeMessage(file, err, nil, !noColor))
			continue
		}
		logger.Printf("verify: %s has %d commands\n", file, len(commands))
		fmt.Printf("%s: ok\n", file)
	}
	if failed > 0 {
		return cli.NewExitError(fmt.Sprintf("%d of %d files are not valid vm code", failed, len(c.Args())), 1)
	}
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "jackc"
	app.Usage = "compile jack classes into vm code"

	verboseFlag := cli.BoolFlag{
		Name:        "verbose, v",
		Usage:       "print progress while compiling",
		Destination: &verbose,
	}

	noColorFlag := cli.BoolFlag{
		Name:        "no-color",
		Usage:       "hide colors in error messages",
		Destination: &noColor,
	}

	jobsFlag := cli.IntFlag{
		Name:        "jobs, j",
		Usage:       "how many files to compile at the same time",
		Value:       1,
		Destination: &jobs,
	}

	stdoutFlag := cli.BoolFlag{
		Name:        "stdout",
		Usage:       "print the vm code instead of writing <Name>.vm files",
		Destination: &toStdout,
	}

	compileFlags := []cli.Flag{verboseFlag, noColorFlag, jobsFlag, stdoutFlag}

	app.Commands = []cli.Command{
		{
			Name:    "compile",
			Aliases: []string{"c"},
			Usage:   "Compile jack file(s) or directories of jack files",
			Flags:   compileFlags,
			Action:  compileAction,
		},
		{
			Name:    "tokens",
			Aliases: []string{"t"},
			Usage:   "Print the tokens of jack file(s) as xml",
			Flags:   []cli.Flag{noColorFlag},
			Action:  tokensAction,
		},
		{
			Name:    "verify",
			Aliases: []string{"v"},
			Usage:   "Check that vm file(s) only contain well formed commands",
			Flags:   []cli.Flag{verboseFlag, noColorFlag},
			Action:  verifyAction,
		},
	}

	app.Flags = compileFlags
	app.Action = compileAction

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
