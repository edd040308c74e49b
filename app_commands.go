package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/thirukguru/make-git-version/service/header"
	"github.com/thirukguru/make-git-version/service/hook"
	"github.com/thirukguru/make-git-version/service/output"
	"github.com/thirukguru/make-git-version/service/storage"
)

func runCommand(ctx context.Context, cmd string, args []string, w io.Writer) error {
	switch cmd {
	case "show":
		return runShowCommand(args, w)
	case "init":
		return runInitCommand(args, w)
	case "hook":
		return runHookCommand(args, w)
	case "history":
		return runHistoryCommand(args, w)
	case "db":
		return runDBCommand(ctx, args, w)
	default:
		return fmt.Errorf("unsupported command: %s", cmd)
	}
}

// runShowCommand prints the macro of a generated header. A directory argument is
// treated as a build path.
func runShowCommand(args []string, w io.Writer) error {
	fs := pflag.NewFlagSet("show", pflag.ContinueOnError)
	name := fs.String("header", "git-version.h", "Header file name when a build path is given")
	subdir := fs.String("subdir", "sketch", "Header directory under the build path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: make-git-version show <header-file|build-path>")
	}

	path := rest[0]
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = header.Path(path, *subdir, *name)
	}
	macro, value, err := header.Read(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s=%s\n", macro, value)
	return err
}

func runInitCommand(args []string, w io.Writer) error {
	fs := pflag.NewFlagSet("init", pflag.ContinueOnError)
	name := fs.String("header", "git-version.h", "Header file name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: make-git-version init <sketch-dir>")
	}

	created, err := header.Placeholder(rest[0], *name)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(w, "Created placeholder %s in %s\n", *name, rest[0])
	} else {
		fmt.Fprintf(w, "%s already exists in %s\n", *name, rest[0])
	}
	return nil
}

func runHookCommand(args []string, w io.Writer) error {
	fs := pflag.NewFlagSet("hook", pflag.ContinueOnError)
	command := fs.String("command", hook.DefaultCommand, "Command the build tool runs")
	index := fs.Int("index", 1, "Pre-build hook slot number")
	recipe := fs.Bool("recipe", false, "Use the recipe.hooks.* key form")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: make-git-version hook <print|install <platform-dir>>")
	}
	opts := hook.Options{Command: *command, Index: *index, Recipe: *recipe}

	switch rest[0] {
	case "print":
		line, err := hook.Pattern(opts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, line)
		return err
	case "install":
		if len(rest) < 2 {
			return fmt.Errorf("usage: make-git-version hook install <platform-dir>")
		}
		changed, err := hook.Install(rest[1], opts)
		if err != nil {
			return err
		}
		if changed {
			fmt.Fprintf(w, "Installed %s hook in %s\n", hook.Key(opts), rest[1])
		} else {
			fmt.Fprintf(w, "Hook %s already installed in %s\n", hook.Key(opts), rest[1])
		}
		return nil
	default:
		return fmt.Errorf("unsupported hook command: %s", rest[0])
	}
}

func runHistoryCommand(args []string, w io.Writer) error {
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	dbPath := fs.String("db-path", "", "SQLite database path")
	source := fs.String("source", "", "Sketch source path filter")
	limit := fs.Int("limit", 20, "Number of rows to list")
	format := fs.StringP("output", "o", "text", "Output format (text, json, or table)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: make-git-version history <list|latest>")
	}

	store, err := storage.NewService(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := output.NewServiceWithWriter(*format, w)
	switch rest[0] {
	case "list":
		generations, err := store.GetRecent(*source, *limit)
		if err != nil {
			return err
		}
		return out.RenderHistory(generations)
	case "latest":
		if *source == "" {
			return fmt.Errorf("usage: make-git-version history latest --source <sketch-dir>")
		}
		latest, err := store.GetLatest(*source)
		if err != nil {
			return err
		}
		if latest == nil {
			return out.RenderHistory(nil)
		}
		return out.RenderHistory([]storage.Generation{*latest})
	default:
		return fmt.Errorf("unsupported history command: %s", rest[0])
	}
}

func runDBCommand(ctx context.Context, args []string, w io.Writer) error {
	fs := pflag.NewFlagSet("db", pflag.ContinueOnError)
	dbPath := fs.String("db-path", "", "SQLite database path")
	olderThan := fs.Int("older-than", 90, "Purge generations older than N days")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: make-git-version db <vacuum|reindex|purge> [--db-path ...]")
	}

	store, err := storage.NewService(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch rest[0] {
	case "vacuum":
		return store.Vacuum(ctx)
	case "reindex":
		return store.Reindex(ctx)
	case "purge":
		count, err := store.PurgeOlderThan(ctx, *olderThan)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Purged %d generations\n", count)
		return nil
	default:
		return fmt.Errorf("unsupported db command: %s", rest[0])
	}
}
