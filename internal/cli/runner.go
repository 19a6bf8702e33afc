package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/session"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Options carries the resolved config and I/O for a single invocation.
type Options struct {
	Config *config.Config
	Out    io.Writer
	Err    io.Writer
	Logger *log.Logger

	// Storage replaces the configured backend when set.
	Storage session.Storage
}

func (o *Options) defaults() {
	if o.Config == nil {
		o.Config = &config.Config{Backend: session.BackendMemory, Session: session.DefaultID()}
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// With no subcommand the interactive view starts.
func Run(args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		return withStore(opt, func(s *store.Store) int { return doTUI(s, opt) })
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0

	case "tui":
		return withStore(opt, func(s *store.Store) int { return doTUI(s, opt) })

	case "ls":
		fs := flag.NewFlagSet("ls", flag.ContinueOnError)
		fs.SetOutput(opt.Err)
		asJSON := fs.Bool("json", false, "print the raw session snapshot")
		if err := fs.Parse(a); err != nil {
			return 2
		}
		return withStore(opt, func(s *store.Store) int { return doList(s, opt, *asJSON) })

	case "add":
		if len(a) == 0 {
			ui.Fail(opt.Err, "usage: tada add <title...>")
			return 2
		}
		title := strings.Join(a, " ")
		return withStore(opt, func(s *store.Store) int { return doAdd(s, opt, title) })

	case "done":
		if len(a) != 1 {
			ui.Fail(opt.Err, "usage: tada done <id|index>")
			return 2
		}
		return withStore(opt, func(s *store.Store) int { return doToggle(s, opt, a[0]) })

	case "rm":
		if len(a) != 1 {
			ui.Fail(opt.Err, "usage: tada rm <id|index>")
			return 2
		}
		return withStore(opt, func(s *store.Store) int { return doRemove(s, opt, a[0]) })

	case "session":
		switch {
		case len(a) == 0:
			return doSessionInfo(opt)
		case len(a) == 1 && a[0] == "end":
			return doSessionEnd(opt)
		}
		ui.Fail(opt.Err, "usage: tada session [end]")
		return 2
	}

	ui.Fail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `tada - a session-scoped todo list

Usage:
  tada [flags] [subcommand] [args]

Subcommands:
  (none) | tui       Interactive list (a add, space toggle, d remove, q quit)
  add <title...>     Add a new todo (title can be multiple words)
  ls [-json]         List todos in the order they were added
  done <id|index>    Mark a todo done, or reopen it if already done
  rm <id|index>      Remove a todo
  session [end]      Show the current session, or end it and drop its todos

Flags:
  -backend memory|file|sqlite   where the session lives (default file)
  -session <id>                 session id (default: the parent shell)
  -session-dir <dir>            directory for file and sqlite sessions
  -theme classic|neon|mono
  -no-color
  -log-level debug|info|warn|error
  -date-format <layout>         Go time layout for creation dates (default 2006/01/02)

Environment:
  TADA_BACKEND, TADA_SESSION, TADA_SESSION_DIR, TADA_THEME, TADA_LOG_LEVEL,
  TADA_DATE_FORMAT, TADA_NO_COLOR, NO_COLOR
                                override the config file; flags override these
  TADA_CONFIG                   config file (default $XDG_CONFIG_HOME/tada/config.toml)

Todos are referenced by their 1-based position in 'tada ls', their full id,
or an id prefix of at least 4 characters.

Examples:
  tada add "Buy milk"
  tada ls
  tada done 1
  tada rm 3f2a
`)
}

// -------------- store plumbing ----------------

func openStorage(opt Options) (session.Storage, error) {
	if opt.Storage != nil {
		return opt.Storage, nil
	}
	cfg := opt.Config
	return session.Open(cfg.Backend, cfg.SessionDir, cfg.Session)
}

// withStore opens the session, restores the list and hands it to fn.
func withStore(opt Options, fn func(*store.Store) int) int {
	st, err := openStorage(opt)
	if err != nil {
		ui.Fail(opt.Err, "session: "+err.Error())
		return 1
	}
	if opt.Storage == nil {
		defer st.Close()
	}
	s, err := store.Open(st, store.WithLogger(opt.Logger))
	if err != nil {
		ui.Fail(opt.Err, "load: "+err.Error())
		return 1
	}
	return fn(s)
}

// -------------- subcommand impls ----------------

func doTUI(s *store.Store, opt Options) int {
	if err := tui.Run(s, opt.Config.DateFormat); err != nil {
		ui.Fail(opt.Err, "tui: "+err.Error())
		return 1
	}
	return 0
}

func doList(s *store.Store, opt Options, asJSON bool) int {
	if asJSON {
		b, err := store.Encode(s.Items())
		if err != nil {
			ui.Fail(opt.Err, "encode: "+err.Error())
			return 1
		}
		fmt.Fprintln(opt.Out, string(b))
		return 0
	}
	ui.Panel(opt.Out, ui.ListLines(s.Items(), opt.Config.DateFormat))
	return 0
}

func doAdd(s *store.Store, opt Options, title string) int {
	it, added, err := s.Add(title)
	if err != nil {
		ui.Fail(opt.Err, "add: "+err.Error())
		return 1
	}
	if !added {
		ui.Note(opt.Err, "empty title; nothing added")
		return 0
	}
	ui.OK(opt.Out, fmt.Sprintf("added %s", shortID(it.ID)))
	return 0
}

func doToggle(s *store.Store, opt Options, ref string) int {
	it, ok := s.Resolve(ref)
	if !ok {
		ui.Note(opt.Err, fmt.Sprintf("no todo matches %q; nothing to do (run `tada ls`)", ref))
		return 0
	}
	if _, err := s.Toggle(it.ID); err != nil {
		ui.Fail(opt.Err, "save: "+err.Error())
		return 1
	}
	if it.Completed {
		ui.OK(opt.Out, "reopened: "+it.Title)
	} else {
		ui.OK(opt.Out, "done: "+it.Title)
	}
	return 0
}

func doRemove(s *store.Store, opt Options, ref string) int {
	it, ok := s.Resolve(ref)
	if !ok {
		ui.Note(opt.Err, fmt.Sprintf("no todo matches %q; nothing to do (run `tada ls`)", ref))
		return 0
	}
	if _, err := s.Remove(it.ID); err != nil {
		ui.Fail(opt.Err, "save: "+err.Error())
		return 1
	}
	ui.OK(opt.Out, "removed: "+it.Title)
	return 0
}

func doSessionInfo(opt Options) int {
	cfg := opt.Config
	fmt.Fprintf(opt.Out, "session: %s\n", cfg.Session)
	fmt.Fprintf(opt.Out, "backend: %s\n", cfg.Backend)
	if cfg.Backend != session.BackendMemory {
		fmt.Fprintf(opt.Out, "dir:     %s\n", cfg.SessionDir)
	}
	fmt.Fprintf(opt.Out, "key:     %s\n", store.Key)
	return 0
}

func doSessionEnd(opt Options) int {
	st, err := openStorage(opt)
	if err != nil {
		ui.Fail(opt.Err, "session: "+err.Error())
		return 1
	}
	if opt.Storage == nil {
		defer st.Close()
	}
	if err := st.Clear(); err != nil {
		ui.Fail(opt.Err, "end session: "+err.Error())
		return 1
	}
	ui.OK(opt.Out, "session ended")
	return 0
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
