package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/farah/internal/catalog"
	"github.com/idilsaglam/farah/internal/checklist"
	"github.com/idilsaglam/farah/internal/config"
	"github.com/idilsaglam/farah/internal/logging"
	"github.com/idilsaglam/farah/internal/model"
	"github.com/idilsaglam/farah/internal/store"
	"github.com/idilsaglam/farah/internal/store/jsonstore"
	"github.com/idilsaglam/farah/internal/tui"
	"github.com/idilsaglam/farah/internal/ui"
)

// Options carries the resolved config and output streams.
type Options struct {
	Config *config.Config
	Out    io.Writer
	Err    io.Writer
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}
	if len(args) == 0 {
		PrintHelp(opt.Out)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0

	case "ls", "status", "schedule", "reset":
		if len(a) != 0 {
			ui.Fail(opt.Err, "usage: farah "+cmd)
			return 2
		}

	case "done":
		if len(a) != 2 {
			ui.Fail(opt.Err, "usage: farah done <section> <index>")
			return 2
		}
		if _, err := strconv.Atoi(a[1]); err != nil {
			ui.Fail(opt.Err, "done: not a number: "+a[1])
			return 2
		}

	default:
		ui.Fail(opt.Err, "unknown subcommand: "+cmd)
		fmt.Fprintln(opt.Err)
		PrintHelp(opt.Err)
		return 2
	}

	ap, code := open(opt)
	if code != 0 {
		return code
	}
	defer ap.close()

	switch cmd {
	case "ls":
		return ap.doInteractive()
	case "status":
		return ap.doStatus()
	case "schedule":
		return ap.doSchedule()
	case "reset":
		return ap.doReset()
	default: // done
		n, _ := strconv.Atoi(a[1])
		return ap.doToggle(a[0], n)
	}
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `farah - wedding preparation checklist

Usage:
  farah [flags] <subcommand> [args]

Subcommands:
  ls                       Interactive checklist (space toggles, tab switches section)
  status                   Print every section with progress and the cost total
  done <section> <index>   Toggle the item at 1-based index in section
  schedule                 Print the day timeline
  reset                    Forget every checked item

Flags:
  -config <file>      config file (default: farah.toml, then user config dir)
  -data-dir <dir>     where the checklist state is saved (default: ~/.farah)
  -key <name>         storage key (default: wedding-checked)
  -catalog <file>     TOML catalog replacing the built-in one
  -theme <name>       classic, neon or mono
  -locale <tag>       locale for the cost total (default: ar-EG)
  -log-level <level>  debug, info, warn, error
  -log-format <fmt>   text, logfmt, json

Examples:
  farah status
  farah done farah 2
  farah -theme neon ls
`)
}

// app is everything a subcommand needs, built once per invocation.
type app struct {
	opt    Options
	cfg    *config.Config
	logger *log.Logger
	closer io.Closer
	ctl    *checklist.Checklist
}

func open(opt Options) (*app, int) {
	cfg := opt.Config
	if cfg == nil {
		ui.Fail(opt.Err, "no configuration")
		return nil, 1
	}
	ui.SetTheme(cfg.Theme)

	logger, closer, err := logging.Open(opt.Err, cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		ui.Fail(opt.Err, "log: "+err.Error())
		return nil, 1
	}

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		closer.Close()
		ui.Fail(opt.Err, "catalog: "+err.Error())
		return nil, 1
	}

	var medium store.Medium = jsonstore.New(cfg.DataDir)
	if cfg.DataDir == "" {
		logger.Warn("no data directory, changes will not be saved")
		medium = store.NewMemory()
	}
	st := checklist.NewStore(medium, cfg.StorageKey, logger)
	logger.Debug("opening checklist", "data_dir", cfg.DataDir, "key", cfg.StorageKey, "config", cfg.File)

	return &app{
		opt:    opt,
		cfg:    cfg,
		logger: logger,
		closer: closer,
		ctl:    checklist.New(cat, st, logger),
	}, 0
}

func loadCatalog(path string) (model.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func (a *app) close() {
	if err := a.closer.Close(); err != nil {
		fmt.Fprintln(a.opt.Err, "close log:", err)
	}
}

// -------------- subcommand impls ----------------

func (a *app) doInteractive() int {
	err := tui.Run(a.ctl, tui.Options{Locale: a.cfg.Locale, Currency: a.cfg.Currency})
	if err != nil {
		ui.Fail(a.opt.Err, "tui: "+err.Error())
		return 1
	}
	return 0
}

func (a *app) doStatus() int {
	t := ui.Current()
	cat := a.ctl.Catalog()

	var lines []string
	lines = append(lines, t.Title.Render(cat.Title))
	if cat.Tagline != "" {
		lines = append(lines, t.Subtitle.Render(cat.Tagline))
	}
	lines = append(lines, "")
	for _, s := range cat.Sections {
		lines = append(lines, a.sectionLines(s)...)
		lines = append(lines, "")
	}
	lines = append(lines, t.Muted.Render("Tip: toggle with `farah done <section> <index>`"))
	ui.Panel(a.opt.Out, lines)
	return 0
}

func (a *app) doToggle(section string, userIndex int) int {
	s, ok := a.ctl.Section(section)
	if !ok {
		ui.Fail(a.opt.Err, fmt.Sprintf("unknown section %q (have %v)", section, a.ctl.Catalog().Names()))
		return 2
	}
	if userIndex < 1 || userIndex > len(s.Items) {
		ui.Fail(a.opt.Err, fmt.Sprintf("index out of range: have %d, got %d", len(s.Items), userIndex))
		fmt.Fprintln(a.opt.Err, ui.Current().Muted.Render("Hint: run `farah status` to see valid indexes"))
		return 2
	}
	idx := userIndex - 1
	a.ctl.Toggle(section, idx)
	a.logger.Info("item toggled", "section", section, "index", idx)

	state := "not done"
	if a.ctl.IsDone(section, idx) {
		state = "done"
	}
	ui.OK(a.opt.Out, fmt.Sprintf("%s marked %s (%d%%)", s.Items[idx].Text, state, a.ctl.Progress(section)))
	return 0
}

func (a *app) doSchedule() int {
	t := ui.Current()
	steps := a.ctl.Catalog().Timeline
	if len(steps) == 0 {
		ui.Panel(a.opt.Out, []string{t.Muted.Render("no schedule")})
		return 0
	}
	var lines []string
	for i, st := range steps {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines,
			fmt.Sprintf("%s %s  %s", st.Icon, t.Accent.Render(st.Time), t.Title.Render(st.Title)),
			"   "+st.Description,
		)
	}
	ui.Panel(a.opt.Out, lines)
	return 0
}

func (a *app) doReset() int {
	a.ctl.Reset()
	a.logger.Info("checklist cleared", "key", a.cfg.StorageKey, "data_dir", a.cfg.DataDir)
	ui.OK(a.opt.Out, "checklist cleared")
	return 0
}

// -------------- rendering helpers --------------

func (a *app) sectionLines(s model.Section) []string {
	t := ui.Current()
	header := t.Accent.Render(s.Title)
	if s.Subtitle != "" {
		header += "  " + t.Subtitle.Render(s.Subtitle)
	}
	lines := []string{
		header + t.Muted.Render(" ("+s.Name+")"),
		fmt.Sprintf("%s  %s %d  %s %d",
			ui.ProgressBar(a.ctl.Progress(s.Name), 28),
			t.Success.Render(t.SymDone), a.ctl.Done(s.Name),
			t.Pending.Render(t.SymPending), len(s.Items)-a.ctl.Done(s.Name)),
	}
	if len(s.Items) == 0 {
		return append(lines, t.Muted.Render("no items"))
	}
	for i, it := range s.Items {
		idx := t.Muted.Render(fmt.Sprintf("%2d.", i+1))
		box := t.Muted.Render(t.BoxUnchecked)
		text := it.Text
		if a.ctl.IsDone(s.Name, i) {
			box = t.Success.Render(t.BoxChecked)
			text = t.DoneText.Render(text)
		}
		line := fmt.Sprintf("%s %s %s %s", idx, box, it.Icon, text)
		if it.Price.Present() {
			line += "  " + t.Cost.Render(it.Price.Raw)
		}
		lines = append(lines, line)
	}
	if s.Budgeted {
		cost := ui.FormatCost(checklist.TotalCost(s.Items), a.cfg.Locale, a.cfg.Currency)
		lines = append(lines, t.Cost.Render("💰 "+cost))
	}
	return lines
}

// Main resolves configuration from args and the environment, then runs the
// subcommand that follows the root flags.
func Main(args []string) int {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("farah", flag.ContinueOnError)
	fs.Usage = func() { PrintHelp(os.Stderr) }
	cfg, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		ui.Fail(os.Stderr, "config: "+err.Error())
		return 2
	}

	// Hand the remaining args to the subcommand router.
	code := Run(fs.Args(), Options{Config: cfg})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
