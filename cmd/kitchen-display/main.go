// kitchen-display is a terminal worklist for the kitchen. It fetches raw
// dispatch items from the API on the refresh interval and re-ranks and
// re-times them locally every second, so elapsed times keep moving between
// fetches. Up and down select a pending ticket, enter sends it, r refreshes
// now and q quits.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/pflag"

	"github.com/pos-manage/api/internal/businessday"
	"github.com/pos-manage/api/internal/kitchen"
	"github.com/pos-manage/api/internal/logger"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		apiURL      string
		token       string
		date        string
		zone        string
		interval    time.Duration
		urgentAfter time.Duration
		width       int
		logLevel    string
		logFile     string
	)

	flagSet := pflag.NewFlagSet("kitchen-display", pflag.ContinueOnError)
	flagSet.StringVar(&apiURL, "api", envOr("POS_API_URL", "http://localhost:8081"), "API base URL")
	flagSet.StringVar(&token, "token", os.Getenv("POS_TOKEN"), "access token of a KITCHEN or MANAGER user")
	flagSet.StringVar(&date, "date", "", "business date YYYY-MM-DD (default: today)")
	flagSet.StringVar(&zone, "timezone", envOr("BUSINESS_TIMEZONE", businessday.DefaultZone), "business time zone")
	flagSet.DurationVar(&interval, "interval", kitchen.DefaultRefreshInterval, "how often to re-fetch items")
	flagSet.DurationVar(&urgentAfter, "urgent-after", kitchen.DefaultUrgentAfter, "elapsed time after which a pending item is urgent")
	flagSet.IntVar(&width, "width", 100, "maximum row width")
	flagSet.StringVar(&logLevel, "log-level", "warn", "log level")
	flagSet.StringVar(&logFile, "log-file", "", "write logs to this file (the screen is owned by the display)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}

	loc, err := businessday.Load(zone)
	if err != nil {
		return err
	}
	if date != "" {
		if _, _, err := businessday.Range(date, loc); err != nil {
			return err
		}
	}

	log := logger.New(logLevel, "text")
	log.SetOutput(io.Discard)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := clockwork.NewRealClock()
	api := newAPIFetcher(apiURL, token, 10*time.Second)
	board := kitchen.NewBoard(api, clk, kitchen.BoardConfig{
		Interval:     interval,
		UrgentAfter:  urgentAfter,
		Location:     loc,
		BusinessDate: date,
		Logger:       log,
	})
	go func() {
		if err := board.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("board stopped")
		}
	}()

	program := tea.NewProgram(newModel(ctx, board, api, width), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
