package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kendall-kelly/table-orders-api/simulator"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	baseURL       string
	tables        int
	menus         int
	logLevel      string
	jsonLogs      bool
	clientTimeout time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "simulator",
	Short: "Load simulator for the table orders API",
	Long: `Simulator plays a room of waiters against a running table orders API.

It registers tables T-01.. and menu items Menu-01.., then runs concurrent
sessions that each order a few dishes for a random table, look at the
table's items and take one dish back off the order.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	defaults := simulator.DefaultOptions()

	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "http://localhost:8080", "Base URL of the API server")
	rootCmd.PersistentFlags().IntVar(&tables, "tables", defaults.Tables, "Number of tables to register")
	rootCmd.PersistentFlags().IntVar(&menus, "menus", defaults.Menus, "Number of menu items to register")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json", false, "Log in JSON format")
	rootCmd.PersistentFlags().DurationVar(&clientTimeout, "timeout", 10*time.Second, "Timeout for each API request")
}

func newLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetLevel(level)
	if jsonLogs {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}

func newSimulator(opts simulator.Options) (*simulator.Simulator, error) {
	log, err := newLogger()
	if err != nil {
		return nil, err
	}
	client := simulator.NewClient(baseURL, &http.Client{Timeout: clientTimeout})
	return simulator.New(client, opts, log), nil
}
