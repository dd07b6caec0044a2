package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/derekprior/roadtrip/internal/config"
	"github.com/derekprior/roadtrip/internal/excel"
	"github.com/derekprior/roadtrip/internal/htmltable"
	"github.com/derekprior/roadtrip/internal/itinerary"
	"github.com/derekprior/roadtrip/internal/route"
	"github.com/derekprior/roadtrip/internal/schedule"
	"github.com/derekprior/roadtrip/internal/validator"
	"github.com/derekprior/roadtrip/internal/web"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

// queryFlags are the search filters shared by search and check.
type queryFlags struct {
	teams  []string
	days   []string
	span   int
	home   []string
	away   []string
	months []string
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&q.teams, "team", "t", nil, "Team to see (repeat; order sets assignment order)")
	cmd.Flags().StringSliceVar(&q.days, "day", nil, "Allowed days of the week, e.g. Sat,Sun")
	cmd.Flags().IntVar(&q.span, "span", 0, "Max number of days (default: search.max_span, else one day per team)")
	cmd.Flags().StringArrayVar(&q.home, "home", nil, "Team that must be seen at home (repeat)")
	cmd.Flags().StringArrayVar(&q.away, "away", nil, "Team that must be seen away (repeat)")
	cmd.Flags().StringSliceVar(&q.months, "month", nil, "Restrict to months, e.g. April,May")
	cmd.MarkFlagRequired("team")
}

func (q *queryFlags) constraints(cfg *config.Config) (itinerary.Constraints, error) {
	c := itinerary.Constraints{
		Teams:   q.teams,
		MaxSpan: q.span,
		Home:    q.home,
		Away:    q.away,
	}
	if c.MaxSpan == 0 {
		c.MaxSpan = cfg.Search.MaxSpan
	}
	for _, s := range q.days {
		wd, err := schedule.ParseWeekday(s)
		if err != nil {
			return c, err
		}
		c.Days = append(c.Days, wd)
	}
	for _, s := range q.months {
		m, err := schedule.ParseMonth(s)
		if err != nil {
			return c, err
		}
		c.Months = append(c.Months, m)
	}
	if c.Span() > cfg.Search.MaxSpanCap {
		return c, fmt.Errorf("span %d is over the %d day limit (search.max_span_cap)", c.Span(), cfg.Search.MaxSpanCap)
	}
	return c, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "roadtrip",
		Short: "Find multi-day trips that see each of your teams play once",
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	var configFile string
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: config.yaml in current directory)")

	var (
		searchQuery queryFlags
		show        int
		outputFile  string
	)
	searchCmd := &cobra.Command{
		Use:          "search",
		Short:        "Search the schedule for itineraries",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			c, err := searchQuery.constraints(cfg)
			if err != nil {
				return err
			}
			return runSearch(cfg, c, show, outputFile)
		},
	}
	searchQuery.register(searchCmd)
	searchCmd.Flags().IntVar(&show, "show", 1, "Which itinerary to print in detail")
	searchCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write all itineraries to this Excel file")

	var checkQuery queryFlags
	checkCmd := &cobra.Command{
		Use:          "check <trips.xlsx>",
		Short:        "Check a saved itineraries workbook against a query",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			c, err := checkQuery.constraints(cfg)
			if err != nil {
				return err
			}
			return runCheck(c, args[0])
		},
	}
	checkQuery.register(checkCmd)

	var addr string
	serveCmd := &cobra.Command{
		Use:          "serve",
		Short:        "Serve itinerary searches over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return runServe(cfg)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr)")

	rootCmd.AddCommand(initCmd, searchCmd, checkCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(configFlag string) (*config.Config, error) {
	configPath, err := resolveConfigPath(configFlag)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// loadSchedule reads the configured schedule and builds the appearance index.
func loadSchedule(cfg *config.Config) ([]schedule.Appearance, error) {
	var (
		raw []schedule.RawGame
		err error
	)
	switch strings.ToLower(cfg.Schedule.Format) {
	case "html":
		raw, err = htmltable.ReadFile(cfg.Schedule.Path)
	default:
		raw, err = excel.ReadSchedule(cfg.Schedule)
	}
	if err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}

	apps, err := schedule.BuildIndex(raw)
	if err != nil {
		return nil, fmt.Errorf("indexing schedule: %w", err)
	}
	return apps, nil
}

// loadDistances returns nil when no distance table is configured.
func loadDistances(cfg *config.Config) (*route.Distances, error) {
	if cfg.Distances.Path == "" {
		return nil, nil
	}
	d, err := excel.ReadDistances(cfg.Distances)
	if err != nil {
		return nil, fmt.Errorf("reading distances: %w", err)
	}
	return d, nil
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

func runSearch(cfg *config.Config, c itinerary.Constraints, show int, outputPath string) error {
	apps, err := loadSchedule(cfg)
	if err != nil {
		return err
	}
	distances, err := loadDistances(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Searching %d games for %s over %d days...\n",
		len(apps)/2, strings.Join(c.Teams, ", "), c.Span())

	results, err := itinerary.Find(apps, c)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("⚠ No itineraries found. Try loosening filters.")
		return nil
	}
	fmt.Printf("✓ Found %d possible itineraries\n", len(results))

	if show < 1 || show > len(results) {
		return fmt.Errorf("--show %d is not between 1 and %d", show, len(results))
	}
	printItinerary(show, results[show-1], distances)

	if outputPath != "" {
		f, err := excel.Generate(results, distances)
		if err != nil {
			return fmt.Errorf("generating Excel: %w", err)
		}
		if err := f.SaveAs(outputPath); err != nil {
			return fmt.Errorf("saving file: %w", err)
		}
		fmt.Printf("\n✓ Itineraries saved to %s\n", outputPath)
	}
	return nil
}

func printItinerary(n int, it itinerary.Itinerary, distances *route.Distances) {
	fmt.Printf("\nItinerary %d: %s to %s\n", n, it.Start.Format("Mon 01/02"), it.End.Format("Mon 01/02"))
	fmt.Printf("  %-10s %-4s %-15s %-15s %-5s %-30s %s\n", "Date", "Day", "Team", "Opponent", "H/A", "Stadium", "Time")
	for _, g := range it.ByDate() {
		fmt.Printf("  %-10s %-4s %-15s %-15s %-5s %-30s %s\n",
			g.Date.Format("01/02/2006"), g.Date.Format("Mon"), g.Team, g.Opponent,
			g.Location, g.Venue, schedule.FormatLocalTime(g.LocalTime))
	}

	if distances == nil {
		return
	}
	legs := route.Plan(it, distances)
	fmt.Printf("\nTotal distance: %.0f miles\n", route.Total(legs))
	for _, l := range legs {
		fmt.Printf("  %s\n", l)
	}
}

func runCheck(c itinerary.Constraints, path string) error {
	violations, err := validator.Validate(c, path)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errors := 0
	warnings := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("✗ %s\n", v.Message)
		case "warning":
			warnings++
			fmt.Printf("⚠ %s\n", v.Message)
		}
	}

	fmt.Printf("\nCheck complete: %d errors, %d warnings\n", errors, warnings)
	if errors > 0 {
		return fmt.Errorf("%d itinerary violations found", errors)
	}
	return nil
}

func runServe(cfg *config.Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	apps, err := loadSchedule(cfg)
	if err != nil {
		return err
	}
	distances, err := loadDistances(cfg)
	if err != nil {
		return err
	}
	logger.Info("schedule loaded",
		"games", len(apps)/2,
		"teams", len(schedule.Teams(apps)),
		"distance_pairs", distances.Len())

	srv := web.NewServer(apps, web.Options{
		Distances:  distances,
		Stadiums:   cfg.StadiumMap(),
		CacheSize:  cfg.Server.CacheSize,
		MaxSpanCap: cfg.Search.MaxSpanCap,
		Logger:     logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("Starting server...", "addr", cfg.Server.Addr)
	return httpServer.ListenAndServe()
}
