package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/metsearch/collection-client/pkg/catalog"
	"github.com/metsearch/collection-client/pkg/scheduler"
)

// Search flags.
var (
	flagTitle           bool
	flagArtistOrCulture bool
	flagMedium          string
	flagDepartment      int
	flagGeoLocation     string
	flagHasImages       bool

	flagPageSize    int
	flagPages       int
	flagPeriod      int
	flagTick        time.Duration
	flagConcurrency int
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search the catalog and stream object metadata",
	Long: `Search the catalog and stream object metadata.

Results arrive progressively: the first page of documents is fetched
immediately, and further pages follow on the pacing cadence the service
tolerates. Objects whose fetch fails are omitted from the table.

Examples:
  metsearch search sunflower
  metsearch search cat --department 6 --has-images
  metsearch search "van gogh" --artist-or-culture --pages 3`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&flagTitle, "title", false, "match the term against titles only")
	searchCmd.Flags().BoolVar(&flagArtistOrCulture, "artist-or-culture", false, "match the term against artist and culture fields")
	searchCmd.Flags().StringVar(&flagMedium, "medium", "", "filter by medium, e.g. Paintings")
	searchCmd.Flags().IntVar(&flagDepartment, "department", 0, "filter by department ID (see 'metsearch departments')")
	searchCmd.Flags().StringVar(&flagGeoLocation, "geo-location", "", "filter by geographic location, e.g. France")
	searchCmd.Flags().BoolVar(&flagHasImages, "has-images", false, "only objects with images")

	searchCmd.Flags().IntVar(&flagPageSize, "page-size", 80, "documents fetched per page")
	searchCmd.Flags().IntVar(&flagPages, "pages", 1, "pages to fetch before exiting")
	searchCmd.Flags().IntVar(&flagPeriod, "period", 60, "pacing cool-down between pages, in seconds")
	searchCmd.Flags().DurationVar(&flagTick, "tick", 1*time.Second, "pacing tick length")
	searchCmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "cap on parallel document fetches (0 = one page burst)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	term := args[0]

	client, err := newClient()
	if err != nil {
		return err
	}

	searcher := catalog.ScopedSearcher{
		Client: client,
		Filters: catalog.SearchQuery{
			Title:           flagTitle,
			ArtistOrCulture: flagArtistOrCulture,
			Medium:          flagMedium,
			DepartmentID:    flagDepartment,
			GeoLocation:     flagGeoLocation,
			HasImages:       flagHasImages,
		},
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Batch completions drive the paging loop below; the buffer keeps
	// the scheduler loop from ever blocking on a slow consumer.
	batchDone := make(chan int, 16)

	// Assigned below; the callbacks only fire once the scheduler runs.
	var sched *scheduler.Scheduler

	cfg := scheduler.DefaultConfig(searcher, client)
	cfg.PageSize = flagPageSize
	cfg.PacingPeriod = flagPeriod
	cfg.TickInterval = flagTick
	cfg.MaxConcurrent = flagConcurrency
	cfg.OnDocumentUpdated = func(url string) {
		if doc, ok := sched.Document(url); ok {
			fmt.Println(formatRow(doc))
		}
	}
	cfg.OnBatchComplete = func(key int) {
		select {
		case batchDone <- key:
		default:
		}
	}
	cfg.OnPacingTick = func(remaining int) {
		fmt.Fprintf(os.Stderr, "\rnext page in %2ds ", remaining)
		if remaining == 0 {
			fmt.Fprint(os.Stderr, "\r                 \r")
		}
	}

	sched, err = scheduler.New(cfg)
	if err != nil {
		return err
	}

	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Close()

	total, err := sched.StartSearch(ctx, term)
	if err != nil {
		return err
	}
	if total == 0 {
		printWarning("No results found for %q.", term)
		return nil
	}

	printSuccess("%d objects match %q", total, term)
	fmt.Println(colorize(colorBold, formatHeader()))

	for page := 1; ; page++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-batchDone:
		}

		if page >= flagPages || !sched.CanFetchMore() {
			break
		}
		if err := sched.RequestMore(flagPageSize); err != nil {
			return err
		}
	}

	resolved, failed := sched.Counts()
	printSuccess("%d documents fetched, %d unavailable, %d not yet requested",
		resolved, failed, total-sched.Cursor()-1)
	return nil
}
