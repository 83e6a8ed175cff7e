// Command airmee is a thin CLI over the SDK, handy for poking the sandbox
// API and as a usage example.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/airmee/sdk-go/airmee"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var version = "1.0.0"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "airmee",
	Short:   "Airmee delivery API client",
	Version: version,
}

var intervalsCmd = &cobra.Command{
	Use:   "intervals",
	Short: "List delivery schedules offered for an address",
	RunE:  runIntervals,
}

var thresholdCmd = &cobra.Command{
	Use:   "threshold",
	Short: "Show the maximum package dimensions accepted at a place",
	RunE:  runThreshold,
}

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Request a delivery for a single item",
	RunE:  runRequest,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Fetch schedules and threshold for a place in one go",
	RunE:  runInfo,
}

var flags struct {
	placeID string
	zipCode string
	country string
	street  string
	city    string

	ecommID     string
	name        string
	phone       string
	phoneRegion string
	email       string

	length   int
	width    int
	height   int
	weight   int
	price    int64
	currency string
	itemName string
	quantity int

	pickupStart  int64
	pickupEnd    int64
	dropoffStart int64
	dropoffEnd   int64
}

func init() {
	for _, cmd := range []*cobra.Command{intervalsCmd, thresholdCmd, requestCmd, infoCmd} {
		cmd.Flags().StringVar(&flags.placeID, "place", "", "provider place id")
		_ = cmd.MarkFlagRequired("place")
	}
	for _, cmd := range []*cobra.Command{intervalsCmd, requestCmd, infoCmd} {
		cmd.Flags().StringVar(&flags.zipCode, "zip", "", "zip code")
		cmd.Flags().StringVar(&flags.country, "country", "", "ISO country code or English name")
		cmd.Flags().StringVar(&flags.street, "street", "", "street and number")
		cmd.Flags().StringVar(&flags.city, "city", "", "city")
		_ = cmd.MarkFlagRequired("zip")
		_ = cmd.MarkFlagRequired("country")
	}

	requestCmd.Flags().StringVar(&flags.ecommID, "ecomm-id", "", "caller-side order id")
	requestCmd.Flags().StringVar(&flags.name, "name", "", "recipient name")
	requestCmd.Flags().StringVar(&flags.phone, "phone", "", "recipient phone number")
	requestCmd.Flags().StringVar(&flags.phoneRegion, "phone-region", "SE", "default region for phone parsing")
	requestCmd.Flags().StringVar(&flags.email, "email", "", "recipient email")
	requestCmd.Flags().IntVar(&flags.length, "length", 0, "item length in cm")
	requestCmd.Flags().IntVar(&flags.width, "width", 0, "item width in cm")
	requestCmd.Flags().IntVar(&flags.height, "height", 0, "item height in cm")
	requestCmd.Flags().IntVar(&flags.weight, "weight", 0, "item weight in g")
	requestCmd.Flags().Int64Var(&flags.price, "price", 0, "unit price in minor units")
	requestCmd.Flags().StringVar(&flags.currency, "currency", "SEK", "unit price currency")
	requestCmd.Flags().StringVar(&flags.itemName, "item-name", "", "item name")
	requestCmd.Flags().IntVar(&flags.quantity, "quantity", 1, "item quantity")
	requestCmd.Flags().Int64Var(&flags.pickupStart, "pickup-start", 0, "pickup window start (unix seconds)")
	requestCmd.Flags().Int64Var(&flags.pickupEnd, "pickup-end", 0, "pickup window end (unix seconds)")
	requestCmd.Flags().Int64Var(&flags.dropoffStart, "dropoff-start", 0, "dropoff window start (unix seconds)")
	requestCmd.Flags().Int64Var(&flags.dropoffEnd, "dropoff-end", 0, "dropoff window end (unix seconds)")
	for _, name := range []string{"ecomm-id", "name", "phone", "email", "street", "city",
		"length", "width", "height", "weight", "item-name",
		"pickup-start", "pickup-end", "dropoff-start", "dropoff-end"} {
		_ = requestCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(intervalsCmd, thresholdCmd, requestCmd, infoCmd)
}

func runIntervals(cmd *cobra.Command, args []string) error {
	client, shutdown, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer shutdown()

	address, err := flagAddress()
	if err != nil {
		return err
	}

	schedules, err := client.DeliveryIntervalsForAddress(cmd.Context(), flags.placeID, address)
	if err != nil {
		return err
	}

	printSchedules(schedules)
	return nil
}

func runThreshold(cmd *cobra.Command, args []string) error {
	client, shutdown, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer shutdown()

	item, err := client.ProductThresholdForPlace(cmd.Context(), flags.placeID)
	if err != nil {
		return err
	}

	printThreshold(item)
	return nil
}

func runRequest(cmd *cobra.Command, args []string) error {
	client, shutdown, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer shutdown()

	address, err := flagAddress()
	if err != nil {
		return err
	}
	recipient, err := flagRecipient()
	if err != nil {
		return err
	}
	item, err := flagItem()
	if err != nil {
		return err
	}
	pickup, err := airmee.NewTimeRange(flags.pickupStart, flags.pickupEnd, "")
	if err != nil {
		return fmt.Errorf("pickup interval: %w", err)
	}
	dropoff, err := airmee.NewTimeRange(flags.dropoffStart, flags.dropoffEnd, "")
	if err != nil {
		return fmt.Errorf("dropoff interval: %w", err)
	}

	order, err := client.RequestDelivery(cmd.Context(), flags.placeID, flags.ecommID,
		recipient, address, []airmee.Item{item}, pickup, dropoff)
	if err != nil {
		return err
	}

	fmt.Printf("order %s registered\ntracking: %s\n", order.ID(), order.TrackingURL())
	return nil
}

// runInfo fans out the two lookups concurrently; the SDK itself stays
// single-request-per-call, so the fan-out lives here with the caller.
func runInfo(cmd *cobra.Command, args []string) error {
	client, shutdown, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer shutdown()

	address, err := flagAddress()
	if err != nil {
		return err
	}

	var (
		schedules []airmee.Schedule
		threshold airmee.Item
	)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		schedules, err = client.DeliveryIntervalsForAddress(ctx, flags.placeID, address)
		return err
	})
	g.Go(func() error {
		var err error
		threshold, err = client.ProductThresholdForPlace(ctx, flags.placeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	printThreshold(threshold)
	printSchedules(schedules)
	return nil
}

func printSchedules(schedules []airmee.Schedule) {
	if len(schedules) == 0 {
		fmt.Println("no schedules available")
		return
	}
	for i, s := range schedules {
		fmt.Printf("schedule %d:\n", i+1)
		fmt.Printf("  pickup:  %s\n", formatRange(s.Pickup()))
		fmt.Printf("  dropoff: %s\n", formatRange(s.Dropoff()))
	}
}

func printThreshold(item airmee.Item) {
	fmt.Printf("max item: %dx%dx%d cm, %d g\n",
		item.Length(), item.Width(), item.Height(), item.Weight())
}

func formatRange(r airmee.TimeRange) string {
	if r.Formatted() != "" {
		return r.Formatted()
	}
	const layout = "2006-01-02 15:04"
	return r.Start().Format(layout) + " - " + r.End().Format(layout)
}
