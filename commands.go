package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Eursukkul/events-dashboard/config"
	"github.com/Eursukkul/events-dashboard/internal/dashboard"
	"github.com/Eursukkul/events-dashboard/internal/dto"
	"github.com/Eursukkul/events-dashboard/internal/models"
	"github.com/Eursukkul/events-dashboard/pkg/rabbitmq"
	"github.com/urfave/cli/v2"
)

// editableFields are the form fields the create and update commands accept,
// in display order.
var editableFields = []string{
	"title", "event_link", "start_datetime", "end_datetime", "organizer",
	"market", "industry", "attending", "note", "color", "valid",
}

func apiClient(c *cli.Context) *dashboard.Client {
	cfg := config.Load()
	url := c.String("url")
	if url == "" {
		url = cfg.DashboardURL
	}
	return dashboard.NewClient(url, cfg.BackendTimeout)
}

func idFlag() cli.Flag {
	return &cli.Int64Flag{Name: "id", Usage: "event id", Required: true}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Show the event list with the dashboard's filters and row colours.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Usage: "free-text search"},
			&cli.StringFlag{Name: "sort-by", Value: "start_datetime"},
			&cli.StringFlag{Name: "sort-order", Value: "asc"},
			&cli.StringFlag{Name: "market", Value: dashboard.AllValues},
			&cli.StringFlag{Name: "industry", Value: dashboard.AllValues},
			&cli.StringFlag{Name: "organizer", Value: dashboard.AllValues},
			&cli.StringFlag{Name: "time", Value: string(dashboard.AllEvents), Usage: "all-events, upcoming-events or past-events"},
			&cli.Int64Flag{Name: "select", Usage: "event id to highlight"},
		},
		Action: func(c *cli.Context) error {
			filters := dashboard.Filters{
				SortBy:    c.String("sort-by"),
				SortOrder: c.String("sort-order"),
				Market:    c.String("market"),
				Industry:  c.String("industry"),
				Organizer: c.String("organizer"),
				Time:      dashboard.TimeFilter(c.String("time")),
			}
			if err := filters.Validate(); err != nil {
				return err
			}

			dash := dashboard.New(apiClient(c),
				dashboard.WithFilters(filters),
				dashboard.WithSearch(c.String("search")),
			)
			defer dash.Close()

			if c.IsSet("select") {
				id := c.Int64("select")
				dash.List.SetSelectedID(&id)
			}
			if err := dash.Start(c.Context); err != nil {
				return err
			}

			printRows(c.App.Writer, dash.List.Rows())
			return nil
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print one event.",
		Flags: []cli.Flag{idFlag()},
		Action: func(c *cli.Context) error {
			ev, err := apiClient(c).GetEvent(c.Context, c.Int64("id"))
			if err != nil {
				return err
			}
			printEvent(c.App.Writer, *ev)
			return nil
		},
	}
}

func createCommand() *cli.Command {
	flags := make([]cli.Flag, 0, len(editableFields))
	for _, name := range editableFields {
		flags = append(flags, &cli.StringFlag{Name: flagName(name)})
	}

	return &cli.Command{
		Name:  "create",
		Usage: "Add an event. Title, link, start, end, organizer, market and industry are required.",
		Flags: flags,
		Action: func(c *cli.Context) error {
			form := dashboard.NewCreateView(apiClient(c), nil)
			for _, name := range editableFields {
				if c.IsSet(flagName(name)) {
					if err := form.SetField(name, c.String(flagName(name))); err != nil {
						return err
					}
				}
			}

			ev, err := form.Submit(c.Context)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "created event %d\n", ev.ID)
			return nil
		},
	}
}

func updateCommand() *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "Edit an event and save the whole record.",
		Flags: []cli.Flag{
			idFlag(),
			&cli.StringSliceFlag{Name: "set", Usage: "field=value, repeatable"},
		},
		Action: func(c *cli.Context) error {
			client := apiClient(c)
			ev, err := client.GetEvent(c.Context, c.Int64("id"))
			if err != nil {
				return err
			}

			form := dashboard.NewDetailView(client, nil, nil)
			form.Reset(ev)
			for _, kv := range c.StringSlice("set") {
				name, value, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("--set %q: expected field=value", kv)
				}
				if err := form.SetField(name, value); err != nil {
					return err
				}
			}

			updated, err := form.Submit(c.Context)
			if err != nil {
				return err
			}
			printEvent(c.App.Writer, *updated)
			return nil
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Remove an event.",
		Flags: []cli.Flag{idFlag()},
		Action: func(c *cli.Context) error {
			client := apiClient(c)
			ev, err := client.GetEvent(c.Context, c.Int64("id"))
			if err != nil {
				return err
			}

			form := dashboard.NewDetailView(client, nil, nil)
			form.Reset(ev)
			if err := form.Delete(c.Context); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "deleted event %d (%s)\n", ev.ID, ev.Title)
			return nil
		},
	}
}

func refreshCommand() *cli.Command {
	return &cli.Command{
		Name:  "refresh",
		Usage: "Re-scrape source sites one at a time, stopping at the first failure.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "site", Value: dashboard.AllValues, Usage: "site name or \"all\""},
			&cli.BoolFlag{Name: "queue", Usage: "publish a refresh request to RabbitMQ instead of calling the proxy"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("queue") {
				return queueRefresh(c)
			}

			out := c.App.Writer
			sites := dashboard.SitesFor(c.String("site"))
			report := dashboard.RefreshSites(c.Context, apiClient(c), sites, func(site string) {
				fmt.Fprintf(out, "refreshed %s\n", site)
			})
			if !report.OK() {
				return fmt.Errorf("failed on %s after %d site(s): %w", report.FailedSite, len(report.Refreshed), report.Err)
			}
			if len(report.Refreshed) == 0 {
				fmt.Fprintln(out, "no sites refreshed")
			}
			return nil
		},
	}
}

func queueRefresh(c *cli.Context) error {
	cfg := config.Load()
	if !cfg.MessagingEnabled() {
		return errors.New("RABBITMQ_URL is not set")
	}

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		return err
	}
	defer publisher.Close()

	req := dto.RefreshRequest{Websites: dashboard.SitesFor(c.String("site"))}
	if err := publisher.Publish(rabbitmq.RoutingRefreshRequested, req); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "queued refresh of %d site(s)\n", len(req.Websites))
	return nil
}

func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

func printRows(w io.Writer, rows []dashboard.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "no events")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tWEEKDAY\tSTART\tEND\tORGANIZER\tTITLE\tINDUSTRY\tMARKET\tATTENDING\tCOLOR")
	for _, r := range rows {
		marker := ""
		if r.Selected {
			marker = "*"
		}
		ev := r.Event
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			marker, ev.ID, weekday(ev), formatTime(ev.StartDatetime), formatTime(ev.EndDatetime),
			ev.Organizer, ev.Title, ev.Industry, ev.Market, deref(ev.Attending), r.Color)
	}
	tw.Flush()
}

func printEvent(w io.Writer, ev models.Event) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "id\t%d\n", ev.ID)
	fmt.Fprintf(tw, "title\t%s\n", ev.Title)
	fmt.Fprintf(tw, "event_link\t%s\n", ev.EventLink)
	fmt.Fprintf(tw, "start_datetime\t%s\n", formatTime(ev.StartDatetime))
	fmt.Fprintf(tw, "end_datetime\t%s\n", formatTime(ev.EndDatetime))
	fmt.Fprintf(tw, "organizer\t%s\n", ev.Organizer)
	fmt.Fprintf(tw, "market\t%s\n", ev.Market)
	fmt.Fprintf(tw, "industry\t%s\n", ev.Industry)
	fmt.Fprintf(tw, "attending\t%s\n", deref(ev.Attending))
	fmt.Fprintf(tw, "note\t%s\n", deref(ev.Note))
	fmt.Fprintf(tw, "color\t%s\n", colorName(ev.Color))
	fmt.Fprintf(tw, "valid\t%t\n", ev.Valid)
	fmt.Fprintf(tw, "created_at\t%s\n", ev.CreatedAt)
	fmt.Fprintf(tw, "updated_at\t%s\n", ev.UpdatedAt)
	tw.Flush()
}

func weekday(ev models.Event) string {
	if t, ok := ev.Start(); ok {
		return t.Weekday().String()
	}
	return ""
}

func formatTime(s string) string {
	t, err := models.ParseTimestamp(s)
	if err != nil {
		return s
	}
	return t.Format(time.DateTime)
}

func colorName(c *string) string {
	if c == nil {
		return "No color"
	}
	for _, p := range models.Palette {
		if p.Value == *c {
			return p.Name
		}
	}
	return *c
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
