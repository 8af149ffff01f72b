package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/glabrego/pulse-cli/internal/render/caption"
	"github.com/glabrego/pulse-cli/internal/social"
	tuiview "github.com/glabrego/pulse-cli/internal/tui/view"
)

func newWhoamiCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.signIn(cmd.Context()); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), e.cfg.RequestTimeout)
			defer cancel()
			profile, err := e.service.Profile(ctx)
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), profile)
			return nil
		},
	}
}

func newFeedCmd(configPath *string) *cobra.Command {
	var (
		kind string
		page int
	)
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Print one page of the posts or reels feed",
		Long: `Fetch one feed page and print it. Fetched posts are also written to the
local cache that seeds the interactive interface on startup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			feedKind := social.FeedKind(kind)
			if !feedKind.Valid() {
				return fmt.Errorf("--kind must be posts or reels: %s", kind)
			}
			if page < 1 {
				return fmt.Errorf("--page must be at least 1: %d", page)
			}

			e, err := setup(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.signIn(cmd.Context()); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), e.cfg.RequestTimeout)
			defer cancel()
			feed, err := e.service.FetchPage(ctx, feedKind, page)
			if err != nil {
				return err
			}
			printFeed(cmd.OutOrStdout(), feed, time.Now())
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(social.KindPosts), "feed to fetch: posts or reels")
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	return cmd
}

func printProfile(w io.Writer, p social.Profile) {
	name := p.DisplayName
	if name == "" {
		name = p.Username
	}
	fmt.Fprintf(w, "%s (@%s)\n", name, p.Username)
	fmt.Fprintf(w, "followers: %d  following: %d\n", p.Followers, p.Following)
	if p.Bio != "" {
		fmt.Fprintln(w, caption.ToText(p.Bio))
	}
	if p.IsAdmin {
		fmt.Fprintln(w, "admin")
	}
}

func printFeed(w io.Writer, feed social.FeedPage, now time.Time) {
	if len(feed.Items) == 0 {
		fmt.Fprintln(w, "No posts.")
		return
	}
	for _, item := range feed.Items {
		text := caption.ToText(item.Caption)
		if text == "" {
			text = "(no caption)"
		}
		fmt.Fprintf(w, "%d\t@%s\t%d likes\t%s\t%s\n",
			item.ID, item.Author, item.Likes, tuiview.RelativeTimeLabel(now, item.CreatedAt), text)
	}
	if feed.HasNext {
		fmt.Fprintln(w, "more available")
	}
}
