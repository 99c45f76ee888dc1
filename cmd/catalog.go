package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yhkl-dev/soniferous/collection"
	"github.com/yhkl-dev/soniferous/domain"
	"github.com/yhkl-dev/soniferous/library"
)

// withCatalog runs fn with a catalog built from the configuration. Log
// records go to stderr as well as the log file.
func withCatalog(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, c library.Catalog) error) error {
	env, err := setup(cmd.Context(), opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.close()
	return fn(cmd.Context(), env.catalog)
}

func newSongsCmd(opts *rootOptions) *cobra.Command {
	var artistID, albumID string
	cmd := &cobra.Command{
		Use:   "songs",
		Short: "List songs, optionally of one artist or album",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, opts, func(ctx context.Context, c library.Catalog) error {
				var songs []domain.Song
				var err error
				switch {
				case artistID != "":
					songs, err = c.SongsByArtist(ctx, domain.ArtistID(artistID))
				case albumID != "":
					songs, err = c.SongsByAlbum(ctx, domain.AlbumID(albumID))
				default:
					songs, err = c.Songs(ctx)
				}
				if err != nil {
					return err
				}
				return printSongs(cmd.OutOrStdout(), songs)
			})
		},
	}
	cmd.Flags().StringVar(&artistID, "artist", "", "only songs of this artist id")
	cmd.Flags().StringVar(&albumID, "album", "", "only songs of this album id")
	cmd.MarkFlagsMutuallyExclusive("artist", "album")
	return cmd
}

func newAlbumsCmd(opts *rootOptions) *cobra.Command {
	var artistID string
	cmd := &cobra.Command{
		Use:   "albums",
		Short: "List albums, optionally of one artist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, opts, func(ctx context.Context, c library.Catalog) error {
				var albums []domain.Album
				var err error
				if artistID != "" {
					albums, err = c.AlbumsByArtist(ctx, domain.ArtistID(artistID))
				} else {
					albums, err = c.Albums(ctx)
				}
				if err != nil {
					return err
				}
				collection.SortAlbums(albums)

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tALBUM\tARTIST")
				for _, a := range albums {
					fmt.Fprintf(w, "%s\t%s\t%s\n", a.ID, a.Title, a.Artist)
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&artistID, "artist", "", "only albums of this artist id")
	return cmd
}

func newArtistsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "artists",
		Short: "List artists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, opts, func(ctx context.Context, c library.Catalog) error {
				artists, err := c.Artists(ctx)
				if err != nil {
					return err
				}
				collection.SortArtists(artists)

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tARTIST")
				for _, a := range artists {
					fmt.Fprintf(w, "%s\t%s\n", a.ID, a.Name)
				}
				return w.Flush()
			})
		},
	}
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search TEXT",
		Short: "Search songs on the server by title, album or artist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, opts, func(ctx context.Context, c library.Catalog) error {
				songs, err := c.Search(ctx, args[0])
				if err != nil {
					return err
				}
				return printSongs(cmd.OutOrStdout(), songs)
			})
		},
	}
}

func newURLCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "url SONG_ID",
		Short: "Print the audio resource URL of a song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, opts, func(_ context.Context, c library.Catalog) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), c.AudioURL(domain.SongID(args[0])))
				return err
			})
		},
	}
}

func newPingCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, opts, func(ctx context.Context, c library.Catalog) error {
				if err := c.Ping(ctx); err != nil {
					return fmt.Errorf("server unreachable: %w", err)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return err
			})
		},
	}
}

func printSongs(out io.Writer, songs []domain.Song) error {
	collection.SortSongs(songs)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tARTIST\tALBUM\t#\tTITLE\tTIME")
	for _, s := range songs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n", s.ID, s.Artist, s.Album, s.TrackNumber, s.Title, s.Duration)
	}
	return w.Flush()
}
