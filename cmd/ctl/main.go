// Package main provides the control CLI entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	apiconnect "github.com/osa030/musicbox/internal/api/connect"
	"github.com/osa030/musicbox/internal/api/transportv1"
)

var (
	app    = kingpin.New("musicbox-ctl", "musicbox control client")
	server = app.Flag("server", "Server address").Default("http://localhost:8080").String()
	token  = app.Flag("token", "Access token (or set MUSICBOX_TOKEN env)").Envar("MUSICBOX_TOKEN").String()

	// status command
	statusCmd = app.Command("status", "Get playback status")

	// queue command
	queueCmd = app.Command("queue", "Show the play queue")

	// browse command
	browseCmd     = app.Command("browse", "List the children of a media id")
	browseMediaID = browseCmd.Arg("media-id", "Media ID").Default("__ROOT__").String()

	// art command
	artCmd     = app.Command("art", "Save the artwork of a track")
	artMusicID = artCmd.Arg("music-id", "Music ID").Required().String()
	artOutput  = artCmd.Flag("output", "Output file").Short('o').Required().String()
	artIcon    = artCmd.Flag("icon", "Save the icon instead of the full size art").Bool()

	// transport commands
	playCmd  = app.Command("play", "Start or resume playback")
	pauseCmd = app.Command("pause", "Pause playback")
	stopCmd  = app.Command("stop", "Stop playback")
	nextCmd  = app.Command("next", "Skip to the next track")
	prevCmd  = app.Command("prev", "Skip to the previous track").Alias("previous")

	// seek command
	seekCmd      = app.Command("seek", "Seek within the current track")
	seekPosition = seekCmd.Arg("position", "Position (e.g. 1m30s)").Required().Duration()

	// play-id command
	playIDCmd     = app.Command("play-id", "Play a media id")
	playIDMediaID = playIDCmd.Arg("media-id", "Media ID (e.g. 'music1|__BY_GENRE__/Rock')").Required().String()

	// search command
	searchCmd    = app.Command("search", "Play the results of a search")
	searchQuery  = searchCmd.Arg("query", "Search query (empty plays random music)").String()
	searchFocus  = searchCmd.Flag("focus", "Search focus").Enum("", "artist", "album", "genre", "song")
	searchArtist = searchCmd.Flag("artist", "Artist").String()
	searchAlbum  = searchCmd.Flag("album", "Album").String()
	searchGenre  = searchCmd.Flag("genre", "Genre").String()
	searchSong   = searchCmd.Flag("song", "Song title").String()

	// skip-to command
	skipToCmd     = app.Command("skip-to", "Play a queue item")
	skipToQueueID = skipToCmd.Arg("queue-id", "Queue item ID").Required().Int64()

	// rate command
	rateCmd      = app.Command("rate", "Set the favorite mark of the current track")
	rateFavorite = rateCmd.Arg("favorite", "true or false").Required().Bool()

	// favorite command
	favoriteCmd = app.Command("favorite", "Toggle the favorite mark of the current track")

	// subscribe command
	subscribeCmd = app.Command("subscribe", "Subscribe to notifications")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Create client
	client := transportv1.NewTransportServiceClient(
		http.DefaultClient,
		*server,
		connect.WithInterceptors(apiconnect.NewTokenClientInterceptor(*token)),
	)

	ctx := context.Background()

	// Execute command
	switch command {
	case statusCmd.FullCommand():
		status(ctx, client)
	case queueCmd.FullCommand():
		showQueue(ctx, client)
	case browseCmd.FullCommand():
		browse(ctx, client, *browseMediaID)
	case artCmd.FullCommand():
		saveArt(ctx, client, *artMusicID, *artOutput, *artIcon)
	case playCmd.FullCommand():
		printResult(client.Play(ctx, connect.NewRequest(&transportv1.CommandRequest{})))
	case pauseCmd.FullCommand():
		printResult(client.Pause(ctx, connect.NewRequest(&transportv1.CommandRequest{})))
	case stopCmd.FullCommand():
		printResult(client.Stop(ctx, connect.NewRequest(&transportv1.CommandRequest{})))
	case nextCmd.FullCommand():
		printResult(client.SkipToNext(ctx, connect.NewRequest(&transportv1.CommandRequest{})))
	case prevCmd.FullCommand():
		printResult(client.SkipToPrevious(ctx, connect.NewRequest(&transportv1.CommandRequest{})))
	case seekCmd.FullCommand():
		printResult(client.SeekTo(ctx, connect.NewRequest(&transportv1.SeekToRequest{
			PositionMs: seekPosition.Milliseconds(),
		})))
	case playIDCmd.FullCommand():
		printResult(client.PlayFromMediaID(ctx, connect.NewRequest(&transportv1.PlayFromMediaIDRequest{
			MediaID: *playIDMediaID,
		})))
	case searchCmd.FullCommand():
		printResult(client.PlayFromSearch(ctx, connect.NewRequest(&transportv1.PlayFromSearchRequest{
			Query:  *searchQuery,
			Focus:  *searchFocus,
			Artist: *searchArtist,
			Album:  *searchAlbum,
			Genre:  *searchGenre,
			Song:   *searchSong,
		})))
	case skipToCmd.FullCommand():
		printResult(client.SkipToQueueItem(ctx, connect.NewRequest(&transportv1.SkipToQueueItemRequest{
			QueueID: *skipToQueueID,
		})))
	case rateCmd.FullCommand():
		printResult(client.SetRating(ctx, connect.NewRequest(&transportv1.SetRatingRequest{
			Favorite: *rateFavorite,
		})))
	case favoriteCmd.FullCommand():
		printResult(client.ToggleFavorite(ctx, connect.NewRequest(&transportv1.CommandRequest{})))
	case subscribeCmd.FullCommand():
		subscribe(ctx, client)
	}
}

func printResult(resp *connect.Response[transportv1.CommandResponse], err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if resp.Msg.Success {
		fmt.Printf("Success: %s\n", resp.Msg.Message)
	} else {
		fmt.Printf("Rejected [%s]: %s\n", resp.Msg.Code, resp.Msg.Message)
		os.Exit(2)
	}
}

func status(ctx context.Context, client transportv1.TransportServiceClient) {
	resp, err := client.GetStatus(ctx, connect.NewRequest(&transportv1.GetStatusRequest{}))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	s := resp.Msg
	fmt.Println("\n=== CURRENT STATUS ===")
	fmt.Printf("Session ID: %s\n", s.SessionID)
	fmt.Printf("Phase: %s\n", s.Phase)
	fmt.Printf("Catalog: %s\n", s.CatalogState)
	if !s.StartedAt.IsZero() {
		fmt.Printf("Started At: %s\n", s.StartedAt.Format(time.RFC3339))
	}
	fmt.Printf("Queue: %s (%d/%d)\n", s.QueueTitle, s.QueueIndex+1, s.QueueSize)

	if s.Playback != nil {
		printPlaybackState(s.Playback)
	}

	if s.Track != nil {
		printTrack(s.Track)
	} else {
		fmt.Println("\nNo track selected")
	}
	fmt.Println()
}

func showQueue(ctx context.Context, client transportv1.TransportServiceClient) {
	resp, err := client.GetQueue(ctx, connect.NewRequest(&transportv1.GetQueueRequest{}))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n=== %s ===\n", resp.Msg.Title)
	if len(resp.Msg.Items) == 0 {
		fmt.Println("Queue is empty")
		return
	}
	for i, item := range resp.Msg.Items {
		marker := " "
		if int32(i) == resp.Msg.CurrentIndex {
			marker = ">"
		}
		fmt.Printf("%s [%d] %s - %s (%s)\n", marker, item.QueueID, item.Title, item.Subtitle, item.MediaID)
	}
	if len(resp.Msg.Upcoming) > 0 {
		next := resp.Msg.Upcoming[0]
		fmt.Printf("\nUp next: %s - %s (%d more)\n", next.Title, next.Subtitle, len(resp.Msg.Upcoming)-1)
	}
	fmt.Println()
}

func saveArt(ctx context.Context, client transportv1.TransportServiceClient, musicID, output string, icon bool) {
	resp, err := client.GetArt(ctx, connect.NewRequest(&transportv1.GetArtRequest{MusicID: musicID}))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	data := resp.Msg.Art
	if icon {
		data = resp.Msg.Icon
	}
	if len(data) == 0 {
		fmt.Printf("No artwork for %s\n", musicID)
		os.Exit(2)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved %d bytes to %s\n", len(data), output)
}

func browse(ctx context.Context, client transportv1.TransportServiceClient, mediaID string) {
	resp, err := client.Browse(ctx, connect.NewRequest(&transportv1.BrowseRequest{MediaID: mediaID}))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if len(resp.Msg.Items) == 0 {
		fmt.Printf("Nothing under %s\n", mediaID)
		return
	}
	for _, item := range resp.Msg.Items {
		kind := "play"
		if item.Browsable {
			kind = "dir "
		}
		fmt.Printf("  %s  %-40s %s\n", kind, item.Title, item.MediaID)
	}
}

func subscribe(ctx context.Context, client transportv1.TransportServiceClient) {
	stream, err := client.Subscribe(ctx, connect.NewRequest(&transportv1.SubscribeRequest{}))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Subscribed to notifications. Press Ctrl+C to exit.")

	// Handle shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nUnsubscribing...")
		os.Exit(0)
	}()

	// Receive notifications
	for stream.Receive() {
		printNotification(stream.Msg())
	}

	if err := stream.Err(); err != nil {
		fmt.Printf("Stream error: %v\n", err)
	}
}

func printNotification(n *transportv1.Notification) {
	// Print sequence number
	fmt.Printf("\n[Sequence: %d] ", n.SequenceNo)

	switch n.Type {
	case "state_changed":
		fmt.Println("=== STATE CHANGED ===")
		if n.State != nil {
			printPlaybackState(n.State)
		}
	case "metadata_changed":
		fmt.Println("=== TRACK CHANGED ===")
		if n.Track != nil {
			printTrack(n.Track)
		}
	case "metadata_error":
		fmt.Println("=== TRACK UNAVAILABLE ===")
	case "queue_updated":
		fmt.Printf("=== QUEUE UPDATED: %s (%d items) ===\n", n.QueueTitle, len(n.Queue))
		for _, item := range n.Queue {
			fmt.Printf("  [%d] %s - %s\n", item.QueueID, item.Title, item.Subtitle)
		}
	case "queue_index_updated":
		fmt.Printf("=== QUEUE POSITION: %d ===\n", n.QueueIndex)
	case "playback_stopped":
		fmt.Println("=== PLAYBACK STOPPED ===")
	case "error":
		fmt.Printf("=== ERROR [%s]: %s ===\n", n.ErrorCode, n.Message)
	default:
		fmt.Printf("=== UNKNOWN EVENT (%s) ===\n", n.Type)
	}
}

func printPlaybackState(ps *transportv1.PlaybackState) {
	fmt.Println("\nPlayback:")
	fmt.Printf("  State: %s\n", formatState(ps.State))
	fmt.Printf("  Position: %s\n", time.Duration(ps.PositionMs)*time.Millisecond)
	fmt.Printf("  Queue Item: %d\n", ps.ActiveQueueItemID)
	fmt.Printf("  Favorite: %v\n", ps.Favorite)
	fmt.Printf("  Actions: %v\n", ps.Actions)
	if ps.ErrorMessage != "" {
		fmt.Printf("  Error: %s\n", ps.ErrorMessage)
	}
}

func printTrack(t *transportv1.TrackInfo) {
	fmt.Println("\nTrack:")
	fmt.Printf("  ID: %s\n", t.ID)
	fmt.Printf("  Title: %s\n", t.Title)
	fmt.Printf("  Artist: %s\n", t.Artist)
	fmt.Printf("  Album: %s\n", t.Album)
	fmt.Printf("  Genre: %s\n", t.Genre)
	if t.DisplayNumber != "" {
		fmt.Printf("  Track: %s\n", t.DisplayNumber)
	}
	fmt.Printf("  Duration: %s\n", time.Duration(t.DurationMs)*time.Millisecond)
	fmt.Printf("  Source: %s\n", t.Source)
}

func formatState(state string) string {
	switch state {
	case "playing":
		return "▶️  Playing"
	case "paused":
		return "⏸  Paused"
	case "stopped":
		return "⏹  Stopped"
	case "buffering":
		return "⏳ Buffering"
	case "error":
		return "❌ Error"
	default:
		return "❓ " + state
	}
}
