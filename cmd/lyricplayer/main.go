package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/sukalov/lyricplayer/internal/bot"
	"github.com/sukalov/lyricplayer/internal/config"
	"github.com/sukalov/lyricplayer/internal/db"
	"github.com/sukalov/lyricplayer/internal/logger"
	"github.com/sukalov/lyricplayer/internal/lyrics"
	"github.com/sukalov/lyricplayer/internal/player"
	"github.com/sukalov/lyricplayer/internal/redis"
	"github.com/sukalov/lyricplayer/internal/songbook"
	"github.com/sukalov/lyricplayer/internal/utils"
)

type options struct {
	source    lyrics.Source
	save      bool
	list      bool
	title     string
	charDelay *time.Duration
	intro     *time.Duration
}

func main() {
	opts := parseFlags()

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		reportFatal(err)
		log.Fatalf("lyricplayer: %v", err)
	}
	logger.Wait()
}

// reportFatal forwards err to the log channel. Without a channel log.Fatalf
// alone prints it.
func reportFatal(err error) {
	if !logger.ChannelActive() {
		return
	}
	logger.Error(err.Error())
	logger.Wait()
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.source.SongID, "song", "", "song id from the songbook (default \""+songbook.DefaultSongID+"\")")
	flag.StringVar(&opts.source.URL, "url", "", "amdm.ru page to take lyrics from")
	flag.StringVar(&opts.source.File, "file", "", "lyric sheet file to play")
	flag.BoolVar(&opts.save, "save", false, "save the resolved song to the database")
	flag.BoolVar(&opts.list, "list", false, "list known songs and exit")
	flag.StringVar(&opts.title, "title", "", "banner text printed before the lyrics")
	flag.Func("char-delay", "seconds between characters", secondsFlag(&opts.charDelay))
	flag.Func("intro", "seconds to wait after the banner", secondsFlag(&opts.intro))

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "Example: %s -url https://amdm.ru/akkordi/kino/99/kukushka/ -char-delay 0.03\n", os.Args[0])
	}
	flag.Parse()

	return opts
}

func secondsFlag(dst **time.Duration) func(string) error {
	return func(s string) error {
		d, err := utils.ParseSeconds(s)
		if err != nil {
			return err
		}
		*dst = &d
		return nil
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyOptions(&cfg, opts)

	if cfg.LogChannel {
		initLogChannel()
	}

	var store *db.Store
	if cfg.DBEnabled {
		store, err = db.Open(ctx)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	var stats *redis.DBManager
	if cfg.RedisEnabled {
		stats, err = redis.NewDBManager()
		if err != nil {
			return err
		}
		defer stats.Close()
	}

	var songStore lyrics.SongStore
	if store != nil {
		songStore = store
	}
	service := lyrics.NewService(songStore, cfg.LinePause)

	if opts.list {
		return listSongs(ctx, out, store, stats, cfg.Timing)
	}

	song, err := service.Resolve(ctx, opts.source)
	if err != nil {
		return err
	}

	if err := song.Validate(); err != nil {
		return err
	}

	if opts.save {
		if store == nil {
			return fmt.Errorf("-save needs TURSO_DATABASE_URL and TURSO_AUTH_TOKEN")
		}
		if err := store.SaveSong(ctx, song); err != nil {
			return err
		}
	}

	title := cfg.Title
	if title == "" {
		title = songbook.Banner(song)
	}

	logger.Debug(fmt.Sprintf("playing %s (%d lines, about %s)",
		songbook.FormatSongName(song), len(song.Lines),
		(cfg.Timing.IntroPause + song.Duration(cfg.Timing.CharDelay)).Round(time.Millisecond)))

	if err := player.New(out).PlaySong(title, song, cfg.Timing); err != nil {
		return err
	}

	if stats != nil {
		if err := stats.RecordPlay(ctx, song.ID, time.Now()); err != nil {
			// stats are best effort
			logger.Error(err.Error())
		}
	}

	return nil
}

func applyOptions(cfg *config.Config, opts options) {
	if opts.title != "" {
		cfg.Title = opts.title
	}
	if opts.charDelay != nil {
		cfg.Timing.CharDelay = *opts.charDelay
	}
	if opts.intro != nil {
		cfg.Timing.IntroPause = *opts.intro
	}
}

func initLogChannel() {
	b, err := bot.FromEnv("lyricplayer")
	if err != nil {
		logger.Error(fmt.Sprintf("log channel disabled: %v", err))
		return
	}
	if err := logger.Init(b); err != nil {
		logger.Error(fmt.Sprintf("log channel disabled: %v", err))
	}
}

func listSongs(ctx context.Context, out io.Writer, store *db.Store, stats *redis.DBManager, timing player.Timing) error {
	songs := songbook.List()
	if store != nil {
		stored, err := store.ListSongs(ctx)
		if err != nil {
			return err
		}
		songs = mergeSongs(songs, stored)
	}

	var plays map[string]redis.PlayStats
	if stats != nil {
		var err error
		if plays, err = stats.GetPlayStats(ctx); err != nil {
			logger.Error(fmt.Sprintf("failed to load play stats: %v", err))
		}
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSONG\tLINES\tLENGTH\tPLAYS")
	for _, song := range songs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\n",
			song.ID,
			songbook.FormatSongName(song),
			len(song.Lines),
			(timing.IntroPause + song.Duration(timing.CharDelay)).Round(100*time.Millisecond),
			plays[song.ID].Count,
		)
	}
	return w.Flush()
}

// mergeSongs lets stored songs shadow built-in ones with the same ID.
func mergeSongs(builtin, stored []songbook.Song) []songbook.Song {
	seen := make(map[string]bool, len(stored))
	result := make([]songbook.Song, 0, len(builtin)+len(stored))
	for _, song := range stored {
		seen[song.ID] = true
		result = append(result, song)
	}
	for _, song := range builtin {
		if !seen[song.ID] {
			result = append(result, song)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
