// The agent is the owner-side companion to the EasyShare server: it holds
// the live directory capabilities for this session, registers folder
// references for later reconnection, scans folder structure, and keeps the
// server-side liveness timestamp fresh while a folder stays connected. In
// watch mode it plays the guest instead, polling a shared folder's
// connection status.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shivamgupta1319/EasyShare/internal/client"
	"github.com/shivamgupta1319/EasyShare/internal/common"
	"github.com/shivamgupta1319/EasyShare/internal/fsys"
	"github.com/shivamgupta1319/EasyShare/internal/handlecache"
	"github.com/shivamgupta1319/EasyShare/internal/ledger"
	"github.com/shivamgupta1319/EasyShare/internal/liveness"
	"github.com/shivamgupta1319/EasyShare/internal/models"
	"github.com/shivamgupta1319/EasyShare/internal/scanner"
	"github.com/shivamgupta1319/EasyShare/internal/utils"
)

// heartbeatInterval keeps assertions comfortably inside the freshness
// window: two beats fit in one window, so a single missed beat does not
// flip guests to disconnected.
const heartbeatInterval = 2 * time.Minute

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "share":
		err = runShare(ctx, os.Args[2:])
	case "reconnect":
		err = runReconnect(ctx, os.Args[2:])
	case "watch":
		err = runWatch(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		if errors.Is(err, common.ErrUserCancelled) {
			// A dismissed picker is a silent no-op.
			return
		}
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  agent share     -server URL -email E -password P -path DIR [-share-with a@b,c@d] [-ledger FILE]
  agent reconnect -server URL -email E -password P -path DIR -id FOLDER [-ledger FILE]
  agent watch     -server URL -email E -password P -id FOLDER`)
}

// commonFlags are shared by every mode.
type commonFlags struct {
	server   string
	email    string
	password string
	ledger   string
}

func bindCommon(fs *flag.FlagSet) *commonFlags {
	c := &commonFlags{}
	fs.StringVar(&c.server, "server", envOr("EASYSHARE_SERVER", "http://localhost:8080"), "server base URL")
	fs.StringVar(&c.email, "email", os.Getenv("EASYSHARE_EMAIL"), "account email")
	fs.StringVar(&c.password, "password", os.Getenv("EASYSHARE_PASSWORD"), "account password")
	fs.StringVar(&c.ledger, "ledger", envOr("EASYSHARE_LEDGER", defaultLedgerPath()), "folder reference ledger file")
	return c
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func defaultLedgerPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "easyshare-ledger.db"
	}
	return home + "/.easyshare/ledger.db"
}

func (c *commonFlags) login(ctx context.Context) (*client.Client, *client.Session, error) {
	if c.email == "" || c.password == "" {
		return nil, nil, fmt.Errorf("email and password are required")
	}
	api, err := client.New(client.Config{BaseURL: c.server})
	if err != nil {
		return nil, nil, err
	}
	session, err := api.Login(ctx, c.email, c.password)
	if err != nil {
		return nil, nil, fmt.Errorf("login: %w", err)
	}
	return api, session, nil
}

func runShare(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("share", flag.ExitOnError)
	cf := bindCommon(fs)
	path := fs.String("path", "", "directory to share")
	shareWith := fs.String("share-with", "", "comma-separated grantee emails")
	fs.Parse(args)

	if *path == "" {
		return fmt.Errorf("-path is required")
	}

	api, session, err := cf.login(ctx)
	if err != nil {
		return err
	}

	folderID := utils.NewFolderID()
	picker := &fsys.PathPicker{Default: *path}
	cap, err := picker.RequestDirectoryAccess(ctx, folderID)
	if err != nil {
		return err
	}

	refs := ledger.New(cf.ledger)
	if err := refs.Register(folderID, cap.Name(), session.ID); err != nil {
		// Degraded: the reconnect flow just won't remember this folder.
		log.Printf("ledger unavailable, continuing without folder memory: %v", err)
	}

	handles := handlecache.New()
	handles.Put(folderID, cap)

	structure := scanner.Scan(ctx, cap, scanner.Options{})
	rec, err := api.CreateFolder(ctx, folderID, cap.Name(), structure)
	if err != nil {
		return fmt.Errorf("register folder: %w", err)
	}
	log.Printf("Folder %q shared as %s", rec.Name, rec.ID)

	for _, email := range splitEmails(*shareWith) {
		if _, err := api.Share(ctx, rec.ID, email); err != nil {
			log.Printf("share with %s failed: %v", email, err)
			continue
		}
		log.Printf("Shared with %s", email)
	}

	return heartbeat(ctx, api, handles, rec.ID)
}

func runReconnect(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reconnect", flag.ExitOnError)
	cf := bindCommon(fs)
	path := fs.String("path", "", "directory to reconnect")
	folderID := fs.String("id", "", "folder record id")
	fs.Parse(args)

	if *path == "" || *folderID == "" {
		return fmt.Errorf("-path and -id are required")
	}

	api, session, err := cf.login(ctx)
	if err != nil {
		return err
	}

	refs := ledger.New(cf.ledger)
	if refs.Has(*folderID) {
		log.Printf("Reconnecting previously shared folder %s", *folderID)
	} else {
		log.Printf("No local reference for %s, treating as first-time grant", *folderID)
	}

	picker := &fsys.PathPicker{Paths: map[string]string{*folderID: *path}}
	cap, err := picker.RequestDirectoryAccess(ctx, *folderID)
	if err != nil {
		return err
	}

	if err := refs.Register(*folderID, cap.Name(), session.ID); err != nil {
		log.Printf("ledger unavailable, continuing without folder memory: %v", err)
	}

	handles := handlecache.New()
	handles.Put(*folderID, cap)

	if _, err := api.Connect(ctx, *folderID); err != nil {
		return fmt.Errorf("assert connection: %w", err)
	}
	log.Printf("Folder %s reconnected", *folderID)

	return heartbeat(ctx, api, handles, *folderID)
}

// heartbeat re-asserts the connection while the local capability stays
// healthy. A failed probe means the grant was revoked; asserting liveness
// past that point would lie to guests, so the loop stops and asks for a
// reconnect instead.
func heartbeat(ctx context.Context, api *client.Client, handles *handlecache.Cache, folderID string) error {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	if _, err := api.Connect(ctx, folderID); err != nil {
		return fmt.Errorf("assert connection: %w", err)
	}
	log.Printf("Connection asserted, refreshing every %s (Ctrl-C to stop)", heartbeatInterval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Stopping, folder will read as disconnected in %s", liveness.FreshnessWindow)
			return nil
		case <-ticker.C:
			if !handles.Probe(ctx, folderID) {
				return fmt.Errorf("folder access lost, run `agent reconnect -id %s` to restore it", folderID)
			}
			if _, err := api.Connect(ctx, folderID); err != nil {
				// One missed beat still fits inside the freshness
				// window; keep trying.
				log.Printf("heartbeat failed, retrying next tick: %v", err)
			}
		}
	}
}

func runWatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	cf := bindCommon(fs)
	folderID := fs.String("id", "", "folder record id")
	fs.Parse(args)

	if *folderID == "" {
		return fmt.Errorf("-id is required")
	}

	api, session, err := cf.login(ctx)
	if err != nil {
		return err
	}

	rec, err := api.GetFile(ctx, *folderID)
	if err != nil {
		return fmt.Errorf("fetch folder: %w", err)
	}
	if !rec.IsFolder() {
		return fmt.Errorf("%s is not a folder", *folderID)
	}
	if rec.OwnerID == session.ID {
		return fmt.Errorf("you own this folder; watching is for guests")
	}

	// Guests hold no capabilities, so the checker runs on replicated
	// record state alone.
	checker := liveness.NewChecker(nil)

	last := liveness.StatusUnknown
	poller, err := liveness.StartPolling(ctx, liveness.PollConfig{
		FolderID: *folderID,
		Fetch: func(ctx context.Context, id string) (*models.FileRecord, error) {
			return api.GetFile(ctx, id)
		},
		Checker: checker,
		OnStatus: func(status liveness.Status, rec *models.FileRecord) {
			if status != last {
				last = status
				log.Printf("Folder %q is %s", rec.Name, status)
			}
		},
	})
	if err != nil {
		return err
	}
	defer poller.Stop()

	<-ctx.Done()
	return nil
}

func splitEmails(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
