package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"github.com/deevus/congress-tui/app"
	"github.com/deevus/congress-tui/config"
	"github.com/deevus/congress-tui/internal"
	"github.com/deevus/congress-tui/internal/source"
	"golang.org/x/crypto/ssh"
)

func main() {
	datasetFlag := flag.String("dataset", "", "dataset profile name from config")
	configFlag := flag.String("config", config.DefaultPath(), "path to config file")
	flag.Parse()

	cfg, err := config.LoadFrom(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	datasetName := *datasetFlag
	if datasetName == "" {
		names := cfg.DatasetNames()
		if len(names) == 1 {
			datasetName = names[0]
		} else {
			fmt.Fprintf(os.Stderr, "Multiple datasets configured. Use --dataset flag.\nAvailable: %v\n", names)
			os.Exit(1)
		}
	}

	ds, ok := cfg.Datasets[datasetName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: dataset %q not found in config\n", datasetName)
		os.Exit(1)
	}

	if host, port, ok := sshTarget(ds.Source, ds.SSH); ok {
		fingerprint, err := scanHostKey(host, port)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: host_key_fingerprint is required for SSH.\n")
			fmt.Fprintf(os.Stderr, "Could not auto-detect: %v\n", err)
			fmt.Fprintf(os.Stderr, "Get it with: ssh-keyscan -p %d %s 2>/dev/null | ssh-keygen -lf -\n", port, host)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: host_key_fingerprint is required for SSH.\n")
		fmt.Fprintf(os.Stderr, "Detected fingerprint for %s:\n\n", host)
		fmt.Fprintf(os.Stderr, "  host_key_fingerprint = %q\n\n", fingerprint)
		fmt.Fprintf(os.Stderr, "Add this to [datasets.%s.ssh] in your config.\n", datasetName)
		os.Exit(1)
	}

	logFile, err := openLog(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	ctx := context.Background()

	src, err := source.Open(ctx, ds.Source, ds.SourceOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening source %s: %v\n", ds.Source, err)
		os.Exit(1)
	}
	log.Printf("dataset %s: loading from %s", datasetName, src)

	root := app.New(app.Params{
		Services:     internal.NewServices(src, nil),
		Title:        ds.Title,
		MetadataPath: ds.Metadata,
		RecordsPath:  ds.Records,
	})

	vxApp, err := vxfw.NewApp(vaxis.Options{})
	if err != nil {
		log.Fatal(err)
	}
	root.SetPostEvent(vxApp.PostEvent)

	if err := vxApp.Run(root); err != nil {
		log.Fatal(err)
	}
}

// openLog opens the log file for appending, creating its directory.
func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// sshTarget returns the host and port to scan when src is an ssh:// source
// whose [ssh] section has no pinned host key.
func sshTarget(src string, cfg *source.SSHConfig) (string, int, bool) {
	if cfg == nil || cfg.HostKeyFingerprint != "" {
		return "", 0, false
	}
	u, err := url.Parse(src)
	if err != nil || u.Scheme != "ssh" {
		return "", 0, false
	}
	port := cfg.Port
	if p, err := strconv.Atoi(u.Port()); err == nil {
		port = p
	}
	return u.Hostname(), port, true
}

// scanHostKey connects to an SSH server and returns the host key fingerprint.
func scanHostKey(host string, port int) (string, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	var fingerprint string
	cfg := &ssh.ClientConfig{
		User: "probe",
		HostKeyCallback: func(_ string, _ net.Addr, key ssh.PublicKey) error {
			fingerprint = ssh.FingerprintSHA256(key)
			return nil
		},
		Timeout: 5 * time.Second,
	}
	conn, err := ssh.Dial("tcp", addr, cfg)
	if conn != nil {
		conn.Close()
	}
	if fingerprint != "" {
		return fingerprint, nil
	}
	return "", fmt.Errorf("could not connect to %s: %v", addr, err)
}
