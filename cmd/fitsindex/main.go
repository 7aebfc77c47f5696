package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rtrio/fitsindex"
	"github.com/rtrio/fitsindex/config"
	"github.com/rtrio/fitsindex/data"
	"github.com/rtrio/fitsindex/log"
	"github.com/rtrio/fitsindex/source"
	"github.com/rtrio/fitsindex/source/local"
	"github.com/rtrio/fitsindex/source/s3"
)

const usage = `Usage: fitsindex [flags] <command> [args]

Commands:
  rebuild              drop and recreate the files table
  add <file>...        index one or more FITS files
  scan                 index every FITS file under the base directory
  query k=v ...        print matching rows
  paths k=v ...        print matching file paths
  flush                delete all indexed rows

Flags:
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("fitsindex", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprint(flags.Output(), usage)
		flags.PrintDefaults()
	}

	var (
		configPath = flags.String("config", "", "JSON configuration file")
		consulAddr = flags.String("consul", "", "load configuration from this Consul server")
		consulKey  = flags.String("consul-key", "fitsindex/config", "Consul KV key holding the configuration")
		dsn        = flags.String("dsn", "", "store file path or connection string")
		baseDir    = flags.String("basedir", "", "exposure base directory")
		storeName  = flags.String("store", "", "store backend (sqlite or postgres)")
		logLevel   = flags.String("log-level", "info", "log level (debug, info, warn, error)")
		logFile    = flags.String("log-file", "", "duplicate logs into this rotated file")

		skipIndexed = flags.Bool("skip-indexed", true, "scan: skip files already in the index")
		s3Endpoint  = flags.String("s3-endpoint", "", "scan: S3 archive endpoint instead of the local tree")
		s3Bucket    = flags.String("s3-bucket", "", "scan: S3 bucket name")
		s3Prefix    = flags.String("s3-prefix", "", "scan: S3 key prefix")
		s3SSL       = flags.Bool("s3-ssl", true, "scan: use TLS for the S3 connection")
	)

	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return fmt.Errorf("missing command")
	}

	cfg, err := loadConfig(*configPath, *consulAddr, *consulKey)
	if err != nil {
		return err
	}
	if *dsn != "" {
		cfg.DSN = *dsn
	}
	if *baseDir != "" {
		cfg.BaseDir = *baseDir
	}
	if *storeName != "" {
		cfg.Store = *storeName
	}

	command := flags.Arg(0)
	rest := flags.Args()[1:]

	mode := data.ReadWrite
	switch command {
	case "query", "paths":
		mode = data.ReadOnly
	}

	ctx := context.Background()
	logger := log.New("fitsindex", log.Parse(*logLevel), *logFile)

	ix, err := fitsindex.Open(ctx, cfg, mode,
		fitsindex.WithLogger(logger),
		fitsindex.WithConfirm(fitsindex.StdinConfirm(os.Stdin, os.Stdout)),
	)
	if err != nil {
		return err
	}
	defer ix.Close()

	switch command {
	case "rebuild":
		return ix.RebuildSchema(ctx)

	case "add":
		if len(rest) == 0 {
			return fmt.Errorf("add: no files given")
		}
		for _, path := range rest {
			if err := ix.InsertFromFile(ctx, path); err != nil {
				return err
			}
		}
		return nil

	case "scan":
		src, err := buildSource(cfg, *s3Endpoint, *s3Bucket, *s3Prefix, *s3SSL)
		if err != nil {
			return err
		}
		report, err := ix.Scan(ctx, src, fitsindex.ScanOptions{SkipIndexed: *skipIndexed})
		if err != nil {
			return err
		}
		fmt.Printf("scanned %d, indexed %d, skipped %d, failed %d\n",
			report.Scanned, report.Indexed, report.Skipped, report.Failed)
		return report.Errs

	case "query":
		attrs, err := parseAttrs(rest)
		if err != nil {
			return err
		}
		rows, err := ix.Query(ctx, attrs)
		if err != nil {
			return err
		}
		printRows(ix.Columns(), rows)
		return nil

	case "paths":
		attrs, err := parseAttrs(rest)
		if err != nil {
			return err
		}
		paths, err := ix.QueryPaths(ctx, attrs)
		if err != nil {
			return err
		}
		sort.Strings(paths)
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil

	case "flush":
		return ix.Flush(ctx)

	default:
		flags.Usage()
		return fmt.Errorf("unknown command '%s'", command)
	}
}

func loadConfig(path, consulAddr, consulKey string) (*config.Config, error) {
	switch {
	case consulAddr != "":
		return config.LoadConsul(consulAddr, consulKey)
	case path != "":
		return config.Load(path)
	default:
		return config.Default().FromEnv(), nil
	}
}

func buildSource(cfg *config.Config, endpoint, bucket, prefix string, ssl bool) (source.Source, error) {
	if endpoint == "" {
		return local.New(cfg.BaseDir), nil
	}
	return s3.New(s3.Options{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		UseSSL:    ssl,
		Bucket:    bucket,
		Prefix:    prefix,
	})
}

// parseAttrs turns "k=v" arguments into query attributes.
func parseAttrs(args []string) (map[string]any, error) {
	attrs := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected k=v, got '%s'", arg)
		}
		attrs[key] = value
	}
	return attrs, nil
}

func printRows(columns []string, rows []data.Row) {
	for _, row := range rows {
		parts := make([]string, 0, len(columns))
		for _, col := range columns {
			if row[col] == nil {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s=%v", col, row[col]))
		}
		fmt.Println(strings.Join(parts, " "))
	}
}
