// Command export-newsletter dumps the subscriber list as CSV, one row
// per subscriber with a pre-minted unsubscribe link. Output goes to a
// file (or stdout) and optionally to S3 for the ops handoff bucket.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/forgepoint/site-server/internal/config"
	"github.com/forgepoint/site-server/internal/export"
	"github.com/forgepoint/site-server/internal/newsletter"
	"github.com/forgepoint/site-server/internal/token"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "path to the config file")
		outPath    = flag.String("out", "", "output file (default stdout)")
		includeAll = flag.Bool("all", false, "include pending and unsubscribed addresses")
		s3Bucket   = flag.String("s3-bucket", "", "also upload the CSV to this S3 bucket")
	)
	flag.Parse()

	if err := run(*configPath, *outPath, *s3Bucket, *includeAll); err != nil {
		fmt.Fprintf(os.Stderr, "export-newsletter: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, outPath, s3Bucket string, includeAll bool) error {
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tokens, err := token.NewService(cfg.Newsletter.TokenSecret, cfg.Site.Name)
	if err != nil {
		return fmt.Errorf("initializing token service: %w", err)
	}

	store, err := newsletter.NewDynamoStore(ctx, cfg.Newsletter.DynamoDBTable, cfg.Newsletter.AWSRegion, cfg.Newsletter.GetAWSProfile())
	if err != nil {
		return fmt.Errorf("initializing subscriber store: %w", err)
	}

	// The mailer is not needed for an export; the service only mints links here.
	svc := newsletter.NewService(store, nil, tokens, cfg.Site.BaseURL,
		cfg.Newsletter.ConfirmTTL(), cfg.Newsletter.UnsubscribeTTL())

	subs, err := svc.Subscribers(ctx)
	if err != nil {
		return fmt.Errorf("listing subscribers: %w", err)
	}

	var buf bytes.Buffer
	rows, err := export.WriteCSV(&buf, subs, svc.UnsubscribeURL, includeAll)
	if err != nil {
		return err
	}

	if outPath == "" {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d subscribers to %s\n", rows, outPath)
	}

	if s3Bucket != "" {
		uploader, err := export.NewUploader(ctx, cfg.Newsletter.AWSRegion)
		if err != nil {
			return err
		}
		key := fmt.Sprintf("newsletter/subscribers-%s.csv", time.Now().UTC().Format("2006-01-02"))
		if err := uploader.Upload(ctx, s3Bucket, key, buf.Bytes()); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Uploaded to s3://%s/%s\n", s3Bucket, key)
	}

	return nil
}
