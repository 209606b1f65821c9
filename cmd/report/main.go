// Command report passes the secret-code gate of several businesses and prints
// their review summary and one page of reviews.
//
//	report -backend http://localhost:8080 -page 1 cafe-atlas:S3CRET bistro:CODE
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"clientvoice/internal/adapters/backend"
	"clientvoice/internal/adapters/observability"
	"clientvoice/internal/aggregate"
	"clientvoice/internal/domain"
	"clientvoice/internal/gate"
	"clientvoice/internal/shared"
)

type target struct{ slug, code string }

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	base := flag.String("backend", cfg.BackendURL, "review API base URL")
	page := flag.Int("page", 1, "page of reviews to print")
	workers := flag.Int("workers", 4, "businesses fetched concurrently")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	targets, err := parseTargets(flag.Args())
	if err != nil || len(targets) == 0 {
		fmt.Fprintln(os.Stderr, "usage: report [-backend URL] [-page N] slug:code ...")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	api := backend.New(*base, cfg.SubmitRPS)
	sem := semaphore.NewWeighted(int64(max(*workers, 1)))
	out := make([]string, len(targets))
	var wg sync.WaitGroup

	for i, tg := range targets {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Error().Err(err).Msg("semaphore acquire failed")
			break
		}
		wg.Add(1)
		go func(i int, tg target) {
			defer wg.Done()
			defer sem.Release(1)
			s, err := report(ctx, api, tg, *page, cfg)
			if err != nil {
				log.Warn().Str("slug", tg.slug).Err(err).Msg("report failed")
				s = fmt.Sprintf("== %s\n  error: %v\n", tg.slug, err)
			}
			out[i] = s
		}(i, tg)
	}
	wg.Wait()

	for _, s := range out {
		fmt.Print(s)
	}
}

func parseTargets(args []string) ([]target, error) {
	out := make([]target, 0, len(args))
	for _, a := range args {
		slug, code, ok := strings.Cut(a, ":")
		if !ok || slug == "" {
			return nil, fmt.Errorf("bad target %q, want slug:code", a)
		}
		out = append(out, target{slug: slug, code: code})
	}
	return out, nil
}

func report(ctx context.Context, api *backend.Client, tg target, page int, cfg shared.Config) (string, error) {
	profile, err := api.PublicProfile(ctx, tg.slug)
	if err != nil {
		return "", err
	}
	g := gate.New(tg.slug, api, profile.Langue)
	if err := g.Verify(ctx, tg.code); err != nil {
		return "", fmt.Errorf("%s: %w", g.Message(), err)
	}
	rs, err := g.Reviews(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "== %s (%s)\n", profile.Nom, tg.slug)
	fmt.Fprintf(&b, "  reviews: %d  average: %s\n", len(rs), aggregate.FormatAverage(rs))
	for _, bk := range aggregate.Distribution(rs, cfg.PublicBuckets) {
		fmt.Fprintf(&b, "  %d★ %3d  %5.1f%%\n", bk.Note, bk.Count, bk.Percentage)
	}

	pager := aggregate.NewPager(cfg.PublicPageSize, rs)
	pager.GoTo(page)
	fmt.Fprintf(&b, "  page %d/%d\n", pager.Page(), max(pager.TotalPages(), 1))
	for _, r := range pager.Items() {
		fmt.Fprintf(&b, "  - %s  %d★  %s%s\n", r.CreatedAt.Format("2006-01-02"), r.Note, r.Commentaire, contact(r))
	}
	return b.String(), nil
}

func contact(r domain.Review) string {
	if r.Contact == nil {
		return ""
	}
	return " (" + *r.Contact + ")"
}
