// Command kiosk runs the public rating page of one business in a terminal.
//
//	kiosk -backend http://localhost:8080 -slug cafe-atlas
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"clientvoice/internal/adapters/backend"
	"clientvoice/internal/adapters/observability"
	"clientvoice/internal/capture"
	"clientvoice/internal/domain"
	"clientvoice/internal/shared"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	base := flag.String("backend", cfg.BackendURL, "review API base URL")
	frontend := flag.String("frontend", cfg.FrontendURL, "public site base URL, printed as the page address")
	slug := flag.String("slug", "", "business slug")
	flag.Parse()
	if *slug == "" {
		fmt.Fprintln(os.Stderr, "usage: kiosk -slug SLUG [-backend URL]")
		os.Exit(2)
	}

	api := backend.New(*base, cfg.SubmitRPS)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	profile, err := api.PublicProfile(ctx, *slug)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Str("slug", *slug).Msg("load public profile failed")
	}

	k := &kiosk{
		in:   bufio.NewScanner(os.Stdin),
		out:  os.Stdout,
		page: capture.NewPage(profile, *base),
	}
	fmt.Fprintf(k.out, "%s  [%s]\n%s\n\n", k.page.Title, capture.PublicURL(*frontend, *slug), k.page.LogoURL)

	open := capture.OpenerFunc(func(_ context.Context, url string) error {
		fmt.Fprintf(k.out, "\n→ %s\n\n", url)
		return nil
	})
	flow := capture.NewFlow(*slug, k.page.Env(profile.PlaceID), api, open)
	if err := k.run(flow); err != nil && !errors.Is(err, io.EOF) {
		log.Fatal().Err(err).Msg("kiosk failed")
	}
}

type kiosk struct {
	in   *bufio.Scanner
	out  io.Writer
	page capture.Page
}

func (k *kiosk) prompt(label string) (string, error) {
	fmt.Fprint(k.out, label)
	if !k.in.Scan() {
		if err := k.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(k.in.Text()), nil
}

func (k *kiosk) run(flow *capture.Flow) error {
	m := k.page.Messages
	for {
		st := flow.State()
		switch st.Step {
		case capture.StepRating:
			fmt.Fprintf(k.out, "%s\n%s\n", m.Prompt, m.Subtitle)
			for n := domain.MinNote; n <= domain.MaxNote; n++ {
				fmt.Fprintf(k.out, "  %d  %s\n", n, m.Tooltip(n))
			}
			line, err := k.prompt("> ")
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(line)
			if err != nil {
				continue
			}
			if err := flow.SelectRating(context.Background(), n); err != nil {
				log.Warn().Err(err).Msg("open external page failed")
			}

		case capture.StepFeedback:
			fmt.Fprintf(k.out, "%s (%s)\n", m.FeedbackTitle, strings.Repeat("★", st.Rating))
			if st.Err != nil {
				fmt.Fprintf(k.out, "! %s\n", errorText(st.Err))
			}
			comment, err := k.prompt(m.CommentPlaceholder + " (\"<\" = " + m.BackToRating + "): ")
			if err != nil {
				return err
			}
			if comment == "<" {
				flow.Back()
				continue
			}
			flow.SetComment(comment)
			contact, err := k.prompt(m.ContactPlaceholder + ": ")
			if err != nil {
				return err
			}
			flow.SetContact(contact)
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			_ = flow.Submit(ctx) // outcome is reflected in the state
			cancel()

		case capture.StepThanked:
			fmt.Fprintf(k.out, "\n%s\n%s\n", m.ThankTitle, m.ThankText)
			if _, err := k.prompt(m.ThankBack + " [enter] "); err != nil {
				return err
			}
			flow.LeaveAnother()
		}
	}
}

func errorText(err error) string {
	var se *capture.SubmitError
	if errors.As(err, &se) {
		return se.Message
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
