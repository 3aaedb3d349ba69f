// Package nazar tracks Madam Nazar's daily location and broadcasts it to
// a Discord webhook. The location comes from scraping a community
// collector site; scrape failures degrade to an "Unknown region" post
// rather than skipping the broadcast.
package nazar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	sourceURL = "https://rdocollector.com/madam-nazar"
	mapURL    = "https://jeanropke.github.io/RDR2CollectorsMap/"
	avatarURL = "https://madamnazar.io/static/media/nazar.8b8f8b8b.png"
)

var locationRE = regexp.MustCompile(`(?i)Madam Nazar is in\s*([A-Za-z\s'-]+?)(?:\s*(?:today|window|map|location|$))`)

// Location is one scraped result.
type Location struct {
	Region      string
	MapImageURL string
}

// Locator scrapes and posts the daily location.
type Locator struct {
	webhookURL string
	httpClient *http.Client
	log        *slog.Logger
}

func New(webhookURL string, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		log:        logger,
	}
}

// CurrentLocation fetches the collector page and extracts the region and
// map image.
func (l *Locator) CurrentLocation(ctx context.Context) (Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return Location{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("fetch nazar page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("nazar page status %d", resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Location{}, fmt.Errorf("parse nazar page: %w", err)
	}
	return extractLocation(doc), nil
}

// extractLocation pulls the region phrase and map image out of the page.
// Missing pieces come back zero-valued.
func extractLocation(doc *goquery.Document) Location {
	var loc Location

	body := doc.Find("body").Text()
	if m := locationRE.FindStringSubmatch(body); m != nil {
		loc.Region = strings.Join(strings.Fields(m[1]), " ")
	}

	src, ok := doc.Find("img.border-red-900").Attr("src")
	if !ok {
		doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			alt, _ := sel.Attr("alt")
			if strings.Contains(strings.ToLower(alt), "madam nazar") {
				src, ok = sel.Attr("src")
				return !ok
			}
			return true
		})
	}
	if ok && src != "" {
		if strings.HasPrefix(src, "http") {
			loc.MapImageURL = src
		} else {
			loc.MapImageURL = "https://rdocollector.com" + src
		}
	}
	return loc
}

type webhookEmbed struct {
	Color       int            `json:"color"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Thumbnail   *webhookImage  `json:"thumbnail,omitempty"`
	Image       *webhookImage  `json:"image,omitempty"`
	Timestamp   string         `json:"timestamp"`
	Footer      *webhookFooter `json:"footer,omitempty"`
}

type webhookImage struct {
	URL string `json:"url"`
}

type webhookFooter struct {
	Text string `json:"text"`
}

type webhookPayload struct {
	Username  string         `json:"username"`
	AvatarURL string         `json:"avatar_url"`
	Embeds    []webhookEmbed `json:"embeds"`
}

// Broadcast scrapes the current location and posts it to the webhook.
func (l *Locator) Broadcast(ctx context.Context) error {
	if l.webhookURL == "" {
		return fmt.Errorf("nazar webhook url is not set")
	}

	loc, err := l.CurrentLocation(ctx)
	if err != nil {
		l.log.Warn("nazar scrape failed", "err", err)
		loc = Location{}
	}
	region := loc.Region
	if region == "" {
		region = "Unknown region"
	}

	embed := webhookEmbed{
		Color: 0x8B4513,
		Title: "🧿 Madam Nazar Location Today",
		Description: fmt.Sprintf("Madam Nazar is in **%s**\n\n🗺️ Full map: %s",
			region, mapURL),
		Thumbnail: &webhookImage{URL: avatarURL},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Footer:    &webhookFooter{Text: "The Bot in Black • Daily Location"},
	}
	if loc.MapImageURL != "" {
		embed.Image = &webhookImage{URL: loc.MapImageURL}
	}

	body, err := json.Marshal(webhookPayload{
		Username:  "Madam Nazar",
		AvatarURL: avatarURL,
		Embeds:    []webhookEmbed{embed},
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	l.log.Info("nazar location posted", "region", region)
	return nil
}
