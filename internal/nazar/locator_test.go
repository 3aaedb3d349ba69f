package nazar

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestExtractLocation(t *testing.T) {
	doc := docFrom(t, `
		<html><body>
		<h1>Madam Nazar Tracker</h1>
		<p>Madam Nazar is in   The Heartlands today.</p>
		<img class="border-red-900" src="/maps/heartlands.png" alt="map">
		</body></html>`)

	loc := extractLocation(doc)
	if loc.Region != "The Heartlands" {
		t.Fatalf("region=%q", loc.Region)
	}
	if loc.MapImageURL != "https://rdocollector.com/maps/heartlands.png" {
		t.Fatalf("map=%q", loc.MapImageURL)
	}
}

func TestExtractLocationAltImageFallback(t *testing.T) {
	doc := docFrom(t, `
		<html><body>
		<p>Madam Nazar is in Bayou Nwa</p>
		<img src="/logo.png" alt="site logo">
		<img src="https://cdn.example/bayou.png" alt="Madam Nazar map">
		</body></html>`)

	loc := extractLocation(doc)
	if loc.Region != "Bayou Nwa" {
		t.Fatalf("region=%q", loc.Region)
	}
	if loc.MapImageURL != "https://cdn.example/bayou.png" {
		t.Fatalf("map=%q", loc.MapImageURL)
	}
}

func TestExtractLocationMissingPieces(t *testing.T) {
	loc := extractLocation(docFrom(t, `<html><body><p>nothing here</p></body></html>`))
	if loc.Region != "" || loc.MapImageURL != "" {
		t.Fatalf("expected zero location, got %+v", loc)
	}
}
