package cardmarket

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"cardmarket-scraper/config"
	"cardmarket-scraper/models"
	"cardmarket-scraper/services"
	"cardmarket-scraper/storage"
	"cardmarket-scraper/utils"
)

const pageReadySelector = "main.container"

// Scraper drives the sequential CardMarket scrape: one card list per
// run, one page per card, a fixed settle delay between navigation and
// extraction. There is deliberately no parallel fetching.
type Scraper struct {
	cfg       *config.Config
	logger    *utils.Logger
	extractor *services.Extractor
	store     storage.ListWriter
	retry     *utils.RetryConfig
}

// New creates a ready-to-use CardMarket Scraper.
func New(cfg *config.Config, logger *utils.Logger, extractor *services.Extractor, store storage.ListWriter) *Scraper {
	return &Scraper{
		cfg:       cfg,
		logger:    logger,
		extractor: extractor,
		store:     store,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// ScrapeList scrapes every card of the list in order and writes the
// results to a dated workbook, returning its path. A card whose page
// cannot be loaded or parsed yields an empty sheet; it never aborts the
// rest of the list.
func (s *Scraper) ScrapeList(ctx context.Context, list *config.CardList) (string, error) {
	s.logger.Info("[cardmarket] list: %s, cards: %d, wait: %ds", list.Name, len(list.Cards), list.WaitTime)

	chromeBin := s.cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	s.logger.Info("[cardmarket] using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	cards := make([]*models.ScrapedCard, 0, len(list.Cards))
	start := time.Now()

	for i, entry := range list.Cards {
		s.logger.Info("[cardmarket] [%d/%d] processing: %s", i+1, len(list.Cards), entry.Name)

		url := BuildURL(entry)
		listings := s.scrapeCard(browserCtx, entry.Name, url, list.WaitTime)

		cards = append(cards, &models.ScrapedCard{
			SheetName: storage.CleanSheetName(entry.Name),
			URL:       url,
			Listings:  listings,
		})

		done := i + 1
		elapsed := time.Since(start)
		eta := time.Duration(len(list.Cards)-done) * (elapsed / time.Duration(done))
		s.logger.Info("[cardmarket] progress: %d/%d (%.1f%%), ETA: %s",
			done, len(list.Cards), float64(done)/float64(len(list.Cards))*100, eta.Round(time.Second))
	}

	s.logger.Info("[cardmarket] scrape complete in %s", time.Since(start).Round(time.Second))
	return s.store.WriteList(list.Name, cards)
}

// scrapeCard loads one card page and extracts its listings. Failures
// resolve to an empty listing slice.
func (s *Scraper) scrapeCard(browserCtx context.Context, cardName, url string, waitSeconds int) []*models.Listing {
	var html string

	err := s.retry.Do(fmt.Sprintf("scrape %s", cardName), func() error {
		tabCtx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 90*time.Second)
		defer cancelTimeout()

		var currentURL string
		err := chromedp.Run(tabCtx,
			chromedp.Navigate(url),
			chromedp.WaitVisible(pageReadySelector, chromedp.ByQuery),
			// Settle delay for dynamically loaded listing rows.
			chromedp.Sleep(time.Duration(waitSeconds+1)*time.Second),
			chromedp.Location(&currentURL),
			chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		)
		if err != nil {
			return fmt.Errorf("navigate %s: %w", url, err)
		}
		if !strings.Contains(currentURL, "cardmarket.com") {
			return fmt.Errorf("redirected off cardmarket to %s", currentURL)
		}
		if strings.TrimSpace(html) == "" {
			return fmt.Errorf("empty page source for %s", url)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("[cardmarket] %s failed: %v", cardName, err)
		return nil
	}

	listings := s.extractor.Extract(html)
	s.logger.Info("[cardmarket] %s: %d listings", cardName, len(listings))
	return listings
}

// findChromeBinary locates a Chrome/Chromium binary on the host.
func findChromeBinary() string {
	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
