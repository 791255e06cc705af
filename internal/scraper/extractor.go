package scraper

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pmj0612/shopscraper/internal/models"
	"pmj0612/shopscraper/logger"
	"pmj0612/shopscraper/pkg/errors"
)

// priceToken matches the numeric part of a price string, e.g. "1,299.00"
var priceToken = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)

// Extractor turns catalog markup into product records
type Extractor struct {
	selectors Selectors
	log       *logger.Logger
}

// NewExtractor creates an extractor for the given selector set
func NewExtractor(selectors Selectors) *Extractor {
	return &Extractor{
		selectors: selectors,
		log:       logger.For("extractor"),
	}
}

// Extract parses the page and returns one record per complete product card,
// in document order. A card missing any of title, price or image is dropped
// without affecting the others. Titles are not deduplicated here.
func (e *Extractor) Extract(body io.Reader) ([]models.Product, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, errors.NewExtract("document", "failed to parse page", err)
	}

	var products []models.Product
	doc.Find(e.selectors.Card).Each(func(i int, s *goquery.Selection) {
		product, ok := e.extractCard(s)
		if !ok {
			e.log.Debug().Int("card", i).Msg("Skipping incomplete product card")
			return
		}
		products = append(products, product)
	})

	return products, nil
}

// extractCard pulls the three required fields out of a single card
func (e *Extractor) extractCard(s *goquery.Selection) (models.Product, bool) {
	title := strings.TrimSpace(s.Find(e.selectors.Title).Text())
	if title == "" {
		return models.Product{}, false
	}

	price, ok := ParsePrice(s.Find(e.selectors.Price).Text())
	if !ok {
		return models.Product{}, false
	}

	src, exists := s.Find(e.selectors.Image).Attr("src")
	src = strings.TrimSpace(src)
	if !exists || src == "" {
		return models.Product{}, false
	}

	return models.Product{Title: title, Price: price, ImageURL: src}, true
}

// ParsePrice extracts the numeric price from a raw price string, stripping
// currency symbols and thousands separators
func ParsePrice(raw string) (float64, bool) {
	token := priceToken.FindString(strings.TrimSpace(raw))
	if token == "" {
		return 0, false
	}

	price, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return price, true
}
