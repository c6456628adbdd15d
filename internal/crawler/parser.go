package crawler

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

const (
	directorMarker = "导演:"
	actorsMarker   = "主演:"
	ratingsSuffix  = "人评价"
)

var (
	subjectIDPattern = regexp.MustCompile(`/subject/(\d+)`)
	yearPattern      = regexp.MustCompile(`(19|20)\d{2}`)
)

// ParsePage extracts every movie item from one Top250 list page. Items that
// cannot be identified are counted in failed and skipped.
func ParsePage(r io.Reader) (movies []models.Movie, failed int, err error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("HTML parse failed: %w", err)
	}

	movies = make([]models.Movie, 0, PageSize)
	doc.Find("div.item").Each(func(i int, item *goquery.Selection) {
		movie, err := parseItem(item)
		if err != nil {
			failed++
			return
		}
		movies = append(movies, movie)
	})

	return movies, failed, nil
}

func parseItem(item *goquery.Selection) (models.Movie, error) {
	var m models.Movie

	if rank, err := strconv.Atoi(cleanText(item.Find("em").First().Text())); err == nil {
		m.RankNum = rank
	}

	href, _ := item.Find("a").First().Attr("href")
	m.DoubanURL = href
	if match := subjectIDPattern.FindStringSubmatch(href); match != nil {
		m.DoubanID = match[1]
	}
	if m.DoubanID == "" {
		return m, fmt.Errorf("item without subject link")
	}

	m.PosterURL, _ = item.Find("img").First().Attr("src")

	titles := item.Find("span.title")
	m.Title = cleanText(titles.Eq(0).Text())
	if titles.Length() > 1 {
		m.TitleEn = strings.TrimSpace(strings.TrimLeft(cleanText(titles.Eq(1).Text()), "/ "))
	}
	if m.Title == "" {
		return m, fmt.Errorf("item %s without title", m.DoubanID)
	}

	parseDetails(&m, item.Find("div.bd p").First().Text())

	if rating, err := strconv.ParseFloat(cleanText(item.Find("span.rating_num").Text()), 64); err == nil {
		m.Rating = rating
	}

	item.Find("div.star span").EachWithBreak(func(i int, span *goquery.Selection) bool {
		text := cleanText(span.Text())
		if !strings.HasSuffix(text, ratingsSuffix) {
			return true
		}
		if n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(text, ratingsSuffix))); err == nil {
			m.RatingCount = n
		}
		return false
	})

	m.Summary = cleanText(item.Find("span.inq").Text())

	return m, nil
}

// parseDetails reads the two-line credits block:
//
//	导演: A   主演: B / C ...
//	1994 / 美国 / 犯罪 剧情
func parseDetails(m *models.Movie, block string) {
	lines := make([]string, 0, 2)
	for _, line := range strings.Split(block, "\n") {
		if line = cleanText(line); line != "" {
			lines = append(lines, line)
		}
	}

	for _, line := range lines {
		if strings.Contains(line, directorMarker) || strings.Contains(line, actorsMarker) {
			parseCredits(m, line)
			continue
		}

		parts := splitSlash(line)
		if len(parts) == 0 || !yearPattern.MatchString(parts[0]) {
			continue
		}
		m.Year = yearPattern.FindString(parts[0])
		if len(parts) > 1 {
			m.Country = parts[1]
		}
		if len(parts) > 2 {
			m.Genre = strings.Join(parts[2:], " ")
		}
	}
}

func parseCredits(m *models.Movie, line string) {
	if i := strings.Index(line, directorMarker); i >= 0 {
		rest := line[i+len(directorMarker):]
		if j := strings.Index(rest, actorsMarker); j >= 0 {
			rest = rest[:j]
		}
		m.Director = strings.Join(splitSlash(rest), "/")
	}
	if i := strings.Index(line, actorsMarker); i >= 0 {
		rest := strings.TrimRight(strings.TrimSpace(line[i+len(actorsMarker):]), ".")
		m.Actors = strings.Join(splitSlash(rest), "/")
	}
}

func splitSlash(s string) []string {
	parts := make([]string, 0)
	for _, p := range strings.Split(s, "/") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func cleanText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
}
