// Command validate performs offline integrity checks on a content data
// directory: index/date consistency, candidate-chain resolvability for
// every indexed date, dates_detail file existence, citation marker ranges,
// and coexistence of legacy and period files for the same date.
//
// Usage:
//
//	go run ./cmd/validate -data ./data [-locale en]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/climatewatch-kr/briefing-service/internal/adapter/content"
	"github.com/climatewatch-kr/briefing-service/internal/domain"
)

var citationRe = regexp.MustCompile(`\[(\d+)\]`)

type checker struct {
	fetcher  *content.FileFetcher
	locale   string
	problems int
}

func main() {
	dataDir := flag.String("data", "data", "content data directory")
	locale := flag.String("locale", domain.DefaultLocale, "locale subtree to validate")
	flag.Parse()

	c := &checker{
		fetcher: content.NewFileFetcher(*dataDir),
		locale:  *locale,
	}

	idx := c.loadIndex()
	if idx == nil {
		os.Exit(1)
	}

	c.checkDates(idx)
	c.checkLatest(idx)
	c.checkResolvable(idx)
	c.checkDetail(idx)
	c.checkLegacyDrift(idx)

	if c.problems > 0 {
		fmt.Printf("FAIL: %d problem(s) found\n", c.problems)
		os.Exit(1)
	}
	fmt.Println("OK: data directory is consistent")
}

func (c *checker) fail(format string, args ...any) {
	c.problems++
	fmt.Printf("  ✗ "+format+"\n", args...)
}

func (c *checker) loadIndex() *domain.BriefingIndex {
	for _, path := range domain.IndexCandidates(c.locale) {
		data, err := c.fetcher.Fetch(context.Background(), path)
		if err != nil {
			continue
		}
		idx, err := domain.DecodeIndex(data)
		if err != nil {
			fmt.Printf("  ✗ %s: %v\n", path, err)
			return nil
		}
		fmt.Printf("index: %s (%d dates)\n", path, len(idx.Dates))
		return idx
	}
	fmt.Println("  ✗ no briefing index found")
	return nil
}

// checkDates verifies the date list is duplicate-free and descending.
func (c *checker) checkDates(idx *domain.BriefingIndex) {
	seen := map[string]bool{}
	for _, d := range idx.Dates {
		if seen[d] {
			c.fail("duplicate date in index: %s", d)
		}
		seen[d] = true
	}
	if !sort.SliceIsSorted(idx.Dates, func(i, j int) bool { return idx.Dates[i] > idx.Dates[j] }) {
		c.fail("index dates are not in descending order")
	}
}

// checkLatest verifies latest refers to the head date (directly or as a
// period-suffixed key of it).
func (c *checker) checkLatest(idx *domain.BriefingIndex) {
	if len(idx.Dates) == 0 {
		if idx.Latest != "" {
			c.fail("index has latest %q but no dates", idx.Latest)
		}
		return
	}
	date, _ := domain.ParseDateKey(idx.Latest)
	if date != idx.Dates[0] {
		c.fail("latest %q does not match newest date %s", idx.Latest, idx.Dates[0])
	}
}

// checkResolvable walks the candidate chain for every indexed date and
// flags dates that resolve to nothing.
func (c *checker) checkResolvable(idx *domain.BriefingIndex) {
	for _, date := range idx.Dates {
		if !c.resolves(date) {
			c.fail("date %s is indexed but no briefing file resolves", date)
		}
	}
}

func (c *checker) resolves(date string) bool {
	for _, path := range domain.BriefingCandidates(date, "", c.locale) {
		data, err := c.fetcher.Fetch(context.Background(), path)
		if err != nil {
			continue
		}
		var doc domain.DailyBriefing
		if err := json.Unmarshal(data, &doc); err != nil {
			c.fail("%s: %v", path, err)
			continue
		}
		c.checkCitations(path, &doc)
		return true
	}
	return false
}

// checkCitations verifies every [k] marker in section content points at an
// existing article position.
func (c *checker) checkCitations(path string, doc *domain.DailyBriefing) {
	for _, section := range doc.Briefing.Sections {
		for _, m := range citationRe.FindAllStringSubmatch(section.Content, -1) {
			k, err := strconv.Atoi(m[1])
			if err != nil || k < 1 || k > len(doc.Articles) {
				c.fail("%s: citation %s out of range (%d articles)", path, m[0], len(doc.Articles))
			}
		}
	}
}

// checkDetail verifies every file named in dates_detail exists.
func (c *checker) checkDetail(idx *domain.BriefingIndex) {
	for date, descriptors := range idx.DatesDetail {
		for _, d := range descriptors {
			if !domain.ValidPeriod(d.Period) {
				c.fail("dates_detail[%s]: unknown period %q", date, d.Period)
			}
			if _, err := c.fetcher.Fetch(context.Background(), c.briefingPath(d.File)); err != nil {
				c.fail("dates_detail[%s]: listed file %s does not exist", date, d.File)
			}
		}
	}
}

// checkLegacyDrift flags dates carrying both a legacy flat file and period
// files. The resolver silently prefers the period files; coexistence
// usually means stale data that should be cleaned up.
func (c *checker) checkLegacyDrift(idx *domain.BriefingIndex) {
	for _, date := range idx.Dates {
		legacy := c.exists(date + ".json")
		period := c.exists(date+"-morning.json") || c.exists(date+"-afternoon.json")
		if legacy && period {
			fmt.Printf("  ! date %s has both legacy and period files; period files take precedence\n", date)
		}
	}
}

func (c *checker) exists(file string) bool {
	_, err := c.fetcher.Fetch(context.Background(), c.briefingPath(file))
	return err == nil
}

func (c *checker) briefingPath(file string) string {
	if c.locale == domain.DefaultLocale {
		return filepath.ToSlash(filepath.Join("briefing", file))
	}
	return filepath.ToSlash(filepath.Join("briefing", c.locale, file))
}
