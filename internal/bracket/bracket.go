package bracket

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/ncaa-stats/internal/category"
	"github.com/pfrederiksen/ncaa-stats/internal/logger"
	"github.com/pfrederiksen/ncaa-stats/internal/table"
)

// Tier identifies which extraction tier produced a bracket table
type Tier string

const (
	// TierGames is full game data: matchups, scores, round, region
	TierGames Tier = "games"
	// TierSeeds is the fallback: team names and seeds only
	TierSeeds Tier = "seeds"
	// TierEmpty means neither heuristic matched anything
	TierEmpty Tier = "empty"
)

// bracketPath is the full-bracket page for one tournament year
const bracketPath = "/brackets/basketball-men/d1/%d/full-bracket"

// Class-name heuristics. These are guesses at the site's markup and every
// one of them is allowed to miss.
var (
	gameBlockRe = regexp.MustCompile(`game-pod|game-details`)
	teamNameRe  = regexp.MustCompile(`team-name|participant-name`)
	scoreRe     = regexp.MustCompile(`score|team-score`)
	roundRe     = regexp.MustCompile(`round-name|bracket-round-title`)
	regionRe    = regexp.MustCompile(`region-name|bracket-region-title`)
	teamBlockRe = regexp.MustCompile(`team-item|bracket-team`)
	seedRe      = regexp.MustCompile(`seed`)
)

// Game table columns, in export order
var gameColumns = []string{
	"Year", "Round", "Region", "Team1", "Team2", "Score1", "Score2", "Winner", "Loser",
}

// Seed table columns for the fallback tier
var seedColumns = []string{"Year", "Team", "Seed"}

// Scraper collects tournament bracket data
type Scraper struct {
	fetcher category.Fetcher
	baseURL string
}

// New creates a bracket Scraper
func New(fetcher category.Fetcher, baseURL string) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		baseURL: baseURL,
	}
}

// BracketURL returns the full-bracket page URL for a year
func (s *Scraper) BracketURL(year int) string {
	return s.baseURL + fmt.Sprintf(bracketPath, year)
}

// Collect fetches and parses the bracket page for one year, degrading through
// the extraction tiers. Only the fetch itself can fail; an unparseable page
// yields an empty table and TierEmpty.
func (s *Scraper) Collect(ctx context.Context, year int) (*table.Table, Tier, error) {
	url := s.BracketURL(year)
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, TierEmpty, fmt.Errorf("fetching bracket for %d: %w", year, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, TierEmpty, fmt.Errorf("parsing bracket for %d: %w", year, err)
	}

	if games := parseGames(doc, year); games.Len() > 0 {
		return games, TierGames, nil
	}

	logger.Warn("No game blocks parsed, falling back to seeds", logger.Fields{
		"year": year,
		"url":  url,
	})

	if seeds := parseSeeds(doc, year); seeds.Len() > 0 {
		return seeds, TierSeeds, nil
	}

	logger.Warn("No seed data parsed either", logger.Fields{
		"year": year,
		"url":  url,
	})

	return table.New(gameColumns), TierEmpty, nil
}

// parseGames extracts full game results from game blocks. Round and region
// labels precede their games in document order, so a single pass tracks the
// most recent label seen.
func parseGames(doc *goquery.Document, year int) *table.Table {
	out := table.New(gameColumns)

	currentRound := "Unknown Round"
	currentRegion := "Unknown Region"
	parsed := make(map[*html.Node]bool)

	doc.Find("*").Each(func(i int, sel *goquery.Selection) {
		class, ok := sel.Attr("class")
		if !ok {
			return
		}

		switch {
		case roundRe.MatchString(class):
			if text := strings.TrimSpace(sel.Text()); text != "" {
				currentRound = text
			}
		case regionRe.MatchString(class):
			if text := strings.TrimSpace(sel.Text()); text != "" {
				currentRegion = text
			}
		case gameBlockRe.MatchString(class):
			// Wrapper blocks can match the same heuristic as the block
			// they contain; parse only the outermost
			if insideParsed(sel, parsed) {
				return
			}

			row, ok := parseGameBlock(sel, year, currentRound, currentRegion)
			if !ok {
				return
			}
			parsed[sel.Get(0)] = true
			out.Append(row)
		}
	})

	return out
}

// parseGameBlock extracts one matchup. Blocks missing exactly two team names
// with two integer scores are skipped as malformed.
func parseGameBlock(block *goquery.Selection, year int, round, region string) (table.Row, bool) {
	names := classTexts(block, teamNameRe)
	scores := classTexts(block, scoreRe)
	if len(names) != 2 || len(scores) != 2 {
		return nil, false
	}

	score1, err1 := strconv.Atoi(scores[0])
	score2, err2 := strconv.Atoi(scores[1])
	if err1 != nil || err2 != nil {
		return nil, false
	}

	winner, loser := names[0], names[1]
	if score2 > score1 {
		winner, loser = names[1], names[0]
	}

	return table.Row{
		"Year":   strconv.Itoa(year),
		"Round":  round,
		"Region": region,
		"Team1":  names[0],
		"Team2":  names[1],
		"Score1": scores[0],
		"Score2": scores[1],
		"Winner": winner,
		"Loser":  loser,
	}, true
}

// parseSeeds extracts just team names and seeds
func parseSeeds(doc *goquery.Document, year int) *table.Table {
	out := table.New(seedColumns)
	parsed := make(map[*html.Node]bool)

	doc.Find("*").Each(func(i int, sel *goquery.Selection) {
		class, ok := sel.Attr("class")
		if !ok || !teamBlockRe.MatchString(class) {
			return
		}
		if insideParsed(sel, parsed) {
			return
		}

		seeds := classTexts(sel, seedRe)
		names := classTexts(sel, teamNameRe)
		if len(seeds) == 0 || len(names) == 0 {
			return
		}

		parsed[sel.Get(0)] = true
		out.Append(table.Row{
			"Year": strconv.Itoa(year),
			"Team": names[0],
			"Seed": seeds[0],
		})
	})

	return out
}

// classTexts returns the trimmed text of descendants whose class matches re
func classTexts(sel *goquery.Selection, re *regexp.Regexp) []string {
	var texts []string
	sel.Find("[class]").Each(func(i int, child *goquery.Selection) {
		class, ok := child.Attr("class")
		if !ok || !re.MatchString(class) {
			return
		}
		if text := strings.TrimSpace(child.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return texts
}

// insideParsed reports whether sel sits inside a block already parsed
func insideParsed(sel *goquery.Selection, parsed map[*html.Node]bool) bool {
	for n := sel.Get(0); n != nil; n = n.Parent {
		if parsed[n] {
			return true
		}
	}
	return false
}
