package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pfrederiksen/ncaa-stats/internal/fetch"
	"github.com/pfrederiksen/ncaa-stats/internal/report"
)

func statsPage(header string, rows [][]string) string {
	body := ""
	for _, r := range rows {
		body += "<tr>"
		for _, cell := range r {
			body += "<td>" + cell + "</td>"
		}
		body += "</tr>"
	}
	return fmt.Sprintf(`<html><body><table>
		<thead><tr>%s</tr></thead>
		<tbody>%s</tbody>
	</table></body></html>`, header, body)
}

func newTestFetcher() *fetch.Fetcher {
	return fetch.New(fetch.Options{
		Delay:   time.Millisecond,
		Retries: 1,
	})
}

func TestRunMergesCategories(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/stats/basketball-men/d1/current/team/100", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, statsPage("<th>Team</th><th>Pts</th>", [][]string{
			{"Duke", "80"},
			{"UNC", "75"},
		}))
	})
	mux.HandleFunc("/stats/basketball-men/d1/current/team/200", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, statsPage("<th>Team</th><th>Reb</th>", [][]string{
			{"Duke", "30"},
			{"Kansas", "28"},
		}))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	pipe := New(newTestFetcher(), Config{
		BaseURL:     server.URL,
		CategoryIDs: []string{"100", "200"},
	})

	master, summary, err := pipe.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	wantTeams := []string{"Duke", "UNC", "Kansas"}
	if master.Len() != len(wantTeams) {
		t.Fatalf("got %d teams, want %d", master.Len(), len(wantTeams))
	}
	for i, team := range wantTeams {
		if master.Rows[i]["Team"] != team {
			t.Errorf("row %d Team = %q, want %q", i, master.Rows[i]["Team"], team)
		}
	}

	if master.Rows[1]["Reb"] != "0" {
		t.Errorf("UNC Reb = %q, want filled default 0", master.Rows[1]["Reb"])
	}
	if master.Rows[2]["Pts"] != "0" {
		t.Errorf("Kansas Pts = %q, want filled default 0", master.Rows[2]["Pts"])
	}

	if len(summary.Categories) != 2 {
		t.Fatalf("summary has %d categories, want 2", len(summary.Categories))
	}
	for _, cat := range summary.Categories {
		if cat.Status != report.StatusOK {
			t.Errorf("category %s status = %s, want ok", cat.ID, cat.Status)
		}
	}
	if summary.Teams != 3 {
		t.Errorf("summary.Teams = %d, want 3", summary.Teams)
	}
}

func TestRunFailSoftOnEmptyCategory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/stats/basketball-men/d1/current/team/100", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, statsPage("<th>Team</th><th>Pts</th>", [][]string{{"Duke", "80"}}))
	})
	// category 404 is never registered; the server returns 404 for it
	server := httptest.NewServer(mux)
	defer server.Close()

	pipe := New(newTestFetcher(), Config{
		BaseURL:     server.URL,
		CategoryIDs: []string{"100", "404"},
	})

	master, summary, err := pipe.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v (one empty category must not abort)", err)
	}

	if master.Len() != 1 {
		t.Errorf("got %d teams, want 1", master.Len())
	}

	statuses := map[string]report.Status{}
	for _, cat := range summary.Categories {
		statuses[cat.ID] = cat.Status
	}
	if statuses["100"] != report.StatusOK {
		t.Errorf("category 100 status = %s, want ok", statuses["100"])
	}
	if statuses["404"] != report.StatusEmpty {
		t.Errorf("category 404 status = %s, want empty", statuses["404"])
	}
}

func TestRunAllCategoriesFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	pipe := New(newTestFetcher(), Config{
		BaseURL:     server.URL,
		CategoryIDs: []string{"100", "200"},
	})

	master, summary, err := pipe.Run(context.Background())
	if !errors.Is(err, ErrAllCategoriesFailed) {
		t.Fatalf("got error %v, want ErrAllCategoriesFailed", err)
	}
	if master != nil {
		t.Error("master must be nil when every category failed")
	}
	if summary == nil || !summary.AllFailed() {
		t.Error("summary must report every category as failed")
	}
}

func TestRunCollisionWinnerFollowsInputOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/stats/basketball-men/d1/current/team/100", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, statsPage("<th>Team</th><th>Pts</th>", [][]string{{"Duke", "80"}}))
	})
	mux.HandleFunc("/stats/basketball-men/d1/current/team/200", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, statsPage("<th>Team</th><th>Pts</th>", [][]string{{"Duke", "99"}}))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	run := func(ids []string) string {
		pipe := New(newTestFetcher(), Config{BaseURL: server.URL, CategoryIDs: ids})
		master, _, err := pipe.Run(context.Background())
		if err != nil {
			t.Fatalf("Run(%v) failed: %v", ids, err)
		}
		return master.Rows[0]["Pts"]
	}

	if got := run([]string{"100", "200"}); got != "80" {
		t.Errorf("100-first Pts = %q, want 80", got)
	}
	if got := run([]string{"200", "100"}); got != "99" {
		t.Errorf("200-first Pts = %q, want 99", got)
	}
}

func TestRunCanceledBeforeStart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, statsPage("<th>Team</th>", [][]string{{"Duke"}}))
	}))
	defer server.Close()

	pipe := New(newTestFetcher(), Config{
		BaseURL:     server.URL,
		CategoryIDs: []string{"100"},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, summary, err := pipe.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got error %v, want context.Canceled", err)
	}
	if summary == nil {
		t.Error("summary must be returned even on cancellation")
	}
}

func TestCategoryURL(t *testing.T) {
	pipe := New(newTestFetcher(), Config{})
	want := "https://www.ncaa.com/stats/basketball-men/d1/current/team/474"
	if got := pipe.CategoryURL("474"); got != want {
		t.Errorf("CategoryURL = %q, want %q", got, want)
	}
}
