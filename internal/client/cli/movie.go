package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/watchb/internal/common"
)

// ShowMovie fetches and prints the details of one movie. Served from the
// local cache when the cached copy is fresh.
func (a *App) ShowMovie(ctx context.Context, idArg string) error {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		printlnFn("Usage: movie <id>")
		return err
	}

	m, err := a.movies.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("Movie not found.")
		} else {
			log.Printf("movie lookup failed: %v", err)
		}
		return err
	}

	printlnFn(fmt.Sprintf("%s (%d)", m.Title, m.ProductionYear))
	if len(m.Genres) > 0 {
		printlnFn("Genres:   " + strings.Join(m.Genres, ", "))
	}
	if len(m.Countries) > 0 {
		printlnFn("Country:  " + strings.Join(m.Countries, ", "))
	}
	if m.RunningTime != "" {
		printlnFn("Running:  " + m.RunningTime)
	}
	if m.FilmRating != "" {
		printlnFn("Rated:    " + m.FilmRating)
	}
	if m.ReleaseDate != "" {
		printlnFn("Released: " + m.ReleaseDate)
	}
	if m.Synopsys != "" {
		printlnFn("")
		printlnFn(m.Synopsys)
	}
	for _, c := range m.Credits {
		if c.RoleName != "" {
			printlnFn(fmt.Sprintf("%-10s %s as %s", c.Job+":", c.Name, c.RoleName))
		} else {
			printlnFn(fmt.Sprintf("%-10s %s", c.Job+":", c.Name))
		}
	}
	return nil
}
