package facts

import (
	"context"
	"fmt"
	"strings"

	"rag-pipeline/internal/domain"
	"rag-pipeline/internal/usecase/dates"
)

// Oscar ceremony years covered by the reference data.
const (
	oscarFirstYear = "1990"
	oscarLastYear  = "2021"
)

// FormatMovie renders movie records, person filmographies and, when the
// query names a covered year, that year's Oscar winners.
func (f *Formatter) FormatMovie(ctx context.Context, qc domain.QueryContext, matched domain.MatchedEntities) string {
	var info strings.Builder

	for _, movieID := range matched.MovieIDs {
		movie, err := f.movies.MovieByID(ctx, movieID)
		if err != nil {
			f.warn("movie_lookup_failed", err, "movie_id", movieID)
			continue
		}
		if movie == nil {
			continue
		}
		f.movieReport(&info, movie)
	}

	for _, personID := range matched.PersonIDs {
		person, err := f.movies.PersonByID(ctx, personID)
		if err != nil {
			f.warn("person_lookup_failed", err, "person_id", personID)
			continue
		}
		if person == nil {
			continue
		}
		f.personReport(ctx, &info, person)
	}

	if years := dates.Years(qc.Query); len(years) > 0 {
		year := years[0]
		if year >= oscarFirstYear && year <= oscarLastYear {
			fmt.Fprintf(&info, "#### Some information of Oscar Awards in %s:\n", year)
			awards, err := f.movies.OscarAwardsByYear(ctx, year)
			if err != nil {
				f.warn("oscar_lookup_failed", err, "year", year)
			} else {
				writeOscarWinners(&info, awards)
			}
			info.WriteString("\n")
		}
	}
	return info.String()
}

func (f *Formatter) movieReport(info *strings.Builder, movie *domain.MovieRecord) {
	fmt.Fprintf(info, "#### Some information of %s\n", movie.Title)
	fmt.Fprintf(info, "- Original Title: %s\n", movie.OriginalTitle)
	fmt.Fprintf(info, "- Release Date: %s\n", movie.ReleaseDate)

	var directors []string
	for _, member := range movie.Crew {
		if member.Job == "Director" {
			directors = append(directors, member.Name)
		}
	}
	if len(directors) > 0 {
		fmt.Fprintf(info, "- Director(s): %s\n", strings.Join(directors, ", "))
	}
	if len(movie.Genres) > 0 {
		names := make([]string, 0, len(movie.Genres))
		for _, genre := range movie.Genres {
			names = append(names, genre.Name)
		}
		fmt.Fprintf(info, "- Genres: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(info, "- Original Language: %s\n", movie.OriginalLanguage)
	if movie.Revenue != nil {
		if *movie.Revenue == 0 {
			info.WriteString("- Revenue: Unknown\n")
		} else {
			fmt.Fprintf(info, "- Revenue: %d\n", *movie.Revenue)
		}
	}
	if movie.Budget != nil {
		if *movie.Budget == 0 {
			info.WriteString("- Budget: Unknown\n")
		} else {
			fmt.Fprintf(info, "- Budget: %d\n", *movie.Budget)
		}
	}
	if movie.Length != nil {
		fmt.Fprintf(info, "- Length: %d minutes\n", *movie.Length)
	}
	if len(movie.OscarAwards) > 0 {
		info.WriteString("- Oscar Awards:\n")
		for _, award := range movie.OscarAwards {
			fmt.Fprintf(info, "    - Category: %s\n", award.Category)
			fmt.Fprintf(info, "        - Year: %d(the %dth oscar ceremony)\n", award.YearCeremony, award.Ceremony)
			if award.Winner {
				fmt.Fprintf(info, "        - Winner: %s\n", award.Name)
			} else {
				fmt.Fprintf(info, "        - Nominee(not win): %s\n", award.Name)
			}
		}
	}
	info.WriteString("\n")
}

func (f *Formatter) personReport(ctx context.Context, info *strings.Builder, person *domain.PersonRecord) {
	fmt.Fprintf(info, "#### Some information of %s\n", person.Name)
	fmt.Fprintf(info, "- Birthday: %s\n", person.Birthday)
	f.filmography(ctx, info, "Acted", person.ActedMovies)
	f.filmography(ctx, info, "Directed", person.DirectedMovies)
	if len(person.OscarAwards) > 0 {
		info.WriteString("- Oscar Awards:\n")
		for _, award := range person.OscarAwards {
			fmt.Fprintf(info, "    - Category: %s\n", award.Category)
			fmt.Fprintf(info, "        - Year: %d(the %dth oscar ceremony)\n", award.YearCeremony, award.Ceremony)
			fmt.Fprintf(info, "        - Movie: %s\n", award.Film)
			if award.Winner {
				info.WriteString("        - Win or nominate: win\n")
			} else {
				info.WriteString("        - Win or nominate: nominate\n")
			}
		}
	}
	info.WriteString("\n")
}

func (f *Formatter) filmography(ctx context.Context, info *strings.Builder, role string, movieIDs []int) {
	if len(movieIDs) == 0 {
		return
	}
	fmt.Fprintf(info, "- %s %d Movies:\n", role, len(movieIDs))
	for _, id := range movieIDs {
		movie, err := f.movies.MovieByID(ctx, id)
		if err != nil {
			f.warn("movie_lookup_failed", err, "movie_id", id)
			continue
		}
		if movie == nil {
			continue
		}
		if movie.Title == movie.OriginalTitle {
			fmt.Fprintf(info, "    - %s\n", movie.Title)
		} else {
			fmt.Fprintf(info, "    - %s (%s)\n", movie.Title, movie.OriginalTitle)
		}
	}
}

// writeOscarWinners groups the year's awards by category in first-appearance
// order and lists each category's winners.
func writeOscarWinners(info *strings.Builder, awards []domain.OscarAward) {
	var categories []string
	seen := make(map[string]struct{})
	for _, award := range awards {
		if _, ok := seen[award.Category]; !ok {
			seen[award.Category] = struct{}{}
			categories = append(categories, award.Category)
		}
	}
	for _, category := range categories {
		fmt.Fprintf(info, "- %s\n", category)
		for _, award := range awards {
			if award.Category == category && award.Winner {
				fmt.Fprintf(info, "    - Winner: %s for %s\n", award.Name, award.Film)
			}
		}
	}
}
